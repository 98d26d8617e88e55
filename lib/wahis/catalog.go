package wahis

import "context"

// Lookup endpoints used to translate human-readable filter names into the
// numeric ids the filtered-list endpoint expects.

func (c *Client) Countries(ctx context.Context) ([]CountryRef, error) {
	var out []CountryRef
	err := c.getJSON(ctx, "/pi/country/list", &out)
	return out, err
}

func (c *Client) GeoRegions(ctx context.Context) ([]GeoRegion, error) {
	var out []GeoRegion
	err := c.getJSON(ctx, "/pi/country/list-geo-region", &out)
	return out, err
}

func (c *Client) FirstLevelDiseases(ctx context.Context) ([]DiseaseFilter, error) {
	var out []DiseaseFilter
	err := c.getJSON(ctx, "/pi/disease/first-level-filters", &out)
	return out, err
}

func (c *Client) SecondLevelDiseases(ctx context.Context) ([]DiseaseFilter, error) {
	var out []DiseaseFilter
	err := c.getJSON(ctx, "/pi/disease/second-level-filters", &out)
	return out, err
}

func (c *Client) ReportReasons(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry
	err := c.getJSON(ctx, "/pi/catalog/report-reason/list", &out)
	return out, err
}

func (c *Client) EventStatuses(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry
	err := c.getJSON(ctx, "/pi/catalog/event-status/list", &out)
	return out, err
}

func (c *Client) ReportStatuses(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry
	err := c.getJSON(ctx, "/pi/catalog/report-status/list", &out)
	return out, err
}

// FilterOptions bundles every lookup catalog, used by the CLI options dump.
type FilterOptions struct {
	Countries       []CountryRef    `json:"country"`
	Regions         []GeoRegion     `json:"region"`
	Diseases        []DiseaseFilter `json:"diseases"`
	DiseaseSubtypes []DiseaseFilter `json:"diseaseType"`
	Reasons         []CatalogEntry  `json:"reason"`
	EventStatuses   []CatalogEntry  `json:"eventStatus"`
	ReportStatuses  []CatalogEntry  `json:"reportStatus"`
}

func (c *Client) FetchFilterOptions(ctx context.Context) (FilterOptions, error) {
	var opts FilterOptions
	var err error

	if opts.Countries, err = c.Countries(ctx); err != nil {
		return opts, err
	}
	if opts.Regions, err = c.GeoRegions(ctx); err != nil {
		return opts, err
	}
	if opts.Diseases, err = c.FirstLevelDiseases(ctx); err != nil {
		return opts, err
	}
	if opts.DiseaseSubtypes, err = c.SecondLevelDiseases(ctx); err != nil {
		return opts, err
	}
	if opts.Reasons, err = c.ReportReasons(ctx); err != nil {
		return opts, err
	}
	if opts.EventStatuses, err = c.EventStatuses(ctx); err != nil {
		return opts, err
	}
	if opts.ReportStatuses, err = c.ReportStatuses(ctx); err != nil {
		return opts, err
	}

	return opts, nil
}
