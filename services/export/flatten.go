package export

import (
	"strings"
	"wahis-export/lib/wahis"
)

// FlatRow is one outbreak flattened into a single tabular record:
// report-summary fields verbatim, event-level fields extracted from the
// detail, the outbreak's own fields, and per-outbreak species aggregates.
type FlatRow struct {
	ReportID       int64  `json:"report_id"`
	EventID        int64  `json:"event_id"`
	Country        string `json:"country"`
	Disease        string `json:"disease"`
	SubType        string `json:"sub_type"`
	EventStartDate string `json:"event_start_date"`
	SubmissionDate string `json:"submission_date"`
	ReportType     string `json:"report_type"`
	ReportStatus   string `json:"report_status"`
	EventStatus    string `json:"event_status"`
	Reason         string `json:"reason"`

	EventCountry         string `json:"event_country"`
	EventCountryIso      string `json:"event_country_iso"`
	EventCountryID       int64  `json:"event_country_id"`
	EventDisease         string `json:"event_disease"`
	EventDiseaseGroup    string `json:"event_disease_group"`
	EventDiseaseCategory string `json:"event_disease_category"`
	CausalAgent          string `json:"causal_agent"`
	EventStart           string `json:"event_start"`
	EventEnd             string `json:"event_end"`
	EventConfirmation    string `json:"event_confirmation"`

	OutbreakID     int64    `json:"outbreak_id"`
	Location       string   `json:"outbreak_location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	OutbreakStart  string   `json:"outbreak_start_date"`
	OutbreakEnd    string   `json:"outbreak_end_date"`
	OutbreakStatus string   `json:"outbreak_status"`
	EpiUnit        string   `json:"epi_unit"`

	Species         string `json:"species"`
	ControlMeasures string `json:"control_measures"`

	TotalSusceptible int64 `json:"total_susceptible"`
	TotalCases       int64 `json:"total_cases"`
	TotalDeaths      int64 `json:"total_deaths"`
	TotalKilled      int64 `json:"total_killed"`
}

// Flatten converts one report into one row per outbreak. A detail with no
// outbreaks yields no rows. Pure function of its inputs; row order follows
// the server's outbreak order.
func Flatten(summary wahis.ReportSummary, detail wahis.ReportDetail) []FlatRow {
	if len(detail.Outbreaks) == 0 {
		return nil
	}

	var measures []string
	for _, cm := range detail.ControlMeasures {
		if cm.Name != "" {
			measures = append(measures, cm.Name)
		}
	}
	controlMeasures := strings.Join(measures, ", ")

	event := detail.Event
	rows := make([]FlatRow, 0, len(detail.Outbreaks))
	for _, outbreak := range detail.Outbreaks {
		row := FlatRow{
			ReportID:       summary.ReportID,
			EventID:        summary.EventID,
			Country:        summary.Country,
			Disease:        summary.Disease,
			SubType:        summary.SubType,
			EventStartDate: summary.EventStartDate,
			SubmissionDate: summary.SubmissionDate,
			ReportType:     summary.ReportType,
			ReportStatus:   summary.ReportStatus,
			EventStatus:    summary.EventStatus,
			Reason:         summary.Reason,

			EventCountry:         event.Country.Name,
			EventCountryIso:      event.Country.IsoCode,
			EventCountryID:       event.Country.AreaID,
			EventDisease:         event.Disease.Name,
			EventDiseaseGroup:    event.Disease.Group,
			EventDiseaseCategory: event.Disease.Category,
			CausalAgent:          event.CausalAgent.Name,
			EventStart:           event.StartDate,
			EventEnd:             event.EndDate,
			EventConfirmation:    event.ConfirmationDate,

			OutbreakID:     outbreak.OutbreakID,
			Location:       outbreak.Location,
			Latitude:       outbreak.Latitude,
			Longitude:      outbreak.Longitude,
			OutbreakStart:  outbreak.StartDate,
			OutbreakEnd:    outbreak.EndDate,
			OutbreakStatus: outbreak.Status,
			EpiUnit:        outbreak.EpiUnit,

			ControlMeasures: controlMeasures,
		}

		var species []string
		for _, s := range outbreak.SpeciesDetails {
			if s.SpeciesName != "" {
				species = append(species, s.SpeciesName)
			}
			row.TotalSusceptible += intOrZero(s.Susceptible)
			row.TotalCases += intOrZero(s.Cases)
			row.TotalDeaths += intOrZero(s.Deaths)
			row.TotalKilled += intOrZero(s.Killed)
		}
		row.Species = strings.Join(species, ", ")

		rows = append(rows, row)
	}
	return rows
}

func intOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
