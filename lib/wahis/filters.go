package wahis

import "fmt"

// MaxPageSize is the largest page the filtered-list endpoint honors;
// anything above it silently returns empty pages.
const MaxPageSize = 2000

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FilteredListRequest is the POST body of /pi/event/filtered-list. The
// server requires empty arrays rather than nulls for unused filters, so
// build values with NewFilteredListRequest.
type FilteredListRequest struct {
	EventIDs       []int64    `json:"eventIds"`
	ReportIDs      []int64    `json:"reportIds"`
	Countries      []int64    `json:"countries"`
	FirstDiseases  []int64    `json:"firstDiseases"`
	SecondDiseases []int64    `json:"secondDiseases"`
	TypeStatuses   []int64    `json:"typeStatuses"`
	Reasons        []int64    `json:"reasons"`
	EventStatuses  []int64    `json:"eventStatuses"`
	ReportTypes    []int64    `json:"reportTypes"`
	ReportStatuses []int64    `json:"reportStatuses"`
	EventStartDate *DateRange `json:"eventStartDate"`
	SubmissionDate *DateRange `json:"submissionDate"`
	AnimalTypes    []int64    `json:"animalTypes"`
	SortColumn     string     `json:"sortColumn"`
	SortOrder      string     `json:"sortOrder"`
	PageSize       int        `json:"pageSize"`
	PageNumber     int        `json:"pageNumber"`
}

type FilteredListResponse struct {
	List      []ReportSummary `json:"list"`
	TotalSize int             `json:"totalSize"`
}

func NewFilteredListRequest() FilteredListRequest {
	return FilteredListRequest{
		EventIDs:       []int64{},
		ReportIDs:      []int64{},
		Countries:      []int64{},
		FirstDiseases:  []int64{},
		SecondDiseases: []int64{},
		TypeStatuses:   []int64{},
		Reasons:        []int64{},
		EventStatuses:  []int64{},
		ReportTypes:    []int64{},
		ReportStatuses: []int64{},
		AnimalTypes:    []int64{},
		SortColumn:     "submissionDate",
		SortOrder:      "desc",
		PageSize:       MaxPageSize,
	}
}

func (r FilteredListRequest) validate() error {
	if r.PageSize < 0 {
		return fmt.Errorf("page size %d is negative", r.PageSize)
	}
	if r.PageSize > MaxPageSize {
		return fmt.Errorf("page size %d exceeds the server cap of %d", r.PageSize, MaxPageSize)
	}
	return nil
}
