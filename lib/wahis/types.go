package wahis

// Wire models for the WAHIS v1 public interface. Numeric count fields on
// species entries are pointers because the API returns null for unknown
// counts, not zero.

type ReportSummary struct {
	ReportID       int64  `json:"reportId"`
	EventID        int64  `json:"eventId"`
	Country        string `json:"country"`
	Disease        string `json:"disease"`
	SubType        string `json:"subType"`
	EventStartDate string `json:"eventStartDate"`
	SubmissionDate string `json:"submissionDate"`
	ReportType     string `json:"reportType"`
	ReportStatus   string `json:"reportStatus"`
	EventStatus    string `json:"eventStatus"`
	Reason         string `json:"reason"`
}

type CountryRef struct {
	AreaID  int64  `json:"areaId"`
	Name    string `json:"name"`
	IsoCode string `json:"isoCode"`
}

type DiseaseRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Category string `json:"category"`
}

type NamedRef struct {
	Name string `json:"name"`
}

type Event struct {
	Country          CountryRef `json:"country"`
	Disease          DiseaseRef `json:"disease"`
	CausalAgent      NamedRef   `json:"causalAgent"`
	StartDate        string     `json:"startDate"`
	EndDate          string     `json:"endDate"`
	ConfirmationDate string     `json:"confirmationDate"`
}

type SpeciesDetail struct {
	SpeciesName string `json:"speciesName"`
	Susceptible *int64 `json:"susceptible"`
	Cases       *int64 `json:"cases"`
	Deaths      *int64 `json:"deaths"`
	Killed      *int64 `json:"killed"`
	Vaccinated  *int64 `json:"vaccinated"`
}

type Outbreak struct {
	OutbreakID     int64           `json:"outbreakId"`
	Location       string          `json:"location"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Status         string          `json:"status"`
	EpiUnit        string          `json:"epiUnit"`
	SpeciesDetails []SpeciesDetail `json:"speciesDetails"`
}

type EpiComment struct {
	Comment string `json:"comment"`
}

type ReportDetail struct {
	Event                   Event      `json:"event"`
	Outbreaks               []Outbreak `json:"outbreaks"`
	ControlMeasures         []NamedRef `json:"controlMeasures"`
	EpidemiologicalComments EpiComment `json:"epidemiologicalComments"`
}

type GeoRegion struct {
	Name       string  `json:"name"`
	CountryIDs []int64 `json:"countryIds"`
}

// DiseaseFilter is the shape shared by the first and second level
// disease filter endpoints: a display name mapping to one or more ids.
type DiseaseFilter struct {
	Name string  `json:"name"`
	IDs  []int64 `json:"ids"`
}

type CatalogEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
