package export

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
)

var csvColumns = []string{
	"report_id", "event_id", "country", "disease", "sub_type",
	"event_start_date", "submission_date", "report_type", "report_status",
	"event_status", "reason",
	"event_country", "event_country_iso", "event_country_id",
	"event_disease", "event_disease_group", "event_disease_category",
	"causal_agent", "event_start", "event_end", "event_confirmation",
	"outbreak_id", "outbreak_location", "latitude", "longitude",
	"outbreak_start_date", "outbreak_end_date", "outbreak_status", "epi_unit",
	"species", "control_measures",
	"total_susceptible", "total_cases", "total_deaths", "total_killed",
}

// CSVSink appends flattened rows to a CSV file. Each WriteRows call ends
// with a flush and fsync so a flush survives a crash.
type CSVSink struct {
	file        *os.File
	writer      *csv.Writer
	wroteHeader bool
}

func NewCSVSink(path string) (*CSVSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	return &CSVSink{
		file:   file,
		writer: csv.NewWriter(file),
		// an existing non-empty file already carries the header row
		wroteHeader: info.Size() > 0,
	}, nil
}

func (s *CSVSink) WriteRows(ctx context.Context, rows []FlatRow) error {
	if !s.wroteHeader {
		if err := s.writer.Write(csvColumns); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	for _, row := range rows {
		if err := s.writer.Write(csvRecord(row)); err != nil {
			return err
		}
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *CSVSink) Close() error {
	s.writer.Flush()
	return s.file.Close()
}

func csvRecord(r FlatRow) []string {
	return []string{
		strconv.FormatInt(r.ReportID, 10),
		strconv.FormatInt(r.EventID, 10),
		r.Country, r.Disease, r.SubType,
		r.EventStartDate, r.SubmissionDate, r.ReportType, r.ReportStatus,
		r.EventStatus, r.Reason,
		r.EventCountry, r.EventCountryIso,
		strconv.FormatInt(r.EventCountryID, 10),
		r.EventDisease, r.EventDiseaseGroup, r.EventDiseaseCategory,
		r.CausalAgent, r.EventStart, r.EventEnd, r.EventConfirmation,
		strconv.FormatInt(r.OutbreakID, 10),
		r.Location,
		formatCoord(r.Latitude),
		formatCoord(r.Longitude),
		r.OutbreakStart, r.OutbreakEnd, r.OutbreakStatus, r.EpiUnit,
		r.Species, r.ControlMeasures,
		strconv.FormatInt(r.TotalSusceptible, 10),
		strconv.FormatInt(r.TotalCases, 10),
		strconv.FormatInt(r.TotalDeaths, 10),
		strconv.FormatInt(r.TotalKilled, 10),
	}
}

// unknown coordinates stay empty rather than becoming 0,0
func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
