package export

import (
	"context"
	"database/sql"
	"wahis-export/lib/sqliteutil"
	"wahis-export/services/export/db"

	_ "modernc.org/sqlite"
)

const insertRowQuery = `INSERT INTO flat_rows (
	report_id, event_id, country, disease, sub_type,
	event_start_date, submission_date, report_type, report_status,
	event_status, reason,
	event_country, event_country_iso, event_country_id,
	event_disease, event_disease_group, event_disease_category,
	causal_agent, event_start, event_end, event_confirmation,
	outbreak_id, outbreak_location, latitude, longitude,
	outbreak_start_date, outbreak_end_date, outbreak_status, epi_unit,
	species, control_measures,
	total_susceptible, total_cases, total_deaths, total_killed
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteSink writes flattened rows to a sqlite database, one transaction
// per flush. A flush either commits entirely or not at all.
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(path string) (*SQLiteSink, error) {
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteSink{db: database}, nil
}

func (s *SQLiteSink) WriteRows(ctx context.Context, rows []FlatRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRowQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err = stmt.ExecContext(ctx,
			r.ReportID, r.EventID, r.Country, r.Disease, r.SubType,
			r.EventStartDate, r.SubmissionDate, r.ReportType, r.ReportStatus,
			r.EventStatus, r.Reason,
			r.EventCountry, r.EventCountryIso, r.EventCountryID,
			r.EventDisease, r.EventDiseaseGroup, r.EventDiseaseCategory,
			r.CausalAgent, r.EventStart, r.EventEnd, r.EventConfirmation,
			r.OutbreakID, r.Location, r.Latitude, r.Longitude,
			r.OutbreakStart, r.OutbreakEnd, r.OutbreakStatus, r.EpiUnit,
			r.Species, r.ControlMeasures,
			r.TotalSusceptible, r.TotalCases, r.TotalDeaths, r.TotalKilled,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
