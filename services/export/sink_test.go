package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func sampleRows() []FlatRow {
	lat := 45.7
	return []FlatRow{
		{
			ReportID:   55112,
			EventID:    4821,
			Country:    "France",
			Disease:    "Anthrax",
			OutbreakID: 901,
			Latitude:   &lat,
			TotalCases: 3,
		},
		{
			ReportID:   55112,
			EventID:    4821,
			Country:    "France",
			Disease:    "Anthrax",
			OutbreakID: 902,
		},
	}
}

func TestCSVSinkWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	ctx := context.Background()

	sink, err := NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.WriteRows(ctx, sampleRows()))
	require.NoError(t, sink.Close())

	// reopening appends without repeating the header
	sink, err = NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.WriteRows(ctx, sampleRows()[:1]))
	require.NoError(t, sink.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, csvColumns, records[0])
	require.Equal(t, "55112", records[1][0])
	require.Equal(t, "45.7", records[1][23])
	// unknown coordinates stay empty
	require.Equal(t, "", records[2][23])
}

func TestSQLiteSinkWritesTransactionally(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	ctx := context.Background()

	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.WriteRows(ctx, sampleRows()))
	require.NoError(t, sink.Close())

	database, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer database.Close()

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM flat_rows").Scan(&count))
	require.Equal(t, 2, count)

	var totalCases int64
	var latitude sql.NullFloat64
	row := database.QueryRow("SELECT total_cases, latitude FROM flat_rows WHERE outbreak_id = 901")
	require.NoError(t, row.Scan(&totalCases, &latitude))
	require.EqualValues(t, 3, totalCases)
	require.True(t, latitude.Valid)
	require.InDelta(t, 45.7, latitude.Float64, 0.001)

	row = database.QueryRow("SELECT latitude FROM flat_rows WHERE outbreak_id = 902")
	require.NoError(t, row.Scan(&latitude))
	require.False(t, latitude.Valid)
}
