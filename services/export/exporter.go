package export

import (
	"context"
	"log/slog"
	"sync"
)

const DefaultFlushThreshold = 250

// RowSink is the durable destination of flattened rows. WriteRows must be
// atomic per call where the medium allows it: one call is one flush, and a
// flush is the unit of durability.
type RowSink interface {
	WriteRows(ctx context.Context, rows []FlatRow) error
	Close() error
}

// Exporter buffers flattened rows and writes them to its sink every
// flushThreshold processed reports. All methods are safe for concurrent
// producers; the internal lock makes it a single writer so no row is
// dropped or written twice within a run.
type Exporter struct {
	mu        sync.Mutex
	sink      RowSink
	threshold int

	buffer    []FlatRow
	processed int // reports since last flush

	totalRows    int
	totalReports int
	flushes      int
}

func NewExporter(sink RowSink, flushThreshold int) *Exporter {
	if flushThreshold <= 0 {
		flushThreshold = DefaultFlushThreshold
	}
	return &Exporter{sink: sink, threshold: flushThreshold}
}

// Ingest appends one flattened row to the in-memory buffer.
func (e *Exporter) Ingest(row FlatRow) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer = append(e.buffer, row)
}

// ReportProcessed records that one report finished flattening, whether or
// not it produced rows.
func (e *Exporter) ReportProcessed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.processed++
	e.totalReports++
}

// MaybeFlush writes the buffer to the sink once the processed-report count
// has reached the flush threshold. Returns whether a flush happened.
func (e *Exporter) MaybeFlush(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.processed < e.threshold {
		return false, nil
	}
	return true, e.flushLocked(ctx)
}

// FinalFlush unconditionally writes any remaining buffered rows. Called on
// normal completion and on cancellation or fatal error.
func (e *Exporter) FinalFlush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushLocked(ctx)
}

// on flush failure the buffer is kept so a later FinalFlush can retry;
// the processed counter is reset either way to avoid hot-looping
func (e *Exporter) flushLocked(ctx context.Context) error {
	rows := e.buffer
	e.processed = 0
	if len(rows) == 0 {
		return nil
	}
	if err := e.sink.WriteRows(ctx, rows); err != nil {
		return err
	}
	e.flushes++
	e.totalRows += len(rows)
	e.buffer = nil
	slog.Info("flushed rows", "rows", len(rows), "flush", e.flushes)
	return nil
}

type Stats struct {
	Rows    int
	Reports int
	Flushes int
}

func (e *Exporter) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{Rows: e.totalRows, Reports: e.totalReports, Flushes: e.flushes}
}
