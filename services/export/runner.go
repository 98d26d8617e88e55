package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"wahis-export/lib/telemetry"
	"wahis-export/lib/wahis"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = telemetry.Tracer("services/export")

// Runner drives the whole pipeline: paginated summary fetch, per-report
// detail fetch, flattening, and checkpointed export.
type Runner struct {
	client      *wahis.Client
	exporter    *Exporter
	concurrency int
}

type RunnerOptions struct {
	Client   *wahis.Client
	Exporter *Exporter
	// detail-fetch workers, defaults to 1 (strictly sequential)
	Concurrency int
}

func NewRunner(opts RunnerOptions) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Runner{
		client:      opts.Client,
		exporter:    opts.Exporter,
		concurrency: opts.Concurrency,
	}
}

// Run exports every report matching the filters. On any outcome, including
// cancellation and fatal fetch errors, buffered rows are flushed before
// returning so collected data is never silently lost.
func (r *Runner) Run(ctx context.Context, filters wahis.FilteredListRequest) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	summaries, err := r.client.FetchAllReports(ctx, filters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "filtered list fetch failed")
		return err
	}
	slog.Info("gathering reports", "count", len(summaries), "workers", r.concurrency)
	if len(summaries) == 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)

	for _, summary := range summaries {
		summary := summary
		group.Go(func() error {
			return r.processReport(groupCtx, summary)
		})
	}

	runErr := group.Wait()

	// flush even when the run context is already cancelled
	flushErr := r.exporter.FinalFlush(context.WithoutCancel(ctx))

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "export run failed")
	}
	return errors.Join(runErr, flushErr)
}

func (r *Runner) processReport(ctx context.Context, summary wahis.ReportSummary) error {
	detail, err := r.client.FetchReportDetail(ctx, summary.ReportID)
	if err != nil {
		return fmt.Errorf("report %d: %w", summary.ReportID, err)
	}

	rows := Flatten(summary, detail)
	if len(rows) == 0 {
		slog.Debug("report has no outbreaks, skipping", "report_id", summary.ReportID)
	}
	for _, row := range rows {
		r.exporter.Ingest(row)
	}
	r.exporter.ReportProcessed()

	_, err = r.exporter.MaybeFlush(ctx)
	return err
}
