package commands

import (
	"log/slog"
	"time"
	"wahis-export/lib/serviceutil"
	"wahis-export/lib/wahis"
	"wahis-export/services/export"

	"github.com/spf13/cobra"
)

var (
	exportCountries      *[]string
	exportRegions        *[]string
	exportDiseases       *[]string
	exportStartDate      *string
	exportEndDate        *string
	exportOut            *string
	exportFormat         *string
	exportFlushThreshold *int
	exportConcurrency    *int
)

func init() {
	flags := exportCmd.Flags()
	exportCountries = flags.StringSliceP("country", "c", nil, "Countries to filter by, e.g. -c France -c Germany.")
	exportRegions = flags.StringSliceP("region", "r", nil, "Regions to filter by, e.g. -r Africa -r Europe.")
	exportDiseases = flags.StringSliceP("disease", "d", nil, "Diseases of interest, e.g. -d Anthrax.")
	exportStartDate = flags.String("start-date", "", "Event start date lower bound, YYYY-MM-DD. Defaults to 7 days ago.")
	exportEndDate = flags.String("end-date", "", "Event start date upper bound, YYYY-MM-DD. Defaults to today.")
	exportOut = flags.StringP("out", "o", "wahis_report_outbreaks.csv", "Output path.")
	exportFormat = flags.String("format", "csv", "Output format: csv or sqlite.")
	exportFlushThreshold = flags.Int("save-rate", 0, "Reports to process between saves (default 250).")
	exportConcurrency = flags.Int("concurrency", 0, "Concurrent detail fetches (default 1).")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--country ...] [--disease ...] [-o out.csv]",
	Short: "Exports flattened outbreak rows for all reports matching the filters.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		if *exportFlushThreshold > 0 {
			cfg.FlushThreshold = *exportFlushThreshold
		}
		if *exportConcurrency > 0 {
			cfg.Concurrency = *exportConcurrency
		}

		ctx := cmd.Context()
		client := createClient(cfg)

		countryIDs, err := client.ResolveCountries(ctx, *exportCountries)
		if err != nil {
			serviceutil.Fatal("failed to resolve countries", err)
		}
		regionCountryIDs, err := client.ResolveRegions(ctx, *exportRegions)
		if err != nil {
			serviceutil.Fatal("failed to resolve regions", err)
		}
		diseaseIDs, err := client.ResolveDiseases(ctx, *exportDiseases)
		if err != nil {
			serviceutil.Fatal("failed to resolve diseases", err)
		}

		filters := wahis.NewFilteredListRequest()
		filters.Countries = wahis.UnionIDs(countryIDs, regionCountryIDs)
		filters.FirstDiseases = diseaseIDs
		filters.EventStartDate = &wahis.DateRange{
			From: startDateOrDefault(*exportStartDate),
			To:   endDateOrDefault(*exportEndDate),
		}

		sink := createSink(*exportFormat, *exportOut)
		defer sink.Close()

		exporter := export.NewExporter(sink, cfg.FlushThreshold)
		runner := export.NewRunner(export.RunnerOptions{
			Client:      client,
			Exporter:    exporter,
			Concurrency: cfg.Concurrency,
		})

		t1 := time.Now()
		err = runner.Run(ctx, filters)
		if err != nil {
			serviceutil.Fatal("export run failed", err)
		}

		stats := exporter.Stats()
		slog.Info(
			"export finished",
			"reports", stats.Reports,
			"rows", stats.Rows,
			"flushes", stats.Flushes,
			"seconds", time.Since(t1).Seconds(),
		)

		if cfg.Notify.Enabled() {
			err = export.SendCompletionNotice(cfg.Notify, stats)
			if err != nil {
				slog.Error("failed to send completion notice", "err", err)
			}
		}
	},
}

func createSink(format, path string) export.RowSink {
	switch format {
	case "csv":
		sink, err := export.NewCSVSink(path)
		if err != nil {
			serviceutil.Fatal("failed to open csv output", err)
		}
		return sink
	case "sqlite":
		sink, err := export.NewSQLiteSink(path)
		if err != nil {
			serviceutil.Fatal("failed to open sqlite output", err)
		}
		return sink
	default:
		serviceutil.Fatal("unknown output format", errUnknownFormat(format))
		return nil
	}
}

type errUnknownFormat string

func (e errUnknownFormat) Error() string {
	return "unknown format: " + string(e) + " (expected csv or sqlite)"
}

func startDateOrDefault(v string) string {
	if v != "" {
		return v
	}
	return time.Now().AddDate(0, 0, -7).Format(time.DateOnly)
}

func endDateOrDefault(v string) string {
	if v != "" {
		return v
	}
	return time.Now().Format(time.DateOnly)
}
