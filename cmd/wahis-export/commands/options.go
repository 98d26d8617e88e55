package commands

import (
	"encoding/json"
	"log/slog"
	"os"
	"wahis-export/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var optionsOut *string

func init() {
	optionsOut = optionsCmd.Flags().StringP("out", "o", "wahis_filter_options.json", "Where to write the filter options file.")
	rootCmd.AddCommand(optionsCmd)
}

var optionsCmd = &cobra.Command{
	Use:   "options [-o <path/to/options.json>]",
	Short: "Fetches the acceptable filter values (countries, regions, diseases, catalogs) and writes them to a file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		client := createClient(cfg)

		opts, err := client.FetchFilterOptions(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch filter options", err)
		}

		contents, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to encode filter options", err)
		}
		err = os.WriteFile(*optionsOut, contents, 0o644)
		if err != nil {
			serviceutil.Fatal("failed to write filter options file", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Filter", "Values"})
		t.AppendRow(table.Row{"country", len(opts.Countries)})
		t.AppendRow(table.Row{"region", len(opts.Regions)})
		t.AppendRow(table.Row{"diseases", len(opts.Diseases)})
		t.AppendRow(table.Row{"diseaseType", len(opts.DiseaseSubtypes)})
		t.AppendRow(table.Row{"reason", len(opts.Reasons)})
		t.AppendRow(table.Row{"eventStatus", len(opts.EventStatuses)})
		t.AppendRow(table.Row{"reportStatus", len(opts.ReportStatuses)})
		t.SetStyle(table.StyleRounded)
		t.Render()

		slog.Info("wrote filter options", "path", *optionsOut)
	},
}
