package commands

import (
	"context"
	"fmt"
	"os"
	"time"
	"wahis-export/lib/configutil"
	"wahis-export/lib/serviceutil"
	"wahis-export/lib/telemetry"
	"wahis-export/lib/wahis"
	"wahis-export/services/export"

	"github.com/spf13/cobra"
)

// Config is read from export.json5 (with export.local.json5 overrides).
// CLI flags win over config values where both exist.
type Config struct {
	BaseURL               string              `json:"base_url"`
	RequestTimeoutSeconds int                 `json:"request_timeout_seconds"`
	RetryAttempts         int                 `json:"retry_attempts"`
	RequestsPerSecond     float64             `json:"requests_per_second"`
	FlushThreshold        int                 `json:"flush_threshold"`
	Concurrency           int                 `json:"concurrency"`
	Notify                export.NotifyConfig `json:"notify"`
}

var debug *bool

var rootCmd = &cobra.Command{
	Use:   "wahis-export",
	Short: "wahis-export retrieves animal disease outbreak reports from WAHIS and exports them as flat tables.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*debug)
		err := telemetry.SetupFromEnv(cmd.Context(), "wahis-export")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		telemetry.InstrumentPerfStats(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		_ = telemetry.Shutdown(ctx)
	},
}

func init() {
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("export.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func createClient(cfg Config) *wahis.Client {
	client, err := wahis.NewClient(wahis.ClientOptions{
		BaseURL:           cfg.BaseURL,
		Timeout:           time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		RetryAttempts:     cfg.RetryAttempts,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize wahis client", err)
	}
	return client
}
