package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/service/server"
	"github.com/oshokin/bms-sim/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// layoutFile overrides the facility layout from settings.
	layoutFile string
	// snapshotFile receives the last snapshot on shutdown.
	snapshotFile string
	// tickInterval overrides the wall-clock length of one simulated unit.
	tickInterval time.Duration

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "bms-server [listen-address]",
		Short: "Run the building simulation behind a gRPC API.",
		Long: `Builds the facility from the layout file, advances its clock every tick interval
and serves the FacilityService gRPC API for bms-ctl.

Only the port from server_addr is used for listening (e.g., :50061).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:8080).
When a snapshot file is configured, the final state is written to it on shutdown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				LayoutFile:    layoutFile,
				SnapshotFile:  snapshotFile,
				TickInterval:  tickInterval,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the bms-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&layoutFile, "layout", "l", "", "path to facility layout (overrides settings)")
	rootCmd.Flags().StringVarP(&snapshotFile, "snapshot-file", "s", "", "write the final snapshot here on shutdown")
	rootCmd.Flags().DurationVarP(&tickInterval, "tick", "t", 0, "wall-clock length of one simulated unit")
}
