package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/service/runner"
	"github.com/oshokin/bms-sim/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// layoutFile overrides the facility layout from settings.
	layoutFile string
	// units is how far the clock is advanced.
	units int
	// every prints an intermediate report after this many units.
	every int
	// drill is the room type to drill; see the --drill flag.
	drill string
	// jsonOutput prints JSON instead of text.
	jsonOutput bool
	// colorOutput forces ANSI colors.
	colorOutput bool
	// snapshotFile receives the final snapshot.
	snapshotFile string

	// rootCmd represents the offline simulation command.
	rootCmd = &cobra.Command{
		Use:   "bms-sim",
		Short: "Simulate a building offline and print hazard reports.",
		Long: `Builds the facility described by the layout file, optionally starts a fire drill,
advances the simulated clock and prints the state of every floor, room and sensor.

Sensors whose hazard level reaches alert_level are highlighted and logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &runner.Options{
				ConfigPath:   configPath,
				LayoutFile:   layoutFile,
				Units:        units,
				Every:        every,
				Format:       runner.FormatText,
				Color:        colorOutput,
				SnapshotFile: snapshotFile,
				Out:          cmd.OutOrStdout(),
			}

			if jsonOutput {
				options.Format = runner.FormatJSON
			}

			// An explicit --drill, even empty, starts a drill.
			if cmd.Flags().Changed("drill") {
				options.Drill = &drill
			}

			return runner.Run(ctx, options)
		},
	}
)

// Execute runs the bms-sim CLI and exits with non-zero status on error.
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
	rootCmd.Flags().IntVarP(&units, "units", "n", 1, "number of time units to simulate")
	rootCmd.Flags().IntVarP(&every, "every", "e", 0, "also print a report every N units")
	rootCmd.Flags().StringVarP(&drill, "drill", "d", "", "start a fire drill for STUDY, OFFICE or LABORATORY rooms (empty for all)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print reports as JSON")
	rootCmd.Flags().BoolVar(&colorOutput, "color", false, "force colored output")
	rootCmd.Flags().StringVarP(&snapshotFile, "snapshot-file", "s", "", "write the final snapshot to this file")
}
