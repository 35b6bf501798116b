package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/service/client"
	"github.com/oshokin/bms-sim/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// serverAddress overrides the server address from settings.
	serverAddress string
	// jsonOutput prints JSON instead of text.
	jsonOutput bool
	// colorOutput forces ANSI colors.
	colorOutput bool
	// watchInterval is the polling period of the watch command.
	watchInterval time.Duration

	// rootCmd represents the control client.
	rootCmd = &cobra.Command{
		Use:   "bms-ctl",
		Short: "Control a running bms-server.",
		Long: `Queries and drives a running bms-server over gRPC.

Every command prints the facility snapshot after it completes.
The local hostname and username are sent along for the server log.`,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the current facility state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &client.Options{Action: client.ActionStatus})
		},
	}

	advanceCmd = &cobra.Command{
		Use:   "advance [units]",
		Short: "Advance the simulated clock (one unit by default).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units := uint64(1)

			if len(args) > 0 {
				var err error
				if units, err = strconv.ParseUint(args[0], 10, 32); err != nil {
					return fmt.Errorf("parse units: %w", err)
				}
			}

			return run(cmd, &client.Options{Action: client.ActionAdvance, Units: uint32(units)})
		},
	}

	drillCmd = &cobra.Command{
		Use:   "drill [STUDY|OFFICE|LABORATORY]",
		Short: "Start a fire drill in rooms of a type, or in every room.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var roomType string
			if len(args) > 0 {
				roomType = args[0]
			}

			return run(cmd, &client.Options{Action: client.ActionDrill, RoomType: roomType})
		},
	}

	cancelDrillCmd = &cobra.Command{
		Use:   "cancel-drill",
		Short: "Cancel every fire drill.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &client.Options{Action: client.ActionCancelDrill})
		},
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Poll the server and log hazard alerts until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &client.Options{Action: client.ActionWatch, WatchInterval: watchInterval})
		},
	}
)

// run fills the shared flags and executes the action with signal-aware context.
func run(cmd *cobra.Command, options *client.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	options.ConfigPath = configPath
	options.ServerAddress = serverAddress
	options.JSON = jsonOutput
	options.Color = colorOutput
	options.Out = cmd.OutOrStdout()

	return client.Run(ctx, options)
}

// Execute runs the bms-ctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&serverAddress, "server", "s", "", "server address (overrides settings)")
	flags.BoolVar(&jsonOutput, "json", false, "print snapshots as JSON")
	flags.BoolVar(&colorOutput, "color", false, "force colored output")

	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", time.Second, "polling interval")

	rootCmd.AddCommand(statusCmd, advanceCmd, drillCmd, cancelDrillCmd, watchCmd)
}
