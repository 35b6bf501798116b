package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/logger"
	"github.com/oshokin/bms-sim/internal/report"
	"github.com/oshokin/bms-sim/internal/service/common"
)

// Action is the request bms-ctl sends.
type Action int

// Supported actions.
const (
	ActionStatus Action = iota
	ActionAdvance
	ActionDrill
	ActionCancelDrill
	ActionWatch
)

// Options configures a bms-ctl invocation.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Action selects the request.
	Action Action
	// Units is the advance distance for ActionAdvance.
	Units uint32
	// RoomType is the drill target for ActionDrill; empty means every room.
	RoomType string
	// JSON prints snapshots as JSON instead of text.
	JSON bool
	// Color forces colored text output.
	Color bool
	// WatchInterval is the polling period for ActionWatch.
	WatchInterval time.Duration
	// Out receives the reports; defaults to stdout.
	Out io.Writer
}

// defaultWatchInterval is used when Options.WatchInterval is not set.
const defaultWatchInterval = time.Second

// errUnknownAction is returned for unsupported actions.
var errUnknownAction = errors.New("unknown action")

// Run connects to the server and performs the requested action.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bms-ctl")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	cfg.ApplyLogLevel()

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for the server audit log.
	operator, err := common.DetectOperator()
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithOperator(operator))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	return execute(ctx, client, opts, cfg.AlertLevel)
}

// execute performs the action against an established client.
func execute(ctx context.Context, client *common.Client, opts *Options, alertLevel int) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var (
		snap *report.Snapshot
		err  error
	)

	switch opts.Action {
	case ActionStatus:
		snap, err = client.Snapshot(ctx)
	case ActionAdvance:
		snap, err = client.Advance(ctx, opts.Units)
	case ActionDrill:
		if err = client.StartFireDrill(ctx, opts.RoomType); err == nil {
			logger.InfoKV(ctx, "Fire drill started", "room_type", opts.RoomType)
			snap, err = client.Snapshot(ctx)
		}
	case ActionCancelDrill:
		if err = client.CancelFireDrill(ctx); err == nil {
			logger.Info(ctx, "Fire drill cancelled")
			snap, err = client.Snapshot(ctx)
		}
	case ActionWatch:
		return watch(ctx, client, opts.WatchInterval, alertLevel)
	default:
		return fmt.Errorf("%w: %d", errUnknownAction, opts.Action)
	}

	if err != nil {
		return err
	}

	return printSnapshot(out, snap, opts, alertLevel)
}

// printSnapshot writes the snapshot in the requested format.
func printSnapshot(out io.Writer, snap *report.Snapshot, opts *Options, alertLevel int) error {
	if !opts.JSON {
		return report.WriteText(out, snap, report.TextOptions{AlertLevel: alertLevel, Color: opts.Color})
	}

	data, err := snap.MarshalIndent()
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(out, "%s\n", data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// watch polls the server until cancellation and logs alerts that appear or clear.
// Transient failures are logged and retried on the next tick.
func watch(ctx context.Context, client *common.Client, interval time.Duration, alertLevel int) error {
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	active := make(map[string]report.Alert)

	// poll fetches one snapshot and diffs its alerts against the previous ones.
	poll := func() {
		snap, err := client.Snapshot(ctx)
		if err != nil {
			logger.ErrorKV(ctx, "Snapshot failed", "error", err)
			return
		}

		current := make(map[string]report.Alert)
		for _, alert := range snap.Alerts(alertLevel) {
			current[alert.Sensor.ID] = alert

			if _, ok := active[alert.Sensor.ID]; !ok {
				logger.WarnKV(ctx, "Hazard alert",
					"elapsed", snap.Elapsed,
					"floor", alert.Floor,
					"room", alert.Room,
					"sensor", alert.Sensor.Kind,
					"hazard", alert.Sensor.HazardLevel)
			}
		}

		for id, alert := range active {
			if _, ok := current[id]; !ok {
				logger.InfoKV(ctx, "Hazard cleared",
					"elapsed", snap.Elapsed,
					"floor", alert.Floor,
					"room", alert.Room,
					"sensor", alert.Sensor.Kind)
			}
		}

		active = current
	}

	// Poll immediately before starting the ticker.
	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll()
		}
	}
}
