package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/domain/facility"
	"github.com/oshokin/bms-sim/internal/layout"
	"github.com/oshokin/bms-sim/internal/logger"
	"github.com/oshokin/bms-sim/internal/report"
	repository "github.com/oshokin/bms-sim/internal/repository/snapshot"
	"github.com/oshokin/bms-sim/internal/service/simulation"
)

// Format selects how reports are printed.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures an offline run.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// LayoutFile overrides the facility layout from settings.
	LayoutFile string
	// Units is how far the clock is advanced.
	Units int
	// Every prints an intermediate report each time this many units pass. Zero prints only the final one.
	Every int
	// Drill, when non-nil, starts a fire drill for the room type before advancing. Empty means every room.
	Drill *string
	// Format is the report format.
	Format Format
	// Color forces colored text output.
	Color bool
	// SnapshotFile, when set, receives the final snapshot.
	SnapshotFile string
	// Out receives the reports; defaults to stdout.
	Out io.Writer
}

var (
	// errNegativeUnits is returned for a negative number of units.
	errNegativeUnits = errors.New("units must not be negative")
	// errUnknownFormat is returned for unsupported report formats.
	errUnknownFormat = errors.New("unknown report format")
)

// Run builds the facility, advances it and prints reports.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bms-sim")

	if opts.Units < 0 || opts.Every < 0 {
		return errNegativeUnits
	}

	printReport, err := newPrinter(opts)
	if err != nil {
		return err
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	settings.ApplyLogLevel()

	if opts.LayoutFile != "" {
		settings.LayoutFile = opts.LayoutFile
	}

	facilityLayout, err := layout.Load(settings.LayoutFile)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	sim, err := simulation.New(ctx, facilityLayout, &simulation.Options{AlertLevel: settings.AlertLevel})
	if err != nil {
		return fmt.Errorf("initialise simulation: %w", err)
	}

	if opts.Drill != nil {
		if err = startDrill(ctx, sim, *opts.Drill); err != nil {
			return err
		}
	}

	snap, err := advance(ctx, sim, opts, func(s *report.Snapshot) error {
		return printReport(s, settings.AlertLevel)
	})
	if err != nil {
		return err
	}

	if err = printReport(snap, settings.AlertLevel); err != nil {
		return err
	}

	if opts.SnapshotFile != "" {
		record := &repository.Record{SavedAt: time.Now(), Snapshot: snap}
		if err = repository.NewFileRepository(opts.SnapshotFile).Save(ctx, record); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}

	logger.InfoKV(ctx, "Simulation finished",
		"elapsed", snap.Elapsed,
		"max_hazard_level", snap.MaxHazardLevel,
		"alerts", len(snap.Alerts(sim.AlertLevel())))

	return nil
}

// advance moves the clock in steps of opts.Every, reporting between steps,
// and returns the final snapshot.
func advance(
	ctx context.Context,
	sim *simulation.Simulation,
	opts *Options,
	intermediate func(*report.Snapshot) error,
) (*report.Snapshot, error) {
	step := opts.Units
	if opts.Every > 0 {
		step = min(opts.Every, opts.Units)
	}

	remaining := opts.Units
	for remaining > step {
		snap, err := advanceChunked(ctx, sim, step)
		if err != nil {
			return nil, err
		}

		if err = intermediate(snap); err != nil {
			return nil, err
		}

		remaining -= step
	}

	return advanceChunked(ctx, sim, remaining)
}

// advanceChunked advances n units in calls no larger than simulation.MaxAdvanceUnits.
func advanceChunked(ctx context.Context, sim *simulation.Simulation, n int) (*report.Snapshot, error) {
	for n > simulation.MaxAdvanceUnits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := sim.Advance(ctx, simulation.MaxAdvanceUnits); err != nil {
			return nil, err
		}

		n -= simulation.MaxAdvanceUnits
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return sim.Advance(ctx, n)
}

// startDrill parses the room type and starts the drill.
func startDrill(ctx context.Context, sim *simulation.Simulation, value string) error {
	roomType := facility.AnyRoomType

	if value != "" {
		parsed, err := facility.ParseRoomType(value)
		if err != nil {
			return err
		}

		roomType = parsed
	}

	if err := sim.StartFireDrill(ctx, roomType); err != nil {
		return fmt.Errorf("start fire drill: %w", err)
	}

	return nil
}

// newPrinter returns the report writer for the requested format.
func newPrinter(opts *Options) (func(*report.Snapshot, int) error, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	switch opts.Format {
	case FormatText, "":
		return func(snap *report.Snapshot, alertLevel int) error {
			return report.WriteText(out, snap, report.TextOptions{AlertLevel: alertLevel, Color: opts.Color})
		}, nil
	case FormatJSON:
		return func(snap *report.Snapshot, _ int) error {
			data, err := snap.MarshalIndent()
			if err != nil {
				return err
			}

			if _, err = fmt.Fprintf(out, "%s\n", data); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			return nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, opts.Format)
	}
}
