package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/domain/clock"
	"github.com/oshokin/bms-sim/internal/domain/facility"
	"github.com/oshokin/bms-sim/internal/layout"
	"github.com/oshokin/bms-sim/internal/logger"
	"github.com/oshokin/bms-sim/internal/report"
)

// MaxAdvanceUnits bounds a single Advance call.
const MaxAdvanceUnits = 1_000_000

// Options tunes a Simulation.
type Options struct {
	// AlertLevel is the hazard level from which sensors are logged as alerts.
	// Zero means config.DefaultAlertLevel.
	AlertLevel int
}

// Simulation is a building driven by its own clock registry.
type Simulation struct {
	// registry advances every sensor of the building.
	registry *clock.Registry
	// building is the simulated facility.
	building *facility.Building
	// alertLevel is the threshold used for alert logging.
	alertLevel int
	// alerting holds sensors currently at or above alertLevel.
	alerting map[uuid.UUID]struct{}
	// mu protects everything above.
	mu sync.RWMutex
}

var (
	// errLayoutIsNotSet is returned when New is called without a layout.
	errLayoutIsNotSet = errors.New("layout is not set")
	// errInvalidInterval is returned by Run for non-positive intervals.
	errInvalidInterval = errors.New("tick interval must be positive")
)

// New builds the facility described by l on a fresh registry.
func New(ctx context.Context, l *layout.Layout, opts *Options) (*Simulation, error) {
	if l == nil {
		return nil, errLayoutIsNotSet
	}

	alertLevel := config.DefaultAlertLevel
	if opts != nil && opts.AlertLevel > 0 {
		alertLevel = opts.AlertLevel
	}

	registry := clock.NewRegistry()

	building, err := l.Build(registry)
	if err != nil {
		return nil, fmt.Errorf("build facility: %w", err)
	}

	s := &Simulation{
		registry:   registry,
		building:   building,
		alertLevel: alertLevel,
		alerting:   make(map[uuid.UUID]struct{}),
	}

	logger.InfoKV(ctx, "Facility built",
		"building", building.Name(),
		"floors", len(building.Floors()),
		"sensors", registry.Len(),
		"alert_level", alertLevel)

	s.checkAlerts(ctx)

	return s, nil
}

// Advance moves the clock n units forward and returns the resulting snapshot.
func (s *Simulation) Advance(ctx context.Context, n int) (*report.Snapshot, error) {
	if n < 0 || n > MaxAdvanceUnits {
		return nil, fmt.Errorf("%w: units must be within [0, %d], got %d",
			facility.ErrIllegalArgument, MaxAdvanceUnits, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for range n {
		s.registry.AdvanceOneUnit()
		s.checkAlerts(ctx)
	}

	logger.DebugKV(ctx, "Clock advanced", "units", n, "elapsed", s.registry.Elapsed())

	return report.Build(s.building, s.registry.Elapsed()), nil
}

// Run advances the clock one unit per interval until ctx is canceled.
func (s *Simulation) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", errInvalidInterval, interval)
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := s.Advance(ctx, 1); err != nil {
				return err
			}
		}
	}
}

// Snapshot returns the current state of the facility.
func (s *Simulation) Snapshot(_ context.Context) *report.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return report.Build(s.building, s.registry.Elapsed())
}

// Elapsed returns the number of units simulated so far.
func (s *Simulation) Elapsed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.registry.Elapsed()
}

// AlertLevel returns the threshold used for alert logging.
func (s *Simulation) AlertLevel() int {
	return s.alertLevel
}

// StartFireDrill starts a drill in every room of the given type, or in every
// room for facility.AnyRoomType.
func (s *Simulation) StartFireDrill(ctx context.Context, roomType facility.RoomType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.building.FireDrill(roomType); err != nil {
		return err
	}

	logger.WarnKV(ctx, "Fire drill started", "room_type", drillTarget(roomType))

	return nil
}

// CancelFireDrill ends the drill in every room.
func (s *Simulation) CancelFireDrill(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.building.CancelFireDrill()

	logger.Info(ctx, "Fire drill cancelled")
}

// checkAlerts logs sensors crossing the alert level in either direction.
// Callers must hold mu for writing or own s exclusively.
func (s *Simulation) checkAlerts(ctx context.Context) {
	for _, f := range s.building.Floors() {
		for _, r := range f.Rooms() {
			for _, sn := range r.Sensors() {
				hazard := sn.HazardLevel()
				_, wasAlerting := s.alerting[sn.ID()]

				switch {
				case hazard >= s.alertLevel && !wasAlerting:
					s.alerting[sn.ID()] = struct{}{}
					logger.WarnKV(ctx, "Hazard alert raised",
						"floor", f.Number(),
						"room", r.Number(),
						"sensor", sn.Kind().String(),
						"sensor_id", sn.ID().String(),
						"reading", sn.CurrentReading(),
						"hazard", hazard,
						"elapsed", s.registry.Elapsed())
				case hazard < s.alertLevel && wasAlerting:
					delete(s.alerting, sn.ID())
					logger.InfoKV(ctx, "Hazard alert cleared",
						"floor", f.Number(),
						"room", r.Number(),
						"sensor", sn.Kind().String(),
						"sensor_id", sn.ID().String(),
						"hazard", hazard,
						"elapsed", s.registry.Elapsed())
				}
			}
		}
	}
}

// ActiveAlerts returns the number of sensors currently at or above the alert level.
func (s *Simulation) ActiveAlerts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.alerting)
}

func drillTarget(roomType facility.RoomType) string {
	if roomType == facility.AnyRoomType {
		return "ANY"
	}

	return string(roomType)
}
