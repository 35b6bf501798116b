package report

import (
	"github.com/oshokin/bms-sim/internal/domain/facility"
	"github.com/oshokin/bms-sim/internal/domain/sensor"
)

// Snapshot is the state of a building after a number of simulated units.
type Snapshot struct {
	// Building is the building name.
	Building string `json:"building"`
	// Summary is the one-line description of the building.
	Summary string `json:"summary"`
	// Elapsed is the number of units the clock has advanced.
	Elapsed int `json:"elapsed"`
	// MaxHazardLevel is the highest hazard over all rooms.
	MaxHazardLevel int `json:"max_hazard_level"`
	// FireDrill reports whether any room is in a drill.
	FireDrill bool `json:"fire_drill"`
	// Floors are ordered bottom up.
	Floors []FloorSnapshot `json:"floors"`
}

// FloorSnapshot is the state of one floor.
type FloorSnapshot struct {
	Number        int            `json:"number"`
	Width         float64        `json:"width"`
	Length        float64        `json:"length"`
	AvailableArea float64        `json:"available_area"`
	Summary       string         `json:"summary"`
	Rooms         []RoomSnapshot `json:"rooms"`
}

// RoomSnapshot is the state of one room.
type RoomSnapshot struct {
	Number         int              `json:"number"`
	Type           string           `json:"type"`
	Area           float64          `json:"area"`
	FireDrill      bool             `json:"fire_drill"`
	MaxHazardLevel int              `json:"max_hazard_level"`
	Summary        string           `json:"summary"`
	Sensors        []SensorSnapshot `json:"sensors"`
}

// SensorSnapshot is the state of one sensor.
type SensorSnapshot struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Reading     int    `json:"reading"`
	Frequency   int    `json:"frequency"`
	Elapsed     int    `json:"elapsed"`
	HazardLevel int    `json:"hazard_level"`
	Summary     string `json:"summary"`
}

// Build captures the current state of b. Elapsed is taken from the caller
// because the building does not own the clock.
func Build(b *facility.Building, elapsed int) *Snapshot {
	snap := &Snapshot{
		Building: b.Name(),
		Summary:  b.String(),
		Elapsed:  elapsed,
		Floors:   make([]FloorSnapshot, 0, len(b.Floors())),
	}

	for _, f := range b.Floors() {
		fs := FloorSnapshot{
			Number:        f.Number(),
			Width:         f.Width(),
			Length:        f.Length(),
			AvailableArea: f.AvailableArea(),
			Summary:       f.String(),
			Rooms:         make([]RoomSnapshot, 0, len(f.Rooms())),
		}

		for _, r := range f.Rooms() {
			rs := buildRoom(r)

			snap.MaxHazardLevel = max(snap.MaxHazardLevel, rs.MaxHazardLevel)
			snap.FireDrill = snap.FireDrill || rs.FireDrill
			fs.Rooms = append(fs.Rooms, rs)
		}

		snap.Floors = append(snap.Floors, fs)
	}

	return snap
}

func buildRoom(r *facility.Room) RoomSnapshot {
	rs := RoomSnapshot{
		Number:         r.Number(),
		Type:           string(r.Type()),
		Area:           r.Area(),
		FireDrill:      r.FireDrillOngoing(),
		MaxHazardLevel: r.MaxHazardLevel(),
		Summary:        r.String(),
		Sensors:        make([]SensorSnapshot, 0, len(r.Sensors())),
	}

	for _, s := range r.Sensors() {
		rs.Sensors = append(rs.Sensors, buildSensor(s))
	}

	return rs
}

func buildSensor(s *sensor.Sensor) SensorSnapshot {
	return SensorSnapshot{
		ID:          s.ID().String(),
		Kind:        s.Kind().String(),
		Reading:     s.CurrentReading(),
		Frequency:   s.Frequency(),
		Elapsed:     s.TimeElapsed(),
		HazardLevel: s.HazardLevel(),
		Summary:     s.String(),
	}
}

// Alerts returns every sensor whose hazard level is at least alertLevel,
// together with the floor and room it belongs to.
func (s *Snapshot) Alerts(alertLevel int) []Alert {
	var alerts []Alert

	for _, f := range s.Floors {
		for _, r := range f.Rooms {
			for _, sn := range r.Sensors {
				if sn.HazardLevel >= alertLevel {
					alerts = append(alerts, Alert{Floor: f.Number, Room: r.Number, Sensor: sn})
				}
			}
		}
	}

	return alerts
}

// Alert locates a sensor above the alert level.
type Alert struct {
	Floor  int
	Room   int
	Sensor SensorSnapshot
}
