package facility

import (
	"fmt"
	"slices"
	"strings"

	"github.com/oshokin/bms-sim/internal/domain/sensor"
)

// MinRoomArea is the smallest area a room may have, in square metres.
const MinRoomArea = 5

// Room is a space on a floor with its own sensors and fire drill flag.
type Room struct {
	// number identifies the room on its floor.
	number int
	// roomType is used to target fire drills.
	roomType RoomType
	// area is the room size in square metres.
	area float64
	// fireDrill is true while a drill is ongoing.
	fireDrill bool
	// sensors hold at most one sensor per kind, sorted by kind name.
	sensors []*sensor.Sensor
}

// NewRoom creates a room without sensors. The type and area are validated when the room is added to a floor.
func NewRoom(number int, roomType RoomType, area float64) *Room {
	return &Room{
		number:   number,
		roomType: roomType,
		area:     area,
	}
}

// Number returns the room number.
func (r *Room) Number() int {
	return r.number
}

// Type returns the room type.
func (r *Room) Type() RoomType {
	return r.roomType
}

// Area returns the room area.
func (r *Room) Area() float64 {
	return r.area
}

// FireDrillOngoing reports whether a fire drill is active in the room.
func (r *Room) FireDrillOngoing() bool {
	return r.fireDrill
}

// SetFireDrill starts or stops the fire drill in the room.
func (r *Room) SetFireDrill(ongoing bool) {
	r.fireDrill = ongoing
}

// Sensors returns the room sensors ordered by kind name.
// The returned slice is a copy.
func (r *Room) Sensors() []*sensor.Sensor {
	return slices.Clone(r.sensors)
}

// Sensor looks a sensor up by kind.
func (r *Room) Sensor(kind sensor.Kind) (*sensor.Sensor, bool) {
	for _, s := range r.sensors {
		if s.Kind() == kind {
			return s, true
		}
	}

	return nil, false
}

// SensorByName looks a sensor up by its kind name, e.g. "NoiseSensor".
func (r *Room) SensorByName(name string) (*sensor.Sensor, bool) {
	for _, s := range r.sensors {
		if s.Kind().String() == name {
			return s, true
		}
	}

	return nil, false
}

// AddSensor attaches s unless the room already has a sensor of the same kind.
func (r *Room) AddSensor(s *sensor.Sensor) error {
	if s == nil {
		return fmt.Errorf("%w: sensor is nil", ErrIllegalArgument)
	}

	if _, ok := r.Sensor(s.Kind()); ok {
		return fmt.Errorf("%w: room %d already has a %s", ErrDuplicateSensor, r.number, s.Kind())
	}

	r.sensors = append(r.sensors, s)
	slices.SortStableFunc(r.sensors, func(a, b *sensor.Sensor) int {
		return strings.Compare(a.Kind().String(), b.Kind().String())
	})

	return nil
}

// MaxHazardLevel returns the highest hazard level among the room sensors, or 0 without sensors.
func (r *Room) MaxHazardLevel() int {
	level := 0
	for _, s := range r.sensors {
		level = max(level, s.HazardLevel())
	}

	return level
}

// String returns the summary, e.g. "Room #1: type=STUDY, area=12.12m^2, sensors=4".
func (r *Room) String() string {
	return fmt.Sprintf("Room #%d: type=%s, area=%.2fm^2, sensors=%d", r.number, r.roomType, r.area, len(r.sensors))
}
