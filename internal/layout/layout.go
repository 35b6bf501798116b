package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/bms-sim/internal/domain/facility"
	"github.com/oshokin/bms-sim/internal/domain/sensor"
)

// Layout is the root of a facility description file.
type Layout struct {
	// Building describes the single building being simulated.
	Building BuildingSpec `yaml:"building"`
}

// BuildingSpec describes a building and its floors, bottom up.
type BuildingSpec struct {
	Name   string      `yaml:"name"`
	Floors []FloorSpec `yaml:"floors"`
}

// FloorSpec describes one floor.
type FloorSpec struct {
	Number int        `yaml:"number"`
	Width  float64    `yaml:"width"`
	Length float64    `yaml:"length"`
	Rooms  []RoomSpec `yaml:"rooms"`
}

// RoomSpec describes one room.
type RoomSpec struct {
	Number  int          `yaml:"number"`
	Type    string       `yaml:"type"`
	Area    float64      `yaml:"area"`
	Sensors []SensorSpec `yaml:"sensors"`
}

// SensorSpec describes one sensor. Fields that do not apply to the type are ignored.
type SensorSpec struct {
	// Type is a kind name such as "NoiseSensor" or an alias such as "noise".
	Type string `yaml:"type"`
	// Readings are the raw samples replayed by the sensor.
	Readings []int `yaml:"readings"`
	// Frequency is the update cadence; ignored for temperature sensors.
	Frequency int `yaml:"frequency"`
	// IdealValue applies to CO2 sensors.
	IdealValue int `yaml:"ideal_value,omitempty"`
	// VariationLimit applies to CO2 sensors.
	VariationLimit int `yaml:"variation_limit,omitempty"`
	// Capacity applies to occupancy sensors.
	Capacity int `yaml:"capacity,omitempty"`
}

var (
	// errEmptyLayout is returned for a document without content.
	errEmptyLayout = errors.New("layout is empty")
	// errNoBuildingName is returned when the layout does not name the building.
	errNoBuildingName = errors.New("building name is required")
)

// Load reads and parses the layout file at path.
func Load(path string) (*Layout, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	return Parse(contents)
}

// Parse decodes a layout document. Unknown fields are rejected to catch typos.
func Parse(data []byte) (*Layout, error) {
	var l Layout

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyLayout
		}

		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Building.Name == "" {
		return nil, errNoBuildingName
	}

	return &l, nil
}

// Marshal encodes the layout back to YAML.
func (l *Layout) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}

	return data, nil
}

// Build creates the building described by the layout. Every sensor is
// registered with reg. Floors are added in file order, so they must be listed
// bottom up.
func (l *Layout) Build(reg sensor.Registrar) (*facility.Building, error) {
	building := facility.NewBuilding(l.Building.Name)

	for _, fs := range l.Building.Floors {
		floor := facility.NewFloor(fs.Number, fs.Width, fs.Length)
		if err := building.AddFloor(floor); err != nil {
			return nil, fmt.Errorf("floor %d: %w", fs.Number, err)
		}

		for _, rs := range fs.Rooms {
			room, err := buildRoom(reg, rs)
			if err != nil {
				return nil, fmt.Errorf("floor %d: room %d: %w", fs.Number, rs.Number, err)
			}

			if err := floor.AddRoom(room); err != nil {
				return nil, fmt.Errorf("floor %d: %w", fs.Number, err)
			}
		}
	}

	return building, nil
}

// buildRoom creates a room with all of its sensors.
func buildRoom(reg sensor.Registrar, rs RoomSpec) (*facility.Room, error) {
	roomType, err := facility.ParseRoomType(rs.Type)
	if err != nil {
		return nil, err
	}

	room := facility.NewRoom(rs.Number, roomType, rs.Area)

	for i, ss := range rs.Sensors {
		s, err := buildSensor(reg, ss)
		if err != nil {
			return nil, fmt.Errorf("sensor #%d (%s): %w", i, ss.Type, err)
		}

		if err := room.AddSensor(s); err != nil {
			return nil, err
		}
	}

	return room, nil
}

// buildSensor dispatches to the constructor of the requested kind.
func buildSensor(reg sensor.Registrar, ss SensorSpec) (*sensor.Sensor, error) {
	kind, err := sensor.ParseKind(ss.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case sensor.KindCarbonDioxide:
		return sensor.NewCarbonDioxide(reg, ss.Readings, ss.Frequency, sensor.CO2Limits{
			IdealValue:     ss.IdealValue,
			VariationLimit: ss.VariationLimit,
		})
	case sensor.KindNoise:
		return sensor.NewNoise(reg, ss.Readings, ss.Frequency)
	case sensor.KindOccupancy:
		return sensor.NewOccupancy(reg, ss.Readings, ss.Frequency, ss.Capacity)
	case sensor.KindTemperature:
		return sensor.NewTemperature(reg, ss.Readings)
	default:
		return nil, fmt.Errorf("%w: unsupported sensor kind %s", sensor.ErrIllegalArgument, kind)
	}
}
