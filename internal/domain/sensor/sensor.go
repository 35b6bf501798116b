package sensor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/oshokin/bms-sim/internal/domain/clock"
)

// TemperatureFrequency is the fixed cadence of temperature sensors.
const TemperatureFrequency = 1

// Registrar accepts newly constructed sensors so that a clock can drive them.
type Registrar interface {
	Register(item clock.TimedItem)
}

// CO2Limits describe the acceptable operating range of a carbon dioxide sensor.
type CO2Limits struct {
	// IdealValue is the ideal concentration in ppm.
	IdealValue int
	// VariationLimit is the acceptable deviation from IdealValue in ppm.
	VariationLimit int
}

// Sensor is a timed sensor of one Kind.
// Only the embedded series changes after construction.
type Sensor struct {
	// id uniquely identifies the sensor within the process.
	id uuid.UUID
	// kind selects the parameters and the hazard formula.
	kind Kind
	// series holds the readings and the time state.
	series *Series
	// co2 is set for KindCarbonDioxide only.
	co2 CO2Limits
	// capacity is set for KindOccupancy only.
	capacity int
}

// errRegistrarRequired is returned when a sensor would not be driven by any clock.
var errRegistrarRequired = errors.New("registrar must be provided")

// NewCarbonDioxide builds a CO2 sensor. Both limits must be positive and the
// ideal value must not be smaller than the variation limit.
func NewCarbonDioxide(reg Registrar, readings []int, frequency int, limits CO2Limits) (*Sensor, error) {
	if limits.IdealValue <= 0 || limits.VariationLimit <= 0 || limits.IdealValue-limits.VariationLimit < 0 {
		return nil, fmt.Errorf(
			"%w: invalid CO2 limits ideal=%d variation=%d",
			ErrIllegalArgument, limits.IdealValue, limits.VariationLimit,
		)
	}

	return newSensor(reg, KindCarbonDioxide, readings, frequency, func(s *Sensor) {
		s.co2 = limits
	})
}

// NewNoise builds a noise sensor; readings are in decibels.
func NewNoise(reg Registrar, readings []int, frequency int) (*Sensor, error) {
	return newSensor(reg, KindNoise, readings, frequency, nil)
}

// NewOccupancy builds an occupancy sensor for a room holding up to capacity people.
func NewOccupancy(reg Registrar, readings []int, frequency, capacity int) (*Sensor, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity %d is negative", ErrIllegalArgument, capacity)
	}

	return newSensor(reg, KindOccupancy, readings, frequency, func(s *Sensor) {
		s.capacity = capacity
	})
}

// NewTemperature builds a temperature sensor. Its cadence is always TemperatureFrequency.
func NewTemperature(reg Registrar, readings []int) (*Sensor, error) {
	return newSensor(reg, KindTemperature, readings, TemperatureFrequency, nil)
}

// newSensor validates the shared parameters, applies the kind payload and
// registers the result. Nothing is registered when validation fails.
func newSensor(reg Registrar, kind Kind, readings []int, frequency int, apply func(*Sensor)) (*Sensor, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: %w", ErrIllegalArgument, errRegistrarRequired)
	}

	series, err := NewSeries(readings, frequency)
	if err != nil {
		return nil, err
	}

	s := &Sensor{
		id:     uuid.New(),
		kind:   kind,
		series: series,
	}

	if apply != nil {
		apply(s)
	}

	reg.Register(s)

	return s, nil
}

// ID returns the sensor identifier.
func (s *Sensor) ID() uuid.UUID {
	return s.id
}

// Kind returns the sensor variant.
func (s *Sensor) Kind() Kind {
	return s.kind
}

// CurrentReading returns the reading selected by the elapsed time.
func (s *Sensor) CurrentReading() int {
	return s.series.Current()
}

// Frequency returns the update cadence in time units.
func (s *Sensor) Frequency() int {
	return s.series.Frequency()
}

// TimeElapsed returns the units elapsed since construction.
func (s *Sensor) TimeElapsed() int {
	return s.series.Elapsed()
}

// Readings returns a copy of the raw samples.
func (s *Sensor) Readings() []int {
	return s.series.Readings()
}

// CO2Limits returns the operating range of a carbon dioxide sensor.
func (s *Sensor) CO2Limits() (CO2Limits, bool) {
	return s.co2, s.kind == KindCarbonDioxide
}

// Capacity returns the room capacity of an occupancy sensor.
func (s *Sensor) Capacity() (int, bool) {
	return s.capacity, s.kind == KindOccupancy
}

// AdvanceOneUnit implements clock.TimedItem.
func (s *Sensor) AdvanceOneUnit() {
	s.series.AdvanceOneUnit()
}

// String returns the summary, e.g.
// "TimedSensor: freq=3, readings=8,9,42, type=OccupancySensor, capacity=21".
func (s *Sensor) String() string {
	summary := s.series.String() + ", type=" + s.kind.String()

	switch s.kind {
	case KindCarbonDioxide:
		summary += ", idealPPM=" + strconv.Itoa(s.co2.IdealValue) +
			", varLimit=" + strconv.Itoa(s.co2.VariationLimit)
	case KindOccupancy:
		summary += ", capacity=" + strconv.Itoa(s.capacity)
	case KindNoise, KindTemperature:
	}

	return summary
}
