package sensor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/bms-sim/internal/domain/clock"
)

// TestConstructors_RegisterWithClock verifies successful construction registers the sensor.
func TestConstructors_RegisterWithClock(t *testing.T) {
	t.Parallel()

	reg := clock.NewRegistry()

	co2, err := NewCarbonDioxide(reg, []int{750}, 2, CO2Limits{IdealValue: 600, VariationLimit: 100})
	require.NoError(t, err)

	_, err = NewNoise(reg, []int{67}, 1)
	require.NoError(t, err)

	_, err = NewOccupancy(reg, []int{8}, 3, 21)
	require.NoError(t, err)

	_, err = NewTemperature(reg, []int{5})
	require.NoError(t, err)

	require.Equal(t, 4, reg.Len())
	require.Equal(t, KindCarbonDioxide, co2.Kind())
	require.NotEqual(t, co2.ID().String(), "")
}

// TestConstructors_Validation verifies failures are reported and nothing is registered.
func TestConstructors_Validation(t *testing.T) {
	t.Parallel()

	reg := clock.NewRegistry()

	_, err := NewCarbonDioxide(reg, []int{1}, 1, CO2Limits{IdealValue: 0, VariationLimit: 1})
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = NewCarbonDioxide(reg, []int{1}, 1, CO2Limits{IdealValue: 10, VariationLimit: 0})
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = NewCarbonDioxide(reg, []int{1}, 1, CO2Limits{IdealValue: 10, VariationLimit: 11})
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = NewOccupancy(reg, []int{1}, 1, -1)
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = NewNoise(reg, []int{1}, 7)
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = NewTemperature(reg, nil)
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = NewNoise(nil, []int{1}, 1)
	require.ErrorIs(t, err, ErrIllegalArgument)

	require.Zero(t, reg.Len())

	// Ideal value equal to the variation limit is allowed.
	_, err = NewCarbonDioxide(reg, []int{1}, 1, CO2Limits{IdealValue: 10, VariationLimit: 10})
	require.NoError(t, err)
}

// TestTemperature_FixedFrequency verifies temperature sensors always update every unit.
func TestTemperature_FixedFrequency(t *testing.T) {
	t.Parallel()

	reg := clock.NewRegistry()

	s, err := NewTemperature(reg, []int{5, 68, 69})
	require.NoError(t, err)
	require.Equal(t, TemperatureFrequency, s.Frequency())

	reg.AdvanceOneUnit()
	require.Equal(t, 68, s.CurrentReading())
	require.Equal(t, 1, s.TimeElapsed())
}

// TestSensor_Parameters verifies kind-specific accessors.
func TestSensor_Parameters(t *testing.T) {
	t.Parallel()

	reg := clock.NewRegistry()
	limits := CO2Limits{IdealValue: 600, VariationLimit: 100}

	co2, err := NewCarbonDioxide(reg, []int{750}, 2, limits)
	require.NoError(t, err)

	got, ok := co2.CO2Limits()
	require.True(t, ok)
	require.Equal(t, limits, got)

	_, ok = co2.Capacity()
	require.False(t, ok)

	occupancy, err := NewOccupancy(reg, []int{8}, 3, 21)
	require.NoError(t, err)

	capacity, ok := occupancy.Capacity()
	require.True(t, ok)
	require.Equal(t, 21, capacity)

	_, ok = occupancy.CO2Limits()
	require.False(t, ok)
}

// TestSensor_String checks the exact summary format of every kind.
func TestSensor_String(t *testing.T) {
	t.Parallel()

	reg := clock.NewRegistry()

	co2, err := NewCarbonDioxide(
		reg,
		[]int{750, 1000, 1500, 2000, 2500, 5000, 5100},
		2,
		CO2Limits{IdealValue: 600, VariationLimit: 100},
	)
	require.NoError(t, err)

	noise, err := NewNoise(reg, []int{67, 75, 82}, 2)
	require.NoError(t, err)

	occupancy, err := NewOccupancy(reg, []int{8, 9, 42}, 3, 21)
	require.NoError(t, err)

	temperature, err := NewTemperature(reg, []int{5, 68, 69})
	require.NoError(t, err)

	require.Equal(t,
		"TimedSensor: freq=2, readings=750,1000,1500,2000,2500,5000,5100, type=CarbonDioxideSensor, idealPPM=600, varLimit=100",
		co2.String())
	require.Equal(t, "TimedSensor: freq=2, readings=67,75,82, type=NoiseSensor", noise.String())
	require.Equal(t, "TimedSensor: freq=3, readings=8,9,42, type=OccupancySensor, capacity=21", occupancy.String())
	require.Equal(t, "TimedSensor: freq=1, readings=5,68,69, type=TemperatureSensor", temperature.String())
}
