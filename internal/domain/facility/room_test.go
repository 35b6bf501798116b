package facility

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/bms-sim/internal/domain/clock"
	"github.com/oshokin/bms-sim/internal/domain/sensor"
)

// newTestSensors builds one sensor of every kind on a fresh registry.
func newTestSensors(t *testing.T) (*clock.Registry, map[sensor.Kind]*sensor.Sensor) {
	t.Helper()

	reg := clock.NewRegistry()

	co2, err := sensor.NewCarbonDioxide(reg, []int{750, 1000}, 2, sensor.CO2Limits{IdealValue: 600, VariationLimit: 100})
	require.NoError(t, err)

	noise, err := sensor.NewNoise(reg, []int{67, 75, 82}, 2)
	require.NoError(t, err)

	occupancy, err := sensor.NewOccupancy(reg, []int{8, 9, 42}, 3, 21)
	require.NoError(t, err)

	temperature, err := sensor.NewTemperature(reg, []int{5, 68, 69})
	require.NoError(t, err)

	return reg, map[sensor.Kind]*sensor.Sensor{
		sensor.KindCarbonDioxide: co2,
		sensor.KindNoise:         noise,
		sensor.KindOccupancy:     occupancy,
		sensor.KindTemperature:   temperature,
	}
}

// TestRoom_AddSensor_SortedAndUnique verifies alphabetical ordering and the one-per-kind rule.
func TestRoom_AddSensor_SortedAndUnique(t *testing.T) {
	t.Parallel()

	reg, sensors := newTestSensors(t)
	room := NewRoom(1, RoomTypeStudy, 12.12)

	for _, kind := range []sensor.Kind{
		sensor.KindTemperature,
		sensor.KindOccupancy,
		sensor.KindCarbonDioxide,
		sensor.KindNoise,
	} {
		require.NoError(t, room.AddSensor(sensors[kind]))

		got := room.Sensors()
		for i := 1; i < len(got); i++ {
			require.Less(t, got[i-1].Kind().String(), got[i].Kind().String())
		}
	}

	other, err := sensor.NewOccupancy(reg, []int{1}, 1, 5)
	require.NoError(t, err)
	require.ErrorIs(t, room.AddSensor(other), ErrDuplicateSensor)
	require.Len(t, room.Sensors(), 4)

	require.ErrorIs(t, room.AddSensor(nil), ErrIllegalArgument)

	require.Equal(t, "Room #1: type=STUDY, area=12.12m^2, sensors=4", room.String())
}

// TestRoom_SensorLookup verifies lookup by kind and by name.
func TestRoom_SensorLookup(t *testing.T) {
	t.Parallel()

	_, sensors := newTestSensors(t)
	room := NewRoom(2, RoomTypeOffice, 20)

	require.NoError(t, room.AddSensor(sensors[sensor.KindNoise]))

	got, ok := room.Sensor(sensor.KindNoise)
	require.True(t, ok)
	require.Same(t, sensors[sensor.KindNoise], got)

	got, ok = room.SensorByName("NoiseSensor")
	require.True(t, ok)
	require.Same(t, sensors[sensor.KindNoise], got)

	got, ok = room.SensorByName("TemperatureSensor")
	require.False(t, ok)
	require.Nil(t, got)

	_, ok = room.Sensor(sensor.KindCarbonDioxide)
	require.False(t, ok)
}

// TestRoom_SensorsAreCopied ensures callers cannot change the internal sensor list.
func TestRoom_SensorsAreCopied(t *testing.T) {
	t.Parallel()

	_, sensors := newTestSensors(t)
	room := NewRoom(3, RoomTypeLaboratory, 10)

	require.NoError(t, room.AddSensor(sensors[sensor.KindNoise]))

	list := room.Sensors()
	list[0] = nil

	require.NotNil(t, room.Sensors()[0])
}

// TestRoom_FireDrillAndHazard checks the drill flag and the aggregated hazard.
func TestRoom_FireDrillAndHazard(t *testing.T) {
	t.Parallel()

	reg, sensors := newTestSensors(t)
	room := NewRoom(4, RoomTypeStudy, 15)

	require.False(t, room.FireDrillOngoing())
	require.Zero(t, room.MaxHazardLevel())

	room.SetFireDrill(true)
	require.True(t, room.FireDrillOngoing())
	room.SetFireDrill(false)
	require.False(t, room.FireDrillOngoing())

	require.NoError(t, room.AddSensor(sensors[sensor.KindOccupancy]))
	require.NoError(t, room.AddSensor(sensors[sensor.KindCarbonDioxide]))
	require.Equal(t, 38, room.MaxHazardLevel())

	reg.AdvanceOneUnit()
	require.NoError(t, room.AddSensor(sensors[sensor.KindTemperature]))
	require.Equal(t, 100, room.MaxHazardLevel())
}

// TestParseRoomType accepts any case and rejects unknown types.
func TestParseRoomType(t *testing.T) {
	t.Parallel()

	got, err := ParseRoomType(" laboratory ")
	require.NoError(t, err)
	require.Equal(t, RoomTypeLaboratory, got)

	_, err = ParseRoomType("kitchen")
	require.ErrorIs(t, err, ErrIllegalArgument)

	require.True(t, AnyRoomType.Matches(RoomTypeOffice))
	require.False(t, RoomTypeStudy.Matches(RoomTypeOffice))
	require.Len(t, AllRoomTypes(), 3)
}
