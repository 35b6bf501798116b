package sensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewSeries_Validation checks readings and cadence validation.
func TestNewSeries_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		readings  []int
		frequency int
	}{
		"nil readings":       {readings: nil, frequency: 1},
		"empty readings":     {readings: []int{}, frequency: 1},
		"negative reading":   {readings: []int{1, -1}, frequency: 1},
		"frequency too low":  {readings: []int{1}, frequency: 0},
		"frequency too high": {readings: []int{1}, frequency: 6},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSeries(tc.readings, tc.frequency)
			require.ErrorIs(t, err, ErrIllegalArgument)
			require.Nil(t, s)
		})
	}

	s, err := NewSeries([]int{0}, MaxFrequency)
	require.NoError(t, err)
	require.Zero(t, s.Current())
}

// TestSeries_InitialState verifies the first reading is current and no time has elapsed.
func TestSeries_InitialState(t *testing.T) {
	t.Parallel()

	s, err := NewSeries([]int{4, 5, 6}, 3)
	require.NoError(t, err)
	require.Equal(t, 4, s.Current())
	require.Zero(t, s.Elapsed())
	require.Zero(t, s.Index())
	require.Equal(t, 3, s.Frequency())
}

// TestSeries_IndexSchedule verifies the index only moves on cadence boundaries and wraps.
func TestSeries_IndexSchedule(t *testing.T) {
	t.Parallel()

	s, err := NewSeries([]int{10, 20, 30}, 2)
	require.NoError(t, err)

	// Index expected after 0..7 elapsed units.
	want := []int{0, 0, 1, 1, 2, 2, 0, 0}
	for elapsed, index := range want {
		require.Equal(t, elapsed, s.Elapsed())
		require.Equalf(t, index, s.Index(), "elapsed=%d", elapsed)
		s.AdvanceOneUnit()
	}
}

// TestSeries_ReadingsAreCopied ensures callers cannot alias the internal readings.
func TestSeries_ReadingsAreCopied(t *testing.T) {
	t.Parallel()

	input := []int{1, 2}

	s, err := NewSeries(input, 1)
	require.NoError(t, err)

	input[0] = 99

	out := s.Readings()
	out[1] = 99

	require.Equal(t, []int{1, 2}, s.Readings())
	require.Equal(t, 1, s.Current())
}

// TestSeries_String checks the shared summary prefix.
func TestSeries_String(t *testing.T) {
	t.Parallel()

	s, err := NewSeries([]int{67, 75, 82}, 2)
	require.NoError(t, err)
	require.Equal(t, "TimedSensor: freq=2, readings=67,75,82", s.String())
}
