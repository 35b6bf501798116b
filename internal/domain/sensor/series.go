package sensor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// MinFrequency is the smallest allowed update cadence, in time units.
	MinFrequency = 1
	// MaxFrequency is the largest allowed update cadence, in time units.
	MaxFrequency = 5
)

// Series replays raw readings, moving to the next one every frequency units
// and wrapping around at the end.
type Series struct {
	// readings are the raw samples; never empty.
	readings []int
	// frequency is the number of units between reading changes.
	frequency int
	// elapsed is the number of units since construction.
	elapsed int
	// index points at the current reading.
	index int
}

// NewSeries validates and copies the readings.
func NewSeries(readings []int, frequency int) (*Series, error) {
	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: readings must not be empty", ErrIllegalArgument)
	}

	for i, r := range readings {
		if r < 0 {
			return nil, fmt.Errorf("%w: reading #%d is negative (%d)", ErrIllegalArgument, i, r)
		}
	}

	if frequency < MinFrequency || frequency > MaxFrequency {
		return nil, fmt.Errorf(
			"%w: update frequency %d is outside [%d, %d]",
			ErrIllegalArgument, frequency, MinFrequency, MaxFrequency,
		)
	}

	return &Series{
		readings:  slices.Clone(readings),
		frequency: frequency,
	}, nil
}

// Current returns the reading selected by the elapsed time.
func (s *Series) Current() int {
	return s.readings[s.index]
}

// Index returns the position of the current reading.
func (s *Series) Index() int {
	return s.index
}

// Elapsed returns the units elapsed since construction.
func (s *Series) Elapsed() int {
	return s.elapsed
}

// Frequency returns the update cadence.
func (s *Series) Frequency() int {
	return s.frequency
}

// Readings returns a copy of the raw samples.
func (s *Series) Readings() []int {
	return slices.Clone(s.readings)
}

// AdvanceOneUnit moves time forward; the index only changes on cadence boundaries.
func (s *Series) AdvanceOneUnit() {
	s.elapsed++

	if s.elapsed%s.frequency == 0 {
		s.index = (s.elapsed / s.frequency) % len(s.readings)
	}
}

// String renders the shared part of every sensor summary.
func (s *Series) String() string {
	values := make([]string, len(s.readings))
	for i, r := range s.readings {
		values[i] = strconv.Itoa(r)
	}

	return "TimedSensor: freq=" + strconv.Itoa(s.frequency) + ", readings=" + strings.Join(values, ",")
}
