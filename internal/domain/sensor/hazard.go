package sensor

import "math"

const (
	// MaxHazardLevel is the most dangerous hazard level.
	MaxHazardLevel = 100

	// noiseReferenceDB is the loudness every noise reading is compared to.
	noiseReferenceDB = 70.0
	// noiseDoublingDB is the increase that doubles perceived loudness.
	noiseDoublingDB = 10.0
	// temperatureAlarm is the reading at which temperature becomes hazardous.
	temperatureAlarm = 68
)

// co2Band maps readings below limit to level.
type co2Band struct {
	limit int
	level int
}

// co2Bands are ordered by limit; readings at or above the last limit are MaxHazardLevel.
//
//nolint:gochecknoglobals // Read-only lookup table.
var co2Bands = []co2Band{
	{limit: 1000, level: 0},
	{limit: 2000, level: 25},
	{limit: 5000, level: 50},
}

// HazardLevel returns a value in [0, MaxHazardLevel] for the current reading.
func (s *Sensor) HazardLevel() int {
	reading := s.CurrentReading()

	switch s.kind {
	case KindCarbonDioxide:
		return carbonDioxideHazard(reading)
	case KindNoise:
		return noiseHazard(reading)
	case KindOccupancy:
		return occupancyHazard(reading, s.capacity)
	case KindTemperature:
		return temperatureHazard(reading)
	default:
		return 0
	}
}

// RelativeLoudness compares the current reading with a 70 dB reference.
// A reading of 67 dB gives about 0.8123 and 82 dB about 2.2974.
// It is meaningful for noise sensors only.
func (s *Sensor) RelativeLoudness() float64 {
	return relativeLoudness(s.CurrentReading())
}

func carbonDioxideHazard(ppm int) int {
	for _, band := range co2Bands {
		if ppm < band.limit {
			return band.level
		}
	}

	return MaxHazardLevel
}

func relativeLoudness(db int) float64 {
	return math.Pow(2, (float64(db)-noiseReferenceDB)/noiseDoublingDB)
}

func noiseHazard(db int) int {
	hazard := relativeLoudness(db) * MaxHazardLevel
	if hazard > MaxHazardLevel {
		return MaxHazardLevel
	}

	return int(math.Floor(hazard))
}

// occupancyHazard treats an empty room without capacity as safe and any
// occupant of a zero-capacity room as the maximum hazard.
func occupancyHazard(people, capacity int) int {
	if capacity == 0 {
		if people == 0 {
			return 0
		}

		return MaxHazardLevel
	}

	hazard := float64(people) / float64(capacity) * MaxHazardLevel
	if hazard >= MaxHazardLevel {
		return MaxHazardLevel
	}

	return int(math.Floor(hazard + 0.5))
}

func temperatureHazard(degrees int) int {
	if degrees >= temperatureAlarm {
		return MaxHazardLevel
	}

	return 0
}
