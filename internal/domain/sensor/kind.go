package sensor

import (
	"fmt"
	"strings"
)

// Kind identifies a sensor variant.
type Kind int

// Supported sensor kinds. The zero value is not a valid kind.
const (
	KindCarbonDioxide Kind = iota + 1
	KindNoise
	KindOccupancy
	KindTemperature
)

// kindNames are the canonical names, also used for ordering and lookup.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	KindCarbonDioxide: "CarbonDioxideSensor",
	KindNoise:         "NoiseSensor",
	KindOccupancy:     "OccupancySensor",
	KindTemperature:   "TemperatureSensor",
}

// kindAliases maps lower-cased short names to kinds.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindAliases = map[string]Kind{
	"co2":           KindCarbonDioxide,
	"carbondioxide": KindCarbonDioxide,
	"noise":         KindNoise,
	"occupancy":     KindOccupancy,
	"temperature":   KindTemperature,
}

// AllKinds returns every kind in canonical (alphabetical) order.
func AllKinds() []Kind {
	return []Kind{KindCarbonDioxide, KindNoise, KindOccupancy, KindTemperature}
}

// String returns the canonical name, e.g. "NoiseSensor".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]

	return ok
}

// ParseKind accepts a canonical name or a short alias, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for kind, name := range kindNames {
		if strings.ToLower(name) == s {
			return kind, nil
		}
	}

	if kind, ok := kindAliases[s]; ok {
		return kind, nil
	}

	return 0, fmt.Errorf("%w: unknown sensor type %q", ErrIllegalArgument, s)
}
