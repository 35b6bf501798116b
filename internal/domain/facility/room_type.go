package facility

import (
	"fmt"
	"strings"
)

// RoomType classifies rooms for targeted fire drills.
type RoomType string

// Supported room types.
const (
	RoomTypeStudy      RoomType = "STUDY"
	RoomTypeOffice     RoomType = "OFFICE"
	RoomTypeLaboratory RoomType = "LABORATORY"
)

// AnyRoomType matches every room in a fire drill.
const AnyRoomType RoomType = ""

// AllRoomTypes returns every supported room type.
func AllRoomTypes() []RoomType {
	return []RoomType{RoomTypeStudy, RoomTypeOffice, RoomTypeLaboratory}
}

// Valid reports whether t is a supported room type.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStudy, RoomTypeOffice, RoomTypeLaboratory:
		return true
	default:
		return false
	}
}

// Matches reports whether a room of type other is selected by t.
func (t RoomType) Matches(other RoomType) bool {
	return t == AnyRoomType || t == other
}

// ParseRoomType parses a room type ignoring case and surrounding spaces.
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown room type %q", ErrIllegalArgument, s)
	}

	return t, nil
}
