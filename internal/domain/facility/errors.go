package facility

import (
	"errors"

	"github.com/oshokin/bms-sim/internal/domain/sensor"
)

var (
	// ErrIllegalArgument is returned for malformed dimensions, areas or numbers.
	// It is the same sentinel the sensor package uses.
	ErrIllegalArgument = sensor.ErrIllegalArgument
	// ErrDuplicateFloor is returned when a floor number is already taken.
	ErrDuplicateFloor = errors.New("duplicate floor")
	// ErrDuplicateRoom is returned when a room number is already taken on a floor.
	ErrDuplicateRoom = errors.New("duplicate room")
	// ErrDuplicateSensor is returned when a room already has a sensor of the same kind.
	ErrDuplicateSensor = errors.New("duplicate sensor")
	// ErrNoFloorBelow is returned when the supporting floor is missing.
	ErrNoFloorBelow = errors.New("no floor below")
	// ErrFloorTooSmall is returned when the supporting floor is smaller than the new one.
	ErrFloorTooSmall = errors.New("floor below is too small")
	// ErrInsufficientSpace is returned when a room does not fit in the remaining floor area.
	ErrInsufficientSpace = errors.New("insufficient space")
	// ErrFireDrill is returned when a building has nothing to evacuate.
	ErrFireDrill = errors.New("fire drill not possible")
)
