package facility

import (
	"fmt"
	"slices"
)

// Building is an ordered stack of floors.
type Building struct {
	// name is free text and need not be unique.
	name string
	// floors in insertion order.
	floors []*Floor
}

// NewBuilding creates a building without floors.
func NewBuilding(name string) *Building {
	return &Building{
		name: name,
	}
}

// Name returns the building name.
func (b *Building) Name() string {
	return b.name
}

// Floors returns the floors in insertion order. The returned slice is a copy.
func (b *Building) Floors() []*Floor {
	return slices.Clone(b.floors)
}

// FloorByNumber looks a floor up by number.
func (b *Building) FloorByNumber(number int) (*Floor, bool) {
	for _, f := range b.floors {
		if f.Number() == number {
			return f, true
		}
	}

	return nil, false
}

// AddFloor stacks f onto the building. Floor 1 needs no support; any other
// floor needs the floor directly below it, at least as wide and as long.
func (b *Building) AddFloor(f *Floor) error {
	if f == nil {
		return fmt.Errorf("%w: floor is nil", ErrIllegalArgument)
	}

	if f.Number() <= 0 || f.Width() < MinFloorWidth || f.Length() < MinFloorLength {
		return fmt.Errorf(
			"%w: floor %d with width %.2f and length %.2f (minimum %dx%d)",
			ErrIllegalArgument, f.Number(), f.Width(), f.Length(), MinFloorWidth, MinFloorLength,
		)
	}

	if _, ok := b.FloorByNumber(f.Number()); ok {
		return fmt.Errorf("%w: floor %d", ErrDuplicateFloor, f.Number())
	}

	if f.Number() == 1 {
		b.floors = append(b.floors, f)

		return nil
	}

	below, ok := b.FloorByNumber(f.Number() - 1)
	if !ok {
		return fmt.Errorf("%w: floor %d needs floor %d", ErrNoFloorBelow, f.Number(), f.Number()-1)
	}

	if f.Width() > below.Width() || f.Length() > below.Length() {
		return fmt.Errorf(
			"%w: floor %d (%.2fx%.2f) cannot rest on floor %d (%.2fx%.2f)",
			ErrFloorTooSmall, f.Number(), f.Width(), f.Length(), below.Number(), below.Width(), below.Length(),
		)
	}

	b.floors = append(b.floors, f)

	return nil
}

// FireDrill starts a drill in matching rooms on every floor. It fails when
// the building has no floors or no floor has rooms.
func (b *Building) FireDrill(roomType RoomType) error {
	if len(b.floors) == 0 {
		return fmt.Errorf("%w: building %q has no floors", ErrFireDrill, b.name)
	}

	hasRooms := slices.ContainsFunc(b.floors, func(f *Floor) bool {
		return len(f.rooms) > 0
	})
	if !hasRooms {
		return fmt.Errorf("%w: building %q has no rooms", ErrFireDrill, b.name)
	}

	for _, f := range b.floors {
		f.FireDrill(roomType)
	}

	return nil
}

// CancelFireDrill stops every drill in the building.
func (b *Building) CancelFireDrill() {
	for _, f := range b.floors {
		f.CancelFireDrill()
	}
}

// String returns the summary, e.g. `Building: name="Test", floors=3`.
func (b *Building) String() string {
	return fmt.Sprintf("Building: name=\"%s\", floors=%d", b.name, len(b.floors))
}
