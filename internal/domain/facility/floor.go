package facility

import (
	"fmt"
	"slices"
)

const (
	// MinFloorWidth is the smallest floor width, in metres.
	MinFloorWidth = 5
	// MinFloorLength is the smallest floor length, in metres.
	MinFloorLength = 5
)

// Floor hosts rooms within its width by length area.
type Floor struct {
	// number identifies the floor in its building; floor 1 is the ground floor.
	number int
	// width in metres.
	width float64
	// length in metres.
	length float64
	// rooms in insertion order.
	rooms []*Room
	// availableArea is the area not taken by rooms.
	availableArea float64
}

// NewFloor creates an empty floor. Dimensions are validated when the floor is added to a building.
func NewFloor(number int, width, length float64) *Floor {
	return &Floor{
		number:        number,
		width:         width,
		length:        length,
		availableArea: width * length,
	}
}

// Number returns the floor number.
func (f *Floor) Number() int {
	return f.number
}

// Width returns the floor width.
func (f *Floor) Width() float64 {
	return f.width
}

// Length returns the floor length.
func (f *Floor) Length() float64 {
	return f.length
}

// Area returns width times length.
func (f *Floor) Area() float64 {
	return f.width * f.length
}

// AvailableArea returns the area not occupied by rooms.
func (f *Floor) AvailableArea() float64 {
	return f.availableArea
}

// OccupiedArea returns the area taken by rooms.
func (f *Floor) OccupiedArea() float64 {
	return f.Area() - f.availableArea
}

// Rooms returns the rooms in insertion order. The returned slice is a copy.
func (f *Floor) Rooms() []*Room {
	return slices.Clone(f.rooms)
}

// RoomByNumber looks a room up by number.
func (f *Floor) RoomByNumber(number int) (*Room, bool) {
	for _, r := range f.rooms {
		if r.Number() == number {
			return r, true
		}
	}

	return nil, false
}

// AddRoom places the room on the floor if it is large enough, its number is
// free and it fits into the remaining area.
func (f *Floor) AddRoom(r *Room) error {
	if r == nil {
		return fmt.Errorf("%w: room is nil", ErrIllegalArgument)
	}

	if !r.Type().Valid() {
		return fmt.Errorf("%w: room %d has unknown type %q", ErrIllegalArgument, r.Number(), r.Type())
	}

	if r.Area() < MinRoomArea {
		return fmt.Errorf("%w: room %d area %.2f is below %d", ErrIllegalArgument, r.Number(), r.Area(), MinRoomArea)
	}

	if _, ok := f.RoomByNumber(r.Number()); ok {
		return fmt.Errorf("%w: room %d on floor %d", ErrDuplicateRoom, r.Number(), f.number)
	}

	if r.Area() > f.availableArea {
		return fmt.Errorf(
			"%w: room %d needs %.2f, floor %d has %.2f left",
			ErrInsufficientSpace, r.Number(), r.Area(), f.number, f.availableArea,
		)
	}

	f.rooms = append(f.rooms, r)
	f.availableArea -= r.Area()

	return nil
}

// FireDrill starts a drill in every room of the given type, or in every room for AnyRoomType.
func (f *Floor) FireDrill(roomType RoomType) {
	for _, r := range f.rooms {
		if roomType.Matches(r.Type()) {
			r.SetFireDrill(true)
		}
	}
}

// CancelFireDrill stops the drill in every room.
func (f *Floor) CancelFireDrill() {
	for _, r := range f.rooms {
		r.SetFireDrill(false)
	}
}

// String returns the summary, e.g. "Floor #1: width=20.00m, length=25.00m, rooms=3".
func (f *Floor) String() string {
	return fmt.Sprintf("Floor #%d: width=%.2fm, length=%.2fm, rooms=%d", f.number, f.width, f.length, len(f.rooms))
}
