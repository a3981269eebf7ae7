package draft

import "fmt"

type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*d = Left
	case "right":
		*d = Right
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// DirectionFor returns the passing direction of a round: only round 2 passes right.
func DirectionFor(round int) Direction {
	if round == 2 {
		return Right
	}
	return Left
}

// Receiver returns the seat that gets seat's pack when passing in direction d.
func Receiver(seat, seats int, d Direction) int {
	if d == Left {
		return (seat + 1) % seats
	}
	return (seat - 1 + seats) % seats
}

// Rotate passes every pack one seat in direction d. packs[i] is what seat i holds; the
// result is what each seat holds afterwards.
func Rotate[T any](packs []T, d Direction) []T {
	out := make([]T, len(packs))
	for i, p := range packs {
		out[Receiver(i, len(packs), d)] = p
	}
	return out
}
