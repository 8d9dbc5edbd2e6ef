package entity

import "fmt"

// Direction is one of the four cardinal movement directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var (
	directionVectors = [...][2]int{
		Up:    {0, -1},
		Down:  {0, 1},
		Left:  {-1, 0},
		Right: {1, 0},
	}
	opposites = [...]Direction{
		Up:    Down,
		Down:  Up,
		Left:  Right,
		Right: Left,
	}
	directionNames = [...]string{
		Up:    "Up",
		Down:  "Down",
		Left:  "Left",
		Right: "Right",
	}
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Vector returns the (dx, dy) delta for one step in this direction.
// Y grows downward.
func (d Direction) Vector() (dx, dy int) {
	v := directionVectors[d]
	return v[0], v[1]
}

// Opposite returns the direction pointing the other way on the same axis.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}
