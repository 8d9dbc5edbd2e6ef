package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidDimension is returned when a grid width or height is not positive.
var ErrInvalidDimension = errors.New("invalid grid dimension")

// Cell is a position on the game grid.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the cell offset by (dx, dy) without wrapping.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Validate fails with ErrInvalidDimension unless both dimensions are positive.
func (g Grid) Validate() error {
	return validate(g.Width, g.Height)
}

// Wrap folds (x, y) back onto the grid.
func (g Grid) Wrap(x, y int) (Cell, error) {
	return Wrap(x, y, g.Width, g.Height)
}

// Contains reports whether c lies inside the grid without wrapping.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Wrap maps (x, y) onto a toroidal grid of the given size. Negative
// coordinates wrap to the far edge, so the result always lies in
// [0,width) x [0,height).
func Wrap(x, y, width, height int) (Cell, error) {
	if err := validate(width, height); err != nil {
		return Cell{}, err
	}
	return Cell{X: floorMod(x, width), Y: floorMod(y, height)}, nil
}

func floorMod(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}

func validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "grid %dx%d", width, height)
	}
	return nil
}
