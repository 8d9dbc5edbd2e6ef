package entity

import (
	"snake-arena/game/types"

	"github.com/gammazero/deque"
	"github.com/pkg/errors"
)

// ErrEmptyBody is returned when a snake is built without any segments.
var ErrEmptyBody = errors.New("snake body cannot be empty")

// Color is an RGB colour. The game never interprets it; frontends draw with it.
type Color struct {
	R, G, B uint8
}

// Snake owns an ordered body, head first, and the direction it travels in.
// The body never becomes empty once constructed.
type Snake struct {
	body      *deque.Deque[types.Cell]
	direction Direction
}

func NewSnake(body []types.Cell, direction Direction) (*Snake, error) {
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	if !direction.Valid() {
		return nil, errors.Errorf("invalid initial direction %d", int(direction))
	}

	d := deque.New[types.Cell](len(body))
	for _, c := range body {
		d.PushBack(c)
	}
	return &Snake{body: d, direction: direction}, nil
}

func (s *Snake) Head() types.Cell {
	return s.body.Front()
}

func (s *Snake) Direction() Direction {
	return s.direction
}

func (s *Snake) Len() int {
	return s.body.Len()
}

// Body returns a copy of the segments ordered from head to tail.
func (s *Snake) Body() []types.Cell {
	cells := make([]types.Cell, s.body.Len())
	for i := range cells {
		cells[i] = s.body.At(i)
	}
	return cells
}

// BodyCells returns the set of occupied cells.
func (s *Snake) BodyCells() map[types.Cell]struct{} {
	set := make(map[types.Cell]struct{}, s.body.Len())
	for i := 0; i < s.body.Len(); i++ {
		set[s.body.At(i)] = struct{}{}
	}
	return set
}

// SetDirection changes direction unless dir is an immediate reversal, which
// would run the head into the neck. Only the latest accepted request counts
// at the next move.
func (s *Snake) SetDirection(dir Direction) bool {
	if !dir.Valid() || dir == s.direction.Opposite() {
		return false
	}
	s.direction = dir
	return true
}

// NextHeadPosition is where the head would land on the next move. It does
// not change the snake.
func (s *Snake) NextHeadPosition(width, height int) (types.Cell, error) {
	dx, dy := s.direction.Vector()
	head := s.Head()
	return types.Grid{Width: width, Height: height}.Wrap(head.X+dx, head.Y+dy)
}

// Move advances the snake one cell and returns the new head. Unless grow is
// set the tail is dropped, keeping the length constant.
func (s *Snake) Move(width, height int, grow bool) (types.Cell, error) {
	next, err := s.NextHeadPosition(width, height)
	if err != nil {
		return types.Cell{}, err
	}

	s.body.PushFront(next)
	if !grow {
		s.body.PopBack()
	}
	return next, nil
}

// Step is a normal, non-growing move.
func (s *Snake) Step(width, height int) error {
	_, err := s.Move(width, height, false)
	return err
}

// CheckCollision reports whether the head is on any of the occupied cells.
func (s *Snake) CheckCollision(occupied []types.Cell) bool {
	head := s.Head()
	for _, c := range occupied {
		if c == head {
			return true
		}
	}
	return false
}

// CheckSelfCollision reports whether the head overlaps any other segment.
func (s *Snake) CheckSelfCollision() bool {
	head := s.Head()
	for i := 1; i < s.body.Len(); i++ {
		if s.body.At(i) == head {
			return true
		}
	}
	return false
}
