package game

import (
	"time"

	"snake-arena/game/entity"
	"snake-arena/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidConfig is returned for tick rates, frame rates or window
	// sizes the game cannot run with.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrDuplicateControl is returned when one key is bound to two players.
	ErrDuplicateControl = errors.New("key assigned to multiple players")
)

// Player ids of the built-in profiles.
const (
	PlayerA = "snake_a"
	PlayerB = "snake_b"
)

// PlayerProfile holds per-player controls, visuals and spawn metadata.
// Profiles are read-only once built.
type PlayerProfile struct {
	Name             string
	Color            entity.Color
	Controls         map[types.Key]entity.Direction
	SpawnHead        types.Cell
	InitialDirection entity.Direction
}

// GameConfig sizes the window and grid and sets the tick and frame rates.
type GameConfig struct {
	WindowWidth  int
	WindowHeight int
	CellSize     int
	// LogicHz is the number of simulation ticks per second.
	LogicHz int
	// FrameRate caps the outer render loop.
	FrameRate int

	BackgroundColor entity.Color
	GridLineColor   entity.Color
	SnakeAColor     entity.Color
	SnakeBColor     entity.Color
	EnableSnakeB    bool
}

// DefaultConfig is a 30x20 grid at 10 ticks per second with one player.
func DefaultConfig() GameConfig {
	return GameConfig{
		WindowWidth:     960,
		WindowHeight:    640,
		CellSize:        32,
		LogicHz:         10,
		FrameRate:       60,
		BackgroundColor: entity.Color{R: 18, G: 18, B: 22},
		GridLineColor:   entity.Color{R: 35, G: 35, B: 42},
		SnakeAColor:     entity.Color{R: 64, G: 220, B: 130},
		SnakeBColor:     entity.Color{R: 255, G: 165, B: 64},
	}
}

func (c GameConfig) GridWidth() int {
	if c.CellSize <= 0 {
		return 0
	}
	return c.WindowWidth / c.CellSize
}

func (c GameConfig) GridHeight() int {
	if c.CellSize <= 0 {
		return 0
	}
	return c.WindowHeight / c.CellSize
}

func (c GameConfig) Grid() types.Grid {
	return types.Grid{Width: c.GridWidth(), Height: c.GridHeight()}
}

// TickPeriod is the simulated time one tick covers.
func (c GameConfig) TickPeriod() time.Duration {
	return periodOf(c.LogicHz)
}

func periodOf(hz int) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(hz)
}

// Validate fails fast for invalid dimensions or tick-rate settings.
func (c GameConfig) Validate() error {
	if c.CellSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "cell size %d must be positive", c.CellSize)
	}
	if c.WindowWidth%c.CellSize != 0 || c.WindowHeight%c.CellSize != 0 {
		return errors.Wrapf(ErrInvalidConfig, "window %dx%d is not divisible by cell size %d",
			c.WindowWidth, c.WindowHeight, c.CellSize)
	}
	if err := c.Grid().Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.LogicHz <= 0 || c.TickPeriod() <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "logic rate %d must be positive and at most 1e9", c.LogicHz)
	}
	if c.FrameRate <= 0 || periodOf(c.FrameRate) <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "frame rate %d must be positive and at most 1e9", c.FrameRate)
	}
	return nil
}

// BuildProfiles creates the default player profiles for the config. Snake A
// is always present; snake B only when EnableSnakeB is set.
func (c GameConfig) BuildProfiles() map[string]PlayerProfile {
	midY := c.GridHeight() / 2
	profiles := map[string]PlayerProfile{
		PlayerA: {
			Name:  "Snake A",
			Color: c.SnakeAColor,
			Controls: map[types.Key]entity.Direction{
				types.KeyUp:    entity.Up,
				types.KeyDown:  entity.Down,
				types.KeyLeft:  entity.Left,
				types.KeyRight: entity.Right,
			},
			SpawnHead:        types.Cell{X: c.GridWidth() / 3, Y: midY},
			InitialDirection: entity.Right,
		},
	}

	if c.EnableSnakeB {
		profiles[PlayerB] = PlayerProfile{
			Name:  "Snake B",
			Color: c.SnakeBColor,
			Controls: map[types.Key]entity.Direction{
				types.KeyW: entity.Up,
				types.KeyS: entity.Down,
				types.KeyA: entity.Left,
				types.KeyD: entity.Right,
			},
			SpawnHead:        types.Cell{X: (c.GridWidth() * 2) / 3, Y: midY},
			InitialDirection: entity.Left,
		}
	}

	return profiles
}

// BuildControlIndex maps every bound key to its player and rejects keys
// claimed by more than one profile.
func BuildControlIndex(profiles map[string]PlayerProfile) (map[types.Key]string, error) {
	ids := maps.Keys(profiles)
	slices.Sort(ids)

	index := make(map[types.Key]string)
	for _, id := range ids {
		for key := range profiles[id].Controls {
			if owner, taken := index[key]; taken {
				return nil, errors.Wrapf(ErrDuplicateControl, "key %s bound to %s and %s", key, owner, id)
			}
			index[key] = id
		}
	}
	return index, nil
}
