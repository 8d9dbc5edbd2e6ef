package manager

import (
	"snake-arena/game/entity"
	"snake-arena/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// InitialLength is the number of segments a freshly spawned snake has.
const InitialLength = 3

// PopulationManager owns the snakes of a session, keyed by player id.
type PopulationManager struct {
	snakes map[string]*entity.Snake
	order  []string
}

func NewPopulationManager() *PopulationManager {
	return &PopulationManager{
		snakes: make(map[string]*entity.Snake),
	}
}

// SpawnBody lays out a snake with its head on head and the remaining
// segments trailing behind it against dir. No wrapping is applied.
func SpawnBody(head types.Cell, dir entity.Direction) []types.Cell {
	dx, dy := dir.Vector()
	body := make([]types.Cell, InitialLength)
	for i := range body {
		body[i] = head.Add(-i*dx, -i*dy)
	}
	return body
}

// Spawn creates the snake for playerID. Player ids are unique per session.
func (pm *PopulationManager) Spawn(playerID string, head types.Cell, dir entity.Direction) (*entity.Snake, error) {
	if _, exists := pm.snakes[playerID]; exists {
		return nil, errors.Errorf("player %q already has a snake", playerID)
	}

	snake, err := entity.NewSnake(SpawnBody(head, dir), dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "spawn %s", playerID)
	}

	pm.snakes[playerID] = snake
	pm.order = maps.Keys(pm.snakes)
	slices.Sort(pm.order)
	return snake, nil
}

func (pm *PopulationManager) Get(playerID string) (*entity.Snake, bool) {
	s, ok := pm.snakes[playerID]
	return s, ok
}

// IDs returns the player ids in sorted order. The slice must not be modified.
func (pm *PopulationManager) IDs() []string {
	return pm.order
}

func (pm *PopulationManager) Len() int {
	return len(pm.snakes)
}
