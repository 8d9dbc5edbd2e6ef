package manager

import (
	"fmt"

	"snake-arena/game/entity"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	SelfCollision CollisionType = iota + 1
	SnakeCollision
)

func (t CollisionType) String() string {
	switch t {
	case SelfCollision:
		return "self"
	case SnakeCollision:
		return "snake"
	default:
		return fmt.Sprintf("CollisionType(%d)", int(t))
	}
}

// Collision records a head landing on an occupied cell after a tick.
type Collision struct {
	Player string
	Type   CollisionType
	// Other is the player whose body was hit; empty for self collisions.
	Other string
}

type CollisionManager struct{}

func NewCollisionManager() *CollisionManager {
	return &CollisionManager{}
}

// Check reports, in player order, every snake whose head overlaps its own
// body or another snake. It does not change any snake.
func (cm *CollisionManager) Check(pm *PopulationManager) []Collision {
	var collisions []Collision
	ids := pm.IDs()

	for _, id := range ids {
		snake, _ := pm.Get(id)
		if snake.CheckSelfCollision() {
			collisions = append(collisions, Collision{Player: id, Type: SelfCollision})
		}

		for _, otherID := range ids {
			if otherID == id {
				continue
			}
			other, _ := pm.Get(otherID)
			if cm.isSnakeCollision(snake, other) {
				collisions = append(collisions, Collision{Player: id, Type: SnakeCollision, Other: otherID})
			}
		}
	}
	return collisions
}

func (cm *CollisionManager) isSnakeCollision(snake, other *entity.Snake) bool {
	_, hit := other.BodyCells()[snake.Head()]
	return hit
}
