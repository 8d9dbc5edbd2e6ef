package manager

import (
	"snake-arena/game/types"
)

// FoodManager keeps eggs on fixed cells. A snake whose next head lands on
// an egg grows by one and the egg is consumed. Eggs are never respawned.
type FoodManager struct {
	foodList []types.Cell
	eaten    map[string]int
}

func NewFoodManager(eggs ...types.Cell) *FoodManager {
	fm := &FoodManager{
		foodList: make([]types.Cell, 0, len(eggs)),
		eaten:    make(map[string]int),
	}
	for _, egg := range eggs {
		fm.AddFood(egg)
	}
	return fm
}

// Grow is consulted once per snake per tick with its prospective head.
func (fm *FoodManager) Grow(playerID string, next types.Cell) bool {
	if !fm.RemoveFood(next) {
		return false
	}
	fm.eaten[playerID]++
	return true
}

func (fm *FoodManager) GetFoodList() []types.Cell {
	return fm.foodList
}

// Eaten returns how many eggs playerID has consumed.
func (fm *FoodManager) Eaten(playerID string) int {
	return fm.eaten[playerID]
}

func (fm *FoodManager) AddFood(food types.Cell) {
	for _, f := range fm.foodList {
		if f == food {
			return
		}
	}
	fm.foodList = append(fm.foodList, food)
}

func (fm *FoodManager) RemoveFood(food types.Cell) bool {
	for i, f := range fm.foodList {
		if f == food {
			// Remove food from list by swapping with last element and truncating
			fm.foodList[i] = fm.foodList[len(fm.foodList)-1]
			fm.foodList = fm.foodList[:len(fm.foodList)-1]
			return true
		}
	}
	return false
}
