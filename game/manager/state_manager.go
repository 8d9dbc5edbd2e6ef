package manager

// GameStats is a point-in-time copy of the session counters.
type GameStats struct {
	Ticks   int
	Frames  int
	Lengths map[string]int
	// Longest is the largest length each player has reached.
	Longest map[string]int
}

// StateManager counts ticks and frames and tracks snake lengths for the HUD.
type StateManager struct {
	ticks   int
	frames  int
	lengths map[string]int
	longest map[string]int
}

func NewStateManager() *StateManager {
	return &StateManager{
		lengths: make(map[string]int),
		longest: make(map[string]int),
	}
}

func (sm *StateManager) RecordTick(pm *PopulationManager) {
	sm.ticks++
	sm.Observe(pm)
}

// Observe refreshes the length counters without counting a tick.
func (sm *StateManager) Observe(pm *PopulationManager) {
	for _, id := range pm.IDs() {
		snake, _ := pm.Get(id)
		n := snake.Len()
		sm.lengths[id] = n
		if n > sm.longest[id] {
			sm.longest[id] = n
		}
	}
}

func (sm *StateManager) RecordFrame() {
	sm.frames++
}

func (sm *StateManager) Ticks() int {
	return sm.ticks
}

func (sm *StateManager) Stats() GameStats {
	stats := GameStats{
		Ticks:   sm.ticks,
		Frames:  sm.frames,
		Lengths: make(map[string]int, len(sm.lengths)),
		Longest: make(map[string]int, len(sm.longest)),
	}
	for id, n := range sm.lengths {
		stats.Lengths[id] = n
	}
	for id, n := range sm.longest {
		stats.Longest[id] = n
	}
	return stats
}
