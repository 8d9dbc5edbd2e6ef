package game

import (
	"snake-arena/game/entity"
	"snake-arena/game/manager"
	"snake-arena/game/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TickEffect decides, before a snake moves, whether it grows this tick.
// next is the cell its head is about to enter.
type TickEffect interface {
	Grow(playerID string, next types.Cell) bool
}

// PlayerView is the read-only state of one player handed to renderers.
type PlayerView struct {
	ID        string
	Name      string
	Color     entity.Color
	Direction entity.Direction
	// Eggs counts the eggs this player has eaten.
	Eggs int
	// Body is ordered head first.
	Body []types.Cell
}

// Frame is everything a renderer needs for one frame. Players are sorted
// by id.
type Frame struct {
	Config  GameConfig
	Grid    types.Grid
	Players []PlayerView
	Food    []types.Cell
	Stats   manager.GameStats
}

type Option func(*Game)

// WithProfiles replaces the profiles the config would build.
func WithProfiles(profiles map[string]PlayerProfile) Option {
	return func(g *Game) {
		g.Profiles = profiles
	}
}

// WithEffects registers hooks consulted on every tick.
func WithEffects(effects ...TickEffect) Option {
	return func(g *Game) {
		g.effects = append(g.effects, effects...)
	}
}

// WithFood places eggs on fixed cells and draws them each frame.
func WithFood(fm *manager.FoodManager) Option {
	return func(g *Game) {
		g.food = fm
		g.effects = append(g.effects, fm)
	}
}

// Game is one session: config, player profiles and the snakes they steer.
type Game struct {
	UUID     string
	Config   GameConfig
	Grid     types.Grid
	Profiles map[string]PlayerProfile

	controlIndex map[types.Key]string
	population   *manager.PopulationManager
	collisions   *manager.CollisionManager
	state        *manager.StateManager
	food         *manager.FoodManager
	effects      []TickEffect

	lastCollisions []manager.Collision
	log            *log.Entry
}

func NewGame(cfg GameConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gameUUID := uuid.New().String()
	g := &Game{
		UUID:       gameUUID,
		Config:     cfg,
		Grid:       cfg.Grid(),
		population: manager.NewPopulationManager(),
		collisions: manager.NewCollisionManager(),
		state:      manager.NewStateManager(),
		log:        log.WithField("session", gameUUID),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Profiles == nil {
		g.Profiles = cfg.BuildProfiles()
	}

	index, err := BuildControlIndex(g.Profiles)
	if err != nil {
		return nil, err
	}
	g.controlIndex = index

	if err := g.createSnakes(); err != nil {
		return nil, err
	}
	g.state.Observe(g.population)

	g.log.WithFields(log.Fields{
		"grid":    g.Grid,
		"players": g.population.Len(),
		"logicHz": cfg.LogicHz,
	}).Info("game created")
	return g, nil
}

func (g *Game) createSnakes() error {
	for id, profile := range g.Profiles {
		if !profile.InitialDirection.Valid() {
			return errors.Wrapf(ErrInvalidConfig, "player %s has direction %s", id, profile.InitialDirection)
		}
		if !g.Grid.Contains(profile.SpawnHead) {
			return errors.Wrapf(ErrInvalidConfig, "player %s spawns at %s outside the %dx%d grid",
				id, profile.SpawnHead, g.Grid.Width, g.Grid.Height)
		}
		if _, err := g.population.Spawn(id, profile.SpawnHead, profile.InitialDirection); err != nil {
			return err
		}
	}
	return nil
}

// Snake returns the snake steered by playerID.
func (g *Game) Snake(playerID string) (*entity.Snake, bool) {
	return g.population.Get(playerID)
}

// PlayerIDs returns all player ids in sorted order.
func (g *Game) PlayerIDs() []string {
	return append([]string(nil), g.population.IDs()...)
}

// HandleKey routes a key press to the player bound to it. Keys nobody is
// bound to are ignored. It reports whether a direction change was accepted.
func (g *Game) HandleKey(key types.Key) bool {
	playerID, ok := g.controlIndex[key]
	if !ok {
		return false
	}

	dir := g.Profiles[playerID].Controls[key]
	snake, _ := g.population.Get(playerID)
	changed := snake.SetDirection(dir)
	g.log.WithFields(log.Fields{
		"player":    playerID,
		"key":       key,
		"direction": dir,
		"accepted":  changed,
	}).Debug("direction input")
	return changed
}

// Tick moves every snake once, in player order.
func (g *Game) Tick() error {
	for _, id := range g.population.IDs() {
		snake, _ := g.population.Get(id)

		next, err := snake.NextHeadPosition(g.Grid.Width, g.Grid.Height)
		if err != nil {
			return err
		}
		grow := false
		for _, effect := range g.effects {
			if effect.Grow(id, next) {
				grow = true
			}
		}
		if _, err := snake.Move(g.Grid.Width, g.Grid.Height, grow); err != nil {
			return err
		}
		if grow {
			g.log.WithFields(log.Fields{"player": id, "length": snake.Len()}).Info("snake grew")
		}
	}

	g.state.RecordTick(g.population)
	g.lastCollisions = g.collisions.Check(g.population)
	for _, c := range g.lastCollisions {
		g.log.WithFields(log.Fields{
			"player": c.Player,
			"type":   c.Type,
			"other":  c.Other,
			"tick":   g.state.Ticks(),
		}).Debug("collision")
	}
	return nil
}

// Collisions returns the collisions found after the last tick.
func (g *Game) Collisions() []manager.Collision {
	return g.lastCollisions
}

func (g *Game) Stats() manager.GameStats {
	return g.state.Stats()
}

// Frame snapshots the session for rendering and counts the frame.
func (g *Game) Frame() Frame {
	g.state.RecordFrame()

	ids := g.population.IDs()
	f := Frame{
		Config:  g.Config,
		Grid:    g.Grid,
		Players: make([]PlayerView, 0, len(ids)),
		Stats:   g.state.Stats(),
	}
	for _, id := range ids {
		snake, _ := g.population.Get(id)
		profile := g.Profiles[id]
		view := PlayerView{
			ID:        id,
			Name:      profile.Name,
			Color:     profile.Color,
			Direction: snake.Direction(),
			Body:      snake.Body(),
		}
		if g.food != nil {
			view.Eggs = g.food.Eaten(id)
		}
		f.Players = append(f.Players, view)
	}
	if g.food != nil {
		f.Food = append([]types.Cell(nil), g.food.GetFoodList()...)
	}
	return f
}
