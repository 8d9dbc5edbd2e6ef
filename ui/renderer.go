package ui

import (
	"fmt"
	"time"

	"snake-arena/game"
	"snake-arena/game/entity"
	"snake-arena/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

const hudFontSize = 20

// RaylibPlatform draws the game in a raylib window and reads the keyboard.
// raylib keeps process-wide state, so only one may be open at a time.
type RaylibPlatform struct {
	title     string
	width     int32
	height    int32
	frameRate int32
	open      bool
}

func NewRaylibPlatform(cfg game.GameConfig, title string) *RaylibPlatform {
	return &RaylibPlatform{
		title:     title,
		width:     int32(cfg.WindowWidth),
		height:    int32(cfg.WindowHeight),
		frameRate: int32(cfg.FrameRate),
	}
}

func (r *RaylibPlatform) Open() error {
	if r.open {
		return errors.New("raylib window already open")
	}
	rl.InitWindow(r.width, r.height, r.title)
	if !rl.IsWindowReady() {
		return errors.New("raylib window could not be created")
	}
	// Quit is handled through Poll so the loop can close the window itself.
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(r.frameRate)
	r.open = true
	return nil
}

func (r *RaylibPlatform) Close() error {
	if !r.open {
		return nil
	}
	rl.CloseWindow()
	r.open = false
	return nil
}

// Tick returns the duration of the last frame. raylib waits for the target
// frame rate inside EndDrawing, so there is nothing to block on here.
func (r *RaylibPlatform) Tick() time.Duration {
	return time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
}

func (r *RaylibPlatform) Poll() []game.Event {
	var events []game.Event
	if rl.WindowShouldClose() {
		events = append(events, game.QuitEvent())
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch types.Key(key) {
		case types.KeyEscape, types.KeyQ:
			events = append(events, game.QuitEvent())
		default:
			events = append(events, game.KeyDownEvent(types.Key(key)))
		}
	}
	return events
}

func (r *RaylibPlatform) Render(f game.Frame) error {
	rl.BeginDrawing()
	rl.ClearBackground(toRaylib(f.Config.BackgroundColor))

	cell := int32(f.Config.CellSize)
	r.drawGrid(f, cell)

	for _, food := range f.Food {
		rl.DrawRectangle(int32(food.X)*cell, int32(food.Y)*cell, cell, cell, rl.Red)
	}

	for i, p := range f.Players {
		color := toRaylib(p.Color)
		for _, c := range p.Body {
			rl.DrawRectangle(int32(c.X)*cell, int32(c.Y)*cell, cell, cell, color)
		}

		label := fmt.Sprintf("%s: %d  eggs %d", p.Name, len(p.Body), p.Eggs)
		rl.DrawText(label, 8, 8+int32(i)*(hudFontSize+4), hudFontSize, color)
	}

	rl.EndDrawing()
	return nil
}

func (r *RaylibPlatform) drawGrid(f game.Frame, cell int32) {
	lineColor := toRaylib(f.Config.GridLineColor)
	w := int32(f.Config.WindowWidth)
	h := int32(f.Config.WindowHeight)

	for x := int32(0); x < w; x += cell {
		rl.DrawLine(x, 0, x, h, lineColor)
	}
	for y := int32(0); y < h; y += cell {
		rl.DrawLine(0, y, w, y, lineColor)
	}
}

func toRaylib(c entity.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
