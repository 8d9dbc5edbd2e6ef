// Package terminal renders the game with tcell and reads keys from the
// terminal.
package terminal

import (
	"fmt"
	"sync"
	"time"

	"snake-arena/game"
	"snake-arena/game/entity"
	"snake-arena/game/types"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// cellWidth is the number of terminal columns per grid cell; terminal
	// characters are roughly twice as tall as they are wide.
	cellWidth = 2
	eventBuf  = 64
)

// Platform is a game.Platform backed by a tcell screen. Input is read on a
// helper goroutine and handed to Poll through a buffered channel.
type Platform struct {
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	frameRate int
	open      bool

	events chan tcell.Event
	done   chan struct{}
	reader sync.WaitGroup
	ticker *time.Ticker
	last   time.Time
}

func NewPlatform(frameRate int) *Platform {
	return &Platform{
		newScreen: tcell.NewScreen,
		frameRate: frameRate,
	}
}

// NewPlatformWithScreen uses an existing screen, such as a simulation
// screen in tests.
func NewPlatformWithScreen(screen tcell.Screen, frameRate int) *Platform {
	return &Platform{
		newScreen: func() (tcell.Screen, error) { return screen, nil },
		frameRate: frameRate,
	}
}

func (p *Platform) Open() error {
	if p.open {
		return errors.New("terminal platform already open")
	}
	screen, err := p.newScreen()
	if err != nil {
		return errors.Wrap(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal screen")
	}
	screen.HideCursor()
	screen.Clear()

	p.screen = screen
	p.events = make(chan tcell.Event, eventBuf)
	p.done = make(chan struct{})
	p.ticker = time.NewTicker(time.Second / time.Duration(p.frameRate))
	p.last = time.Now()
	p.open = true

	p.reader.Add(1)
	go p.readEvents(screen, p.events, p.done)
	return nil
}

// readEvents forwards screen events until done is closed or the screen is
// finalized. It only touches its arguments, never the Platform fields.
func (p *Platform) readEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer p.reader.Done()
	for {
		select {
		case <-done:
			return
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			// Fini was called.
			return
		}
		select {
		case <-done:
			return
		case events <- ev:
		default:
			log.WithField("event", fmt.Sprintf("%T", ev)).Warn("terminal event dropped")
		}
	}
}

// Close finalizes the screen and waits for the reader goroutine to exit.
// Calling it again is a no-op.
func (p *Platform) Close() error {
	if !p.open {
		return nil
	}
	p.open = false
	close(p.done)
	p.ticker.Stop()
	p.screen.Fini()
	p.reader.Wait()
	return nil
}

func (p *Platform) Tick() time.Duration {
	<-p.ticker.C
	now := time.Now()
	elapsed := now.Sub(p.last)
	p.last = now
	return elapsed
}

func (p *Platform) Poll() []game.Event {
	var events []game.Event
	for {
		select {
		case ev := <-p.events:
			if e, ok := translate(ev); ok {
				events = append(events, e)
			}
		default:
			return events
		}
	}
}

// translate maps tcell events onto game events. Resizes are ignored since
// the grid size is fixed by the config.
func translate(ev tcell.Event) (game.Event, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return game.Event{}, false
	}
	return translateKey(key.Key(), key.Rune())
}

func translateKey(key tcell.Key, r rune) (game.Event, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.QuitEvent(), true
	case tcell.KeyUp:
		return game.KeyDownEvent(types.KeyUp), true
	case tcell.KeyDown:
		return game.KeyDownEvent(types.KeyDown), true
	case tcell.KeyLeft:
		return game.KeyDownEvent(types.KeyLeft), true
	case tcell.KeyRight:
		return game.KeyDownEvent(types.KeyRight), true
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return game.QuitEvent(), true
		case 'w', 'W':
			return game.KeyDownEvent(types.KeyW), true
		case 'a', 'A':
			return game.KeyDownEvent(types.KeyA), true
		case 's', 'S':
			return game.KeyDownEvent(types.KeyS), true
		case 'd', 'D':
			return game.KeyDownEvent(types.KeyD), true
		}
	}
	return game.Event{}, false
}

func (p *Platform) Render(f game.Frame) error {
	if !p.open {
		return errors.New("terminal platform is not open")
	}
	s := p.screen
	s.Clear()

	bg := tcell.StyleDefault.Background(toTcell(f.Config.BackgroundColor)).Foreground(toTcell(f.Config.GridLineColor))
	for y := 0; y < f.Grid.Height; y++ {
		for x := 0; x < f.Grid.Width; x++ {
			p.setCell(x, y, '·', bg)
		}
	}

	for _, food := range f.Food {
		p.setCell(food.X, food.Y, '●', bg.Foreground(tcell.ColorRed))
	}

	for _, pl := range f.Players {
		style := tcell.StyleDefault.Background(toTcell(pl.Color))
		for _, c := range pl.Body {
			p.setCell(c.X, c.Y, ' ', style)
		}
	}

	hudY := f.Grid.Height + 1
	for i, pl := range f.Players {
		label := fmt.Sprintf("%s: %d  eggs %d", pl.Name, len(pl.Body), pl.Eggs)
		drawString(s, 0, hudY+i, label, tcell.StyleDefault.Foreground(toTcell(pl.Color)))
	}
	drawString(s, 0, hudY+len(f.Players), fmt.Sprintf("tick %d  q to quit", f.Stats.Ticks), tcell.StyleDefault)

	s.Show()
	return nil
}

func (p *Platform) setCell(x, y int, r rune, style tcell.Style) {
	for i := 0; i < cellWidth; i++ {
		p.screen.SetContent(x*cellWidth+i, y, r, nil, style)
	}
}

func drawString(s tcell.Screen, x, y int, v string, style tcell.Style) {
	for i, r := range []rune(v) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func toTcell(c entity.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
