package terminal

import (
	"testing"
	"time"

	"snake-arena/game"
	"snake-arena/game/types"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want game.Event
		ok   bool
	}{
		{"up arrow", tcell.KeyUp, 0, game.KeyDownEvent(types.KeyUp), true},
		{"left arrow", tcell.KeyLeft, 0, game.KeyDownEvent(types.KeyLeft), true},
		{"w", tcell.KeyRune, 'w', game.KeyDownEvent(types.KeyW), true},
		{"D", tcell.KeyRune, 'D', game.KeyDownEvent(types.KeyD), true},
		{"q", tcell.KeyRune, 'q', game.QuitEvent(), true},
		{"escape", tcell.KeyEscape, 0, game.QuitEvent(), true},
		{"ctrl-c", tcell.KeyCtrlC, 0, game.QuitEvent(), true},
		{"other rune", tcell.KeyRune, 'x', game.Event{}, false},
		{"tab", tcell.KeyTab, 0, game.Event{}, false},
	}

	for _, tt := range tests {
		got, ok := translateKey(tt.key, tt.r)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: translateKey = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

type otherEvent struct {
	tcell.EventTime
}

func TestTranslateIgnoresNonKeyEvents(t *testing.T) {
	if _, ok := translate(&otherEvent{}); ok {
		t.Error("non-key event translated")
	}
}

func newSimPlatform(t *testing.T) (*Platform, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	p := NewPlatformWithScreen(screen, 60)
	if err := p.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	screen.SetSize(80, 30)
	return p, screen
}

func TestRenderDrawsSnakes(t *testing.T) {
	p, screen := newSimPlatform(t)
	defer p.Close()

	cfg := game.DefaultConfig()
	g, err := game.NewGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Render(g.Frame()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Snake A's head is on (10,10), two columns per cell.
	_, _, style, _ := screen.GetContent(10*cellWidth, 10)
	_, bg, _ := style.Decompose()
	if bg != toTcell(cfg.SnakeAColor) {
		t.Errorf("head cell background = %v, want snake colour", bg)
	}

	r, _, _, _ := screen.GetContent(0, 0)
	if r != '·' {
		t.Errorf("empty cell rune = %q", r)
	}
}

func TestPollDrainsWithoutBlocking(t *testing.T) {
	p, _ := newSimPlatform(t)
	defer p.Close()

	p.events <- &otherEvent{}
	p.events <- &otherEvent{}

	if events := p.Poll(); len(events) != 0 {
		t.Errorf("events = %+v, want none", events)
	}
}

func TestTickPacesFrames(t *testing.T) {
	p, _ := newSimPlatform(t)
	defer p.Close()

	if elapsed := p.Tick(); elapsed <= 0 {
		t.Errorf("elapsed = %s, want positive", elapsed)
	}
}

// pollUntil polls p until it reports n events or a second passes.
func pollUntil(p *Platform, n int) []game.Event {
	var events []game.Event
	deadline := time.Now().Add(time.Second)
	for len(events) < n && time.Now().Before(deadline) {
		events = append(events, p.Poll()...)
		time.Sleep(5 * time.Millisecond)
	}
	return events
}

func TestPollReadsKeysFromScreen(t *testing.T) {
	p, screen := newSimPlatform(t)
	defer p.Close()

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)

	events := pollUntil(p, 2)
	want := []game.Event{game.KeyDownEvent(types.KeyUp), game.KeyDownEvent(types.KeyD)}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want %+v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestCloseWithPendingKeys(t *testing.T) {
	for i := 0; i < 20; i++ {
		p, screen := newSimPlatform(t)
		for j := 0; j < 5; j++ {
			screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
		}
		if err := p.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p, _ := newSimPlatform(t)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Render(game.Frame{}); err == nil {
		t.Error("Render after Close should fail")
	}
}
