package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"snake-arena/game/entity"
	"snake-arena/game/types"

	"github.com/pkg/errors"
)

// fakePlatform replays scripted frame times and events. Once the script
// runs out it reports a quit.
type fakePlatform struct {
	deltas []time.Duration
	events [][]Event

	frame     int
	opened    bool
	closed    bool
	openErr   error
	renderErr error
	rendered  []Frame
}

func (p *fakePlatform) Open() error {
	if p.openErr != nil {
		return p.openErr
	}
	p.opened = true
	return nil
}

func (p *fakePlatform) Close() error {
	p.closed = true
	return nil
}

func (p *fakePlatform) Tick() time.Duration {
	if p.frame < len(p.deltas) {
		return p.deltas[p.frame]
	}
	return 0
}

func (p *fakePlatform) Poll() []Event {
	defer func() { p.frame++ }()
	if p.frame >= len(p.deltas) {
		return []Event{QuitEvent()}
	}
	if p.frame < len(p.events) {
		return p.events[p.frame]
	}
	return nil
}

func (p *fakePlatform) Render(f Frame) error {
	p.rendered = append(p.rendered, f)
	return p.renderErr
}

func runScript(t *testing.T, cfg GameConfig, deltas []time.Duration, events [][]Event) (*Loop, *fakePlatform) {
	t.Helper()
	g := newTestGame(t, cfg)
	p := &fakePlatform{deltas: deltas, events: events}
	l := NewLoop(g, p)
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return l, p
}

func TestLoopTickCountIndependentOfFramePartition(t *testing.T) {
	ms := time.Millisecond
	partitions := [][]time.Duration{
		{1000 * ms},
		{16 * ms, 17 * ms, 16 * ms, 17 * ms, 934 * ms},
		{99 * ms, 1 * ms, 99 * ms, 1 * ms, 400 * ms, 250 * ms, 150 * ms},
		{333 * ms, 333 * ms, 334 * ms},
	}

	for i, deltas := range partitions {
		t.Run(fmt.Sprintf("partition%d", i), func(t *testing.T) {
			l, p := runScript(t, DefaultConfig(), deltas, nil)
			if l.Ticks() != 10 {
				t.Errorf("ticks = %d, want 10", l.Ticks())
			}
			if l.Accumulated() != 0 {
				t.Errorf("leftover = %s, want 0", l.Accumulated())
			}
			// One render per frame, including the frame that saw the quit.
			if len(p.rendered) != len(deltas)+1 {
				t.Errorf("rendered %d frames, want %d", len(p.rendered), len(deltas)+1)
			}
		})
	}
}

func TestLoopCarriesLeftoverTime(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	l := NewLoop(g, &fakePlatform{})

	for _, d := range []time.Duration{60, 60, 60} {
		if err := l.RunFrame(d * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
	if l.Ticks() != 1 || l.Accumulated() != 80*time.Millisecond {
		t.Errorf("ticks=%d leftover=%s, want 1 and 80ms", l.Ticks(), l.Accumulated())
	}

	a, _ := g.Snake(PlayerA)
	if a.Head() != (types.Cell{X: 11, Y: 10}) {
		t.Errorf("head = %v after one tick", a.Head())
	}
}

func TestLoopTickCountMatchesFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogicHz = 7
	deltas := []time.Duration{
		13 * time.Millisecond, 250 * time.Millisecond, 3 * time.Millisecond,
		800 * time.Millisecond, 41 * time.Millisecond, 17 * time.Millisecond,
	}
	var total time.Duration
	for _, d := range deltas {
		total += d
	}

	l, _ := runScript(t, cfg, deltas, nil)
	want := int(total / l.TickPeriod())
	if l.Ticks() != want {
		t.Errorf("ticks = %d, want floor(%s / %s) = %d", l.Ticks(), total, l.TickPeriod(), want)
	}
}

func TestLoopRoutesInputBeforeTicks(t *testing.T) {
	deltas := []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}
	events := [][]Event{
		{KeyDownEvent(types.KeyUp), KeyDownEvent(types.Key(999))},
		{KeyDownEvent(types.KeyDown)}, // reversal, ignored
	}

	l, p := runScript(t, DefaultConfig(), deltas, events)
	a, _ := l.game.Snake(PlayerA)
	if a.Direction() != entity.Up {
		t.Errorf("direction = %s, want Up", a.Direction())
	}
	if a.Head() != (types.Cell{X: 10, Y: 8}) {
		t.Errorf("head = %v, want (10,8)", a.Head())
	}
	if head := p.rendered[0].Players[0].Body[0]; head != (types.Cell{X: 10, Y: 9}) {
		t.Errorf("first frame head = %v, want (10,9)", head)
	}
}

func TestLoopLifecycle(t *testing.T) {
	l, p := runScript(t, DefaultConfig(), []time.Duration{10 * time.Millisecond}, nil)

	if !p.opened || !p.closed {
		t.Errorf("opened=%v closed=%v", p.opened, p.closed)
	}
	if l.State() != Stopped {
		t.Errorf("state = %s", l.State())
	}
	if err := l.Run(context.Background()); !errors.Is(err, ErrLoopState) {
		t.Errorf("second Run: expected ErrLoopState, got %v", err)
	}
}

func TestLoopClosesPlatformOnRenderError(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	boom := errors.New("render failed")
	p := &fakePlatform{deltas: []time.Duration{time.Second}, renderErr: boom}

	l := NewLoop(g, p)
	if err := l.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected render error, got %v", err)
	}
	if !p.closed || l.State() != Stopped {
		t.Errorf("closed=%v state=%s", p.closed, l.State())
	}
}

func TestLoopOpenError(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	boom := errors.New("no display")
	p := &fakePlatform{openErr: boom}

	l := NewLoop(g, p)
	if err := l.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected open error, got %v", err)
	}
	if p.closed || l.State() != NotStarted {
		t.Errorf("closed=%v state=%s", p.closed, l.State())
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	p := &fakePlatform{deltas: []time.Duration{time.Second, time.Second, time.Second}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoop(g, p)
	if err := l.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if l.Ticks() != 0 || len(p.rendered) != 0 || !p.closed {
		t.Errorf("ticks=%d rendered=%d closed=%v", l.Ticks(), len(p.rendered), p.closed)
	}
}

func TestLoopStateString(t *testing.T) {
	if NotStarted.String() != "NotStarted" || Running.String() != "Running" || Stopped.String() != "Stopped" {
		t.Error("unexpected state names")
	}
}
