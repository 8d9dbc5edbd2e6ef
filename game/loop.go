package game

import (
	"context"
	"fmt"
	"time"

	"snake-arena/game/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrLoopState is returned when Run is called on a loop that already ran.
var ErrLoopState = errors.New("loop already started")

// EventKind tells apart the events an InputSource reports.
type EventKind int

const (
	EventQuit EventKind = iota + 1
	EventKeyDown
)

// Event is one input event. Key is only set for EventKeyDown.
type Event struct {
	Kind EventKind
	Key  types.Key
}

// QuitEvent asks the loop to stop.
func QuitEvent() Event { return Event{Kind: EventQuit} }

// KeyDownEvent reports a key press.
func KeyDownEvent(key types.Key) Event { return Event{Kind: EventKeyDown, Key: key} }

// Clock paces the outer loop.
type Clock interface {
	// Tick blocks until the next frame is due and returns the time since
	// the previous call.
	Tick() time.Duration
}

// InputSource reports the events that arrived since the last poll.
type InputSource interface {
	Poll() []Event
}

// Renderer draws one frame.
type Renderer interface {
	Render(f Frame) error
}

// Platform is the presentation layer: display surface, input and frame
// timer. Open acquires it; Close releases it.
type Platform interface {
	Clock
	InputSource
	Renderer
	Open() error
	Close() error
}

// LoopState is the lifecycle of a Loop. Stopped is terminal.
type LoopState int

const (
	NotStarted LoopState = iota
	Running
	Stopped
)

func (s LoopState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return fmt.Sprintf("LoopState(%d)", int(s))
	}
}

// Loop drives a Game at a fixed logic rate independent of the frame rate.
// Frame time accumulates and is consumed in whole tick periods; the
// remainder carries over to the next frame.
type Loop struct {
	game     *Game
	platform Platform

	state       LoopState
	tickPeriod  time.Duration
	accumulated time.Duration
	ticks       int
	log         *log.Entry
}

// NewLoop wraps g. The platform is opened by Run, not here.
func NewLoop(g *Game, p Platform) *Loop {
	return &Loop{
		game:       g,
		platform:   p,
		tickPeriod: g.Config.TickPeriod(),
		log:        g.log.WithField("component", "loop"),
	}
}

func (l *Loop) State() LoopState {
	return l.state
}

func (l *Loop) TickPeriod() time.Duration {
	return l.tickPeriod
}

// Ticks returns how many simulation ticks have run.
func (l *Loop) Ticks() int {
	return l.ticks
}

// Accumulated returns frame time not yet consumed by a tick.
func (l *Loop) Accumulated() time.Duration {
	return l.accumulated
}

// Stop asks a running loop to finish after the current iteration.
func (l *Loop) Stop() {
	if l.state == Running {
		l.state = Stopped
	}
}

func (l *Loop) initialize() error {
	if l.state != NotStarted {
		return errors.Wrapf(ErrLoopState, "state %s", l.state)
	}
	if err := l.platform.Open(); err != nil {
		return errors.WithMessage(err, "open platform")
	}
	l.state = Running
	return nil
}

// Run opens the platform and loops until a quit event, Stop or ctx
// cancellation. The platform is closed on every exit path.
func (l *Loop) Run(ctx context.Context) (err error) {
	if err := l.initialize(); err != nil {
		return err
	}
	l.log.WithField("tickPeriod", l.tickPeriod).Info("loop running")

	defer func() {
		l.state = Stopped
		if cerr := l.platform.Close(); cerr != nil && err == nil {
			err = errors.WithMessage(cerr, "close platform")
		}
		l.log.WithFields(log.Fields{"ticks": l.ticks, "err": err}).Info("loop stopped")
	}()

	for l.state == Running {
		if ctx.Err() != nil {
			l.Stop()
			break
		}
		if err := l.RunFrame(l.platform.Tick()); err != nil {
			return err
		}
	}
	return nil
}

// RunFrame performs one iteration with the given frame time: input, then
// pending ticks, then one render.
func (l *Loop) RunFrame(elapsed time.Duration) error {
	l.accumulated += elapsed

	l.processEvents()
	if err := l.runPendingTicks(); err != nil {
		return err
	}
	return l.platform.Render(l.game.Frame())
}

func (l *Loop) processEvents() {
	for _, ev := range l.platform.Poll() {
		switch ev.Kind {
		case EventQuit:
			l.log.Debug("quit requested")
			l.Stop()
		case EventKeyDown:
			l.game.HandleKey(ev.Key)
		}
	}
}

func (l *Loop) runPendingTicks() error {
	for l.accumulated >= l.tickPeriod {
		if err := l.game.Tick(); err != nil {
			return err
		}
		l.ticks++
		l.accumulated -= l.tickPeriod
	}
	return nil
}
