package player

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/trace"
)

// Observer is notified every time the cursor lands on a step, including the
// initial step after Reset.
//
// Observers run after the player's lock is released. With a RealClock a
// timer advance can race a manual step, so OnStep calls may arrive out of
// cursor order. Observers that need the latest position should read Cursor
// or CurrentStep rather than trust the argument order.
type Observer interface {
	OnStep(cursor int, step trace.Step)
}

type ObserverFunc func(cursor int, step trace.Step)

func (f ObserverFunc) OnStep(cursor int, step trace.Step) { f(cursor, step) }

// Player holds a trace and a cursor into it. Navigation before the first
// Reset is a programmer error and panics.
type Player struct {
	mu        sync.Mutex
	clock     Clock
	tr        *trace.Trace
	cursor    int
	state     State
	speed     float64
	timer     Timer
	gen       uint64
	notified  bool
	observers []Observer
	hooks     []func()
}

// New returns an unloaded player. A nil clock selects RealClock.
func New(clock Clock) *Player {
	if clock == nil {
		clock = RealClock{}
	}
	return &Player{clock: clock, speed: DefaultSpeed}
}

func (p *Player) AddObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// OnComplete registers fn to run when a run reaches the last step. It runs
// at most once between two calls to Reset.
func (p *Player) OnComplete(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks = append(p.hooks, fn)
}

// event describes what a locked operation did, for dispatch after unlock.
type event struct {
	moved     bool
	cursor    int
	step      trace.Step
	completed bool
}

func (p *Player) do(fn func() event) {
	ev, observers, hooks := p.locked(fn)
	if ev.moved {
		for _, o := range observers {
			o.OnStep(ev.cursor, ev.step)
		}
	}
	if ev.completed {
		for _, h := range hooks {
			h()
		}
	}
}

func (p *Player) locked(fn func() event) (event, []Observer, []func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev := fn()
	return ev, slices.Clone(p.observers), slices.Clone(p.hooks)
}

func (p *Player) mustBeLoadedLocked() {
	if p.tr == nil {
		panic(errors.AssertionFailedf("player: navigation before a trace was loaded"))
	}
}

// Reset loads tr, rewinds to the first step and returns to Idle. Any
// scheduled advance is cancelled.
func (p *Player) Reset(tr *trace.Trace) {
	if tr == nil || tr.Len() == 0 {
		panic(errors.AssertionFailedf("player: reset with an empty trace"))
	}
	p.do(func() event {
		p.stopTimerLocked()
		p.tr, p.cursor, p.state, p.notified = tr, 0, Idle, false
		return event{moved: true, cursor: 0, step: tr.Step(0)}
	})
}

// StepForward moves to the next step and returns it with true. On the last
// step it returns that step with false, enters Completed and fires the
// completion hooks if they have not fired since Reset.
func (p *Player) StepForward() (step trace.Step, advanced bool) {
	p.do(func() event {
		p.mustBeLoadedLocked()
		ev := p.advanceLocked()
		step, advanced = p.tr.Step(p.cursor), ev.moved
		return ev
	})
	return step, advanced
}

// StepBackward moves to the previous step, if any, and returns the current
// step. Leaving Completed moves to Paused without scheduling an advance.
func (p *Player) StepBackward() (step trace.Step) {
	p.do(func() (ev event) {
		p.mustBeLoadedLocked()
		if p.cursor > 0 {
			p.cursor--
			ev = event{moved: true, cursor: p.cursor, step: p.tr.Step(p.cursor)}
			switch p.state {
			case Completed, Idle:
				p.state = Paused
			case Playing:
				p.scheduleLocked()
			}
		}
		step = p.tr.Step(p.cursor)
		return ev
	})
	return step
}

// Play starts automatic advancing at speed (clamped, see ClampSpeed). While
// already playing it only changes the speed, effective from the next
// advance. Play on a completed trace does nothing.
func (p *Player) Play(speed float64) {
	p.do(func() event {
		p.mustBeLoadedLocked()
		p.speed = ClampSpeed(speed)
		switch p.state {
		case Playing, Completed:
			return event{}
		}
		if p.cursor == p.tr.Len()-1 {
			return p.completeLocked()
		}
		p.state = Playing
		p.scheduleLocked()
		return event{}
	})
}

// Pause stops automatic advancing. It is a no-op unless playing.
func (p *Player) Pause() {
	p.do(func() event {
		if p.state == Playing {
			p.stopTimerLocked()
			p.state = Paused
		}
		return event{}
	})
}

// SetSpeed changes the playback speed. A pending advance is rescheduled at
// the new cadence.
func (p *Player) SetSpeed(speed float64) {
	p.do(func() event {
		p.speed = ClampSpeed(speed)
		if p.state == Playing {
			p.scheduleLocked()
		}
		return event{}
	})
}

// CurrentStep returns a copy of the step under the cursor.
func (p *Player) CurrentStep() trace.Step {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mustBeLoadedLocked()
	return p.tr.Step(p.cursor)
}

func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Len returns the length of the loaded trace, or 0 before Reset.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tr == nil {
		return 0
	}
	return p.tr.Len()
}

func (p *Player) Trace() *trace.Trace {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tr
}

func (p *Player) advanceLocked() event {
	last := p.tr.Len() - 1
	if p.cursor >= last {
		return p.completeLocked()
	}

	p.cursor++
	ev := event{moved: true, cursor: p.cursor, step: p.tr.Step(p.cursor)}
	switch p.state {
	case Idle:
		p.state = Paused
	case Playing:
		if p.cursor == last {
			ev.completed = p.completeLocked().completed
		} else {
			p.scheduleLocked()
		}
	}
	return ev
}

func (p *Player) completeLocked() event {
	p.stopTimerLocked()
	p.state = Completed
	if p.notified {
		return event{}
	}
	p.notified = true
	return event{completed: true}
}

func (p *Player) tick(gen uint64) {
	p.do(func() event {
		if gen != p.gen || p.state != Playing {
			return event{}
		}
		p.timer = nil
		return p.advanceLocked()
	})
}

func (p *Player) scheduleLocked() {
	p.stopTimerLocked()
	gen := p.gen
	p.timer = p.clock.AfterFunc(Cadence(p.speed), func() { p.tick(gen) })
}

func (p *Player) stopTimerLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
