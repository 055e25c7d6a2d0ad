// Package engine implements the pomodoro countdown state machine:
// a 25-minute work phase alternating with a 5-minute break, driven by
// one-second ticks. The engine itself is passive; callers feed it
// ticks (see Countdown for a self-ticking wrapper).
package engine

import (
	"errors"
	"time"
)

// Phase is the current half-cycle of the pomodoro.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseBreak
)

func (p Phase) String() string {
	if p == PhaseBreak {
		return "break"
	}
	return "work"
}

// Seconds returns the fixed countdown length of the phase.
func (p Phase) Seconds() int {
	if p == PhaseBreak {
		return BreakSeconds
	}
	return WorkSeconds
}

// Minutes returns the fixed session duration recorded for the phase.
func (p Phase) Minutes() int {
	if p == PhaseBreak {
		return BreakMinutes
	}
	return WorkMinutes
}

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

const (
	WorkMinutes  = 25
	BreakMinutes = 5
	WorkSeconds  = WorkMinutes * 60
	BreakSeconds = BreakMinutes * 60
)

var (
	// ErrAlreadyRunning is returned by Start while a countdown is running.
	ErrAlreadyRunning = errors.New("countdown is already running")
	// ErrNotRunning is returned by Pause when nothing is counting down.
	ErrNotRunning = errors.New("countdown is not running")
)

// Completed is the record emitted when a countdown reaches zero
// naturally. A paused or reset countdown never produces one.
type Completed struct {
	TaskID    *string
	Phase     Phase
	StartTime time.Time
	EndTime   time.Time
	Duration  int // minutes, fixed per phase
}

// Engine is a single pomodoro countdown. Exactly one countdown can be
// active per engine; it is not safe for concurrent use without
// external locking (Countdown provides that).
type Engine struct {
	now func() time.Time

	state        State
	phase        Phase
	remaining    int // seconds
	sessionStart time.Time
	taskID       *string
}

// New returns an idle engine at the start of a work phase.
func New() *Engine {
	return &Engine{
		now:       time.Now,
		state:     StateIdle,
		phase:     PhaseWork,
		remaining: WorkSeconds,
	}
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Phase() Phase { return e.phase }

// Remaining returns the seconds left in the current countdown.
func (e *Engine) Remaining() int { return e.remaining }

// BindTask attaches a task to be carried into the next emitted record.
// It has no effect on timing.
func (e *Engine) BindTask(id string) {
	e.taskID = &id
}

// ClearTask detaches any bound task.
func (e *Engine) ClearTask() {
	e.taskID = nil
}

// TaskID returns the currently bound task, if any.
func (e *Engine) TaskID() *string { return e.taskID }

// Start begins or resumes the countdown. Valid from Idle or Paused;
// the session start stamp is taken at the moment of the call.
func (e *Engine) Start() error {
	if e.state == StateRunning {
		return ErrAlreadyRunning
	}
	e.sessionStart = e.now()
	e.state = StateRunning
	return nil
}

// Pause suspends a running countdown, retaining the remaining time.
func (e *Engine) Pause() error {
	if e.state != StateRunning {
		return ErrNotRunning
	}
	e.state = StatePaused
	return nil
}

// Reset discards the current countdown from any state and returns to
// an idle work phase at 25:00. Nothing is emitted.
func (e *Engine) Reset() {
	e.state = StateIdle
	e.phase = PhaseWork
	e.remaining = WorkSeconds
	e.sessionStart = time.Time{}
}

// Tick applies one second of countdown. While not running it is a
// no-op. When the countdown reaches zero the engine emits the
// completed session record, flips to the other phase with its full
// duration, and returns to Idle without auto-starting.
func (e *Engine) Tick() *Completed {
	if e.state != StateRunning || e.remaining == 0 {
		return nil
	}

	e.remaining--
	if e.remaining > 0 {
		return nil
	}

	done := &Completed{
		TaskID:    e.taskID,
		Phase:     e.phase,
		StartTime: e.sessionStart,
		EndTime:   e.now(),
		Duration:  e.phase.Minutes(),
	}

	if e.phase == PhaseWork {
		e.phase = PhaseBreak
	} else {
		e.phase = PhaseWork
	}
	e.remaining = e.phase.Seconds()
	e.state = StateIdle
	e.sessionStart = time.Time{}

	return done
}

// Advance applies up to n one-second ticks, stopping early when the
// countdown completes. Drivers use it to resynchronize against the
// wall clock instead of trusting their own tick cadence.
func (e *Engine) Advance(n int) *Completed {
	for i := 0; i < n; i++ {
		if done := e.Tick(); done != nil {
			return done
		}
		if e.state != StateRunning {
			return nil
		}
	}
	return nil
}
