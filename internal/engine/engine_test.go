package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkCountdownEmitsOnce(t *testing.T) {
	e := New()
	require.NoError(t, e.Start())

	var emitted []*Completed
	for i := 0; i < WorkSeconds; i++ {
		if done := e.Tick(); done != nil {
			emitted = append(emitted, done)
		}
	}

	// Exactly one session after 25 minutes of one-second ticks
	require.Len(t, emitted, 1)
	assert.Equal(t, WorkMinutes, emitted[0].Duration)
	assert.Equal(t, PhaseWork, emitted[0].Phase)
	assert.Nil(t, emitted[0].TaskID)
	assert.False(t, emitted[0].StartTime.IsZero())
	assert.False(t, emitted[0].EndTime.Before(emitted[0].StartTime))

	// Phase flips to break at 5:00 and the engine waits idle
	assert.Equal(t, PhaseBreak, e.Phase())
	assert.Equal(t, BreakSeconds, e.Remaining())
	assert.Equal(t, StateIdle, e.State())
}

func TestBreakCountdownEmitsFiveMinutes(t *testing.T) {
	e := New()
	require.NoError(t, e.Start())
	for i := 0; i < WorkSeconds; i++ {
		e.Tick()
	}

	require.NoError(t, e.Start())
	var done *Completed
	for i := 0; i < BreakSeconds; i++ {
		if d := e.Tick(); d != nil {
			done = d
		}
	}

	require.NotNil(t, done)
	assert.Equal(t, BreakMinutes, done.Duration)
	assert.Equal(t, PhaseBreak, done.Phase)
	assert.Equal(t, PhaseWork, e.Phase())
	assert.Equal(t, WorkSeconds, e.Remaining())
	assert.Equal(t, StateIdle, e.State())
}

func TestResetDiscardsWithoutEmitting(t *testing.T) {
	e := New()
	require.NoError(t, e.Start())
	for i := 0; i < 600; i++ {
		require.Nil(t, e.Tick())
	}

	e.Reset()

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, PhaseWork, e.Phase())
	assert.Equal(t, WorkSeconds, e.Remaining())

	// Ticks after reset are no-ops, nothing is ever emitted
	assert.Nil(t, e.Tick())
	assert.Equal(t, WorkSeconds, e.Remaining())
}

func TestPauseRetainsRemaining(t *testing.T) {
	e := New()
	require.NoError(t, e.Start())
	for i := 0; i < 100; i++ {
		e.Tick()
	}

	require.NoError(t, e.Pause())
	assert.Equal(t, StatePaused, e.State())
	assert.Equal(t, WorkSeconds-100, e.Remaining())

	// Paused engines ignore ticks
	assert.Nil(t, e.Tick())
	assert.Equal(t, WorkSeconds-100, e.Remaining())

	// Resume picks up where it left off
	require.NoError(t, e.Start())
	assert.Nil(t, e.Tick())
	assert.Equal(t, WorkSeconds-101, e.Remaining())
}

func TestStartWhileRunning(t *testing.T) {
	e := New()
	require.NoError(t, e.Start())
	assert.ErrorIs(t, e.Start(), ErrAlreadyRunning)
}

func TestPauseWhileIdle(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.Pause(), ErrNotRunning)
}

func TestBoundTaskCarriedIntoRecord(t *testing.T) {
	e := New()
	e.BindTask("task-42")
	require.NoError(t, e.Start())

	done := e.Advance(WorkSeconds)
	require.NotNil(t, done)
	require.NotNil(t, done.TaskID)
	assert.Equal(t, "task-42", *done.TaskID)
}

func TestClearTask(t *testing.T) {
	e := New()
	e.BindTask("task-42")
	e.ClearTask()
	require.NoError(t, e.Start())

	done := e.Advance(WorkSeconds)
	require.NotNil(t, done)
	assert.Nil(t, done.TaskID)
}

func TestAdvanceStopsAtCompletion(t *testing.T) {
	e := New()
	require.NoError(t, e.Start())

	// Advance past the end of the phase: the countdown completes once
	// and the surplus ticks are dropped on the now-idle engine.
	done := e.Advance(WorkSeconds + 500)
	require.NotNil(t, done)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, BreakSeconds, e.Remaining())
}

func TestSessionStartStamp(t *testing.T) {
	e := New()
	before := time.Now()
	require.NoError(t, e.Start())

	done := e.Advance(WorkSeconds)
	require.NotNil(t, done)
	assert.True(t, !done.StartTime.Before(before))
}
