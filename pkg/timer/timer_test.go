package timer

// White-box tests: ticks are driven directly through tick() so elapsed time
// is deterministic. The tick interval is set to an hour so the real ticker
// never interferes.

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func quietTimer(hooks Hooks) *Timer {
	return New(Config{
		TickInterval: time.Hour,
		TaskName:     "write tests",
		Hooks:        hooks,
	})
}

func TestPauseExclusion(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stopped := -1
	tm := quietTimer(Hooks{OnStop: func(seconds int) { stopped = seconds }})

	tm.Start()
	assert.Equal(StateRunning, tm.State())

	for i := 0; i < 3; i++ {
		tm.tick()
	}

	tm.Toggle()
	assert.Equal(StatePaused, tm.State())

	// paused ticks must not count
	for i := 0; i < 5; i++ {
		tm.tick()
	}

	assert.Equal(3, tm.Elapsed())

	tm.Toggle()
	assert.Equal(StateRunning, tm.State())

	for i := 0; i < 2; i++ {
		tm.tick()
	}

	tm.Stop()
	assert.Equal(5, stopped)
	assert.Equal(StateIdle, tm.State())
	assert.Equal(0, tm.Elapsed())
	assert.True(tm.StartedAt().IsZero())
}

func TestStartTwice(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	inits := 0
	tm := quietTimer(Hooks{OnInit: func() { inits++ }})

	tm.Start()
	tm.tick()
	tm.Start()

	// the second call is a no-op: no duplicate OnInit, no counter reset
	assert.Equal(1, inits)
	assert.Equal(1, tm.Elapsed())
	assert.Equal(StateRunning, tm.State())
}

func TestStopFromIdle(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stops := 0
	tm := quietTimer(Hooks{OnStop: func(int) { stops++ }})

	tm.Stop()
	assert.Equal(0, stops)
	assert.Equal(StateIdle, tm.State())
}

func TestToggleFromIdle(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tm := quietTimer(Hooks{})

	tm.Toggle()
	assert.Equal(StateIdle, tm.State())
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	inits := 0
	tm := quietTimer(Hooks{OnInit: func() { inits++ }})

	tm.SetDisabled(true)
	assert.True(tm.Disabled())

	tm.Start()
	assert.Equal(0, inits)
	assert.Equal(StateIdle, tm.State())

	tm.Toggle()
	assert.Equal(StateIdle, tm.State())
}

func TestStopIgnoresDisabled(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stopped := -1
	tm := quietTimer(Hooks{OnStop: func(seconds int) { stopped = seconds }})

	tm.Start()
	tm.tick()

	// disabling an already-running timer must not block its stop
	tm.SetDisabled(true)
	tm.Stop()

	assert.Equal(1, stopped)
	assert.Equal(StateIdle, tm.State())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stops := 0
	tm := quietTimer(Hooks{OnStop: func(int) { stops++ }})

	tm.Start()
	tm.tick()
	tm.tick()
	tm.Discard()

	// discarded time never reaches OnStop
	assert.Equal(0, stops)
	assert.Equal(StateIdle, tm.State())
	assert.Equal(0, tm.Elapsed())
}

func TestStartRecordsWallClock(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tm := quietTimer(Hooks{})

	before := time.Now()

	tm.Start()

	assert.False(tm.StartedAt().Before(before))
}

func TestOnTick(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	seen := []int{}
	tm := quietTimer(Hooks{OnTick: func(seconds int) { seen = append(seen, seconds) }})

	tm.Start()
	tm.tick()
	tm.tick()
	tm.Toggle()
	tm.tick()

	assert.Equal([]int{1, 2}, seen)
}

type failingSink struct{}

func (failingSink) Announce(string) error { return assert.AnError }
func (failingSink) Clear() error          { return assert.AnError }

func TestSinkFailureDoesNotBlockTransitions(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stopped := -1
	tm := New(Config{
		TickInterval: time.Hour,
		Sink:         failingSink{},
		Hooks:        Hooks{OnStop: func(seconds int) { stopped = seconds }},
	})

	tm.Start()
	assert.Equal(StateRunning, tm.State())

	tm.tick()
	tm.Stop()

	assert.Equal(1, stopped)
	assert.Equal(StateIdle, tm.State())
}

func TestTickerCountsRealSeconds(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tm := New(Config{TickInterval: 5 * time.Millisecond})

	tm.Start()
	time.Sleep(40 * time.Millisecond)
	tm.Toggle()

	elapsed := tm.Elapsed()
	assert.Greater(elapsed, 0)

	// the ticker keeps firing while paused, but the counter must not move
	time.Sleep(25 * time.Millisecond)
	assert.Equal(elapsed, tm.Elapsed())

	tm.Stop()
}
