// Package timer implements the per-task stopwatch: a small state machine
// (Idle, Running, Paused) whose elapsed time is an integer tick counter,
// plus the screen-level Set that keeps at most one stopwatch active.
package timer

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// State is the lifecycle state of a Timer.
type State int

// Timer lifecycle states.
const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Hooks are the host callbacks of a Timer. OnInit fires synchronously on a
// successful Start. OnStop receives the accumulated whole seconds and is
// responsible for persisting them; the timer itself never writes to the
// ledger. OnTick fires once per counted second, for display refresh.
type Hooks struct {
	OnInit func()
	OnStop func(seconds int)
	OnTick func(seconds int)
}

// Config holds the construction options of a Timer.
type Config struct {
	// TickInterval defaults to one second. Tests shorten or lengthen it.
	TickInterval time.Duration
	Sink         NotificationSink
	TaskName     string
	Hooks        Hooks
}

// Timer is an exclusive, resumable stopwatch for one task. Elapsed time is
// the count of ticks seen while Running; time spent Paused is excluded, and
// a wall-clock delta is never used. All transitions are in-memory and never
// fail; only the host's OnStop persistence can, and that is the host's
// problem to surface.
type Timer struct {
	mu        sync.Mutex
	state     State
	seconds   int
	startedAt time.Time
	disabled  bool
	interval  time.Duration
	sink      NotificationSink
	taskName  string
	hooks     Hooks
	stopCh    chan struct{}
}

// New creates an idle Timer.
func New(config Config) *Timer {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}

	if config.Sink == nil {
		config.Sink = NopSink{}
	}

	return &Timer{
		state:    StateIdle,
		interval: config.TickInterval,
		sink:     config.Sink,
		taskName: config.TaskName,
		hooks:    config.Hooks,
	}
}

// Start transitions Idle -> Running, fires OnInit, and announces the timer
// through the notification sink (best effort). A no-op when disabled or not
// Idle. The wall-clock start timestamp is recorded for display only.
func (t *Timer) Start() {
	t.mu.Lock()

	if t.disabled || t.state != StateIdle {
		t.mu.Unlock()

		return
	}

	t.state = StateRunning
	t.startedAt = time.Now()
	t.stopCh = make(chan struct{})
	stopCh := t.stopCh

	t.mu.Unlock()

	if t.hooks.OnInit != nil {
		t.hooks.OnInit()
	}

	if err := t.sink.Announce(t.taskName); err != nil {
		log.Warn().Err(err).Msgf("could not announce timer for '%s'", t.taskName)
	}

	go t.run(stopCh)
}

// Toggle flips Running <-> Paused. A no-op when disabled or Idle.
func (t *Timer) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disabled {
		return
	}

	switch t.state {
	case StateRunning:
		t.state = StatePaused
	case StatePaused:
		t.state = StateRunning
	case StateIdle:
	}
}

// Stop ends the stopwatch, hands the accumulated seconds to OnStop, and
// clears the notification (best effort, after OnStop). A no-op from Idle:
// no reset, no callback. Stop works whether the timer is Running or Paused
// and ignores the disabled flag.
func (t *Timer) Stop() {
	t.mu.Lock()

	if t.state == StateIdle {
		t.mu.Unlock()

		return
	}

	seconds := t.seconds
	t.resetLocked()

	t.mu.Unlock()

	if t.hooks.OnStop != nil {
		t.hooks.OnStop(seconds)
	}

	if err := t.sink.Clear(); err != nil {
		log.Warn().Err(err).Msgf("could not clear timer notification for '%s'", t.taskName)
	}
}

// Discard resets the stopwatch without firing OnStop: the in-flight elapsed
// time is deliberately lost and nothing reaches the ledger. Used when
// another task's timer preempts this one and when the user confirms leaving
// the screen mid-timing.
func (t *Timer) Discard() {
	t.mu.Lock()

	if t.state == StateIdle {
		t.mu.Unlock()

		return
	}

	t.resetLocked()

	t.mu.Unlock()

	if err := t.sink.Clear(); err != nil {
		log.Warn().Err(err).Msgf("could not clear timer notification for '%s'", t.taskName)
	}
}

// resetLocked returns the timer to Idle and releases the tick goroutine.
func (t *Timer) resetLocked() {
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}

	t.state = StateIdle
	t.seconds = 0
	t.startedAt = time.Time{}
}

// SetDisabled marks the timer as blocked by another running timer. While
// set, Start and Toggle are no-ops.
func (t *Timer) SetDisabled(disabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.disabled = disabled
}

// Disabled reports whether the timer is blocked.
func (t *Timer) Disabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.disabled
}

// State returns the current lifecycle state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Elapsed returns the accumulated whole seconds. Unlike the display, this
// value never wraps.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seconds
}

// StartedAt returns the wall-clock time Start was called, or the zero time
// when Idle. Display only; elapsed time does not derive from it.
func (t *Timer) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.startedAt
}

// Display renders the counter as a wrapped HH:MM:SS clock.
func (t *Timer) Display() string {
	return FormatClock(t.Elapsed())
}

func (t *Timer) run(stopCh chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// tick advances the counter by one second while Running only.
func (t *Timer) tick() {
	t.mu.Lock()

	if t.state != StateRunning {
		t.mu.Unlock()

		return
	}

	t.seconds++
	seconds := t.seconds

	t.mu.Unlock()

	if t.hooks.OnTick != nil {
		t.hooks.OnTick(seconds)
	}
}
