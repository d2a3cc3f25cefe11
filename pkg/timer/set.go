package timer

import (
	"sync"
	"time"
)

// SetConfig wires a Set to its host screen.
type SetConfig struct {
	TickInterval time.Duration
	Sink         NotificationSink
	// OnTick fires once per counted second of the running timer.
	OnTick func(taskID int64, seconds int)
	// OnStop receives the elapsed seconds of a stopped timer and persists
	// them. It runs before OnChange, so the re-fetch triggered by the
	// change observes the appended row.
	OnStop func(taskID int64, seconds int)
	// OnChange fires whenever the running task id changes, including to
	// zero. Hosts re-fetch their task list here.
	OnChange func(runningTaskID int64)
}

// Set owns the timers of one task-list screen and enforces that at most one
// of them is Running or Paused at a time. It is screen-scoped state, not a
// package singleton: independent screens get independent Sets.
type Set struct {
	mu      sync.Mutex
	config  SetConfig
	timers  map[int64]*Timer
	running int64 // 0 when no timer is active
}

// NewSet creates an empty Set.
func NewSet(config SetConfig) *Set {
	if config.Sink == nil {
		config.Sink = NopSink{}
	}

	return &Set{
		config: config,
		timers: map[int64]*Timer{},
	}
}

// Start activates the timer of the given task. If another task's timer is
// active it is preempted: its unpersisted elapsed time is discarded (no
// ledger row) and the running slot moves to this task.
func (s *Set) Start(taskID int64, taskName string) {
	s.mu.Lock()

	var preempted *Timer

	if s.running != 0 && s.running != taskID {
		preempted = s.timers[s.running]
	}

	t := s.timerLocked(taskID, taskName)

	s.mu.Unlock()

	if preempted != nil {
		preempted.Discard()

		s.mu.Lock()
		s.running = 0
		s.refreshDisabledLocked()
		s.mu.Unlock()
	}

	t.Start()
}

// Toggle pauses or resumes the given task's timer.
func (s *Set) Toggle(taskID int64) {
	if t := s.timer(taskID); t != nil {
		t.Toggle()
	}
}

// Stop stops the given task's timer, which hands its elapsed seconds to
// OnStop and then clears the running slot.
func (s *Set) Stop(taskID int64) {
	if t := s.timer(taskID); t != nil {
		t.Stop()
	}
}

// DiscardRunning drops the active timer without persisting anything. This
// is the navigation-away data-loss path; callers confirm with the user
// first.
func (s *Set) DiscardRunning() {
	s.mu.Lock()
	t := s.timers[s.running]
	s.mu.Unlock()

	if t == nil {
		return
	}

	t.Discard()

	s.mu.Lock()
	s.running = 0
	s.refreshDisabledLocked()
	s.mu.Unlock()
}

// Close cancels every tick goroutine and clears the running slot. Called on
// screen teardown so a stale timer cannot keep reporting to a dead view.
func (s *Set) Close() {
	s.mu.Lock()
	timers := s.timers
	s.timers = map[int64]*Timer{}
	s.running = 0
	s.mu.Unlock()

	for _, t := range timers {
		t.Discard()
	}
}

// Running returns the active task id, or 0.
func (s *Set) Running() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Active reports whether any timer is Running or Paused.
func (s *Set) Active() bool {
	return s.Running() != 0
}

// State returns the lifecycle state of the given task's timer.
func (s *Set) State(taskID int64) State {
	if t := s.timer(taskID); t != nil {
		return t.State()
	}

	return StateIdle
}

// Disabled reports whether the given task's timer is blocked by another
// active timer.
func (s *Set) Disabled(taskID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running != 0 && s.running != taskID
}

// Elapsed returns the counted seconds of the given task's timer.
func (s *Set) Elapsed(taskID int64) int {
	if t := s.timer(taskID); t != nil {
		return t.Elapsed()
	}

	return 0
}

// Display renders the given task's timer as a wrapped clock.
func (s *Set) Display(taskID int64) string {
	return FormatClock(s.Elapsed(taskID))
}

func (s *Set) timer(taskID int64) *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timers[taskID]
}

func (s *Set) timerLocked(taskID int64, taskName string) *Timer {
	if t, ok := s.timers[taskID]; ok {
		return t
	}

	t := New(Config{
		TickInterval: s.config.TickInterval,
		Sink:         s.config.Sink,
		TaskName:     taskName,
		Hooks: Hooks{
			OnInit: func() { s.setRunning(taskID) },
			OnStop: func(seconds int) {
				if s.config.OnStop != nil {
					s.config.OnStop(taskID, seconds)
				}

				s.clearRunning(taskID)
			},
			OnTick: func(seconds int) {
				if s.config.OnTick != nil {
					s.config.OnTick(taskID, seconds)
				}
			},
		},
	})

	t.SetDisabled(s.running != 0 && s.running != taskID)
	s.timers[taskID] = t

	return t
}

func (s *Set) setRunning(taskID int64) {
	s.mu.Lock()
	s.running = taskID
	s.refreshDisabledLocked()
	s.mu.Unlock()

	if s.config.OnChange != nil {
		s.config.OnChange(taskID)
	}
}

func (s *Set) clearRunning(taskID int64) {
	s.mu.Lock()

	if s.running != taskID {
		s.mu.Unlock()

		return
	}

	s.running = 0
	s.refreshDisabledLocked()
	s.mu.Unlock()

	if s.config.OnChange != nil {
		s.config.OnChange(0)
	}
}

// refreshDisabledLocked recomputes every timer's disabled flag from the
// running slot: disabled = some other task's timer holds the slot.
func (s *Set) refreshDisabledLocked() {
	for id, t := range s.timers {
		t.SetDisabled(s.running != 0 && s.running != id)
	}
}
