// Package focus is the Pomodoro-style session engine: a clock-driven
// state machine over work and break sessions with a persisted session
// log. It has no timer UI; callers poll it with the current time.
package focus

import (
	"errors"
	"fmt"
	"time"

	"github.com/chorekeep/chorekeep/internal/logger"
	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/storage"
	"github.com/chorekeep/chorekeep/internal/utils"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// ErrNoSession is returned by controls that need an active session.
var ErrNoSession = errors.New("no focus session in progress")

// Timer is the focus session state machine.
type Timer struct {
	store storage.Provider
	now   func() time.Time

	data        models.FocusData
	state       State
	current     *models.FocusSession
	remaining   time.Duration
	lastResumed time.Time
	// completed work sessions since the last long break
	workRun int
}

// NewTimer creates a Timer over the provider. Call Load before use.
func NewTimer(store storage.Provider, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{store: store, now: now}
}

// Load reads the focus document, degrading to defaults on any failure.
func (t *Timer) Load() {
	data, err := t.store.LoadFocus()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("focus data could not be loaded, resetting", "error", err)
		}
		data = models.NewFocusData()
	}
	t.data = data
}

func (t *Timer) save() {
	if err := t.store.SaveFocus(t.data); err != nil {
		logger.Warn("failed to save focus data", "error", err)
	}
}

// Settings returns the configured cadence.
func (t *Timer) Settings() models.FocusSettings {
	return t.data.Settings
}

// UpdateSettings replaces the cadence configuration.
func (t *Timer) UpdateSettings(s models.FocusSettings) error {
	if s.WorkDuration <= 0 || s.ShortBreakDuration <= 0 || s.LongBreakDuration <= 0 {
		return fmt.Errorf("focus durations must be positive")
	}
	if s.SessionsUntilLongBreak < 1 {
		return fmt.Errorf("sessions until long break must be at least 1")
	}
	t.data.Settings = s
	t.save()
	return nil
}

// State returns the machine state as of the given time, folding in any
// completion that elapsed since the last control call.
func (t *Timer) State(now time.Time) State {
	t.poll(now)
	return t.state
}

// Current returns the in-flight session, if any.
func (t *Timer) Current() *models.FocusSession {
	return t.current
}

// Remaining returns time left in the current session as of now.
func (t *Timer) Remaining(now time.Time) time.Duration {
	t.poll(now)
	switch t.state {
	case StateRunning:
		rem := t.remaining - now.Sub(t.lastResumed)
		if rem < 0 {
			return 0
		}
		return rem
	case StatePaused:
		return t.remaining
	default:
		return 0
	}
}

// Start begins a session of the given kind. Any in-flight session is
// discarded unlogged; only completed sessions enter the history.
func (t *Timer) Start(kind models.FocusSessionKind, taskID *string) models.FocusSession {
	now := t.now()
	session := models.NewFocusSession(kind, t.data.Settings.DurationFor(kind), taskID, now)
	t.current = &session
	t.remaining = session.Duration
	t.lastResumed = now
	t.state = StateRunning
	return session
}

// Pause freezes the running session.
func (t *Timer) Pause() error {
	now := t.now()
	t.poll(now)
	if t.state != StateRunning {
		return ErrNoSession
	}
	t.remaining -= now.Sub(t.lastResumed)
	if t.remaining < 0 {
		t.remaining = 0
	}
	t.state = StatePaused
	return nil
}

// Resume continues a paused session.
func (t *Timer) Resume() error {
	if t.state != StatePaused {
		return ErrNoSession
	}
	t.lastResumed = t.now()
	t.state = StateRunning
	return nil
}

// Cancel discards the current session without logging it.
func (t *Timer) Cancel() error {
	if t.state != StateRunning && t.state != StatePaused {
		return ErrNoSession
	}
	t.current = nil
	t.state = StateIdle
	return nil
}

// poll completes the running session if its time has fully elapsed.
func (t *Timer) poll(now time.Time) {
	if t.state != StateRunning || t.current == nil {
		return
	}
	if t.remaining-now.Sub(t.lastResumed) > 0 {
		return
	}

	endedAt := t.lastResumed.Add(t.remaining)
	t.current.EndedAt = &endedAt
	t.current.Completed = true
	t.data.Sessions = append(t.data.Sessions, *t.current)
	if t.current.Kind == models.FocusWork {
		t.workRun++
	} else if t.current.Kind == models.FocusLongBreak {
		t.workRun = 0
	}
	t.current = nil
	t.remaining = 0
	t.state = StateCompleted
	t.save()
}

// NextKind suggests what to run next: a long break after the configured
// number of work sessions, a short break after other work sessions, and
// work after any break or from idle.
func (t *Timer) NextKind() models.FocusSessionKind {
	if t.workRun > 0 && t.workRun%t.data.Settings.SessionsUntilLongBreak == 0 {
		return models.FocusLongBreak
	}
	if len(t.data.Sessions) > 0 && t.data.Sessions[len(t.data.Sessions)-1].Kind == models.FocusWork {
		return models.FocusShortBreak
	}
	return models.FocusWork
}

// Sessions returns the completed session log.
func (t *Timer) Sessions() []models.FocusSession {
	return t.data.Sessions
}

// FocusMinutesOn sums completed work-session minutes started on the
// given day.
func (t *Timer) FocusMinutesOn(day utils.Day) int {
	var total time.Duration
	for _, s := range t.data.Sessions {
		if s.Kind == models.FocusWork && s.Completed && utils.DayOf(s.StartedAt) == day {
			total += s.Duration
		}
	}
	return int(total.Minutes())
}

// FocusMinutesSince sums completed work-session minutes over the n days
// ending at the given day, inclusive.
func (t *Timer) FocusMinutesSince(day utils.Day, n int) int {
	start := day.AddDays(-(n - 1))
	var total time.Duration
	for _, s := range t.data.Sessions {
		d := utils.DayOf(s.StartedAt)
		if s.Kind == models.FocusWork && s.Completed && !d.Before(start) && !day.Before(d) {
			total += s.Duration
		}
	}
	return int(total.Minutes())
}
