package models

import (
	"time"

	"github.com/google/uuid"
)

type FocusSessionKind string

const (
	FocusWork       FocusSessionKind = "work"
	FocusShortBreak FocusSessionKind = "short_break"
	FocusLongBreak  FocusSessionKind = "long_break"
)

// FocusSession is one completed or in-flight focus timer run, optionally
// tied to a task.
type FocusSession struct {
	ID        string           `json:"id"`
	TaskID    *string          `json:"task_id,omitempty"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   *time.Time       `json:"ended_at,omitempty"`
	Duration  time.Duration    `json:"duration"`
	Kind      FocusSessionKind `json:"kind"`
	Completed bool             `json:"completed"`
	Note      string           `json:"note,omitempty"`
}

// NewFocusSession starts a session of the given kind and planned duration.
func NewFocusSession(kind FocusSessionKind, duration time.Duration, taskID *string, startedAt time.Time) FocusSession {
	return FocusSession{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		StartedAt: startedAt,
		Duration:  duration,
		Kind:      kind,
	}
}

// FocusSettings configures the focus timer cadence.
type FocusSettings struct {
	WorkDuration           time.Duration `json:"work_duration"`
	ShortBreakDuration     time.Duration `json:"short_break_duration"`
	LongBreakDuration      time.Duration `json:"long_break_duration"`
	SessionsUntilLongBreak int           `json:"sessions_until_long_break"`
	AutoStartBreaks        bool          `json:"auto_start_breaks"`
	AutoStartWork          bool          `json:"auto_start_work"`
}

// DefaultFocusSettings is the classic 25/5/15 cadence.
func DefaultFocusSettings() FocusSettings {
	return FocusSettings{
		WorkDuration:           25 * time.Minute,
		ShortBreakDuration:     5 * time.Minute,
		LongBreakDuration:      15 * time.Minute,
		SessionsUntilLongBreak: 4,
	}
}

// DurationFor returns the configured duration for a session kind.
func (s FocusSettings) DurationFor(kind FocusSessionKind) time.Duration {
	switch kind {
	case FocusShortBreak:
		return s.ShortBreakDuration
	case FocusLongBreak:
		return s.LongBreakDuration
	default:
		return s.WorkDuration
	}
}

// FocusData is the persisted focus document: settings plus the completed
// session log.
type FocusData struct {
	Settings FocusSettings  `json:"settings"`
	Sessions []FocusSession `json:"sessions"`
}

// NewFocusData returns the default focus document.
func NewFocusData() FocusData {
	return FocusData{Settings: DefaultFocusSettings()}
}
