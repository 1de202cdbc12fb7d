package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskKind string

const (
	// TaskKindDaily tasks recur every day and carry no date of their own.
	TaskKindDaily TaskKind = "daily"
	// TaskKindSpecific tasks are bound to one concrete calendar date.
	TaskKindSpecific TaskKind = "specific"
)

// Task is a user-defined to-do item.
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required,max=100"`
	CategoryID   *string  `json:"category_id,omitempty"`
	HasReminder  bool     `json:"has_reminder"`
	ReminderTime string   `json:"reminder_time,omitempty"` // HH:MM format
	RepeatDaily  bool     `json:"repeat_daily"`
	SpecificDate *string  `json:"specific_date,omitempty"` // YYYY-MM-DD, set iff Kind == specific
	Kind         TaskKind `json:"kind"`
	SortOrder    int      `json:"sort_order"`
}

// NewDailyTask creates a recurring daily task.
func NewDailyTask(title string) Task {
	return Task{
		ID:          uuid.New().String(),
		Title:       title,
		RepeatDaily: true,
		Kind:        TaskKindDaily,
	}
}

// NewSpecificTask creates a task bound to a single calendar date.
func NewSpecificTask(title, date string) Task {
	return Task{
		ID:           uuid.New().String(),
		Title:        title,
		SpecificDate: &date,
		Kind:         TaskKindSpecific,
	}
}

// TaskStatus is one task's completion state within a DailyRecord.
// CompletedAt is set at the moment of the false-to-true transition and
// cleared when toggled back, so Completed == true iff CompletedAt != nil.
type TaskStatus struct {
	TaskID      string     `json:"task_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DailyRecord is the per-calendar-day snapshot of task completion.
// Exactly one record exists per day key.
type DailyRecord struct {
	ID       string       `json:"id"`
	Date     string       `json:"date"` // YYYY-MM-DD
	Statuses []TaskStatus `json:"statuses"`
	// BonusAwarded marks that the perfect-day bonus has been granted for
	// this day, so toggling a task off and back on cannot award it twice.
	BonusAwarded bool `json:"bonus_awarded,omitempty"`
}

// NewDailyRecord creates a record for the given day key.
func NewDailyRecord(date string, statuses []TaskStatus) DailyRecord {
	return DailyRecord{
		ID:       uuid.New().String(),
		Date:     date,
		Statuses: statuses,
	}
}

// CompletedCount returns the number of completed statuses.
func (r *DailyRecord) CompletedCount() int {
	n := 0
	for _, s := range r.Statuses {
		if s.Completed {
			n++
		}
	}
	return n
}

// TotalCount returns the number of statuses in the record.
func (r *DailyRecord) TotalCount() int {
	return len(r.Statuses)
}

// CompletionRate returns the fraction of completed statuses, 0 when empty.
func (r *DailyRecord) CompletionRate() float64 {
	if len(r.Statuses) == 0 {
		return 0
	}
	return float64(r.CompletedCount()) / float64(len(r.Statuses))
}

// AllCompleted reports whether the record has at least one status and
// every status is completed.
func (r *DailyRecord) AllCompleted() bool {
	return len(r.Statuses) > 0 && r.CompletedCount() == len(r.Statuses)
}

// StatusIndex returns the index of the status for the given task, or -1.
func (r *DailyRecord) StatusIndex(taskID string) int {
	for i, s := range r.Statuses {
		if s.TaskID == taskID {
			return i
		}
	}
	return -1
}
