// Package notifier is the narrow interface the tracker uses for reminder
// side effects. The core never depends on delivery succeeding: every
// implementation failure is logged by the caller and dropped.
package notifier

import (
	"fmt"

	"github.com/chorekeep/chorekeep/internal/models"
)

// Scheduler schedules and cancels task reminders and sends completion
// celebrations. Implementations must be safe to call from the tracker's
// single mutation context.
type Scheduler interface {
	// ScheduleReminder registers a reminder for the task at the given
	// HH:MM time, repeating daily when repeatDaily is set.
	ScheduleReminder(task models.Task, timeOfDay string, repeatDaily bool) error
	// CancelReminder removes any pending reminder for the task.
	CancelReminder(taskID string) error
	// SendCompletionCelebration notifies the user that all of today's
	// tasks (count of them) are done.
	SendCompletionCelebration(count int) error
}

// Nop discards every notification. Used in tests and headless runs.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (*Nop) ScheduleReminder(models.Task, string, bool) error { return nil }
func (*Nop) CancelReminder(string) error                      { return nil }
func (*Nop) SendCompletionCelebration(int) error              { return nil }

// CelebrationText renders the perfect-day message shown by desktop
// implementations.
func CelebrationText(count int) string {
	if count == 1 {
		return "Nice work! Your task for today is done."
	}
	return fmt.Sprintf("Nice work! All %d tasks for today are done.", count)
}
