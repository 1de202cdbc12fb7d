package tracker

import (
	"fmt"
	"strings"

	"github.com/chorekeep/chorekeep/internal/logger"
	"github.com/chorekeep/chorekeep/internal/models"
)

// AddTaskParams carries the optional attributes of a new task.
type AddTaskParams struct {
	CategoryID   *string
	ReminderTime string // HH:MM, empty for no reminder
	SpecificDate string // YYYY-MM-DD, empty for a recurring daily task
}

// AddTask validates and appends a new task, mirrors it into today's
// record when that record already exists, and persists both collections.
// Validation failures are returned as typed errors; there is no silent
// drop path.
func (t *Tracker) AddTask(title string, params AddTaskParams) (models.Task, error) {
	title = strings.TrimSpace(title)

	var task models.Task
	if params.SpecificDate != "" {
		task = models.NewSpecificTask(title, params.SpecificDate)
	} else {
		task = models.NewDailyTask(title)
	}
	task.CategoryID = params.CategoryID
	if params.ReminderTime != "" {
		task.HasReminder = true
		task.ReminderTime = params.ReminderTime
	}
	task.SortOrder = len(t.tasks)

	if err := t.validate.ValidateTask(task); err != nil {
		return models.Task{}, err
	}
	if err := t.validate.ValidateCategory(task.CategoryID, t.categories); err != nil {
		return models.Task{}, err
	}

	t.tasks = append(t.tasks, task)
	t.saveTasks()

	// Only an existing today record is extended; record creation stays
	// lazy on first TodayRecord access.
	if idx := t.recordIndex(t.TodayKey()); idx >= 0 {
		t.records[idx].Statuses = append(t.records[idx].Statuses, models.TaskStatus{TaskID: task.ID})
		t.saveRecords()
	}

	if task.HasReminder {
		if err := t.notify.ScheduleReminder(task, task.ReminderTime, task.RepeatDaily); err != nil {
			logger.Debug("reminder not scheduled", "task", task.ID, "error", err)
		}
	}

	t.emit(EventTasks)
	t.emit(EventRecords)
	return task, nil
}

// DeleteTask removes the task and scrubs its status from every record,
// past and present. Explicit deletion is a stronger signal than passive
// orphaning, so unlike cleanup it rewrites history.
func (t *Tracker) DeleteTask(taskID string) error {
	ti := -1
	for i := range t.tasks {
		if t.tasks[i].ID == taskID {
			ti = i
			break
		}
	}
	if ti < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	t.tasks = append(t.tasks[:ti], t.tasks[ti+1:]...)
	t.saveTasks()

	changed := false
	for ri := range t.records {
		rec := &t.records[ri]
		if si := rec.StatusIndex(taskID); si >= 0 {
			rec.Statuses = append(rec.Statuses[:si], rec.Statuses[si+1:]...)
			changed = true
		}
	}
	if changed {
		t.saveRecords()
	}

	if err := t.notify.CancelReminder(taskID); err != nil {
		logger.Debug("reminder not cancelled", "task", taskID, "error", err)
	}

	t.emit(EventTasks)
	t.emit(EventRecords)
	return nil
}

// UpdateTaskReminder sets or clears a task's reminder and mirrors the
// change to the notification scheduler.
func (t *Tracker) UpdateTaskReminder(taskID, timeOfDay string, enabled bool) error {
	ti := -1
	for i := range t.tasks {
		if t.tasks[i].ID == taskID {
			ti = i
			break
		}
	}
	if ti < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	if enabled {
		if err := t.validate.ValidateReminderTime(timeOfDay); err != nil {
			return err
		}
		t.tasks[ti].HasReminder = true
		t.tasks[ti].ReminderTime = timeOfDay
		if err := t.notify.ScheduleReminder(t.tasks[ti], timeOfDay, t.tasks[ti].RepeatDaily); err != nil {
			logger.Debug("reminder not scheduled", "task", taskID, "error", err)
		}
	} else {
		t.tasks[ti].HasReminder = false
		t.tasks[ti].ReminderTime = ""
		if err := t.notify.CancelReminder(taskID); err != nil {
			logger.Debug("reminder not cancelled", "task", taskID, "error", err)
		}
	}

	t.saveTasks()
	t.emit(EventTasks)
	return nil
}

// SetTaskCategory moves a task to another category, or clears the
// reference when categoryID is nil.
func (t *Tracker) SetTaskCategory(taskID string, categoryID *string) error {
	if err := t.validate.ValidateCategory(categoryID, t.categories); err != nil {
		return err
	}
	for i := range t.tasks {
		if t.tasks[i].ID == taskID {
			t.tasks[i].CategoryID = categoryID
			t.saveTasks()
			t.emit(EventTasks)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// ExportTasks returns a copy of the task collection for sharing.
func (t *Tracker) ExportTasks() []models.Task {
	out := make([]models.Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// ImportTasks merges foreign tasks into the collection, skipping any
// whose title (case-insensitive) or id already exists. Returns the
// number of tasks added.
func (t *Tracker) ImportTasks(incoming []models.Task) int {
	titles := make(map[string]bool, len(t.tasks))
	ids := make(map[string]bool, len(t.tasks))
	for _, task := range t.tasks {
		titles[strings.ToLower(strings.TrimSpace(task.Title))] = true
		ids[task.ID] = true
	}

	added := 0
	for _, task := range incoming {
		key := strings.ToLower(strings.TrimSpace(task.Title))
		if key == "" || titles[key] || ids[task.ID] {
			continue
		}
		if err := t.validate.ValidateTask(task); err != nil {
			logger.Debug("skipping invalid imported task", "title", task.Title, "error", err)
			continue
		}
		// Foreign category references are meaningless here.
		task.CategoryID = nil
		task.SortOrder = len(t.tasks)
		t.tasks = append(t.tasks, task)
		titles[key] = true
		ids[task.ID] = true
		added++
	}

	if added > 0 {
		t.saveTasks()
		t.emit(EventTasks)
	}
	return added
}
