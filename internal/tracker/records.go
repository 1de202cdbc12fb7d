package tracker

import (
	"fmt"

	"github.com/chorekeep/chorekeep/internal/logger"
	"github.com/chorekeep/chorekeep/internal/models"
)

// recordIndex returns the index of the record for the given day key, or -1.
func (t *Tracker) recordIndex(date string) int {
	for i := range t.records {
		if t.records[i].Date == date {
			return i
		}
	}
	return -1
}

// ensureTodayRecord returns the index of today's record, synthesizing and
// persisting one on first access. The new record mirrors every known task
// as a pending status and is inserted at the front of the collection, so
// no daily init job is needed.
func (t *Tracker) ensureTodayRecord() int {
	key := t.TodayKey()
	if idx := t.recordIndex(key); idx >= 0 {
		return idx
	}

	statuses := make([]models.TaskStatus, 0, len(t.tasks))
	for _, task := range t.tasks {
		statuses = append(statuses, models.TaskStatus{TaskID: task.ID})
	}
	rec := models.NewDailyRecord(key, statuses)
	t.records = append([]models.DailyRecord{rec}, t.records...)
	t.saveRecords()
	t.emit(EventRecords)
	return 0
}

// TodayRecord returns a copy of today's record, creating it on first
// access. Repeated calls within the same day without intervening task
// changes return identical status sets; only the first call persists.
func (t *Tracker) TodayRecord() models.DailyRecord {
	idx := t.ensureTodayRecord()
	rec := t.records[idx]
	statuses := make([]models.TaskStatus, len(rec.Statuses))
	copy(statuses, rec.Statuses)
	rec.Statuses = statuses
	return rec
}

// RecordForDate returns a copy of the record for the given day key.
func (t *Tracker) RecordForDate(date string) (models.DailyRecord, bool) {
	idx := t.recordIndex(date)
	if idx < 0 {
		return models.DailyRecord{}, false
	}
	return t.records[idx], true
}

// Toggle flips the completion flag for the task in today's record. The
// completing edge stamps the completion time, awards points, and checks
// for a perfect day; toggling back clears the timestamp but points are a
// one-way ratchet and are never deducted.
func (t *Tracker) Toggle(taskID string) error {
	idx := t.ensureTodayRecord()
	rec := &t.records[idx]

	si := rec.StatusIndex(taskID)
	if si < 0 {
		return fmt.Errorf("%w: %s is not listed today", ErrTaskNotFound, taskID)
	}

	status := &rec.Statuses[si]
	if status.Completed {
		status.Completed = false
		status.CompletedAt = nil
	} else {
		now := t.now()
		status.Completed = true
		status.CompletedAt = &now
		t.engine.AwardTaskCompleted(&t.gamification, rec.Date, now)
		t.checkDayComplete(rec)
	}

	t.saveRecords()
	t.saveGamification()
	t.emit(EventRecords)
	t.emit(EventGamification)
	return nil
}

// checkDayComplete grants the perfect-day bonus once per day. The guard
// means toggling a task off and back on while the rest of the day is
// complete cannot double-award.
func (t *Tracker) checkDayComplete(rec *models.DailyRecord) {
	if !rec.AllCompleted() || rec.BonusAwarded {
		return
	}
	rec.BonusAwarded = true
	t.engine.AwardAllTasksCompleted(&t.gamification, t.now())
	if err := t.notify.SendCompletionCelebration(len(rec.Statuses)); err != nil {
		logger.Debug("completion celebration not delivered", "error", err)
	}
}

// IsTaskActiveToday reports whether the task has a status entry in
// today's record.
func (t *Tracker) IsTaskActiveToday(taskID string) bool {
	idx := t.recordIndex(t.TodayKey())
	if idx < 0 {
		return false
	}
	return t.records[idx].StatusIndex(taskID) >= 0
}

// ActivateTaskForToday adds a pending status for the task to today's
// record, letting a task opt in to today's list independent of its
// recurrence. Other days are untouched.
func (t *Tracker) ActivateTaskForToday(taskID string) error {
	if _, err := t.TaskByID(taskID); err != nil {
		return err
	}
	idx := t.ensureTodayRecord()
	rec := &t.records[idx]
	if rec.StatusIndex(taskID) >= 0 {
		return nil
	}
	rec.Statuses = append(rec.Statuses, models.TaskStatus{TaskID: taskID})
	t.saveRecords()
	t.emit(EventRecords)
	return nil
}

// DeactivateTaskForToday removes the task's status from today's record.
func (t *Tracker) DeactivateTaskForToday(taskID string) {
	idx := t.recordIndex(t.TodayKey())
	if idx < 0 {
		return
	}
	rec := &t.records[idx]
	si := rec.StatusIndex(taskID)
	if si < 0 {
		return
	}
	rec.Statuses = append(rec.Statuses[:si], rec.Statuses[si+1:]...)
	t.saveRecords()
	t.emit(EventRecords)
}

// CleanupOrphanedTasks removes statuses whose task no longer exists from
// today's record only, persisting if anything was dropped. Historical
// records keep orphaned statuses as a snapshot of what existed at the
// time.
func (t *Tracker) CleanupOrphanedTasks() {
	idx := t.recordIndex(t.TodayKey())
	if idx < 0 {
		return
	}

	known := make(map[string]bool, len(t.tasks))
	for _, task := range t.tasks {
		known[task.ID] = true
	}

	rec := &t.records[idx]
	kept := rec.Statuses[:0]
	removed := 0
	for _, s := range rec.Statuses {
		if known[s.TaskID] {
			kept = append(kept, s)
		} else {
			removed++
		}
	}
	if removed == 0 {
		return
	}
	rec.Statuses = kept
	logger.Debug("pruned orphaned task statuses", "count", removed)
	t.saveRecords()
	t.emit(EventRecords)
}
