package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/storage"
)

// testClock is a controllable time source for day-boundary scenarios.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestTracker(t *testing.T) (*Tracker, *testClock, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	return newTrackerOver(t, store)
}

func newTrackerOver(t *testing.T, store storage.Provider) (*Tracker, *testClock, storage.Provider) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)}
	trk, err := New(store, Config{Now: clock.Now, Timezone: "UTC"})
	if err != nil {
		t.Fatal(err)
	}
	trk.LoadAll()
	return trk, clock, store
}

// seedTwoTasks replaces the default seed with a known pair.
func seedTwoTasks(t *testing.T, trk *Tracker) (models.Task, models.Task) {
	t.Helper()
	for _, task := range append([]models.Task(nil), trk.Tasks()...) {
		if err := trk.DeleteTask(task.ID); err != nil {
			t.Fatal(err)
		}
	}
	a, err := trk.AddTask("Task A", AddTaskParams{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := trk.AddTask("Task B", AddTaskParams{})
	if err != nil {
		t.Fatal(err)
	}
	return a, b
}

func TestLoadAllSeedsDefaultsOnFirstLaunch(t *testing.T) {
	trk, _, store := newTestTracker(t)

	if got := len(trk.Tasks()); got != len(models.DefaultTaskTitles()) {
		t.Errorf("seeded %d tasks, want %d", got, len(models.DefaultTaskTitles()))
	}
	if got := len(trk.Categories()); got != len(models.DefaultCategories()) {
		t.Errorf("seeded %d categories, want %d", got, len(models.DefaultCategories()))
	}
	if trk.Gamification().Level != 1 || trk.Gamification().TotalPoints != 0 {
		t.Errorf("gamification not fresh: %+v", trk.Gamification())
	}
	if !trk.User().FirstLaunch {
		t.Error("fresh user data should report first launch")
	}
	if len(trk.Advisories()) != 0 {
		t.Errorf("first launch must not produce advisories: %v", trk.Advisories())
	}

	// Seeded defaults are persisted back, so a second session finds them.
	if _, err := store.LoadTasks(); err != nil {
		t.Errorf("seeded tasks were not persisted: %v", err)
	}
	if _, err := store.LoadCategories(); err != nil {
		t.Errorf("seeded categories were not persisted: %v", err)
	}
}

func TestLoadAllDegradesOnCorruptDocument(t *testing.T) {
	store := storage.NewJSONStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Path(), "gamification.json"), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Path(), "categories.json"), []byte("[broken"), 0600); err != nil {
		t.Fatal(err)
	}

	trk, _, _ := newTrackerOver(t, store)

	if trk.Gamification().Level != 1 {
		t.Errorf("corrupt gamification should reset to defaults: %+v", trk.Gamification())
	}
	defaults := models.DefaultCategories()
	cats := trk.Categories()
	if len(cats) != len(defaults) || cats[0].Name != defaults[0].Name {
		t.Errorf("corrupt categories should be replaced with the default catalog, got %d", len(cats))
	}
	if len(trk.Advisories()) < 2 {
		t.Errorf("corrupt documents must produce advisories: %v", trk.Advisories())
	}

	// The restored defaults are persisted back immediately.
	persisted, err := store.LoadCategories()
	if err != nil || len(persisted) != len(defaults) {
		t.Errorf("default catalog not persisted back: %v", err)
	}
}

func TestTodayRecordLazyCreation(t *testing.T) {
	trk, _, _ := newTestTracker(t)

	if len(trk.Records()) != 0 {
		t.Fatalf("no record should exist before first access, got %d", len(trk.Records()))
	}

	rec := trk.TodayRecord()
	if rec.Date != "2026-03-15" {
		t.Errorf("Date = %q, want 2026-03-15", rec.Date)
	}
	if len(rec.Statuses) != len(trk.Tasks()) {
		t.Errorf("record has %d statuses, want one per task (%d)", len(rec.Statuses), len(trk.Tasks()))
	}
	for _, status := range rec.Statuses {
		if status.Completed || status.CompletedAt != nil {
			t.Errorf("new statuses must be pending: %+v", status)
		}
	}

	again := trk.TodayRecord()
	if again.ID != rec.ID || len(trk.Records()) != 1 {
		t.Error("repeated access must return the same record, not create another")
	}
}

func TestNewDayRecordInsertedAtFront(t *testing.T) {
	trk, clock, _ := newTestTracker(t)

	first := trk.TodayRecord()
	clock.advanceDays(1)
	second := trk.TodayRecord()

	if second.Date != "2026-03-16" {
		t.Fatalf("Date = %q, want 2026-03-16", second.Date)
	}
	records := trk.Records()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Error("newest record must sit at the front of the collection")
	}
}

func TestToggleAwardsAndStamps(t *testing.T) {
	trk, _, _ := newTestTracker(t)
	a, _ := seedTwoTasks(t, trk)

	if err := trk.Toggle(a.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	rec := trk.TodayRecord()
	status := rec.Statuses[rec.StatusIndex(a.ID)]
	if !status.Completed || status.CompletedAt == nil {
		t.Errorf("completing must set the flag and the timestamp: %+v", status)
	}
	gami := trk.Gamification()
	if gami.TotalPoints != 5 {
		t.Errorf("TotalPoints = %d, want 5", gami.TotalPoints)
	}
	if gami.Streak != 1 {
		t.Errorf("Streak = %d, want 1", gami.Streak)
	}
}

func TestToggleBackKeepsPoints(t *testing.T) {
	trk, _, _ := newTestTracker(t)
	a, _ := seedTwoTasks(t, trk)

	if err := trk.Toggle(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := trk.Toggle(a.ID); err != nil {
		t.Fatal(err)
	}

	rec := trk.TodayRecord()
	status := rec.Statuses[rec.StatusIndex(a.ID)]
	if status.Completed || status.CompletedAt != nil {
		t.Errorf("un-toggling must clear the flag and the timestamp: %+v", status)
	}
	if got := trk.Gamification().TotalPoints; got != 5 {
		t.Errorf("TotalPoints = %d, want 5 (points are never deducted)", got)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	trk, _, _ := newTestTracker(t)

	err := trk.Toggle("no-such-task")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Toggle on unknown task: %v, want ErrTaskNotFound", err)
	}
}

func TestPerfectDayBonus(t *testing.T) {
	trk, _, _ := newTestTracker(t)
	a, b := seedTwoTasks(t, trk)

	if err := trk.Toggle(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := trk.Toggle(b.ID); err != nil {
		t.Fatal(err)
	}

	// 5 + 5 for the tasks, 20 for the perfect day.
	if got := trk.Gamification().TotalPoints; got != 30 {
		t.Errorf("TotalPoints = %d, want 30", got)
	}
	if !trk.TodayRecord().BonusAwarded {
		t.Error("perfect day must mark the bonus as awarded")
	}
}

func TestPerfectDayBonusAwardedOncePerDay(t *testing.T) {
	trk, _, _ := newTestTracker(t)
	a, b := seedTwoTasks(t, trk)

	if err := trk.Toggle(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := trk.Toggle(b.ID); err != nil {
		t.Fatal(err)
	}
	// Off and back on: one more task award, no second bonus.
	if err := trk.Toggle(b.ID); err != nil {
		t.Fatal(err)
	}
	if err := trk.Toggle(b.ID); err != nil {
		t.Fatal(err)
	}

	if got := trk.Gamification().TotalPoints; got != 35 {
		t.Errorf("TotalPoints = %d, want 35 (30 + 5, bonus not repeated)", got)
	}
}

func TestAddTaskJoinsExistingTodayRecord(t *testing.T) {
	trk, _, _ := newTestTracker(t)

	rec := trk.TodayRecord()
	before := len(rec.Statuses)

	task, err := trk.AddTask("Water plants", AddTaskParams{})
	if err != nil {
		t.Fatal(err)
	}

	rec = trk.TodayRecord()
	if len(rec.Statuses) != before+1 {
		t.Errorf("today's record has %d statuses, want %d", len(rec.Statuses), before+1)
	}
	if rec.StatusIndex(task.ID) < 0 {
		t.Error("new task missing from today's record")
	}
}

func TestAddTaskValidation(t *testing.T) {
	trk, _, _ := newTestTracker(t)

	if _, err := trk.AddTask("   ", AddTaskParams{}); err == nil {
		t.Error("blank title must be rejected")
	}
	if _, err := trk.AddTask("Dentist", AddTaskParams{SpecificDate: "someday"}); err == nil {
		t.Error("malformed date must be rejected")
	}
	ghost := "no-such-category"
	if _, err := trk.AddTask("Chore", AddTaskParams{CategoryID: &ghost}); err == nil {
		t.Error("unknown category must be rejected")
	}
}

func TestDeleteTaskScrubsAllRecords(t *testing.T) {
	trk, clock, _ := newTestTracker(t)
	a, _ := seedTwoTasks(t, trk)

	trk.TodayRecord()
	clock.advanceDays(1)
	trk.TodayRecord()

	if err := trk.DeleteTask(a.ID); err != nil {
		t.Fatal(err)
	}

	for _, rec := range trk.Records() {
		if rec.StatusIndex(a.ID) >= 0 {
			t.Errorf("deleted task still present in record %s", rec.Date)
		}
	}
	if _, err := trk.TaskByID(a.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Error("deleted task still resolvable")
	}
}

func TestCleanupOrphansTodayOnly(t *testing.T) {
	store := storage.NewJSONStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	keep := models.NewDailyTask("Keep me")
	if err := store.SaveTasks([]models.Task{keep}); err != nil {
		t.Fatal(err)
	}
	today := models.NewDailyRecord("2026-03-15", []models.TaskStatus{
		{TaskID: keep.ID},
		{TaskID: "ghost-today"},
	})
	yesterday := models.NewDailyRecord("2026-03-14", []models.TaskStatus{
		{TaskID: "ghost-past"},
	})
	if err := store.SaveRecords([]models.DailyRecord{today, yesterday}); err != nil {
		t.Fatal(err)
	}

	trk, _, _ := newTrackerOver(t, store)

	rec, ok := trk.RecordForDate("2026-03-15")
	if !ok {
		t.Fatal("today's record missing")
	}
	if rec.StatusIndex("ghost-today") >= 0 {
		t.Error("orphaned status should be pruned from today's record")
	}
	if rec.StatusIndex(keep.ID) < 0 {
		t.Error("live status was pruned")
	}

	past, ok := trk.RecordForDate("2026-03-14")
	if !ok {
		t.Fatal("historical record missing")
	}
	if past.StatusIndex("ghost-past") < 0 {
		t.Error("historical records must keep orphaned statuses as snapshots")
	}
}

func TestActivateAndDeactivateForToday(t *testing.T) {
	trk, _, _ := newTestTracker(t)
	a, _ := seedTwoTasks(t, trk)

	if !trk.IsTaskActiveToday(a.ID) {
		t.Fatal("task should start active today")
	}

	trk.DeactivateTaskForToday(a.ID)
	if trk.IsTaskActiveToday(a.ID) {
		t.Error("task still active after deactivation")
	}

	if err := trk.ActivateTaskForToday(a.ID); err != nil {
		t.Fatal(err)
	}
	if !trk.IsTaskActiveToday(a.ID) {
		t.Error("task not active after re-activation")
	}

	// Activating twice must not duplicate the status.
	if err := trk.ActivateTaskForToday(a.ID); err != nil {
		t.Fatal(err)
	}
	rec := trk.TodayRecord()
	count := 0
	for _, status := range rec.Statuses {
		if status.TaskID == a.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("task has %d statuses today, want 1", count)
	}
}

func TestDeleteCategoryKeepsTasks(t *testing.T) {
	trk, _, _ := newTestTracker(t)

	cat, err := trk.AddCategory("Garden", "green", "leaf")
	if err != nil {
		t.Fatal(err)
	}
	task, err := trk.AddTask("Mow the lawn", AddTaskParams{CategoryID: &cat.ID})
	if err != nil {
		t.Fatal(err)
	}

	if err := trk.DeleteCategory(cat.ID); err != nil {
		t.Fatal(err)
	}

	got, err := trk.TaskByID(task.ID)
	if err != nil {
		t.Fatal("task must survive its category")
	}
	if got.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil", *got.CategoryID)
	}
	if _, err := trk.CategoryByName("Garden"); !errors.Is(err, ErrCategoryNotFound) {
		t.Error("category still resolvable after deletion")
	}
}

func TestImportTasksMerge(t *testing.T) {
	trk, _, _ := newTestTracker(t)
	a, _ := seedTwoTasks(t, trk)

	foreignCat := "foreign-cat"
	incoming := []models.Task{
		func() models.Task { d := models.NewDailyTask("task a"); return d }(), // dup title, case-insensitive
		a, // dup id
		func() models.Task {
			d := models.NewDailyTask("Brand new")
			d.CategoryID = &foreignCat
			return d
		}(),
		models.NewDailyTask(""), // invalid
	}

	added := trk.ImportTasks(incoming)
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	imported, err := func() (models.Task, error) {
		for _, task := range trk.Tasks() {
			if task.Title == "Brand new" {
				return task, nil
			}
		}
		return models.Task{}, errors.New("not found")
	}()
	if err != nil {
		t.Fatal("imported task missing")
	}
	if imported.CategoryID != nil {
		t.Error("foreign category references must be cleared on import")
	}
}

func TestSetUserNameSanitizes(t *testing.T) {
	trk, _, _ := newTestTracker(t)

	trk.SetUserName("  Ada Lovelace!!1  ")
	if got := trk.User().Name; got != "Ada Lovelace" {
		t.Errorf("Name = %q, want %q", got, "Ada Lovelace")
	}
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	store := storage.NewJSONStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	trk, _, _ := newTrackerOver(t, store)
	a, _ := seedTwoTasks(t, trk)
	if err := trk.Toggle(a.ID); err != nil {
		t.Fatal(err)
	}

	// A fresh tracker over the same store sees the same world.
	reloaded, _, _ := newTrackerOver(t, store)
	if got := reloaded.Gamification().TotalPoints; got != 5 {
		t.Errorf("TotalPoints = %d after reload, want 5", got)
	}
	rec := reloaded.TodayRecord()
	if si := rec.StatusIndex(a.ID); si < 0 || !rec.Statuses[si].Completed {
		t.Error("completion state lost across sessions")
	}
}

func TestTodayKeyFollowsConfiguredTimezone(t *testing.T) {
	store := storage.NewJSONStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	// 20:00 UTC on the 15th is already the 16th in Tokyo.
	clock := &testClock{now: time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)}
	trk, err := New(store, Config{Now: clock.Now, Timezone: "Asia/Tokyo"})
	if err != nil {
		t.Fatal(err)
	}
	trk.LoadAll()

	if got := trk.TodayKey(); got != "2026-03-16" {
		t.Errorf("TodayKey = %q, want 2026-03-16", got)
	}
	if got := trk.TodayRecord().Date; got != "2026-03-16" {
		t.Errorf("today record date = %q, want 2026-03-16", got)
	}
}

func TestDeletedTasksStayDeletedAcrossSessions(t *testing.T) {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	trk, _, _ := newTrackerOver(t, store)
	for _, task := range append([]models.Task(nil), trk.Tasks()...) {
		if err := trk.DeleteTask(task.ID); err != nil {
			t.Fatal(err)
		}
	}

	// An emptied collection must not be mistaken for a first launch.
	reloaded, _, _ := newTrackerOver(t, store)
	if got := len(reloaded.Tasks()); got != 0 {
		t.Errorf("got %d tasks after reload, want 0 (defaults must not reappear)", got)
	}
}
