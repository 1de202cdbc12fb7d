package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chorekeep/chorekeep/internal/models"
)

// SQLiteStore persists the collections in a single SQLite database.
// Saves keep the whole-document contract: each collection is replaced in
// full inside one transaction, matching the JSON provider's semantics.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category_id TEXT,
	has_reminder INTEGER NOT NULL DEFAULT 0,
	reminder_time TEXT,
	repeat_daily INTEGER NOT NULL DEFAULT 0,
	specific_date TEXT,
	kind TEXT NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL UNIQUE,
	position INTEGER NOT NULL,
	bonus_awarded INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS record_statuses (
	record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	task_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at TEXT,
	PRIMARY KEY (record_id, task_id)
);
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL,
	icon TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	icon TEXT NOT NULL,
	color TEXT NOT NULL,
	target INTEGER NOT NULL,
	unit TEXT NOT NULL,
	category TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	reminder_time TEXT,
	has_reminder INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_entries (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	date TEXT NOT NULL,
	progress INTEGER NOT NULL DEFAULT 0,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at TEXT,
	note TEXT,
	UNIQUE (habit_id, date)
);
CREATE TABLE IF NOT EXISTS habit_streaks (
	habit_id TEXT PRIMARY KEY,
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	last_completed_date TEXT,
	total_completions INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS documents (
	key TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS saved_keys (
	key TEXT PRIMARY KEY
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	return s.Init()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// replaceAll runs fn inside a transaction after clearing the named tables,
// implementing whole-document overwrite semantics. The key is marked as
// saved in the same transaction so later loads can tell an explicitly
// saved empty collection apart from one that was never written.
func (s *SQLiteStore) replaceAll(key string, tables []string, fn func(tx *sql.Tx) error) error {
	if err := s.open(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO saved_keys (key) VALUES (?)`, key); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to mark %s as saved: %w", key, err)
	}
	return tx.Commit()
}

// notFoundUnlessSaved distinguishes a collection that was never written
// from one that was last saved empty. Only the former is ErrNotFound.
func (s *SQLiteStore) notFoundUnlessSaved(key string) error {
	var k string
	err := s.db.QueryRow(`SELECT key FROM saved_keys WHERE key = ?`, key).Scan(&k)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return err
}

func (s *SQLiteStore) SaveTasks(tasks []models.Task) error {
	return s.replaceAll("tasks", []string{"tasks"}, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO tasks (id, title, category_id, has_reminder, reminder_time, repeat_daily, specific_date, kind, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, t := range tasks {
			if _, err := stmt.Exec(t.ID, t.Title, t.CategoryID, t.HasReminder, nullIfEmpty(t.ReminderTime), t.RepeatDaily, t.SpecificDate, string(t.Kind), t.SortOrder); err != nil {
				return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadTasks() ([]models.Task, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
		SELECT id, title, category_id, has_reminder, reminder_time, repeat_daily, specific_date, kind, sort_order
		FROM tasks ORDER BY sort_order, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var categoryID, reminderTime, specificDate sql.NullString
		var kind string
		if err := rows.Scan(&t.ID, &t.Title, &categoryID, &t.HasReminder, &reminderTime, &t.RepeatDaily, &specificDate, &kind, &t.SortOrder); err != nil {
			return nil, err
		}
		t.Kind = models.TaskKind(kind)
		if categoryID.Valid {
			t.CategoryID = &categoryID.String
		}
		if reminderTime.Valid {
			t.ReminderTime = reminderTime.String
		}
		if specificDate.Valid {
			t.SpecificDate = &specificDate.String
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if tasks == nil {
		if err := s.notFoundUnlessSaved("tasks"); err != nil {
			return nil, err
		}
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *SQLiteStore) SaveRecords(records []models.DailyRecord) error {
	return s.replaceAll("records", []string{"record_statuses", "records"}, func(tx *sql.Tx) error {
		recStmt, err := tx.Prepare(`INSERT INTO records (id, date, position, bonus_awarded) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer recStmt.Close()
		stStmt, err := tx.Prepare(`
			INSERT INTO record_statuses (record_id, task_id, position, completed, completed_at)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stStmt.Close()

		for pos, r := range records {
			if _, err := recStmt.Exec(r.ID, r.Date, pos, r.BonusAwarded); err != nil {
				return fmt.Errorf("failed to insert record %s: %w", r.Date, err)
			}
			for i, st := range r.Statuses {
				if _, err := stStmt.Exec(r.ID, st.TaskID, i, st.Completed, formatTimePtr(st.CompletedAt)); err != nil {
					return fmt.Errorf("failed to insert status for %s: %w", st.TaskID, err)
				}
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadRecords() ([]models.DailyRecord, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, date, bonus_awarded FROM records ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DailyRecord
	for rows.Next() {
		var r models.DailyRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.BonusAwarded); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		if err := s.notFoundUnlessSaved("records"); err != nil {
			return nil, err
		}
		records = []models.DailyRecord{}
	}

	for i := range records {
		stRows, err := s.db.Query(`
			SELECT task_id, completed, completed_at
			FROM record_statuses WHERE record_id = ? ORDER BY position`, records[i].ID)
		if err != nil {
			return nil, err
		}
		for stRows.Next() {
			var st models.TaskStatus
			var completedAt sql.NullString
			if err := stRows.Scan(&st.TaskID, &st.Completed, &completedAt); err != nil {
				stRows.Close()
				return nil, err
			}
			if completedAt.Valid {
				t, err := time.Parse(time.RFC3339, completedAt.String)
				if err != nil {
					stRows.Close()
					return nil, fmt.Errorf("failed to parse completed_at: %w", err)
				}
				st.CompletedAt = &t
			}
			records[i].Statuses = append(records[i].Statuses, st)
		}
		if err := stRows.Err(); err != nil {
			stRows.Close()
			return nil, err
		}
		stRows.Close()
	}
	return records, nil
}

func (s *SQLiteStore) SaveCategories(categories []models.TaskCategory) error {
	return s.replaceAll("categories", []string{"categories"}, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO categories (id, name, color, icon, position) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, c := range categories {
			if _, err := stmt.Exec(c.ID, c.Name, c.Color, c.Icon, i); err != nil {
				return fmt.Errorf("failed to insert category %s: %w", c.Name, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadCategories() ([]models.TaskCategory, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, name, color, icon FROM categories ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.TaskCategory
	for rows.Next() {
		var c models.TaskCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if categories == nil {
		if err := s.notFoundUnlessSaved("categories"); err != nil {
			return nil, err
		}
		categories = []models.TaskCategory{}
	}
	return categories, nil
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	return s.replaceAll("habits", []string{"habits"}, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO habits (id, name, icon, color, target, unit, category, active, created_at, reminder_time, has_reminder, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, h := range habits {
			if _, err := stmt.Exec(h.ID, h.Name, h.Icon, h.Color, h.Target, h.Unit, string(h.Category),
				h.Active, h.CreatedAt.UTC().Format(time.RFC3339), nullIfEmpty(h.ReminderTime), h.HasReminder, i); err != nil {
				return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadHabits() ([]models.Habit, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
		SELECT id, name, icon, color, target, unit, category, active, created_at, reminder_time, has_reminder
		FROM habits ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		var category, createdAt string
		var reminderTime sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Icon, &h.Color, &h.Target, &h.Unit, &category, &h.Active, &createdAt, &reminderTime, &h.HasReminder); err != nil {
			return nil, err
		}
		h.Category = models.HabitCategory(category)
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if reminderTime.Valid {
			h.ReminderTime = reminderTime.String
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if habits == nil {
		if err := s.notFoundUnlessSaved("habits"); err != nil {
			return nil, err
		}
		habits = []models.Habit{}
	}
	return habits, nil
}

func (s *SQLiteStore) SaveHabitEntries(entries []models.HabitEntry) error {
	return s.replaceAll("habitentries", []string{"habit_entries"}, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO habit_entries (id, habit_id, date, progress, completed, completed_at, note)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.Exec(e.ID, e.HabitID, e.Date, e.Progress, e.Completed, formatTimePtr(e.CompletedAt), nullIfEmpty(e.Note)); err != nil {
				return fmt.Errorf("failed to insert habit entry %s/%s: %w", e.HabitID, e.Date, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadHabitEntries() ([]models.HabitEntry, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
		SELECT id, habit_id, date, progress, completed, completed_at, note
		FROM habit_entries ORDER BY date, habit_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitEntry
	for rows.Next() {
		var e models.HabitEntry
		var completedAt, note sql.NullString
		if err := rows.Scan(&e.ID, &e.HabitID, &e.Date, &e.Progress, &e.Completed, &completedAt, &note); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t, err := time.Parse(time.RFC3339, completedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse completed_at: %w", err)
			}
			e.CompletedAt = &t
		}
		if note.Valid {
			e.Note = note.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		if err := s.notFoundUnlessSaved("habitentries"); err != nil {
			return nil, err
		}
		entries = []models.HabitEntry{}
	}
	return entries, nil
}

func (s *SQLiteStore) SaveHabitStreaks(streaks []models.HabitStreak) error {
	return s.replaceAll("habitstreaks", []string{"habit_streaks"}, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO habit_streaks (habit_id, current_streak, longest_streak, last_completed_date, total_completions)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, st := range streaks {
			if _, err := stmt.Exec(st.HabitID, st.CurrentStreak, st.LongestStreak, nullIfEmpty(st.LastCompletedDate), st.TotalCompletions); err != nil {
				return fmt.Errorf("failed to insert streak for %s: %w", st.HabitID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadHabitStreaks() ([]models.HabitStreak, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
		SELECT habit_id, current_streak, longest_streak, last_completed_date, total_completions
		FROM habit_streaks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var streaks []models.HabitStreak
	for rows.Next() {
		var st models.HabitStreak
		var last sql.NullString
		if err := rows.Scan(&st.HabitID, &st.CurrentStreak, &st.LongestStreak, &last, &st.TotalCompletions); err != nil {
			return nil, err
		}
		if last.Valid {
			st.LastCompletedDate = last.String
		}
		streaks = append(streaks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if streaks == nil {
		if err := s.notFoundUnlessSaved("habitstreaks"); err != nil {
			return nil, err
		}
		streaks = []models.HabitStreak{}
	}
	return streaks, nil
}

// Gamification, user, and focus documents are single values; they are
// kept as JSON in the documents table rather than spread over columns.

func (s *SQLiteStore) saveDocument(key string, value any) error {
	if err := s.open(); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO documents (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) loadDocument(key string, value any) error {
	if err := s.open(); err != nil {
		return err
	}
	var data string
	err := s.db.QueryRow(`SELECT data FROM documents WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), value); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) SaveGamification(data models.GamificationData) error {
	return s.saveDocument("gamification", data)
}

func (s *SQLiteStore) LoadGamification() (models.GamificationData, error) {
	var data models.GamificationData
	err := s.loadDocument("gamification", &data)
	return data, err
}

func (s *SQLiteStore) SaveUserData(data models.UserData) error {
	return s.saveDocument("userdata", data)
}

func (s *SQLiteStore) LoadUserData() (models.UserData, error) {
	var data models.UserData
	err := s.loadDocument("userdata", &data)
	return data, err
}

func (s *SQLiteStore) SaveFocus(data models.FocusData) error {
	return s.saveDocument("focus", data)
}

func (s *SQLiteStore) LoadFocus() (models.FocusData, error) {
	var data models.FocusData
	err := s.loadDocument("focus", &data)
	return data, err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
