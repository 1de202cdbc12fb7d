package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chorekeep/chorekeep/internal/constants"
	"github.com/chorekeep/chorekeep/internal/models"
)

// JSONStore keeps each document as one JSON file under a data directory,
// e.g. <dir>/tasks.json. This is the default provider.
type JSONStore struct {
	dir string
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Path() string {
	return s.dir
}

func (s *JSONStore) docPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func saveDoc[T any](s *JSONStore, key string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.docPath(key), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func loadDoc[T any](s *JSONStore, key string) (T, error) {
	var value T
	data, err := os.ReadFile(s.docPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return value, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return value, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return value, nil
}

func (s *JSONStore) SaveTasks(tasks []models.Task) error {
	return saveDoc(s, constants.DocTasks, tasks)
}

func (s *JSONStore) LoadTasks() ([]models.Task, error) {
	return loadDoc[[]models.Task](s, constants.DocTasks)
}

func (s *JSONStore) SaveRecords(records []models.DailyRecord) error {
	return saveDoc(s, constants.DocRecords, records)
}

func (s *JSONStore) LoadRecords() ([]models.DailyRecord, error) {
	return loadDoc[[]models.DailyRecord](s, constants.DocRecords)
}

func (s *JSONStore) SaveCategories(categories []models.TaskCategory) error {
	return saveDoc(s, constants.DocCategories, categories)
}

func (s *JSONStore) LoadCategories() ([]models.TaskCategory, error) {
	return loadDoc[[]models.TaskCategory](s, constants.DocCategories)
}

func (s *JSONStore) SaveGamification(data models.GamificationData) error {
	return saveDoc(s, constants.DocGamification, data)
}

func (s *JSONStore) LoadGamification() (models.GamificationData, error) {
	return loadDoc[models.GamificationData](s, constants.DocGamification)
}

func (s *JSONStore) SaveUserData(data models.UserData) error {
	return saveDoc(s, constants.DocUserData, data)
}

func (s *JSONStore) LoadUserData() (models.UserData, error) {
	return loadDoc[models.UserData](s, constants.DocUserData)
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	return saveDoc(s, constants.DocHabits, habits)
}

func (s *JSONStore) LoadHabits() ([]models.Habit, error) {
	return loadDoc[[]models.Habit](s, constants.DocHabits)
}

func (s *JSONStore) SaveHabitEntries(entries []models.HabitEntry) error {
	return saveDoc(s, constants.DocHabitEntries, entries)
}

func (s *JSONStore) LoadHabitEntries() ([]models.HabitEntry, error) {
	return loadDoc[[]models.HabitEntry](s, constants.DocHabitEntries)
}

func (s *JSONStore) SaveHabitStreaks(streaks []models.HabitStreak) error {
	return saveDoc(s, constants.DocHabitStreaks, streaks)
}

func (s *JSONStore) LoadHabitStreaks() ([]models.HabitStreak, error) {
	return loadDoc[[]models.HabitStreak](s, constants.DocHabitStreaks)
}

func (s *JSONStore) SaveFocus(data models.FocusData) error {
	return saveDoc(s, constants.DocFocus, data)
}

func (s *JSONStore) LoadFocus() (models.FocusData, error) {
	return loadDoc[models.FocusData](s, constants.DocFocus)
}
