package tracker

import (
	"fmt"
	"strings"

	"github.com/chorekeep/chorekeep/internal/models"
)

// AddCategory validates and appends a new category. Names are unique
// case-insensitively.
func (t *Tracker) AddCategory(name, color, icon string) (models.TaskCategory, error) {
	name = strings.TrimSpace(name)
	if err := t.validate.ValidateCategoryName(name, t.categories); err != nil {
		return models.TaskCategory{}, err
	}
	cat := models.NewTaskCategory(name, color, icon)
	t.categories = append(t.categories, cat)
	t.saveCategories()
	t.emit(EventCategories)
	return cat, nil
}

// CategoryByName finds a category by case-insensitive name.
func (t *Tracker) CategoryByName(name string) (models.TaskCategory, error) {
	for _, c := range t.categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return models.TaskCategory{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
}

// DeleteCategory removes the category and clears the reference on every
// task that pointed at it. Tasks themselves are never deleted with their
// category.
func (t *Tracker) DeleteCategory(categoryID string) error {
	ci := -1
	for i := range t.categories {
		if t.categories[i].ID == categoryID {
			ci = i
			break
		}
	}
	if ci < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}

	t.categories = append(t.categories[:ci], t.categories[ci+1:]...)
	t.saveCategories()

	changed := false
	for i := range t.tasks {
		if t.tasks[i].CategoryID != nil && *t.tasks[i].CategoryID == categoryID {
			t.tasks[i].CategoryID = nil
			changed = true
		}
	}
	if changed {
		t.saveTasks()
		t.emit(EventTasks)
	}

	t.emit(EventCategories)
	return nil
}
