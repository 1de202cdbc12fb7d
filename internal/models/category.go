package models

import "github.com/google/uuid"

// TaskCategory groups tasks under a name with display tokens. Names are
// unique case-insensitively across the collection.
type TaskCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color"` // color token, e.g. "green"
	Icon  string `json:"icon"`  // icon token, e.g. "house"
}

// NewTaskCategory creates a category with a fresh identity.
func NewTaskCategory(name, color, icon string) TaskCategory {
	return TaskCategory{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
		Icon:  icon,
	}
}

// DefaultCategories is the seed catalog used when no categories document
// exists or the stored one cannot be decoded.
func DefaultCategories() []TaskCategory {
	return []TaskCategory{
		NewTaskCategory("Home", "green", "house"),
		NewTaskCategory("Work", "blue", "briefcase"),
		NewTaskCategory("Personal", "purple", "person"),
		NewTaskCategory("Health", "red", "heart"),
		NewTaskCategory("Exercise", "orange", "run"),
		NewTaskCategory("Study", "indigo", "book"),
		NewTaskCategory("Shopping", "pink", "cart"),
		NewTaskCategory("General", "teal", "star"),
	}
}

// DefaultTaskTitles seed the task collection on first launch.
func DefaultTaskTitles() []string {
	return []string{
		"Make the bed",
		"Sweep the house",
		"Wash the dishes",
		"Hang the laundry",
		"Do the laundry",
	}
}
