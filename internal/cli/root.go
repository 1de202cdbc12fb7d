package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chorekeep/chorekeep/internal/constants"
	"github.com/chorekeep/chorekeep/internal/focus"
	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/storage"
	"github.com/chorekeep/chorekeep/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Timer   *focus.Timer
}

// PrintAdvisories surfaces degraded-load and failed-save messages without
// interrupting the command's own output.
func (c *Context) PrintAdvisories() {
	for _, msg := range c.Tracker.Advisories() {
		fmt.Fprintf(os.Stderr, "%s\n", warnStyle.Render("warning: "+msg))
	}
}

// ResolveTask accepts a task id or a case-insensitive title.
func (c *Context) ResolveTask(ref string) (models.Task, error) {
	if task, err := c.Tracker.TaskByID(ref); err == nil {
		return task, nil
	}
	for _, task := range c.Tracker.Tasks() {
		if strings.EqualFold(task.Title, strings.TrimSpace(ref)) {
			return task, nil
		}
	}
	return models.Task{}, fmt.Errorf("no task matches %q", ref)
}

// ResolveHabit accepts a habit id or a case-insensitive name.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	if habit, err := c.Tracker.HabitByID(ref); err == nil {
		return habit, nil
	}
	if habit, err := c.Tracker.HabitByName(ref); err == nil {
		return habit, nil
	}
	return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
}

// ResolveDay validates an explicit YYYY-MM-DD argument, defaulting to
// today in the tracker's timezone.
func (c *Context) ResolveDay(date string) (string, error) {
	if date == "" {
		return c.Tracker.TodayKey(), nil
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// CategoryName renders a task's category reference for display.
func (c *Context) CategoryName(categoryID *string) string {
	if categoryID == nil {
		return ""
	}
	for _, cat := range c.Tracker.Categories() {
		if cat.ID == *categoryID {
			return cat.Name
		}
	}
	return ""
}
