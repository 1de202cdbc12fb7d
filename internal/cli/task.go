package cli

import (
	"fmt"

	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/tracker"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a new task."`
	List   TaskListCmd   `cmd:"" help:"List tasks."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task and scrub it from history."`
	Remind TaskRemindCmd `cmd:"" help:"Set or clear a task reminder."`
	Move   TaskMoveCmd   `cmd:"" help:"Move a task to another category."`
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Category string `help:"Category name."`
	Remind   string `help:"Daily reminder time (HH:MM)."`
	Date     string `help:"Bind the task to one date (YYYY-MM-DD) instead of repeating daily."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	params := tracker.AddTaskParams{
		ReminderTime: c.Remind,
		SpecificDate: c.Date,
	}
	if c.Category != "" {
		cat, err := ctx.Tracker.CategoryByName(c.Category)
		if err != nil {
			return err
		}
		params.CategoryID = &cat.ID
	}

	task, err := ctx.Tracker.AddTask(c.Title, params)
	if err != nil {
		return err
	}

	fmt.Printf("Added task: %s\n", task.Title)
	if task.Kind == models.TaskKindSpecific {
		fmt.Printf("Scheduled for %s\n", *task.SpecificDate)
	}
	ctx.PrintAdvisories()
	return nil
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	tasks := ctx.Tracker.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, task := range tasks {
		line := task.Title
		if cat := ctx.CategoryName(task.CategoryID); cat != "" {
			line += pendingStyle.Render(fmt.Sprintf("  (%s)", cat))
		}
		if task.Kind == models.TaskKindSpecific && task.SpecificDate != nil {
			line += pendingStyle.Render(fmt.Sprintf("  on %s", *task.SpecificDate))
		}
		if task.HasReminder {
			line += pendingStyle.Render(fmt.Sprintf("  ⏰ %s", task.ReminderTime))
		}
		fmt.Println(line)
	}
	return nil
}

type TaskDeleteCmd struct {
	Task string `arg:"" help:"Task id or title."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	task, err := ctx.ResolveTask(c.Task)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteTask(task.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task: %s\n", task.Title)
	ctx.PrintAdvisories()
	return nil
}

type TaskRemindCmd struct {
	Task string `arg:"" help:"Task id or title."`
	Time string `help:"Reminder time (HH:MM)."`
	Off  bool   `help:"Clear the reminder."`
}

func (c *TaskRemindCmd) Run(ctx *Context) error {
	task, err := ctx.ResolveTask(c.Task)
	if err != nil {
		return err
	}
	if c.Off {
		if err := ctx.Tracker.UpdateTaskReminder(task.ID, "", false); err != nil {
			return err
		}
		fmt.Printf("Cleared reminder for %q.\n", task.Title)
		return nil
	}
	if c.Time == "" {
		return fmt.Errorf("either --time or --off is required")
	}
	if err := ctx.Tracker.UpdateTaskReminder(task.ID, c.Time, true); err != nil {
		return err
	}
	fmt.Printf("Reminder for %q set to %s.\n", task.Title, c.Time)
	return nil
}

type TaskMoveCmd struct {
	Task     string `arg:"" help:"Task id or title."`
	Category string `arg:"" optional:"" help:"Target category name. Omit to clear."`
}

func (c *TaskMoveCmd) Run(ctx *Context) error {
	task, err := ctx.ResolveTask(c.Task)
	if err != nil {
		return err
	}

	var categoryID *string
	if c.Category != "" {
		cat, err := ctx.Tracker.CategoryByName(c.Category)
		if err != nil {
			return err
		}
		categoryID = &cat.ID
	}

	if err := ctx.Tracker.SetTaskCategory(task.ID, categoryID); err != nil {
		return err
	}
	if categoryID == nil {
		fmt.Printf("Cleared category for %q.\n", task.Title)
	} else {
		fmt.Printf("Moved %q to %s.\n", task.Title, c.Category)
	}
	return nil
}
