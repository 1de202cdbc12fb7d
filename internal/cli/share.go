package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/chorekeep/chorekeep/internal/share"
)

type ExportCmd struct {
	Path string `arg:"" help:"Destination file for the shared task list."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	tasks := ctx.Tracker.ExportTasks()
	if err := share.Export(f, tasks, ctx.Tracker.User().Name, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Exported %d tasks to %s\n", len(tasks), c.Path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" help:"Share document to import."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	tasks, err := share.Import(f)
	if err != nil {
		return err
	}

	added := ctx.Tracker.ImportTasks(tasks)
	skipped := len(tasks) - added
	fmt.Printf("Imported %d tasks", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates or invalid entries skipped)", skipped)
	}
	fmt.Println()
	ctx.PrintAdvisories()
	return nil
}
