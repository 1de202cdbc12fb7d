package cli

import (
	"fmt"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a new category."`
	List   CategoryListCmd   `cmd:"" help:"List categories."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category, keeping its tasks."`
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Color string `help:"Display color." default:"blue"`
	Icon  string `help:"Display icon." default:"folder"`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	cat, err := ctx.Tracker.AddCategory(c.Name, c.Color, c.Icon)
	if err != nil {
		return err
	}
	fmt.Printf("Added category: %s\n", cat.Name)
	ctx.PrintAdvisories()
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	categories := ctx.Tracker.Categories()
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	counts := make(map[string]int)
	for _, task := range ctx.Tracker.Tasks() {
		if task.CategoryID != nil {
			counts[*task.CategoryID]++
		}
	}

	for _, cat := range categories {
		fmt.Printf("%s%s\n", cat.Name, pendingStyle.Render(fmt.Sprintf("  (%d tasks)", counts[cat.ID])))
	}
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	cat, err := ctx.Tracker.CategoryByName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteCategory(cat.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted category: %s (its tasks were kept)\n", cat.Name)
	ctx.PrintAdvisories()
	return nil
}
