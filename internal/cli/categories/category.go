package categories

import (
	"fmt"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/models"
)

type CategoryCmd struct {
	Add      CategoryAddCmd      `cmd:"" help:"Add a new category."`
	List     CategoryListCmd     `cmd:"" help:"List categories."`
	Delete   CategoryDeleteCmd   `cmd:"" help:"Delete a category."`
	Assign   CategoryAssignCmd   `cmd:"" help:"Assign a habit to a category."`
	Unassign CategoryUnassignCmd `cmd:"" help:"Remove a habit from a category."`
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Icon  string `help:"Icon identifier."`
	Color string `help:"Hex color, e.g. #22c55e."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	existing, err := ctx.Tracker.Categories()
	if err != nil {
		return err
	}
	for _, cat := range existing {
		if cat.Name == c.Name {
			return fmt.Errorf("category %q already exists", c.Name)
		}
	}

	cat, err := ctx.Tracker.AddCategory(models.Category{
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		OrderIndex: len(existing),
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added category: %s\n", cat.Name)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	categories, err := ctx.Tracker.Categories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	// Count members per category from the loaded habits.
	members := make(map[string]int)
	for _, h := range ctx.Tracker.Habits(true) {
		for _, cat := range h.Categories {
			members[cat.ID]++
		}
	}

	for _, cat := range categories {
		fmt.Printf("%-24s %d habit(s)\n", cat.Name, members[cat.ID])
	}
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	cat, err := findCategory(ctx, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteCategory(cat.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted category %q. Habits in it are untouched.\n", cat.Name)
	return nil
}

type CategoryAssignCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Category string `arg:"" help:"Category name."`
}

func (c *CategoryAssignCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	cat, err := findCategory(ctx, c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.AssignCategory(h.ID, cat.ID); err != nil {
		return err
	}
	fmt.Printf("Assigned %q to %q\n", h.Name, cat.Name)
	return nil
}

type CategoryUnassignCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Category string `arg:"" help:"Category name."`
}

func (c *CategoryUnassignCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	cat, err := findCategory(ctx, c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.UnassignCategory(h.ID, cat.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %q from %q\n", h.Name, cat.Name)
	return nil
}

func findCategory(ctx *cli.Context, ref string) (models.Category, error) {
	categories, err := ctx.Tracker.Categories()
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range categories {
		if cat.ID == ref || cat.Name == ref {
			return cat, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q not found", ref)
}
