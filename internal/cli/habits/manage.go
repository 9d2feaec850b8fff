package habits

import (
	"fmt"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/models"
)

type HabitEditCmd struct {
	Habit       string `arg:"" help:"Habit name or id."`
	Name        string `help:"New name."`
	Description string `help:"New description."`
	Target      int    `help:"New daily target (quantitative habits)." default:"0"`
	Unit        string `help:"New unit label."`
	Series      string `help:"New goal cadence: daily, weekly, or monthly." enum:",daily,weekly,monthly" default:""`
	Icon        string `help:"New icon identifier."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}

	if c.Name != "" {
		h.Name = c.Name
	}
	if c.Description != "" {
		h.Description = c.Description
	}
	if c.Target > 0 {
		h.Type = models.HabitQuantitative
		h.TargetCompletions = c.Target
	}
	if c.Unit != "" {
		h.Unit = c.Unit
	}
	if c.Series != "" {
		h.GoalSeries = seriesDays(c.Series)
	}
	if c.Icon != "" {
		h.Icon = c.Icon
	}

	if err := ctx.Tracker.UpdateHabit(h); err != nil {
		return err
	}
	fmt.Printf("✓ Updated habit: %s\n", h.Name)
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.ArchiveHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Archived habit %q. Its history is kept; unarchive it any time.\n", h.Name)
	return nil
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.UnarchiveHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Unarchived habit %q\n", h.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit %q. Restore it with 'tally habit restore %s'.\n", h.Name, h.Name)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	// Deleted habits are not in the loaded snapshot; look them up directly.
	habits, err := ctx.Cache.GetAllHabits(true, true)
	if err != nil {
		return err
	}
	for _, h := range habits {
		if (h.ID == c.Habit || h.Name == c.Habit) && h.DeletedAt != nil {
			if err := ctx.Tracker.RestoreHabit(h.ID); err != nil {
				return err
			}
			fmt.Printf("Restored habit %q\n", h.Name)
			return nil
		}
	}
	return fmt.Errorf("no deleted habit matching %q", c.Habit)
}

type HabitPurgeCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitPurgeCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("This permanently deletes %q and all of its history. Re-run with --yes to confirm.\n", h.Name)
		return nil
	}

	if err := ctx.Tracker.PurgeHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Purged habit %q and its completion history\n", h.Name)
	return nil
}
