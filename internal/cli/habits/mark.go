package habits

import (
	"fmt"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/models"
)

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Count int    `help:"Completion count for quantitative habits." default:"-1"`
	Date  string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
	Undo  bool   `help:"Clear the day's progress instead of recording it."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Tracker.Today()
	}

	if c.Undo {
		if err := ctx.Tracker.MarkCompletion(h.ID, day, 0); err != nil {
			return err
		}
		fmt.Printf("Cleared %q for %s\n", h.Name, day)
		return nil
	}

	count := c.Count
	if count < 0 {
		// No explicit count: checkoff habits complete, quantitative habits
		// increment by one.
		if h.Type == models.HabitQuantitative {
			count = ctx.Tracker.Completion(h.ID, day) + 1
		} else {
			count = 1
		}
	}

	if err := ctx.Tracker.MarkCompletion(h.ID, day, count); err != nil {
		return err
	}

	if h.Type == models.HabitQuantitative {
		fmt.Printf("Marked %q for %s: %d/%d %s\n", h.Name, day, count, h.Target(), h.Unit)
	} else {
		fmt.Printf("Marked %q for %s\n", h.Name, day)
	}
	return nil
}
