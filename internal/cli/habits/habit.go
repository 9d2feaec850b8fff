package habits

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/models"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Mark      HabitMarkCmd      `cmd:"" help:"Record progress for a habit on a day."`
	Today     HabitTodayCmd     `cmd:"" help:"Show today's habit status."`
	Streak    HabitStreakCmd    `cmd:"" help:"Show a habit's current streak."`
	Log       HabitLogCmd       `cmd:"" help:"Show a habit's completion history as a heatmap."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Unarchive a habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit (soft delete)."`
	Restore   HabitRestoreCmd   `cmd:"" help:"Restore a deleted habit."`
	Purge     HabitPurgeCmd     `cmd:"" help:"Permanently delete a habit and its history."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Omit to fill in interactively."`
	Description string `help:"Habit description."`
	Quantative  bool   `name:"quantitative" help:"Count toward a numeric daily target instead of a simple checkoff."`
	Target      int    `help:"Daily target for quantitative habits." default:"1"`
	Unit        string `help:"Unit label for quantitative habits (e.g. pages, km)."`
	Series      string `help:"Goal cadence: daily, weekly, or monthly." enum:"daily,weekly,monthly" default:"daily"`
	Icon        string `help:"Icon identifier."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	if c.Name == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	if _, err := ctx.Tracker.Habit(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	habitType := models.HabitCheckoff
	if c.Quantative {
		habitType = models.HabitQuantitative
	}

	h, err := ctx.Tracker.AddHabit(models.Habit{
		Name:              c.Name,
		Description:       c.Description,
		Type:              habitType,
		TargetCompletions: c.Target,
		Unit:              c.Unit,
		GoalSeries:        seriesDays(c.Series),
		Icon:              c.Icon,
		OrderIndex:        len(ctx.Tracker.Habits(true)),
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added habit: %s\n", h.Name)
	return nil
}

func (c *HabitAddCmd) prompt() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
			huh.NewSelect[string]().
				Title("Goal cadence").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
				).
				Value(&c.Series),
			huh.NewConfirm().
				Title("Quantitative (counted toward a target)?").
				Value(&c.Quantative),
		),
	).Run()
}

func seriesDays(series string) int {
	switch series {
	case "weekly":
		return models.SeriesWeekly
	case "monthly":
		return models.SeriesMonthly
	default:
		return models.SeriesDaily
	}
}

func seriesName(days int) string {
	switch days {
	case models.SeriesWeekly:
		return "weekly"
	case models.SeriesMonthly:
		return "monthly"
	default:
		return "daily"
	}
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	habits := ctx.Tracker.Habits(c.Archived)
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'tally habit add'.")
		return nil
	}

	streaks := ctx.Tracker.Streaks()
	for _, h := range habits {
		status := ""
		if h.Archived() {
			status = " [ARCHIVED]"
		}
		goal := seriesName(h.Series())
		if h.Type == models.HabitQuantitative {
			goal = fmt.Sprintf("%s, target %d %s", goal, h.Target(), h.Unit)
		}
		fmt.Printf("%-24s %s streak %d (%s)%s\n", h.Name, streakFlame(streaks[h.ID]), streaks[h.ID], goal, status)
	}
	return nil
}

func streakFlame(streak int) string {
	if streak > 0 {
		return "🔥"
	}
	return "  "
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	habits := ctx.Tracker.Habits(false)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", ctx.Tracker.Today())
	met := 0
	for _, h := range habits {
		count := ctx.Tracker.Completion(h.ID, ctx.Tracker.Today())
		status := "[ ]"
		if count >= h.Target() {
			status = "[x]"
			met++
		}
		if h.Type == models.HabitQuantitative {
			fmt.Printf("%s %s (%d/%d %s)\n", status, h.Name, count, h.Target(), h.Unit)
		} else {
			fmt.Printf("%s %s\n", status, h.Name)
		}
	}
	fmt.Printf("\nCompleted: %d/%d\n", met, len(habits))
	return nil
}

type HabitStreakCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}

	streak := ctx.Tracker.Streak(h)
	unit := "day"
	switch h.Series() {
	case models.SeriesWeekly:
		unit = "week"
	case models.SeriesMonthly:
		unit = "month"
	}
	if streak != 1 {
		unit += "s"
	}
	fmt.Printf("%s: %d %s\n", h.Name, streak, unit)
	return nil
}
