package stats

import (
	"fmt"
	"strings"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/cli/habits"
	"github.com/tallyapp/tally/internal/constants"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

type StatsCmd struct {
	Summary SummaryCmd `cmd:"" help:"Show completion rates, streaks, and totals." default:"1"`
	Heatmap HeatmapCmd `cmd:"" help:"Show an aggregate completion heatmap."`
}

type SummaryCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or id. Omit for all active habits."`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	selected := ctx.Tracker.Habits(false)
	if c.Habit != "" {
		h, err := ctx.Tracker.Habit(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{h}
	}
	if len(selected) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("%-24s %7s", "Habit", "Streak")
	for _, w := range constants.SummaryWindows {
		fmt.Printf(" %6s", fmt.Sprintf("%dd", w))
	}
	fmt.Printf(" %7s\n", "Total")
	fmt.Println(strings.Repeat("-", 24+8+7*len(constants.SummaryWindows)+8))

	for _, h := range selected {
		s := ctx.Tracker.Summarize(h)
		name := h.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Printf("%-24s %7d", name, s.Streak)
		for _, w := range constants.SummaryWindows {
			fmt.Printf(" %5d%%", s.Rates[w])
		}
		fmt.Printf(" %7d\n", s.TotalCompletions)
	}
	return nil
}

type HeatmapCmd struct {
	Days int `help:"Number of trailing days to show." default:"0"`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		settings, err := ctx.Settings()
		if err == nil && settings.HeatmapDays > 0 {
			days = settings.HeatmapDays
		} else {
			days = constants.DefaultHeatmapDays
		}
	}

	active := len(ctx.Tracker.Habits(false))
	if active == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("All habits, last %d days (cell = habits completed that day, of %d):\n\n", days, active)

	// Lay the bins out in calendar columns, one week per column, Monday
	// on the top row.
	start := utils.AddDays(ctx.Tracker.Today(), -(days - 1))
	offset := weekdayIndex(start)

	grid := make([][]string, 7)
	for i := range grid {
		grid[i] = make([]string, 0, days/7+2)
		// Pad rows above the start weekday in the first column.
		if i < offset {
			grid[i] = append(grid[i], " ")
		}
	}

	row := offset
	for b := range ctx.Tracker.AggregateHeatmap(days) {
		grid[row] = append(grid[row], habits.RenderBin(b))
		row = (row + 1) % 7
	}

	labels := []string{"Mon", "   ", "Wed", "   ", "Fri", "   ", "Sun"}
	for i, cells := range grid {
		fmt.Printf("%s %s\n", labels[i], strings.Join(cells, ""))
	}
	return nil
}

// weekdayIndex maps a day string to its row, Monday = 0.
func weekdayIndex(day string) int {
	t, err := utils.ParseDay(day)
	if err != nil {
		return 0
	}
	return (int(t.Weekday()) + 6) % 7
}
