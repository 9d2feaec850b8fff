package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/progress"
)

// Heatmap cells by quantized intensity, dim to bright.
var heatStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
}

// RenderBin draws one heatmap cell.
func RenderBin(b progress.DayBin) string {
	if b.Empty() {
		return heatStyles[0].Render("·")
	}
	return heatStyles[quantize(b.Intensity)].Render("■")
}

// quantize maps an intensity in (0, 1] onto the non-empty style levels.
func quantize(intensity float64) int {
	switch {
	case intensity <= 0.25:
		return 1
	case intensity <= 0.5:
		return 2
	case intensity <= 0.75:
		return 3
	default:
		return 4
	}
}

type HabitLogCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or id. Omit for all active habits."`
	Days  int    `help:"Number of trailing days to show." default:"30"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	habits := ctx.Tracker.Habits(false)
	if c.Habit != "" {
		h, err := ctx.Tracker.Habit(c.Habit)
		if err != nil {
			return err
		}
		habits = habits[:0]
		habits = append(habits, h)
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habit log (last %d days, up to %s):\n\n", c.Days, ctx.Tracker.Today())

	const nameWidth = 20
	for _, h := range habits {
		name := h.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Printf("%-*s ", nameWidth, name)

		var cells []string
		for b := range ctx.Tracker.Heatmap(h, c.Days) {
			cells = append(cells, RenderBin(b))
		}
		fmt.Println(strings.Join(cells, ""))
	}

	fmt.Println()
	fmt.Printf("%s none  %s low  %s high\n",
		heatStyles[0].Render("·"), heatStyles[1].Render("■"), heatStyles[4].Render("■"))
	return nil
}
