package tui

import (
	"fmt"

	"github.com/tallyapp/tally/internal/models"
)

type item struct {
	habit  models.Habit
	count  int
	streak int
}

func (i item) Title() string {
	marker := "○"
	if i.count >= i.habit.Target() {
		marker = "✓"
	}
	title := fmt.Sprintf("%s %s", marker, i.habit.Name)
	if i.habit.Archived() {
		title = "[ARCHIVED] " + i.habit.Name
	}
	return title
}

func (i item) Description() string {
	desc := "not completed today"
	if i.habit.Type == models.HabitQuantitative {
		desc = fmt.Sprintf("%d/%d %s today", i.count, i.habit.Target(), i.habit.Unit)
	} else if i.count >= i.habit.Target() {
		desc = "completed today"
	}
	if i.streak > 0 {
		desc = fmt.Sprintf("%s · 🔥 %d", desc, i.streak)
	}
	return desc
}

func (i item) FilterValue() string { return i.habit.Name }
