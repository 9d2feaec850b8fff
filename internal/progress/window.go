package progress

import (
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

// WindowRate computes the habit's completion-rate percentage over the
// trailing window of n days ending today. The window is truncated at the
// habit's creation day, so a habit created three days ago is scored out of
// three possible days, not n. The result is round-half-up and always within
// [0, 100]; it is 0 when the window contains no possible days.
func WindowRate(s *Store, habit models.Habit, today string, n int) int {
	if n <= 0 || !utils.ValidDay(today) {
		return 0
	}

	start := utils.AddDays(today, -(n - 1))
	if habit.CreatedDay != "" {
		start = utils.MaxDay(start, habit.CreatedDay)
	}
	if start > today {
		return 0
	}

	total := utils.DaysBetween(start, today) + 1
	if total <= 0 {
		return 0
	}

	target := habit.Target()
	completed := 0
	for day := start; day <= today; day = utils.AddDays(day, 1) {
		if s.Get(habit.ID, day) >= target {
			completed++
		}
	}

	// Round half up in integer arithmetic.
	return (200*completed + total) / (2 * total)
}

// TotalCompletions counts every goal-met day over the habit's full history.
// This backs the "total completions" KPI, which is a windowless count rather
// than a percentage.
func TotalCompletions(s *Store, habit models.Habit) int {
	target := habit.Target()
	total := 0
	for r := range s.All() {
		if r.HabitID == habit.ID && r.CompletedCount >= target {
			total++
		}
	}
	return total
}
