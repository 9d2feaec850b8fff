package progress

import (
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

// Streak computes the length of the habit's current unbroken run of goal-met
// periods ending at (or immediately before) today.
//
// For daily habits the walk moves backward one day at a time; a day counts
// when its completed count reaches the habit's target. Today never breaks the
// streak: if today's goal is not yet met the walk skips it and starts from
// yesterday, so opening the app before logging does not zero the display.
//
// For weekly and monthly habits (goal series 7 and 30) the walk unit is a
// trailing bucket of that many days ending at the cursor; a bucket counts
// when the goal was met on at least one day inside it. The current bucket
// gets the same skip treatment as today.
//
// Days before the habit's creation day never count, and the walk stops there,
// so the result is bounded by the habit's age. An unknown habit id simply
// yields 0.
func Streak(s *Store, habit models.Habit, today string) int {
	if !utils.ValidDay(today) || habit.CreatedDay > today {
		return 0
	}

	series := habit.Series()
	if series == models.SeriesDaily {
		return dailyStreak(s, habit, today)
	}
	return bucketStreak(s, habit, today, series)
}

func dailyStreak(s *Store, habit models.Habit, today string) int {
	target := habit.Target()
	streak := 0

	cursor := today
	if s.Get(habit.ID, cursor) >= target {
		streak++
	}
	// Today unmet is skipped, not a break.
	cursor = utils.AddDays(cursor, -1)

	for cursor >= habit.CreatedDay {
		if s.Get(habit.ID, cursor) < target {
			break
		}
		streak++
		cursor = utils.AddDays(cursor, -1)
	}

	return streak
}

// bucketStreak walks backward bucket by bucket. Bucket k covers the series
// days ending at today-k*series; a bucket is met when any day inside it (on
// or after the creation day) reached the target.
func bucketStreak(s *Store, habit models.Habit, today string, series int) int {
	streak := 0

	end := today
	if bucketMet(s, habit, end, series) {
		streak++
	}
	// The current bucket behaves like "today" in the daily walk: unmet is
	// skipped, not a break.
	end = utils.AddDays(end, -series)

	for end >= habit.CreatedDay {
		if !bucketMet(s, habit, end, series) {
			break
		}
		streak++
		end = utils.AddDays(end, -series)
	}

	return streak
}

func bucketMet(s *Store, habit models.Habit, end string, series int) bool {
	target := habit.Target()
	day := end
	for i := 0; i < series && day >= habit.CreatedDay; i++ {
		if s.Get(habit.ID, day) >= target {
			return true
		}
		day = utils.AddDays(day, -1)
	}
	return false
}

// Streaks recomputes the streak for every habit in one pass. The result is a
// plain map the caller may cache; it is never maintained incrementally, so it
// must be rebuilt after any completion changes.
func Streaks(s *Store, habits []models.Habit, today string) map[string]int {
	out := make(map[string]int, len(habits))
	for _, h := range habits {
		out[h.ID] = Streak(s, h, today)
	}
	return out
}
