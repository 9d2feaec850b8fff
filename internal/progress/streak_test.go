package progress

import (
	"testing"

	"github.com/tallyapp/tally/internal/models"
)

func dailyHabit(id, createdDay string, target int) models.Habit {
	return models.Habit{
		ID:                id,
		Name:              id,
		Type:              models.HabitQuantitative,
		TargetCompletions: target,
		GoalSeries:        models.SeriesDaily,
		CreatedDay:        createdDay,
	}
}

func mustUpsert(t *testing.T, s *Store, habitID, day string, count int) {
	t.Helper()
	if err := s.Upsert(habitID, day, count); err != nil {
		t.Fatalf("Upsert(%s, %s, %d) failed: %v", habitID, day, count, err)
	}
}

func TestDailyStreak(t *testing.T) {
	habit := dailyHabit("h", "2024-01-01", 1)

	t.Run("empty store", func(t *testing.T) {
		if got := Streak(NewStore(), habit, "2024-01-11"); got != 0 {
			t.Errorf("Streak = %d, want 0", got)
		}
	})

	t.Run("run broken before yesterday yields zero", func(t *testing.T) {
		// Completions 01-05..01-09, nothing on 01-10 or 01-11. As of
		// 01-11 the unattempted today is skipped, but yesterday (01-10)
		// has no record, so the walk breaks immediately.
		s := NewStore()
		for _, day := range []string{"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09"} {
			mustUpsert(t, s, "h", day, 1)
		}
		if got := Streak(s, habit, "2024-01-11"); got != 0 {
			t.Errorf("Streak = %d, want 0", got)
		}
	})

	t.Run("today unattempted continues from yesterday", func(t *testing.T) {
		s := NewStore()
		for _, day := range []string{"2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"} {
			mustUpsert(t, s, "h", day, 1)
		}
		if got := Streak(s, habit, "2024-01-11"); got != 4 {
			t.Errorf("Streak with today unattempted = %d, want 4", got)
		}
	})

	t.Run("today completed extends the run", func(t *testing.T) {
		s := NewStore()
		for _, day := range []string{"2024-01-09", "2024-01-10", "2024-01-11"} {
			mustUpsert(t, s, "h", day, 1)
		}
		if got := Streak(s, habit, "2024-01-11"); got != 3 {
			t.Errorf("Streak = %d, want 3", got)
		}
	})

	t.Run("today alone counts as one", func(t *testing.T) {
		s := NewStore()
		mustUpsert(t, s, "h", "2024-01-11", 1)
		if got := Streak(s, habit, "2024-01-11"); got != 1 {
			t.Errorf("Streak = %d, want 1", got)
		}
	})

	t.Run("gap before run limits the count", func(t *testing.T) {
		s := NewStore()
		mustUpsert(t, s, "h", "2024-01-05", 1)
		// gap on 01-06
		for _, day := range []string{"2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11"} {
			mustUpsert(t, s, "h", day, 1)
		}
		if got := Streak(s, habit, "2024-01-11"); got != 5 {
			t.Errorf("Streak = %d, want 5", got)
		}
	})

	t.Run("target below count does not count", func(t *testing.T) {
		quota := dailyHabit("h", "2024-01-01", 3)
		s := NewStore()
		mustUpsert(t, s, "h", "2024-01-10", 3)
		mustUpsert(t, s, "h", "2024-01-11", 2)
		// Today's 2/3 is not met, so it is skipped; yesterday's 3/3 counts.
		if got := Streak(s, quota, "2024-01-11"); got != 1 {
			t.Errorf("Streak = %d, want 1", got)
		}
	})

	t.Run("walk stops at creation day", func(t *testing.T) {
		young := dailyHabit("h", "2024-01-10", 1)
		s := NewStore()
		// Records before the creation day must not count.
		for _, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11"} {
			mustUpsert(t, s, "h", day, 1)
		}
		if got := Streak(s, young, "2024-01-11"); got != 2 {
			t.Errorf("Streak = %d, want 2 (bounded by creation day)", got)
		}
	})

	t.Run("habit created in the future", func(t *testing.T) {
		future := dailyHabit("h", "2024-02-01", 1)
		if got := Streak(NewStore(), future, "2024-01-11"); got != 0 {
			t.Errorf("Streak = %d, want 0", got)
		}
	})

	t.Run("explicit zero record breaks like absence", func(t *testing.T) {
		s := NewStore()
		mustUpsert(t, s, "h", "2024-01-09", 1)
		mustUpsert(t, s, "h", "2024-01-10", 0)
		mustUpsert(t, s, "h", "2024-01-11", 1)
		if got := Streak(s, habit, "2024-01-11"); got != 1 {
			t.Errorf("Streak = %d, want 1", got)
		}
	})
}

func TestWeeklyStreak(t *testing.T) {
	habit := models.Habit{
		ID:                "w",
		Type:              models.HabitCheckoff,
		TargetCompletions: 1,
		GoalSeries:        models.SeriesWeekly,
		CreatedDay:        "2024-01-01",
	}

	t.Run("one completion per bucket sustains the streak", func(t *testing.T) {
		s := NewStore()
		// Buckets ending 2024-02-01: [01-26..02-01], [01-19..01-25], [01-12..01-18].
		mustUpsert(t, s, "w", "2024-01-28", 1)
		mustUpsert(t, s, "w", "2024-01-20", 1)
		mustUpsert(t, s, "w", "2024-01-15", 1)
		if got := Streak(s, habit, "2024-02-01"); got != 3 {
			t.Errorf("weekly Streak = %d, want 3", got)
		}
	})

	t.Run("current bucket unmet is skipped", func(t *testing.T) {
		s := NewStore()
		mustUpsert(t, s, "w", "2024-01-20", 1)
		mustUpsert(t, s, "w", "2024-01-15", 1)
		// Nothing in [01-26..02-01]; the streak continues from the prior bucket.
		if got := Streak(s, habit, "2024-02-01"); got != 2 {
			t.Errorf("weekly Streak with current bucket unmet = %d, want 2", got)
		}
	})

	t.Run("missed middle bucket breaks", func(t *testing.T) {
		s := NewStore()
		mustUpsert(t, s, "w", "2024-01-28", 1)
		// nothing in [01-19..01-25]
		mustUpsert(t, s, "w", "2024-01-15", 1)
		if got := Streak(s, habit, "2024-02-01"); got != 1 {
			t.Errorf("weekly Streak = %d, want 1", got)
		}
	})

	t.Run("bucket walk stops at creation day", func(t *testing.T) {
		young := habit
		young.CreatedDay = "2024-01-26"
		s := NewStore()
		mustUpsert(t, s, "w", "2024-01-28", 1)
		mustUpsert(t, s, "w", "2024-01-20", 1) // before creation, must not count
		if got := Streak(s, young, "2024-02-01"); got != 1 {
			t.Errorf("weekly Streak = %d, want 1 (bounded by creation day)", got)
		}
	})
}

func TestMonthlyStreak(t *testing.T) {
	habit := models.Habit{
		ID:                "m",
		Type:              models.HabitCheckoff,
		TargetCompletions: 1,
		GoalSeries:        models.SeriesMonthly,
		CreatedDay:        "2024-01-01",
	}

	s := NewStore()
	// Buckets ending 2024-06-30: [06-01..06-30], [05-02..05-31], [04-02..05-01].
	mustUpsert(t, s, "m", "2024-06-15", 1)
	mustUpsert(t, s, "m", "2024-05-10", 1)
	if got := Streak(s, habit, "2024-06-30"); got != 2 {
		t.Errorf("monthly Streak = %d, want 2", got)
	}
}

func TestStreaks(t *testing.T) {
	a := dailyHabit("a", "2024-01-01", 1)
	b := dailyHabit("b", "2024-01-01", 1)

	s := NewStore()
	mustUpsert(t, s, "a", "2024-01-10", 1)
	mustUpsert(t, s, "a", "2024-01-11", 1)

	got := Streaks(s, []models.Habit{a, b}, "2024-01-11")
	if got["a"] != 2 {
		t.Errorf("Streaks[a] = %d, want 2", got["a"])
	}
	if got["b"] != 0 {
		t.Errorf("Streaks[b] = %d, want 0", got["b"])
	}
}
