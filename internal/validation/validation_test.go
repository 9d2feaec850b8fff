package validation

import (
	"strings"
	"testing"

	"github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
)

func validHabit() models.Habit {
	return models.Habit{
		ID:                "id",
		Name:              "Read",
		Type:              models.HabitCheckoff,
		TargetCompletions: 1,
		GoalSeries:        models.SeriesDaily,
		CreatedDay:        "2024-01-01",
	}
}

func TestValidateHabit(t *testing.T) {
	t.Run("valid checkoff", func(t *testing.T) {
		if err := ValidateHabit(validHabit()); err != nil {
			t.Errorf("ValidateHabit returned %v, want nil", err)
		}
	})

	t.Run("valid quantitative", func(t *testing.T) {
		h := validHabit()
		h.Type = models.HabitQuantitative
		h.TargetCompletions = 8
		h.Unit = "glasses"
		h.GoalSeries = models.SeriesWeekly
		if err := ValidateHabit(h); err != nil {
			t.Errorf("ValidateHabit returned %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*models.Habit)
	}{
		{"empty name", func(h *models.Habit) { h.Name = "  " }},
		{"name too long", func(h *models.Habit) { h.Name = strings.Repeat("x", MaxNameLen+1) }},
		{"description too long", func(h *models.Habit) { h.Description = strings.Repeat("x", MaxDescriptionLen+1) }},
		{"bad type", func(h *models.Habit) { h.Type = "timer" }},
		{"quantitative zero target", func(h *models.Habit) {
			h.Type = models.HabitQuantitative
			h.TargetCompletions = 0
		}},
		{"unit on checkoff", func(h *models.Habit) { h.Unit = "pages" }},
		{"bad goal series", func(h *models.Habit) { h.GoalSeries = 14 }},
		{"malformed creation day", func(h *models.Habit) { h.CreatedDay = "01-01-2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHabit()
			tt.mutate(&h)
			err := ValidateHabit(h)
			if !errors.Is(err, errors.ErrInvalidArgument) {
				t.Errorf("ValidateHabit returned %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := models.Category{ID: "c", Name: "Health", Color: "#22AA44"}
		if err := ValidateCategory(c); err != nil {
			t.Errorf("ValidateCategory returned %v, want nil", err)
		}
	})

	t.Run("short color form", func(t *testing.T) {
		c := models.Category{ID: "c", Name: "Health", Color: "#2a4"}
		if err := ValidateCategory(c); err != nil {
			t.Errorf("ValidateCategory returned %v, want nil", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateCategory(models.Category{Color: "#FFFFFF"})
		if !errors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("ValidateCategory returned %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("bad color", func(t *testing.T) {
		err := ValidateCategory(models.Category{Name: "Health", Color: "green"})
		if !errors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("ValidateCategory returned %v, want ErrInvalidArgument", err)
		}
	})
}

func TestValidateNote(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		n := models.Note{HabitID: "h", Day: "2024-03-01", Content: "felt great"}
		if err := ValidateNote(n); err != nil {
			t.Errorf("ValidateNote returned %v, want nil", err)
		}
	})

	t.Run("missing habit", func(t *testing.T) {
		n := models.Note{Day: "2024-03-01", Content: "x"}
		if !errors.Is(ValidateNote(n), errors.ErrInvalidArgument) {
			t.Error("ValidateNote should reject a note without a habit")
		}
	})

	t.Run("empty content", func(t *testing.T) {
		n := models.Note{HabitID: "h", Day: "2024-03-01", Content: "   "}
		if !errors.Is(ValidateNote(n), errors.ErrInvalidArgument) {
			t.Error("ValidateNote should reject empty content")
		}
	})
}

func TestValidateCompletionDay(t *testing.T) {
	habit := validHabit()
	today := "2024-03-10"

	t.Run("valid day", func(t *testing.T) {
		if err := ValidateCompletionDay(habit, "2024-03-05", today); err != nil {
			t.Errorf("ValidateCompletionDay returned %v, want nil", err)
		}
	})

	t.Run("today is valid", func(t *testing.T) {
		if err := ValidateCompletionDay(habit, today, today); err != nil {
			t.Errorf("ValidateCompletionDay returned %v, want nil", err)
		}
	})

	t.Run("creation day is valid", func(t *testing.T) {
		if err := ValidateCompletionDay(habit, habit.CreatedDay, today); err != nil {
			t.Errorf("ValidateCompletionDay returned %v, want nil", err)
		}
	})

	t.Run("malformed day", func(t *testing.T) {
		err := ValidateCompletionDay(habit, "2024/03/05", today)
		if !errors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("before creation", func(t *testing.T) {
		err := ValidateCompletionDay(habit, "2023-12-31", today)
		if !errors.Is(err, errors.ErrInvalidDate) {
			t.Errorf("got %v, want ErrInvalidDate", err)
		}
	})

	t.Run("future day", func(t *testing.T) {
		err := ValidateCompletionDay(habit, "2024-03-11", today)
		if !errors.Is(err, errors.ErrInvalidDate) {
			t.Errorf("got %v, want ErrInvalidDate", err)
		}
	})
}
