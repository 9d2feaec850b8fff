package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

const (
	MaxNameLen        = 100
	MaxDescriptionLen = 500
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidateHabit checks a habit's user-editable fields before it is persisted.
func ValidateHabit(h models.Habit) error {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		return fmt.Errorf("%w: habit name cannot be empty", errors.ErrInvalidArgument)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: habit name is too long (max %d chars)", errors.ErrInvalidArgument, MaxNameLen)
	}
	if len(strings.TrimSpace(h.Description)) > MaxDescriptionLen {
		return fmt.Errorf("%w: habit description is too long (max %d chars)", errors.ErrInvalidArgument, MaxDescriptionLen)
	}

	switch h.Type {
	case models.HabitCheckoff, models.HabitQuantitative:
	default:
		return fmt.Errorf("%w: invalid habit type %q", errors.ErrInvalidArgument, h.Type)
	}

	if h.Type == models.HabitQuantitative && h.TargetCompletions < 1 {
		return fmt.Errorf("%w: target completions must be at least 1", errors.ErrInvalidArgument)
	}
	if h.Type == models.HabitCheckoff && h.Unit != "" {
		return fmt.Errorf("%w: unit is only meaningful for quantitative habits", errors.ErrInvalidArgument)
	}

	switch h.GoalSeries {
	case models.SeriesDaily, models.SeriesWeekly, models.SeriesMonthly:
	default:
		return fmt.Errorf("%w: goal series must be %d, %d, or %d",
			errors.ErrInvalidArgument, models.SeriesDaily, models.SeriesWeekly, models.SeriesMonthly)
	}

	if h.CreatedDay != "" && !utils.ValidDay(h.CreatedDay) {
		return fmt.Errorf("%w: malformed creation day %q", errors.ErrInvalidArgument, h.CreatedDay)
	}

	return nil
}

// ValidateCategory checks a category's user-editable fields.
func ValidateCategory(c models.Category) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: category name cannot be empty", errors.ErrInvalidArgument)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: category name is too long (max %d chars)", errors.ErrInvalidArgument, MaxNameLen)
	}
	if c.Color != "" && !colorRegex.MatchString(c.Color) {
		return fmt.Errorf("%w: invalid color %q (must be #RRGGBB)", errors.ErrInvalidArgument, c.Color)
	}
	return nil
}

// ValidateNote checks a journal note before it is persisted.
func ValidateNote(n models.Note) error {
	if strings.TrimSpace(n.HabitID) == "" {
		return fmt.Errorf("%w: note requires a habit", errors.ErrInvalidArgument)
	}
	if !utils.ValidDay(n.Day) {
		return fmt.Errorf("%w: malformed note day %q", errors.ErrInvalidArgument, n.Day)
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("%w: note content cannot be empty", errors.ErrInvalidArgument)
	}
	return nil
}

// ValidateCompletionDay checks that a day is usable for marking progress on
// the habit: well-formed, not before the habit existed, and not in the
// future, either of which would corrupt streak and window math.
func ValidateCompletionDay(h models.Habit, day, today string) error {
	if !utils.ValidDay(day) {
		return fmt.Errorf("%w: malformed day %q (expected YYYY-MM-DD)", errors.ErrInvalidArgument, day)
	}
	if h.CreatedDay != "" && day < h.CreatedDay {
		return fmt.Errorf("%w: %s is before habit %q was created (%s)", errors.ErrInvalidDate, day, h.Name, h.CreatedDay)
	}
	if today != "" && day > today {
		return fmt.Errorf("%w: %s is in the future", errors.ErrInvalidDate, day)
	}
	return nil
}
