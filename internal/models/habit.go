package models

import (
	"time"

	"github.com/tallyapp/tally/internal/constants"
)

// HabitType distinguishes binary checkoff habits from counted ones.
type HabitType string

const (
	// HabitCheckoff habits are done or not done; their target is always 1.
	HabitCheckoff HabitType = "checkoff"
	// HabitQuantitative habits accumulate a count toward a daily target.
	HabitQuantitative HabitType = "quantitative"
)

// Goal series values: the cadence at which a habit's goal is evaluated.
const (
	SeriesDaily   = 1
	SeriesWeekly  = 7
	SeriesMonthly = 30
)

// Habit represents a recurring practice to track.
type Habit struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Type              HabitType  `json:"type"`
	TargetCompletions int        `json:"target_completions"`
	Unit              string     `json:"unit,omitempty"` // meaningful only for quantitative habits
	GoalSeries        int        `json:"goal_series"`
	Icon              string     `json:"icon,omitempty"`
	OrderIndex        int        `json:"order_index"`
	CreatedDay        string     `json:"created_day"` // YYYY-MM-DD; the earliest day a completion can count
	CreatedAt         time.Time  `json:"created_at"`
	ArchivedAt        *time.Time `json:"archived_at,omitempty"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	Categories        []Category `json:"categories,omitempty"`
}

// Target returns the effective daily goal, never less than 1.
func (h Habit) Target() int {
	if h.Type == HabitCheckoff || h.TargetCompletions < 1 {
		return 1
	}
	return h.TargetCompletions
}

// Series returns the goal cadence in days, never less than 1.
func (h Habit) Series() int {
	if h.GoalSeries < 1 {
		return SeriesDaily
	}
	return h.GoalSeries
}

// Archived reports whether the habit is archived (and not deleted).
func (h Habit) Archived() bool {
	return h.ArchivedAt != nil && h.DeletedAt == nil
}

// IconOrDefault returns the habit's icon identifier, falling back to the
// application default when unset. The presentation layer resolves the
// identifier; unknown values get the same fallback there.
func (h Habit) IconOrDefault() string {
	if h.Icon == "" {
		return constants.DefaultIcon
	}
	return h.Icon
}
