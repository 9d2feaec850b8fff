package models

import "time"

// CompletionRecord is the unique per-day progress entry for a habit. Its
// identity is the (HabitID, Day) pair; at most one record exists per pair.
type CompletionRecord struct {
	HabitID        string    `json:"habit_id"`
	Day            string    `json:"day"` // YYYY-MM-DD
	CompletedCount int       `json:"completed_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}
