package models

import "time"

// Note is a free-text journal entry tied to a habit and a day. Unlike
// completion records, any number of notes may exist per (habit, day).
type Note struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
