package postgres

import (
	"fmt"

	"github.com/tallyapp/tally/internal/models"
)

func (s *Store) AddNote(note models.Note) error {
	// Notes are immutable; re-inserting the same id is a no-op so snapshot
	// mirroring can replay them.
	_, err := s.db.Exec(`
		INSERT INTO notes (id, habit_id, day, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(id) DO NOTHING`,
		note.ID, note.HabitID, note.Day, note.Content, note.CreatedAt)
	return err
}

func (s *Store) GetNotesForHabit(habitID, startDay, endDay string) ([]models.Note, error) {
	query := `
		SELECT id, habit_id, day, content, created_at
		FROM notes WHERE habit_id = $1`
	args := []any{habitID}
	if startDay != "" {
		args = append(args, startDay)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if endDay != "" {
		args = append(args, endDay)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " ORDER BY day DESC, created_at DESC"

	return s.queryNotes(query, args...)
}

func (s *Store) GetNotesForDay(day string) ([]models.Note, error) {
	return s.queryNotes(`
		SELECT id, habit_id, day, content, created_at
		FROM notes WHERE day = $1
		ORDER BY created_at DESC`, day)
}

func (s *Store) DeleteNote(id string) error {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "note not found")
}

func (s *Store) queryNotes(query string, args ...any) ([]models.Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.HabitID, &n.Day, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
