package sqlite

import (
	"fmt"
	"time"

	"github.com/tallyapp/tally/internal/models"
)

func (s *Store) AddNote(note models.Note) error {
	// Notes are immutable; re-inserting the same id is a no-op so snapshot
	// mirroring can replay them.
	_, err := s.db.Exec(`
		INSERT INTO notes (id, habit_id, day, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		note.ID, note.HabitID, note.Day, note.Content,
		note.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetNotesForHabit(habitID, startDay, endDay string) ([]models.Note, error) {
	query := `
		SELECT id, habit_id, day, content, created_at
		FROM notes WHERE habit_id = ?`
	args := []any{habitID}
	if startDay != "" {
		query += " AND day >= ?"
		args = append(args, startDay)
	}
	if endDay != "" {
		query += " AND day <= ?"
		args = append(args, endDay)
	}
	query += " ORDER BY day DESC, created_at DESC"

	return s.queryNotes(query, args...)
}

func (s *Store) GetNotesForDay(day string) ([]models.Note, error) {
	return s.queryNotes(`
		SELECT id, habit_id, day, content, created_at
		FROM notes WHERE day = ?
		ORDER BY created_at DESC`, day)
}

func (s *Store) DeleteNote(id string) error {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
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
		var createdAt string
		if err := rows.Scan(&n.ID, &n.HabitID, &n.Day, &n.Content, &createdAt); err != nil {
			return nil, err
		}
		n.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for note %s: %w", n.ID, err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
