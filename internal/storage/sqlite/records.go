package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

// UpsertCompletion creates or replaces the single completion record for the
// (habit, day) pair. The primary key on that composite makes the operation
// idempotent; re-running it with the same arguments changes nothing.
func (s *Store) UpsertCompletion(habitID, day string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative completion count %d", apperrors.ErrInvalidArgument, count)
	}
	if !utils.ValidDay(day) {
		return fmt.Errorf("%w: malformed day %q", apperrors.ErrInvalidArgument, day)
	}

	_, err := s.db.Exec(`
		INSERT INTO completion_records (habit_id, day, completed_count, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			completed_count = excluded.completed_count,
			updated_at = excluded.updated_at`,
		habitID, day, count, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetCompletion(habitID, day string) (models.CompletionRecord, error) {
	row := s.db.QueryRow(`
		SELECT habit_id, day, completed_count, updated_at
		FROM completion_records WHERE habit_id = ? AND day = ?`,
		habitID, day)

	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return models.CompletionRecord{}, fmt.Errorf("completion for habit %q on %s: %w",
			habitID, day, apperrors.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetCompletions(startDay, endDay string) ([]models.CompletionRecord, error) {
	query := `
		SELECT habit_id, day, completed_count, updated_at
		FROM completion_records WHERE 1=1`
	var args []any
	if startDay != "" {
		query += " AND day >= ?"
		args = append(args, startDay)
	}
	if endDay != "" {
		query += " AND day <= ?"
		args = append(args, endDay)
	}
	query += " ORDER BY habit_id, day"

	return s.queryRecords(query, args...)
}

func (s *Store) GetCompletionsForHabit(habitID, startDay, endDay string) ([]models.CompletionRecord, error) {
	query := `
		SELECT habit_id, day, completed_count, updated_at
		FROM completion_records WHERE habit_id = ?`
	args := []any{habitID}
	if startDay != "" {
		query += " AND day >= ?"
		args = append(args, startDay)
	}
	if endDay != "" {
		query += " AND day <= ?"
		args = append(args, endDay)
	}
	query += " ORDER BY day"

	return s.queryRecords(query, args...)
}

func (s *Store) queryRecords(query string, args ...any) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(row interface{ Scan(...any) error }) (models.CompletionRecord, error) {
	var r models.CompletionRecord
	var updatedAt string
	if err := row.Scan(&r.HabitID, &r.Day, &r.CompletedCount, &updatedAt); err != nil {
		return models.CompletionRecord{}, err
	}
	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.CompletionRecord{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	r.UpdatedAt = t
	return r, nil
}
