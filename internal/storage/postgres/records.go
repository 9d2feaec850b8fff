package postgres

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

// UpsertCompletion creates or replaces the single completion record for the
// (habit, day) pair.
func (s *Store) UpsertCompletion(habitID, day string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative completion count %d", apperrors.ErrInvalidArgument, count)
	}
	if !utils.ValidDay(day) {
		return fmt.Errorf("%w: malformed day %q", apperrors.ErrInvalidArgument, day)
	}

	_, err := s.db.Exec(`
		INSERT INTO completion_records (habit_id, day, completed_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			completed_count = excluded.completed_count,
			updated_at = excluded.updated_at`,
		habitID, day, count, time.Now().UTC())
	return err
}

func (s *Store) GetCompletion(habitID, day string) (models.CompletionRecord, error) {
	row := s.db.QueryRow(`
		SELECT habit_id, day, completed_count, updated_at
		FROM completion_records WHERE habit_id = $1 AND day = $2`,
		habitID, day)

	var r models.CompletionRecord
	err := row.Scan(&r.HabitID, &r.Day, &r.CompletedCount, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.CompletionRecord{}, fmt.Errorf("completion for habit %q on %s: %w",
			habitID, day, apperrors.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetCompletions(startDay, endDay string) ([]models.CompletionRecord, error) {
	query := `
		SELECT habit_id, day, completed_count, updated_at
		FROM completion_records WHERE TRUE`
	var args []any
	if startDay != "" {
		args = append(args, startDay)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if endDay != "" {
		args = append(args, endDay)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " ORDER BY habit_id, day"

	return s.queryRecords(query, args...)
}

func (s *Store) GetCompletionsForHabit(habitID, startDay, endDay string) ([]models.CompletionRecord, error) {
	query := `
		SELECT habit_id, day, completed_count, updated_at
		FROM completion_records WHERE habit_id = $1`
	args := []any{habitID}
	if startDay != "" {
		args = append(args, startDay)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if endDay != "" {
		args = append(args, endDay)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
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
		var r models.CompletionRecord
		if err := rows.Scan(&r.HabitID, &r.Day, &r.CompletedCount, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
