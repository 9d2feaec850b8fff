package postgres

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
)

const habitColumns = `id, name, description, type, target_completions, unit,
	goal_series, icon, order_index, created_day, created_at, archived_at, deleted_at`

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var habitType string
	var archivedAt, deletedAt sql.NullTime

	err := row.Scan(&h.ID, &h.Name, &h.Description, &habitType, &h.TargetCompletions,
		&h.Unit, &h.GoalSeries, &h.Icon, &h.OrderIndex, &h.CreatedDay,
		&h.CreatedAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Type = models.HabitType(habitType)
	if archivedAt.Valid {
		t := archivedAt.Time
		h.ArchivedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		h.DeletedAt = &t
	}
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)

	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %q: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, err
	}

	h.Categories, err = s.habitCategories(h.ID)
	return h, err
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE name = $1 AND deleted_at IS NULL`, name)

	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, err
	}

	h.Categories, err = s.habitCategories(h.ID)
	return h, err
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE TRUE"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY order_index, created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		habits[i].Categories, err = s.habitCategories(habits[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return habits, nil
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	var archivedAt, deletedAt sql.NullTime
	if habit.ArchivedAt != nil {
		archivedAt = sql.NullTime{Time: *habit.ArchivedAt, Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: *habit.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, description, type, target_completions, unit,
			goal_series, icon, order_index, created_day, created_at, archived_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			type = excluded.type,
			target_completions = excluded.target_completions,
			unit = excluded.unit,
			goal_series = excluded.goal_series,
			icon = excluded.icon,
			order_index = excluded.order_index,
			archived_at = excluded.archived_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.Name, habit.Description, string(habit.Type), habit.TargetCompletions,
		habit.Unit, habit.GoalSeries, habit.Icon, habit.OrderIndex, habit.CreatedDay,
		habit.CreatedAt, archivedAt, deletedAt)

	return err
}

func (s *Store) ReorderHabit(id string, orderIndex int) error {
	result, err := s.db.Exec(`
		UPDATE habits SET order_index = $1 WHERE id = $2 AND deleted_at IS NULL`,
		orderIndex, id)
	if err != nil {
		return err
	}
	return requireRow(result, "habit not found")
}

func (s *Store) ArchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = $1 WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(result, "habit not found or already archived/deleted")
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL WHERE id = $1 AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return requireRow(result, "habit not found or not archived")
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(result, "habit not found or already deleted")
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return requireRow(result, "habit not found or not deleted")
}

func (s *Store) PurgeHabit(id string) error {
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "habit not found")
}

func requireRow(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}
	return nil
}
