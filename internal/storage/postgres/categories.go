package postgres

import (
	"database/sql"
	"fmt"

	apperrors "github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
)

func (s *Store) AddCategory(category models.Category) error {
	return s.UpdateCategory(category)
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow(`
		SELECT id, name, icon, color, order_index
		FROM categories WHERE id = $1`, id)

	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.OrderIndex)
	if err == sql.ErrNoRows {
		return models.Category{}, fmt.Errorf("category %q: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, name, icon, color, order_index
		FROM categories ORDER BY order_index, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.OrderIndex); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) UpdateCategory(category models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, icon, color, order_index)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			order_index = excluded.order_index`,
		category.ID, category.Name, category.Icon, category.Color, category.OrderIndex)
	return err
}

func (s *Store) DeleteCategory(id string) error {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "category not found")
}

func (s *Store) AssignCategory(habitID, categoryID string) error {
	_, err := s.db.Exec(`
		INSERT INTO habit_categories (habit_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT(habit_id, category_id) DO NOTHING`,
		habitID, categoryID)
	return err
}

func (s *Store) UnassignCategory(habitID, categoryID string) error {
	result, err := s.db.Exec(`
		DELETE FROM habit_categories WHERE habit_id = $1 AND category_id = $2`,
		habitID, categoryID)
	if err != nil {
		return err
	}
	return requireRow(result, "habit is not in that category")
}

func (s *Store) habitCategories(habitID string) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.icon, c.color, c.order_index
		FROM categories c
		JOIN habit_categories hc ON hc.category_id = c.id
		WHERE hc.habit_id = $1
		ORDER BY c.order_index, c.name`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.OrderIndex); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
