package storage

import "github.com/tallyapp/tally/internal/models"

// Provider is the persistence surface the client works against. The remote
// backend (PostgreSQL) and the local cache (SQLite) implement the same
// interface, so the tracker can fall back to the cached snapshot when the
// backend is unreachable.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	// GetAllHabits returns habits ordered by order index then creation
	// time, with their category associations attached. Archived habits are
	// excluded unless explicitly requested.
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ReorderHabit(id string, orderIndex int) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error
	// PurgeHabit hard-deletes the habit and cascades to its completion
	// records, notes, and category associations.
	PurgeHabit(id string) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error
	AssignCategory(habitID, categoryID string) error
	UnassignCategory(habitID, categoryID string) error

	// Completion records. Uniqueness on (habit_id, day) is enforced with an
	// upsert-on-conflict keyed on that composite.
	UpsertCompletion(habitID, day string, count int) error
	GetCompletion(habitID, day string) (models.CompletionRecord, error)
	// GetCompletions returns records in [startDay, endDay]; empty bounds
	// mean unbounded on that side.
	GetCompletions(startDay, endDay string) ([]models.CompletionRecord, error)
	GetCompletionsForHabit(habitID, startDay, endDay string) ([]models.CompletionRecord, error)

	// Notes
	AddNote(models.Note) error
	GetNotesForHabit(habitID, startDay, endDay string) ([]models.Note, error)
	GetNotesForDay(day string) ([]models.Note, error)
	DeleteNote(id string) error

	// Utils
	GetConfigPath() string
}
