package tracker

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/tallyapp/tally/internal/constants"
	apperrors "github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/logger"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/progress"
	"github.com/tallyapp/tally/internal/storage"
	"github.com/tallyapp/tally/internal/utils"
	"github.com/tallyapp/tally/internal/validation"
)

// Tracker is the client's working state: the habit list and an in-memory
// completion store hydrated from the backend snapshot (or the local cache
// when the backend is unreachable). All mutations write through to the
// backend and the cache before touching memory, so the cache is always a
// faithful mirror of the last confirmed state.
type Tracker struct {
	remote storage.Provider // nil in local-only mode
	cache  storage.Provider

	store  *progress.Store
	habits []models.Habit
	today  string
	stale  bool
}

func New(remote, cache storage.Provider, today string) *Tracker {
	return &Tracker{
		remote: remote,
		cache:  cache,
		store:  progress.NewStore(),
		today:  today,
	}
}

// Today returns the day the tracker was opened on, in the configured timezone.
func (t *Tracker) Today() string {
	return t.today
}

// Stale reports whether the current snapshot came from the local cache
// because the backend was unreachable.
func (t *Tracker) Stale() bool {
	return t.stale
}

// Store exposes the in-memory completion store for derivations.
func (t *Tracker) Store() *progress.Store {
	return t.store
}

// LoadSnapshot hydrates the tracker. With a backend configured it reads the
// remote state and mirrors it into the cache; if the backend cannot be
// reached it falls back to the cached snapshot and marks the data stale.
func (t *Tracker) LoadSnapshot() error {
	if t.remote != nil {
		if err := t.loadFrom(t.remote); err == nil {
			if err := t.mirrorToCache(); err != nil {
				logger.Warn("Failed to mirror snapshot into cache", "error", err)
			}
			return nil
		} else {
			logger.Warn("Backend unreachable, falling back to cached snapshot", "error", err)
			t.stale = true
		}
	}

	return t.loadFrom(t.cache)
}

func (t *Tracker) loadFrom(p storage.Provider) error {
	if err := p.Load(); err != nil {
		return err
	}

	habits, err := p.GetAllHabits(true, false)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	records, err := p.GetCompletions("", "")
	if err != nil {
		return fmt.Errorf("failed to load completion records: %w", err)
	}

	t.habits = habits
	t.store.Reset(records)
	return nil
}

// mirrorToCache replays the remote snapshot into the local cache. Every
// replayed write is an upsert, so repeating the mirror is harmless.
func (t *Tracker) mirrorToCache() error {
	if err := t.cache.Load(); err != nil {
		return err
	}

	categories, err := t.remote.GetAllCategories()
	if err != nil {
		return err
	}
	for _, c := range categories {
		if err := t.cache.UpdateCategory(c); err != nil {
			return err
		}
	}

	for _, h := range t.habits {
		if err := t.cache.UpdateHabit(h); err != nil {
			return err
		}
		for _, c := range h.Categories {
			if err := t.cache.AssignCategory(h.ID, c.ID); err != nil {
				return err
			}
		}
	}

	for r := range t.store.All() {
		if err := t.cache.UpsertCompletion(r.HabitID, r.Day, r.CompletedCount); err != nil {
			return err
		}
	}

	return nil
}

// write applies a mutation to the backend first, then the cache. A backend
// failure aborts before the cache is touched so the two never diverge.
func (t *Tracker) write(op func(storage.Provider) error) error {
	if t.remote != nil {
		if err := op(t.remote); err != nil {
			return err
		}
	}
	return op(t.cache)
}

func (t *Tracker) refreshHabits() error {
	source := t.cache
	if t.remote != nil && !t.stale {
		source = t.remote
	}
	habits, err := source.GetAllHabits(true, false)
	if err != nil {
		return err
	}
	t.habits = habits
	return nil
}

// Habits returns the loaded habits, optionally including archived ones.
func (t *Tracker) Habits(includeArchived bool) []models.Habit {
	if includeArchived {
		return t.habits
	}
	var active []models.Habit
	for _, h := range t.habits {
		if !h.Archived() {
			active = append(active, h)
		}
	}
	return active
}

// Habit resolves a habit by id or, failing that, by name.
func (t *Tracker) Habit(ref string) (models.Habit, error) {
	for _, h := range t.habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range t.habits {
		if h.Name == ref {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperrors.ErrNotFound)
}

// MarkCompletion records progress for a habit on a day. A negative count is
// clamped to zero, which erases the day's progress rather than erroring; the
// day itself must fall inside the habit's valid range.
func (t *Tracker) MarkCompletion(habitID, day string, count int) error {
	h, err := t.Habit(habitID)
	if err != nil {
		return err
	}

	if count < 0 {
		count = 0
	}
	if err := validation.ValidateCompletionDay(h, day, t.today); err != nil {
		return err
	}

	if err := t.write(func(p storage.Provider) error {
		return p.UpsertCompletion(h.ID, day, count)
	}); err != nil {
		return err
	}

	return t.store.Upsert(h.ID, day, count)
}

// MarkToday is MarkCompletion for the current day.
func (t *Tracker) MarkToday(habitID string, count int) error {
	return t.MarkCompletion(habitID, t.today, count)
}

// AddHabit validates and persists a new habit. A missing id or created day
// is filled in.
func (t *Tracker) AddHabit(h models.Habit) (models.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedDay == "" {
		h.CreatedDay = t.today
	}
	if err := validation.ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}
	if err := t.write(func(p storage.Provider) error {
		return p.AddHabit(h)
	}); err != nil {
		return models.Habit{}, err
	}
	return h, t.refreshHabits()
}

func (t *Tracker) UpdateHabit(h models.Habit) error {
	if err := validation.ValidateHabit(h); err != nil {
		return err
	}
	if err := t.write(func(p storage.Provider) error {
		return p.UpdateHabit(h)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) ArchiveHabit(id string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.ArchiveHabit(id)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) UnarchiveHabit(id string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.UnarchiveHabit(id)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

// DeleteHabit soft-deletes; completion records stay in storage so a restore
// brings the full history back.
func (t *Tracker) DeleteHabit(id string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.DeleteHabit(id)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) RestoreHabit(id string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.RestoreHabit(id)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

// PurgeHabit hard-deletes the habit, its records, notes, and category links.
func (t *Tracker) PurgeHabit(id string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.PurgeHabit(id)
	}); err != nil {
		return err
	}
	t.store.Remove(id)
	return t.refreshHabits()
}

func (t *Tracker) ReorderHabit(id string, orderIndex int) error {
	if err := t.write(func(p storage.Provider) error {
		return p.ReorderHabit(id, orderIndex)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) AddCategory(c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := validation.ValidateCategory(c); err != nil {
		return models.Category{}, err
	}
	return c, t.write(func(p storage.Provider) error {
		return p.AddCategory(c)
	})
}

func (t *Tracker) UpdateCategory(c models.Category) error {
	if err := validation.ValidateCategory(c); err != nil {
		return err
	}
	return t.write(func(p storage.Provider) error {
		return p.UpdateCategory(c)
	})
}

func (t *Tracker) DeleteCategory(id string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.DeleteCategory(id)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) Categories() ([]models.Category, error) {
	if t.remote != nil && !t.stale {
		return t.remote.GetAllCategories()
	}
	return t.cache.GetAllCategories()
}

func (t *Tracker) AssignCategory(habitID, categoryID string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.AssignCategory(habitID, categoryID)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) UnassignCategory(habitID, categoryID string) error {
	if err := t.write(func(p storage.Provider) error {
		return p.UnassignCategory(habitID, categoryID)
	}); err != nil {
		return err
	}
	return t.refreshHabits()
}

func (t *Tracker) AddNote(n models.Note) (models.Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Day == "" {
		n.Day = t.today
	}
	if err := validation.ValidateNote(n); err != nil {
		return models.Note{}, err
	}
	return n, t.write(func(p storage.Provider) error {
		return p.AddNote(n)
	})
}

func (t *Tracker) DeleteNote(id string) error {
	return t.write(func(p storage.Provider) error {
		return p.DeleteNote(id)
	})
}

func (t *Tracker) NotesForHabit(habitID, startDay, endDay string) ([]models.Note, error) {
	if t.remote != nil && !t.stale {
		return t.remote.GetNotesForHabit(habitID, startDay, endDay)
	}
	return t.cache.GetNotesForHabit(habitID, startDay, endDay)
}

func (t *Tracker) NotesForDay(day string) ([]models.Note, error) {
	if t.remote != nil && !t.stale {
		return t.remote.GetNotesForDay(day)
	}
	return t.cache.GetNotesForDay(day)
}

// Completion returns the recorded count for a habit on a day, zero when the
// day was never marked.
func (t *Tracker) Completion(habitID, day string) int {
	return t.store.Get(habitID, day)
}

// Streak returns the habit's current streak as of today.
func (t *Tracker) Streak(h models.Habit) int {
	return progress.Streak(t.store, h, t.today)
}

// Streaks returns streaks for all loaded habits keyed by habit id.
func (t *Tracker) Streaks() map[string]int {
	return progress.Streaks(t.store, t.habits, t.today)
}

// WindowRate returns the habit's completion percentage over the trailing n
// days, clamped to the habit's lifetime.
func (t *Tracker) WindowRate(h models.Habit, n int) int {
	return progress.WindowRate(t.store, h, t.today, n)
}

// TotalCompletions counts the days on which the habit met its target.
func (t *Tracker) TotalCompletions(h models.Habit) int {
	return progress.TotalCompletions(t.store, h)
}

// Heatmap yields per-day bins for one habit over the trailing days range.
func (t *Tracker) Heatmap(h models.Habit, days int) iter.Seq[progress.DayBin] {
	start := utils.MaxDay(utils.AddDays(t.today, -(days-1)), h.CreatedDay)
	return progress.Heatmap(t.store, h.ID, start, t.today, constants.HeatmapSaturation)
}

// AggregateHeatmap yields per-day bins counting how many active habits met
// their target each day.
func (t *Tracker) AggregateHeatmap(days int) iter.Seq[progress.DayBin] {
	start := utils.AddDays(t.today, -(days - 1))
	return progress.AggregateHeatmap(t.store, t.Habits(false), start, t.today)
}

// Summary bundles the derived statistics shown by the stats views.
type Summary struct {
	Habit            models.Habit
	Streak           int
	Rates            map[int]int // trailing window size in days -> percent
	TotalCompletions int
}

// Summarize computes the summary for one habit over the standard windows.
func (t *Tracker) Summarize(h models.Habit) Summary {
	rates := make(map[int]int, len(constants.SummaryWindows))
	for _, w := range constants.SummaryWindows {
		rates[w] = t.WindowRate(h, w)
	}
	return Summary{
		Habit:            h,
		Streak:           t.Streak(h),
		Rates:            rates,
		TotalCompletions: t.TotalCompletions(h),
	}
}
