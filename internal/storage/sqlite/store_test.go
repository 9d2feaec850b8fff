package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testHabit(id, name string) models.Habit {
	return models.Habit{
		ID:         id,
		Name:       name,
		Type:       models.HabitCheckoff,
		GoalSeries: models.SeriesDaily,
		CreatedDay: "2024-01-01",
		CreatedAt:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestStoreLifecycle(t *testing.T) {
	t.Run("init writes default settings", func(t *testing.T) {
		s := newTestStore(t)
		settings, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if settings.Timezone == "" {
			t.Error("expected default timezone to be set")
		}
		if settings.HeatmapDays <= 0 {
			t.Errorf("expected positive default heatmap days, got %d", settings.HeatmapDays)
		}
	})

	t.Run("load fails without init", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
		if err := s.Load(); err == nil {
			t.Error("expected error loading uninitialized store")
		}
	})

	t.Run("load after init succeeds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tally.db")
		s := NewStore(path)
		if err := s.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		s.Close()

		s2 := NewStore(path)
		if err := s2.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer s2.Close()

		ok, err := s2.tableExists("habits")
		if err != nil {
			t.Fatalf("tableExists failed: %v", err)
		}
		if !ok {
			t.Error("expected habits table to exist after load")
		}
	})
}

func TestStoreHabits(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		s := newTestStore(t)
		h := testHabit("h1", "Meditate")
		if err := s.AddHabit(h); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		got, err := s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if got.Name != "Meditate" || got.CreatedDay != "2024-01-01" {
			t.Errorf("unexpected habit: %+v", got)
		}
	})

	t.Run("get unknown returns not found", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.GetHabit("nope")
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("get by name", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Read")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		got, err := s.GetHabitByName("Read")
		if err != nil {
			t.Fatalf("GetHabitByName failed: %v", err)
		}
		if got.ID != "h1" {
			t.Errorf("expected id h1, got %s", got.ID)
		}
	})

	t.Run("update is an upsert", func(t *testing.T) {
		s := newTestStore(t)
		h := testHabit("h1", "Run")
		if err := s.AddHabit(h); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		h.Name = "Run 5k"
		h.Type = models.HabitQuantitative
		h.TargetCompletions = 5
		h.Unit = "km"
		if err := s.UpdateHabit(h); err != nil {
			t.Fatalf("UpdateHabit failed: %v", err)
		}

		got, err := s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if got.Name != "Run 5k" || got.Target() != 5 || got.Unit != "km" {
			t.Errorf("unexpected habit after update: %+v", got)
		}
	})

	t.Run("archive and unarchive", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Stretch")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		if err := s.ArchiveHabit("h1"); err != nil {
			t.Fatalf("ArchiveHabit failed: %v", err)
		}
		got, err := s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if !got.Archived() {
			t.Error("expected habit to be archived")
		}

		// Default listing excludes archived habits.
		active, err := s.GetAllHabits(false, false)
		if err != nil {
			t.Fatalf("GetAllHabits failed: %v", err)
		}
		if len(active) != 0 {
			t.Errorf("expected no active habits, got %d", len(active))
		}
		all, err := s.GetAllHabits(true, false)
		if err != nil {
			t.Fatalf("GetAllHabits failed: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected 1 habit including archived, got %d", len(all))
		}

		if err := s.UnarchiveHabit("h1"); err != nil {
			t.Fatalf("UnarchiveHabit failed: %v", err)
		}
		got, err = s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if got.Archived() {
			t.Error("expected habit to be unarchived")
		}
	})

	t.Run("soft delete and restore", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Journal")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		if err := s.DeleteHabit("h1"); err != nil {
			t.Fatalf("DeleteHabit failed: %v", err)
		}
		if _, err := s.GetHabit("h1"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		deleted, err := s.GetAllHabits(true, true)
		if err != nil {
			t.Fatalf("GetAllHabits failed: %v", err)
		}
		if len(deleted) != 1 {
			t.Fatalf("expected deleted habit to be listed with includeDeleted, got %d", len(deleted))
		}

		if err := s.RestoreHabit("h1"); err != nil {
			t.Fatalf("RestoreHabit failed: %v", err)
		}
		if _, err := s.GetHabit("h1"); err != nil {
			t.Errorf("expected habit back after restore, got %v", err)
		}
	})

	t.Run("purge cascades to records and notes", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Water")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		if err := s.UpsertCompletion("h1", "2024-01-02", 1); err != nil {
			t.Fatalf("UpsertCompletion failed: %v", err)
		}
		if err := s.AddNote(models.Note{
			ID: "n1", HabitID: "h1", Day: "2024-01-02",
			Content: "felt good", CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}

		if err := s.PurgeHabit("h1"); err != nil {
			t.Fatalf("PurgeHabit failed: %v", err)
		}

		if _, err := s.GetCompletion("h1", "2024-01-02"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected completion gone after purge, got %v", err)
		}
		notes, err := s.GetNotesForHabit("h1", "", "")
		if err != nil {
			t.Fatalf("GetNotesForHabit failed: %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("expected notes gone after purge, got %d", len(notes))
		}
	})

	t.Run("reorder", func(t *testing.T) {
		s := newTestStore(t)
		a := testHabit("a", "A")
		b := testHabit("b", "B")
		b.OrderIndex = 1
		b.CreatedAt = a.CreatedAt.Add(time.Hour)
		if err := s.AddHabit(a); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		if err := s.AddHabit(b); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		if err := s.ReorderHabit("b", -1); err != nil {
			t.Fatalf("ReorderHabit failed: %v", err)
		}
		habits, err := s.GetAllHabits(false, false)
		if err != nil {
			t.Fatalf("GetAllHabits failed: %v", err)
		}
		if habits[0].ID != "b" {
			t.Errorf("expected b first after reorder, got %s", habits[0].ID)
		}
	})
}

func TestStoreCompletions(t *testing.T) {
	t.Run("upsert is idempotent and replaces", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Pushups")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		if err := s.UpsertCompletion("h1", "2024-01-05", 3); err != nil {
			t.Fatalf("UpsertCompletion failed: %v", err)
		}
		if err := s.UpsertCompletion("h1", "2024-01-05", 3); err != nil {
			t.Fatalf("repeat UpsertCompletion failed: %v", err)
		}
		if err := s.UpsertCompletion("h1", "2024-01-05", 7); err != nil {
			t.Fatalf("UpsertCompletion failed: %v", err)
		}

		r, err := s.GetCompletion("h1", "2024-01-05")
		if err != nil {
			t.Fatalf("GetCompletion failed: %v", err)
		}
		if r.CompletedCount != 7 {
			t.Errorf("expected count 7, got %d", r.CompletedCount)
		}

		records, err := s.GetCompletionsForHabit("h1", "", "")
		if err != nil {
			t.Fatalf("GetCompletionsForHabit failed: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected a single record per day, got %d", len(records))
		}
	})

	t.Run("rejects negative count", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Pushups")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		err := s.UpsertCompletion("h1", "2024-01-05", -1)
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rejects malformed day", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Pushups")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		err := s.UpsertCompletion("h1", "Jan 5", 1)
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("range queries", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Pushups")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		for _, day := range []string{"2024-01-01", "2024-01-03", "2024-01-05"} {
			if err := s.UpsertCompletion("h1", day, 1); err != nil {
				t.Fatalf("UpsertCompletion failed: %v", err)
			}
		}

		records, err := s.GetCompletions("2024-01-02", "2024-01-05")
		if err != nil {
			t.Fatalf("GetCompletions failed: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records in range, got %d", len(records))
		}

		records, err = s.GetCompletionsForHabit("h1", "2024-01-03", "")
		if err != nil {
			t.Fatalf("GetCompletionsForHabit failed: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records from 01-03, got %d", len(records))
		}
	})
}

func TestStoreCategories(t *testing.T) {
	t.Run("assign and list through habit", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Yoga")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		if err := s.AddCategory(models.Category{ID: "c1", Name: "Health"}); err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}

		if err := s.AssignCategory("h1", "c1"); err != nil {
			t.Fatalf("AssignCategory failed: %v", err)
		}
		// Re-assigning the same pair is a no-op.
		if err := s.AssignCategory("h1", "c1"); err != nil {
			t.Fatalf("repeat AssignCategory failed: %v", err)
		}

		h, err := s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if len(h.Categories) != 1 || h.Categories[0].Name != "Health" {
			t.Errorf("unexpected categories: %+v", h.Categories)
		}

		if err := s.UnassignCategory("h1", "c1"); err != nil {
			t.Fatalf("UnassignCategory failed: %v", err)
		}
		h, err = s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if len(h.Categories) != 0 {
			t.Errorf("expected no categories after unassign, got %+v", h.Categories)
		}
	})

	t.Run("delete category detaches habits", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.AddHabit(testHabit("h1", "Yoga")); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
		if err := s.AddCategory(models.Category{ID: "c1", Name: "Health"}); err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}
		if err := s.AssignCategory("h1", "c1"); err != nil {
			t.Fatalf("AssignCategory failed: %v", err)
		}

		if err := s.DeleteCategory("c1"); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}

		h, err := s.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if len(h.Categories) != 0 {
			t.Errorf("expected assignment gone with category, got %+v", h.Categories)
		}
	})
}

func TestStoreNotes(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddHabit(testHabit("h1", "Journal")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	now := time.Now()
	for i, n := range []models.Note{
		{ID: "n1", HabitID: "h1", Day: "2024-01-02", Content: "first"},
		{ID: "n2", HabitID: "h1", Day: "2024-01-02", Content: "second"},
		{ID: "n3", HabitID: "h1", Day: "2024-01-04", Content: "later"},
	} {
		n.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		if err := s.AddNote(n); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}

	byDay, err := s.GetNotesForDay("2024-01-02")
	if err != nil {
		t.Fatalf("GetNotesForDay failed: %v", err)
	}
	if len(byDay) != 2 {
		t.Errorf("expected 2 notes on 2024-01-02, got %d", len(byDay))
	}

	byHabit, err := s.GetNotesForHabit("h1", "2024-01-03", "")
	if err != nil {
		t.Fatalf("GetNotesForHabit failed: %v", err)
	}
	if len(byHabit) != 1 || byHabit[0].ID != "n3" {
		t.Errorf("unexpected notes from 01-03: %+v", byHabit)
	}

	if err := s.DeleteNote("n1"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if err := s.DeleteNote("n1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestStoreSettings(t *testing.T) {
	s := newTestStore(t)
	want := models.Settings{Timezone: "America/New_York", HeatmapDays: 90}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("settings round trip mismatch: got %+v want %+v", got, want)
	}
}
