// Package progress holds the in-memory completion snapshot and the pure
// derivations over it: streaks, trailing-window completion rates, and
// heatmap binning. Everything here is synchronous and side-effect free;
// persistence belongs to the storage providers.
package progress

import (
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/tallyapp/tally/internal/errors"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

type recordKey struct {
	habitID string
	day     string
}

// Store is the authoritative in-memory set of completion records for the
// current snapshot, indexed for O(1) lookup by (habit id, day). It is an
// explicit container with no package-level state; tests and callers build
// isolated instances with NewStore.
type Store struct {
	records map[recordKey]models.CompletionRecord
}

// NewStore creates an empty completion record store.
func NewStore() *Store {
	return &Store{
		records: make(map[recordKey]models.CompletionRecord),
	}
}

// Get returns the completed count for the (habit, day) pair, or 0 if no
// record exists. Absence means "not yet attempted" and is semantically
// identical to a zero record; unknown habit ids are not an error.
func (s *Store) Get(habitID, day string) int {
	return s.records[recordKey{habitID, day}].CompletedCount
}

// Upsert replaces or inserts the record for the (habit, day) pair. Negative
// counts are rejected with ErrInvalidArgument rather than clamped, so callers
// cannot silently corrupt history; malformed day keys are rejected the same
// way. Applying the same arguments twice leaves the store unchanged.
func (s *Store) Upsert(habitID, day string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative completion count %d", errors.ErrInvalidArgument, count)
	}
	if !utils.ValidDay(day) {
		return fmt.Errorf("%w: malformed day %q", errors.ErrInvalidArgument, day)
	}
	s.records[recordKey{habitID, day}] = models.CompletionRecord{
		HabitID:        habitID,
		Day:            day,
		CompletedCount: count,
		UpdatedAt:      time.Now().UTC(),
	}
	return nil
}

// Remove deletes all records belonging to a habit, mirroring the cascade
// the storage layer applies when a habit is purged.
func (s *Store) Remove(habitID string) {
	for k := range s.records {
		if k.habitID == habitID {
			delete(s.records, k)
		}
	}
}

// Reset replaces the store contents with the given snapshot. Records sharing
// a (habit, day) key resolve last-write-wins, matching the uniqueness
// invariant the backend enforces on the same composite key.
func (s *Store) Reset(records []models.CompletionRecord) {
	s.records = make(map[recordKey]models.CompletionRecord, len(records))
	for _, r := range records {
		if r.CompletedCount < 0 {
			continue
		}
		s.records[recordKey{r.HabitID, r.Day}] = r
	}
}

// All returns a restartable sequence over every record in the store, ordered
// by (habit id, day) so iteration order is deterministic.
func (s *Store) All() iter.Seq[models.CompletionRecord] {
	return func(yield func(models.CompletionRecord) bool) {
		keys := make([]recordKey, 0, len(s.records))
		for k := range s.records {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].habitID != keys[j].habitID {
				return keys[i].habitID < keys[j].habitID
			}
			return keys[i].day < keys[j].day
		})
		for _, k := range keys {
			if !yield(s.records[k]) {
				return
			}
		}
	}
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}
