package progress

import (
	"testing"

	"github.com/tallyapp/tally/internal/models"
)

func collectBins(t *testing.T, seq func(yield func(DayBin) bool)) []DayBin {
	t.Helper()
	var out []DayBin
	seq(func(b DayBin) bool {
		out = append(out, b)
		return true
	})
	return out
}

func TestHeatmap(t *testing.T) {
	s := NewStore()
	mustUpsert(t, s, "h", "2024-03-02", 1)
	mustUpsert(t, s, "h", "2024-03-03", 5)
	mustUpsert(t, s, "h", "2024-03-04", 12)

	t.Run("exact day coverage", func(t *testing.T) {
		bins := collectBins(t, Heatmap(s, "h", "2024-03-01", "2024-03-05", 5))
		if len(bins) != 5 {
			t.Fatalf("binning 5 days produced %d bins", len(bins))
		}
		want := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}
		for i, b := range bins {
			if b.Day != want[i] {
				t.Errorf("bin %d day = %s, want %s", i, b.Day, want[i])
			}
		}
	})

	t.Run("intensity normalization", func(t *testing.T) {
		bins := collectBins(t, Heatmap(s, "h", "2024-03-01", "2024-03-05", 5))

		if !bins[0].Empty() || bins[0].Intensity != 0 {
			t.Errorf("zero-count day: Empty=%v Intensity=%v, want empty bin", bins[0].Empty(), bins[0].Intensity)
		}
		if bins[1].Intensity != 0.2 {
			t.Errorf("count 1 intensity = %v, want 0.2", bins[1].Intensity)
		}
		if bins[2].Intensity != 1 {
			t.Errorf("count at saturation intensity = %v, want 1", bins[2].Intensity)
		}
		if bins[3].Intensity != 1 {
			t.Errorf("count above saturation intensity = %v, want clamped 1", bins[3].Intensity)
		}
		if bins[1].Empty() {
			t.Error("non-zero count reported as empty bin")
		}
	})

	t.Run("single day range", func(t *testing.T) {
		bins := collectBins(t, Heatmap(s, "h", "2024-03-03", "2024-03-03", 5))
		if len(bins) != 1 || bins[0].Day != "2024-03-03" {
			t.Fatalf("single-day range produced %v", bins)
		}
	})

	t.Run("inverted range yields nothing", func(t *testing.T) {
		bins := collectBins(t, Heatmap(s, "h", "2024-03-05", "2024-03-01", 5))
		if len(bins) != 0 {
			t.Errorf("inverted range produced %d bins, want 0", len(bins))
		}
	})

	t.Run("invalid range yields nothing", func(t *testing.T) {
		bins := collectBins(t, Heatmap(s, "h", "garbage", "2024-03-05", 5))
		if len(bins) != 0 {
			t.Errorf("invalid range produced %d bins, want 0", len(bins))
		}
	})

	t.Run("restartable", func(t *testing.T) {
		seq := Heatmap(s, "h", "2024-03-01", "2024-03-05", 5)
		first := collectBins(t, seq)
		second := collectBins(t, seq)
		if len(first) != len(second) {
			t.Errorf("second iteration produced %d bins, want %d", len(second), len(first))
		}
	})
}

func TestAggregateHeatmap(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("a", "2024-01-01", 1),
		dailyHabit("b", "2024-01-01", 2),
	}

	s := NewStore()
	mustUpsert(t, s, "a", "2024-03-01", 1)
	mustUpsert(t, s, "b", "2024-03-01", 2)
	mustUpsert(t, s, "a", "2024-03-02", 1)
	mustUpsert(t, s, "b", "2024-03-02", 1) // below b's target

	bins := collectBins(t, AggregateHeatmap(s, habits, "2024-03-01", "2024-03-03"))
	if len(bins) != 3 {
		t.Fatalf("aggregate binning produced %d bins, want 3", len(bins))
	}

	if bins[0].Count != 2 || bins[0].Intensity != 1 {
		t.Errorf("both habits met: Count=%d Intensity=%v, want 2 and 1", bins[0].Count, bins[0].Intensity)
	}
	if bins[1].Count != 1 || bins[1].Intensity != 0.5 {
		t.Errorf("one habit met: Count=%d Intensity=%v, want 1 and 0.5", bins[1].Count, bins[1].Intensity)
	}
	if !bins[2].Empty() {
		t.Error("day with no completions should be the empty bin")
	}
}
