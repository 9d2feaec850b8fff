package progress

import (
	"iter"

	"github.com/tallyapp/tally/internal/constants"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

// DayBin is one calendar day of a heatmap: the raw count for the day and its
// normalized intensity in [0, 1]. A day with a zero count is the
// distinguished "empty" bin and never maps onto the colored scale.
type DayBin struct {
	Day       string
	Count     int
	Intensity float64
}

// Empty reports whether the day had no completions at all.
func (b DayBin) Empty() bool {
	return b.Count == 0
}

func bin(day string, count, saturation int) DayBin {
	if saturation < 1 {
		saturation = constants.HeatmapSaturation
	}
	b := DayBin{Day: day, Count: count}
	if count > 0 {
		b.Intensity = float64(count) / float64(saturation)
		if b.Intensity > 1 {
			b.Intensity = 1
		}
	}
	return b
}

// Heatmap bins a single habit's completion counts over [startDay, endDay]
// inclusive. It yields exactly one DayBin per calendar day in chronological
// order, with intensity saturating at the given count. The sequence is lazy,
// restartable, and a pure function of the store snapshot; an invalid range
// yields nothing.
func Heatmap(s *Store, habitID, startDay, endDay string, saturation int) iter.Seq[DayBin] {
	return func(yield func(DayBin) bool) {
		if !utils.ValidDay(startDay) || !utils.ValidDay(endDay) {
			return
		}
		for day := startDay; day <= endDay; day = utils.AddDays(day, 1) {
			if !yield(bin(day, s.Get(habitID, day), saturation)) {
				return
			}
		}
	}
}

// AggregateHeatmap bins all habits together: each day's count is the number
// of habits that met their goal that day, and intensity saturates at the
// number of habits, so a fully green day means everything was completed.
func AggregateHeatmap(s *Store, habits []models.Habit, startDay, endDay string) iter.Seq[DayBin] {
	return func(yield func(DayBin) bool) {
		if !utils.ValidDay(startDay) || !utils.ValidDay(endDay) {
			return
		}
		for day := startDay; day <= endDay; day = utils.AddDays(day, 1) {
			met := 0
			for _, h := range habits {
				if s.Get(h.ID, day) >= h.Target() {
					met++
				}
			}
			if !yield(bin(day, met, len(habits))) {
				return
			}
		}
	}
}
