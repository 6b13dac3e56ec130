package planner

import (
	"fmt"
	"time"

	"github.com/ansochagas/editaliza/store"
)

// daySlot is one date a plan can study on, with the number of sessions
// that date can hold.
type daySlot struct {
	Date        time.Time
	Weekday     time.Weekday
	MaxSessions int
}

// availabilityIndex computes which dates in a range have spare capacity.
// It is a pure function of the plan's weekday hour map and session
// duration; results are memoized per (start, end, weekdayOnly) key. Each
// planning run owns its own index, so the cache never leaks across runs.
type availabilityIndex struct {
	plan  *store.Plan
	cache map[string][]daySlot
}

func newAvailabilityIndex(plan *store.Plan) *availabilityIndex {
	return &availabilityIndex{
		plan:  plan,
		cache: make(map[string][]daySlot),
	}
}

// AvailableDates returns, in ascending chronological order, every date
// in [start, end] whose weekday has a nonzero hour allocation. When
// weekdayOnly is set, Saturday and Sunday are additionally excluded.
func (idx *availabilityIndex) AvailableDates(start, end time.Time, weekdayOnly bool) []daySlot {
	key := fmt.Sprintf("%s|%s|%t", start.Format(store.DateLayout), end.Format(store.DateLayout), weekdayOnly)
	if slots, ok := idx.cache[key]; ok {
		return slots
	}

	slots := []daySlot{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if weekdayOnly && (wd == time.Saturday || wd == time.Sunday) {
			continue
		}
		if idx.plan.HoursForWeekday(wd) <= 0 {
			continue
		}
		slots = append(slots, daySlot{
			Date:        d,
			Weekday:     wd,
			MaxSessions: idx.plan.MaxSessionsForWeekday(wd),
		})
	}

	idx.cache[key] = slots
	return slots
}

// MaxSessions returns the session capacity of a single date.
func (idx *availabilityIndex) MaxSessions(d time.Time) int {
	if idx.plan.HoursForWeekday(d.Weekday()) <= 0 {
		return 0
	}
	return idx.plan.MaxSessionsForWeekday(d.Weekday())
}
