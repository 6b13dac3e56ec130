package planner

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/ansochagas/editaliza/store"
)

// distributeNewTopics walks the weighted, shuffled pending-topic order
// forward through available weekday slots, booking a new-topic session
// and its review cascade for each. It returns how many topics were
// placed; topics left over when capacity runs out stay unscheduled for
// this run.
func (r *planRun) distributeNewTopics(pending []*topicInfo) int {
	ordered := weightedShuffle(pending, r.rng)

	placed := 0
	cursor := r.today
	for _, t := range ordered {
		slot, ok := r.nextWeekdaySlot(cursor)
		if !ok {
			slog.Warn("content distribution stopped, no weekday slots before exam",
				"plan_id", r.plan.ID,
				"topics_left", len(ordered)-placed)
			break
		}
		r.agenda.Add(slot.Date, r.newSession(t, store.SessionTypeNewTopic))
		cursor = slot.Date
		placed++

		// The cascade anchors to the study date, not a completion date.
		r.scheduleReviewCascade(t, slot.Date)
	}
	return placed
}

// nextWeekdaySlot finds the first Monday-Friday date on/after the cursor
// with spare capacity, or ok=false when none remains before the exam.
func (r *planRun) nextWeekdaySlot(cursor time.Time) (daySlot, bool) {
	for _, slot := range r.avail.AvailableDates(cursor, r.examDate, true) {
		if r.hasCapacity(slot) {
			return slot, true
		}
	}
	return daySlot{}, false
}

// weightedShuffle builds the scheduling order for pending topics: each
// topic appears priority-many times, the expanded list is shuffled, then
// duplicates are removed keeping first occurrences. Topics of
// higher-priority subjects tend to surface earlier, but the exact order
// is randomized per run.
func weightedShuffle(topics []*topicInfo, rng *rand.Rand) []*topicInfo {
	weighted := make([]*topicInfo, 0, len(topics))
	for _, t := range topics {
		weight := t.Priority
		if weight < 1 {
			weight = 1
		}
		for i := 0; i < weight; i++ {
			weighted = append(weighted, t)
		}
	}

	rng.Shuffle(len(weighted), func(i, j int) {
		weighted[i], weighted[j] = weighted[j], weighted[i]
	})

	seen := make(map[int32]bool, len(topics))
	ordered := make([]*topicInfo, 0, len(topics))
	for _, t := range weighted {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		ordered = append(ordered, t)
	}
	return ordered
}
