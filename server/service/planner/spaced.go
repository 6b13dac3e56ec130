package planner

import (
	"log/slog"
	"time"
)

// scheduleCompletedReviews places the spaced-repetition cascade for
// every topic already marked done, anchored to its completion date.
func (r *planRun) scheduleCompletedReviews(topics []*topicInfo) {
	for _, t := range topics {
		if t.CompletionDate == nil {
			continue
		}
		r.scheduleReviewCascade(t, *t.CompletionDate)
	}
}

// scheduleReviewCascade places the 7/14/28-day reviews for one topic,
// anchored to the given date (a completion date, or the study date for
// freshly distributed topics). Each review snaps to the first review-day
// Saturday on or after its target that still has spare capacity; when no
// such Saturday exists before the exam, the review is dropped silently.
// Capacity exhaustion near the exam date is expected, not an error.
func (r *planRun) scheduleReviewCascade(t *topicInfo, anchor time.Time) {
	for _, offset := range reviewOffsets {
		target := anchor.AddDate(0, 0, offset)
		if target.Before(r.today) || target.After(r.examDate) {
			continue
		}
		if !r.placeReview(t, target, offset) {
			slog.Debug("review dropped, no capacity before exam",
				"topic_id", t.ID,
				"offset_days", offset,
				"target", target.Format("2006-01-02"))
		}
	}
}

// placeReview books one review session on the first Saturday on/after
// target with spare capacity. Returns false if none exists.
func (r *planRun) placeReview(t *topicInfo, target time.Time, offset int) bool {
	for _, slot := range r.avail.AvailableDates(target, r.examDate, false) {
		if slot.Weekday != reviewDay {
			continue
		}
		if !r.hasCapacity(slot) {
			continue
		}
		r.agenda.Add(slot.Date, r.newSession(t, reviewTypeByOffset[offset]))
		return true
	}
	return false
}
