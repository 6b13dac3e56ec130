package planner

import (
	"github.com/ansochagas/editaliza/store"
)

// scheduleEssaySessions books one essay-practice session on every Sunday
// between today and the exam date that has spare capacity. Runs only
// when the plan's essay flag is set; Sundays with a zero hour allocation
// never appear in the availability index and are skipped naturally.
func (r *planRun) scheduleEssaySessions() {
	if !r.plan.HasEssay {
		return
	}
	for _, slot := range r.avail.AvailableDates(r.today, r.examDate, false) {
		if slot.Weekday != essayDay {
			continue
		}
		if !r.hasCapacity(slot) {
			continue
		}
		r.agenda.Add(slot.Date, r.newSession(nil, store.SessionTypeEssay))
	}
}
