package planner

import (
	"time"

	"github.com/ansochagas/editaliza/store"
)

// redistributor reassigns overdue pending sessions to the next dates
// with spare minute budget. Both the preview and the commit paths run
// this exact computation; only the commit writes the result.
type redistributor struct {
	plan          *store.Plan
	today         time.Time
	examDate      time.Time
	minutesByDate map[string]int
}

// newRedistributor indexes the minute load of every already-scheduled
// session from today onward. Sessions still dated in the past do not
// count against future budgets.
func newRedistributor(plan *store.Plan, today, examDate time.Time, existing []*store.Session) *redistributor {
	todayKey := today.Format(store.DateLayout)
	minutes := make(map[string]int)
	for _, session := range existing {
		if session.Date >= todayKey {
			minutes[session.Date] += plan.SessionDurationMinutes
		}
	}
	return &redistributor{
		plan:          plan,
		today:         today,
		examDate:      examDate,
		minutesByDate: minutes,
	}
}

// place computes the target date for each overdue session, in the given
// order, keeping a forward-only cursor. Sessions that cannot fit before
// the exam date are omitted from the result and stay overdue; exhaustion
// is not an error.
func (rd *redistributor) place(overdue []*store.Session) []ReplanPreviewEntry {
	entries := []ReplanPreviewEntry{}
	cursor := rd.today

	for _, session := range overdue {
		target, ok := rd.nextFit(cursor)
		if !ok {
			break
		}
		key := target.Format(store.DateLayout)
		rd.minutesByDate[key] += rd.plan.SessionDurationMinutes
		cursor = target
		entries = append(entries, ReplanPreviewEntry{
			SessionID:    session.ID,
			SessionUID:   session.UID,
			OriginalDate: session.Date,
			NewDate:      key,
		})
	}
	return entries
}

// nextFit scans forward day by day from the cursor for a date whose
// scheduled minutes plus one more session stay within that weekday's
// minute budget. Only zero-hour days are skipped; Saturday and Sunday
// participate whenever their weekly allocation is positive.
func (rd *redistributor) nextFit(cursor time.Time) (time.Time, bool) {
	duration := rd.plan.SessionDurationMinutes
	for d := cursor; !d.After(rd.examDate); d = d.AddDate(0, 0, 1) {
		budget := int(rd.plan.HoursForWeekday(d.Weekday()) * 60)
		if budget <= 0 {
			continue
		}
		if rd.minutesByDate[d.Format(store.DateLayout)]+duration <= budget {
			return d, true
		}
	}
	return time.Time{}, false
}
