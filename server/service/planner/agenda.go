package planner

import (
	"sort"
	"time"

	"github.com/ansochagas/editaliza/store"
)

// agenda is the in-memory per-date bucket of provisional sessions built
// during one planning run. Nothing in it is persisted until the run
// commits. Add never checks capacity itself; callers consult the
// availability index before every insertion.
type agenda struct {
	byDate map[string][]*store.Session
}

func newAgenda() *agenda {
	return &agenda{byDate: make(map[string][]*store.Session)}
}

// Add appends a provisional session to the given date.
func (a *agenda) Add(date time.Time, session *store.Session) {
	key := date.Format(store.DateLayout)
	session.Date = key
	a.byDate[key] = append(a.byDate[key], session)
}

// Count returns how many sessions are provisionally booked on the date.
func (a *agenda) Count(date time.Time) int {
	return len(a.byDate[date.Format(store.DateLayout)])
}

// Total returns the number of sessions across all dates.
func (a *agenda) Total() int {
	total := 0
	for _, sessions := range a.byDate {
		total += len(sessions)
	}
	return total
}

// All returns every provisional session ordered by date, preserving
// insertion order within a date.
func (a *agenda) All() []*store.Session {
	dates := make([]string, 0, len(a.byDate))
	for date := range a.byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	sessions := make([]*store.Session, 0, a.Total())
	for _, date := range dates {
		sessions = append(sessions, a.byDate[date]...)
	}
	return sessions
}
