package planner

import (
	"math/rand"
	"time"

	"github.com/ansochagas/editaliza/internal/util"
	"github.com/ansochagas/editaliza/store"
)

// topicInfo is a topic joined with its subject's name and priority, the
// form the scheduling phases consume.
type topicInfo struct {
	ID             int32
	SubjectName    string
	Priority       int
	Description    string
	Status         store.TopicStatus
	CompletionDate *time.Time
}

// planRun carries the state of one generation run: the plan under
// computation, the day the run sees as "today", the availability index,
// and the agenda accumulating provisional sessions. A run is strictly
// single-threaded; it holds no locks and touches no shared state.
type planRun struct {
	plan     *store.Plan
	today    time.Time
	examDate time.Time
	avail    *availabilityIndex
	agenda   *agenda
	rng      *rand.Rand
}

func newPlanRun(plan *store.Plan, today, examDate time.Time, rng *rand.Rand) *planRun {
	return &planRun{
		plan:     plan,
		today:    today,
		examDate: examDate,
		avail:    newAvailabilityIndex(plan),
		agenda:   newAgenda(),
		rng:      rng,
	}
}

// newSession builds a provisional session with the content snapshot
// copied in. Subject name and topic description are value copies by
// contract: later renames must not rewrite scheduled history.
func (r *planRun) newSession(t *topicInfo, typ store.SessionType) *store.Session {
	session := &store.Session{
		UID:    util.GenShortUID(),
		PlanID: r.plan.ID,
		Type:   typ,
		Status: store.SessionStatusPending,
	}
	if t != nil {
		id := t.ID
		session.TopicID = &id
		session.SubjectName = t.SubjectName
		session.TopicDescription = t.Description
	}
	return session
}

// hasCapacity reports whether the date can take one more session given
// what the agenda already holds.
func (r *planRun) hasCapacity(slot daySlot) bool {
	return r.agenda.Count(slot.Date) < slot.MaxSessions
}

// parseDate parses an ISO date to UTC midnight.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(store.DateLayout, s, time.UTC)
}

// truncateToDay normalizes a wall-clock time to its UTC calendar date.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
