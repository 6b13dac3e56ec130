package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/ansochagas/editaliza/store"
)

// injectMockExams fills remaining capacity with exam simulations once
// the plan is in maintenance mode (no pending topics). The three phases
// are independently gated and all may run in one invocation; every slot
// lookup re-checks the agenda so the phases never overbook a date.
func (r *planRun) injectMockExams(done []*topicInfo) {
	start := r.maintenanceStart()
	total := len(done)

	// Directed mocks require full topic coverage.
	if total > 0 {
		r.injectDirectedMocks(done, start)
	}
	if total >= minTopicsForBasicMock {
		r.injectBasicFullMock(start)
	}
	if total > 0 {
		r.injectRecurringFullMocks(start)
	}
}

// maintenanceStart is the day after the last scheduled new-topic
// session, or today when the run scheduled none.
func (r *planRun) maintenanceStart() time.Time {
	var last time.Time
	for _, session := range r.agenda.All() {
		if session.Type != store.SessionTypeNewTopic {
			continue
		}
		if d, err := parseDate(session.Date); err == nil && d.After(last) {
			last = d
		}
	}
	if last.IsZero() {
		return r.today
	}
	return last.AddDate(0, 0, 1)
}

// injectDirectedMocks places one subject-directed mock per group of
// four completed topics, three days apart, subjects with the most
// completed topics first. Subjects with fewer than two completed topics
// are skipped.
func (r *planRun) injectDirectedMocks(done []*topicInfo, start time.Time) {
	bySubject := make(map[string][]*topicInfo)
	for _, t := range done {
		bySubject[t.SubjectName] = append(bySubject[t.SubjectName], t)
	}

	subjects := make([]string, 0, len(bySubject))
	for name, topics := range bySubject {
		if len(topics) >= minTopicsForDirectedMock {
			subjects = append(subjects, name)
		}
	}
	sort.Slice(subjects, func(i, j int) bool {
		if len(bySubject[subjects[i]]) != len(bySubject[subjects[j]]) {
			return len(bySubject[subjects[i]]) > len(bySubject[subjects[j]])
		}
		return subjects[i] < subjects[j]
	})

	cursor := start
	for _, name := range subjects {
		topics := bySubject[name]
		for from := 0; from < len(topics); from += directedMockGroupSize {
			to := from + directedMockGroupSize
			if to > len(topics) {
				to = len(topics)
			}
			descriptions := make([]string, 0, to-from)
			for _, t := range topics[from:to] {
				descriptions = append(descriptions, t.Description)
			}

			slot, ok := r.nextSlot(cursor)
			if !ok {
				return
			}
			session := r.newSession(nil, store.SessionTypeDirectedMock)
			session.SubjectName = name
			session.TopicDescription = strings.Join(descriptions, ", ")
			r.agenda.Add(slot.Date, session)
			cursor = slot.Date.AddDate(0, 0, directedMockSpacingDays)
		}
	}
}

// injectBasicFullMock places one full mock seven days into maintenance.
func (r *planRun) injectBasicFullMock(start time.Time) {
	slot, ok := r.nextSlot(start.AddDate(0, 0, basicMockOffsetDays))
	if !ok {
		return
	}
	r.agenda.Add(slot.Date, r.newSession(nil, store.SessionTypeFullMock))
}

// injectRecurringFullMocks places up to maxRecurringMocks full mocks
// every three days, starting five days into maintenance, stopping early
// when no slot remains before the exam.
func (r *planRun) injectRecurringFullMocks(start time.Time) {
	target := start.AddDate(0, 0, recurringMockStartOffsetDays)
	for i := 0; i < maxRecurringMocks; i++ {
		slot, ok := r.nextSlot(target)
		if !ok {
			return
		}
		r.agenda.Add(slot.Date, r.newSession(nil, store.SessionTypeFullMock))
		target = slot.Date.AddDate(0, 0, recurringMockSpacingDays)
	}
}

// nextSlot finds the first date on/after from, over all weekdays, with
// spare capacity.
func (r *planRun) nextSlot(from time.Time) (daySlot, bool) {
	if from.Before(r.today) {
		from = r.today
	}
	for _, slot := range r.avail.AvailableDates(from, r.examDate, false) {
		if r.hasCapacity(slot) {
			return slot, true
		}
	}
	return daySlot{}, false
}
