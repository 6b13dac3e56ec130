package planner

import (
	"context"
	"sort"

	"github.com/ansochagas/editaliza/store"
)

// mockStore is an in-memory implementation of the Store interface for
// testing. It mirrors the ordering guarantees of the SQL drivers:
// sessions list by date then id.
type mockStore struct {
	plans    []*store.Plan
	subjects []*store.Subject
	topics   []*store.Topic
	sessions []*store.Session

	nextSessionID int32

	replaceCalls int
	moveCalls    int
	updateCalls  int
}

func newMockStore() *mockStore {
	return &mockStore{nextSessionID: 1}
}

func (m *mockStore) GetPlan(_ context.Context, find *store.FindPlan) (*store.Plan, error) {
	for _, plan := range m.plans {
		if find.ID != nil && plan.ID != *find.ID {
			continue
		}
		if find.UID != nil && plan.UID != *find.UID {
			continue
		}
		if find.OwnerID != nil && plan.OwnerID != *find.OwnerID {
			continue
		}
		return plan, nil
	}
	return nil, nil
}

func (m *mockStore) UpdatePlan(_ context.Context, update *store.UpdatePlan) error {
	for _, plan := range m.plans {
		if plan.ID != update.ID {
			continue
		}
		if update.PostponementCount != nil {
			plan.PostponementCount = *update.PostponementCount
		}
	}
	return nil
}

func (m *mockStore) ListSubjects(_ context.Context, find *store.FindSubject) ([]*store.Subject, error) {
	result := make([]*store.Subject, 0)
	for _, subject := range m.subjects {
		if find.PlanID != nil && subject.PlanID != *find.PlanID {
			continue
		}
		result = append(result, subject)
	}
	return result, nil
}

func (m *mockStore) ListTopics(_ context.Context, find *store.FindTopic) ([]*store.Topic, error) {
	subjectPlan := make(map[int32]int32)
	for _, subject := range m.subjects {
		subjectPlan[subject.ID] = subject.PlanID
	}
	result := make([]*store.Topic, 0)
	for _, topic := range m.topics {
		if find.PlanID != nil && subjectPlan[topic.SubjectID] != *find.PlanID {
			continue
		}
		if find.SubjectID != nil && topic.SubjectID != *find.SubjectID {
			continue
		}
		if find.Status != nil && topic.Status != *find.Status {
			continue
		}
		result = append(result, topic)
	}
	return result, nil
}

func (m *mockStore) UpdateTopic(_ context.Context, update *store.UpdateTopic) error {
	for _, topic := range m.topics {
		if topic.ID != update.ID {
			continue
		}
		if update.Status != nil {
			topic.Status = *update.Status
		}
		if update.CompletionDate != nil {
			topic.CompletionDate = update.CompletionDate
		} else if update.ClearCompletionDate {
			topic.CompletionDate = nil
		}
	}
	return nil
}

func (m *mockStore) GetSession(_ context.Context, find *store.FindSession) (*store.Session, error) {
	list, err := m.ListSessions(context.Background(), find)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (m *mockStore) ListSessions(_ context.Context, find *store.FindSession) ([]*store.Session, error) {
	result := make([]*store.Session, 0)
	for _, session := range m.sessions {
		if find.ID != nil && session.ID != *find.ID {
			continue
		}
		if find.UID != nil && session.UID != *find.UID {
			continue
		}
		if find.PlanID != nil && session.PlanID != *find.PlanID {
			continue
		}
		if find.Status != nil && session.Status != *find.Status {
			continue
		}
		if find.Type != nil && session.Type != *find.Type {
			continue
		}
		if find.DateBefore != nil && session.Date >= *find.DateBefore {
			continue
		}
		if find.DateOnOrAfter != nil && session.Date < *find.DateOnOrAfter {
			continue
		}
		result = append(result, session)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) CreateSession(_ context.Context, create *store.Session) (*store.Session, error) {
	create.ID = m.nextSessionID
	m.nextSessionID++
	if create.Status == "" {
		create.Status = store.SessionStatusPending
	}
	m.sessions = append(m.sessions, create)
	return create, nil
}

func (m *mockStore) UpdateSession(_ context.Context, update *store.UpdateSession) error {
	m.updateCalls++
	for _, session := range m.sessions {
		if session.ID != update.ID {
			continue
		}
		if update.Date != nil {
			session.Date = *update.Date
		}
		if update.Status != nil {
			session.Status = *update.Status
		}
		if update.Notes != nil {
			session.Notes = *update.Notes
		}
		if update.QuestionsSolved != nil {
			session.QuestionsSolved = update.QuestionsSolved
		}
		if update.TimeStudiedSeconds != nil {
			session.TimeStudiedSeconds = *update.TimeStudiedSeconds
		}
	}
	return nil
}

func (m *mockStore) ReplaceSessions(_ context.Context, planID int32, sessions []*store.Session) (int, error) {
	m.replaceCalls++
	kept := make([]*store.Session, 0)
	for _, session := range m.sessions {
		if session.PlanID != planID {
			kept = append(kept, session)
		}
	}
	m.sessions = kept
	for _, session := range sessions {
		session.ID = m.nextSessionID
		m.nextSessionID++
		m.sessions = append(m.sessions, session)
	}
	return len(sessions), nil
}

func (m *mockStore) ApplySessionMoves(_ context.Context, planID int32, moves []store.SessionMove) error {
	m.moveCalls++
	byID := make(map[int32]*store.Session)
	for _, session := range m.sessions {
		byID[session.ID] = session
	}
	for _, move := range moves {
		if session, ok := byID[move.ID]; ok && session.PlanID == planID {
			session.Date = move.Date
		}
	}
	for _, plan := range m.plans {
		if plan.ID == planID {
			plan.PostponementCount++
		}
	}
	return nil
}
