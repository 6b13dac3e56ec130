package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansochagas/editaliza/store"
)

func createTestingSession(ctx context.Context, ts *store.Store, planID int32, uid, date string) (*store.Session, error) {
	return ts.CreateSession(ctx, &store.Session{
		UID:    uid,
		PlanID: planID,
		Date:   date,
		Type:   store.SessionTypeNewTopic,
	})
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)

	session, err := createTestingSession(ctx, ts, plan.ID, "s1", "2025-06-02")
	require.NoError(t, err)
	require.Greater(t, session.ID, int32(0))
	require.Equal(t, store.SessionStatusPending, session.Status)

	uid := "s1"
	found, err := ts.GetSession(ctx, &store.FindSession{UID: &uid})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Nil(t, found.TopicID)
	require.Equal(t, 0, found.TimeStudiedSeconds)

	done := store.SessionStatusDone
	seconds := 1500
	err = ts.UpdateSession(ctx, &store.UpdateSession{ID: session.ID, Status: &done, TimeStudiedSeconds: &seconds})
	require.NoError(t, err)

	found, err = ts.GetSession(ctx, &store.FindSession{UID: &uid})
	require.NoError(t, err)
	require.Equal(t, store.SessionStatusDone, found.Status)
	require.Equal(t, 1500, found.TimeStudiedSeconds)
}

func TestSessionListOrderingAndFilters(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)

	// Inserted out of chronological order on purpose.
	for i, date := range []string{"2025-06-10", "2025-06-02", "2025-06-05", "2025-06-02"} {
		_, err := createTestingSession(ctx, ts, plan.ID, fmt.Sprintf("s%d", i), date)
		require.NoError(t, err)
	}

	sessions, err := ts.ListSessions(ctx, &store.FindSession{PlanID: &plan.ID})
	require.NoError(t, err)
	require.Len(t, sessions, 4)
	// Date ascending, id ascending within a date.
	require.Equal(t, []string{"s1", "s3", "s2", "s0"}, []string{
		sessions[0].UID, sessions[1].UID, sessions[2].UID, sessions[3].UID,
	})

	cutoff := "2025-06-05"
	overdue, err := ts.ListSessions(ctx, &store.FindSession{PlanID: &plan.ID, DateBefore: &cutoff})
	require.NoError(t, err)
	require.Len(t, overdue, 2)

	upcoming, err := ts.ListSessions(ctx, &store.FindSession{PlanID: &plan.ID, DateOnOrAfter: &cutoff})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
}

func TestReplaceSessions(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)
	other, err := createTestingPlan(ctx, ts, 2)
	require.NoError(t, err)

	_, err = createTestingSession(ctx, ts, plan.ID, "old", "2025-06-02")
	require.NoError(t, err)
	_, err = createTestingSession(ctx, ts, other.ID, "untouched", "2025-06-02")
	require.NoError(t, err)

	batch := []*store.Session{
		{UID: "new-1", PlanID: plan.ID, Date: "2025-06-03", Type: store.SessionTypeNewTopic},
		{UID: "new-2", PlanID: plan.ID, Date: "2025-06-07", Type: store.SessionTypeReview7},
	}
	created, err := ts.ReplaceSessions(ctx, plan.ID, batch)
	require.NoError(t, err)
	require.Equal(t, 2, created)
	require.Greater(t, batch[0].ID, int32(0))

	sessions, err := ts.ListSessions(ctx, &store.FindSession{PlanID: &plan.ID})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	for _, session := range sessions {
		require.NotEqual(t, "old", session.UID)
	}

	// The other plan's calendar is untouched.
	sessions, err = ts.ListSessions(ctx, &store.FindSession{PlanID: &other.ID})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}

func TestApplySessionMoves(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)
	session, err := createTestingSession(ctx, ts, plan.ID, "s1", "2025-05-28")
	require.NoError(t, err)

	err = ts.ApplySessionMoves(ctx, plan.ID, []store.SessionMove{{ID: session.ID, Date: "2025-06-02"}})
	require.NoError(t, err)

	uid := "s1"
	found, err := ts.GetSession(ctx, &store.FindSession{UID: &uid})
	require.NoError(t, err)
	require.Equal(t, "2025-06-02", found.Date)

	// The counter advances once per replan, and the cached plan is
	// invalidated so the new value is visible immediately.
	foundPlan, err := ts.GetPlan(ctx, &store.FindPlan{UID: &plan.UID})
	require.NoError(t, err)
	require.Equal(t, 1, foundPlan.PostponementCount)
}

func TestTopicCompletionRoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)
	subject, err := ts.CreateSubject(ctx, &store.Subject{PlanID: plan.ID, Name: "Direito", Priority: 3})
	require.NoError(t, err)
	topic, err := ts.CreateTopic(ctx, &store.Topic{SubjectID: subject.ID, Description: "Princípios"})
	require.NoError(t, err)
	require.Equal(t, store.TopicStatusPending, topic.Status)
	require.Nil(t, topic.CompletionDate)

	doneStatus := store.TopicStatusDone
	completion := "2025-06-02"
	err = ts.UpdateTopic(ctx, &store.UpdateTopic{ID: topic.ID, Status: &doneStatus, CompletionDate: &completion})
	require.NoError(t, err)

	topics, err := ts.ListTopics(ctx, &store.FindTopic{PlanID: &plan.ID, Status: &doneStatus})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	require.NotNil(t, topics[0].CompletionDate)
	require.Equal(t, completion, *topics[0].CompletionDate)

	pendingStatus := store.TopicStatusPending
	err = ts.UpdateTopic(ctx, &store.UpdateTopic{ID: topic.ID, Status: &pendingStatus, ClearCompletionDate: true})
	require.NoError(t, err)

	topics, err = ts.ListTopics(ctx, &store.FindTopic{PlanID: &plan.ID})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	require.Equal(t, store.TopicStatusPending, topics[0].Status)
	require.Nil(t, topics[0].CompletionDate)
}
