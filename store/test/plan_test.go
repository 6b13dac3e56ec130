package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansochagas/editaliza/store"
)

func TestPlanStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)
	require.Greater(t, plan.ID, int32(0))
	require.Equal(t, 0, plan.PostponementCount)
	require.Greater(t, plan.CreatedTs, int64(0))

	found, err := ts.GetPlan(ctx, &store.FindPlan{UID: &plan.UID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, plan.ID, found.ID)
	require.Equal(t, [7]float64{0, 4, 4, 4, 4, 4, 4}, found.StudyHours)
	require.Equal(t, store.ReviewModeFull, found.ReviewMode)

	// Ownership filter.
	wrongOwner := int32(99)
	found, err = ts.GetPlan(ctx, &store.FindPlan{UID: &plan.UID, OwnerID: &wrongOwner})
	require.NoError(t, err)
	require.Nil(t, found)

	hours := [7]float64{1, 1, 1, 1, 1, 1, 1}
	examDate := "2025-08-01"
	err = ts.UpdatePlan(ctx, &store.UpdatePlan{ID: plan.ID, StudyHours: &hours, ExamDate: &examDate})
	require.NoError(t, err)

	found, err = ts.GetPlan(ctx, &store.FindPlan{ID: &plan.ID})
	require.NoError(t, err)
	require.Equal(t, hours, found.StudyHours)
	require.Equal(t, examDate, found.ExamDate)

	err = ts.DeletePlan(ctx, &store.DeletePlan{ID: plan.ID})
	require.NoError(t, err)
	err = ts.DeletePlan(ctx, &store.DeletePlan{ID: plan.ID})
	require.Error(t, err)
}

func TestPlanCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)

	// Warm the cache.
	_, err = ts.GetPlan(ctx, &store.FindPlan{UID: &plan.UID})
	require.NoError(t, err)

	count := 7
	err = ts.UpdatePlan(ctx, &store.UpdatePlan{ID: plan.ID, PostponementCount: &count})
	require.NoError(t, err)

	found, err := ts.GetPlan(ctx, &store.FindPlan{UID: &plan.UID})
	require.NoError(t, err)
	require.Equal(t, 7, found.PostponementCount)
}

func TestPlanCascadeDelete(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	plan, err := createTestingPlan(ctx, ts, 1)
	require.NoError(t, err)
	subject, err := ts.CreateSubject(ctx, &store.Subject{PlanID: plan.ID, Name: "Direito", Priority: 3})
	require.NoError(t, err)
	topic, err := ts.CreateTopic(ctx, &store.Topic{SubjectID: subject.ID, Description: "Princípios"})
	require.NoError(t, err)
	_, err = ts.CreateSession(ctx, &store.Session{
		UID:     "cascade-session",
		PlanID:  plan.ID,
		TopicID: &topic.ID,
		Date:    "2025-06-02",
		Type:    store.SessionTypeNewTopic,
	})
	require.NoError(t, err)

	err = ts.DeletePlan(ctx, &store.DeletePlan{ID: plan.ID})
	require.NoError(t, err)

	subjects, err := ts.ListSubjects(ctx, &store.FindSubject{PlanID: &plan.ID})
	require.NoError(t, err)
	require.Empty(t, subjects)
	topics, err := ts.ListTopics(ctx, &store.FindTopic{PlanID: &plan.ID})
	require.NoError(t, err)
	require.Empty(t, topics)
	sessions, err := ts.ListSessions(ctx, &store.FindSession{PlanID: &plan.ID})
	require.NoError(t, err)
	require.Empty(t, sessions)
}
