package planner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ansochagas/editaliza/store"
)

func pendingTopics(n int, priority int) []*topicInfo {
	topics := make([]*topicInfo, 0, n)
	for i := 0; i < n; i++ {
		topics = append(topics, &topicInfo{
			ID:          int32(i + 1),
			SubjectName: "Direito",
			Priority:    priority,
			Description: "Tópico",
			Status:      store.TopicStatusPending,
		})
	}
	return topics
}

func TestWeightedShuffleDedupes(t *testing.T) {
	topics := []*topicInfo{
		{ID: 1, Priority: 5},
		{ID: 2, Priority: 1},
		{ID: 3, Priority: 3},
	}
	ordered := weightedShuffle(topics, rand.New(rand.NewSource(42)))

	require.Len(t, ordered, 3)
	seen := make(map[int32]bool)
	for _, topic := range ordered {
		require.False(t, seen[topic.ID])
		seen[topic.ID] = true
	}
}

func TestWeightedShuffleFavorsHighPriority(t *testing.T) {
	topics := []*topicInfo{
		{ID: 1, Priority: 5},
		{ID: 2, Priority: 1},
	}
	highFirst := 0
	for seed := int64(0); seed < 200; seed++ {
		ordered := weightedShuffle(topics, rand.New(rand.NewSource(seed)))
		if ordered[0].ID == 1 {
			highFirst++
		}
	}
	// With weights 5:1 the high-priority topic leads five times out of
	// six in expectation; well above half is enough here.
	require.Greater(t, highFirst, 120)
}

func TestWeightedShuffleClampsPriority(t *testing.T) {
	topics := []*topicInfo{{ID: 1, Priority: 0}, {ID: 2, Priority: -3}}
	ordered := weightedShuffle(topics, rand.New(rand.NewSource(42)))
	require.Len(t, ordered, 2)
}

func TestDistributeNewTopics(t *testing.T) {
	run := newTestRun(t, testPlan(), "2025-06-02")

	placed := run.distributeNewTopics(pendingTopics(10, 1))
	require.Equal(t, 10, placed)

	newTopicDates := make(map[string]int)
	for _, session := range run.agenda.All() {
		switch session.Type {
		case store.SessionTypeNewTopic:
			day, err := parseDate(session.Date)
			require.NoError(t, err)
			require.NotEqual(t, time.Saturday, day.Weekday())
			require.NotEqual(t, time.Sunday, day.Weekday())
			newTopicDates[session.Date]++
		case store.SessionTypeReview7, store.SessionTypeReview14, store.SessionTypeReview28:
			day, err := parseDate(session.Date)
			require.NoError(t, err)
			require.Equal(t, time.Saturday, day.Weekday())
		default:
			t.Fatalf("unexpected session type %q", session.Type)
		}
	}

	// Four sessions per day fills Monday through Wednesday.
	require.Equal(t, map[string]int{
		"2025-06-02": 4,
		"2025-06-03": 4,
		"2025-06-04": 2,
	}, newTopicDates)

	// No date is ever booked past its capacity.
	for dateKey := range run.agenda.byDate {
		day, err := parseDate(dateKey)
		require.NoError(t, err)
		require.LessOrEqual(t, run.agenda.Count(day), run.avail.MaxSessions(day), dateKey)
	}
}

func TestDistributeNewTopicsStopsWhenFull(t *testing.T) {
	plan := testPlan()
	// Exam on Wednesday: three weekday slots of four sessions each.
	plan.ExamDate = "2025-06-04"
	run := newTestRun(t, plan, "2025-06-02")

	placed := run.distributeNewTopics(pendingTopics(15, 1))
	require.Equal(t, 12, placed)

	count := 0
	for _, session := range run.agenda.All() {
		if session.Type == store.SessionTypeNewTopic {
			count++
		}
	}
	require.Equal(t, 12, count)
}

func TestDistributeNewTopicsAnchorsCascadeToStudyDate(t *testing.T) {
	run := newTestRun(t, testPlan(), "2025-06-02")

	run.distributeNewTopics(pendingTopics(1, 1))

	all := run.agenda.All()
	// One new-topic session today plus its 7- and 14-day reviews; the
	// 28-day target (2025-06-30) snaps past the exam and is dropped.
	require.Len(t, all, 3)
	require.Equal(t, store.SessionTypeNewTopic, all[0].Type)
	require.Equal(t, "2025-06-02", all[0].Date)
	require.Equal(t, "2025-06-14", all[1].Date)
	require.Equal(t, "2025-06-21", all[2].Date)
}
