package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansochagas/editaliza/store"
)

func doneTopics(subject string, n int) []*topicInfo {
	topics := make([]*topicInfo, 0, n)
	for i := 0; i < n; i++ {
		topics = append(topics, &topicInfo{
			ID:          int32(i + 1),
			SubjectName: subject,
			Description: fmt.Sprintf("%s tópico %d", subject, i+1),
			Status:      store.TopicStatusDone,
		})
	}
	return topics
}

// mockPlan holds two hours every day of the week at 60 minutes, so every
// date takes two sessions.
func mockPlan() *store.Plan {
	plan := testPlan()
	plan.StudyHours = [7]float64{2, 2, 2, 2, 2, 2, 2}
	plan.SessionDurationMinutes = 60
	return plan
}

func sessionsOfType(run *planRun, typ store.SessionType) []*store.Session {
	var result []*store.Session
	for _, session := range run.agenda.All() {
		if session.Type == typ {
			result = append(result, session)
		}
	}
	return result
}

func TestInjectDirectedMocksGroupsOfFour(t *testing.T) {
	run := newTestRun(t, mockPlan(), "2025-06-02")
	done := doneTopics("Direito", 5)
	// One topic of another subject, below the two-topic threshold.
	done = append(done, &topicInfo{ID: 99, SubjectName: "Inglês", Description: "Reading"})

	run.injectMockExams(done)

	directed := sessionsOfType(run, store.SessionTypeDirectedMock)
	require.Len(t, directed, 2, "five topics split 4+1, Inglês skipped")

	require.Equal(t, "Direito", directed[0].SubjectName)
	require.Equal(t, "2025-06-02", directed[0].Date)
	require.Equal(t,
		"Direito tópico 1, Direito tópico 2, Direito tópico 3, Direito tópico 4",
		directed[0].TopicDescription)

	// Second group lands three days after the first.
	require.Equal(t, "2025-06-05", directed[1].Date)
	require.Equal(t, "Direito tópico 5", directed[1].TopicDescription)
}

func TestInjectDirectedMocksSubjectOrdering(t *testing.T) {
	run := newTestRun(t, mockPlan(), "2025-06-02")
	done := append(doneTopics("Direito", 2), doneTopics("Português", 4)...)

	run.injectMockExams(done)

	directed := sessionsOfType(run, store.SessionTypeDirectedMock)
	require.NotEmpty(t, directed)
	// Português has more completed topics and goes first.
	require.Equal(t, "Português", directed[0].SubjectName)
}

func TestInjectBasicFullMockOffset(t *testing.T) {
	run := newTestRun(t, mockPlan(), "2025-06-02")

	run.injectBasicFullMock(run.today)

	mocks := sessionsOfType(run, store.SessionTypeFullMock)
	require.Len(t, mocks, 1)
	require.Equal(t, "2025-06-09", mocks[0].Date)
}

func TestInjectRecurringFullMocksSpacing(t *testing.T) {
	run := newTestRun(t, mockPlan(), "2025-06-02")

	run.injectRecurringFullMocks(run.today)

	mocks := sessionsOfType(run, store.SessionTypeFullMock)
	// Starts five days in, every three days, stops at the exam date:
	// 06-07, 06-10, ..., 07-01.
	require.Len(t, mocks, 9)
	require.Equal(t, "2025-06-07", mocks[0].Date)
	require.Equal(t, "2025-06-10", mocks[1].Date)
	require.Equal(t, "2025-07-01", mocks[8].Date)
}

func TestInjectRecurringFullMocksCapped(t *testing.T) {
	plan := mockPlan()
	plan.ExamDate = "2025-12-01"
	run := newTestRun(t, plan, "2025-06-02")

	run.injectRecurringFullMocks(run.today)

	require.Len(t, sessionsOfType(run, store.SessionTypeFullMock), maxRecurringMocks)
}

func TestInjectMockExamsGating(t *testing.T) {
	t.Run("no completed topics", func(t *testing.T) {
		run := newTestRun(t, mockPlan(), "2025-06-02")
		run.injectMockExams(nil)
		require.Equal(t, 0, run.agenda.Total())
	})

	t.Run("below basic mock threshold", func(t *testing.T) {
		run := newTestRun(t, mockPlan(), "2025-06-02")
		// Two completed topics: directed and recurring run, the basic
		// full mock seven days in does not.
		run.injectMockExams(doneTopics("Direito", 2))

		require.Len(t, sessionsOfType(run, store.SessionTypeDirectedMock), 1)
		for _, session := range sessionsOfType(run, store.SessionTypeFullMock) {
			require.NotEqual(t, "2025-06-09", session.Date)
		}
	})
}

func TestMaintenanceStart(t *testing.T) {
	run := newTestRun(t, mockPlan(), "2025-06-02")
	require.Equal(t, run.today, run.maintenanceStart())

	run.agenda.Add(date("2025-06-03"), run.newSession(nil, store.SessionTypeNewTopic))
	run.agenda.Add(date("2025-06-10"), run.newSession(nil, store.SessionTypeFullMock))
	require.Equal(t, date("2025-06-04"), run.maintenanceStart())
}

func TestMockExamsRespectCapacity(t *testing.T) {
	run := newTestRun(t, mockPlan(), "2025-06-02")

	run.injectMockExams(doneTopics("Direito", 8))

	for dateKey := range run.agenda.byDate {
		day, err := parseDate(dateKey)
		require.NoError(t, err)
		require.LessOrEqual(t, run.agenda.Count(day), run.avail.MaxSessions(day), dateKey)
	}
}
