package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansochagas/editaliza/store"
)

func TestAgendaAddAndCount(t *testing.T) {
	a := newAgenda()
	day := date("2025-06-02")

	require.Equal(t, 0, a.Count(day))

	a.Add(day, &store.Session{UID: "a"})
	a.Add(day, &store.Session{UID: "b"})
	require.Equal(t, 2, a.Count(day))
	require.Equal(t, 0, a.Count(date("2025-06-03")))
	require.Equal(t, 2, a.Total())
}

func TestAgendaAddSetsDate(t *testing.T) {
	a := newAgenda()
	session := &store.Session{UID: "a"}
	a.Add(date("2025-06-02"), session)
	require.Equal(t, "2025-06-02", session.Date)
}

func TestAgendaAllOrdering(t *testing.T) {
	a := newAgenda()
	a.Add(date("2025-06-10"), &store.Session{UID: "c"})
	a.Add(date("2025-06-02"), &store.Session{UID: "a"})
	a.Add(date("2025-06-02"), &store.Session{UID: "b"})
	a.Add(date("2025-06-05"), &store.Session{UID: "d"})

	all := a.All()
	require.Len(t, all, 4)

	// Ascending by date, insertion order within a date.
	uids := make([]string, 0, len(all))
	for _, session := range all {
		uids = append(uids, session.UID)
	}
	require.Equal(t, []string{"a", "b", "d", "c"}, uids)
}
