package planner

import (
	"time"

	"github.com/ansochagas/editaliza/store"
)

const (
	// reviewDay is the weekday spaced-repetition reviews snap to.
	reviewDay = time.Saturday
	// essayDay is the weekday essay practice lands on.
	essayDay = time.Sunday

	// reinforceOffsetDays is how far ahead an ad-hoc reinforcement
	// session is placed.
	reinforceOffsetDays = 3

	// directedMockGroupSize is how many completed topics one directed
	// mock covers.
	directedMockGroupSize = 4
	// directedMockSpacingDays separates consecutive directed mocks.
	directedMockSpacingDays = 3
	// minTopicsForDirectedMock is the per-subject completed-topic
	// threshold for directed mocks.
	minTopicsForDirectedMock = 2

	// basicMockOffsetDays places the first full mock relative to the
	// maintenance start.
	basicMockOffsetDays = 7
	// minTopicsForBasicMock gates the basic full mock.
	minTopicsForBasicMock = 3

	// recurringMockStartOffsetDays places the recurring series start.
	recurringMockStartOffsetDays = 5
	// recurringMockSpacingDays separates recurring full mocks.
	recurringMockSpacingDays = 3
	// maxRecurringMocks caps the recurring series.
	maxRecurringMocks = 20
)

// reviewOffsets are the spaced-repetition intervals in days, in the
// order cascades are scheduled.
var reviewOffsets = []int{7, 14, 28}

// reviewTypeByOffset maps a review interval to its session type.
var reviewTypeByOffset = map[int]store.SessionType{
	7:  store.SessionTypeReview7,
	14: store.SessionTypeReview14,
	28: store.SessionTypeReview28,
}
