package planner

import (
	"context"

	"github.com/ansochagas/editaliza/store"
)

// Service defines the study schedule planning engine. Generation and
// replanning are the only operations that recompute the calendar; every
// other mutation touches a single session.
type Service interface {
	// Generate recomputes the full calendar for a plan: wipes prior
	// sessions, schedules spaced-repetition reviews for completed
	// topics, distributes pending topics with their review cascades,
	// places essay sessions when the plan asks for them, and fills
	// remaining capacity with mock exams once all content is covered.
	Generate(ctx context.Context, userID int32, planUID string) (*GenerateResult, error)

	// ReplanPreview computes, without persisting, where each overdue
	// pending session would move.
	ReplanPreview(ctx context.Context, userID int32, planUID string) (*ReplanPreview, error)

	// ReplanCommit performs the redistribution computed by the preview
	// and increments the plan's postponement counter by one.
	ReplanCommit(ctx context.Context, userID int32, planUID string) (*ReplanResult, error)

	// Reinforce schedules one ad-hoc follow-up session three days out,
	// copying the source session's content snapshot.
	Reinforce(ctx context.Context, userID int32, sessionUID string) (*store.Session, error)

	// Postpone moves a single session forward by N days, or to the next
	// date with a nonzero hour allocation when req.Next is set. It
	// returns the new ISO date.
	Postpone(ctx context.Context, userID int32, sessionUID string, req PostponeRequest) (string, error)

	// UpdateSessionStatus transitions a session between pending and
	// done. For new-topic sessions this drives the owning topic's
	// status and completion date.
	UpdateSessionStatus(ctx context.Context, userID int32, sessionUID string, status store.SessionStatus) error

	// RecordStudyTime accumulates studied seconds on a session and
	// returns the new total.
	RecordStudyTime(ctx context.Context, userID int32, sessionUID string, seconds int) (int, error)
}

// GenerateResult reports what a generation run produced.
type GenerateResult struct {
	SessionsCreated int `json:"sessions_created"`
	TopicsProcessed int `json:"topics_processed"`
}

// ReplanPreviewEntry describes one overdue session and its target date.
type ReplanPreviewEntry struct {
	SessionID    int32  `json:"session_id"`
	SessionUID   string `json:"session_uid"`
	OriginalDate string `json:"original_date"`
	NewDate      string `json:"new_date"`
}

// ReplanPreview is the read-only result of a redistribution dry run.
type ReplanPreview struct {
	HasOverdue    bool                 `json:"has_overdue"`
	Count         int                  `json:"count"`
	Preview       []ReplanPreviewEntry `json:"preview"`
	TotalToReplan int                  `json:"total_to_replan"`
}

// ReplanResult reports how many sessions a replan commit moved.
type ReplanResult struct {
	Count int `json:"count"`
}

// PostponeRequest selects the postpone target: an explicit day count, or
// the next study day when Next is set.
type PostponeRequest struct {
	Days int
	Next bool
}

// Store is the interface for store operations needed by the planner.
type Store interface {
	GetPlan(ctx context.Context, find *store.FindPlan) (*store.Plan, error)
	UpdatePlan(ctx context.Context, update *store.UpdatePlan) error
	ListSubjects(ctx context.Context, find *store.FindSubject) ([]*store.Subject, error)
	ListTopics(ctx context.Context, find *store.FindTopic) ([]*store.Topic, error)
	UpdateTopic(ctx context.Context, update *store.UpdateTopic) error
	GetSession(ctx context.Context, find *store.FindSession) (*store.Session, error)
	ListSessions(ctx context.Context, find *store.FindSession) ([]*store.Session, error)
	CreateSession(ctx context.Context, create *store.Session) (*store.Session, error)
	UpdateSession(ctx context.Context, update *store.UpdateSession) error
	ReplaceSessions(ctx context.Context, planID int32, sessions []*store.Session) (int, error)
	ApplySessionMoves(ctx context.Context, planID int32, moves []store.SessionMove) error
}
