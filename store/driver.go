package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Plan model related methods.
	CreatePlan(ctx context.Context, create *Plan) (*Plan, error)
	ListPlans(ctx context.Context, find *FindPlan) ([]*Plan, error)
	UpdatePlan(ctx context.Context, update *UpdatePlan) error
	DeletePlan(ctx context.Context, delete *DeletePlan) error

	// Subject model related methods.
	CreateSubject(ctx context.Context, create *Subject) (*Subject, error)
	ListSubjects(ctx context.Context, find *FindSubject) ([]*Subject, error)
	UpdateSubject(ctx context.Context, update *UpdateSubject) error
	DeleteSubject(ctx context.Context, delete *DeleteSubject) error

	// Topic model related methods.
	CreateTopic(ctx context.Context, create *Topic) (*Topic, error)
	ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error)
	UpdateTopic(ctx context.Context, update *UpdateTopic) error
	DeleteTopic(ctx context.Context, delete *DeleteTopic) error

	// Session model related methods.
	CreateSession(ctx context.Context, create *Session) (*Session, error)
	ListSessions(ctx context.Context, find *FindSession) ([]*Session, error)
	UpdateSession(ctx context.Context, update *UpdateSession) error
	DeleteSession(ctx context.Context, delete *DeleteSession) error

	// ReplaceSessions deletes all sessions of the plan and inserts the
	// given batch atomically. A failure rolls back the whole write.
	ReplaceSessions(ctx context.Context, planID int32, sessions []*Session) (int, error)

	// ApplySessionMoves updates session dates and increments the plan's
	// postponement counter by one, atomically.
	ApplySessionMoves(ctx context.Context, planID int32, moves []SessionMove) error
}
