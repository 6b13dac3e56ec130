package store

import (
	"context"
	"time"
)

// SessionType is the kind of study activity a session represents.
type SessionType string

const (
	SessionTypeNewTopic           SessionType = "new_topic"
	SessionTypeReview7            SessionType = "review_7"
	SessionTypeReview14           SessionType = "review_14"
	SessionTypeReview28           SessionType = "review_28"
	SessionTypeReinforcementExtra SessionType = "reinforcement_extra"
	SessionTypeDirectedMock       SessionType = "directed_mock"
	SessionTypeFullMock           SessionType = "full_mock"
	SessionTypeEssay              SessionType = "essay"
)

// SessionStatus is the completion state of a session.
type SessionStatus string

const (
	SessionStatusPending SessionStatus = "pending"
	SessionStatusDone    SessionStatus = "done"
)

// Session is the object representing one scheduled study activity.
// SubjectName and TopicDescription are snapshots captured at creation
// time; renaming a subject or topic later never rewrites them.
type Session struct {
	ID     int32
	UID    string
	PlanID int32
	// TopicID is nil for essay and mock-exam sessions.
	TopicID          *int32
	SubjectName      string
	TopicDescription string
	// Date is the scheduled calendar date, ISO form.
	Date   string
	Type   SessionType
	Status SessionStatus

	Notes              string
	QuestionsSolved    *int
	TimeStudiedSeconds int

	CreatedTs int64
	UpdatedTs int64
}

// FindSession is the find condition for session.
type FindSession struct {
	ID      *int32
	UID     *string
	PlanID  *int32
	TopicID *int32
	Type    *SessionType
	Status  *SessionStatus

	// DateBefore matches sessions strictly before the given ISO date.
	DateBefore *string
	// DateOnOrAfter matches sessions on or after the given ISO date.
	DateOnOrAfter *string

	Limit  *int
	Offset *int
}

// UpdateSession is the update request for session.
type UpdateSession struct {
	ID                 int32
	Date               *string
	Status             *SessionStatus
	Notes              *string
	QuestionsSolved    *int
	TimeStudiedSeconds *int
}

// DeleteSession is the delete request for session.
type DeleteSession struct {
	ID int32
}

// SessionMove reassigns one session to a new date during redistribution.
type SessionMove struct {
	ID   int32
	Date string
}

// ParseDate parses the session date to a UTC-midnight time.Time.
func (s *Session) ParseDate() (time.Time, error) {
	return time.ParseInLocation(DateLayout, s.Date, time.UTC)
}

func (s *Store) CreateSession(ctx context.Context, create *Session) (*Session, error) {
	return s.driver.CreateSession(ctx, create)
}

func (s *Store) ListSessions(ctx context.Context, find *FindSession) ([]*Session, error) {
	return s.driver.ListSessions(ctx, find)
}

// GetSession gets a single session matching the find condition, or nil.
func (s *Store) GetSession(ctx context.Context, find *FindSession) (*Session, error) {
	list, err := s.driver.ListSessions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateSession(ctx context.Context, update *UpdateSession) error {
	return s.driver.UpdateSession(ctx, update)
}

func (s *Store) DeleteSession(ctx context.Context, delete *DeleteSession) error {
	return s.driver.DeleteSession(ctx, delete)
}

// ReplaceSessions wipes all sessions of the plan and inserts the given
// batch in one transaction. It returns the number of sessions created.
func (s *Store) ReplaceSessions(ctx context.Context, planID int32, sessions []*Session) (int, error) {
	return s.driver.ReplaceSessions(ctx, planID, sessions)
}

// ApplySessionMoves reassigns session dates and increments the plan's
// postponement counter by one, all in one transaction.
func (s *Store) ApplySessionMoves(ctx context.Context, planID int32, moves []SessionMove) error {
	if err := s.driver.ApplySessionMoves(ctx, planID, moves); err != nil {
		return err
	}
	s.invalidatePlan(ctx, planID)
	return nil
}
