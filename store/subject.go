package store

import "context"

// Subject is the object representing a subject within a plan. Subjects are
// never scheduled directly, only through their topics.
type Subject struct {
	ID     int32
	PlanID int32
	Name   string
	// Priority is an integer weight 1-5; higher priority subjects are
	// sampled earlier by the content distributor.
	Priority int
}

// FindSubject is the find condition for subject.
type FindSubject struct {
	ID     *int32
	PlanID *int32
}

// UpdateSubject is the update request for subject.
type UpdateSubject struct {
	ID       int32
	Name     *string
	Priority *int
}

// DeleteSubject is the delete request for subject. Deleting a subject
// cascades to its topics and their sessions.
type DeleteSubject struct {
	ID int32
}

func (s *Store) CreateSubject(ctx context.Context, create *Subject) (*Subject, error) {
	return s.driver.CreateSubject(ctx, create)
}

func (s *Store) ListSubjects(ctx context.Context, find *FindSubject) ([]*Subject, error) {
	return s.driver.ListSubjects(ctx, find)
}

func (s *Store) UpdateSubject(ctx context.Context, update *UpdateSubject) error {
	return s.driver.UpdateSubject(ctx, update)
}

func (s *Store) DeleteSubject(ctx context.Context, delete *DeleteSubject) error {
	return s.driver.DeleteSubject(ctx, delete)
}
