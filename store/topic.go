package store

import "context"

// TopicStatus is the completion state of a topic.
type TopicStatus string

const (
	TopicStatusPending TopicStatus = "pending"
	TopicStatusDone    TopicStatus = "done"
)

// Topic is the object representing a topic within a subject. A topic's
// lifecycle is driven by the status of its "new topic" session: marking
// that session done sets the completion date, reverting it clears it.
type Topic struct {
	ID          int32
	SubjectID   int32
	Description string
	Status      TopicStatus
	// CompletionDate is the ISO date the topic was mastered, set only
	// while Status is done.
	CompletionDate *string
}

// FindTopic is the find condition for topic.
type FindTopic struct {
	ID        *int32
	SubjectID *int32
	// PlanID filters topics through their subject's plan.
	PlanID *int32
	Status *TopicStatus
}

// UpdateTopic is the update request for topic.
type UpdateTopic struct {
	ID          int32
	Description *string
	Status      *TopicStatus
	// CompletionDate sets the completion date; ClearCompletionDate nulls
	// it. Setting both is invalid.
	CompletionDate      *string
	ClearCompletionDate bool
}

// DeleteTopic is the delete request for topic. Deleting a topic cascades
// to its sessions.
type DeleteTopic struct {
	ID int32
}

func (s *Store) CreateTopic(ctx context.Context, create *Topic) (*Topic, error) {
	return s.driver.CreateTopic(ctx, create)
}

func (s *Store) ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error) {
	return s.driver.ListTopics(ctx, find)
}

func (s *Store) UpdateTopic(ctx context.Context, update *UpdateTopic) error {
	return s.driver.UpdateTopic(ctx, update)
}

func (s *Store) DeleteTopic(ctx context.Context, delete *DeleteTopic) error {
	return s.driver.DeleteTopic(ctx, delete)
}
