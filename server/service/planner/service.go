// Package planner implements the study schedule planning engine: the
// component that turns a plan's constraints (exam date, weekly hour
// budget, session length, topic set) into a day-by-day calendar of
// study sessions, and that redistributes missed work on request.
//
// A planning run reads plan state, computes entirely in memory, then
// commits all resulting sessions in one transaction. Capacity
// exhaustion near the exam date is never an error; runs report whatever
// they managed to place.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ansochagas/editaliza/internal/util"
	"github.com/ansochagas/editaliza/store"
)

// Errors that can be checked with errors.Is.
var (
	// ErrPlanNotFound is returned when the plan is absent or owned by a
	// different account.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrSessionNotFound is returned when the session is absent or its
	// plan is owned by a different account.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoStudyHours is returned when a plan's weekly hour budget sums
	// to zero; generation refuses and leaves existing sessions alone.
	ErrNoStudyHours = errors.New("plan has no study hours configured")
	// ErrInvalidPostpone is returned when a postpone request is
	// malformed or would land beyond the exam date.
	ErrInvalidPostpone = errors.New("invalid postpone request")
)

type service struct {
	store Store
	now   func() time.Time
	rng   *rand.Rand
	locks *planLocker
}

// NewService creates the planning engine on top of the given store.
func NewService(st Store) Service {
	return &service{
		store: st,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		locks: newPlanLocker(),
	}
}

func (s *service) Generate(ctx context.Context, userID int32, planUID string) (*GenerateResult, error) {
	start := time.Now()
	defer func() {
		slog.Debug("schedule generation finished",
			"plan_uid", planUID,
			"duration_ms", time.Since(start).Milliseconds())
	}()

	if err := s.locks.acquire(ctx, planUID); err != nil {
		return nil, fmt.Errorf("failed to acquire plan lock: %w", err)
	}
	defer s.locks.release(planUID)

	plan, err := s.getPlan(ctx, userID, planUID)
	if err != nil {
		return nil, err
	}
	if plan.TotalWeeklyHours() <= 0 {
		return nil, ErrNoStudyHours
	}
	examDate, err := plan.ParseExamDate()
	if err != nil {
		return nil, fmt.Errorf("failed to parse exam date: %w", err)
	}

	topics, err := s.loadTopics(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	var pending, done []*topicInfo
	for _, t := range topics {
		if t.Status == store.TopicStatusDone {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}

	today := truncateToDay(s.now())
	run := newPlanRun(plan, today, examDate, s.rng)

	run.scheduleCompletedReviews(done)
	run.distributeNewTopics(pending)
	run.scheduleEssaySessions()
	if len(pending) == 0 {
		run.injectMockExams(done)
	}

	sessions := run.agenda.All()
	created, err := s.store.ReplaceSessions(ctx, plan.ID, sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to persist generated sessions: %w", err)
	}

	return &GenerateResult{
		SessionsCreated: created,
		TopicsProcessed: distinctTopics(sessions),
	}, nil
}

func (s *service) ReplanPreview(ctx context.Context, userID int32, planUID string) (*ReplanPreview, error) {
	plan, err := s.getPlan(ctx, userID, planUID)
	if err != nil {
		return nil, err
	}
	preview, _, err := s.computeRedistribution(ctx, plan)
	if err != nil {
		return nil, err
	}
	return preview, nil
}

func (s *service) ReplanCommit(ctx context.Context, userID int32, planUID string) (*ReplanResult, error) {
	if err := s.locks.acquire(ctx, planUID); err != nil {
		return nil, fmt.Errorf("failed to acquire plan lock: %w", err)
	}
	defer s.locks.release(planUID)

	plan, err := s.getPlan(ctx, userID, planUID)
	if err != nil {
		return nil, err
	}
	_, moves, err := s.computeRedistribution(ctx, plan)
	if err != nil {
		return nil, err
	}
	// The postponement counter advances once per replan run even when
	// nothing could be moved.
	if err := s.store.ApplySessionMoves(ctx, plan.ID, moves); err != nil {
		return nil, fmt.Errorf("failed to apply session moves: %w", err)
	}
	return &ReplanResult{Count: len(moves)}, nil
}

// computeRedistribution runs the shared overdue-redistribution
// algorithm against the persisted calendar.
func (s *service) computeRedistribution(ctx context.Context, plan *store.Plan) (*ReplanPreview, []store.SessionMove, error) {
	examDate, err := plan.ParseExamDate()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse exam date: %w", err)
	}
	today := truncateToDay(s.now())
	todayKey := today.Format(store.DateLayout)

	existing, err := s.store.ListSessions(ctx, &store.FindSession{PlanID: &plan.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	// Overdue sessions keep their original date-then-id order, which is
	// how the store lists them.
	pendingStatus := store.SessionStatusPending
	var overdue []*store.Session
	for _, session := range existing {
		if session.Status == pendingStatus && session.Date < todayKey {
			overdue = append(overdue, session)
		}
	}

	entries := newRedistributor(plan, today, examDate, existing).place(overdue)
	moves := make([]store.SessionMove, 0, len(entries))
	for _, entry := range entries {
		moves = append(moves, store.SessionMove{ID: entry.SessionID, Date: entry.NewDate})
	}

	return &ReplanPreview{
		HasOverdue:    len(overdue) > 0,
		Count:         len(entries),
		Preview:       entries,
		TotalToReplan: len(overdue),
	}, moves, nil
}

func (s *service) Reinforce(ctx context.Context, userID int32, sessionUID string) (*store.Session, error) {
	session, _, err := s.getSession(ctx, userID, sessionUID)
	if err != nil {
		return nil, err
	}

	date := truncateToDay(s.now()).AddDate(0, 0, reinforceOffsetDays)
	create := &store.Session{
		UID:              util.GenShortUID(),
		PlanID:           session.PlanID,
		TopicID:          session.TopicID,
		SubjectName:      session.SubjectName,
		TopicDescription: session.TopicDescription,
		Date:             date.Format(store.DateLayout),
		Type:             store.SessionTypeReinforcementExtra,
		Status:           store.SessionStatusPending,
	}
	created, err := s.store.CreateSession(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("failed to create reinforcement session: %w", err)
	}
	return created, nil
}

func (s *service) Postpone(ctx context.Context, userID int32, sessionUID string, req PostponeRequest) (string, error) {
	session, plan, err := s.getSession(ctx, userID, sessionUID)
	if err != nil {
		return "", err
	}
	examDate, err := plan.ParseExamDate()
	if err != nil {
		return "", fmt.Errorf("failed to parse exam date: %w", err)
	}
	current, err := session.ParseDate()
	if err != nil {
		return "", fmt.Errorf("failed to parse session date: %w", err)
	}

	var target time.Time
	switch {
	case req.Next:
		// The next calendar day with a nonzero hour allocation.
		found := false
		for d := current.AddDate(0, 0, 1); !d.After(examDate); d = d.AddDate(0, 0, 1) {
			if plan.HoursForWeekday(d.Weekday()) > 0 {
				target = d
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("%w: no study day before the exam", ErrInvalidPostpone)
		}
	case req.Days >= 1:
		target = current.AddDate(0, 0, req.Days)
		if target.After(examDate) {
			return "", fmt.Errorf("%w: target is past the exam date", ErrInvalidPostpone)
		}
	default:
		return "", fmt.Errorf("%w: days must be >= 1 or next must be set", ErrInvalidPostpone)
	}

	newDate := target.Format(store.DateLayout)
	if err := s.store.UpdateSession(ctx, &store.UpdateSession{ID: session.ID, Date: &newDate}); err != nil {
		return "", fmt.Errorf("failed to postpone session: %w", err)
	}
	return newDate, nil
}

func (s *service) UpdateSessionStatus(ctx context.Context, userID int32, sessionUID string, status store.SessionStatus) error {
	if status != store.SessionStatusPending && status != store.SessionStatusDone {
		return fmt.Errorf("invalid session status %q", status)
	}
	session, _, err := s.getSession(ctx, userID, sessionUID)
	if err != nil {
		return err
	}
	if session.Status == status {
		return nil
	}

	if err := s.store.UpdateSession(ctx, &store.UpdateSession{ID: session.ID, Status: &status}); err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	// A new-topic session drives its topic's lifecycle: done sets the
	// completion date to the session's date, pending clears it.
	if session.Type == store.SessionTypeNewTopic && session.TopicID != nil {
		update := &store.UpdateTopic{ID: *session.TopicID}
		if status == store.SessionStatusDone {
			doneStatus := store.TopicStatusDone
			update.Status = &doneStatus
			update.CompletionDate = &session.Date
		} else {
			pendingStatus := store.TopicStatusPending
			update.Status = &pendingStatus
			update.ClearCompletionDate = true
		}
		if err := s.store.UpdateTopic(ctx, update); err != nil {
			return fmt.Errorf("failed to update topic completion: %w", err)
		}
	}
	return nil
}

func (s *service) RecordStudyTime(ctx context.Context, userID int32, sessionUID string, seconds int) (int, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("seconds must be non-negative")
	}
	session, _, err := s.getSession(ctx, userID, sessionUID)
	if err != nil {
		return 0, err
	}
	total := session.TimeStudiedSeconds + seconds
	if err := s.store.UpdateSession(ctx, &store.UpdateSession{ID: session.ID, TimeStudiedSeconds: &total}); err != nil {
		return 0, fmt.Errorf("failed to record study time: %w", err)
	}
	return total, nil
}

// getPlan loads a plan and verifies ownership.
func (s *service) getPlan(ctx context.Context, userID int32, planUID string) (*store.Plan, error) {
	plan, err := s.store.GetPlan(ctx, &store.FindPlan{UID: &planUID, OwnerID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// getSession loads a session and its plan, verifying the plan belongs
// to the user.
func (s *service) getSession(ctx context.Context, userID int32, sessionUID string) (*store.Session, *store.Plan, error) {
	session, err := s.store.GetSession(ctx, &store.FindSession{UID: &sessionUID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}
	plan, err := s.store.GetPlan(ctx, &store.FindPlan{ID: &session.PlanID, OwnerID: &userID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, nil, ErrSessionNotFound
	}
	return session, plan, nil
}

// loadTopics joins each topic with its subject's name and priority.
func (s *service) loadTopics(ctx context.Context, planID int32) ([]*topicInfo, error) {
	subjects, err := s.store.ListSubjects(ctx, &store.FindSubject{PlanID: &planID})
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	bySubject := make(map[int32]*store.Subject, len(subjects))
	for _, subject := range subjects {
		bySubject[subject.ID] = subject
	}

	topics, err := s.store.ListTopics(ctx, &store.FindTopic{PlanID: &planID})
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	infos := make([]*topicInfo, 0, len(topics))
	for _, topic := range topics {
		subject := bySubject[topic.SubjectID]
		if subject == nil {
			continue
		}
		info := &topicInfo{
			ID:          topic.ID,
			SubjectName: subject.Name,
			Priority:    subject.Priority,
			Description: topic.Description,
			Status:      topic.Status,
		}
		if topic.CompletionDate != nil {
			if d, err := parseDate(*topic.CompletionDate); err == nil {
				info.CompletionDate = &d
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// distinctTopics counts how many distinct topics received at least one
// session in the batch.
func distinctTopics(sessions []*store.Session) int {
	seen := make(map[int32]bool)
	for _, session := range sessions {
		if session.TopicID != nil {
			seen[*session.TopicID] = true
		}
	}
	return len(seen)
}
