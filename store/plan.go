package store

import (
	"context"
	"math"
	"time"
)

// DateLayout is the calendar-date form used across the store layer.
// All session and exam dates are stored as ISO dates with no time component.
const DateLayout = "2006-01-02"

// ReviewMode selects how review sessions describe their content.
type ReviewMode string

const (
	ReviewModeFull    ReviewMode = "full"
	ReviewModeFocused ReviewMode = "focused"
)

// Plan is the object representing a study plan.
type Plan struct {
	ID      int32
	UID     string
	OwnerID int32

	Name string
	// ExamDate is the inclusive last day of the plan, ISO form.
	ExamDate string
	// StudyHours maps weekday to study hours per day, indexed by
	// time.Weekday (0 = Sunday). Hours may be fractional.
	StudyHours [7]float64
	// SessionDurationMinutes is the length of one session, 10-240.
	SessionDurationMinutes int
	HasEssay               bool
	ReviewMode             ReviewMode
	DailyQuestionGoal      int
	WeeklyQuestionGoal     int
	// PostponementCount is incremented once per replan commit.
	PostponementCount int

	CreatedTs int64
	UpdatedTs int64
}

// FindPlan is the find condition for plan.
type FindPlan struct {
	ID      *int32
	UID     *string
	OwnerID *int32

	Limit  *int
	Offset *int
}

// UpdatePlan is the update request for plan.
type UpdatePlan struct {
	ID                     int32
	Name                   *string
	ExamDate               *string
	StudyHours             *[7]float64
	SessionDurationMinutes *int
	HasEssay               *bool
	ReviewMode             *ReviewMode
	DailyQuestionGoal      *int
	WeeklyQuestionGoal     *int
	PostponementCount      *int
}

// DeletePlan is the delete request for plan. Deleting a plan cascades to
// its subjects, topics, and sessions.
type DeletePlan struct {
	ID int32
}

// ParseExamDate parses the plan exam date to a UTC-midnight time.Time.
func (p *Plan) ParseExamDate() (time.Time, error) {
	return time.ParseInLocation(DateLayout, p.ExamDate, time.UTC)
}

// TotalWeeklyHours returns the sum of all weekday hour allocations.
func (p *Plan) TotalWeeklyHours() float64 {
	total := 0.0
	for _, h := range p.StudyHours {
		total += h
	}
	return total
}

// HoursForWeekday returns the hour allocation for the given weekday.
func (p *Plan) HoursForWeekday(wd time.Weekday) float64 {
	return p.StudyHours[int(wd)]
}

// MaxSessionsForWeekday returns how many sessions the given weekday can
// hold: floor(hours*60 / sessionDurationMinutes).
func (p *Plan) MaxSessionsForWeekday(wd time.Weekday) int {
	if p.SessionDurationMinutes <= 0 {
		return 0
	}
	return int(math.Floor(p.HoursForWeekday(wd) * 60 / float64(p.SessionDurationMinutes)))
}

func (s *Store) CreatePlan(ctx context.Context, create *Plan) (*Plan, error) {
	plan, err := s.driver.CreatePlan(ctx, create)
	if err != nil {
		return nil, err
	}
	s.planCache.Set(plan.UID, plan)
	return plan, nil
}

func (s *Store) ListPlans(ctx context.Context, find *FindPlan) ([]*Plan, error) {
	return s.driver.ListPlans(ctx, find)
}

// GetPlan gets a single plan matching the find condition, or nil.
func (s *Store) GetPlan(ctx context.Context, find *FindPlan) (*Plan, error) {
	if find.UID != nil && find.ID == nil {
		if v, ok := s.planCache.Get(*find.UID); ok {
			plan := v.(*Plan)
			if find.OwnerID == nil || plan.OwnerID == *find.OwnerID {
				return plan, nil
			}
			return nil, nil
		}
	}
	list, err := s.driver.ListPlans(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	plan := list[0]
	s.planCache.Set(plan.UID, plan)
	return plan, nil
}

func (s *Store) UpdatePlan(ctx context.Context, update *UpdatePlan) error {
	if err := s.driver.UpdatePlan(ctx, update); err != nil {
		return err
	}
	s.invalidatePlan(ctx, update.ID)
	return nil
}

func (s *Store) DeletePlan(ctx context.Context, delete *DeletePlan) error {
	s.invalidatePlan(ctx, delete.ID)
	return s.driver.DeletePlan(ctx, delete)
}

func (s *Store) invalidatePlan(ctx context.Context, id int32) {
	list, err := s.driver.ListPlans(ctx, &FindPlan{ID: &id})
	if err == nil && len(list) > 0 {
		s.planCache.Delete(list[0].UID)
	}
}
