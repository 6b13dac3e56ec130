package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ansochagas/editaliza/server/service/planner"
	"github.com/ansochagas/editaliza/store"
)

// GenerateSchedule recomputes the full calendar for a plan.
// POST /api/v1/plans/:uid/schedule/generate
func (s *APIV1Service) GenerateSchedule(c echo.Context) error {
	result, err := s.Planner.Generate(c.Request().Context(), userIDFrom(c), c.Param("uid"))
	if err != nil {
		return plannerError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ReplanPreview returns where each overdue session would move, without
// persisting anything.
// GET /api/v1/plans/:uid/schedule/replan/preview
func (s *APIV1Service) ReplanPreview(c echo.Context) error {
	preview, err := s.Planner.ReplanPreview(c.Request().Context(), userIDFrom(c), c.Param("uid"))
	if err != nil {
		return plannerError(c, err)
	}
	return c.JSON(http.StatusOK, preview)
}

// ReplanCommit redistributes overdue sessions and bumps the plan's
// postponement counter.
// POST /api/v1/plans/:uid/schedule/replan
func (s *APIV1Service) ReplanCommit(c echo.Context) error {
	result, err := s.Planner.ReplanCommit(c.Request().Context(), userIDFrom(c), c.Param("uid"))
	if err != nil {
		return plannerError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ReinforceSession schedules an ad-hoc follow-up session.
// POST /api/v1/sessions/:uid/reinforce
func (s *APIV1Service) ReinforceSession(c echo.Context) error {
	session, err := s.Planner.Reinforce(c.Request().Context(), userIDFrom(c), c.Param("uid"))
	if err != nil {
		return plannerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"session_uid": session.UID,
		"date":        session.Date,
	})
}

type postponeRequest struct {
	// Days is either a day count or the string "next".
	Days json.RawMessage `json:"days"`
}

// PostponeSession moves one session forward.
// POST /api/v1/sessions/:uid/postpone
func (s *APIV1Service) PostponeSession(c echo.Context) error {
	var body postponeRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	var req planner.PostponeRequest
	var days int
	var next string
	switch {
	case json.Unmarshal(body.Days, &days) == nil:
		req.Days = days
	case json.Unmarshal(body.Days, &next) == nil && next == "next":
		req.Next = true
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": `days must be a number or "next"`})
	}

	newDate, err := s.Planner.Postpone(c.Request().Context(), userIDFrom(c), c.Param("uid"), req)
	if err != nil {
		return plannerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"new_date": newDate})
}

type sessionStatusRequest struct {
	Status store.SessionStatus `json:"status"`
}

// UpdateSessionStatus transitions a session between pending and done.
// PATCH /api/v1/sessions/:uid/status
func (s *APIV1Service) UpdateSessionStatus(c echo.Context) error {
	var body sessionStatusRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.Status != store.SessionStatusPending && body.Status != store.SessionStatusDone {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "status must be pending or done"})
	}
	if err := s.Planner.UpdateSessionStatus(c.Request().Context(), userIDFrom(c), c.Param("uid"), body.Status); err != nil {
		return plannerError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type studyTimeRequest struct {
	Seconds int `json:"seconds"`
}

// RecordStudyTime accumulates studied seconds on a session.
// POST /api/v1/sessions/:uid/time
func (s *APIV1Service) RecordStudyTime(c echo.Context) error {
	var body studyTimeRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	total, err := s.Planner.RecordStudyTime(c.Request().Context(), userIDFrom(c), c.Param("uid"), body.Seconds)
	if err != nil {
		return plannerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"time_studied_seconds": total})
}

// plannerError maps engine errors to HTTP responses. Persistence and
// unknown failures surface as a generic internal error.
func plannerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, planner.ErrPlanNotFound), errors.Is(err, planner.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, planner.ErrNoStudyHours), errors.Is(err, planner.ErrInvalidPostpone):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("planner operation failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
