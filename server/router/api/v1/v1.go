package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ansochagas/editaliza/internal/profile"
	"github.com/ansochagas/editaliza/server/service/planner"
	"github.com/ansochagas/editaliza/store"
)

// APIV1Service wires the planning engine to the REST surface.
// Authentication happens upstream; the service trusts the X-User-ID
// header installed by the auth proxy.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Planner planner.Service
}

func NewAPIV1Service(profile *profile.Profile, st *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Store:   st,
		Planner: planner.NewService(st),
	}
}

// RegisterRoutes attaches all v1 routes to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1", s.requireUser)

	g.POST("/plans/:uid/schedule/generate", s.GenerateSchedule)
	g.GET("/plans/:uid/schedule/replan/preview", s.ReplanPreview)
	g.POST("/plans/:uid/schedule/replan", s.ReplanCommit)

	g.POST("/sessions/:uid/reinforce", s.ReinforceSession)
	g.POST("/sessions/:uid/postpone", s.PostponeSession)
	g.PATCH("/sessions/:uid/status", s.UpdateSessionStatus)
	g.POST("/sessions/:uid/time", s.RecordStudyTime)
}

// requireUser extracts the authenticated user id from the X-User-ID
// header set by the upstream auth layer.
func (s *APIV1Service) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get("X-User-ID")
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user identity"})
		}
		userID, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || userID <= 0 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user identity"})
		}
		c.Set(userIDContextKey, int32(userID))
		return next(c)
	}
}

const userIDContextKey = "user-id"

func userIDFrom(c echo.Context) int32 {
	if v, ok := c.Get(userIDContextKey).(int32); ok {
		return v
	}
	return 0
}
