package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"agentboard/internal/knowledge"
	"agentboard/internal/logstore"
	"agentboard/internal/status"
	"agentboard/internal/taskstore"
	"agentboard/internal/types"
)

// WorkerController stops the external worker processes. Satisfied by
// procctl.Controller; tests substitute a fake.
type WorkerController interface {
	StopWorkers(ctx context.Context) (types.StopResult, error)
}

// Server handles HTTP requests for the dashboard backend.
type Server struct {
	tasks      *taskstore.Store
	logs       logstore.Reader
	controller WorkerController
	status     status.Aggregator
	knowledge  knowledge.Store
}

// NewServer creates the API server over its collaborators.
func NewServer(
	tasks *taskstore.Store,
	logs logstore.Reader,
	controller WorkerController,
	aggregator status.Aggregator,
	kb knowledge.Store,
) *Server {
	return &Server{
		tasks:      tasks,
		logs:       logs,
		controller: controller,
		status:     aggregator,
		knowledge:  kb,
	}
}

// RegisterRoutes registers all dashboard endpoints with the Echo
// router. Paths are fixed by the dashboard UI, so no version group.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/terminal/:taskId", s.GetTerminal)
	e.GET("/tasks/list", s.ListTasks)
	e.GET("/tasks/status", s.TaskStatus)
	e.POST("/stop", s.StopWorkers)
	e.GET("/system-status", s.SystemStatus)
	e.GET("/knowledge/milestones", s.ListMilestones)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "agentboard",
		})
	})
}
