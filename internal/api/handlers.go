package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agentboard/internal/taskstore"
	"agentboard/internal/types"
)

// TerminalResponse is the terminal feed for one task.
type TerminalResponse struct {
	TaskID string           `json:"task_id"`
	Logs   []types.LogEntry `json:"logs"`
	Count  int              `json:"count"`
}

// ListTasksResponse is the filtered task listing.
type ListTasksResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Tasks   []types.TaskRecord `json:"tasks"`
	Filter  string             `json:"filter"`
}

// TaskStatusResponse covers both forms of /tasks/status: a single task
// lookup and the unfiltered scan.
type TaskStatusResponse struct {
	OK       bool               `json:"ok"`
	Task     *types.TaskRecord  `json:"task,omitempty"`
	Location types.TaskState    `json:"location,omitempty"`
	Tasks    []types.TaskRecord `json:"tasks,omitempty"`
	Count    *int               `json:"count,omitempty"`
}

// MilestonesResponse is the knowledge base listing.
type MilestonesResponse struct {
	Success bool              `json:"success"`
	Data    []types.Milestone `json:"data"`
	Count   int               `json:"count"`
}

// GetTerminal handles GET /terminal/:taskId.
// Streams the task's full terminal feed from the log store.
func (s *Server) GetTerminal(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "task id is required"})
	}

	logs, err := s.logs.Logs(c.Request().Context(), taskID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, TerminalResponse{
		TaskID: taskID,
		Logs:   logs,
		Count:  len(logs),
	})
}

// ListTasks handles GET /tasks/list.
// Lists task records in the requested lifecycle state, newest first.
func (s *Server) ListTasks(c echo.Context) error {
	filter := c.QueryParam("status")
	if filter == "" {
		filter = taskstore.FilterAll
	}

	tasks, err := s.tasks.List(filter)
	if err != nil {
		if errors.Is(err, taskstore.ErrBadFilter) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, ListTasksResponse{
		Success: true,
		Count:   len(tasks),
		Tasks:   tasks,
		Filter:  filter,
	})
}

// TaskStatus handles GET /tasks/status.
// With task_id set it probes the state directories for that one task;
// without it, it returns every record across all states, archived
// included.
func (s *Server) TaskStatus(c echo.Context) error {
	taskID := c.QueryParam("task_id")

	if taskID != "" {
		task, err := s.tasks.Get(taskID)
		if err != nil {
			if errors.Is(err, taskstore.ErrTaskNotFound) {
				return c.JSON(http.StatusNotFound, map[string]interface{}{
					"ok":    false,
					"error": "task not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, TaskStatusResponse{
			OK:       true,
			Task:     &task,
			Location: task.Location,
		})
	}

	tasks, err := s.tasks.GetAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	count := len(tasks)
	return c.JSON(http.StatusOK, TaskStatusResponse{
		OK:    true,
		Tasks: tasks,
		Count: &count,
	})
}

// StopWorkers handles POST /stop.
// Signals the known worker process classes. Nothing running is still a
// 200 with success=false.
func (s *Server) StopWorkers(c echo.Context) error {
	result, err := s.controller.StopWorkers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}

// SystemStatus handles GET /system-status.
// Returns the current infrastructure health snapshot.
func (s *Server) SystemStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.status.Snapshot(c.Request().Context()))
}

// ListMilestones handles GET /knowledge/milestones.
// Returns the newest knowledge base milestones, optionally limited.
func (s *Server) ListMilestones(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	milestones, err := s.knowledge.ListMilestones(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, MilestonesResponse{
		Success: true,
		Data:    milestones,
		Count:   len(milestones),
	})
}
