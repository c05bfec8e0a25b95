package api

import (
	"time"

	"github.com/example/task-tracker-demo/domain/task"
)

// CreateTaskRequest is the request body for creating a task. The
// deadline is an RFC 3339 timestamp (a bare datetime without offset
// is also accepted).
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest is the request body for partially updating a
// task. Absent fields are left untouched; status only changes when it
// is sent explicitly.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Filter string         `json:"filter"`
	Sort   string         `json:"sort"`
}

// SaveResponse reports whether an explicit save succeeded.
type SaveResponse struct {
	Saved bool `json:"saved"`
}

// ExportResponse carries the path of the written report.
type ExportResponse struct {
	Path string `json:"path"`
}

// toTaskResponse converts a task to its response form.
func toTaskResponse(t task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}
