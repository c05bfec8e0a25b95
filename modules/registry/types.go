package registry

import (
	"time"

	"github.com/example/task-tracker-demo/domain/task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	ID string `json:"id"`
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

// ListTasksRequest is the request for listing tasks. Filter and sort
// keys follow the strategy keys; unknown keys fall back silently.
type ListTasksRequest struct {
	Filter string `json:"filter,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for partially updating a task.
// Only the provided fields change; ID and creation time cannot be
// touched.
type UpdateTaskRequest struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// StatsRequest is the request for aggregate statistics.
type StatsRequest struct{}

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
