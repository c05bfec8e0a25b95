package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-tracker-demo/domain/task"
	"github.com/example/task-tracker-demo/modules/registry"
	"github.com/example/task-tracker-demo/modules/storage"
)

// deadlineLayouts are the accepted deadline formats: full RFC 3339,
// plus the bare datetime a browser datetime-local input produces.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// Handlers bundles the HTTP handlers over the registry and exporter.
type Handlers struct {
	registry *registry.Registry
	exporter *storage.Exporter
}

// NewHandlers creates the handler set.
func NewHandlers(reg *registry.Registry, exporter *storage.Exporter) *Handlers {
	return &Handlers{registry: reg, exporter: exporter}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ListTasks handles GET /api/v1/tasks. Filter and sort keys come from
// query parameters; unknown keys silently fall back to the defaults.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	filter := task.ParseFilter(c.Query("filter"))
	order := task.ParseSort(c.Query("sort"))

	tasks := order.Apply(filter.Apply(h.registry.Tasks(), time.Now()))

	response := ListTasksResponse{
		Tasks:  make([]TaskResponse, 0, len(tasks)),
		Total:  len(tasks),
		Filter: string(filter),
		Sort:   string(order),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return c.JSON(response)
}

// GetTask handles GET /api/v1/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	found, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(toTaskResponse(found))
}

// CreateTask handles POST /api/v1/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	priority, err := task.ParsePriority(req.Priority)
	if err != nil {
		return taskError(c, err)
	}

	created, err := h.registry.Create(c.UserContext(), req.Title, req.Description, deadline, priority)
	if err != nil {
		return taskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(created))
}

// UpdateTask handles PATCH /api/v1/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	upd := registry.Update{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		upd.Deadline = &deadline
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		upd.Priority = &p
	}
	if req.Status != nil {
		s := task.Status(*req.Status)
		upd.Status = &s
	}

	updated, err := h.registry.Update(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(toTaskResponse(updated))
}

// DeleteTask handles DELETE /api/v1/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.registry.Delete(c.UserContext(), id); err != nil {
		return taskError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true, "id": id})
}

// CompleteTask handles POST /api/v1/tasks/:id/complete.
func (h *Handlers) CompleteTask(c *fiber.Ctx) error {
	updated, err := h.registry.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(toTaskResponse(updated))
}

// UncompleteTask handles POST /api/v1/tasks/:id/uncomplete.
func (h *Handlers) UncompleteTask(c *fiber.Ctx) error {
	updated, err := h.registry.Uncomplete(c.UserContext(), c.Params("id"))
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(toTaskResponse(updated))
}

// GetStats handles GET /api/v1/tasks/stats.
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.registry.Stats())
}

// SaveTasks handles POST /api/v1/tasks/save. Failure is reported in
// the body, never as an error status: a storage outage must not look
// like a broken API.
func (h *Handlers) SaveTasks(c *fiber.Ctx) error {
	return c.JSON(SaveResponse{Saved: h.registry.Save(c.UserContext())})
}

// ReloadTasks handles POST /api/v1/tasks/reload, re-hydrating the
// registry from the blob store.
func (h *Handlers) ReloadTasks(c *fiber.Ctx) error {
	h.registry.Load(c.UserContext())
	return c.JSON(fiber.Map{"total": len(h.registry.Tasks())})
}

// ExportTasks handles POST /api/v1/tasks/export.
func (h *Handlers) ExportTasks(c *fiber.Ctx) error {
	path, err := h.exporter.Export(h.registry.Tasks())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ExportResponse{Path: path})
}

// parseDeadline parses the wire deadline formats.
func parseDeadline(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, &task.ValidationError{Field: "deadline", Reason: "is required"}
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &task.ValidationError{Field: "deadline", Reason: "must be an RFC 3339 timestamp"}
}

// taskError maps domain errors to HTTP status codes.
func taskError(c *fiber.Ctx, err error) error {
	var verr *task.ValidationError
	switch {
	case errors.Is(err, task.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
