package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/task-tracker-demo/domain/task"
)

// RegisterServices registers request-reply services in the service
// container. The framework prefixes service names with the module, so
// "create" becomes "services.registry.create".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "stats", json.Unmarshal, json.Marshal, m.statsTasks,
	); err != nil {
		return fmt.Errorf("failed to register stats service: %w", err)
	}

	log.Printf("[registry] Registered services: services.registry.{create,get,list,update,delete,stats}")
	return nil
}

// createTask handles the registry.create service request.
func (m *Module) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	priority, err := task.ParsePriority(req.Priority)
	if err != nil {
		return TaskResponse{}, err
	}

	created, err := m.registry.Create(ctx, req.Title, req.Description, req.Deadline, priority)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(created), nil
}

// getTask handles the registry.get service request.
func (m *Module) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" {
		return TaskResponse{}, fmt.Errorf("id is required")
	}

	found, err := m.registry.Get(req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(found), nil
}

// listTasks handles the registry.list service request, applying the
// filter and then the sort strategy.
func (m *Module) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks := task.ParseFilter(req.Filter).Apply(m.registry.Tasks(), time.Now())
	tasks = task.ParseSort(req.Sort).Apply(tasks)

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response, nil
}

// updateTask handles the registry.update service request.
func (m *Module) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" {
		return TaskResponse{}, fmt.Errorf("id is required")
	}

	upd := Update{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		upd.Priority = &p
	}
	if req.Status != nil {
		s := task.Status(*req.Status)
		upd.Status = &s
	}

	updated, err := m.registry.Update(ctx, req.ID, upd)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(updated), nil
}

// deleteTask handles the registry.delete service request.
func (m *Module) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.ID == "" {
		return DeleteTaskResponse{Deleted: false}, fmt.Errorf("id is required")
	}

	if err := m.registry.Delete(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// statsTasks handles the registry.stats service request.
func (m *Module) statsTasks(_ context.Context, _ StatsRequest, _ *mono.Msg) (Statistics, error) {
	return m.registry.Stats(), nil
}
