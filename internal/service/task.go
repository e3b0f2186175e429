package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/audit"
	"github.com/Strob0t/Workboard/internal/domain/task"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/database"
)

// TaskService handles task business logic. Tasks inherit their tenant from
// the owning project.
type TaskService struct {
	store database.Store
	audit *AuditService
}

// NewTaskService creates a new TaskService.
func NewTaskService(store database.Store, auditSvc *AuditService) *TaskService {
	return &TaskService{store: store, audit: auditSvc}
}

// Create adds a task to a project of the principal's tenant.
func (s *TaskService) Create(ctx context.Context, p *user.Principal, projectID string, req task.CreateRequest) (*task.Task, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	proj, err := s.store.GetProject(ctx, p.TenantID, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.AssignedTo != "" {
		if err := s.checkAssignee(ctx, p.TenantID, req.AssignedTo); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	t := &task.Task{
		ID:          uuid.NewString(),
		ProjectID:   proj.ID,
		TenantID:    proj.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Status:      task.DefaultStatus,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.AssignedTo != "" {
		assignee := req.AssignedTo
		t.AssignedTo = &assignee
	}
	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionCreateTask, audit.EntityTask, t.ID))
	return t, nil
}

// List returns the tasks of a project ordered by priority, then due date
// (undated last), then creation time.
func (s *TaskService) List(ctx context.Context, p *user.Principal, projectID string, f task.Filter) ([]task.Task, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProject(ctx, p.TenantID, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	tasks, err := s.store.ListTasks(ctx, p.TenantID, projectID, f)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	task.Sort(tasks)
	return tasks, nil
}

// UpdateStatus sets the status of a task. Any non-empty status is accepted.
func (s *TaskService) UpdateStatus(ctx context.Context, p *user.Principal, id string, req task.StatusRequest) (*task.Task, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t, err := s.getTask(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateTaskStatus(ctx, p.TenantID, id, req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: task not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update task status: %w", err)
	}
	t.Status = req.Status
	t.UpdatedAt = time.Now().UTC()

	s.audit.Record(ctx, entryFor(p, audit.ActionUpdateTaskStatus, audit.EntityTask, id))
	return t, nil
}

// Update applies a partial update to a task of the principal's tenant.
func (s *TaskService) Update(ctx context.Context, p *user.Principal, id string, req task.UpdateRequest) (*task.Task, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if assignee, ok := req.Assignee(); ok {
		if err := s.checkAssignee(ctx, p.TenantID, assignee); err != nil {
			return nil, err
		}
	}

	t, err := s.getTask(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	req.Apply(t)
	t.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionUpdateTask, audit.EntityTask, id))
	return t, nil
}

// Delete removes a task of the principal's tenant.
func (s *TaskService) Delete(ctx context.Context, p *user.Principal, id string) error {
	if err := user.RequireTenant(p); err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, p.TenantID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: task not found", domain.ErrNotFound)
		}
		return fmt.Errorf("delete task: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionDeleteTask, audit.EntityTask, id))
	return nil
}

func (s *TaskService) getTask(ctx context.Context, tenantID, id string) (*task.Task, error) {
	t, err := s.store.GetTask(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: task not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// checkAssignee verifies that userID is a user of tenantID.
func (s *TaskService) checkAssignee(ctx context.Context, tenantID, userID string) error {
	_, err := s.store.GetUser(ctx, tenantID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.Validationf("assignedTo must be a user of this tenant")
	default:
		return fmt.Errorf("check assignee: %w", err)
	}
}
