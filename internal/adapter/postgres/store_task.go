package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Strob0t/Workboard/internal/domain/task"
)

const taskColumns = `t.id, t.project_id, t.tenant_id, t.title, t.description, t.status, t.priority, t.assigned_to, COALESCE(u.full_name, ''), t.due_date, t.created_at, t.updated_at`

const taskFrom = ` FROM tasks t LEFT JOIN users u ON u.id = t.assigned_to`

func scanTask(row scannable) (task.Task, error) {
	var t task.Task
	var due *time.Time
	err := row.Scan(&t.ID, &t.ProjectID, &t.TenantID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssignedTo, &t.AssigneeName, &due, &t.CreatedAt, &t.UpdatedAt)
	t.DueDate = dueDateFromDB(due)
	return t, err
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, project_id, tenant_id, title, description, status, priority, assigned_to, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.ProjectID, t.TenantID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo, dueDateArg(t.DueDate), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return constraintWrap(err, "create task")
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, tenantID, id string) (*task.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+taskFrom+` WHERE t.id = $1 AND t.tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get task %s", id)
	}
	return &t, nil
}

// ListTasks returns a project's tasks matching f in creation order. Callers
// apply the priority/due-date ordering.
func (s *Store) ListTasks(ctx context.Context, tenantID, projectID string, f task.Filter) ([]task.Task, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + taskFrom + ` WHERE t.tenant_id = $1 AND t.project_id = $2`)
	args := []any{tenantID, projectID}

	// Only placeholders are appended; values travel as parameters.
	addFilter := func(column string, value any) {
		args = append(args, value)
		b.WriteString(" AND " + column + " = $" + strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		addFilter("t.status", f.Status)
	}
	if f.Priority != "" {
		addFilter("t.priority", string(f.Priority))
	}
	if f.AssignedTo != "" {
		addFilter("t.assigned_to", f.AssignedTo)
	}
	b.WriteString(` ORDER BY t.created_at`)

	rows, err := s.pool.Query(ctx, b.String(), args...)
	if malformedID(err) {
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		if malformedID(err) {
			// An assignee filter that is not a UUID matches nothing.
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return orEmpty(tasks), nil
}

// UpdateTask persists every mutable field and bumps updated_at.
func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks SET title = $3, description = $4, status = $5, priority = $6, assigned_to = $7, due_date = $8, updated_at = $9
		WHERE id = $1 AND tenant_id = $2`,
		t.ID, t.TenantID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo, dueDateArg(t.DueDate), t.UpdatedAt,
	)
	return execExpectOne(tag, err, "update task %s", t.ID)
}

func (s *Store) UpdateTaskStatus(ctx context.Context, tenantID, id, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET status = $3, updated_at = now() WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, status)
	return execExpectOne(tag, err, "update task status %s", id)
}

func (s *Store) DeleteTask(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete task %s", id)
}
