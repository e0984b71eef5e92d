package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vibekanban/desktop/common/api"
)

const taskColumns = `id, project_id, title, description, status, created_at, updated_at`

func scanTask(row rowScanner) (api.Task, error) {
	var (
		t    api.Task
		desc sql.NullString
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &desc, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return api.Task{}, err
	}
	t.Description = fromNullable(desc)
	return t, nil
}

// ListTasks returns the tasks of a project. An unknown project is reported as not found.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]api.Task, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	pid, _ := parseID("project", projectID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at, rowid`, pid)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := []api.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id string) (api.Task, error) {
	tid, err := parseID("task", id)
	if err != nil {
		return api.Task{}, err
	}
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, tid))
	if errors.Is(err, sql.ErrNoRows) {
		return api.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	if err != nil {
		return api.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, projectID, title string, description *string) (api.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return api.Task{}, fmt.Errorf("%w: task title is required", ErrInvalid)
	}
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return api.Task{}, err
	}

	now := s.timestamp()
	t := api.Task{
		ID:          uuid.NewString(),
		ProjectID:   p.ID,
		Title:       title,
		Description: description,
		Status:      api.TaskTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, project_id, title, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, nullable(t.Description), t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return api.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// UpdateTask applies the non-nil fields.
func (s *Store) UpdateTask(ctx context.Context, id string, title, description, status *string) (api.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return api.Task{}, err
	}
	if title != nil {
		v := strings.TrimSpace(*title)
		if v == "" {
			return api.Task{}, fmt.Errorf("%w: task title cannot be empty", ErrInvalid)
		}
		t.Title = v
	}
	if description != nil {
		t.Description = description
	}
	if status != nil {
		if !api.ValidTaskStatus(*status) {
			return api.Task{}, fmt.Errorf("%w: unknown task status %q", ErrInvalid, *status)
		}
		t.Status = *status
	}
	t.UpdatedAt = s.timestamp()

	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		t.Title, nullable(t.Description), t.Status, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return api.Task{}, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tid, err := parseID("task", id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, tid)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	return nil
}
