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

const projectColumns = `id, name, description, created_at, updated_at`

func scanProject(row rowScanner) (api.Project, error) {
	var (
		p    api.Project
		desc sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return api.Project{}, err
	}
	p.Description = fromNullable(desc)
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]api.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []api.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (api.Project, error) {
	pid, err := parseID("project", id)
	if err != nil {
		return api.Project{}, err
	}
	p, err := scanProject(s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, pid))
	if errors.Is(err, sql.ErrNoRows) {
		return api.Project{}, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	if err != nil {
		return api.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, name string, description *string) (api.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return api.Project{}, fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	now := s.timestamp()
	p := api.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, nullable(p.Description), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return api.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// UpdateProject applies the non-nil fields.
func (s *Store) UpdateProject(ctx context.Context, id string, name, description *string) (api.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return api.Project{}, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return api.Project{}, fmt.Errorf("%w: project name cannot be empty", ErrInvalid)
		}
		p.Name = n
	}
	if description != nil {
		p.Description = description
	}
	p.UpdatedAt = s.timestamp()

	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		p.Name, nullable(p.Description), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return api.Project{}, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project and, through the foreign key, its tasks.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	pid, err := parseID("project", id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, pid)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	return nil
}
