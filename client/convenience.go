package client

import (
	"context"

	"github.com/vibekanban/desktop/common/api"
)

func (c *Client) HealthCheck(ctx context.Context) (api.HealthStatus, error) {
	return Call[api.HealthStatus](ctx, c, HealthCheck{})
}

func (c *Client) GetDeploymentInfo(ctx context.Context) (api.DeploymentInfo, error) {
	return Call[api.DeploymentInfo](ctx, c, GetDeploymentInfo{})
}

// InitializeDeployment returns the host's confirmation message.
func (c *Client) InitializeDeployment(ctx context.Context) (string, error) {
	return Call[string](ctx, c, InitializeDeployment{})
}

func (c *Client) GetProjects(ctx context.Context) ([]api.Project, error) {
	return Call[[]api.Project](ctx, c, GetProjects{})
}

func (c *Client) GetProject(ctx context.Context, id string) (api.Project, error) {
	return Call[api.Project](ctx, c, GetProject{ID: id})
}

func (c *Client) CreateProject(ctx context.Context, name string, description *string) (api.Project, error) {
	return Call[api.Project](ctx, c, CreateProject{Name: name, Description: description})
}

// UpdateProject changes the non-nil fields only.
func (c *Client) UpdateProject(ctx context.Context, id string, name, description *string) (api.Project, error) {
	return Call[api.Project](ctx, c, UpdateProject{ID: id, Name: name, Description: description})
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.Invoke(ctx, DeleteProject{ID: id})
	return err
}

func (c *Client) GetTasks(ctx context.Context, projectID string) ([]api.Task, error) {
	return Call[[]api.Task](ctx, c, GetTasks{ProjectID: projectID})
}

func (c *Client) GetTask(ctx context.Context, id string) (api.Task, error) {
	return Call[api.Task](ctx, c, GetTask{ID: id})
}

func (c *Client) CreateTask(ctx context.Context, projectID, title string, description *string) (api.Task, error) {
	return Call[api.Task](ctx, c, CreateTask{ProjectID: projectID, Title: title, Description: description})
}

// UpdateTask changes the non-nil fields only.
func (c *Client) UpdateTask(ctx context.Context, id string, title, description, status *string) (api.Task, error) {
	return Call[api.Task](ctx, c, UpdateTask{ID: id, Title: title, Description: description, Status: status})
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.Invoke(ctx, DeleteTask{ID: id})
	return err
}

func (c *Client) GetExecutors(ctx context.Context) ([]api.ExecutorInfo, error) {
	return Call[[]api.ExecutorInfo](ctx, c, GetExecutors{})
}

func (c *Client) GetExecutorConfig(ctx context.Context, name string) (map[string]any, error) {
	return Call[map[string]any](ctx, c, GetExecutorConfig{Name: name})
}

func (c *Client) UpdateExecutorConfig(ctx context.Context, name string, cfg map[string]any) error {
	_, err := c.Invoke(ctx, UpdateExecutorConfig{Name: name, Config: cfg})
	return err
}

func (c *Client) ReadFile(ctx context.Context, path string) (string, error) {
	return Call[string](ctx, c, ReadFile{Path: path})
}

func (c *Client) WriteFile(ctx context.Context, path, content string) error {
	_, err := c.Invoke(ctx, WriteFile{Path: path, Content: content})
	return err
}

// ListDirectory returns the full paths of the entries of path.
func (c *Client) ListDirectory(ctx context.Context, path string) ([]string, error) {
	return Call[[]string](ctx, c, ListDirectory{Path: path})
}

// GetConfig returns the app config; an unset config is an empty map.
func (c *Client) GetConfig(ctx context.Context) (map[string]any, error) {
	return Call[map[string]any](ctx, c, GetConfig{})
}

func (c *Client) UpdateConfig(ctx context.Context, cfg map[string]any) error {
	_, err := c.Invoke(ctx, UpdateConfig{Config: cfg})
	return err
}
