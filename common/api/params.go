package api

// Argument bundles for host commands. Optional fields are pointers tagged omitempty so an
// absent value never reaches the host as an empty string.

type IDParams struct {
	ID string `json:"id"`
}

type CreateProjectParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateProjectParams struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProjectTasksParams struct {
	ProjectID string `json:"project_id"`
}

type CreateTaskParams struct {
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type UpdateTaskParams struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type ExecutorParams struct {
	Name string `json:"name"`
}

type ExecutorConfigParams struct {
	Name   string         `json:"name"`
	Config map[string]any `json:"config"`
}

type PathParams struct {
	Path string `json:"path"`
}

type WriteFileParams struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type ConfigParams struct {
	Config map[string]any `json:"config"`
}
