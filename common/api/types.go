package api

// HealthStatus is returned by health_check.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// DeploymentInfo is returned by get_deployment_info.
type DeploymentInfo struct {
	AssetsDir     string `json:"assets_dir"`
	IsInitialized bool   `json:"is_initialized"`
}

type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Task statuses accepted by update_task.
const (
	TaskTodo       = "todo"
	TaskInProgress = "inprogress"
	TaskInReview   = "inreview"
	TaskDone       = "done"
	TaskCancelled  = "cancelled"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskInReview, TaskDone, TaskCancelled:
		return true
	}
	return false
}

type Task struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ExecutorInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Configured  bool   `json:"configured"`
}

// Event is the frame pushed to subscribers of a host event.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// ErrorBody is the JSON shape of a failed HTTP API response.
type ErrorBody struct {
	Error string `json:"error"`
}
