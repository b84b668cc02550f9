package taskstore

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectSelector resolves the tasks directory for the active project.
// The selection lives outside this process and may change between
// requests, so implementations must resolve it on every call.
type ProjectSelector interface {
	// Current returns the active project name, or false when the shared
	// orchestrator-wide store should be used.
	Current() (string, bool)
	// TasksDir returns the task directory root for the active project.
	TasksDir() string
}

// FileSelector reads the active project from a marker file under the
// data root, the same file the dashboard writes when the operator
// switches projects.
type FileSelector struct {
	dataRoot string
}

// NewFileSelector creates a selector rooted at dataRoot.
func NewFileSelector(dataRoot string) *FileSelector {
	return &FileSelector{dataRoot: dataRoot}
}

// Current reads the marker file. No project is selected when the file
// is absent or empty.
func (s *FileSelector) Current() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dataRoot, ".current_project"))
	if err != nil {
		return "", false
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", false
	}
	return name, true
}

// TasksDir resolves the store root: the selected project's own tasks
// directory when a project is active, otherwise the shared orchestrator
// tasks directory.
func (s *FileSelector) TasksDir() string {
	if name, ok := s.Current(); ok {
		return filepath.Join(s.dataRoot, "projects", name, "tasks")
	}
	return filepath.Join(s.dataRoot, "orchestrator", "tasks")
}

// StaticSelector always resolves to a fixed directory. Used in tests
// and single-project deployments.
type StaticSelector struct {
	Dir string
}

func (s StaticSelector) Current() (string, bool) { return "", false }

func (s StaticSelector) TasksDir() string { return s.Dir }
