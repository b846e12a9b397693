package workspace

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
)

const (
	ephemeralPrefix = "tsfile-site-deploy-"

	// DefaultPersistentSubdir is created inside a configured workspace directory so
	// the directory itself is never cleared.
	DefaultPersistentSubdir = "tsfile-site-deploy"
)

// Manager handles workspace operations (both temporary and persistent)
type Manager struct {
	baseDir    string
	path       string
	persistent bool
}

// NewManager creates a workspace manager with ephemeral directories under baseDir
// (the system temp dir when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// NewPersistentManager creates a workspace manager that always uses
// baseDir/subdir. Nothing outside that subdirectory is touched.
func NewPersistentManager(baseDir, subdir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if subdir == "" {
		subdir = DefaultPersistentSubdir
	}
	return &Manager{baseDir: baseDir, path: filepath.Join(baseDir, subdir), persistent: true}
}

// Create ensures the workspace directory exists. Existing content is kept.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.path, 0o750); err != nil {
			return errors.FileSystemError("failed to create persistent workspace").WithCause(err).WithContext("path", m.path).Build()
		}
		slog.Debug("Using persistent workspace", logfields.Path(m.path))
		return nil
	}

	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return errors.FileSystemError("failed to create workspace base").WithCause(err).WithContext("path", m.baseDir).Build()
	}
	dir, err := os.MkdirTemp(m.baseDir, ephemeralPrefix)
	if err != nil {
		return errors.FileSystemError("failed to create workspace").WithCause(err).WithContext("path", m.baseDir).Build()
	}
	m.path = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// GetPath returns the path to the workspace directory
func (m *Manager) GetPath() string {
	return m.path
}

// Checkout returns the empty directory name inside the workspace, removing what a
// previous run left there.
func (m *Manager) Checkout(name string) (string, error) {
	if m.path == "" {
		return "", errors.FileSystemError("workspace not created").Build()
	}
	clean := filepath.Clean(name)
	if name == "" || clean == "." || clean == ".." || filepath.IsAbs(clean) || clean != filepath.Base(clean) {
		return "", errors.ValidationError("invalid checkout name").WithContext("name", name).Build()
	}
	dir := filepath.Join(m.path, clean)
	if err := os.RemoveAll(dir); err != nil {
		return "", errors.FileSystemError("failed to reset checkout").WithCause(err).WithContext("path", dir).Build()
	}
	return dir, nil
}

// Persistent reports whether Cleanup keeps the directory.
func (m *Manager) Persistent() bool { return m.persistent }

// Cleanup removes an ephemeral workspace. Persistent workspaces are kept.
func (m *Manager) Cleanup() error {
	if m.path == "" {
		return nil
	}
	if m.persistent {
		slog.Debug("Keeping persistent workspace", logfields.Path(m.path))
		return nil
	}
	if err := os.RemoveAll(m.path); err != nil {
		return errors.FileSystemError("failed to cleanup workspace").WithCause(err).WithContext("path", m.path).Build()
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.path))
	m.path = ""
	return nil
}
