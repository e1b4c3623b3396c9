package npm

import (
	"os"
	"path/filepath"

	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
)

var _ ports.PackageManager = (*Manager)(nil)

// lockfileNames in detection priority order. The npm lock file is both the
// npm marker and the fallback when no lock file exists yet.
var lockfileNames = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lock",
	"bun.lockb",
}

// Manager detects the workspace's package manager by lock file presence.
type Manager struct{}

// NewManager creates a new Manager.
func NewManager() *Manager {
	return &Manager{}
}

// LockfileName returns the root-relative lock file name for the detected
// package manager, defaulting to the npm lock file.
func (m *Manager) LockfileName(workspaceRoot string) string {
	for _, name := range lockfileNames {
		if _, err := os.Stat(filepath.Join(workspaceRoot, name)); err == nil {
			return name
		}
	}
	return lockfileNames[0]
}

// ReadPackage reads the package descriptor in dir.
func (m *Manager) ReadPackage(dir string) (*domain.PackageJSON, error) {
	return ReadPackage(dir)
}
