package ports

import "go.trai.ch/tsinfer/internal/core/domain"

// PackageManager is the package-manager integration surface: package
// descriptor reads and lock-file naming. The lock file joins the hashed
// influencing set so the cache invalidates when dependency versions change.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// LockfileName returns the workspace-root-relative lock file name for the
	// package manager detected in workspaceRoot.
	LockfileName(workspaceRoot string) string

	// ReadPackage reads the package descriptor in dir. Absence is a valid
	// state and returns (nil, nil).
	ReadPackage(dir string) (*domain.PackageJSON, error)
}
