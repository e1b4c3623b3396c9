// Package npm integrates with the npm package ecosystem: package descriptors,
// lock-file detection, and node_modules resolution of extends specifiers.
package npm

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/zerr"
)

// ReadPackage reads the package.json in dir. Returns (nil, nil) when the
// descriptor does not exist; absence is a valid state for the callers.
func ReadPackage(dir string) (*domain.PackageJSON, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // Path derived from workspace discovery
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read package descriptor"), "path", path)
	}

	var pkg domain.PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse package descriptor"), "path", path)
	}
	return &pkg, nil
}
