package npm

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleResolver = (*Resolver)(nil)

// Resolver resolves bare extends specifiers the way the Node module
// resolution algorithm does for JSON targets: walk node_modules directories
// upward from the importing config, trying the specifier as a file, with a
// .json suffix, and as a directory containing tsconfig.json.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve resolves specifier relative to fromDir. The returned Resolution
// always carries the external package name, since a bare specifier crossing
// into node_modules is an external package dependency of the derivation.
func (r *Resolver) Resolve(specifier, fromDir string) (ports.Resolution, error) {
	pkg := packageName(specifier)
	if pkg == "" {
		return ports.Resolution{}, zerr.With(domain.ErrNotResolved, "specifier", specifier)
	}

	for dir := fromDir; ; dir = filepath.Dir(dir) {
		base := filepath.Join(dir, "node_modules", filepath.FromSlash(specifier))
		if file := resolveEntry(base); file != "" {
			return ports.Resolution{File: file, Package: pkg}, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	return ports.Resolution{}, zerr.With(domain.ErrNotResolved, "specifier", specifier)
}

// resolveEntry tries a resolved node_modules path as a file, with a .json
// suffix, and as a package directory.
func resolveEntry(base string) string {
	if info, err := os.Stat(base); err == nil {
		if !info.IsDir() {
			return base
		}
		candidate := filepath.Join(base, "tsconfig.json")
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
		return ""
	}
	if !strings.HasSuffix(base, ".json") {
		candidate := base + ".json"
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
	}
	return ""
}

// packageName extracts the package name from a bare specifier, keeping the
// scope segment for scoped packages.
func packageName(specifier string) string {
	spec := strings.TrimSpace(filepath.ToSlash(specifier))
	if spec == "" || strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		return ""
	}
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(parts[0], "@") {
		if len(parts) < 2 {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
