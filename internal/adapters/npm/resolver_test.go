package npm_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsinfer/internal/adapters/npm"
	"go.trai.ch/tsinfer/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolver_WalksNodeModulesUpward(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "node_modules", "@tsconfig", "strictest", "tsconfig.json")
	writeFile(t, target, `{}`)

	fromDir := filepath.Join(root, "packages", "lib")
	require.NoError(t, os.MkdirAll(fromDir, 0o755))

	res, err := npm.NewResolver().Resolve("@tsconfig/strictest/tsconfig.json", fromDir)
	require.NoError(t, err)
	assert.Equal(t, target, res.File)
	assert.Equal(t, "@tsconfig/strictest", res.Package)
}

func TestResolver_AppendsJSONSuffix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "presets", "base.json"), `{}`)

	res, err := npm.NewResolver().Resolve("presets/base", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "node_modules", "presets", "base.json"), res.File)
	assert.Equal(t, "presets", res.Package)
}

func TestResolver_PackageDirectoryFallsBackToTsconfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "presets", "tsconfig.json"), `{}`)

	res, err := npm.NewResolver().Resolve("presets", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "node_modules", "presets", "tsconfig.json"), res.File)
}

func TestResolver_NotResolved(t *testing.T) {
	root := t.TempDir()

	_, err := npm.NewResolver().Resolve("nothing-here", root)
	assert.True(t, errors.Is(err, domain.ErrNotResolved))

	_, err = npm.NewResolver().Resolve("./relative", root)
	assert.True(t, errors.Is(err, domain.ErrNotResolved))
}
