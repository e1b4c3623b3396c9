package npm_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsinfer/internal/adapters/npm"
)

func TestManager_LockfileName(t *testing.T) {
	m := npm.NewManager()

	t.Run("defaults to npm", func(t *testing.T) {
		assert.Equal(t, "package-lock.json", m.LockfileName(t.TempDir()))
	})

	t.Run("detects pnpm", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pnpm-lock.yaml"), "")
		assert.Equal(t, "pnpm-lock.yaml", m.LockfileName(root))
	})

	t.Run("npm wins over yarn", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "yarn.lock"), "")
		writeFile(t, filepath.Join(root, "package-lock.json"), "{}")
		assert.Equal(t, "package-lock.json", m.LockfileName(root))
	})
}

func TestManager_ReadPackage(t *testing.T) {
	m := npm.NewManager()

	t.Run("absent descriptor is not an error", func(t *testing.T) {
		pkg, err := m.ReadPackage(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, pkg)
	})

	t.Run("reads fields", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{
			"name": "@acme/lib",
			"main": "./dist/index.js",
			"exports": {".": {"types": "./dist/index.d.ts", "default": "./dist/index.js"}}
		}`)

		pkg, err := m.ReadPackage(dir)
		require.NoError(t, err)
		require.NotNil(t, pkg)
		assert.Equal(t, "@acme/lib", pkg.Name)
		assert.Equal(t, "./dist/index.js", pkg.Main)
		assert.NotNil(t, pkg.Exports)
	})

	t.Run("malformed descriptor fails", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{`)

		_, err := m.ReadPackage(dir)
		assert.Error(t, err)
	})
}
