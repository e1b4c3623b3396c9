package ports

import "go.trai.ch/tsinfer/internal/core/domain"

// ConfigLoader loads parsed tsconfig records, memoized per (path, mtime) so
// repeated lookups during one traversal, or across configs sharing an
// extended base, do not re-parse.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the record for the config file at path. It fails with
	// domain.ErrConfigNotFound if the path does not exist and with
	// domain.ErrConfigParse if the underlying parser rejects the file.
	// Failed loads are never cached.
	Load(path string) (*domain.TsConfig, error)
}

// ConfigParser parses one tsconfig file. It is the black-box compiler
// configuration parser the loader memoizes.
type ConfigParser interface {
	// Parse reads and resolves the config file at path.
	Parse(path string) (*domain.TsConfig, error)
}
