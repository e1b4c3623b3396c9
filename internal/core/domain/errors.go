package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when a tsconfig file does not exist at the requested path.
	ErrConfigNotFound = zerr.New("tsconfig not found")

	// ErrConfigParse is returned when a tsconfig file exists but cannot be parsed.
	ErrConfigParse = zerr.New("tsconfig parse failed")

	// ErrNotResolved is returned when a module specifier cannot be resolved
	// through the module resolution mechanism.
	ErrNotResolved = zerr.New("specifier not resolved")

	// ErrPlanFailed is returned when one or more configuration files in a batch
	// failed to derive. Per-file errors are carried in the batch result.
	ErrPlanFailed = zerr.New("plan derivation failed")
)
