// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tsinfer/internal/adapters/cache"
	_ "go.trai.ch/tsinfer/internal/adapters/fs"
	_ "go.trai.ch/tsinfer/internal/adapters/logger"
	_ "go.trai.ch/tsinfer/internal/adapters/npm"
	_ "go.trai.ch/tsinfer/internal/adapters/telemetry"
	_ "go.trai.ch/tsinfer/internal/adapters/tsconfig"
	// Register app and engine nodes.
	_ "go.trai.ch/tsinfer/internal/app"
	_ "go.trai.ch/tsinfer/internal/engine/infer"
)
