// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/crxbuild/internal/adapters/config"
	_ "go.trai.ch/crxbuild/internal/adapters/esbuild"
	_ "go.trai.ch/crxbuild/internal/adapters/logger"
	_ "go.trai.ch/crxbuild/internal/adapters/manifest"
	_ "go.trai.ch/crxbuild/internal/adapters/telemetry"
	_ "go.trai.ch/crxbuild/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/crxbuild/internal/app"
)
