package app

import (
	"go.trai.ch/crxbuild/internal/adapters/telemetry"
	"go.trai.ch/crxbuild/internal/core/ports"
)

// Components contains the initialized application components used by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry *telemetry.Provider
}
