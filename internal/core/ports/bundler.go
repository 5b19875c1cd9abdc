// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/crxbuild/internal/core/domain"
)

// Bundler is the external build engine.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle builds entry, a path relative to cfg.Root, and returns the produced
	// artifacts in engine order.
	//
	// Implementations must treat entry as the sole input, apply cfg.Alias and
	// cfg.Plugins, ignore build configuration files found on disk, and must not
	// write to disk.
	Bundle(ctx context.Context, entry string, cfg domain.Config) (domain.Bundle, error)
}
