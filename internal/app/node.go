package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crxbuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crxbuild/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crxbuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crxbuild/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/crxbuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/crxbuild/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crxbuild/internal/core/ports"
	"go.trai.ch/crxbuild/internal/engine/popup"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			esbuild.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifestLoader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, manifestLoader, bundler, w, log).
		WithTracer(provider.Tracer(popup.TracerName)), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: provider,
	}, nil
}
