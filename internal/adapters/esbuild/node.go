package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crxbuild/internal/adapters/logger"
	"go.trai.ch/crxbuild/internal/core/ports"
)

// NodeID is the unique identifier for the esbuild bundler Graft node.
const NodeID graft.ID = "adapter.esbuild"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
