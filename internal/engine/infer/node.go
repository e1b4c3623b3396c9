package infer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsinfer/internal/adapters/cache"
	"go.trai.ch/tsinfer/internal/adapters/fs"
	"go.trai.ch/tsinfer/internal/adapters/logger"
	"go.trai.ch/tsinfer/internal/adapters/npm"
	"go.trai.ch/tsinfer/internal/adapters/tsconfig"
	"go.trai.ch/tsinfer/internal/core/ports"
)

// NodeID is the unique identifier for the derivation engine Graft node.
const NodeID graft.ID = "engine.infer"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tsconfig.LoaderNodeID,
			npm.ResolverNodeID,
			npm.ManagerNodeID,
			fs.HasherNodeID,
			cache.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.ModuleResolver](ctx)
			if err != nil {
				return nil, err
			}
			manager, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.FileHasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEngine(loader, resolver, hasher, store, manager, log), nil
		},
	})
}
