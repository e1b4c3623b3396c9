package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsinfer/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/tsinfer/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/tsinfer/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tsinfer/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/tsinfer/internal/engine/infer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			infer.NodeID,
			fs.WalkerNodeID,
			cache.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			engine, err := graft.Dep[*infer.Engine](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(engine, walker, store, recorder, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
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

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
