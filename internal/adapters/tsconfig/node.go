package tsconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsinfer/internal/core/ports"
)

const (
	// ParserNodeID is the unique identifier for the tsconfig parser Graft node.
	ParserNodeID graft.ID = "adapter.tsconfig.parser"
	// LoaderNodeID is the unique identifier for the config loader Graft node.
	LoaderNodeID graft.ID = "adapter.tsconfig.loader"
)

func init() {
	graft.Register(graft.Node[ports.ConfigParser]{
		ID:        ParserNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ConfigParser, error) {
			return NewParser(), nil
		},
	})

	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ParserNodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			parser, err := graft.Dep[ports.ConfigParser](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(parser)
		},
	})
}
