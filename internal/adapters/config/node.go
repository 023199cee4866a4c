package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rewind/internal/adapters/logger"
	"go.trai.ch/rewind/internal/core/ports"
)

// NodeID is the unique identifier for the scenario loader Graft node.
const NodeID graft.ID = "adapter.scenario_loader"

func init() {
	graft.Register(graft.Node[ports.ScenarioLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScenarioLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
