package timeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rewind/internal/core/ports"
)

// NodeID is the unique identifier for the timeline store Graft node.
const NodeID graft.ID = "adapter.timeline_store"

func init() {
	graft.Register(graft.Node[ports.TimelineStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TimelineStore, error) {
			return NewStore(), nil
		},
	})
}
