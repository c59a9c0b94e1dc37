package reqfile

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/reqsync/internal/core/ports"
)

// NodeID is the unique identifier for the requirement reader Graft node.
const NodeID graft.ID = "adapter.reqfile"

func init() {
	graft.Register(graft.Node[ports.RequirementReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RequirementReader, error) {
			return NewReader(afero.NewOsFs()), nil
		},
	})
}
