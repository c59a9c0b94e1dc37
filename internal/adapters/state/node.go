package state

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/reqsync/internal/core/ports"
)

// NodeID is the unique identifier for the sync record store Graft node.
const NodeID graft.ID = "adapter.sync_record_store"

func init() {
	graft.Register(graft.Node[ports.SyncRecordStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SyncRecordStore, error) {
			return NewStore(afero.NewOsFs()), nil
		},
	})
}
