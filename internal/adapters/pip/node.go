package pip

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/reqsync/internal/adapters/logger"
	"go.trai.ch/reqsync/internal/adapters/shell"
	"go.trai.ch/reqsync/internal/core/ports"
)

const (
	// InspectorNodeID is the unique identifier for the inspector Graft node.
	InspectorNodeID graft.ID = "adapter.pip.inspector"
	// InstallerNodeID is the unique identifier for the installer Graft node.
	InstallerNodeID graft.ID = "adapter.pip.installer"
)

func init() {
	graft.Register(graft.Node[ports.EnvironmentInspector]{
		ID:        InspectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentInspector, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInspector(runner, log), nil
		},
	})

	graft.Register(graft.Node[ports.Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner, os.Stdout, os.Stderr), nil
		},
	})
}
