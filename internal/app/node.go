package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reqsync/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/reqsync/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/reqsync/internal/adapters/pip"       //nolint:depguard // Wired in app layer
	"go.trai.ch/reqsync/internal/adapters/reqfile"   //nolint:depguard // Wired in app layer
	"go.trai.ch/reqsync/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.trai.ch/reqsync/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/reqsync/internal/core/ports"
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
			reqfile.NodeID,
			pip.InspectorNodeID,
			pip.InstallerNodeID,
			state.NodeID,
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
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.RequirementReader](ctx)
	if err != nil {
		return nil, err
	}

	inspector, err := graft.Dep[ports.EnvironmentInspector](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[ports.Installer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SyncRecordStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, reader, inspector, installer, store, log, tracer), nil
}
