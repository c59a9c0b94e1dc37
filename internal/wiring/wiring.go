// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/reqsync/internal/adapters/config"
	_ "go.trai.ch/reqsync/internal/adapters/logger"
	_ "go.trai.ch/reqsync/internal/adapters/pip"
	_ "go.trai.ch/reqsync/internal/adapters/reqfile"
	_ "go.trai.ch/reqsync/internal/adapters/shell"
	_ "go.trai.ch/reqsync/internal/adapters/state"
	_ "go.trai.ch/reqsync/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/reqsync/internal/app"
)
