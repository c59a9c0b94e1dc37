package ports

import (
	"context"

	"go.trai.ch/reqsync/internal/core/domain"
)

// EnvironmentInspector lists what is installed in an environment.
//
//go:generate mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type EnvironmentInspector interface {
	// Installed returns a snapshot of the distributions installed in env.
	Installed(ctx context.Context, env domain.Environment) ([]domain.InstalledDistribution, error)
}
