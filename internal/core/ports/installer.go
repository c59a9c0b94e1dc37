package ports

import (
	"context"

	"go.trai.ch/reqsync/internal/core/domain"
)

// Installer applies install and uninstall actions to an environment.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install installs all requirements in one invocation carrying flags verbatim.
	// It returns one result per requirement.
	Install(ctx context.Context, env domain.Environment, reqs []domain.Requirement, flags []string) []domain.ItemResult

	// Uninstall removes a single distribution.
	Uninstall(ctx context.Context, env domain.Environment, dist domain.InstalledDistribution, flags []string) domain.ItemResult
}
