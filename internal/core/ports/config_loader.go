package ports

import "go.trai.ch/reqsync/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd looking for a configuration file.
	// It returns an empty configuration when none is found.
	Load(cwd string) (*domain.Config, error)
}
