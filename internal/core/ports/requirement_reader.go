// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/reqsync/internal/core/domain"
)

// RequirementReader reads requirement sources.
//
//go:generate mockgen -source=requirement_reader.go -destination=mocks/mock_requirement_reader.go -package=mocks
type RequirementReader interface {
	// Read parses each path into its requirements and embedded installer options.
	// Results are returned in the order of paths. A malformed line fails the whole read.
	Read(ctx context.Context, paths []string) ([]domain.RequirementFile, error)
}
