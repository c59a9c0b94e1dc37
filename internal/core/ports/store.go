package ports

import "go.trai.ch/reqsync/internal/core/domain"

// SyncRecordStore persists the record of the last successful sync.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SyncRecordStore interface {
	// Get retrieves the record stored under root.
	// Returns nil, nil if not found.
	Get(root string) (*domain.SyncRecord, error)

	// Put stores the record under root.
	Put(root string, record domain.SyncRecord) error
}
