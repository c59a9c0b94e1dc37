package ports

import "go.trai.ch/reqsync/internal/core/domain"

// Reporter presents reconciliation results to the user.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// UpToDate reports that the environment already matches.
	UpToDate()

	// Plan reports the actions a dry run would take.
	Plan(diff domain.SyncDiff)

	// Summary reports the outcome of an applied sync.
	Summary(result domain.SyncResult)

	// Status reports the last sync record and whether it still matches the requirements.
	Status(record *domain.SyncRecord, currentDigest string)
}
