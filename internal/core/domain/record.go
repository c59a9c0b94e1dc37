package domain

import "time"

// SyncRecord describes the last successful sync of a project.
type SyncRecord struct {
	// Digest identifies the merged requirement set that was applied.
	Digest string `msgpack:"digest"`
	// Sources are the requirement files the set was read from.
	Sources []string `msgpack:"sources"`
	// Packages is the number of requirements in the merged set.
	Packages int `msgpack:"packages"`
	// Installed is the number of requirements installed by the sync.
	Installed int `msgpack:"installed"`
	// Uninstalled is the number of distributions removed by the sync.
	Uninstalled int `msgpack:"uninstalled"`
	// SyncedAt is when the sync finished.
	SyncedAt time.Time `msgpack:"synced_at"`
}
