package domain

// SyncDiff is the set of actions that brings an environment in line with a merged
// requirement set. A key never appears in both ToInstall and ToUninstall.
type SyncDiff struct {
	// ToInstall holds requirements that are missing, unsatisfied or source based.
	ToInstall []Requirement

	// ToUninstall holds installed distributions that nothing requires.
	ToUninstall []InstalledDistribution

	// Unchanged holds keys whose installed version already satisfies the requirement.
	Unchanged []Key

	// Protected holds keys that would have been uninstalled but are protected.
	Protected []Key
}

// IsEmpty reports whether the diff requires no action.
func (d SyncDiff) IsEmpty() bool {
	return len(d.ToInstall) == 0 && len(d.ToUninstall) == 0
}

// ItemResult is the outcome of one install or uninstall item.
type ItemResult struct {
	// Key is the package the item refers to.
	Key Key
	// Label is the human-readable form of the item.
	Label string
	// Err is nil when the item succeeded.
	Err error
}

// Failed reports whether the item failed.
func (r ItemResult) Failed() bool {
	return r.Err != nil
}

// SyncResult summarizes one applied sync pass.
type SyncResult struct {
	Uninstalled []ItemResult
	Installed   []ItemResult
}

// Failures returns all failed items, uninstalls first.
func (r SyncResult) Failures() []ItemResult {
	var failed []ItemResult
	for _, items := range [][]ItemResult{r.Uninstalled, r.Installed} {
		for _, item := range items {
			if item.Failed() {
				failed = append(failed, item)
			}
		}
	}
	return failed
}
