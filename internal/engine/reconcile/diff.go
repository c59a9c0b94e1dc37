package reconcile

import (
	"slices"

	"go.trai.ch/reqsync/internal/core/domain"
)

// Diff computes the actions that bring installed in line with merged.
//
// Missing and unsatisfied requirements are installed; source requirements are always
// reinstalled because an installed version number cannot prove where it came from.
// Installed distributions that nothing requires are uninstalled unless protected, or
// required by something protected.
func Diff(
	merged *domain.MergedRequirementSet,
	installed []domain.InstalledDistribution,
	protected domain.ProtectedSet,
) domain.SyncDiff {
	protected = protected.Closure(installed)

	byKey := make(map[domain.Key]domain.InstalledDistribution, len(installed))
	for _, dist := range installed {
		byKey[dist.Key] = dist
	}

	var diff domain.SyncDiff
	for key, req := range merged.All() {
		dist, ok := byKey[key]
		if ok && !req.IsSource() && req.SatisfiedBy(dist.Version) {
			diff.Unchanged = append(diff.Unchanged, key)
			continue
		}
		diff.ToInstall = append(diff.ToInstall, req)
	}

	keys := make([]domain.Key, 0, len(byKey))
	for key := range byKey {
		if _, required := merged.Get(key); !required {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, domain.Key.Compare)

	for _, key := range keys {
		if protected.Contains(key) {
			diff.Protected = append(diff.Protected, key)
			continue
		}
		diff.ToUninstall = append(diff.ToUninstall, byKey[key])
	}

	return diff
}
