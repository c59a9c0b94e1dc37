// Package reconcile merges requirement sources and diffs them against an environment.
package reconcile

import "go.trai.ch/reqsync/internal/core/domain"

// Merge combines requirement lists, in source order, into one set with exactly one
// requirement per package.
//
// A repeated package with a compatible specifier keeps the first one seen. An
// incompatible specifier fails the whole merge with a *domain.ConflictError, unless
// ignoreConflicts is set, in which case the later requirement replaces the earlier one.
func Merge(lists [][]domain.Requirement, ignoreConflicts bool) (*domain.MergedRequirementSet, error) {
	var merged []domain.Requirement
	index := make(map[domain.Key]int)

	for _, list := range lists {
		for _, req := range list {
			i, seen := index[req.Key]
			if !seen {
				index[req.Key] = len(merged)
				merged = append(merged, req)
				continue
			}

			existing := merged[i]
			if domain.SpecifiersCompatible(existing, req) {
				continue
			}

			if !ignoreConflicts {
				return nil, &domain.ConflictError{
					Key:      req.Key,
					Existing: existing,
					Incoming: req,
				}
			}
			merged[i] = req
		}
	}

	return domain.NewMergedRequirementSet(merged...), nil
}
