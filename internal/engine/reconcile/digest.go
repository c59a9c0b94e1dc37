package reconcile

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/reqsync/internal/core/domain"
)

// Digest identifies a merged requirement set independently of source order.
func Digest(merged *domain.MergedRequirementSet) string {
	reqs := merged.Requirements()
	slices.SortFunc(reqs, func(a, b domain.Requirement) int {
		return a.Key.Compare(b.Key)
	})

	h := xxhash.New()
	for _, r := range reqs {
		for _, field := range []string{
			r.Key.String(),
			r.Kind().String(),
			domain.NormalizeSpecifier(r.Specifier),
			r.Source,
			strconv.FormatBool(r.Editable),
			r.Marker,
		} {
			_, _ = h.WriteString(field)
			// Separator so ["ab", "c"] and ["a", "bc"] hash differently.
			_, _ = h.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
