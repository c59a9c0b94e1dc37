package domain

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var clausePattern = regexp.MustCompile(`^(===|~=|==|!=|<=|>=|<|>)(.+)$`)

// clause is a single comparison of a version constraint.
type clause struct {
	op      string
	version string
}

// NormalizeSpecifier canonicalizes a version constraint expression:
// whitespace is removed, case is folded and clauses are sorted.
func NormalizeSpecifier(spec string) string {
	spec = strings.ToLower(strings.Join(strings.Fields(spec), ""))
	if spec == "" {
		return ""
	}

	parts := strings.Split(spec, ",")
	clauses := parts[:0]
	for _, p := range parts {
		if p != "" {
			clauses = append(clauses, p)
		}
	}
	slices.Sort(clauses)
	return strings.Join(clauses, ",")
}

// ValidateSpecifier normalizes spec and checks that every clause has a known
// operator and a version.
func ValidateSpecifier(spec string) (string, error) {
	normalized := NormalizeSpecifier(spec)
	if _, err := parseClauses(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// SpecifiersCompatible reports whether two requirements for the same package
// ask for the same thing. Identical normalized specifiers are compatible, and so are
// single exact pins whose versions compare equal, local labels included. Source requirements are compatible
// only with the same source in the same editable mode.
func SpecifiersCompatible(a, b Requirement) bool {
	if a.IsSource() != b.IsSource() {
		return false
	}

	if a.IsSource() {
		return a.Editable == b.Editable && normalizeSource(a.Source) == normalizeSource(b.Source)
	}

	na, nb := NormalizeSpecifier(a.Specifier), NormalizeSpecifier(b.Specifier)
	if na == nb {
		return true
	}

	ca, errA := parseClauses(na)
	cb, errB := parseClauses(nb)
	if errA != nil || errB != nil || len(ca) != 1 || len(cb) != 1 {
		return false
	}
	if ca[0].op != "==" || cb[0].op != "==" {
		return false
	}

	va, errA := parseVersion(ca[0].version)
	vb, errB := parseVersion(cb[0].version)
	if errA != nil || errB != nil {
		return false
	}
	return va.compare(vb) == 0
}

// SatisfiedBy reports whether an installed version meets the requirement.
// Source requirements are never satisfied by a version number. An empty
// specifier accepts any version. Versions or clauses that cannot be compared are
// treated as unsatisfied unless they are exact pins of the same literal version.
func (r Requirement) SatisfiedBy(installed string) bool {
	if r.IsSource() {
		return false
	}

	clauses, err := parseClauses(NormalizeSpecifier(r.Specifier))
	if err != nil {
		return false
	}

	for _, c := range clauses {
		if !c.satisfiedBy(installed) {
			return false
		}
	}
	return true
}

func parseClauses(spec string) ([]clause, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, ",")
	clauses := make([]clause, 0, len(parts))
	for _, p := range parts {
		m := clausePattern.FindStringSubmatch(p)
		if m == nil {
			return nil, ErrInvalidSpecifier
		}
		clauses = append(clauses, clause{op: m[1], version: m[2]})
	}
	return clauses, nil
}

func (c clause) satisfiedBy(installed string) bool {
	if c.op == "===" {
		return strings.EqualFold(c.version, installed)
	}

	iv, err := parseVersion(installed)
	if err != nil {
		return c.literalMatch(installed)
	}

	if prefix, ok := strings.CutSuffix(c.version, ".*"); ok {
		matches := wildcardMatch(prefix, iv)
		switch c.op {
		case "==":
			return matches
		case "!=":
			return !matches
		default:
			return false
		}
	}

	cv, err := parseVersion(c.version)
	if err != nil {
		return c.literalMatch(installed)
	}

	switch c.op {
	case "==":
		return pinMatch(cv, iv)
	case "!=":
		return !pinMatch(cv, iv)
	case "~=":
		return compatibleRelease(cv, iv)
	}

	// Ordered comparisons ignore the installed local label.
	cmp := iv.public().compare(cv)
	switch c.op {
	case "<":
		return cmp < 0 && !(iv.isPre() && !cv.isPre() && sameRelease(iv, cv))
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0 && !(iv.isPost() && !cv.isPost() && sameRelease(iv, cv))
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

func (c clause) literalMatch(installed string) bool {
	return c.op == "==" && strings.EqualFold(c.version, installed)
}

// pinMatch implements "==V". A pin without a local label matches any local build
// of V; a pin with one matches only that build.
func pinMatch(cv, iv *version) bool {
	if len(cv.local) == 0 {
		return iv.public().compare(cv) == 0
	}
	return iv.compare(cv) == 0
}

// sameRelease reports whether two versions share epoch and release segments.
func sameRelease(a, b *version) bool {
	return a.epoch == b.epoch && a.release.Equal(b.release)
}

// wildcardMatch implements "==X.Y.*": every release segment of the prefix must
// equal the corresponding segment of the installed version.
func wildcardMatch(prefix string, iv *version) bool {
	segments := strings.Split(prefix, ".")
	installed := iv.releaseSegments()
	if len(segments) > len(installed) {
		return false
	}
	for i, s := range segments {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n != installed[i] {
			return false
		}
	}
	return true
}

// compatibleRelease implements "~=X.Y[.Z]": at least X.Y[.Z], and matching every
// release segment but the last.
func compatibleRelease(cv, iv *version) bool {
	if len(cv.local) > 0 || iv.public().compare(cv) < 0 || iv.epoch != cv.epoch {
		return false
	}

	release := cv.releaseSegments()[:cv.releaseLen]
	if len(release) < 2 {
		return false
	}
	installed := iv.releaseSegments()
	for i, n := range release[:len(release)-1] {
		if installed[i] != n {
			return false
		}
	}
	return true
}

func normalizeSource(src string) string {
	return strings.TrimSuffix(strings.TrimSpace(src), "/")
}
