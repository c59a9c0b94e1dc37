package domain

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// pep440Pattern matches PEP 440 versions with at most three release segments.
var pep440Pattern = regexp.MustCompile(
	`^v?(?:(\d+)!)?(\d+(?:\.\d+)*)` +
		`(?:[-_.]?(a|b|c|rc|alpha|beta|pre|preview)[-_.]?(\d*))?` +
		`(?:-(\d+)|[-_.]?(post|rev|r)[-_.]?(\d*))?` +
		`(?:[-_.]?(dev)[-_.]?(\d*))?` +
		`(?:\+([a-z0-9]+(?:[-_.][a-z0-9]+)*))?$`,
)

// Pre-release phases in PEP 440 order.
const (
	phaseAlpha = iota + 1
	phaseBeta
	phaseRC
)

var phases = map[string]int{
	"a": phaseAlpha, "alpha": phaseAlpha,
	"b": phaseBeta, "beta": phaseBeta,
	"c": phaseRC, "rc": phaseRC, "pre": phaseRC, "preview": phaseRC,
}

// version is a parsed PEP 440 version. The release segments are held as a semver
// core; every suffix is ordered here.
type version struct {
	epoch      uint64
	release    *semver.Version
	releaseLen int
	phase      int // 0 when not a pre-release
	pre        uint64
	post       int64 // -1 when absent
	dev        int64 // -1 when absent
	local      []string
}

func parseVersion(v string) (*version, error) {
	m := pep440Pattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(v)))
	if m == nil {
		return nil, ErrInvalidVersion
	}

	segments := strings.Split(m[2], ".")
	if len(segments) > 3 {
		return nil, ErrInvalidVersion
	}
	nums := make([]uint64, 3)
	for i, s := range segments {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, ErrInvalidVersion
		}
		nums[i] = n
	}

	out := &version{
		release:    semver.New(nums[0], nums[1], nums[2], "", ""),
		releaseLen: len(segments),
		post:       -1,
		dev:        -1,
	}
	if m[1] != "" {
		out.epoch = atou(m[1])
	}
	if m[3] != "" {
		out.phase = phases[m[3]]
		out.pre = atou(m[4])
	}
	switch {
	case m[5] != "":
		out.post = int64(atou(m[5]))
	case m[6] != "":
		out.post = int64(atou(m[7]))
	}
	if m[8] != "" {
		out.dev = int64(atou(m[9]))
	}
	if m[10] != "" {
		out.local = strings.FieldsFunc(m[10], func(r rune) bool {
			return r == '.' || r == '-' || r == '_'
		})
	}
	return out, nil
}

func atou(s string) uint64 {
	n, _ := strconv.ParseUint(s, 10, 64)
	return n
}

// public returns v without its local label.
func (v *version) public() *version {
	p := *v
	p.local = nil
	return &p
}

func (v *version) isPre() bool  { return v.phase != 0 || v.dev >= 0 }
func (v *version) isPost() bool { return v.post >= 0 }

// compare orders two versions the way PEP 440 does, local labels included.
func (v *version) compare(o *version) int {
	if c := cmp.Compare(v.epoch, o.epoch); c != 0 {
		return c
	}
	if c := v.release.Compare(o.release); c != 0 {
		return c
	}
	if c := cmp.Compare(v.preKey(), o.preKey()); c != 0 {
		return c
	}
	if c := cmp.Compare(v.post, o.post); c != 0 {
		return c
	}
	if c := cmp.Compare(v.devKey(), o.devKey()); c != 0 {
		return c
	}
	return compareLocal(v.local, o.local)
}

// preKey places a bare dev release below every pre-release and a final release
// above them.
func (v *version) preKey() int64 {
	switch {
	case v.phase != 0:
		return int64(v.phase)<<32 | int64(v.pre&0xffffffff)
	case v.dev >= 0 && v.post < 0:
		return -1
	default:
		return 1 << 62
	}
}

func (v *version) devKey() int64 {
	if v.dev < 0 {
		return 1 << 62
	}
	return v.dev
}

// compareLocal orders local labels segment by segment. A missing label sorts
// first, numeric segments sort above alphanumeric ones.
func compareLocal(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return cmp.Compare(len(a), len(b))
	}
	for i := range min(len(a), len(b)) {
		an, aErr := strconv.ParseUint(a[i], 10, 64)
		bn, bErr := strconv.ParseUint(b[i], 10, 64)
		var c int
		switch {
		case aErr == nil && bErr == nil:
			c = cmp.Compare(an, bn)
		case aErr == nil:
			c = 1
		case bErr == nil:
			c = -1
		default:
			c = strings.Compare(a[i], b[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// releaseSegments returns the release numbers padded to three segments.
func (v *version) releaseSegments() []uint64 {
	return []uint64{v.release.Major(), v.release.Minor(), v.release.Patch()}
}
