package domain

// DefaultProtected lists the packages the installer itself needs to keep working.
// They are never uninstalled automatically.
var DefaultProtected = []string{"pip", "setuptools", "wheel", "distribute", "reqsync"}

// ProtectedSet is the allow-list of packages excluded from automatic uninstalls.
type ProtectedSet struct {
	keys map[Key]struct{}
}

// NewProtectedSet creates a set from package names.
func NewProtectedSet(names ...string) ProtectedSet {
	p := ProtectedSet{keys: make(map[Key]struct{}, len(names))}
	for _, k := range NormalizeKeys(names) {
		p.keys[k] = struct{}{}
	}
	return p
}

// DefaultProtectedSet returns DefaultProtected extended with extra names.
func DefaultProtectedSet(extra ...string) ProtectedSet {
	names := make([]string, 0, len(DefaultProtected)+len(extra))
	names = append(names, DefaultProtected...)
	names = append(names, extra...)
	return NewProtectedSet(names...)
}

// Contains reports whether the key is protected.
func (p ProtectedSet) Contains(k Key) bool {
	_, ok := p.keys[k]
	return ok
}

// Len returns the number of protected keys.
func (p ProtectedSet) Len() int {
	return len(p.keys)
}

// Closure extends the set with everything the protected distributions require,
// transitively, according to the installed snapshot.
func (p ProtectedSet) Closure(installed []InstalledDistribution) ProtectedSet {
	requires := make(map[Key][]Key, len(installed))
	for _, d := range installed {
		requires[d.Key] = d.Requires
	}

	out := ProtectedSet{keys: make(map[Key]struct{}, len(p.keys))}
	queue := make([]Key, 0, len(p.keys))
	for k := range p.keys {
		out.keys[k] = struct{}{}
		queue = append(queue, k)
	}

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		for _, dep := range requires[k] {
			if _, seen := out.keys[dep]; seen {
				continue
			}
			out.keys[dep] = struct{}{}
			queue = append(queue, dep)
		}
	}
	return out
}
