package domain

import (
	"regexp"
	"strings"
	"unique"

	"golang.org/x/text/cases"
)

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// Key is the normalized, interned identity of a package.
// Two requirements or distributions refer to the same package iff their keys are equal.
type Key struct {
	h unique.Handle[string]
}

// NormalizeKey folds case and collapses runs of '-', '_' and '.' into a single '-',
// so that "Foo_Bar", "foo-bar" and "FOO.bar" all share one key.
func NormalizeKey(name string) Key {
	folded := cases.Fold().String(strings.TrimSpace(name))
	return Key{h: unique.Make(separatorRuns.ReplaceAllString(folded, "-"))}
}

// NormalizeKeys normalizes every name in the slice.
func NormalizeKeys(names []string) []Key {
	res := make([]Key, len(names))
	for i, name := range names {
		res[i] = NormalizeKey(name)
	}
	return res
}

// String returns the normalized name.
func (k Key) String() string {
	if k.IsZero() {
		return ""
	}
	return k.h.Value()
}

// IsZero reports whether the key was never set.
func (k Key) IsZero() bool {
	return k.h == unique.Handle[string]{}
}

// Compare orders keys lexically by their normalized name.
func (k Key) Compare(other Key) int {
	return strings.Compare(k.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The text is normalized again so hand-edited state stays canonical.
func (k *Key) UnmarshalText(text []byte) error {
	*k = NormalizeKey(string(text))
	return nil
}
