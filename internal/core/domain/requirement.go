package domain

import (
	"strings"
)

// SpecifierKind tells how a requirement pins its package.
type SpecifierKind uint8

const (
	// SpecifierVersion is a version constraint expression such as "==1.0" or ">=2,<3".
	SpecifierVersion SpecifierKind = iota
	// SpecifierSource is a non-versioned install source: an editable path, a VCS URL,
	// a local archive or a direct URL.
	SpecifierSource
)

// String returns a short name for the kind.
func (k SpecifierKind) String() string {
	if k == SpecifierSource {
		return "source"
	}
	return "version"
}

// Requirement is a single declared package requirement.
type Requirement struct {
	// Key is the normalized package identity.
	Key Key

	// Name is the package name as it was written.
	Name string

	// Extras are the optional feature sets requested in brackets.
	Extras []string

	// Specifier is the normalized version constraint. Empty means any version.
	// It is always empty for source requirements.
	Specifier string

	// Source is the install source for non-versioned requirements.
	Source string

	// Editable marks a source requirement installed in development mode.
	Editable bool

	// Marker is the environment marker following ';'. It is carried to the
	// installer verbatim and never evaluated here.
	Marker string

	// Origin is "file:line" of the line the requirement was read from.
	Origin string
}

// NewVersionRequirement builds a requirement pinned by a version constraint.
func NewVersionRequirement(name, specifier string) Requirement {
	return Requirement{
		Key:       NormalizeKey(name),
		Name:      strings.TrimSpace(name),
		Specifier: NormalizeSpecifier(specifier),
	}
}

// NewSourceRequirement builds a requirement installed from a source location.
func NewSourceRequirement(name, source string, editable bool) Requirement {
	return Requirement{
		Key:      NormalizeKey(name),
		Name:     strings.TrimSpace(name),
		Source:   strings.TrimSpace(source),
		Editable: editable,
	}
}

// Kind reports whether the requirement is version or source based.
func (r Requirement) Kind() SpecifierKind {
	if r.Source != "" {
		return SpecifierSource
	}
	return SpecifierVersion
}

// IsSource reports whether the requirement names a non-versioned install source.
func (r Requirement) IsSource() bool {
	return r.Kind() == SpecifierSource
}

// SpecifierString renders only the specifier part, as used in conflict messages.
func (r Requirement) SpecifierString() string {
	switch {
	case r.Editable:
		return "-e " + r.Source
	case r.IsSource():
		return "@ " + r.Source
	case r.Specifier == "":
		return "(any)"
	default:
		return r.Specifier
	}
}

// String renders the requirement the way it would appear in a requirements file.
func (r Requirement) String() string {
	if r.Editable {
		return "-e " + r.Source
	}

	var b strings.Builder
	b.WriteString(r.displayName())
	if r.IsSource() {
		b.WriteString(" @ ")
		b.WriteString(r.Source)
	} else {
		b.WriteString(r.Specifier)
	}
	if r.Marker != "" {
		b.WriteString("; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}

// InstallArgs returns the installer arguments that request this requirement.
func (r Requirement) InstallArgs() []string {
	switch {
	case r.Editable:
		return []string{"-e", r.Source}
	case r.IsSource() && !strings.Contains(r.Source, "://"):
		// Local paths and archives are handed to the installer as-is.
		return []string{r.Source}
	default:
		return []string{r.String()}
	}
}

func (r Requirement) displayName() string {
	name := r.Name
	if name == "" {
		name = r.Key.String()
	}
	if len(r.Extras) == 0 {
		return name
	}
	return name + "[" + strings.Join(r.Extras, ",") + "]"
}
