package domain

// InstalledDistribution is a package currently present in the environment.
type InstalledDistribution struct {
	// Key is the normalized package identity.
	Key Key

	// Name is the project name as reported by the environment.
	Name string

	// Version is the concrete installed version.
	Version string

	// Requires holds the keys of the distributions this one depends on.
	Requires []Key
}

// NewInstalledDistribution creates an InstalledDistribution from raw metadata.
func NewInstalledDistribution(name, version string, requires ...string) InstalledDistribution {
	return InstalledDistribution{
		Key:      NormalizeKey(name),
		Name:     name,
		Version:  version,
		Requires: NormalizeKeys(requires),
	}
}

// String renders the distribution as "name==version".
func (d InstalledDistribution) String() string {
	name := d.Name
	if name == "" {
		name = d.Key.String()
	}
	if d.Version == "" {
		return name
	}
	return name + "==" + d.Version
}
