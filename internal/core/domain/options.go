package domain

// InstallOptions are the installer options gathered from requirement files,
// the project config and the command line.
type InstallOptions struct {
	FindLinks      []string
	TrustedHosts   []string
	IndexURL       string
	ExtraIndexURLs []string
	NoIndex        bool
	Prefix         string
	NoCache        bool
}

// Merge returns o extended by other: lists are appended, flags are or-ed and
// single values from other win when set.
func (o InstallOptions) Merge(other InstallOptions) InstallOptions {
	merged := InstallOptions{
		FindLinks:      append(append([]string(nil), o.FindLinks...), other.FindLinks...),
		TrustedHosts:   append(append([]string(nil), o.TrustedHosts...), other.TrustedHosts...),
		IndexURL:       o.IndexURL,
		ExtraIndexURLs: append(append([]string(nil), o.ExtraIndexURLs...), other.ExtraIndexURLs...),
		NoIndex:        o.NoIndex || other.NoIndex,
		Prefix:         o.Prefix,
		NoCache:        o.NoCache || other.NoCache,
	}
	if other.IndexURL != "" {
		merged.IndexURL = other.IndexURL
	}
	if other.Prefix != "" {
		merged.Prefix = other.Prefix
	}
	return merged
}

// InstallFlags renders the installer flags. Options read from requirement files
// come first, followed by those given by the user.
func InstallFlags(fromFiles, fromUser InstallOptions) []string {
	var flags []string
	for _, link := range fromFiles.FindLinks {
		flags = append(flags, "-f", link)
	}
	for _, host := range fromFiles.TrustedHosts {
		flags = append(flags, "--trusted-host", host)
	}
	for _, link := range fromUser.FindLinks {
		flags = append(flags, "-f", link)
	}
	for _, host := range fromUser.TrustedHosts {
		flags = append(flags, "--trusted-host", host)
	}
	if fromFiles.NoIndex || fromUser.NoIndex {
		flags = append(flags, "--no-index")
	}

	indexURL := fromUser.IndexURL
	if indexURL == "" {
		indexURL = fromFiles.IndexURL
	}
	if indexURL != "" {
		flags = append(flags, "-i", indexURL)
	}

	for _, extra := range fromFiles.ExtraIndexURLs {
		flags = append(flags, "--extra-index-url", extra)
	}
	for _, extra := range fromUser.ExtraIndexURLs {
		flags = append(flags, "--extra-index-url", extra)
	}
	if fromUser.Prefix != "" {
		flags = append(flags, "--prefix", fromUser.Prefix)
	}
	if fromUser.NoCache {
		flags = append(flags, "--no-cache-dir")
	}
	return flags
}

// RequirementFile is the parsed content of one requirements file, including the
// files it includes.
type RequirementFile struct {
	// Path is the file as it was given.
	Path string
	// Requirements are in file order.
	Requirements []Requirement
	// Options are the installer options embedded in the file.
	Options InstallOptions
}

// Environment identifies the Python environment being reconciled.
type Environment struct {
	// Python is the interpreter whose pip manages the environment.
	Python string
}
