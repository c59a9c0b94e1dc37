package config

// Projectfile is the structure of .reqsync.yaml and reqsync.toml.
type Projectfile struct {
	Version      string     `yaml:"version" toml:"version"`
	Requirements []string   `yaml:"requirements" toml:"requirements"`
	Python       string     `yaml:"python" toml:"python"`
	Protected    []string   `yaml:"protected" toml:"protected"`
	Install      InstallDTO `yaml:"install" toml:"install"`
}

// InstallDTO holds the default installer options.
type InstallDTO struct {
	IndexURL       string   `yaml:"index_url" toml:"index_url"`
	ExtraIndexURLs []string `yaml:"extra_index_urls" toml:"extra_index_urls"`
	FindLinks      []string `yaml:"find_links" toml:"find_links"`
	TrustedHosts   []string `yaml:"trusted_hosts" toml:"trusted_hosts"`
	NoIndex        bool     `yaml:"no_index" toml:"no_index"`
	Prefix         string   `yaml:"prefix" toml:"prefix"`
	NoCache        bool     `yaml:"no_cache" toml:"no_cache"`
}
