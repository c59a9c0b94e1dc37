// Package config loads the optional project configuration file.
package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only accepted value of the version key.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader for YAML and TOML project files.
type Loader struct {
	fs     afero.Fs
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(fsys afero.Fs, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load walks up from cwd to the filesystem root and reads the first project file
// found. Without one, an empty configuration is returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := l.find(cwd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &domain.Config{}, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	var pf Projectfile
	if filepath.Base(path) == domain.TOMLConfigFileName {
		err = decodeTOML(data, &pf)
	} else {
		err = decodeYAML(data, &pf)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}

	if pf.Version != "" && pf.Version != SupportedVersion {
		return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "file", path), "version", pf.Version)
	}

	return toDomain(path, &pf), nil
}

func decodeYAML(data []byte, pf *Projectfile) error {
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(pf)
}

func decodeTOML(data []byte, pf *Projectfile) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(pf)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return zerr.With(domain.ErrUnknownConfigKeys, "keys", strings.Join(keys, ", "))
	}
	return nil
}

func (l *Loader) find(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	for {
		yamlPath := filepath.Join(dir, domain.ConfigFileName)
		tomlPath := filepath.Join(dir, domain.TOMLConfigFileName)
		hasYAML := l.exists(yamlPath)
		hasTOML := l.exists(tomlPath)

		switch {
		case hasYAML && hasTOML:
			l.logger.Warn(fmt.Sprintf("both %s and %s found in %s, using %s",
				domain.ConfigFileName, domain.TOMLConfigFileName, dir, domain.ConfigFileName))
			return yamlPath, nil
		case hasYAML:
			return yamlPath, nil
		case hasTOML:
			return tomlPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (l *Loader) exists(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// toDomain resolves paths relative to the directory of the config file.
func toDomain(path string, pf *Projectfile) *domain.Config {
	root := filepath.Dir(path)

	requirements := make([]string, 0, len(pf.Requirements))
	for _, r := range pf.Requirements {
		requirements = append(requirements, resolve(root, r))
	}

	python := pf.Python
	if strings.ContainsRune(python, '/') || strings.ContainsRune(python, filepath.Separator) {
		python = resolve(root, python)
	}

	var findLinks []string
	for _, link := range pf.Install.FindLinks {
		findLinks = append(findLinks, resolveLocal(root, link))
	}

	return &domain.Config{
		Path:         path,
		Requirements: requirements,
		Python:       python,
		Protected:    pf.Protected,
		Install: domain.InstallOptions{
			FindLinks:      findLinks,
			TrustedHosts:   pf.Install.TrustedHosts,
			IndexURL:       pf.Install.IndexURL,
			ExtraIndexURLs: pf.Install.ExtraIndexURLs,
			NoIndex:        pf.Install.NoIndex,
			Prefix:         resolveLocal(root, pf.Install.Prefix),
			NoCache:        pf.Install.NoCache,
		},
	}
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// resolveLocal resolves p like resolve unless it is empty or a URL.
func resolveLocal(root, p string) string {
	if p == "" || strings.Contains(p, "://") || strings.HasPrefix(p, "file:") {
		return p
	}
	return resolve(root, p)
}
