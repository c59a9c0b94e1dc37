package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reqsync/internal/adapters/config"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, files map[string]string) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), domain.FilePerm))
	}
	log := mocks.NewMockLogger(gomock.NewController(t))
	return config.NewLoader(fsys, log), log
}

func TestLoad_YAMLFromParent(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/project/.reqsync.yaml": `
version: "1"
requirements:
  - requirements/base.txt
  - /abs/dev.txt
python: .venv/bin/python
protected: [pip-tools]
install:
  index_url: https://pypi.example.com/simple
  extra_index_urls: [https://extra.example.com/simple]
  find_links: [./wheels]
  trusted_hosts: [pypi.example.com]
  no_index: true
  prefix: /opt/env
  no_cache: true
`,
		"/project/src/app/placeholder": "",
	})

	cfg, err := loader.Load("/project/src/app")

	require.NoError(t, err)
	assert.Equal(t, &domain.Config{
		Path:         filepath.Join("/project", domain.ConfigFileName),
		Requirements: []string{"/project/requirements/base.txt", "/abs/dev.txt"},
		Python:       "/project/.venv/bin/python",
		Protected:    []string{"pip-tools"},
		Install: domain.InstallOptions{
			FindLinks:      []string{"/project/wheels"},
			TrustedHosts:   []string{"pypi.example.com"},
			IndexURL:       "https://pypi.example.com/simple",
			ExtraIndexURLs: []string{"https://extra.example.com/simple"},
			NoIndex:        true,
			Prefix:         "/opt/env",
			NoCache:        true,
		},
	}, cfg)
}

func TestLoad_TOML(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/project/reqsync.toml": `
version = "1"
requirements = ["requirements.txt"]
python = "python3.12"

[install]
find_links = ["https://example.com/links", "vendor/wheels", "file:///srv/wheels"]
prefix = "build/env"
`,
	})

	cfg, err := loader.Load("/project")

	require.NoError(t, err)
	assert.Equal(t, []string{"/project/requirements.txt"}, cfg.Requirements)
	assert.Equal(t, "python3.12", cfg.Python, "bare interpreter names are looked up on PATH")
	assert.Equal(t,
		[]string{"https://example.com/links", "/project/vendor/wheels", "file:///srv/wheels"},
		cfg.Install.FindLinks,
		"local find-links resolve against the config file",
	)
	assert.Equal(t, "/project/build/env", cfg.Install.Prefix)
}

func TestLoad_BothFormatsPrefersYAML(t *testing.T) {
	loader, log := newLoader(t, map[string]string{
		"/project/.reqsync.yaml": "python: from-yaml\n",
		"/project/reqsync.toml":  "python = \"from-toml\"\n",
	})
	log.EXPECT().Warn(gomock.Any())

	cfg, err := loader.Load("/project")

	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Python)
}

func TestLoad_NotFoundIsEmpty(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{"/elsewhere/.reqsync.yaml": "python: x\n"})

	cfg, err := loader.Load("/project")

	require.NoError(t, err)
	assert.Equal(t, &domain.Config{}, cfg)
}

func TestLoad_EmptyYAML(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{"/project/.reqsync.yaml": "\n"})

	cfg, err := loader.Load("/project")

	require.NoError(t, err)
	assert.Equal(t, "/project/.reqsync.yaml", cfg.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "invalid yaml", files: map[string]string{"/p/.reqsync.yaml": "requirements: [unclosed\n"}},
		{name: "unknown yaml key", files: map[string]string{"/p/.reqsync.yaml": "pythn: typo\n"}},
		{name: "unknown toml key", files: map[string]string{"/p/reqsync.toml": "pythn = \"typo\"\n"}},
		{name: "invalid toml", files: map[string]string{"/p/reqsync.toml": "python = \n"}},
		{name: "unsupported version", files: map[string]string{"/p/.reqsync.yaml": "version: \"2\"\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, tt.files)

			_, err := loader.Load("/p")

			assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
		})
	}
}

func TestLoad_UnknownTOMLKeysAreNamed(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/p/reqsync.toml": "pythn = \"typo\"\n[install]\nnocache = true\n",
	})

	_, err := loader.Load("/p")

	require.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	assert.ErrorContains(t, err, domain.ErrUnknownConfigKeys.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "/p/reqsync.toml", zErr.Metadata()["file"])

	var keysErr *zerr.Error
	require.ErrorAs(t, errors.Unwrap(err), &keysErr)
	assert.Contains(t, keysErr.Metadata()["keys"], "pythn")
	assert.Contains(t, keysErr.Metadata()["keys"], "install.nocache")
}
