package reqfile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reqsync/internal/adapters/reqfile"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/zerr"
)

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), domain.FilePerm))
	}
	return fsys
}

func readOne(t *testing.T, files map[string]string, path string) (domain.RequirementFile, error) {
	t.Helper()
	got, err := reqfile.NewReader(newFs(t, files)).Read(context.Background(), []string{path})
	if err != nil {
		return domain.RequirementFile{}, err
	}
	require.Len(t, got, 1)
	return got[0], nil
}

func TestReader_Requirements(t *testing.T) {
	content := `# pinned by hand
Django==4.2.7        # web
requests[socks, security] >= 2.31 , <3
six
pywin32==306 ; sys_platform == "win32"
cryptography==41.0.7 \
    --hash=sha256:aaaa \
    --hash=sha256:bbbb
Foo_Bar (==1.0)
-e git+https://github.com/example/tool.git@v1#egg=tool
mylib @ https://example.com/mylib-1.0.tar.gz ; python_version >= "3.8"
./wheels/Some_Pkg-2.0-py3-none-any.whl
https://example.com/archive/python-dateutil-2.8.2.tar.gz
git+https://github.com/example/extra.git#egg=extra-0.1
`
	file, err := readOne(t, map[string]string{"requirements.txt": content}, "requirements.txt")
	require.NoError(t, err)

	rendered := make([]string, 0, len(file.Requirements))
	for _, r := range file.Requirements {
		rendered = append(rendered, r.String())
	}
	assert.Equal(t, []string{
		"Django==4.2.7",
		"requests[socks,security]<3,>=2.31",
		"six",
		`pywin32==306; sys_platform == "win32"`,
		"cryptography==41.0.7",
		"Foo_Bar==1.0",
		"-e git+https://github.com/example/tool.git@v1#egg=tool",
		`mylib @ https://example.com/mylib-1.0.tar.gz; python_version >= "3.8"`,
		"Some_Pkg @ ./wheels/Some_Pkg-2.0-py3-none-any.whl",
		"python-dateutil @ https://example.com/archive/python-dateutil-2.8.2.tar.gz",
		"extra @ git+https://github.com/example/extra.git#egg=extra-0.1",
	}, rendered)

	assert.Equal(t, "requirements.txt:2", file.Requirements[0].Origin)
	assert.Equal(t, "requirements.txt:6", file.Requirements[4].Origin)
	assert.Equal(t, domain.NormalizeKey("foo-bar"), file.Requirements[5].Key)
	assert.True(t, file.Requirements[6].Editable)
	assert.Equal(t, domain.NormalizeKey("tool"), file.Requirements[6].Key)
	assert.Equal(t, []string{"./wheels/Some_Pkg-2.0-py3-none-any.whl"}, file.Requirements[8].InstallArgs())
}

func TestReader_Options(t *testing.T) {
	content := `--find-links ./wheels
-f=https://example.com/links
--trusted-host example.com
-i https://pypi.example.com/simple
--extra-index-url https://extra.example.com/simple
--no-index
--pre
flask==3.0.0
`
	file, err := readOne(t, map[string]string{"requirements.txt": content}, "requirements.txt")
	require.NoError(t, err)

	assert.Equal(t, domain.InstallOptions{
		FindLinks:      []string{"./wheels", "https://example.com/links"},
		TrustedHosts:   []string{"example.com"},
		IndexURL:       "https://pypi.example.com/simple",
		ExtraIndexURLs: []string{"https://extra.example.com/simple"},
		NoIndex:        true,
	}, file.Options)
	require.Len(t, file.Requirements, 1)
}

func TestReader_Includes(t *testing.T) {
	files := map[string]string{
		"reqs/base.txt":         "-f ./base-wheels\nclick==8.1.7\n",
		"reqs/dev.txt":          "pytest==7.4.0\n-rbase.txt\n--requirement=common/extra.txt\nblack==23.1.0\n",
		"reqs/common/extra.txt": "-e ../../mylib\n",
	}

	file, err := readOne(t, files, "reqs/dev.txt")
	require.NoError(t, err)

	keys := make([]string, 0, len(file.Requirements))
	for _, r := range file.Requirements {
		keys = append(keys, r.Key.String())
	}
	assert.Equal(t, "reqs/dev.txt", file.Path)
	assert.Equal(t, []string{"pytest", "click", "mylib", "black"}, keys, "includes expand in place")
	assert.Equal(t, "reqs/base.txt:2", file.Requirements[1].Origin)
	assert.Equal(t, []string{"./base-wheels"}, file.Options.FindLinks)
}

func TestReader_MultipleFilesKeepOrder(t *testing.T) {
	files := map[string]string{
		"a.txt": "alpha==1\n",
		"b.txt": "beta==2\n",
		"c.txt": "gamma==3\n",
	}

	got, err := reqfile.NewReader(newFs(t, files)).Read(context.Background(), []string{"c.txt", "a.txt", "b.txt"})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "c.txt", got[0].Path)
	assert.Equal(t, "gamma", got[0].Requirements[0].Key.String())
	assert.Equal(t, "alpha", got[1].Requirements[0].Key.String())
	assert.Equal(t, "beta", got[2].Requirements[0].Key.String())
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "missing file",
			files:   map[string]string{},
			wantErr: domain.ErrRequirementsFileNotFound,
		},
		{
			name:    "missing include",
			files:   map[string]string{"requirements.txt": "-r nope.txt\n"},
			wantErr: domain.ErrRequirementsFileNotFound,
		},
		{
			name: "include cycle",
			files: map[string]string{
				"requirements.txt": "-r other.txt\n",
				"other.txt":        "-r ./requirements.txt\n",
			},
			wantErr: domain.ErrRequirementsIncludeCycle,
		},
		{
			name:    "constraints are rejected",
			files:   map[string]string{"requirements.txt": "-c constraints.txt\n"},
			wantErr: domain.ErrUnsupportedOption,
		},
		{
			name:    "unknown option",
			files:   map[string]string{"requirements.txt": "--frobnicate\n"},
			wantErr: domain.ErrUnsupportedOption,
		},
		{
			name:    "bad specifier",
			files:   map[string]string{"requirements.txt": "flask 3.0\n"},
			wantErr: domain.ErrMalformedRequirement,
		},
		{
			name:    "garbage line",
			files:   map[string]string{"requirements.txt": "!!!\n"},
			wantErr: domain.ErrMalformedRequirement,
		},
		{
			name:    "vcs source without name",
			files:   map[string]string{"requirements.txt": "git+https://github.com/example/anon.git\n"},
			wantErr: domain.ErrMissingPackageName,
		},
		{
			name:    "option without value",
			files:   map[string]string{"requirements.txt": "-i\n"},
			wantErr: domain.ErrMalformedRequirement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readOne(t, tt.files, "requirements.txt")

			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestReader_MalformedLineMetadata(t *testing.T) {
	_, err := readOne(t, map[string]string{"requirements.txt": "ok==1\n\nflask 3.0\n"}, "requirements.txt")
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	meta := zErr.Metadata()
	assert.Equal(t, "requirements.txt", meta["file"])
	assert.Equal(t, 3, meta["line"])
	assert.Equal(t, "flask 3.0", meta["text"])
}

func TestReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reqfile.NewReader(newFs(t, map[string]string{"a.txt": "x\n"})).Read(ctx, []string{"a.txt"})

	assert.ErrorIs(t, err, context.Canceled)
}
