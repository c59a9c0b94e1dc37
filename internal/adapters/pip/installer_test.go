package pip_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reqsync/internal/adapters/pip"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var venv = domain.Environment{Python: "python3"}

func TestInstaller_Install_BatchesArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	reqs := []domain.Requirement{
		domain.NewVersionRequirement("Django", "==4.2"),
		domain.NewSourceRequirement("mylib", "./libs/mylib", true),
		domain.NewSourceRequirement("tool", "git+https://example.com/tool.git#egg=tool", false),
	}

	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
			assert.Equal(t, "python3", cmd.Name)
			assert.Equal(t, []string{
				"-m", "pip", "install", "-q", "-f", "./wheels",
				"Django==4.2",
				"-e", "./libs/mylib",
				"tool @ git+https://example.com/tool.git#egg=tool",
			}, cmd.Args)
			assert.Contains(t, cmd.Env, "PIP_DISABLE_PIP_VERSION_CHECK=1")
			return nil
		},
	)

	results := pip.NewInstaller(runner, io.Discard, io.Discard).
		Install(context.Background(), venv, reqs, []string{"-q", "-f", "./wheels"})

	require.Len(t, results, 3)
	for _, res := range results {
		assert.False(t, res.Failed())
	}
	assert.Equal(t, "Django==4.2", results[0].Label)
}

func TestInstaller_Install_FailureMarksEveryItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runErr := errors.New("exit status 1")
	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(runErr)

	results := pip.NewInstaller(runner, io.Discard, io.Discard).Install(context.Background(), venv,
		[]domain.Requirement{domain.NewVersionRequirement("a", "==1"), domain.NewVersionRequirement("b", "==2")}, nil)

	require.Len(t, results, 2)
	for _, res := range results {
		require.True(t, res.Failed())
		assert.ErrorIs(t, res.Err, runErr)
		assert.ErrorContains(t, res.Err, domain.ErrInstallFailed.Error())
	}
}

func TestInstaller_Install_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)

	results := pip.NewInstaller(mocks.NewMockCommandRunner(ctrl), nil, nil).Install(context.Background(), venv, nil, nil)

	assert.Empty(t, results)
}

func TestInstaller_Uninstall(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	dist := domain.NewInstalledDistribution("Zope.Interface", "6.0")

	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
			assert.Equal(t, []string{"-m", "pip", "uninstall", "-y", "-q", "Zope.Interface"}, cmd.Args)
			return nil
		},
	)

	res := pip.NewInstaller(runner, io.Discard, io.Discard).Uninstall(context.Background(), venv, dist, []string{"-q"})

	assert.False(t, res.Failed())
	assert.Equal(t, dist.Key, res.Key)
	assert.Equal(t, "Zope.Interface==6.0", res.Label)
}

func TestInstaller_Uninstall_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("permission denied"))

	res := pip.NewInstaller(runner, io.Discard, io.Discard).
		Uninstall(context.Background(), venv, domain.NewInstalledDistribution("c", "1"), nil)

	require.True(t, res.Failed())
	assert.ErrorContains(t, res.Err, domain.ErrUninstallFailed.Error())
}

func TestInstaller_WithOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	var stdout, redirected bytes.Buffer
	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, _ domain.Command, out, errOut io.Writer) error {
			_, _ = io.WriteString(out, "Successfully done\n")
			_, _ = io.WriteString(errOut, "WARNING: something\n")
			return nil
		},
	)

	installer := pip.NewInstaller(runner, &stdout, &stdout).WithOutput(&redirected)
	installer.Install(context.Background(), venv, []domain.Requirement{domain.NewVersionRequirement("a", "==1")}, nil)
	installer.Uninstall(context.Background(), venv, domain.NewInstalledDistribution("b", "2"), nil)

	assert.Empty(t, stdout.String())
	assert.Equal(t, strings.Repeat("Successfully done\nWARNING: something\n", 2), redirected.String())
}
