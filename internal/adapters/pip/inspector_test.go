package pip_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reqsync/internal/adapters/pip"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const inspectOutput = `{
  "version": "1",
  "pip_version": "24.0",
  "installed": [
    {"metadata": {"name": "requests", "version": "2.31.0",
      "requires_dist": ["charset-normalizer<4,>=2", "idna<4,>=2.5", "PySocks!=1.5.7,>=1.5.6; extra == \"socks\""]}},
    {"metadata": {"name": "idna", "version": "3.6"}},
    {"metadata": {"name": "Charset_Normalizer", "version": "3.3.2"}},
    {"metadata": {"name": "pip", "version": "24.0"}}
  ]
}`

func argsOf(cmd domain.Command) []string {
	return cmd.Args
}

func TestInspector_Installed_Inspect(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	log := mocks.NewMockLogger(ctrl)

	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) ([]byte, error) {
			assert.Equal(t, "/venv/bin/python", cmd.Name)
			assert.Equal(t, []string{"-m", "pip", "inspect", "--local"}, argsOf(cmd))
			return []byte(inspectOutput), nil
		},
	)

	dists, err := pip.NewInspector(runner, log).Installed(context.Background(), domain.Environment{Python: "/venv/bin/python"})

	require.NoError(t, err)
	require.Len(t, dists, 4)
	assert.Equal(t, "requests==2.31.0", dists[0].String())
	assert.Equal(t, domain.NormalizeKeys([]string{"charset-normalizer", "idna"}), dists[0].Requires)
	assert.Equal(t, domain.NormalizeKey("charset-normalizer"), dists[2].Key)
}

func TestInspector_Installed_FallsBackToList(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any())

	gomock.InOrder(
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, errors.New("unknown command \"inspect\"")),
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd domain.Command) ([]byte, error) {
				assert.Equal(t, domain.DefaultPython, cmd.Name)
				assert.Equal(t, []string{"-m", "pip", "list", "--local", "--format=json"}, argsOf(cmd))
				return []byte(`[{"name": "six", "version": "1.16.0"}, {"name": "", "version": "0"}]`), nil
			},
		),
	)

	dists, err := pip.NewInspector(runner, log).Installed(context.Background(), domain.Environment{})

	require.NoError(t, err)
	assert.Equal(t, []domain.InstalledDistribution{domain.NewInstalledDistribution("six", "1.16.0")}, dists)
}

func TestInspector_Installed_Errors(t *testing.T) {
	t.Run("both commands fail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		log := mocks.NewMockLogger(ctrl)
		log.EXPECT().Debug(gomock.Any())
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, errors.New("no python")).Times(2)

		_, err := pip.NewInspector(runner, log).Installed(context.Background(), domain.Environment{})

		assert.ErrorContains(t, err, domain.ErrInspectFailed.Error())
	})

	t.Run("garbage output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("not json"), nil)

		_, err := pip.NewInspector(runner, mocks.NewMockLogger(ctrl)).Installed(context.Background(), domain.Environment{})

		assert.ErrorContains(t, err, domain.ErrInspectParseFailed.Error())
	})

	t.Run("cancelled context skips fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, context.Canceled)

		_, err := pip.NewInspector(runner, mocks.NewMockLogger(ctrl)).Installed(ctx, domain.Environment{})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
