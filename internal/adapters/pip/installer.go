package pip

import (
	"context"
	"io"
	"os"

	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.Installer by running pip install and pip uninstall.
type Installer struct {
	runner ports.CommandRunner
	stdout io.Writer
	stderr io.Writer
}

// NewInstaller creates an Installer streaming pip's output to stdout and stderr.
func NewInstaller(runner ports.CommandRunner, stdout, stderr io.Writer) *Installer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Installer{runner: runner, stdout: stdout, stderr: stderr}
}

// WithOutput returns a copy of the installer that streams all of pip's output to w.
func (i *Installer) WithOutput(w io.Writer) ports.Installer {
	return &Installer{runner: i.runner, stdout: w, stderr: w}
}

// Install runs a single pip install for all requirements. pip resolves the batch as
// a whole, so a failure is reported against every requirement of the batch.
func (i *Installer) Install(
	ctx context.Context,
	env domain.Environment,
	reqs []domain.Requirement,
	flags []string,
) []domain.ItemResult {
	if len(reqs) == 0 {
		return nil
	}

	args := append([]string{"install"}, flags...)
	for _, r := range reqs {
		args = append(args, r.InstallArgs()...)
	}

	err := i.runner.Run(ctx, pipCommand(env, args...), i.stdout, i.stderr)

	results := make([]domain.ItemResult, 0, len(reqs))
	for _, r := range reqs {
		res := domain.ItemResult{Key: r.Key, Label: r.String()}
		if err != nil {
			res.Err = zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "package", r.Key.String())
		}
		results = append(results, res)
	}
	return results
}

// Uninstall runs pip uninstall for one distribution without prompting.
func (i *Installer) Uninstall(
	ctx context.Context,
	env domain.Environment,
	dist domain.InstalledDistribution,
	flags []string,
) domain.ItemResult {
	args := append([]string{"uninstall", "-y"}, flags...)
	args = append(args, dist.Name)

	res := domain.ItemResult{Key: dist.Key, Label: dist.String()}
	if err := i.runner.Run(ctx, pipCommand(env, args...), i.stdout, i.stderr); err != nil {
		res.Err = zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "package", dist.Key.String())
	}
	return res
}

// pipCommand runs pip as a module of the environment's interpreter so that the
// right environment is targeted regardless of PATH.
func pipCommand(env domain.Environment, args ...string) domain.Command {
	return domain.Command{
		Name: pythonOf(env),
		Args: append([]string{"-m", "pip"}, args...),
		Env:  baseEnv,
	}
}

func pythonOf(env domain.Environment) string {
	if env.Python == "" {
		return domain.DefaultPython
	}
	return env.Python
}
