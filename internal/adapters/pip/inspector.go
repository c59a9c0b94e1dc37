// Package pip drives pip to inspect and change a Python environment.
package pip

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// requirementName matches the project name at the start of a Requires-Dist entry.
var requirementName = regexp.MustCompile(`^\s*([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)

// extraMarker matches markers that only apply when an optional extra is requested.
var extraMarker = regexp.MustCompile(`\bextra\s*==`)

// baseEnv is added to every pip invocation.
var baseEnv = []string{
	"PIP_DISABLE_PIP_VERSION_CHECK=1",
	"PIP_NO_INPUT=1",
}

// inspectReport is the subset of `pip inspect` output that is read.
type inspectReport struct {
	Installed []struct {
		Metadata struct {
			Name         string   `json:"name"`
			Version      string   `json:"version"`
			RequiresDist []string `json:"requires_dist"`
		} `json:"metadata"`
	} `json:"installed"`
}

// listEntry is one element of `pip list --format=json`.
type listEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Inspector implements ports.EnvironmentInspector with `pip inspect`, falling back to
// `pip list` for pip releases without it.
type Inspector struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewInspector creates an Inspector.
func NewInspector(runner ports.CommandRunner, logger ports.Logger) *Inspector {
	return &Inspector{runner: runner, logger: logger}
}

// Installed returns the distributions installed in env, excluding global site
// packages seen from inside a virtual environment.
func (i *Inspector) Installed(ctx context.Context, env domain.Environment) ([]domain.InstalledDistribution, error) {
	out, err := i.runner.Output(ctx, pipCommand(env, "inspect", "--local"))
	if err == nil {
		return parseInspect(out)
	}
	if ctx.Err() != nil {
		return nil, zerr.Wrap(ctx.Err(), domain.ErrInspectFailed.Error())
	}

	i.logger.Debug("pip inspect unavailable, falling back to pip list: " + err.Error())
	out, err = i.runner.Output(ctx, pipCommand(env, "list", "--local", "--format=json"))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInspectFailed.Error()), "python", pythonOf(env))
	}
	return parseList(out)
}

func parseInspect(out []byte) ([]domain.InstalledDistribution, error) {
	var report inspectReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInspectParseFailed.Error())
	}

	dists := make([]domain.InstalledDistribution, 0, len(report.Installed))
	for _, entry := range report.Installed {
		md := entry.Metadata
		if md.Name == "" {
			continue
		}
		dists = append(dists, domain.NewInstalledDistribution(md.Name, md.Version, requiredNames(md.RequiresDist)...))
	}
	return dists, nil
}

func parseList(out []byte) ([]domain.InstalledDistribution, error) {
	var entries []listEntry
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInspectParseFailed.Error())
	}

	dists := make([]domain.InstalledDistribution, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		dists = append(dists, domain.NewInstalledDistribution(e.Name, e.Version))
	}
	return dists, nil
}

// requiredNames extracts the project names of unconditional and marker-gated
// dependencies, skipping those that only apply to extras.
func requiredNames(requiresDist []string) []string {
	names := make([]string, 0, len(requiresDist))
	for _, entry := range requiresDist {
		if _, marker, ok := strings.Cut(entry, ";"); ok && extraMarker.MatchString(marker) {
			continue
		}
		if m := requirementName.FindStringSubmatch(entry); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}
