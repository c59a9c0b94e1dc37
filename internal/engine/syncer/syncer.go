// Package syncer applies a computed diff to an environment.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports"
)

// Exit codes returned by Sync.
const (
	// ExitOK means the environment matches, or would match after a dry run.
	ExitOK = 0
	// ExitItemFailed means at least one install or uninstall failed.
	ExitItemFailed = 1
)

// quietFlag lowers pip's verbosity.
const quietFlag = "-q"

// Options controls a single sync pass.
type Options struct {
	// Env is the environment being synced.
	Env domain.Environment
	// DryRun reports the plan without calling the installer.
	DryRun bool
	// Verbose keeps pip's own output.
	Verbose bool
	// InstallFlags are passed verbatim to the batched install call.
	InstallFlags []string
}

// Syncer drives the installer through the actions of a diff.
type Syncer struct {
	installer ports.Installer
	reporter  ports.Reporter
	logger    ports.Logger
	tracer    ports.Tracer
}

// New creates a Syncer.
func New(installer ports.Installer, reporter ports.Reporter, logger ports.Logger, tracer ports.Tracer) *Syncer {
	return &Syncer{
		installer: installer,
		reporter:  reporter,
		logger:    logger,
		tracer:    tracer,
	}
}

// Sync applies diff. Every uninstall runs before the single install call. Failures
// of individual items do not stop the pass; they are collected and returned joined
// with domain.ErrSyncFailed together with ExitItemFailed.
func (s *Syncer) Sync(ctx context.Context, diff domain.SyncDiff, opts Options) (int, error) {
	if diff.IsEmpty() {
		s.reporter.UpToDate()
		return ExitOK, nil
	}

	if opts.DryRun {
		s.reporter.Plan(diff)
		return ExitOK, nil
	}

	var pipFlags []string
	if !opts.Verbose {
		pipFlags = append(pipFlags, quietFlag)
	}

	var result domain.SyncResult
	result.Uninstalled = s.uninstall(ctx, opts.Env, diff.ToUninstall, pipFlags)

	if len(diff.ToInstall) > 0 {
		flags := slices.Concat(pipFlags, opts.InstallFlags)
		result.Installed = s.install(ctx, opts.Env, diff.ToInstall, flags)
	}

	s.reporter.Summary(result)

	failures := result.Failures()
	if len(failures) == 0 {
		return ExitOK, nil
	}

	errs := make([]error, 0, len(failures)+1)
	errs = append(errs, domain.ErrSyncFailed)
	for _, item := range failures {
		errs = append(errs, item.Err)
	}
	return ExitItemFailed, errors.Join(errs...)
}

func (s *Syncer) uninstall(
	ctx context.Context,
	env domain.Environment,
	dists []domain.InstalledDistribution,
	flags []string,
) []domain.ItemResult {
	if len(dists) == 0 {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "uninstall")
	defer span.End()
	span.SetAttribute("reqsync.count", len(dists))

	results := make([]domain.ItemResult, 0, len(dists))
	for _, dist := range dists {
		s.logger.Debug(fmt.Sprintf("uninstalling %s", dist))
		res := s.installer.Uninstall(ctx, env, dist, flags)
		if res.Failed() {
			span.RecordError(res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (s *Syncer) install(
	ctx context.Context,
	env domain.Environment,
	reqs []domain.Requirement,
	flags []string,
) []domain.ItemResult {
	ctx, span := s.tracer.Start(ctx, "install")
	defer span.End()
	span.SetAttribute("reqsync.count", len(reqs))

	s.logger.Debug(fmt.Sprintf("installing %d requirements", len(reqs)))
	results := s.installer.Install(ctx, env, reqs, flags)
	for _, res := range results {
		if res.Failed() {
			span.RecordError(res.Err)
		}
	}
	return results
}
