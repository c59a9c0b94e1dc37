// Package app implements the application layer for reqsync.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/reqsync/internal/adapters/detector"
	"go.trai.ch/reqsync/internal/adapters/report"
	"go.trai.ch/reqsync/internal/adapters/telemetry"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports"
	"go.trai.ch/reqsync/internal/engine/reconcile"
	"go.trai.ch/reqsync/internal/engine/syncer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	reader       ports.RequirementReader
	inspector    ports.EnvironmentInspector
	installer    ports.Installer
	store        ports.SyncRecordStore
	logger       ports.Logger
	tracer       ports.Tracer

	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	reporter ports.Reporter
	now      func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	reader ports.RequirementReader,
	inspector ports.EnvironmentInspector,
	installer ports.Installer,
	store ports.SyncRecordStore,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		reader:       reader,
		inspector:    inspector,
		installer:    installer,
		store:        store,
		logger:       log,
		tracer:       tracer,
		fs:           afero.NewOsFs(),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		now:          time.Now,
	}
}

// WithFs sets the filesystem used to look for the default requirements file.
func (a *App) WithFs(fsys afero.Fs) *App {
	a.fs = fsys
	return a
}

// WithStdout sets where reports are written.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithStderr sets where installer output goes when stdout carries a JSON report.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// WithReporter replaces the reporter chosen from the output mode.
// This is primarily used for testing.
func (a *App) WithReporter(r ports.Reporter) *App {
	a.reporter = r
	return a
}

// WithClock sets the clock used to timestamp sync records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// levelSetter is implemented by loggers whose verbosity and format can change.
type levelSetter interface {
	SetDebug(enable bool)
	SetJSON(enable bool)
}

// outputRedirector is implemented by installers that can stream to another writer.
type outputRedirector interface {
	WithOutput(w io.Writer) ports.Installer
}

// ConfigureLogging applies the --debug and --log-format flags to the logger.
func (a *App) ConfigureLogging(debug bool, format string) error {
	var jsonMode bool
	switch format {
	case "", "text":
	case "json":
		jsonMode = true
	default:
		return errors.Join(domain.ErrUnknownLogFormat, zerr.With(domain.ErrUnknownLogFormat, "format", format))
	}

	if l, ok := a.logger.(levelSetter); ok {
		l.SetDebug(debug)
		l.SetJSON(jsonMode)
	}
	return nil
}

// SyncOptions configuration for the Sync method.
type SyncOptions struct {
	// DryRun reports the plan without changing the environment.
	DryRun bool
	// Force lets the last conflicting requirement win and accepts .in files.
	Force bool
	// Quiet passes -q to pip.
	Quiet bool
	// Python overrides the interpreter from the config file.
	Python string
	// Protect extends the packages that are never uninstalled.
	Protect []string
	// Install holds installer options given on the command line.
	Install domain.InstallOptions
	// OutputMode is one of auto, pretty, plain or json.
	OutputMode string
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	OutputMode string
}

// Sync reconciles the environment with the requirement files.
// With no files, the config file's requirements or requirements.txt are used.
func (a *App) Sync(ctx context.Context, files []string, opts SyncOptions) error {
	setupOTel(telemetry.NewBridge(a.logger))

	// 1. Load the project configuration
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return errors.Join(domain.ErrConfigLoadFailed, err)
	}

	// 2. Read the requirement files
	paths, err := a.resolveFiles(files, cfg, opts.Force)
	if err != nil {
		return err
	}
	reqFiles, err := a.reader.Read(ctx, paths)
	if err != nil {
		return errors.Join(domain.ErrInvalidRequirements, err)
	}

	// 3. Merge, inspect and diff
	merged, err := a.merge(ctx, reqFiles, opts.Force)
	if err != nil {
		return err
	}

	env := domain.Environment{Python: firstNonEmpty(opts.Python, cfg.Python, domain.DefaultPython)}
	installed, err := a.inspect(ctx, env)
	if err != nil {
		return err
	}

	protected := domain.DefaultProtectedSet(slices.Concat(cfg.Protected, opts.Protect)...)
	diff := a.diff(ctx, merged, installed, protected)

	// 4. Apply
	var fileOptions domain.InstallOptions
	for _, f := range reqFiles {
		fileOptions = fileOptions.Merge(f.Options)
	}

	mode := a.outputMode(opts.OutputMode)
	s := syncer.New(a.installerFor(mode), a.reporterFor(mode), a.logger, a.tracer)
	if _, err := s.Sync(ctx, diff, syncer.Options{
		Env:          env,
		DryRun:       opts.DryRun,
		Verbose:      !opts.Quiet,
		InstallFlags: domain.InstallFlags(fileOptions, cfg.Install.Merge(opts.Install)),
	}); err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}

	// 5. Record the applied set
	record := domain.SyncRecord{
		Digest:      reconcile.Digest(merged),
		Sources:     paths,
		Packages:    merged.Len(),
		Installed:   len(diff.ToInstall),
		Uninstalled: len(diff.ToUninstall),
		SyncedAt:    a.now().UTC(),
	}
	if err := a.store.Put(projectRoot(cfg), record); err != nil {
		a.logger.Warn("could not record the sync: " + err.Error())
	}
	return nil
}

// Status reports the last recorded sync and whether the requirement files still
// describe the same set.
func (a *App) Status(ctx context.Context, files []string, opts StatusOptions) error {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return errors.Join(domain.ErrConfigLoadFailed, err)
	}

	paths, err := a.resolveFiles(files, cfg, true)
	if err != nil {
		return err
	}
	reqFiles, err := a.reader.Read(ctx, paths)
	if err != nil {
		return errors.Join(domain.ErrInvalidRequirements, err)
	}

	merged, err := reconcile.Merge(requirementLists(reqFiles), true)
	if err != nil {
		return err
	}

	record, err := a.store.Get(projectRoot(cfg))
	if err != nil {
		return err
	}

	a.reporterFor(a.outputMode(opts.OutputMode)).Status(record, reconcile.Digest(merged))
	return nil
}

// resolveFiles picks the requirement files to read and rejects .in inputs
// unless force is set.
func (a *App) resolveFiles(files []string, cfg *domain.Config, force bool) ([]string, error) {
	paths := files
	if len(paths) == 0 {
		paths = cfg.Requirements
	}
	if len(paths) == 0 {
		exists, err := afero.Exists(a.fs, domain.DefaultRequirementsFile)
		if err != nil || !exists {
			return nil, domain.ErrNoRequirementsFiles
		}
		paths = []string{domain.DefaultRequirementsFile}
	}

	if slices.ContainsFunc(paths, isInputFile) {
		if !force {
			return nil, domain.ErrInputFileExtension
		}
		a.logger.Warn(domain.ErrInputFileExtension.Error())
	}
	return paths, nil
}

func (a *App) merge(
	ctx context.Context,
	files []domain.RequirementFile,
	ignoreConflicts bool,
) (*domain.MergedRequirementSet, error) {
	_, span := a.tracer.Start(ctx, "merge")
	defer span.End()

	merged, err := reconcile.Merge(requirementLists(files), ignoreConflicts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("reqsync.packages", merged.Len())
	return merged, nil
}

func (a *App) inspect(ctx context.Context, env domain.Environment) ([]domain.InstalledDistribution, error) {
	ctx, span := a.tracer.Start(ctx, "inspect")
	defer span.End()

	installed, err := a.inspector.Installed(ctx, env)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("reqsync.installed", len(installed))
	return installed, nil
}

func (a *App) diff(
	ctx context.Context,
	merged *domain.MergedRequirementSet,
	installed []domain.InstalledDistribution,
	protected domain.ProtectedSet,
) domain.SyncDiff {
	_, span := a.tracer.Start(ctx, "diff")
	defer span.End()

	diff := reconcile.Diff(merged, installed, protected)
	span.SetAttribute("reqsync.install", len(diff.ToInstall))
	span.SetAttribute("reqsync.uninstall", len(diff.ToUninstall))
	a.logger.Debug(fmt.Sprintf("%d to install, %d to uninstall, %d unchanged, %d protected",
		len(diff.ToInstall), len(diff.ToUninstall), len(diff.Unchanged), len(diff.Protected)))
	return diff
}

func (a *App) outputMode(flag string) detector.OutputMode {
	return detector.ResolveMode(detector.DetectEnvironment(), flag)
}

func (a *App) reporterFor(mode detector.OutputMode) ports.Reporter {
	if a.reporter != nil {
		return a.reporter
	}
	return report.New(mode, a.stdout)
}

// installerFor keeps stdout free for the JSON document by sending pip's output
// to stderr.
func (a *App) installerFor(mode detector.OutputMode) ports.Installer {
	if mode != detector.ModeJSON {
		return a.installer
	}
	if r, ok := a.installer.(outputRedirector); ok {
		return r.WithOutput(a.stderr)
	}
	return a.installer
}

// setupOTel configures the OpenTelemetry SDK with the logging bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}

func requirementLists(files []domain.RequirementFile) [][]domain.Requirement {
	lists := make([][]domain.Requirement, 0, len(files))
	for _, f := range files {
		lists = append(lists, f.Requirements)
	}
	return lists
}

// projectRoot is the directory holding the config file, or the working directory.
func projectRoot(cfg *domain.Config) string {
	if cfg.Path == "" {
		return "."
	}
	return filepath.Dir(cfg.Path)
}

func isInputFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), domain.InputFileExtension)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
