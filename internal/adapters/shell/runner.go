// Package shell runs external commands for the installer adapters.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// tailLines is how many trailing output lines are attached to a failed command's error.
const tailLines = 5

// Runner implements ports.CommandRunner using os/exec. Streaming runs use a PTY when
// the platform supports one so that pip keeps its terminal output.
type Runner struct {
	logger ports.Logger
	usePTY bool
}

// NewRunner creates a Runner that streams through a PTY.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger, usePTY: true}
}

// WithoutPTY makes Run use plain pipes.
func (r *Runner) WithoutPTY() *Runner {
	r.usePTY = false
	return r
}

// Run executes cmd and streams its output. With a PTY, stdout and stderr are merged
// into stdout.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	tail := &tailWriter{max: tailLines}
	c := r.command(ctx, cmd)
	r.logger.Debug("running " + strings.Join(cmd.Argv(), " "))

	if r.usePTY {
		ptmx, err := pty.Start(c)
		switch {
		case err == nil:
			return wait(c, cmd, tail, streamPTY(ptmx, io.MultiWriter(stdout, tail)))
		case errors.Is(err, pty.ErrUnsupported):
			c = r.command(ctx, cmd)
		default:
			return zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.Name)
		}
	}

	c.Stdout = io.MultiWriter(stdout, tail)
	c.Stderr = io.MultiWriter(stderr, tail)
	if err := c.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.Name)
	}
	return wait(c, cmd, tail, nil)
}

// Output executes cmd and returns its standard output.
func (r *Runner) Output(ctx context.Context, cmd domain.Command) ([]byte, error) {
	var stdout bytes.Buffer
	stderr := &tailWriter{max: tailLines}

	c := r.command(ctx, cmd)
	c.Stdout = &stdout
	c.Stderr = stderr

	r.logger.Debug("running " + strings.Join(cmd.Argv(), " "))
	if err := c.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.Name)
	}
	if err := wait(c, cmd, stderr, nil); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (r *Runner) command(ctx context.Context, cmd domain.Command) *exec.Cmd {
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // the interpreter is user configured
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}
	c.Env = env
	c.Dir = cmd.Dir
	return c
}

func streamPTY(ptmx *os.File, w io.Writer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { _ = ptmx.Close() }()
		// The read fails with EIO once the child exits; that ends the copy.
		_, _ = io.Copy(w, ptmx)
	}()
	return done
}

func wait(c *exec.Cmd, cmd domain.Command, tail *tailWriter, ioDone <-chan struct{}) error {
	err := c.Wait()
	if ioDone != nil {
		<-ioDone
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", cmd.Name)
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if out := tail.String(); out != "" {
		wrapped = zerr.With(wrapped, "output", out)
	}
	return wrapped
}

// tailWriter keeps the last max complete lines written to it.
type tailWriter struct {
	mu      sync.Mutex
	max     int
	lines   []string
	partial []byte
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		w.push(string(w.partial[:i]))
		w.partial = w.partial[i+1:]
	}
	return len(p), nil
}

func (w *tailWriter) push(line string) {
	// PTYs may introduce \r.
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	w.lines = append(w.lines, line)
	if len(w.lines) > w.max {
		w.lines = w.lines[len(w.lines)-w.max:]
	}
}

// String returns the retained lines, including an unterminated last line.
func (w *tailWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.partial) > 0 {
		w.push(string(w.partial))
		w.partial = nil
	}
	return strings.Join(w.lines, "\n")
}

// resolveEnvironment overlays extra "KEY=VALUE" entries on the inherited environment.
// pip relies on variables such as VIRTUAL_ENV and PIP_* so nothing is filtered.
func resolveEnvironment(sysEnv, extra []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(extra))
	order := make([]string, 0, len(sysEnv)+len(extra))
	for _, entry := range append(append([]string(nil), sysEnv...), extra...) {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
