// Package reqfile reads pip requirements files.
package reqfile

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Reader implements ports.RequirementReader on an afero filesystem.
type Reader struct {
	fs afero.Fs
}

// NewReader creates a Reader on fsys.
func NewReader(fsys afero.Fs) *Reader {
	return &Reader{fs: fsys}
}

// Read parses the files concurrently and returns them in argument order.
// Includes are expanded in place, relative to the including file.
func (r *Reader) Read(ctx context.Context, paths []string) ([]domain.RequirementFile, error) {
	files := make([]domain.RequirementFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			file := domain.RequirementFile{Path: p}
			if err := r.readInto(ctx, p, nil, &file); err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// readInto appends the requirements and options of path to file. stack holds the
// chain of files currently being expanded.
func (r *Reader) readInto(ctx context.Context, path string, stack []string, file *domain.RequirementFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(path)
	if slices.Contains(stack, clean) {
		return zerr.With(domain.ErrRequirementsIncludeCycle, "chain", strings.Join(append(stack, clean), " -> "))
	}
	stack = append(stack, clean)

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrRequirementsFileNotFound, "file", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrRequirementsFileReadFailed.Error()), "file", path)
	}

	entries, options, err := parse(path, data)
	if err != nil {
		return err
	}
	file.Options = file.Options.Merge(options)

	for _, e := range entries {
		if e.requirement != nil {
			file.Requirements = append(file.Requirements, *e.requirement)
			continue
		}
		if strings.Contains(e.include, "://") {
			return zerr.With(zerr.With(domain.ErrUnsupportedOption, "file", path), "include", e.include)
		}

		included := e.include
		if !filepath.IsAbs(included) {
			included = filepath.Join(filepath.Dir(path), included)
		}
		if err := r.readInto(ctx, included, stack, file); err != nil {
			return err
		}
	}
	return nil
}
