// Package state persists the record of the last successful sync.
package state

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.SyncRecordStore with one msgpack file per project.
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store on fsys.
func NewStore(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// Get retrieves the record stored under root. Returns nil, nil if there is none.
func (s *Store) Get(root string) (*domain.SyncRecord, error) {
	filename := s.filename(root)
	data, err := afero.ReadFile(s.fs, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "file", filename)
	}

	var record domain.SyncRecord
	if err := msgpack.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error()), "file", filename)
	}
	return &record, nil
}

// Put stores the record under root, replacing the previous one atomically.
func (s *Store) Put(root string, record domain.SyncRecord) error {
	data, err := msgpack.Marshal(&record)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreEncodeFailed.Error())
	}

	filename := s.filename(root)
	dir := filepath.Dir(filename)
	if err := s.fs.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", dir)
	}

	tmp, err := afero.TempFile(s.fs, dir, domain.StateFileName+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "dir", dir)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "file", filename)
	}
	if err := s.fs.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "file", filename)
	}
	if err := s.fs.Rename(tmpName, filename); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "file", filename)
	}
	return nil
}

func (s *Store) filename(root string) string {
	return filepath.Join(root, domain.DefaultStatePath())
}
