// Package store persists the cached note configuration and the tag universe
// in the data directory.
//
// Writes are atomic (temp file plus rename) and every read or write holds an
// advisory lock on a sibling ".lock" file, so two sessions started in quick
// succession never observe or produce a half-written file.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/btrkeks/bookminer/internal/errors"
)

// withLock runs fn while holding the lock for path. Shared locks are used
// for reads, exclusive locks for writes.
func withLock(path string, exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewLocalIOError("create directory for", path, err)
	}

	lock := flock.New(path + ".lock")
	var err error
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return errors.NewLocalIOError("lock", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// readFile reads path, reporting (nil, false, nil) when it does not exist.
func readFile(path string) ([]byte, bool, error) {
	var data []byte
	var found bool
	err := withLock(path, false, func() error {
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return errors.NewLocalIOError("read", path, err)
		}
		data, found = b, true
		return nil
	})
	return data, found, err
}

// writeFile replaces path with data.
func writeFile(path string, data []byte) error {
	return withLock(path, true, func() error {
		if err := atomicWriteFile(path, data, 0o644); err != nil {
			return errors.NewLocalIOError("write", path, err)
		}
		return nil
	})
}

// atomicWriteFile writes data to a temporary file in the same directory and
// renames it over path, so path is never partially written.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
