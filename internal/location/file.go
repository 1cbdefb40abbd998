package location

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// File persists the last location path. Writes happen under an advisory lock
// next to the file so concurrent labelers sharing a state dir do not
// interleave.
type File struct {
	path string
	lock *flock.Flock
}

// NewFile returns a store for path. An empty path disables persistence.
func NewFile(path string) *File {
	if strings.TrimSpace(path) == "" {
		return &File{}
	}
	return &File{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load returns the stored path, or "" when nothing has been saved yet.
func (f *File) Load() (string, error) {
	if f.path == "" {
		return "", nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read location: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save replaces the stored path.
func (f *File) Save(path string) (err error) {
	if f.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create location dir: %w", err)
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock location: %w", err)
	}
	defer func() {
		if uerr := f.lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("unlock location: %w", uerr)
		}
	}()
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(path+"\n"), 0o644); err != nil {
		return fmt.Errorf("write location: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace location: %w", err)
	}
	return nil
}
