// Package storage implements ports.Storage on the local filesystem and
// resolves where scratch bundles are staged.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// OS is the filesystem-backed Storage.
type OS struct{}

// New returns the OS storage.
func New() OS {
	return OS{}
}

// MkdirAll creates path and any missing parents.
func (OS) MkdirAll(path string) error {
	return os.MkdirAll(path, domain.DirectoryPermissions)
}

// Exists reports whether path exists. Errors other than "not found" are
// returned so callers do not mistake a permission problem for a free name.
func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// WriteFile writes data, replacing any existing file.
func (OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, domain.FilePermissions)
}

// RemoveAll deletes path recursively. A missing path is not an error.
func (OS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// CopyDir copies the tree under src into dst, creating dst as needed.
// Symlinks are skipped and every copied file is synced before returning.
func (s OS) CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction { return cp.Skip },
		Sync:      true,
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return nil
}

var _ ports.Storage = OS{}
