package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts the file access of the loader.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem on the local disk.
type OSFS struct{}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is the user's config file
	return os.ReadFile(path)
}

// MapFSAdapter serves an fs.FS as if it were mounted at Root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates a MapFSAdapter mounting fsys at root.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{FS: fsys, Root: root}
}

// Stat returns file info for path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// toRelPath maps an absolute path below Root into the fs.FS. Paths outside Root
// are returned unchanged so that lookups fail with fs.ErrNotExist.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return filepath.ToSlash(absPath)
	}
	if absPath == m.Root {
		return "."
	}

	prefix := strings.TrimSuffix(m.Root, string(filepath.Separator)) + string(filepath.Separator)
	if !strings.HasPrefix(absPath, prefix) {
		return absPath
	}
	return filepath.ToSlash(strings.TrimPrefix(absPath, prefix))
}
