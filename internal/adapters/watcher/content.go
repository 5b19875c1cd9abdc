package watcher

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// ContentFilter drops change events for files whose content did not change,
// such as editors rewriting a file with the same bytes.
type ContentFilter struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewContentFilter creates an empty ContentFilter.
func NewContentFilter() *ContentFilter {
	return &ContentFilter{hashes: make(map[string]uint64)}
}

// Seed records the current content of paths without reporting changes.
// Unreadable paths are skipped.
func (f *ContentFilter) Seed(paths []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range paths {
		if sum, err := hashFile(p); err == nil {
			f.hashes[p] = sum
		}
	}
}

// Changed returns the paths whose content differs from what was last seen.
// Removed files and files never seen count as changed. Directories are ignored.
func (f *ContentFilter) Changed(paths []string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := make([]string, 0, len(paths))
	for _, p := range paths {
		sum, err := hashFile(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if _, known := f.hashes[p]; known {
				delete(f.hashes, p)
				changed = append(changed, p)
			}
			continue
		case errors.Is(err, errIsDir):
			continue
		case err != nil:
			changed = append(changed, p)
			continue
		}

		if old, ok := f.hashes[p]; ok && old == sum {
			continue
		}
		f.hashes[p] = sum
		changed = append(changed, p)
	}
	return changed
}

var errIsDir = errors.New("is a directory")

func hashFile(path string) (uint64, error) {
	//nolint:gosec // Paths come from watch events below the project root
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, errIsDir
	}

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return h.Sum64(), nil
}
