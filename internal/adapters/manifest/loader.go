// Package manifest reads extension manifests.
package manifest

import (
	"encoding/json"
	"os"

	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ManifestLoader for manifest.json files.
type Loader struct{}

var _ ports.ManifestLoader = (*Loader)(nil)

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the manifest at path. Only the fields of domain.Manifest
// are read; the rest of the manifest is ignored.
func (*Loader) Load(path string) (*domain.Manifest, error) {
	//nolint:gosec // Reading the project's own manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	return &m, nil
}
