package ports

import "go.trai.ch/crxbuild/internal/core/domain"

// ManifestLoader defines the interface for reading the extension manifest.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads and decodes the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
