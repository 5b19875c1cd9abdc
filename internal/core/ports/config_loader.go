package ports

import "go.trai.ch/crxbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. Relative paths inside the file are
	// resolved against the file's directory. A missing file yields the defaults for
	// the directory containing path.
	Load(path string) (*domain.Project, error)
}
