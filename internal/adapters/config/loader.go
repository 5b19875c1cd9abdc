// Package config loads crxbuild.yaml project files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a Loader reading from the local disk.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: OSFS{}}
}

// Load reads the project at path.
//
// A directory path is searched upwards for crxbuild.yaml. When no config file
// exists the defaults apply, rooted at the directory that was searched or that
// would have held the file.
func (l *Loader) Load(path string) (*domain.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	configPath, found, err := l.locate(abs)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultProject(filepath.Dir(configPath)), nil
	}

	var file Crxfile
	if err := l.readYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown version %q in %s, reading it as version %s",
			file.Version, configPath, SupportedVersion))
	}

	return toProject(configPath, &file)
}

// locate returns the config file for abs and whether it exists. Directories are
// searched upwards; a file path is taken as is.
func (l *Loader) locate(abs string) (string, bool, error) {
	info, err := l.FS.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return abs, false, nil
	case err != nil:
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", abs)
	case !info.IsDir():
		return abs, true, nil
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(abs, domain.ConfigFileName), false, nil
		}
		dir = parent
	}
}

func (l *Loader) readYAML(path string, target *Crxfile) error {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func toProject(configPath string, file *Crxfile) (*domain.Project, error) {
	root := resolveRoot(configPath, file.Root)

	aliases := make([]domain.Alias, 0, len(file.Alias))
	for i, a := range file.Alias {
		if a.Find == "" {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidAlias, "invalid configuration"), "index", i)
			return nil, zerr.With(err, "path", configPath)
		}
		aliases = append(aliases, domain.Alias{Find: a.Find, Replacement: a.Replacement})
	}

	manifest := file.Manifest
	if manifest == "" {
		manifest = domain.ManifestFileName
	}
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(root, filepath.FromSlash(manifest))
	}

	return &domain.Project{
		ManifestPath: filepath.Clean(manifest),
		Options: domain.Options{
			Root:   root,
			OutDir: file.OutDir,
			Alias:  aliases,
		},
	}, nil
}

func defaultProject(dir string) *domain.Project {
	return &domain.Project{
		ManifestPath: filepath.Join(dir, domain.ManifestFileName),
		Options:      domain.Options{Root: dir},
	}
}

// resolveRoot resolves the configured root against the directory of the config file.
func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, filepath.FromSlash(configuredRoot)))
}
