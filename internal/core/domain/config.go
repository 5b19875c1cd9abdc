package domain

import "path/filepath"

// DefaultOutDir is the output directory used when none is configured.
const DefaultOutDir = "dist"

// Alias rewrites import specifiers that equal Find or start with Find followed by a slash.
type Alias struct {
	Find        string `yaml:"find"`
	Replacement string `yaml:"replacement"`
}

// Plugin is an engine-specific build plugin.
// Bundler adapters accept the plugin values they construct and reject the rest.
type Plugin interface {
	PluginName() string
}

// Options is the partial configuration supplied by the caller.
type Options struct {
	Root    string
	OutDir  string
	Alias   []Alias
	Plugins []Plugin
}

// Config is the normalized configuration. It is not modified after construction.
type Config struct {
	Root    string
	OutDir  string
	Alias   []Alias
	Plugins []Plugin
}

// Normalize fills every unset option with its default.
// cwd is used as the root when opts.Root is empty.
func Normalize(opts Options, cwd string) Config {
	cfg := Config{
		Root:    opts.Root,
		OutDir:  opts.OutDir,
		Alias:   opts.Alias,
		Plugins: opts.Plugins,
	}
	if cfg.Root == "" {
		cfg.Root = cwd
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.Alias == nil {
		cfg.Alias = []Alias{}
	}
	if cfg.Plugins == nil {
		cfg.Plugins = []Plugin{}
	}
	return cfg
}

// RootPath returns the absolute root directory.
func (c Config) RootPath() string {
	return absPath(c.Root)
}

// OutputPath returns the absolute output directory.
func (c Config) OutputPath() string {
	return c.resolve(c.OutDir)
}

// EntryPath returns the absolute path of an entry relative to the root.
func (c Config) EntryPath(entry string) string {
	return c.resolve(entry)
}

func (c Config) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.RootPath(), p)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
