package config

// SupportedVersion is the config file version this loader understands.
const SupportedVersion = "1"

// Crxfile is the structure of the crxbuild.yaml configuration file.
type Crxfile struct {
	Version  string     `yaml:"version"`
	Manifest string     `yaml:"manifest"`
	Root     string     `yaml:"root"`
	OutDir   string     `yaml:"outDir"`
	Alias    []AliasDTO `yaml:"alias"`
}

// AliasDTO is one entry of the alias list.
type AliasDTO struct {
	Find        string `yaml:"find"`
	Replacement string `yaml:"replacement"`
}
