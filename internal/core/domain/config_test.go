package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/crxbuild/internal/core/domain"
)

type namedPlugin string

func (p namedPlugin) PluginName() string { return string(p) }

func TestNormalize(t *testing.T) {
	cwd := filepath.Join(string(filepath.Separator), "work", "ext")

	tests := []struct {
		name string
		opts domain.Options
		want domain.Config
	}{
		{
			name: "all defaults",
			opts: domain.Options{},
			want: domain.Config{
				Root:    cwd,
				OutDir:  "dist",
				Alias:   []domain.Alias{},
				Plugins: []domain.Plugin{},
			},
		},
		{
			name: "supplied values win",
			opts: domain.Options{
				Root:    "/src",
				OutDir:  "build",
				Alias:   []domain.Alias{{Find: "@", Replacement: "./src"}},
				Plugins: []domain.Plugin{namedPlugin("svg")},
			},
			want: domain.Config{
				Root:    "/src",
				OutDir:  "build",
				Alias:   []domain.Alias{{Find: "@", Replacement: "./src"}},
				Plugins: []domain.Plugin{namedPlugin("svg")},
			},
		},
		{
			name: "empty slices kept",
			opts: domain.Options{Root: "/src", Alias: []domain.Alias{}, Plugins: []domain.Plugin{}},
			want: domain.Config{
				Root:    "/src",
				OutDir:  "dist",
				Alias:   []domain.Alias{},
				Plugins: []domain.Plugin{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Normalize(tt.opts, cwd))
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	root := t.TempDir()
	cfg := domain.Normalize(domain.Options{Root: root}, "")

	assert.Equal(t, root, cfg.RootPath())
	assert.Equal(t, filepath.Join(root, "dist"), cfg.OutputPath())
	assert.Equal(t, filepath.Join(root, "popup.html"), cfg.EntryPath("popup.html"))
	assert.Equal(t, filepath.Join(root, "src", "popup.ts"), cfg.EntryPath("src/popup.ts"))
	assert.Equal(t, filepath.Join(root, "popup.ts"), cfg.EntryPath("./src/../popup.ts"))

	abs := filepath.Join(root, "elsewhere")
	cfg = domain.Normalize(domain.Options{Root: root, OutDir: abs}, "")
	assert.Equal(t, abs, cfg.OutputPath())
}

func TestConfig_RelativeRoot(t *testing.T) {
	cfg := domain.Normalize(domain.Options{Root: "."}, "")

	wd, err := filepath.Abs(".")
	assert.NoError(t, err)
	assert.Equal(t, wd, cfg.RootPath())
	assert.Equal(t, filepath.Join(wd, "dist"), cfg.OutputPath())
}
