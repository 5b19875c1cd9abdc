package esbuild_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crxbuild/internal/adapters/esbuild"
	"go.trai.ch/crxbuild/internal/core/domain"
)

const popupMetafile = `{
  "inputs": {},
  "outputs": {
    "dist/assets/popup-X7.js": {
      "imports": [
        {"path": "dist/assets/chunk-Q2.js", "kind": "import-statement"},
        {"path": "dist/assets/lazy-K9.js", "kind": "dynamic-import"},
        {"path": "chrome-extension-api", "kind": "import-statement", "external": true}
      ],
      "exports": [],
      "entryPoint": "src/popup.ts",
      "inputs": {
        "src/z-last-alphabetically.ts": {"bytesInOutput": 10},
        "virtual:env": {"bytesInOutput": 4},
        "src/popup.ts": {"bytesInOutput": 120}
      },
      "bytes": 200
    },
    "dist/assets/logo-P3.png": {"imports": [], "exports": [], "inputs": {"src/logo.png": {"bytesInOutput": 1}}, "bytes": 1}
  }
}`

func TestMetafile_CodeChunk(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "dist")

	artifact, err := esbuild.ParseOutputs(popupMetafile, root, outDir, "dist/assets/popup-X7.js", []byte("code"))
	require.NoError(t, err)

	chunk, ok := artifact.(domain.CodeChunk)
	require.True(t, ok, "expected a code chunk, got %T", artifact)
	assert.Equal(t, domain.CodeChunk{
		File:           "assets/popup-X7.js",
		Code:           "code",
		FacadeModuleID: filepath.Join(root, "src", "popup.ts"),
		Modules: []string{
			filepath.Join(root, "src", "z-last-alphabetically.ts"),
			"virtual:env",
			filepath.Join(root, "src", "popup.ts"),
		},
		Imports: []string{"assets/chunk-Q2.js", "assets/lazy-K9.js", "chrome-extension-api"},
	}, chunk)
}

func TestMetafile_Asset(t *testing.T) {
	root := t.TempDir()

	artifact, err := esbuild.ParseOutputs(popupMetafile, root, filepath.Join(root, "dist"), "dist/assets/logo-P3.png", []byte{0x89})
	require.NoError(t, err)
	assert.Equal(t, domain.AssetChunk{File: "assets/logo-P3.png", Source: []byte{0x89}}, artifact)
}

func TestMetafile_Invalid(t *testing.T) {
	_, err := esbuild.ParseOutputs("{not json", "/", "/dist", "x.js", nil)
	require.ErrorContains(t, err, domain.ErrMetafileParseFailed.Error())
}
