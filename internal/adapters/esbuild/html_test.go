package esbuild_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crxbuild/internal/adapters/esbuild"
	"go.trai.ch/crxbuild/internal/core/domain"
)

func TestRewriteHTML(t *testing.T) {
	root, err := filepath.Abs("testdata")
	require.NoError(t, err)

	entryPoints, src, err := esbuild.RewriteHTML(filepath.Join(root, "popup.html"), root, map[string][2]string{
		filepath.Join(root, "src", "base.css"): {"assets/base-AAAA.css", ""},
		filepath.Join(root, "src", "popup.ts"): {"assets/popup-BBBB.js", "assets/popup-BBBB.css"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "base.css"),
		filepath.Join(root, "src", "popup.ts"),
	}, entryPoints)

	g := goldie.New(t)
	g.Assert(t, "popup_rewrite", src)
}

func TestRewriteHTML_NestedPage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pages"), 0o750))
	page := filepath.Join(root, "pages", "popup.html")
	require.NoError(t, os.WriteFile(page, []byte(
		`<html><head><script src="main.ts"></script><script src="/shared/boot.ts"></script></head></html>`), 0o600))

	entryPoints, _, err := esbuild.RewriteHTML(page, root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "pages", "main.ts"),
		filepath.Join(root, "shared", "boot.ts"),
	}, entryPoints)
}

func TestRewriteHTML_Missing(t *testing.T) {
	root := t.TempDir()

	_, _, err := esbuild.RewriteHTML(filepath.Join(root, "popup.html"), root, nil)
	require.ErrorContains(t, err, domain.ErrHTMLReadFailed.Error())
}
