// Package esbuild implements ports.Bundler on esbuild's Go API.
package esbuild

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Output name templates, relative to the output directory.
const (
	EntryNames = "assets/[name]-[hash]"
	ChunkNames = "assets/chunk-[hash]"
	AssetNames = "assets/[name]-[hash]"
)

// fileLoaders are the asset types emitted as separate files when imported from code.
var fileLoaders = map[string]api.Loader{
	".png":   api.LoaderFile,
	".jpg":   api.LoaderFile,
	".jpeg":  api.LoaderFile,
	".gif":   api.LoaderFile,
	".svg":   api.LoaderFile,
	".webp":  api.LoaderFile,
	".ico":   api.LoaderFile,
	".woff":  api.LoaderFile,
	".woff2": api.LoaderFile,
	".ttf":   api.LoaderFile,
}

// Bundler builds popup entries with esbuild. Script and style entries are bundled
// directly; HTML entries are parsed, their local scripts and stylesheets bundled,
// and the rewritten page emitted as a chunk named exactly like the entry whose only
// module is the page itself.
type Bundler struct {
	logger ports.Logger
}

var _ ports.Bundler = (*Bundler)(nil)

// New creates a Bundler. Engine warnings are reported to log.
func New(log ports.Logger) *Bundler {
	return &Bundler{logger: log}
}

// Bundle builds entry in memory. Nothing is written to disk.
func (b *Bundler) Bundle(ctx context.Context, entry string, cfg domain.Config) (domain.Bundle, error) {
	plugins, err := enginePlugins(cfg.Plugins)
	if err != nil {
		return nil, err
	}

	l := layout{root: cfg.RootPath(), outDir: cfg.OutputPath()}
	entryPath := cfg.EntryPath(entry)

	if !isHTML(entry) {
		bundle, _, err := b.build(ctx, l, []string{entryPath}, cfg.Alias, plugins)
		return bundle, err
	}

	page, err := readHTMLPage(entryPath, l.root)
	if err != nil {
		return nil, zerr.With(err, "entry", entry)
	}

	var (
		bundle  domain.Bundle
		outputs map[string]pageOutput
	)
	if entryPoints := page.entryPoints(); len(entryPoints) > 0 {
		bundle, outputs, err = b.build(ctx, l, entryPoints, cfg.Alias, plugins)
		if err != nil {
			return nil, err
		}
	}

	source, err := page.render(outputs)
	if err != nil {
		return nil, zerr.With(err, "entry", entry)
	}
	return append(bundle, domain.CodeChunk{
		File:           entry,
		Code:           string(source),
		FacadeModuleID: entryPath,
		Modules:        []string{entryPath},
	}), nil
}

// build runs one esbuild build and returns its artifacts in engine order, plus the
// output of every entry point keyed by its absolute path.
func (b *Bundler) build(
	ctx context.Context,
	l layout,
	entryPoints []string,
	aliases []domain.Alias,
	plugins []api.Plugin,
) (domain.Bundle, map[string]pageOutput, error) {
	opts := api.BuildOptions{
		EntryPoints:   entryPoints,
		AbsWorkingDir: l.root,
		Outdir:        l.outDir,
		Outbase:       l.root,
		EntryNames:    EntryNames,
		ChunkNames:    ChunkNames,
		AssetNames:    AssetNames,
		Bundle:        true,
		Splitting:     true,
		Format:        api.FormatESModule,
		Platform:      api.PlatformBrowser,
		Loader:        fileLoaders,
		TsconfigRaw:   "{}",
		Metafile:      true,
		Write:         false,
		LogLevel:      api.LogLevelSilent,
		Plugins:       append([]api.Plugin{aliasPlugin(l.root, aliases)}, plugins...),
	}

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return nil, nil, bundleError(ctxErr.Errors)
	}
	defer buildCtx.Dispose()

	stop := context.AfterFunc(ctx, buildCtx.Cancel)
	defer stop()

	result := buildCtx.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrBundleFailed.Error())
	}
	for _, w := range result.Warnings {
		b.logger.Warn(formatMessage(w))
	}
	if len(result.Errors) > 0 {
		return nil, nil, bundleError(result.Errors)
	}

	meta, err := parseMetafile(result.Metafile)
	if err != nil {
		return nil, nil, err
	}

	// Style sheets split off a script entry name that entry too; the script stays its facade.
	cssBundles := make(map[string]bool)
	for _, out := range meta.Outputs {
		if out.CSSBundle != "" {
			cssBundles[out.CSSBundle] = true
		}
	}

	bundle := make(domain.Bundle, 0, len(result.OutputFiles))
	outputs := make(map[string]pageOutput, len(entryPoints))
	for _, file := range result.OutputFiles {
		key := l.outputKey(file.Path)
		out := meta.Outputs[key]
		if cssBundles[key] {
			out.EntryPoint = ""
		}
		artifact := l.artifactFor(file.Path, file.Contents, out)
		bundle = append(bundle, artifact)

		if out.EntryPoint == "" {
			continue
		}
		po := pageOutput{file: artifact.FileName()}
		if out.CSSBundle != "" {
			po.cssBundle = l.fileName(out.CSSBundle)
		}
		outputs[l.moduleID(out.EntryPoint)] = po
	}
	return bundle, outputs, nil
}

// bundleError reports the first engine error with its location.
func bundleError(msgs []api.Message) error {
	if len(msgs) == 0 {
		return domain.ErrBundleFailed
	}

	first := msgs[0]
	var err error = zerr.Wrap(errors.New(first.Text), domain.ErrBundleFailed.Error())
	if loc := first.Location; loc != nil {
		err = zerr.With(err, "file", loc.File)
		err = zerr.With(err, "line", loc.Line)
		err = zerr.With(err, "column", loc.Column)
	}
	if first.PluginName != "" {
		err = zerr.With(err, "plugin", first.PluginName)
	}
	if len(msgs) > 1 {
		err = zerr.With(err, "errors", len(msgs))
	}
	return err
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
}
