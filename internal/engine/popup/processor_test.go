package popup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports/mocks"
	"go.trai.ch/crxbuild/internal/engine/popup"
	"go.uber.org/mock/gomock"
)

func manifestWithPopup(entry string) *domain.Manifest {
	return &domain.Manifest{
		ManifestVersion: 3,
		Name:            "test",
		Action:          &domain.Action{DefaultPopup: entry},
	}
}

// popupBundle mimics an HTML entry: a shared chunk, an entry chunk and the page itself.
func popupBundle(root, entry string) domain.Bundle {
	return domain.Bundle{
		domain.CodeChunk{
			File:    "assets/chunk-shared.js",
			Code:    "export const shared = 1;\n",
			Modules: []string{filepath.Join(root, "src/shared.ts")},
		},
		domain.CodeChunk{
			File:           "assets/popup.js",
			Code:           "import './chunk-shared.js';\n",
			FacadeModuleID: filepath.Join(root, "src/popup.ts"),
			Modules:        []string{filepath.Join(root, "src/popup.ts"), filepath.Join(root, "src/view.ts")},
			Imports:        []string{"assets/chunk-shared.js"},
		},
		domain.CodeChunk{
			File:           entry,
			Code:           "<html><script type=\"module\" src=\"/assets/popup.js\"></script></html>",
			FacadeModuleID: filepath.Join(root, entry),
			Modules:        []string{filepath.Join(root, entry)},
		},
	}
}

func newLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func TestProcessor_Resolve_NoPopup(t *testing.T) {
	tests := []struct {
		name     string
		manifest *domain.Manifest
	}{
		{name: "nil manifest", manifest: nil},
		{name: "no action", manifest: &domain.Manifest{ManifestVersion: 3}},
		{name: "empty popup", manifest: &domain.Manifest{Action: &domain.Action{DefaultTitle: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			bundler := mocks.NewMockBundler(ctrl)
			bundler.EXPECT().Bundle(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			p := popup.NewProcessor(domain.Options{Root: t.TempDir()}, bundler, newLogger(ctrl))

			modules, err := p.Resolve(context.Background(), tt.manifest)
			require.NoError(t, err)
			assert.NotNil(t, modules)
			assert.Empty(t, modules)

			got, err := p.Build(context.Background())
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestProcessor_Resolve_CachesByEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)

	gomock.InOrder(
		bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).
			Return(popupBundle(root, "popup.html"), nil).Times(1),
		bundler.EXPECT().Bundle(gomock.Any(), "popup2.html", gomock.Any()).
			Return(popupBundle(root, "popup2.html"), nil).Times(1),
	)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))
	ctx := context.Background()

	first, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)

	second, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = p.Resolve(ctx, manifestWithPopup("popup2.html"))
	require.NoError(t, err)

	got, err := p.Build(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "popup2.html", got.Entry)
}

func TestProcessor_Resolve_ModuleOrderAndDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.ts", gomock.Any()).Return(domain.Bundle{
		domain.CodeChunk{
			File:           "popup.js",
			FacadeModuleID: filepath.Join(root, "popup.ts"),
			Modules:        []string{"/m/a.ts", "/m/b.ts"},
			Imports:        []string{"vendor.js"},
		},
		domain.AssetChunk{File: "logo.png", Source: []byte{0x89}},
		domain.CodeChunk{
			File:    "other.js",
			Modules: []string{"/m/a.ts"},
			Imports: []string{"vendor.js"},
		},
		domain.CodeChunk{File: "vendor.js", Modules: []string{"/m/vendor.ts"}},
	}, nil)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))

	modules, err := p.Resolve(context.Background(), manifestWithPopup("popup.ts"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/m/a.ts", "/m/b.ts", "vendor.js",
		"/m/a.ts", "vendor.js",
		"/m/vendor.ts",
	}, modules)
}

func TestProcessor_Resolve_BundleFailureKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	engineErr := errors.New("engine exploded")

	gomock.InOrder(
		bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).
			Return(popupBundle(root, "popup.html"), nil),
		bundler.EXPECT().Bundle(gomock.Any(), "broken.html", gomock.Any()).
			Return(nil, engineErr),
	)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)

	modules, err := p.Resolve(ctx, manifestWithPopup("broken.html"))
	require.ErrorIs(t, err, engineErr)
	assert.Nil(t, modules)

	got, err := p.Build(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "popup.html", got.Entry)
}

func TestProcessor_Resolve_FirstFailureLeavesCacheEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).Return(nil, errors.New("boom"))

	p := popup.NewProcessor(domain.Options{Root: t.TempDir()}, bundler, newLogger(ctrl))

	_, err := p.Resolve(context.Background(), manifestWithPopup("popup.html"))
	require.Error(t, err)

	got, err := p.Build(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProcessor_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).
		Return(popupBundle(root, "popup.html"), nil).Times(2)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)

	p.Invalidate()
	got, err := p.Build(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)
}

func TestProcessor_Build_BeforeResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	outDir := filepath.Join(root, "dist")
	require.NoError(t, os.Mkdir(outDir, 0o750))

	p := popup.NewProcessor(domain.Options{Root: root}, mocks.NewMockBundler(ctrl), newLogger(ctrl))

	got, err := p.Build(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessor_Build_WritesArtifacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	outDir := filepath.Join(root, "dist")
	require.NoError(t, os.Mkdir(outDir, 0o750))

	bundle := popupBundle(root, "popup.html")
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).Return(bundle, nil)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)

	got, err := p.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.ResolvedModule{Entry: "popup.html", Bundle: "popup.html"}, got)

	for _, artifact := range bundle {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(artifact.FileName())))
		require.NoError(t, err, artifact.FileName())
		switch a := artifact.(type) {
		case domain.CodeChunk:
			assert.Equal(t, a.Code, string(data))
		case domain.AssetChunk:
			assert.Equal(t, a.Source, data)
		}
	}
}

func TestProcessor_Build_ResolvesCodeEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "src/popup.ts", gomock.Any()).Return(domain.Bundle{
		domain.CodeChunk{File: "assets/chunk-a.js", Modules: []string{"a"}},
		domain.CodeChunk{File: "assets/popup-1234.js", FacadeModuleID: filepath.Join(root, "src", "popup.ts")},
	}, nil)

	p := popup.NewProcessor(domain.Options{Root: root, OutDir: "build"}, bundler, newLogger(ctrl))
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("src/popup.ts"))
	require.NoError(t, err)

	got, err := p.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.ResolvedModule{Entry: "src/popup.ts", Bundle: "assets/popup-1234.js"}, got)
}

func TestProcessor_Build_MissingOutputDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).Return(popupBundle(root, "popup.html"), nil)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Times(1)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, log)
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)

	got, err := p.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.ResolvedModule{Entry: "popup.html", Bundle: "popup.html"}, got)

	_, err = os.Stat(filepath.Join(root, "dist"))
	assert.True(t, os.IsNotExist(err), "output directory must not be created")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessor_Build_CreatesOneDirectoryLevel(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{name: "flat file", file: "popup.js"},
		{name: "one new level", file: "assets/popup.js"},
		{name: "two new levels", file: "assets/js/popup.js", wantErr: domain.ErrOutputDirCreateFailed.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			root := t.TempDir()
			outDir := filepath.Join(root, "dist")
			require.NoError(t, os.Mkdir(outDir, 0o750))

			bundler := mocks.NewMockBundler(ctrl)
			bundler.EXPECT().Bundle(gomock.Any(), "popup.ts", gomock.Any()).Return(domain.Bundle{
				domain.CodeChunk{File: tt.file, Code: "x", FacadeModuleID: filepath.Join(root, "popup.ts")},
			}, nil)

			p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))
			ctx := context.Background()

			_, err := p.Resolve(ctx, manifestWithPopup("popup.ts"))
			require.NoError(t, err)

			got, err := p.Build(ctx)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.file, got.Bundle)
			assert.FileExists(t, filepath.Join(outDir, filepath.FromSlash(tt.file)))
		})
	}
}

func TestProcessor_Build_EntryNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).Return(domain.Bundle{
		domain.CodeChunk{File: "assets/popup.js", FacadeModuleID: filepath.Join(root, "src/popup.ts")},
		domain.AssetChunk{File: "other.html"},
	}, nil)

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl))
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)

	got, err := p.Build(ctx)
	assert.Nil(t, got)
	require.ErrorIs(t, err, domain.ErrEntryChunkNotFound)

	var notFound *domain.EntryNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "popup.html", notFound.Entry)
	assert.Equal(t, filepath.Join(root, "popup.html"), notFound.FacadeModuleID)
	assert.Equal(t, 2, notFound.Artifacts)
}

func TestProcessor_Spans(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	bundler := mocks.NewMockBundler(ctrl)
	bundler.EXPECT().Bundle(gomock.Any(), "popup.html", gomock.Any()).Return(popupBundle(root, "popup.html"), nil)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	p := popup.NewProcessor(domain.Options{Root: root}, bundler, newLogger(ctrl),
		popup.WithTracer(provider.Tracer(popup.TracerName)))
	ctx := context.Background()

	_, err := p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)
	_, err = p.Resolve(ctx, manifestWithPopup("popup.html"))
	require.NoError(t, err)
	_, err = p.Build(ctx)
	require.NoError(t, err)

	names := make([]string, 0, 4)
	rebuilds := make([]bool, 0, 2)
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
		if span.Name() != "popup.resolve" {
			continue
		}
		for _, attr := range span.Attributes() {
			if attr.Key == "rebuild" {
				rebuilds = append(rebuilds, attr.Value.AsBool())
			}
		}
	}
	assert.Equal(t, []string{"popup.bundle", "popup.resolve", "popup.resolve", "popup.build"}, names)
	assert.Equal(t, []bool{true, false}, rebuilds)
}
