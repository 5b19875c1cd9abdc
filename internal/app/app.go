// Package app implements the crxbuild use cases on top of the popup processor.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/crxbuild/internal/adapters/watcher"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
	"go.trai.ch/crxbuild/internal/engine/popup"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App wires the loaders, the build engine and the watcher around a popup processor.
type App struct {
	configLoader   ports.ConfigLoader
	manifestLoader ports.ManifestLoader
	bundler        ports.Bundler
	watcher        ports.Watcher
	logger         ports.Logger
	tracer         trace.Tracer
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	manifestLoader ports.ManifestLoader,
	bundler ports.Bundler,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   configLoader,
		manifestLoader: manifestLoader,
		bundler:        bundler,
		watcher:        w,
		logger:         log,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithTracer sets the tracer handed to every processor.
func (a *App) WithTracer(tracer trace.Tracer) *App {
	a.tracer = tracer
	return a
}

// WithDebounceWindow sets the quiet period the watch loop waits for before rebuilding.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounceWindow = window
	return a
}

// Options selects the project a command works on.
type Options struct {
	// ConfigPath is a crxbuild.yaml file or a directory to search from.
	ConfigPath string
	// OutDir overrides the configured output directory when set.
	OutDir string
}

// session is one loaded project with its processor.
type session struct {
	project   *domain.Project
	manifest  *domain.Manifest
	processor *popup.Processor
}

func (a *App) open(opts Options) (*session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = "."
	}

	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.OutDir != "" {
		project.Options.OutDir = opts.OutDir
	}

	manifest, err := a.manifestLoader.Load(project.ManifestPath)
	if err != nil {
		return nil, err
	}

	var options []popup.Option
	if a.tracer != nil {
		options = append(options, popup.WithTracer(a.tracer))
	}
	return &session{
		project:   project,
		manifest:  manifest,
		processor: popup.NewProcessor(project.Options, a.bundler, a.logger, options...),
	}, nil
}

// Resolve returns the modules contributing to the project's popup.
func (a *App) Resolve(ctx context.Context, opts Options) ([]string, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	return s.processor.Resolve(ctx, s.manifest)
}

// Build bundles the popup and writes it to the output directory, which is
// created if needed. It returns nil when the manifest declares no popup.
func (a *App) Build(ctx context.Context, opts Options) (*domain.ResolvedModule, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	result, _, err := a.build(ctx, s)
	return result, err
}

func (a *App) build(ctx context.Context, s *session) (*domain.ResolvedModule, []string, error) {
	modules, err := s.processor.Resolve(ctx, s.manifest)
	if err != nil {
		return nil, nil, err
	}

	outDir := s.processor.Config().OutputPath()
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", outDir)
	}

	result, err := s.processor.Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	return result, modules, nil
}

// Clean removes the output directory.
func (a *App) Clean(_ context.Context, opts Options) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}

	outDir := s.processor.Config().OutputPath()
	a.logger.Info(fmt.Sprintf("removing %s", outDir))
	if err := os.RemoveAll(outDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove output directory"), "path", outDir)
	}
	return nil
}

// Watch builds the popup, then rebuilds whenever a contributing module or the
// manifest changes, until ctx is done. observer is told about every build attempt.
// Build failures after the first load are logged and the loop keeps running.
func (a *App) Watch(ctx context.Context, opts Options, observer ports.BuildObserver) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}

	cfg := s.processor.Config()
	skip := []string{filepath.Base(cfg.OutputPath())}
	if err := a.watcher.Start(ctx, cfg.RootPath(), skip...); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}
	observer.WatchStarted(cfg.RootPath())

	loop := &watchLoop{
		app:      a,
		session:  s,
		filter:   watcher.NewContentFilter(),
		observer: observer,
	}
	loop.rebuild(ctx)

	batches := make(chan []string)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(filepath.Clean(event.Path))
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			debouncer.Stop()
			_ = a.watcher.Stop()
		}()
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-batches:
				loop.handle(gctx, paths)
			}
		}
	})
	return g.Wait()
}

// watchLoop is the state of one Watch call. It is only used from the loop goroutine.
type watchLoop struct {
	app      *App
	session  *session
	filter   *watcher.ContentFilter
	modules  []string
	failed   bool
	observer ports.BuildObserver
}

func (l *watchLoop) handle(ctx context.Context, paths []string) {
	changed := l.filter.Changed(paths)
	if len(changed) == 0 {
		return
	}

	manifestPath := filepath.Clean(l.session.project.ManifestPath)
	manifestChanged := slices.Contains(changed, manifestPath)
	// After a failure the module list is unknown and the cache may hold a bundle
	// that was never written, so any change starts from scratch.
	stale := l.failed || slices.ContainsFunc(changed, l.isModule)
	if !manifestChanged && !stale {
		return
	}

	if stale {
		l.session.processor.Invalidate()
	}
	if manifestChanged {
		manifest, err := l.app.manifestLoader.Load(manifestPath)
		if err != nil {
			l.app.logger.Error(err)
			l.failed = true
			return
		}
		l.session.manifest = manifest
	}
	l.rebuild(ctx)
}

func (l *watchLoop) isModule(path string) bool {
	return slices.Contains(l.modules, path)
}

func (l *watchLoop) rebuild(ctx context.Context) {
	l.observer.BuildStarted()
	start := time.Now()

	result, modules, err := l.app.build(ctx, l.session)
	l.failed = err != nil
	if err != nil {
		l.app.logger.Error(err)
	} else {
		l.modules = modules
		l.filter.Seed(append(slices.Clone(modules), filepath.Clean(l.session.project.ManifestPath)))
	}

	l.observer.BuildFinished(domain.BuildReport{
		Result:   result,
		Err:      err,
		Duration: time.Since(start),
	})
}
