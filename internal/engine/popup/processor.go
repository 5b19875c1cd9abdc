// Package popup builds and caches the bundle behind an extension's popup page.
package popup

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
)

// TracerName is the instrumentation name of the processor's spans.
const TracerName = "go.trai.ch/crxbuild/internal/engine/popup"

// Processor resolves and materializes the popup bundle declared by a manifest.
//
// A Processor keeps the bundle of the last successfully built entry in memory.
// It is not safe for concurrent use; callers serialize Resolve and Build.
type Processor struct {
	config  domain.Config
	bundler ports.Bundler
	logger  ports.Logger
	tracer  trace.Tracer
	cache   *Cache
}

// Option configures a Processor.
type Option func(*Processor)

// WithTracer sets the tracer used for the processor's spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Processor) {
		p.tracer = tracer
	}
}

// NewProcessor creates a Processor. Unset options are defaulted against the
// current working directory.
func NewProcessor(opts domain.Options, bundler ports.Bundler, log ports.Logger, options ...Option) *Processor {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	p := &Processor{
		config:  domain.Normalize(opts, cwd),
		bundler: bundler,
		logger:  log,
		tracer:  otel.Tracer(TracerName),
		cache:   NewCache(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Config returns the normalized configuration.
func (p *Processor) Config() domain.Config {
	return p.config
}

// Invalidate drops the cached bundle so the next Resolve rebuilds.
func (p *Processor) Invalidate() {
	p.cache.Reset()
}

// Resolve returns the module identifiers backing the manifest's popup entry.
//
// The bundle is rebuilt only when nothing is cached or the declared entry differs
// from the cached one; edits to the files of an unchanged entry are not detected.
// The result lists, for every code chunk in bundle order, its modules followed by
// its imports. Duplicates are kept.
func (p *Processor) Resolve(ctx context.Context, manifest *domain.Manifest) ([]string, error) {
	entry, ok := manifest.PopupEntry()
	if !ok {
		return []string{}, nil
	}

	ctx, span := p.tracer.Start(ctx, "popup.resolve", trace.WithAttributes(attribute.String("entry", entry)))
	defer span.End()

	stale := p.cache.IsStale(entry)
	span.SetAttributes(attribute.Bool("rebuild", stale))
	if stale {
		p.logger.Info(fmt.Sprintf("rebuilding popup %s", entry))
		bundle, err := p.bundle(ctx, entry)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "bundle failed")
			return nil, err
		}
		p.cache.Update(entry, bundle)
	}

	_, bundle, _ := p.cache.Snapshot()
	modules := extractModules(bundle)
	span.SetAttributes(attribute.Int("modules", len(modules)))
	return modules, nil
}

// Build writes the cached bundle to the output directory and returns the entry's
// output descriptor. It returns nil when no bundle has been built yet.
//
// Artifacts are written only when the output directory already exists. When it
// does not, nothing is written and the descriptor is still returned.
func (p *Processor) Build(ctx context.Context) (*domain.ResolvedModule, error) {
	entry, bundle, ok := p.cache.Snapshot()
	if !ok {
		return nil, nil
	}

	_, span := p.tracer.Start(ctx, "popup.build", trace.WithAttributes(attribute.String("entry", entry)))
	defer span.End()

	written, err := p.writeArtifacts(bundle)
	span.SetAttributes(attribute.Int("written", written))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return nil, err
	}

	artifact, err := findEntryArtifact(p.config, entry, bundle)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "entry not found")
		return nil, err
	}

	return &domain.ResolvedModule{
		Entry:  entry,
		Bundle: artifact.FileName(),
	}, nil
}

// bundle runs the build engine for entry. Engine errors are returned as is.
func (p *Processor) bundle(ctx context.Context, entry string) (domain.Bundle, error) {
	ctx, span := p.tracer.Start(ctx, "popup.bundle", trace.WithAttributes(attribute.String("entry", entry)))
	defer span.End()

	bundle, err := p.bundler.Bundle(ctx, entry, p.config)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("artifacts", len(bundle)))
	return bundle, nil
}
