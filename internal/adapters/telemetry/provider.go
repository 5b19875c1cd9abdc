// Package telemetry sets up OpenTelemetry tracing for the CLI.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/crxbuild/internal/core/ports"
)

// Provider owns the process tracer provider and its log bridge.
type Provider struct {
	tp     *sdktrace.TracerProvider
	bridge *Bridge
}

// NewProvider creates a tracer provider reporting to log and installs it as the
// global OpenTelemetry provider.
func NewProvider(log ports.Logger) *Provider {
	bridge := NewBridge(log)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp, bridge: bridge}
}

// Tracer returns a named tracer of the provider.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// SetVerbose enables logging of finished spans.
func (p *Provider) SetVerbose(enable bool) {
	p.bridge.SetEnabled(enable)
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
