package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/crxbuild/internal/core/ports"
)

// Bridge is an sdktrace.SpanProcessor reporting finished spans to a logger.
// It stays silent until enabled.
type Bridge struct {
	logger  ports.Logger
	enabled atomic.Bool
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a disabled Bridge writing to log.
func NewBridge(log ports.Logger) *Bridge {
	return &Bridge{logger: log}
}

// SetEnabled turns span reporting on or off.
func (b *Bridge) SetEnabled(enable bool) {
	b.enabled.Store(enable)
}

// OnStart does nothing.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span's name, duration and attributes. Failed spans are warnings.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !b.enabled.Load() || b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "span %s %s", s.Name(), s.EndTime().Sub(s.StartTime()).Round(time.Microsecond))
	for _, attr := range s.Attributes() {
		fmt.Fprintf(&sb, " %s=%s", attr.Key, attr.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		if desc := s.Status().Description; desc != "" {
			sb.WriteString(": " + desc)
		}
		b.logger.Warn(sb.String())
		return
	}
	b.logger.Info(sb.String())
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}
