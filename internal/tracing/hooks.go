package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/apkgraph/pkg/observability"
)

// Hooks records observability events as spans: one span per build and per
// index fetch, with lookup failures as span events.
type Hooks struct {
	tracer trace.Tracer
}

var (
	_ observability.BuildHooks  = (*Hooks)(nil)
	_ observability.SourceHooks = (*Hooks)(nil)
)

// NewHooks returns hooks that start spans on tracer.
func NewHooks(tracer trace.Tracer) *Hooks {
	return &Hooks{tracer: tracer}
}

// Register installs h as the global build and source hooks.
func (h *Hooks) Register() {
	observability.SetBuildHooks(h)
	observability.SetSourceHooks(h)
}

func (h *Hooks) OnBuildStart(ctx context.Context, root string) context.Context {
	ctx, _ = h.tracer.Start(ctx, "deps.build",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("apkgraph.root", root)),
	)
	return ctx
}

func (h *Hooks) OnLookupFailure(ctx context.Context, name string, err error) {
	trace.SpanFromContext(ctx).AddEvent("lookup.failed", trace.WithAttributes(
		attribute.String("apkgraph.package", name),
		attribute.String("error", err.Error()),
	))
}

func (h *Hooks) OnBuildComplete(ctx context.Context, _ string, nodes, failures int, duration time.Duration) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int("apkgraph.nodes", nodes),
		attribute.Int("apkgraph.failures", failures),
		attribute.Int64("apkgraph.duration_ms", duration.Milliseconds()),
	)
	span.End()
}

func (h *Hooks) OnFetchStart(ctx context.Context, location string) context.Context {
	ctx, _ = h.tracer.Start(ctx, "source.load",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("apkgraph.repo", location)),
	)
	return ctx
}

func (h *Hooks) OnFetchComplete(ctx context.Context, _ string, packages int, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int("apkgraph.packages", packages),
		attribute.Int64("apkgraph.duration_ms", duration.Milliseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
