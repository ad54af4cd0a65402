package grid

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/log"
)

// Engine computes and caches the layout of a [Host]'s items.
//
// An Engine is not safe for concurrent use. Mutations and queries are
// expected to happen on the host's layout loop.
type Engine struct {
	host       Host
	tracer     trace.Tracer
	snapshot   *Snapshot
	skip       SkipSet
	policy     SkipPolicy
	defaults   Configuration
	generation uint64
}

// EngineOpt configures an [Engine].
type EngineOpt func(*Engine)

// WithDefaults sets the configuration used where the host has no override.
// The container width always comes from the host.
func WithDefaults(cfg Configuration) EngineOpt {
	return func(e *Engine) {
		e.defaults = cfg
	}
}

// WithSkipSet sets the initial skip set.
func WithSkipSet(s SkipSet) EngineOpt {
	return func(e *Engine) {
		e.skip = s
	}
}

// WithSkipPolicy sets the initial skip policy.
func WithSkipPolicy(p SkipPolicy) EngineOpt {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithTracerProvider sets the provider used to create recompute spans.
// By default the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) EngineOpt {
	return func(e *Engine) {
		e.tracer = tp.Tracer("grid")
	}
}

// NewEngine creates a new [Engine] for host. The engine starts with an empty
// snapshot; the first [Engine.Prepare] always recomputes.
func NewEngine(host Host, opts ...EngineOpt) *Engine {
	e := &Engine{
		host:       host,
		tracer:     otel.Tracer("grid"),
		snapshot:   &Snapshot{},
		defaults:   DefaultConfiguration(),
		policy:     SkipOmit,
		generation: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SetSkipSet replaces the skip set and marks the engine dirty.
func (e *Engine) SetSkipSet(s SkipSet) {
	e.skip = s
	e.generation++
}

// SkipSet returns the current skip set.
func (e *Engine) SkipSet() SkipSet {
	return e.skip
}

// SetSkipPolicy replaces the skip policy and marks the engine dirty.
func (e *Engine) SetSkipPolicy(p SkipPolicy) {
	e.policy = p
	e.generation++
}

// SkipPolicy returns the current skip policy.
func (e *Engine) SkipPolicy() SkipPolicy {
	return e.policy
}

// SetDefaults replaces the default configuration and marks the engine dirty.
func (e *Engine) SetDefaults(cfg Configuration) {
	e.defaults = cfg
	e.generation++
}

// Defaults returns the default configuration.
func (e *Engine) Defaults() Configuration {
	return e.defaults
}

// Invalidate forces the next [Engine.Prepare] to recompute.
func (e *Engine) Invalidate() {
	e.generation++
}

// Key returns the invalidation key for the current inputs.
func (e *Engine) Key() Key {
	k := Key{
		ItemCount:  e.host.ItemCount(),
		Generation: e.generation,
	}
	if v, ok := e.host.(Versioned); ok {
		k.HostGeneration = v.Generation()
	}

	return k
}

// NeedsRecompute reports whether the snapshot is stale.
func (e *Engine) NeedsRecompute() bool {
	return e.snapshot.Key != e.Key()
}

// Prepare recomputes the layout if the invalidation key changed since the
// last successful recompute.
func (e *Engine) Prepare(ctx context.Context) error {
	if !e.NeedsRecompute() {
		return nil
	}

	_, err := e.Recompute(ctx)

	return err
}

// Recompute unconditionally runs a layout pass and replaces the snapshot.
// On error the previous snapshot is kept.
func (e *Engine) Recompute(ctx context.Context) (*Snapshot, error) {
	key := e.Key()

	ctx, span := e.tracer.Start(ctx, "recompute", trace.WithAttributes(
		attribute.Int("item_count", key.ItemCount),
		attribute.Int("skip_count", e.skip.Len()),
		attribute.String("skip_policy", string(e.policy)),
	))
	defer span.End()

	logger := log.WithContext(ctx)

	cfg := resolveOverrides(e.host).apply(e.defaults, e.host.ContainerWidth())

	snap, err := Compute(cfg, key.ItemCount, e.skip, e.policy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.DebugContext(ctx, "recompute failed", slog.Any("err", err))

		return nil, fmt.Errorf("recompute layout: %w", err)
	}

	snap.Key = key
	e.snapshot = snap

	span.SetAttributes(attribute.Int("capacity", snap.Capacity))
	logger.DebugContext(ctx, "recomputed layout",
		slog.Int("items", len(snap.Items)),
		slog.Int("capacity", snap.Capacity),
		slog.Float64("spacing", snap.Spacing),
		slog.String("skip", e.skip.String()),
		slog.Float64("height", snap.ContentSize.Height),
	)

	return snap.Clone(), nil
}

// ShouldInvalidateForBoundsChange always returns true. Any change of the
// container bounds requires consumers to drop cached geometry and query
// again.
func (e *Engine) ShouldInvalidateForBoundsChange(geom.Rect) bool {
	return true
}

// Snapshot returns a copy of the current snapshot.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Clone()
}

// AttributesForItem returns the frame of the item at index, if placed.
func (e *Engine) AttributesForItem(index int) (Attributes, bool) {
	return e.snapshot.Item(index)
}

// AttributesForHeader returns the header frame, if present.
func (e *Engine) AttributesForHeader() (Attributes, bool) {
	if e.snapshot.Header == nil {
		return Attributes{}, false
	}

	return *e.snapshot.Header, true
}

// AttributesForFooter returns the footer frame, if present.
func (e *Engine) AttributesForFooter() (Attributes, bool) {
	if e.snapshot.Footer == nil {
		return Attributes{}, false
	}

	return *e.snapshot.Footer, true
}

// AttributesIntersecting returns every attribute whose frame overlaps rect.
func (e *Engine) AttributesIntersecting(rect geom.Rect) []Attributes {
	return e.snapshot.Intersecting(rect)
}

// ContentSize returns the total size of the laid out content.
func (e *Engine) ContentSize() geom.Size {
	return e.snapshot.ContentSize
}
