// Package watch reloads a layout document whenever its file changes.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over the original keep triggering
// reloads.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/log"
)

var ErrClosed = errors.New("watcher closed")

// LoadFunc reads the layout at path.
type LoadFunc func(path string) (*layouts.Layout, error)

// Event is sent to subscribers.
type Event interface {
	GetContext() context.Context
}

// EventStart indicates that a reload has started.
type EventStart struct {
	ctx  context.Context //nolint:containedctx // Carried for tracing.
	Path string
}

func (e EventStart) GetContext() context.Context { return e.ctx }

// EventEnd carries the result of a reload. Exactly one of Layout and Err is
// set.
type EventEnd struct {
	ctx       context.Context //nolint:containedctx // Carried for tracing.
	Timestamp time.Time
	Err       error
	Layout    *layouts.Layout
	Path      string
}

func (e EventEnd) GetContext() context.Context { return e.ctx }

// Watcher reloads a layout file on change and broadcasts the result.
type Watcher struct {
	tracer    trace.Tracer
	watcher   *fsnotify.Watcher
	load      LoadFunc
	path      string
	listeners []chan<- Event
	mu        sync.Mutex
}

// WatcherOpt configures a [Watcher].
type WatcherOpt func(*Watcher)

// WithLoader replaces the function used to read the layout.
func WithLoader(fn LoadFunc) WatcherOpt {
	return func(w *Watcher) {
		w.load = fn
	}
}

// WithTracerProvider sets the tracer provider used for reload spans.
func WithTracerProvider(tp trace.TracerProvider) WatcherOpt {
	return func(w *Watcher) {
		w.tracer = tp.Tracer("layout-watcher")
	}
}

// New creates a [Watcher] for the layout at path.
func New(path string, opts ...WatcherOpt) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		tracer:  otel.Tracer("layout-watcher"),
		watcher: fw,
		path:    abs,
		load: func(p string) (*layouts.Layout, error) {
			return layouts.Load(p)
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	err = fw.Add(filepath.Dir(abs))
	if err != nil {
		_ = fw.Close()

		return nil, fmt.Errorf("add path to watcher: %w", err)
	}

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Subscribe registers ch to receive every [Event]. Sends block, so ch should
// be buffered or drained continuously.
func (w *Watcher) Subscribe(ch chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.listeners = append(w.listeners, ch)
}

// Reload reads the layout now and broadcasts the result.
func (w *Watcher) Reload(ctx context.Context) EventEnd {
	ctx, span := w.tracer.Start(ctx, "reload", trace.WithAttributes(
		attribute.String("path", w.path),
	))
	defer span.End()

	w.broadcast(EventStart{ctx: ctx, Path: w.path})

	end := EventEnd{ctx: ctx, Path: w.path}

	l, err := w.load(w.path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reload failed")

		log.WithContext(ctx).ErrorContext(ctx, "reload layout",
			slog.String("path", w.path),
			slog.Any("err", err),
		)

		end.Err = err
	} else {
		end.Layout = l
	}

	end.Timestamp = time.Now()
	w.broadcast(end)

	return end
}

// Run reloads the layout on each change until ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return ErrClosed
			}

			if filepath.Clean(evt.Name) != w.path {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) || evt.Has(fsnotify.Remove) {
				continue
			}

			log.WithContext(ctx).DebugContext(ctx, "layout changed",
				slog.String("event", evt.String()),
			)

			w.Reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrClosed
			}

			w.broadcast(EventEnd{
				ctx:       ctx,
				Path:      w.path,
				Err:       fmt.Errorf("watch: %w", err),
				Timestamp: time.Now(),
			})
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}

func (w *Watcher) broadcast(evt Event) {
	w.mu.Lock()
	listeners := w.listeners
	w.mu.Unlock()

	for _, ch := range listeners {
		ch <- evt
	}
}
