package watch_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/watch"
)

func writeLayout(t *testing.T, path string, count string) {
	t.Helper()

	data := bytes.Replace(layouts.DefaultYAML(), []byte("count: 9"), []byte("count: "+count), 1)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestWatcher_Reload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeLayout(t, path, "4")

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	w, err := watch.New(path, watch.WithTracerProvider(tp))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	events := make(chan watch.Event, 2)
	w.Subscribe(events)

	end := w.Reload(t.Context())
	require.NoError(t, end.Err)
	require.NotNil(t, end.Layout)
	assert.Equal(t, 4, end.Layout.Items.Count)
	assert.Equal(t, w.Path(), end.Path)

	start, ok := (<-events).(watch.EventStart)
	require.True(t, ok)
	assert.Equal(t, path, start.Path)

	_, ok = (<-events).(watch.EventEnd)
	require.True(t, ok)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "reload", spans[0].Name())
}

func TestWatcher_ReloadError(t *testing.T) {
	t.Parallel()

	errLoad := errors.New("boom")

	w, err := watch.New(filepath.Join(t.TempDir(), "layout.yaml"),
		watch.WithLoader(func(string) (*layouts.Layout, error) { return nil, errLoad }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	end := w.Reload(t.Context())
	require.ErrorIs(t, end.Err, errLoad)
	assert.Nil(t, end.Layout)
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeLayout(t, path, "9")

	w, err := watch.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	events := make(chan watch.Event, 64)
	w.Subscribe(events)

	done := make(chan error, 1)
	go func() { done <- w.Run(t.Context()) }()

	writeLayout(t, path, "12")

	// Writes may surface as several events; wait for a clean reload.
	timeout := time.After(10 * time.Second)

	for {
		select {
		case evt := <-events:
			end, ok := evt.(watch.EventEnd)
			if !ok || end.Err != nil {
				continue
			}

			assert.Equal(t, 12, end.Layout.Items.Count)

			return

		case err := <-done:
			require.FailNow(t, "watcher stopped", "%v", err)

		case <-timeout:
			require.FailNow(t, "timed out waiting for reload")
		}
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := watch.New(filepath.Join(t.TempDir(), "missing", "layout.yaml"))
	require.Error(t, err)
}
