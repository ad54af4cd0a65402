package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/version"
)

// Server implements the MCP server for skipgrid.
type Server struct {
	tracer  trace.Tracer
	server  *mcp.Server
	layout  *layouts.Layout
	address string
	mu      sync.RWMutex
}

// ServerOpt configures a [Server].
type ServerOpt func(*Server)

// WithLayout sets the layout used when a tool call does not supply one.
func WithLayout(l *layouts.Layout) ServerOpt {
	return func(s *Server) {
		s.layout = l
	}
}

// WithTracerProvider sets the tracer provider used for tool call spans.
func WithTracerProvider(tp trace.TracerProvider) ServerOpt {
	return func(s *Server) {
		s.tracer = tp.Tracer("mcp")
	}
}

// NewServer creates a new MCP server. An empty address serves over stdio.
func NewServer(address string, opts ...ServerOpt) (*Server, error) {
	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	s := &Server{
		address: address,
		server:  mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
		tracer:  otel.Tracer("mcp"),
		layout:  layouts.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.layout == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrInvalidArgument)
	}

	s.registerTools()

	return s, nil
}

// Layout returns the current default layout.
func (s *Server) Layout() *layouts.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.layout
}

// SetLayout replaces the default layout, for example after the layout file
// was reloaded.
func (s *Server) SetLayout(l *layouts.Layout) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.layout = l
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_layout",
		Description: "Compute the frame of every item, the header and footer frames, the vacant slots and the content size of a grid layout.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: layoutInputProperties(),
		},
		OutputSchema: &jsonschema.Schema{Type: "object"},
	}, WithTracing(s.tracer, s.handleComputeLayout))

	rectProps := layoutInputProperties()
	for _, p := range []string{"x", "y", "width", "height"} {
		rectProps[p] = &jsonschema.Schema{
			Type:        "number",
			Description: "The " + p + " of the query rectangle, in points.",
		}
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "attributes_in_rect",
		Description: "List the header, items and footer whose frames intersect a rectangle, in that order. Frames that only touch an edge do not intersect.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: rectProps,
			Required:   []string{"x", "y", "width", "height"},
		},
		OutputSchema: &jsonschema.Schema{Type: "object"},
	}, WithTracing(s.tracer, s.handleAttributesInRect))
}

func (s *Server) Server() *mcp.Server {
	return s.server
}

// Serve starts the MCP server.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(shutdownCtx) //nolint:contextcheck // Parent is already done.
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)

	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
