package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/report"
)

// ComputeLayoutParams defines parameters for the compute_layout tool.
type ComputeLayoutParams struct {
	Count  *int   `json:"count,omitempty"`
	Layout string `json:"layout,omitempty"`
	Policy string `json:"policy,omitempty"`
	Skip   []int  `json:"skip,omitempty"`
}

// ComputeLayoutResult contains the result of computing a layout.
type ComputeLayoutResult struct {
	Document *report.Document `json:"document"`
	Message  string           `json:"message"`
}

// ComputeLayout computes the snapshot described by p, falling back to base
// for anything p does not override.
func ComputeLayout(ctx context.Context, base *layouts.Layout, p ComputeLayoutParams) (*report.Document, error) {
	l, snap, err := compute(ctx, base, p)
	if err != nil {
		return nil, err
	}

	return report.NewDocument(snap, skipSetOf(ctx, l, p)).WithLabels(l.Items.Labels), nil
}

func (s *Server) handleComputeLayout(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[ComputeLayoutParams],
) (*mcp.CallToolResultFor[ComputeLayoutResult], error) {
	doc, err := ComputeLayout(ctx, s.Layout(), params.Arguments)
	if err != nil {
		return nil, err
	}

	snap := doc.Snapshot
	msg := fmt.Sprintf("Placed %d items in %d columns; content size is %s.",
		len(snap.Items), snap.Capacity, snap.ContentSize)

	return &mcp.CallToolResultFor[ComputeLayoutResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: ComputeLayoutResult{
			Document: doc,
			Message:  msg,
		},
	}, nil
}

// compute resolves the layout and engine options for p and runs one pass.
func compute(ctx context.Context, base *layouts.Layout, p ComputeLayoutParams) (*layouts.Layout, *grid.Snapshot, error) {
	l := base
	if p.Layout != "" {
		var err error

		l, err = layouts.Parse([]byte(p.Layout))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}

	host := l.Host()
	if p.Count != nil {
		if *p.Count < 0 {
			return nil, nil, fmt.Errorf("%w: count %d is negative", ErrInvalidArgument, *p.Count)
		}

		host.Count = *p.Count
	}

	var opts []grid.EngineOpt

	if p.Skip != nil {
		opts = append(opts, grid.WithSkipSet(grid.NewSkipSet(p.Skip...)))
	}

	if p.Policy != "" {
		policy, err := grid.ParseSkipPolicy(p.Policy)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		opts = append(opts, grid.WithSkipPolicy(policy))
	}

	e, err := l.NewEngine(ctx, host, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}

	snap, err := e.Recompute(ctx)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // Already wrapped by the engine.
	}

	return l, snap, nil
}

func skipSetOf(ctx context.Context, l *layouts.Layout, p ComputeLayoutParams) grid.SkipSet {
	if p.Skip != nil {
		return grid.NewSkipSet(p.Skip...)
	}

	// The engine was built from the same set, so this cannot fail here.
	s, err := l.SkipSet(ctx)
	if err != nil {
		return grid.SkipSet{}
	}

	return s
}
