package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/grid"
)

// AttributesInRectParams defines parameters for the attributes_in_rect tool.
type AttributesInRectParams struct {
	ComputeLayoutParams

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the query rectangle.
func (p AttributesInRectParams) Rect() geom.Rect {
	return geom.NewRect(p.X, p.Y, p.Width, p.Height)
}

// AttributesInRectResult contains the attributes intersecting a rectangle.
type AttributesInRectResult struct {
	Message    string            `json:"message"`
	Attributes []grid.Attributes `json:"attributes"`
	Count      int               `json:"count"`
}

// AttributesInRect computes the layout described by p and returns the
// attributes intersecting its rectangle.
func AttributesInRect(ctx context.Context, base *layouts.Layout, p AttributesInRectParams) ([]grid.Attributes, error) {
	if p.Width < 0 || p.Height < 0 {
		return nil, fmt.Errorf("%w: negative rectangle size %s", ErrInvalidArgument, p.Rect().Size())
	}

	_, snap, err := compute(ctx, base, p.ComputeLayoutParams)
	if err != nil {
		return nil, err
	}

	attrs := snap.Intersecting(p.Rect())
	if attrs == nil {
		attrs = []grid.Attributes{}
	}

	return attrs, nil
}

func (s *Server) handleAttributesInRect(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[AttributesInRectParams],
) (*mcp.CallToolResultFor[AttributesInRectResult], error) {
	attrs, err := AttributesInRect(ctx, s.Layout(), params.Arguments)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Found %d regions intersecting %s.", len(attrs), params.Arguments.Rect())

	return &mcp.CallToolResultFor[AttributesInRectResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: AttributesInRectResult{
			Message:    msg,
			Attributes: attrs,
			Count:      len(attrs),
		},
	}, nil
}
