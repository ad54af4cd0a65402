// Package mcp serves layout computation tools over the Model Context
// Protocol.
package mcp

import (
	"errors"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

const (
	name         = "skipgrid"
	instructions = `MCP Server 'skipgrid' computes grid layouts: the frame of every item in a wrapping, vertically scrolling grid with optional header and footer regions, where selected "skip" slots are left vacant.

When to use these tools:
- Checking where items land for a given container width, item size, spacing and insets
- Previewing how a drag-reorder gap (skip slots) shifts later items
- Hit-testing which items, header or footer intersect a rectangle

Workflow:
1. Use 'compute_layout' to get the full snapshot. Omit 'layout' to use the server's current layout document.
2. Use 'attributes_in_rect' with the same inputs to query a region of the computed snapshot.

All coordinates are in points, with the origin at the top left of the content.
`
)

// ErrInvalidArgument is returned for tool arguments that cannot be used.
var ErrInvalidArgument = errors.New("invalid argument")

func layoutInputProperties() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"layout": {
			Type:        "string",
			Description: "A complete Layout YAML document (apiVersion skipgrid.jacobcolvin.com/v1beta1, kind Layout). Omit to use the server's current layout.",
		},
		"skip": {
			Type:        "array",
			Description: "Slot indices to leave vacant, replacing the layout's skip set. An empty list clears it.",
			Items:       &jsonschema.Schema{Type: "integer"},
		},
		"policy": {
			Type:        "string",
			Description: "Skip policy: 'omit' (items at skip indices get no frame) or 'displace' (every item keeps a frame).",
			Enum:        []any{"omit", "displace"},
		},
		"count": {
			Type:        "integer",
			Description: "Number of items, replacing the layout's item count.",
		},
	}
}
