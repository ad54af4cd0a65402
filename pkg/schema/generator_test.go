package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/skipgrid/pkg/schema"
)

type inner struct {
	Value float64 `json:"value" jsonschema:"minimum=0"`
}

type document struct {
	Inner *inner `json:"inner,omitempty"`
	Name  string `json:"name"            jsonschema:"required"`
	Count int    `json:"count"`
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	data, err := schema.NewGenerator(&document{}).Generate()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "object", got["type"])
	assert.Equal(t, []any{"name"}, got["required"])
	assert.Equal(t, false, got["additionalProperties"])

	props, ok := got["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "inner")
	assert.Contains(t, props, "count")

	innerSchema, ok := props["inner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", innerSchema["type"])
}
