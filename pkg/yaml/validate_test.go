package yaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/skipgrid/pkg/yaml"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"count": {"type": "integer", "minimum": 0},
		"skip": {
			"type": "object",
			"properties": {
				"indices": {"type": "array", "items": {"type": "integer"}}
			}
		}
	},
	"required": ["count"]
}`

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		schema string
		errMsg string
	}{
		"valid schema":   {schema: testSchema},
		"empty schema":   {schema: `{}`},
		"invalid json":   {schema: `{"invalid": json}`, errMsg: "unmarshal schema"},
		"invalid schema": {schema: `{"type": "invalid_type"}`, errMsg: "compile schema"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := yaml.NewValidator("test.json", []byte(tc.schema))
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)
				assert.Nil(t, v)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, v)
		})
	}

	assert.Panics(t, func() {
		yaml.MustNewValidator("bad.json", []byte("{"))
	})
}

func TestValidator_ValidateBytes(t *testing.T) {
	t.Parallel()

	v := yaml.MustNewValidator("test.json", []byte(testSchema))

	tcs := map[string]struct {
		input    string
		wantPath string
	}{
		"valid": {
			input: "count: 9\nskip:\n  indices: [5]\n",
		},
		"missing required": {
			input:    "skip: {}\n",
			wantPath: "$",
		},
		"negative count": {
			input:    "count: -1\n",
			wantPath: "$.count",
		},
		"bad index": {
			input:    "count: 3\nskip:\n  indices: [1, two]\n",
			wantPath: "$.skip.indices[1]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v.ValidateBytes([]byte(tc.input))
			if tc.wantPath == "" {
				require.NoError(t, err)

				return
			}

			var yamlErr *yaml.Error
			require.True(t, errors.As(err, &yamlErr), "got %T", err)
			require.NotNil(t, yamlErr.Path)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
			assert.Equal(t, []byte(tc.input), yamlErr.Source)
		})
	}
}
