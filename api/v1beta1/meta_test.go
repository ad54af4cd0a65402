package v1beta1_test

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/skipgrid/api/v1beta1"
)

func TestTypeMeta(t *testing.T) {
	t.Parallel()

	tm := v1beta1.TypeMeta{APIVersion: v1beta1.APIVersion, Kind: "Layout"}

	assert.Equal(t, "skipgrid.jacobcolvin.com/v1beta1", tm.GetAPIVersion())
	assert.Equal(t, "Layout", tm.GetKind())
}

func TestExtendSchemaWithEnums(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		apiVersions []string
		kinds       []string
	}{
		"single": {
			apiVersions: []string{"v1"},
			kinds:       []string{"Layout"},
		},
		"multiple": {
			apiVersions: []string{"v1", "v1beta1"},
			kinds:       []string{"Layout", "Other", "Third"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
			jss.Properties.Set("apiVersion", &jsonschema.Schema{Type: "string"})
			jss.Properties.Set("kind", &jsonschema.Schema{Type: "string"})

			v1beta1.ExtendSchemaWithEnums(jss, tc.apiVersions, tc.kinds)

			apiVersion, ok := jss.Properties.Get("apiVersion")
			require.True(t, ok)
			require.Len(t, apiVersion.OneOf, len(tc.apiVersions))

			for i, v := range tc.apiVersions {
				assert.Equal(t, v, apiVersion.OneOf[i].Const)
			}

			kind, ok := jss.Properties.Get("kind")
			require.True(t, ok)
			assert.Len(t, kind.OneOf, len(tc.kinds))
		})
	}
}

func TestExtendSchemaWithEnums_MissingProperty(t *testing.T) {
	t.Parallel()

	jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}

	assert.PanicsWithValue(t, "apiVersion property not found in schema", func() {
		v1beta1.ExtendSchemaWithEnums(jss, []string{"v1"}, []string{"Layout"})
	})
}
