package layouts_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/yaml"
)

func TestNew(t *testing.T) {
	t.Parallel()

	l := layouts.New()

	assert.Equal(t, "skipgrid.jacobcolvin.com/v1beta1", l.GetAPIVersion())
	assert.Equal(t, "Layout", l.GetKind())
	assert.Equal(t, grid.DefaultConfiguration(), l.Configuration())
	assert.Equal(t, grid.StaticHost{Count: 9, Width: 375}, l.Host())
	assert.Equal(t, []int{5}, l.Skip.Indices)
	assert.Equal(t, grid.SkipOmit, l.Skip.Policy)
	assert.Equal(t, "auto", l.UI.Theme)
	require.NoError(t, l.Validate())
}

func TestDefaultYAMLMatchesNew(t *testing.T) {
	t.Parallel()

	l, err := layouts.Parse(layouts.DefaultYAML())
	require.NoError(t, err)

	want := layouts.New()

	assert.Equal(t, want.Configuration(), l.Configuration())
	assert.Equal(t, want.Skip, l.Skip)
	assert.Equal(t, want.UI, l.UI)
	assert.Equal(t, want.TypeMeta, l.TypeMeta)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check   func(t *testing.T, l *layouts.Layout)
		input   string
		wantErr string
	}{
		"minimal": {
			input: "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Layout\n",
			check: func(t *testing.T, l *layouts.Layout) {
				t.Helper()
				assert.Equal(t, grid.DefaultConfiguration(), l.Configuration())
			},
		},
		"overrides": {
			input: `apiVersion: skipgrid.jacobcolvin.com/v1beta1
kind: Layout
container: {width: 260}
items: {count: 4}
header: {width: 260, height: 0}
skip: {indices: [1, 2], policy: displace}
`,
			check: func(t *testing.T, l *layouts.Layout) {
				t.Helper()
				assert.InDelta(t, 260.0, l.Container.Width, 0)
				assert.Equal(t, geom.NewSize(60, 60), *l.Items.Size)
				assert.False(t, l.Configuration().HasHeader())
				assert.Equal(t, grid.SkipDisplace, l.Skip.Policy)
			},
		},
		"wrong kind": {
			input:   "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Config\n",
			wantErr: "$.kind",
		},
		"unknown field": {
			input:   "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Layout\nbogus: 1\n",
			wantErr: "bogus",
		},
		"negative count": {
			input:   "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Layout\nitems: {count: -2}\n",
			wantErr: "$.items.count",
		},
		"bad policy": {
			input:   "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Layout\nskip: {policy: hide}\n",
			wantErr: "$.skip.policy",
		},
		"too narrow": {
			input:   "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Layout\ncontainer: {width: 50}\n",
			wantErr: "row capacity",
		},
		"bad expression": {
			input:   "apiVersion: skipgrid.jacobcolvin.com/v1beta1\nkind: Layout\nskip: {expr: 'index +'}\n",
			wantErr: "skip expression",
		},
		"not yaml": {
			input:   "apiVersion: [\n",
			wantErr: "apiVersion",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l, err := layouts.Parse([]byte(tc.input))
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			tc.check(t, l)
		})
	}
}

func TestLayout_SkipSet(t *testing.T) {
	t.Parallel()

	l := layouts.New()
	l.Skip.Expr = "col == columns - 1"

	// Default width fits four columns.
	got, err := l.SkipSet(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 7}, got.Indices())

	l.Items.Labels = []string{"a", "tmp"}
	l.Skip.Expr = `label.startsWith("tmp") || label == "8"`
	l.Skip.Indices = nil

	got, err = l.SkipSet(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 8}, got.Indices())
}

func TestLayout_Compute(t *testing.T) {
	t.Parallel()

	l := layouts.New()
	l.Container.Width = 260

	snap, err := l.Compute(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Capacity)
	assert.Len(t, snap.Items, 8)

	item8, ok := snap.Item(8)
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(20, 280, 60, 60), item8.Frame)
}

func TestLayout_Label(t *testing.T) {
	t.Parallel()

	l := layouts.New()
	l.Items.Labels = []string{"zero", ""}

	assert.Equal(t, "zero", l.Label(0))
	assert.Equal(t, "1", l.Label(1))
	assert.Equal(t, "7", l.Label(7))
	assert.Equal(t, "-1", l.Label(-1))
}

func TestLayout_MarshalYAML(t *testing.T) {
	t.Parallel()

	data, err := layouts.New().MarshalYAML()
	require.NoError(t, err)

	l, err := layouts.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, layouts.New().Configuration(), l.Configuration())
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := layouts.Schema()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	props, ok := got["properties"].(map[string]any)
	require.True(t, ok)

	for _, key := range []string{"apiVersion", "kind", "container", "items", "spacing", "inset", "header", "footer", "skip", "ui"} {
		assert.Contains(t, props, key)
	}
}

func TestWriteDefaultAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "layout.yaml")

	wrote, err := layouts.WriteDefault(path, false)
	require.NoError(t, err)
	assert.True(t, wrote)

	l, err := layouts.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, l.Items.Count)

	require.NoError(t, os.WriteFile(path, []byte("kind: Layout\nitems: {count: nine}\n"), 0o600))

	_, err = layouts.Load(path)
	require.Error(t, err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.NotNil(t, yamlErr.Source)

	_, err = layouts.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "skipgrid.yaml")
	require.NoError(t, os.WriteFile(path, layouts.DefaultYAML(), 0o600))

	got, err := layouts.Find(dir)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
