package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/skipgrid/api/v1beta1"
	"github.com/macropower/skipgrid/pkg/config"
	"github.com/macropower/skipgrid/pkg/yaml"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"apiVersion": {"type": "string"},
		"kind": {"const": "Widget"},
		"size": {"type": "integer", "minimum": 1}
	},
	"additionalProperties": false
}`

type widget struct {
	v1beta1.TypeMeta `json:",inline"`

	Size *int `json:"size,omitempty"`
}

func newWidget() *widget { return &widget{} }

func (w *widget) EnsureDefaults() {
	if w.Size == nil {
		size := 3
		w.Size = &size
	}
}

func (w *widget) Validate() error {
	if *w.Size > 10 {
		return errors.New("size too large")
	}

	return nil
}

func TestLoader(t *testing.T) {
	t.Parallel()

	validator := yaml.MustNewValidator("/widget.json", []byte(testSchema))

	tcs := map[string]struct {
		input    string
		wantSize int
		wantErr  string
		wantPath string
	}{
		"defaults": {
			input:    "kind: Widget\n",
			wantSize: 3,
		},
		"explicit": {
			input:    "kind: Widget\nsize: 7\n",
			wantSize: 7,
		},
		"schema violation": {
			input:    "kind: Widget\nsize: 0\n",
			wantErr:  "$.size",
			wantPath: "$.size",
		},
		"unknown field": {
			input:   "kind: Widget\ncolor: red\n",
			wantErr: "color",
		},
		"semantic violation": {
			input:   "kind: Widget\nsize: 11\n",
			wantErr: "validate Widget: size too large",
		},
		"syntax error": {
			input:   "kind: [Widget\n",
			wantErr: "kind",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			loader := config.NewLoaderFromBytes([]byte(tc.input), newWidget, validator)

			got, err := loader.ValidateAndLoad()
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)

				if tc.wantPath != "" {
					var yamlErr *yaml.Error
					require.ErrorAs(t, err, &yamlErr)
					assert.Equal(t, tc.wantPath, yamlErr.Path.String())
					assert.Equal(t, []byte(tc.input), yamlErr.Source)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantSize, *got.Size)
			assert.Equal(t, "Widget", got.GetKind())
		})
	}
}

func TestLoader_WithValidator(t *testing.T) {
	t.Parallel()

	loader := config.NewLoaderFromBytes([]byte("kind: Widget\nanything: true\n"), newWidget, nil)
	require.NoError(t, loader.Validate())

	strict := yaml.MustNewValidator("/widget.json", []byte(testSchema))
	loader = config.NewLoaderFromBytes([]byte("kind: Widget\nanything: true\n"), newWidget, nil,
		config.WithValidator(strict),
		config.WithColor(true),
	)

	err := loader.Validate()
	require.Error(t, err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.True(t, yamlErr.Colored)
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "widget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: Widget\nsize: 2\n"), 0o600))

	loader, err := config.NewLoaderFromFile(path, newWidget, nil)
	require.NoError(t, err)

	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, *got.Size)

	_, err = config.NewLoaderFromFile(dir, newWidget, nil)
	require.Error(t, err)

	_, err = config.NewLoaderFromFile(filepath.Join(dir, "missing.yaml"), newWidget, nil)
	require.Error(t, err)
}
