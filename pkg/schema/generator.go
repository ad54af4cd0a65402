package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator reflects a JSON schema from a Go value.
//
// Fields are optional unless tagged `jsonschema:"required"`, and unknown
// properties are rejected.
type Generator struct {
	reflector *jsonschema.Reflector
	value     any
	comments  [][2]string
}

// GeneratorOpt configures a [Generator].
type GeneratorOpt func(*Generator)

// WithComments adds descriptions from the Go doc comments of the package at
// dir, which must be importable as base. Source files are read when the
// schema is generated, so this is only useful at build time.
func WithComments(base, dir string) GeneratorOpt {
	return func(g *Generator) {
		g.comments = append(g.comments, [2]string{base, dir})
	}
}

// NewGenerator creates a [Generator] for the type of v.
func NewGenerator(v any, opts ...GeneratorOpt) *Generator {
	g := &Generator{
		value: v,
		reflector: &jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			DoNotReference:             true,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Reflect returns the schema.
func (g *Generator) Reflect() (*jsonschema.Schema, error) {
	for _, c := range g.comments {
		if err := g.reflector.AddGoComments(c[0], c[1]); err != nil {
			return nil, fmt.Errorf("add go comments from %s: %w", c[1], err)
		}
	}

	return g.reflector.Reflect(g.value), nil
}

// Generate returns the indented JSON encoding of the schema.
func (g *Generator) Generate() ([]byte, error) {
	jss, err := g.Reflect()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}
