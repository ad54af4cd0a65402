// Package layouts provides the Layout document type, which describes a grid
// to compute: the container, items, spacing, supplementary regions, skip
// slots and preview settings.
package layouts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/skipgrid/api"
	"github.com/macropower/skipgrid/api/v1beta1"
	"github.com/macropower/skipgrid/pkg/expr"
	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/schema"
	"github.com/macropower/skipgrid/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -o layouts.v1beta1.json

const Kind = "Layout"

var (
	//go:embed layout.yaml
	defaultLayoutYAML []byte

	// FileNames contains the names searched for by [Find].
	FileNames = []string{
		".skipgrid.yaml",
		"skipgrid.yaml",
	}

	// ValidKinds contains the valid kind values for layout documents.
	ValidKinds = []string{Kind}

	ErrInvalidLayout = errors.New("invalid layout")

	exprEnv = sync.OnceValues(func() (*expr.Environment, error) {
		return expr.NewEnvironment()
	})

	// Compile-time interface checks.
	_ v1beta1.Object = (*Layout)(nil)
)

// Layout describes a grid to compute.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Layout struct {
	v1beta1.TypeMeta `json:",inline"`

	// Container describes the scrollable container.
	Container *Container `json:"container,omitempty" jsonschema:"title=Container"`
	// Items describes the items being laid out.
	Items *Items `json:"items,omitempty" jsonschema:"title=Items"`
	// Spacing sets the gaps between rows and items.
	Spacing *Spacing `json:"spacing,omitempty" jsonschema:"title=Spacing"`
	// Inset sets the margins around the item block.
	Inset *geom.Insets `json:"inset,omitempty" jsonschema:"title=Section Inset"`
	// Header sets the header size. A zero height means no header.
	Header *geom.Size `json:"header,omitempty" jsonschema:"title=Header Size"`
	// Footer sets the footer size. A zero height means no footer.
	Footer *geom.Size `json:"footer,omitempty" jsonschema:"title=Footer Size"`
	// Skip selects the slots to leave vacant.
	Skip *Skip `json:"skip,omitempty" jsonschema:"title=Skip"`
	// UI configures the interactive preview.
	UI *UI `json:"ui,omitempty" jsonschema:"title=UI"`
}

type Container struct {
	// Width of the container, in points.
	Width float64 `json:"width" jsonschema:"title=Width,exclusiveMinimum=0"`
}

type Items struct {
	// Size of every item.
	Size *geom.Size `json:"size,omitempty" jsonschema:"title=Item Size"`
	// Labels shown for items, by index.
	Labels []string `json:"labels,omitempty" jsonschema:"title=Labels"`
	// Count is the number of items.
	Count int `json:"count" jsonschema:"title=Count,minimum=0"`
}

type Spacing struct {
	// Line is the vertical gap between rows.
	Line float64 `json:"line" jsonschema:"title=Line Spacing,minimum=0"`
	// Interitem is the minimum horizontal gap between items.
	Interitem float64 `json:"interitem" jsonschema:"title=Interitem Spacing,minimum=0"`
}

type Skip struct {
	// Expr is a CEL expression selecting additional slots.
	Expr string `json:"expr,omitempty" jsonschema:"title=Expression"`
	// Policy controls what happens to skipped items.
	Policy grid.SkipPolicy `json:"policy,omitempty" jsonschema:"title=Policy,enum=omit,enum=displace"`
	// Indices of slots to leave vacant.
	Indices []int `json:"indices,omitempty" jsonschema:"title=Indices"`
}

type UI struct {
	// Theme is a chroma style name, or "auto".
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
	// CellWidth is the number of points per terminal column.
	CellWidth float64 `json:"cellWidth,omitempty" jsonschema:"title=Cell Width,exclusiveMinimum=0"`
	// CellHeight is the number of points per terminal row.
	CellHeight float64 `json:"cellHeight,omitempty" jsonschema:"title=Cell Height,exclusiveMinimum=0"`
}

// New creates a new [Layout] with default values.
func New() *Layout {
	l := &Layout{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	l.EnsureDefaults()

	return l
}

// Empty returns a [Layout] with no fields set, for decoding into.
func Empty() *Layout {
	return &Layout{}
}

// EnsureDefaults initializes nil fields to their default values.
func (l *Layout) EnsureDefaults() {
	d := grid.DefaultConfiguration()

	if l.Container == nil {
		l.Container = &Container{Width: d.ContainerWidth}
	}
	if l.Items == nil {
		l.Items = &Items{Count: 9}
	}
	if l.Items.Size == nil {
		l.Items.Size = &d.ItemSize
	}
	if l.Spacing == nil {
		l.Spacing = &Spacing{Line: d.MinimumLineSpacing, Interitem: d.MinimumInteritemSpacing}
	}
	if l.Inset == nil {
		l.Inset = &d.SectionInset
	}
	if l.Header == nil {
		l.Header = &d.HeaderSize
	}
	if l.Footer == nil {
		l.Footer = &d.FooterSize
	}
	if l.Skip == nil {
		l.Skip = &Skip{Indices: []int{5}}
	}
	if l.Skip.Policy == "" {
		l.Skip.Policy = grid.SkipOmit
	}
	if l.UI == nil {
		l.UI = &UI{}
	}
	if l.UI.Theme == "" {
		l.UI.Theme = "auto"
	}
	if l.UI.CellWidth == 0 {
		l.UI.CellWidth = 8
	}
	if l.UI.CellHeight == 0 {
		l.UI.CellHeight = 16
	}
}

// Configuration returns the engine configuration described by the layout.
func (l *Layout) Configuration() grid.Configuration {
	return grid.Configuration{
		ContainerWidth:          l.Container.Width,
		ItemSize:                *l.Items.Size,
		SectionInset:            *l.Inset,
		MinimumLineSpacing:      l.Spacing.Line,
		MinimumInteritemSpacing: l.Spacing.Interitem,
		HeaderSize:              *l.Header,
		FooterSize:              *l.Footer,
	}
}

// Host returns a static host for the layout's item count and width.
func (l *Layout) Host() grid.StaticHost {
	return grid.StaticHost{Count: l.Items.Count, Width: l.Container.Width}
}

// Label returns the label of the item at index.
func (l *Layout) Label(index int) string {
	if index >= 0 && index < len(l.Items.Labels) && l.Items.Labels[index] != "" {
		return l.Items.Labels[index]
	}

	return strconv.Itoa(index)
}

// Validate checks the layout for semantic errors the schema cannot express.
func (l *Layout) Validate() error {
	cfg := l.Configuration()

	if _, err := grid.RowCapacity(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	if l.Items.Count < 0 {
		return fmt.Errorf("%w: item count %d is negative", ErrInvalidLayout, l.Items.Count)
	}

	if _, err := grid.ParseSkipPolicy(string(l.Skip.Policy)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	if l.Skip.Expr != "" {
		env, err := exprEnv()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}

		if _, err := env.NewSelector(l.Skip.Expr); err != nil {
			return fmt.Errorf("%w: skip expression: %w", ErrInvalidLayout, err)
		}
	}

	return nil
}

// SkipSet returns the union of the listed skip indices and the indices
// selected by the skip expression.
func (l *Layout) SkipSet(ctx context.Context) (grid.SkipSet, error) {
	indices := append([]int(nil), l.Skip.Indices...)

	if l.Skip.Expr != "" {
		columns, err := grid.RowCapacity(l.Configuration())
		if err != nil {
			return grid.SkipSet{}, fmt.Errorf("evaluate skip expression: %w", err)
		}

		env, err := exprEnv()
		if err != nil {
			return grid.SkipSet{}, err
		}

		sel, err := env.NewSelector(l.Skip.Expr)
		if err != nil {
			return grid.SkipSet{}, fmt.Errorf("skip expression: %w", err)
		}

		labels := make([]string, l.Items.Count)
		for i := range labels {
			labels[i] = l.Label(i)
		}

		selected, err := sel.Select(ctx, l.Items.Count, columns, labels)
		if err != nil {
			return grid.SkipSet{}, fmt.Errorf("skip expression: %w", err)
		}

		indices = append(indices, selected...)
	}

	return grid.NewSkipSet(indices...), nil
}

// NewEngine creates an engine for host configured from the layout.
func (l *Layout) NewEngine(ctx context.Context, host grid.Host, opts ...grid.EngineOpt) (*grid.Engine, error) {
	skip, err := l.SkipSet(ctx)
	if err != nil {
		return nil, err
	}

	opts = append([]grid.EngineOpt{
		grid.WithDefaults(l.Configuration()),
		grid.WithSkipSet(skip),
		grid.WithSkipPolicy(l.Skip.Policy),
	}, opts...)

	return grid.NewEngine(host, opts...), nil
}

// Compute runs a single layout pass for the layout's own item count and
// width.
func (l *Layout) Compute(ctx context.Context, opts ...grid.EngineOpt) (*grid.Snapshot, error) {
	e, err := l.NewEngine(ctx, l.Host(), opts...)
	if err != nil {
		return nil, err
	}

	return e.Recompute(ctx)
}

func (l Layout) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the layout to YAML.
func (l Layout) MarshalYAML() ([]byte, error) {
	type alias Layout

	b, err := api.MarshalYAML(alias(l))
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}

	return b, nil
}

// DefaultYAML returns the commented default layout document.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultLayoutYAML...)
}

// WriteDefault writes the default layout document to path. An existing file
// is only replaced (after a backup) when force is set.
func WriteDefault(path string, force bool) (bool, error) {
	return Write(path, defaultLayoutYAML, force)
}

// Write writes layout data to path. An existing file is only replaced
// (after a backup) when force is set.
func Write(path string, data []byte, force bool) (bool, error) {
	wrote, err := api.WriteFile(path, data, force)
	if err != nil {
		return false, fmt.Errorf("write layout: %w", err)
	}

	return wrote, nil
}

// GetPath returns the path of the user's default layout file.
func GetPath() string {
	return api.GetConfigPath("layout.yaml")
}

// Find searches for a layout file starting from targetPath and walking up
// to the filesystem root. It returns "" if none is found.
func Find(targetPath string) (string, error) {
	path, err := api.FindFile(targetPath, FileNames)
	if err != nil {
		return "", fmt.Errorf("find layout file: %w", err)
	}

	return path, nil
}

// Schema reflects the JSON schema of the [Layout] type.
func Schema() ([]byte, error) {
	return schema.NewGenerator(&Layout{}).Generate()
}

// DefaultValidator returns the validator for layout documents, compiling it
// on first use.
func DefaultValidator() (*yaml.Validator, error) {
	return defaultValidator()
}

var defaultValidator = sync.OnceValues(func() (*yaml.Validator, error) {
	data, err := Schema()
	if err != nil {
		return nil, err
	}

	v, err := yaml.NewValidator("/layouts.v1beta1.json", data)
	if err != nil {
		return nil, fmt.Errorf("layout schema: %w", err)
	}

	return v, nil
})
