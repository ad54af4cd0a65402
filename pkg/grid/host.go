package grid

import "github.com/macropower/skipgrid/pkg/geom"

// Host owns the items being laid out.
type Host interface {
	// ItemCount returns the number of items in the section.
	ItemCount() int
	// ContainerWidth returns the width available to the grid.
	ContainerWidth() float64
}

// Optional capabilities. A host that implements one of these overrides the
// matching engine default. Each is queried once per recompute, for index 0
// and section 0 only.
type (
	// ItemSizer overrides the item size, asked for index 0 only.
	ItemSizer interface {
		SizeForItem(index int) geom.Size
	}
	// InsetProvider overrides the section inset.
	InsetProvider interface {
		InsetForSection(section int) geom.Insets
	}
	// LineSpacingProvider overrides the spacing between rows.
	LineSpacingProvider interface {
		LineSpacingForSection(section int) float64
	}
	// InteritemSpacingProvider overrides the minimum spacing between items in a row.
	InteritemSpacingProvider interface {
		InteritemSpacingForSection(section int) float64
	}
	// HeaderSizer overrides the header size. A zero height hides the header.
	HeaderSizer interface {
		HeaderSizeForSection(section int) geom.Size
	}
	// FooterSizer overrides the footer size. A zero height hides the footer.
	FooterSizer interface {
		FooterSizeForSection(section int) geom.Size
	}
)

// Versioned is implemented by hosts that track their own input changes.
// The host must increase the generation whenever its width or any override
// changes.
type Versioned interface {
	Generation() uint64
}

// StaticHost is a [Host] with a fixed item count and width.
type StaticHost struct {
	Count int
	Width float64
}

// ItemCount implements [Host].
func (h StaticHost) ItemCount() int { return h.Count }

// ContainerWidth implements [Host].
func (h StaticHost) ContainerWidth() float64 { return h.Width }

// overrides is the set of host capabilities, resolved once per recompute.
type overrides struct {
	itemSize    *geom.Size
	inset       *geom.Insets
	lineSpacing *float64
	interitem   *float64
	header      *geom.Size
	footer      *geom.Size
}

func resolveOverrides(h Host) overrides {
	var o overrides

	if c, ok := h.(ItemSizer); ok {
		o.itemSize = ptr(c.SizeForItem(0))
	}
	if c, ok := h.(InsetProvider); ok {
		o.inset = ptr(c.InsetForSection(0))
	}
	if c, ok := h.(LineSpacingProvider); ok {
		o.lineSpacing = ptr(c.LineSpacingForSection(0))
	}
	if c, ok := h.(InteritemSpacingProvider); ok {
		o.interitem = ptr(c.InteritemSpacingForSection(0))
	}
	if c, ok := h.(HeaderSizer); ok {
		o.header = ptr(c.HeaderSizeForSection(0))
	}
	if c, ok := h.(FooterSizer); ok {
		o.footer = ptr(c.FooterSizeForSection(0))
	}

	return o
}

// apply returns defaults with every present override applied and the
// container width taken from the host.
func (o overrides) apply(defaults Configuration, width float64) Configuration {
	cfg := defaults
	cfg.ContainerWidth = width

	if o.itemSize != nil {
		cfg.ItemSize = *o.itemSize
	}
	if o.inset != nil {
		cfg.SectionInset = *o.inset
	}
	if o.lineSpacing != nil {
		cfg.MinimumLineSpacing = *o.lineSpacing
	}
	if o.interitem != nil {
		cfg.MinimumInteritemSpacing = *o.interitem
	}
	if o.header != nil {
		cfg.HeaderSize = *o.header
	}
	if o.footer != nil {
		cfg.FooterSize = *o.footer
	}

	return cfg
}

func ptr[T any](v T) *T {
	return &v
}
