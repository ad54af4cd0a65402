package grid

import (
	"fmt"
	"math"

	"github.com/macropower/skipgrid/pkg/geom"
)

// Configuration holds the inputs of a single layout pass.
type Configuration struct {
	ItemSize                geom.Size
	SectionInset            geom.Insets
	HeaderSize              geom.Size
	FooterSize              geom.Size
	ContainerWidth          float64
	MinimumLineSpacing      float64
	MinimumInteritemSpacing float64
}

// DefaultConfiguration returns the configuration of the demo grid: 60x60
// items, 15pt line spacing, 20pt interitem spacing and horizontal insets,
// 15pt vertical insets, a 40pt header and a 30pt footer in a 375pt container.
func DefaultConfiguration() Configuration {
	return Configuration{
		ContainerWidth:          375,
		ItemSize:                geom.NewSize(60, 60),
		SectionInset:            geom.InsetSymmetric(15, 20),
		MinimumLineSpacing:      15,
		MinimumInteritemSpacing: 20,
		HeaderSize:              geom.NewSize(375, 40),
		FooterSize:              geom.NewSize(375, 30),
	}
}

// HasHeader reports whether the header is present.
func (c Configuration) HasHeader() bool {
	return c.HeaderSize.Height > 0
}

// HasFooter reports whether the footer is present.
func (c Configuration) HasFooter() bool {
	return c.FooterSize.Height > 0
}

// Validate returns an error wrapping [ErrNonFinite] if any input is NaN or
// infinite, or [ErrNegativeValue] if any input is below zero.
func (c Configuration) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"container width", c.ContainerWidth},
		{"item width", c.ItemSize.Width},
		{"item height", c.ItemSize.Height},
		{"inset top", c.SectionInset.Top},
		{"inset left", c.SectionInset.Left},
		{"inset bottom", c.SectionInset.Bottom},
		{"inset right", c.SectionInset.Right},
		{"line spacing", c.MinimumLineSpacing},
		{"interitem spacing", c.MinimumInteritemSpacing},
		{"header height", c.HeaderSize.Height},
		{"footer height", c.FooterSize.Height},
	}

	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrNonFinite, f.name, f.v)
		}

		if f.v < 0 {
			return fmt.Errorf("%w: %s is %v", ErrNegativeValue, f.name, f.v)
		}
	}

	return nil
}
