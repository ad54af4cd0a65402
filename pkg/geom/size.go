package geom

import "fmt"

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"  jsonschema:"title=Width,minimum=0"`
	Height float64 `json:"height" jsonschema:"title=Height,minimum=0"`
}

// NewSize creates a new [Size].
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// IsZero returns true if both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Point is a position in the content coordinate space.
type Point struct {
	X, Y float64
}

// Insets represents values for the four sides of a section.
type Insets struct {
	Top    float64 `json:"top"    jsonschema:"title=Top"`
	Left   float64 `json:"left"   jsonschema:"title=Left"`
	Bottom float64 `json:"bottom" jsonschema:"title=Bottom"`
	Right  float64 `json:"right"  jsonschema:"title=Right"`
}

// InsetAll creates Insets with the same value on all sides.
func InsetAll(n float64) Insets {
	return Insets{Top: n, Left: n, Bottom: n, Right: n}
}

// InsetSymmetric creates Insets with vertical (top/bottom) and horizontal
// (left/right) values.
func InsetSymmetric(v, h float64) Insets {
	return Insets{Top: v, Left: h, Bottom: v, Right: h}
}

// Horizontal returns the sum of Left and Right.
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Vertical returns the sum of Top and Bottom.
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}
