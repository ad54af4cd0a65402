package render

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/ui/theme"
)

const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Overlay is a box drawn above the grid, such as an item being dragged.
type Overlay struct {
	Label string
	Frame geom.Rect
}

// Renderer draws snapshots onto a [Canvas].
type Renderer struct {
	theme      *theme.Theme
	overlay    *Overlay
	labels     []string
	cellWidth  float64
	cellHeight float64
	selected   int
	vacancies  bool
}

// RendererOpt configures a [Renderer].
type RendererOpt func(*Renderer)

// WithTheme styles each region with colors from t. Without a theme the
// output is plain text.
func WithTheme(t *theme.Theme) RendererOpt {
	return func(r *Renderer) {
		r.theme = t
	}
}

// WithCellSize sets how many points one terminal cell covers. Non-positive
// values keep the defaults.
func WithCellSize(width, height float64) RendererOpt {
	return func(r *Renderer) {
		if width > 0 {
			r.cellWidth = width
		}

		if height > 0 {
			r.cellHeight = height
		}
	}
}

// WithLabels sets item labels by index. Items without a label show their
// index.
func WithLabels(labels []string) RendererOpt {
	return func(r *Renderer) {
		r.labels = labels
	}
}

// WithSelected highlights the item at index.
func WithSelected(index int) RendererOpt {
	return func(r *Renderer) {
		r.selected = index
	}
}

// WithOverlay draws o above every other region.
func WithOverlay(o Overlay) RendererOpt {
	return func(r *Renderer) {
		r.overlay = &o
	}
}

// WithVacancies marks vacant slots with a dotted fill.
func WithVacancies(show bool) RendererOpt {
	return func(r *Renderer) {
		r.vacancies = show
	}
}

// NewRenderer creates a [Renderer].
func NewRenderer(opts ...RendererOpt) *Renderer {
	r := &Renderer{
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
		selected:   -1,
		vacancies:  true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Scale converts a frame in points to a cell rectangle. Edges are rounded to
// the nearest cell, and non-empty frames are at least one cell in size.
func (r *Renderer) Scale(frame geom.Rect) (x, y, w, h int) {
	x = int(math.Round(frame.X / r.cellWidth))
	y = int(math.Round(frame.Y / r.cellHeight))
	w = int(math.Round(frame.Right()/r.cellWidth)) - x
	h = int(math.Round(frame.Bottom()/r.cellHeight)) - y

	if frame.Width > 0 {
		w = max(w, 1)
	}

	if frame.Height > 0 {
		h = max(h, 1)
	}

	return x, y, w, h
}

// Canvas draws snap onto a new canvas sized to its content.
func (r *Renderer) Canvas(snap *grid.Snapshot) *Canvas {
	if snap == nil {
		return NewCanvas(0, 0)
	}

	c := NewCanvas(
		int(math.Ceil(snap.ContentSize.Width/r.cellWidth)),
		int(math.Ceil(snap.ContentSize.Height/r.cellHeight)),
	)

	if snap.Header != nil {
		r.box(c, snap.Header.Frame, "header", RegionHeader)
	}

	if snap.Footer != nil {
		r.box(c, snap.Footer.Frame, "footer", RegionFooter)
	}

	if r.vacancies {
		for _, v := range snap.Vacancies {
			x, y, w, h := r.Scale(v)
			c.Fill(x, y, w, h, '·', RegionVacancy)
		}
	}

	for _, item := range snap.Items {
		region := RegionItem
		if item.Index == r.selected {
			region = RegionSelected
		}

		r.box(c, item.Frame, r.Label(item.Index), region)
	}

	if r.overlay != nil {
		r.box(c, r.overlay.Frame, r.overlay.Label, RegionOverlay)
	}

	return c
}

// Render draws snap and returns the styled text.
func (r *Renderer) Render(snap *grid.Snapshot) string {
	return r.Canvas(snap).Render(r.styles())
}

// Label returns the label shown for the item at index.
func (r *Renderer) Label(index int) string {
	if index >= 0 && index < len(r.labels) && r.labels[index] != "" {
		return r.labels[index]
	}

	return strconv.Itoa(index)
}

func (r *Renderer) box(c *Canvas, frame geom.Rect, label string, region Region) {
	x, y, w, h := r.Scale(frame)
	c.Box(x, y, w, h, label, region)
}

func (r *Renderer) styles() map[Region]lipgloss.Style {
	if r.theme == nil {
		return nil
	}

	return map[Region]lipgloss.Style{
		RegionHeader:   r.theme.HeaderStyle,
		RegionFooter:   r.theme.FooterStyle,
		RegionVacancy:  r.theme.VacancyStyle,
		RegionItem:     r.theme.ItemStyle,
		RegionSelected: r.theme.SelectedStyle,
		RegionOverlay:  r.theme.DraggedStyle,
	}
}
