package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Region identifies what a canvas cell belongs to.
type Region int

const (
	RegionNone Region = iota
	RegionHeader
	RegionFooter
	RegionVacancy
	RegionItem
	RegionSelected
	RegionOverlay
)

type cell struct {
	r      rune
	region Region
}

// Canvas is a fixed-size grid of styled runes.
type Canvas struct {
	cells [][]cell
	cols  int
	rows  int
}

// NewCanvas creates a blank canvas.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)

	cells := make([][]cell, rows)
	for y := range cells {
		cells[y] = make([]cell, cols)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}

	return &Canvas{cells: cells, cols: cols, rows: rows}
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// At returns the rune and region at a cell. Out of bounds cells are blank.
func (c *Canvas) At(x, y int) (rune, Region) {
	if !c.inBounds(x, y) {
		return ' ', RegionNone
	}

	cl := c.cells[y][x]

	return cl.r, cl.region
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.cols && y < c.rows
}

func (c *Canvas) set(x, y int, r rune, region Region) {
	if c.inBounds(x, y) {
		c.cells[y][x] = cell{r: r, region: region}
	}
}

// Box draws a bordered box with a centered label. Boxes narrower or shorter
// than two cells are filled instead, and boxes without an interior row carry
// the label on their top edge.
func (c *Canvas) Box(x, y, w, h int, label string, region Region) {
	if w <= 0 || h <= 0 {
		return
	}

	if w < 2 || h < 2 {
		c.Fill(x, y, w, h, '█', region)
		c.label(x, y, w, h, label, region)

		return
	}

	right, bottom := x+w-1, y+h-1
	for i := x + 1; i < right; i++ {
		c.set(i, y, '─', region)
		c.set(i, bottom, '─', region)
	}

	for j := y + 1; j < bottom; j++ {
		c.set(x, j, '│', region)
		c.set(right, j, '│', region)

		for i := x + 1; i < right; i++ {
			c.set(i, j, ' ', region)
		}
	}

	c.set(x, y, '╭', region)
	c.set(right, y, '╮', region)
	c.set(x, bottom, '╰', region)
	c.set(right, bottom, '╯', region)

	if h == 2 {
		c.label(x+1, y, w-2, 1, label, region)

		return
	}

	c.label(x+1, y+1, w-2, h-2, label, region)
}

// Fill sets every cell of a rectangle to r.
func (c *Canvas) Fill(x, y, w, h int, r rune, region Region) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			c.set(i, j, r, region)
		}
	}
}

func (c *Canvas) label(x, y, w, h int, label string, region Region) {
	if label == "" || w <= 0 || h <= 0 {
		return
	}

	label = ansi.Truncate(label, w, "")
	runes := []rune(label)

	row := y + (h-1)/2
	col := x + (w-len(runes))/2

	for i, r := range runes {
		c.set(col+i, row, r, region)
	}
}

// Render joins the canvas rows, styling runs of cells by region.
func (c *Canvas) Render(styles map[Region]lipgloss.Style) string {
	lines := make([]string, 0, c.rows)

	for _, row := range c.cells {
		var (
			b   strings.Builder
			run []rune
			cur = RegionNone
		)

		flush := func() {
			if len(run) == 0 {
				return
			}

			if style, ok := styles[cur]; ok {
				b.WriteString(style.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}

			run = run[:0]
		}

		for _, cl := range row {
			if cl.region != cur {
				flush()

				cur = cl.region
			}

			run = append(run, cl.r)
		}

		flush()

		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	return strings.Join(lines, "\n")
}
