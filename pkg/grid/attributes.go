package grid

import "github.com/macropower/skipgrid/pkg/geom"

// Category distinguishes item frames from supplementary regions.
type Category string

const (
	CategoryItem   Category = "item"
	CategoryHeader Category = "header"
	CategoryFooter Category = "footer"
)

// Attributes is the computed frame of an item or a supplementary region.
// Index is the item index, or 0 (the section) for a header or footer.
type Attributes struct {
	Category Category  `json:"category"`
	Index    int       `json:"index"`
	Frame    geom.Rect `json:"frame"`
}

// IsSupplementary reports whether the attributes describe a header or
// footer.
func (a Attributes) IsSupplementary() bool {
	return a.Category == CategoryHeader || a.Category == CategoryFooter
}
