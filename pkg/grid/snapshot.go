package grid

import (
	"fmt"
	"slices"

	"github.com/macropower/skipgrid/pkg/geom"
)

// Key identifies the inputs a [Snapshot] was computed from.
type Key struct {
	ItemCount      int    `json:"itemCount"`
	Generation     uint64 `json:"generation"`
	HostGeneration uint64 `json:"hostGeneration"`
}

// Snapshot is the result of one layout pass.
type Snapshot struct {
	Header      *Attributes  `json:"header,omitempty"`
	Footer      *Attributes  `json:"footer,omitempty"`
	Policy      SkipPolicy   `json:"policy"`
	Items       []Attributes `json:"items"`
	Vacancies   []geom.Rect  `json:"vacancies,omitempty"`
	ContentSize geom.Size    `json:"contentSize"`
	Key         Key          `json:"-"`
	Capacity    int          `json:"capacity"`
	Spacing     float64      `json:"spacing"`
}

// Compute runs a single layout pass over itemCount items.
func Compute(cfg Configuration, itemCount int, skip SkipSet, policy SkipPolicy) (*Snapshot, error) {
	if itemCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, itemCount)
	}

	capacity, err := RowCapacity(cfg)
	if err != nil {
		return nil, fmt.Errorf("compute row capacity: %w", err)
	}

	var spacing float64
	if capacity > 1 {
		spacing, err = JustifiedSpacing(cfg, capacity)
		if err != nil {
			return nil, fmt.Errorf("compute spacing: %w", err)
		}
	}

	if policy == "" {
		policy = SkipOmit
	}

	snap := &Snapshot{
		Capacity: capacity,
		Spacing:  spacing,
		Policy:   policy,
		Items:    make([]Attributes, 0, itemCount),
	}

	var headerBottom float64

	top := cfg.SectionInset.Top
	if cfg.HasHeader() {
		snap.Header = &Attributes{
			Category: CategoryHeader,
			Frame:    geom.NewRect(0, cfg.SectionInset.Top, cfg.ContainerWidth, cfg.HeaderSize.Height),
		}
		headerBottom = snap.Header.Frame.Bottom()
		top = headerBottom
	}

	var (
		cursor      = skipCursor{set: skip, policy: policy}
		occupied    = make(map[int]bool, itemCount)
		lastSlot    = -1
		itemsBottom float64
	)

	for i := range itemCount {
		shift, place := cursor.advance(i)
		if !place {
			continue
		}

		frame := PositionForIndex(i, capacity, shift, cfg, spacing, top)
		if !frame.IsFinite() {
			return nil, fmt.Errorf("%w: frame for item %d is %s", ErrNonFinite, i, frame)
		}

		snap.Items = append(snap.Items, Attributes{
			Category: CategoryItem,
			Index:    i,
			Frame:    frame,
		})

		slot := i + shift
		occupied[slot] = true
		lastSlot = max(lastSlot, slot)
		itemsBottom = max(itemsBottom, frame.Bottom())
	}

	for slot := range lastSlot {
		if !occupied[slot] {
			snap.Vacancies = append(snap.Vacancies, PositionForIndex(slot, capacity, 0, cfg, spacing, top))
		}
	}

	height := headerBottom
	footerY := headerBottom

	if len(snap.Items) > 0 {
		height = max(height, itemsBottom+cfg.SectionInset.Bottom)
		footerY = itemsBottom + cfg.MinimumLineSpacing
	}

	if cfg.HasFooter() {
		snap.Footer = &Attributes{
			Category: CategoryFooter,
			Frame:    geom.NewRect(0, footerY, cfg.ContainerWidth, cfg.FooterSize.Height),
		}
		height = max(height, snap.Footer.Frame.Bottom())
	}

	snap.ContentSize = geom.NewSize(cfg.ContainerWidth, height)

	return snap, nil
}

// Item returns the attributes of the item at index.
func (s *Snapshot) Item(index int) (Attributes, bool) {
	if s == nil {
		return Attributes{}, false
	}

	i, ok := slices.BinarySearchFunc(s.Items, index, func(a Attributes, idx int) int {
		return a.Index - idx
	})
	if !ok {
		return Attributes{}, false
	}

	return s.Items[i], true
}

// ItemAt returns the attributes of the item whose frame contains p.
func (s *Snapshot) ItemAt(p geom.Point) (Attributes, bool) {
	if s == nil {
		return Attributes{}, false
	}

	for _, a := range s.Items {
		if a.Frame.Contains(p) {
			return a, true
		}
	}

	return Attributes{}, false
}

// Intersecting returns the header, items and footer whose frames overlap
// rect, in that order.
func (s *Snapshot) Intersecting(rect geom.Rect) []Attributes {
	if s == nil {
		return nil
	}

	var out []Attributes

	if s.Header != nil && s.Header.Frame.Intersects(rect) {
		out = append(out, *s.Header)
	}

	for _, a := range s.Items {
		if a.Frame.Intersects(rect) {
			out = append(out, a)
		}
	}

	if s.Footer != nil && s.Footer.Frame.Intersects(rect) {
		out = append(out, *s.Footer)
	}

	return out
}

// All returns every attribute in the snapshot: header, items, then footer.
func (s *Snapshot) All() []Attributes {
	if s == nil {
		return nil
	}

	out := make([]Attributes, 0, len(s.Items)+2)
	if s.Header != nil {
		out = append(out, *s.Header)
	}

	out = append(out, s.Items...)

	if s.Footer != nil {
		out = append(out, *s.Footer)
	}

	return out
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	c := *s
	c.Items = slices.Clone(s.Items)
	c.Vacancies = slices.Clone(s.Vacancies)

	if s.Header != nil {
		c.Header = ptr(*s.Header)
	}
	if s.Footer != nil {
		c.Footer = ptr(*s.Footer)
	}

	return &c
}
