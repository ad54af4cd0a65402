package ui

// host is the preview's [grid.Host]. Its generation changes whenever the
// container width changes.
type host struct {
	count      int
	width      float64
	generation uint64
}

func (h *host) ItemCount() int          { return h.count }
func (h *host) ContainerWidth() float64 { return h.width }
func (h *host) Generation() uint64      { return h.generation }

func (h *host) setWidth(w float64) {
	if w == h.width {
		return
	}

	h.width = w
	h.generation++
}
