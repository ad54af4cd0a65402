package grid

import (
	"fmt"
	"math"

	"github.com/macropower/skipgrid/pkg/geom"
)

// Absorbs rounding error when a row fits exactly.
const fitTolerance = 1e-9

// RowCapacity returns the largest number of items c such that
// c*itemWidth + (c-1)*interitemSpacing fits between the left and right
// section insets.
func RowCapacity(cfg Configuration) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	stride := cfg.ItemSize.Width + cfg.MinimumInteritemSpacing
	if stride <= 0 {
		return 0, fmt.Errorf("%w: item width plus interitem spacing is %g", ErrRowCapacity, stride)
	}

	avail := cfg.ContainerWidth - cfg.SectionInset.Horizontal() + cfg.MinimumInteritemSpacing

	capacity := math.Floor(avail/stride + fitTolerance)
	if capacity < 1 {
		return 0, fmt.Errorf("%w: %g points available, %g needed",
			ErrRowCapacity, cfg.ContainerWidth-cfg.SectionInset.Horizontal(), cfg.ItemSize.Width)
	}

	if capacity > math.MaxInt32 {
		capacity = math.MaxInt32
	}

	return int(capacity), nil
}

// JustifiedSpacing returns the horizontal gap that makes a full row of
// capacity items span exactly from the left inset to the right inset.
func JustifiedSpacing(cfg Configuration, capacity int) (float64, error) {
	switch {
	case capacity < 1:
		return 0, fmt.Errorf("%w: got %d", ErrRowCapacity, capacity)
	case capacity == 1:
		return 0, ErrSingleColumn
	}

	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	c := float64(capacity)
	leftover := cfg.ContainerWidth - c*cfg.ItemSize.Width - cfg.SectionInset.Horizontal()

	return leftover / (c - 1), nil
}

// PositionForIndex returns the frame of the item at index after shifting it
// forward by skipCountBefore slots. A shift past the end of a row wraps onto
// the following rows. top is the y-coordinate of the first item row.
func PositionForIndex(index, capacity, skipCountBefore int, cfg Configuration, spacing, top float64) geom.Rect {
	if capacity < 1 {
		capacity = 1
	}

	row := index / capacity
	col := index % capacity

	shifted := col + skipCountBefore
	extraRows := shifted / capacity
	col = shifted % capacity

	rowStride := cfg.ItemSize.Height + cfg.MinimumLineSpacing

	return geom.RectFromSize(
		cfg.SectionInset.Left+float64(col)*(cfg.ItemSize.Width+spacing),
		top+float64(row)*rowStride+float64(extraRows)*rowStride,
		cfg.ItemSize,
	)
}

// Slot converts a linear slot number into its row and column.
func Slot(slot, capacity int) (row, col int) {
	if capacity < 1 {
		return 0, 0
	}

	return slot / capacity, slot % capacity
}
