package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/skipgrid/pkg/geom"
)

func TestRect_RightBottom(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rect   geom.Rect
		right  float64
		bottom float64
	}{
		"standard rect": {
			rect:   geom.NewRect(5, 10, 20, 15),
			right:  25,
			bottom: 25,
		},
		"negative position": {
			rect:   geom.NewRect(-5, -5, 10, 10),
			right:  5,
			bottom: 5,
		},
		"fractional": {
			rect:   geom.NewRect(0.5, 0.25, 1.5, 1.25),
			right:  2,
			bottom: 1.5,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tc.right, tc.rect.Right(), 1e-9)
			assert.InDelta(t, tc.bottom, tc.rect.Bottom(), 1e-9)
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	t.Parallel()

	base := geom.NewRect(0, 0, 10, 10)

	tcs := map[string]struct {
		other geom.Rect
		want  bool
	}{
		"overlapping": {
			other: geom.NewRect(5, 5, 10, 10),
			want:  true,
		},
		"contained": {
			other: geom.NewRect(2, 2, 2, 2),
			want:  true,
		},
		"touching right edge": {
			other: geom.NewRect(10, 0, 5, 5),
			want:  false,
		},
		"touching bottom edge": {
			other: geom.NewRect(0, 10, 5, 5),
			want:  false,
		},
		"disjoint": {
			other: geom.NewRect(20, 20, 5, 5),
			want:  false,
		},
		"empty": {
			other: geom.NewRect(2, 2, 0, 0),
			want:  false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, base.Intersects(tc.other))
			assert.Equal(t, tc.want, tc.other.Intersects(base))
		})
	}
}

func TestRect_Intersect(t *testing.T) {
	t.Parallel()

	got := geom.NewRect(0, 0, 10, 10).Intersect(geom.NewRect(5, 2, 10, 4))
	assert.Equal(t, geom.NewRect(5, 2, 5, 4), got)

	got = geom.NewRect(0, 0, 10, 10).Intersect(geom.NewRect(11, 0, 1, 1))
	assert.True(t, got.IsEmpty())
}

func TestRect_Union(t *testing.T) {
	t.Parallel()

	a := geom.NewRect(0, 0, 10, 10)
	b := geom.NewRect(5, 5, 10, 10)

	assert.Equal(t, geom.NewRect(0, 0, 15, 15), a.Union(b))
	assert.Equal(t, a, a.Union(geom.Rect{}))
	assert.Equal(t, b, geom.Rect{}.Union(b))
}

func TestRect_Contains(t *testing.T) {
	t.Parallel()

	r := geom.NewRect(0, 0, 10, 10)

	assert.True(t, r.Contains(geom.Point{X: 0, Y: 0}))
	assert.True(t, r.Contains(geom.Point{X: 9.99, Y: 9.99}))
	assert.False(t, r.Contains(geom.Point{X: 10, Y: 5}))
	assert.False(t, r.Contains(geom.Point{X: 5, Y: 10}))

	assert.True(t, r.ContainsRect(geom.NewRect(1, 1, 9, 9)))
	assert.False(t, r.ContainsRect(geom.NewRect(1, 1, 10, 9)))
	assert.True(t, r.ContainsRect(geom.Rect{}))
	assert.False(t, geom.Rect{}.ContainsRect(r))
	assert.Equal(t, geom.Point{X: 5, Y: 5}, r.Center())
}

func TestRect_IsFinite(t *testing.T) {
	t.Parallel()

	assert.True(t, geom.NewRect(1, 2, 3, 4).IsFinite())
	assert.False(t, geom.NewRect(math.NaN(), 0, 1, 1).IsFinite())
	assert.False(t, geom.NewRect(0, 0, math.Inf(1), 1).IsFinite())
}

func TestInsets(t *testing.T) {
	t.Parallel()

	i := geom.Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	assert.InDelta(t, 6.0, i.Horizontal(), 1e-9)
	assert.InDelta(t, 4.0, i.Vertical(), 1e-9)

	assert.Equal(t, geom.Insets{Top: 5, Left: 5, Bottom: 5, Right: 5}, geom.InsetAll(5))
	assert.Equal(t, geom.Insets{Top: 15, Left: 20, Bottom: 15, Right: 20}, geom.InsetSymmetric(15, 20))
}
