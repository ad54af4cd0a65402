package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/grid"
)

func rowCol(t *testing.T, snap *grid.Snapshot, a grid.Attributes, top float64) (int, int) {
	t.Helper()

	cfg := threeColumn()
	row := (a.Frame.Y - top) / (cfg.ItemSize.Height + cfg.MinimumLineSpacing)
	col := (a.Frame.X - cfg.SectionInset.Left) / (cfg.ItemSize.Width + snap.Spacing)

	return int(row + 0.5), int(col + 0.5)
}

func TestCompute_Scenario(t *testing.T) {
	t.Parallel()

	snap, err := grid.Compute(threeColumn(), 9, grid.NewSkipSet(5), grid.SkipOmit)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Capacity)
	assert.InDelta(t, 20.0, snap.Spacing, 1e-9)

	want := map[int][2]int{
		0: {0, 0}, 1: {0, 1}, 2: {0, 2},
		3: {1, 0}, 4: {1, 1},
		6: {2, 1}, 7: {2, 2},
		8: {3, 0},
	}

	require.Len(t, snap.Items, len(want))

	for _, a := range snap.Items {
		row, col := rowCol(t, snap, a, 55)
		assert.Equal(t, want[a.Index], [2]int{row, col}, "index %d", a.Index)
	}

	_, ok := snap.Item(5)
	assert.False(t, ok)

	item8, ok := snap.Item(8)
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(20, 280, 60, 60), item8.Frame)

	require.NotNil(t, snap.Header)
	assert.Equal(t, geom.NewRect(0, 15, 260, 40), snap.Header.Frame)

	require.NotNil(t, snap.Footer)
	assert.Equal(t, geom.NewRect(0, 355, 260, 30), snap.Footer.Frame)

	assert.Equal(t, geom.NewSize(260, 385), snap.ContentSize)

	assert.Equal(t, []geom.Rect{
		geom.NewRect(180, 130, 60, 60),
		geom.NewRect(20, 205, 60, 60),
	}, snap.Vacancies)
}

func TestCompute_NoSkipEquivalence(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfiguration()

	for _, policy := range []grid.SkipPolicy{grid.SkipOmit, grid.SkipDisplace} {
		snap, err := grid.Compute(cfg, 23, grid.NewSkipSet(), policy)
		require.NoError(t, err)
		require.Len(t, snap.Items, 23)
		assert.Empty(t, snap.Vacancies)

		for i, a := range snap.Items {
			assert.Equal(t, i, a.Index)
			assert.Equal(t, grid.CategoryItem, a.Category)
			assert.Equal(t, grid.PositionForIndex(i, snap.Capacity, 0, cfg, snap.Spacing, 55), a.Frame)
		}
	}
}

func TestCompute_Justification(t *testing.T) {
	t.Parallel()

	for _, width := range []float64{260, 300, 375, 414, 768} {
		cfg := grid.DefaultConfiguration()
		cfg.ContainerWidth = width

		snap, err := grid.Compute(cfg, 50, grid.NewSkipSet(), grid.SkipOmit)
		require.NoError(t, err)
		require.Greater(t, snap.Capacity, 1)

		first := snap.Items[0].Frame
		last := snap.Items[snap.Capacity-1].Frame

		assert.InDelta(t, cfg.SectionInset.Left, first.X, 1e-9, "width %g", width)
		assert.InDelta(t, width-cfg.SectionInset.Right, last.Right(), 1e-9, "width %g", width)

		for i := 1; i < snap.Capacity; i++ {
			gap := snap.Items[i].Frame.X - snap.Items[i-1].Frame.Right()
			assert.InDelta(t, snap.Spacing, gap, 1e-9)
			assert.GreaterOrEqual(t, gap, cfg.MinimumInteritemSpacing-1e-9)
		}
	}
}

func TestCompute_SkipProperties(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		skip  []int
		count int
	}{
		"none":          {count: 9},
		"single":        {count: 9, skip: []int{5}},
		"first":         {count: 9, skip: []int{0}},
		"last":          {count: 9, skip: []int{8}},
		"adjacent":      {count: 20, skip: []int{3, 4, 5}},
		"scattered":     {count: 40, skip: []int{1, 7, 8, 19, 33}},
		"out of range":  {count: 9, skip: []int{-3, 9, 100}},
		"duplicates":    {count: 9, skip: []int{2, 2, 2}},
		"everything":    {count: 4, skip: []int{0, 1, 2, 3}},
		"row boundary":  {count: 16, skip: []int{3, 7, 11}},
		"many wrapping": {count: 12, skip: []int{0, 1, 2, 3, 4, 5, 6}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := threeColumn()
			skip := grid.NewSkipSet(tc.skip...)

			snap, err := grid.Compute(cfg, tc.count, skip, grid.SkipOmit)
			require.NoError(t, err)

			// Populated slots equal items minus in-range skips.
			assert.Len(t, snap.Items, tc.count-skip.CountInRange(tc.count))

			for _, a := range snap.Items {
				assert.False(t, skip.Contains(a.Index))
			}

			// Row-major order follows index order.
			for i := 1; i < len(snap.Items); i++ {
				pr, pc := rowCol(t, snap, snap.Items[i-1], 55)
				cr, cc := rowCol(t, snap, snap.Items[i], 55)

				assert.True(t, pr < cr || (pr == cr && pc < cc),
					"item %d (%d,%d) not before item %d (%d,%d)",
					snap.Items[i-1].Index, pr, pc, snap.Items[i].Index, cr, cc)
			}

			// No two frames overlap.
			for i := range snap.Items {
				for j := i + 1; j < len(snap.Items); j++ {
					assert.False(t, snap.Items[i].Frame.Intersects(snap.Items[j].Frame))
				}
			}
		})
	}
}

func TestCompute_DisplaceKeepsEveryItem(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		skip  []int
		count int
	}{
		"single":       {count: 9, skip: []int{5}},
		"first":        {count: 9, skip: []int{0}},
		"last":         {count: 9, skip: []int{8}},
		"adjacent":     {count: 20, skip: []int{3, 4, 5}},
		"out of range": {count: 9, skip: []int{4, 9, 100}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			skip := grid.NewSkipSet(tc.skip...)

			snap, err := grid.Compute(threeColumn(), tc.count, skip, grid.SkipDisplace)
			require.NoError(t, err)
			require.Len(t, snap.Items, tc.count)
			assert.Len(t, snap.Vacancies, skip.CountInRange(tc.count))

			for _, v := range snap.Vacancies {
				for _, a := range snap.Items {
					assert.False(t, v.Intersects(a.Frame))
				}
			}
		})
	}
}

func TestCompute_DisplaceScenario(t *testing.T) {
	t.Parallel()

	snap, err := grid.Compute(threeColumn(), 9, grid.NewSkipSet(5), grid.SkipDisplace)
	require.NoError(t, err)

	item5, ok := snap.Item(5)
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(20, 205, 60, 60), item5.Frame)

	assert.Equal(t, []geom.Rect{geom.NewRect(180, 130, 60, 60)}, snap.Vacancies)
}

func TestCompute_ContentSizeMonotonic(t *testing.T) {
	t.Parallel()

	for _, policy := range []grid.SkipPolicy{grid.SkipOmit, grid.SkipDisplace} {
		skip := grid.NewSkipSet(2, 5, 9)
		prev := 0.0

		for n := range 40 {
			snap, err := grid.Compute(grid.DefaultConfiguration(), n, skip, policy)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, snap.ContentSize.Height, prev, "count %d policy %s", n, policy)
			assert.InDelta(t, 375.0, snap.ContentSize.Width, 0)

			prev = snap.ContentSize.Height
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	a, err := grid.Compute(grid.DefaultConfiguration(), 17, grid.NewSkipSet(3, 11), grid.SkipOmit)
	require.NoError(t, err)

	b, err := grid.Compute(grid.DefaultConfiguration(), 17, grid.NewSkipSet(3, 11), grid.SkipOmit)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompute_ZeroItems(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		header, footer float64
		wantHeight     float64
		wantFooter     *geom.Rect
	}{
		"header and footer": {
			header:     40,
			footer:     30,
			wantHeight: 85,
			wantFooter: &geom.Rect{X: 0, Y: 55, Width: 375, Height: 30},
		},
		"header only": {
			header:     40,
			wantHeight: 55,
		},
		"footer only": {
			footer:     30,
			wantHeight: 30,
			wantFooter: &geom.Rect{X: 0, Y: 0, Width: 375, Height: 30},
		},
		"neither": {},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := grid.DefaultConfiguration()
			cfg.HeaderSize.Height = tc.header
			cfg.FooterSize.Height = tc.footer

			snap, err := grid.Compute(cfg, 0, grid.NewSkipSet(0, 1), grid.SkipOmit)
			require.NoError(t, err)

			assert.Empty(t, snap.Items)
			assert.Empty(t, snap.Vacancies)
			assert.InDelta(t, tc.wantHeight, snap.ContentSize.Height, 1e-9)
			assert.Equal(t, tc.header > 0, snap.Header != nil)

			if tc.wantFooter == nil {
				assert.Nil(t, snap.Footer)
			} else {
				require.NotNil(t, snap.Footer)
				assert.Equal(t, *tc.wantFooter, snap.Footer.Frame)
			}
		})
	}
}

func TestCompute_SingleColumn(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfiguration()
	cfg.ContainerWidth = 100

	snap, err := grid.Compute(cfg, 3, grid.NewSkipSet(1), grid.SkipOmit)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Capacity)
	assert.Zero(t, snap.Spacing)
	require.Len(t, snap.Items, 2)

	item2, ok := snap.Item(2)
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(20, 55+3*75, 60, 60), item2.Frame)
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfiguration()

	_, err := grid.Compute(cfg, -1, grid.NewSkipSet(), grid.SkipOmit)
	require.ErrorIs(t, err, grid.ErrNegativeCount)

	cfg.ContainerWidth = 10
	_, err = grid.Compute(cfg, 3, grid.NewSkipSet(), grid.SkipOmit)
	require.ErrorIs(t, err, grid.ErrRowCapacity)

	cfg = grid.DefaultConfiguration()
	cfg.FooterSize.Height = 1e308
	cfg.MinimumLineSpacing = 1e308
	_, err = grid.Compute(cfg, 30, grid.NewSkipSet(), grid.SkipOmit)
	require.ErrorIs(t, err, grid.ErrNonFinite)
}

func TestCompute_NegativeGeometry(t *testing.T) {
	t.Parallel()

	tcs := map[string]func(cfg *grid.Configuration){
		"negative item width":  func(cfg *grid.Configuration) { cfg.ItemSize.Width = -10 },
		"negative item height": func(cfg *grid.Configuration) { cfg.ItemSize.Height = -15 },
		"negative inset":       func(cfg *grid.Configuration) { cfg.SectionInset.Left = -5 },
		"negative line":        func(cfg *grid.Configuration) { cfg.MinimumLineSpacing = -1 },
		"negative interitem":   func(cfg *grid.Configuration) { cfg.MinimumInteritemSpacing = -1 },
		"negative header":      func(cfg *grid.Configuration) { cfg.HeaderSize.Height = -40 },
		"negative footer":      func(cfg *grid.Configuration) { cfg.FooterSize.Height = -30 },
	}

	for name, edit := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := grid.DefaultConfiguration()
			edit(&cfg)

			_, err := grid.Compute(cfg, 8, grid.NewSkipSet(), grid.SkipOmit)
			require.ErrorIs(t, err, grid.ErrNegativeValue)
			require.ErrorIs(t, err, grid.ErrInvalidConfiguration)

			_, err = grid.RowCapacity(cfg)
			require.ErrorIs(t, err, grid.ErrNegativeValue)
		})
	}
}

func TestSnapshot_Intersecting(t *testing.T) {
	t.Parallel()

	snap, err := grid.Compute(threeColumn(), 9, grid.NewSkipSet(5), grid.SkipOmit)
	require.NoError(t, err)

	tcs := map[string]struct {
		rect geom.Rect
		want []string
	}{
		"everything": {
			rect: geom.NewRect(0, 0, 260, 385),
			want: []string{"header", "0", "1", "2", "3", "4", "6", "7", "8", "footer"},
		},
		"header only": {
			rect: geom.NewRect(0, 0, 260, 50),
			want: []string{"header"},
		},
		"second row": {
			rect: geom.NewRect(0, 140, 260, 10),
			want: []string{"3", "4"},
		},
		"vacant slot": {
			rect: geom.NewRect(185, 135, 10, 10),
		},
		"touching edges": {
			rect: geom.NewRect(80, 115, 20, 15),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, a := range snap.Intersecting(tc.rect) {
				if a.IsSupplementary() {
					got = append(got, string(a.Category))
				} else {
					got = append(got, string(rune('0'+a.Index)))
				}
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSnapshot_ItemAt(t *testing.T) {
	t.Parallel()

	snap, err := grid.Compute(threeColumn(), 9, grid.NewSkipSet(5), grid.SkipOmit)
	require.NoError(t, err)

	a, ok := snap.ItemAt(geom.Point{X: 30, Y: 290})
	require.True(t, ok)
	assert.Equal(t, 8, a.Index)

	_, ok = snap.ItemAt(geom.Point{X: 190, Y: 140})
	assert.False(t, ok)
}

func TestSnapshot_Nil(t *testing.T) {
	t.Parallel()

	var snap *grid.Snapshot

	_, ok := snap.Item(0)
	assert.False(t, ok)
	assert.Nil(t, snap.Intersecting(geom.NewRect(0, 0, 10, 10)))
	assert.Nil(t, snap.All())
	assert.Nil(t, snap.Clone())
}

func TestSnapshot_Clone(t *testing.T) {
	t.Parallel()

	snap, err := grid.Compute(threeColumn(), 9, grid.NewSkipSet(5), grid.SkipOmit)
	require.NoError(t, err)

	c := snap.Clone()
	require.Equal(t, snap, c)

	c.Items[0].Frame.X = 999
	c.Header.Frame.Y = 999
	c.Vacancies[0].X = 999

	assert.InDelta(t, 20.0, snap.Items[0].Frame.X, 0)
	assert.InDelta(t, 15.0, snap.Header.Frame.Y, 0)
	assert.InDelta(t, 180.0, snap.Vacancies[0].X, 0)
	assert.Len(t, snap.All(), 10)
}
