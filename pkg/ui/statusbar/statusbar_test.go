package statusbar_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/skipgrid/pkg/ui/statusbar"
	"github.com/macropower/skipgrid/pkg/ui/theme"
)

func TestRenderer_Width(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		width int
		want  int
	}{
		"fits": {
			width: 120,
			want:  120,
		},
		"truncates note": {
			width: 40,
			want:  40,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := statusbar.NewRenderer(theme.Default, tc.width)
			out := r.Render("a fairly long note that will not fit in a narrow terminal", "item 3/9")
			assert.Equal(t, tc.want, lipgloss.Width(out))
		})
	}
}

func TestRenderer_Content(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts      []statusbar.RendererOpt
		want      []string
		notWant   []string
		wantStyle statusbar.Style
	}{
		"normal": {
			want:      []string{"skipgrid", "layout.yaml", "item 1/9", "? Help"},
			wantStyle: statusbar.StyleNormal,
		},
		"message": {
			opts:      []statusbar.RendererOpt{statusbar.WithMessage("copied snapshot")},
			want:      []string{"copied snapshot", "? Help"},
			notWant:   []string{"layout.yaml"},
			wantStyle: statusbar.StyleSuccess,
		},
		"error": {
			opts:      []statusbar.RendererOpt{statusbar.WithError("reload failed")},
			want:      []string{"reload failed", "! Error"},
			notWant:   []string{"? Help"},
			wantStyle: statusbar.StyleError,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := statusbar.NewRenderer(nil, 120, tc.opts...)
			assert.Equal(t, tc.wantStyle, r.Style())

			out := ansi.Strip(r.Render("layout.yaml", "item 1/9"))
			for _, s := range tc.want {
				assert.Contains(t, out, s)
			}

			for _, s := range tc.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderer_NoPosition(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(statusbar.NewRenderer(nil, 60).Render("note", ""))
	assert.Contains(t, out, " note ")
	assert.Equal(t, 60, lipgloss.Width(out))
}

func TestRenderer_Unbounded(t *testing.T) {
	t.Parallel()

	note := "a note that is never truncated without a width"
	out := ansi.Strip(statusbar.NewRenderer(nil, 0).Render(note, "item 1/9"))
	assert.Contains(t, out, " "+note+" ")
	assert.True(t, strings.HasSuffix(out, " item 1/9  ? Help "))
}
