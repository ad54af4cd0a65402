// Package statusbar renders the single-line status bar shown beneath the grid
// preview.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/skipgrid/pkg/ui/theme"
	"github.com/macropower/skipgrid/pkg/version"
)

const (
	helpText  = " ? Help "
	errorText = " ! Error "
)

type Style int

const (
	StyleNormal Style = iota
	StyleSuccess
	StyleError
)

// Renderer renders the status bar at a fixed width.
type Renderer struct {
	theme   *theme.Theme
	message string
	width   int
	style   Style
}

type RendererOpt func(*Renderer)

// WithMessage replaces the note with a success message.
func WithMessage(message string) RendererOpt {
	return func(r *Renderer) {
		r.style = StyleSuccess
		r.message = message
	}
}

// WithError replaces the note with an error message.
func WithError(message string) RendererOpt {
	return func(r *Renderer) {
		r.style = StyleError
		r.message = message
	}
}

// NewRenderer creates a new [Renderer]. A nil theme uses [theme.Default].
// A width of zero or less disables truncation and padding.
func NewRenderer(t *theme.Theme, width int, opts ...RendererOpt) *Renderer {
	if t == nil {
		t = theme.Default
	}

	r := &Renderer{theme: t, width: max(0, width), style: StyleNormal}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Style returns the style selected by the options.
func (r *Renderer) Style() Style {
	return r.style
}

// Render renders the logo, the note (or message), the position and the help
// hint, padded to the renderer's width.
func (r *Renderer) Render(note, position string) string {
	logo := r.logoView()
	pos := r.renderPosition(position)
	help := r.renderHelp()
	body := r.renderNote(note, logo, pos, help)
	space := r.renderEmptySpace(logo, body, pos, help)

	return fmt.Sprintf("%s%s%s%s%s", logo, body, space, pos, help)
}

func (r *Renderer) renderPosition(position string) string {
	if position == "" {
		return ""
	}

	return r.styleFor(r.theme.StatusBarPosStyle).Render(" " + position + " ")
}

func (r *Renderer) renderHelp() string {
	if r.style == StyleError {
		return r.theme.ErrorTitleStyle.Render(errorText)
	}

	return r.theme.HelpStyle.Render(helpText)
}

func (r *Renderer) renderNote(note string, others ...string) string {
	if r.message != "" {
		note = r.message
	}

	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))

	available := r.width
	for _, o := range others {
		available -= lipgloss.Width(o)
	}

	note = " " + note + " "
	if r.width > 0 {
		note = ansi.Truncate(note, max(0, available), r.theme.Ellipsis)
	}

	return r.styleFor(r.theme.StatusBarStyle).Render(note)
}

func (r *Renderer) renderEmptySpace(components ...string) string {
	if r.width == 0 {
		return ""
	}

	padding := r.width
	for _, c := range components {
		padding -= lipgloss.Width(c)
	}

	return r.styleFor(r.theme.StatusBarStyle).Render(strings.Repeat(" ", max(0, padding)))
}

// styleFor swaps in the message or error palette.
func (r *Renderer) styleFor(base lipgloss.Style) lipgloss.Style {
	switch r.style {
	case StyleError:
		return r.theme.ErrorTitleStyle
	case StyleSuccess:
		return r.theme.StatusBarMessageStyle
	default:
		return base
	}
}

func (r *Renderer) logoView() string {
	return r.theme.LogoStyle.Render(fmt.Sprintf(" skipgrid %s ", version.GetVersion()))
}
