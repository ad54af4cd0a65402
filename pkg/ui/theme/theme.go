// Package theme derives lipgloss styles for the grid preview from a chroma
// syntax highlighting style, so the preview and highlighted output share one
// palette.
package theme

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const Ellipsis = "…"

var (
	ErrInvalidName    = errors.New("invalid theme name")
	ErrRegisterStyles = errors.New("register styles")
)

var Default = New("github")

type Theme struct {
	// Chrome.
	ErrorTitleStyle       lipgloss.Style
	GenericTextStyle      lipgloss.Style
	HelpStyle             lipgloss.Style
	LogoStyle             lipgloss.Style
	SelectedStyle         lipgloss.Style
	SelectedSubtleStyle   lipgloss.Style
	StatusBarMessageStyle lipgloss.Style
	StatusBarPosStyle     lipgloss.Style
	StatusBarStyle        lipgloss.Style
	SubtleStyle           lipgloss.Style

	// Grid regions.
	DraggedStyle  lipgloss.Style
	FooterStyle   lipgloss.Style
	HeaderStyle   lipgloss.Style
	ItemStyle     lipgloss.Style
	VacancyStyle  lipgloss.Style
	InsertedStyle lipgloss.Style
	DeletedStyle  lipgloss.Style

	ChromaStyle *chroma.Style
	Ellipsis    string
}

// New creates a [Theme] from the named chroma style. The names "auto",
// "dark" and "light" select a GitHub style matching the terminal.
func New(name string) *Theme {
	style := newChromaStyle(name)

	var (
		genericStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.Background))

		selectedStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.NameTag))

		selectedSubtleStyle = lipgloss.NewStyle().
					Foreground(style.fgWithFactor(chroma.NameTag, 0.3))

		subtleStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.Comment))

		helpStyle = lipgloss.NewStyle().
				Foreground(style.fgWithFactor(chroma.Background, 0.2)).
				Background(style.bgWithFactor(chroma.Background, 0.2))
	)

	return &Theme{
		ErrorTitleStyle: genericStyle.
			Background(style.fg(chroma.GenericDeleted)),
		GenericTextStyle: genericStyle,
		HelpStyle:        helpStyle,
		LogoStyle: lipgloss.NewStyle().
			Foreground(style.bg(chroma.Background)).
			Background(style.fg(chroma.NameTag)).
			Bold(true),
		SelectedStyle:       selectedStyle,
		SelectedSubtleStyle: selectedSubtleStyle,
		StatusBarMessageStyle: lipgloss.NewStyle().
			Foreground(style.bg(chroma.Background)).
			Background(style.fgWithFactor(chroma.NameTag, 0.15)),
		StatusBarPosStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.Background)).
			Background(style.bgWithFactor(chroma.Background, 0.15)),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.Background)).
			Background(style.bgWithFactor(chroma.Background, 0.1)),
		SubtleStyle: subtleStyle,

		DraggedStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.NameTag)).
			Bold(true),
		FooterStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.Comment)),
		HeaderStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.Keyword)),
		ItemStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.LiteralString)),
		VacancyStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.Comment)).
			Faint(true),
		InsertedStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.GenericInserted)),
		DeletedStyle: lipgloss.NewStyle().
			Foreground(style.fg(chroma.GenericDeleted)),

		ChromaStyle: style.style,
		Ellipsis:    Ellipsis,
	}
}

// Register adds a custom chroma style that [New] can then select by name.
func Register(name string, entries chroma.StyleEntries) error {
	if name == "" {
		return ErrInvalidName
	}

	customTheme, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterStyles, err)
	}

	styles.Register(customTheme)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(name string) chromaStyle {
	s := styles.Get(resolve(name))
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) fg(c chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bg(c chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Background.String())
}

func (cs chromaStyle) fgWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Colour.BrightenOrDarken(factor).String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bgWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Background.BrightenOrDarken(factor).String())
}

func resolve(name string) string {
	switch name {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return ""
		}

		if termenv.HasDarkBackground() {
			return "github-dark"
		}

		return "github"
	default:
		return name
	}
}
