package report

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// Highlighter applies chroma syntax highlighting to report output.
type Highlighter struct {
	formatter chroma.Formatter
	style     *chroma.Style
}

// HighlighterOpt configures a [Highlighter].
type HighlighterOpt func(*Highlighter)

// WithFormatter selects a chroma formatter by name, overriding the one
// detected from the terminal color profile.
func WithFormatter(name string) HighlighterOpt {
	return func(h *Highlighter) {
		h.formatter = formatters.Get(name)
	}
}

// NewHighlighter creates a [Highlighter] using style, or the chroma
// fallback style when style is nil.
func NewHighlighter(style *chroma.Style, opts ...HighlighterOpt) *Highlighter {
	if style == nil {
		style = styles.Fallback
	}

	h := &Highlighter{
		style:     style,
		formatter: formatters.Get(formatterName(termenv.ColorProfile())),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Highlight renders src, written in the named language, with ANSI colors.
// Unknown languages are returned unchanged.
func (h *Highlighter) Highlight(src, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return src, nil
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return "", fmt.Errorf("lexer tokenize: %w", err)
	}

	buf := &bytes.Buffer{}

	err = h.formatter.Format(buf, h.style, iterator)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	return buf.String(), nil
}

func formatterName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal8"
	default:
		return "noop"
	}
}
