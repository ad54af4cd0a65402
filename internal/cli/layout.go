package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/config"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/report"
	"github.com/macropower/skipgrid/pkg/ui/theme"
)

// resolveLayoutPath returns the layout file to use. An explicit path wins,
// then a layout file found by walking up from the working directory, then
// the user's default layout. It returns "" when none exists.
func resolveLayoutPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	found, err := layouts.Find(".")
	if err != nil {
		return "", err
	}

	if found != "" {
		return found, nil
	}

	def := layouts.GetPath()
	if _, err := os.Stat(def); err == nil {
		return def, nil
	}

	return "", nil
}

// loadLayout loads the layout at path, or the default layout when no layout
// file can be found. It returns the path that was loaded.
func loadLayout(path string, colored bool) (*layouts.Layout, string, error) {
	resolved, err := resolveLayoutPath(path)
	if err != nil {
		return nil, "", err
	}

	if resolved == "" {
		slog.Debug("no layout file found, using defaults")

		return layouts.New(), "", nil
	}

	l, err := layouts.Load(resolved, config.WithColor(colored))
	if err != nil {
		return nil, "", err
	}

	slog.Debug("loaded layout", slog.String("path", resolved))

	return l, resolved, nil
}

// document computes l and wraps the snapshot in a report document. A nil
// skip uses the layout's own skip set.
func document(ctx context.Context, l *layouts.Layout, skip *grid.SkipSet, opts ...grid.EngineOpt) (*report.Document, error) {
	var s grid.SkipSet

	if skip != nil {
		s = *skip
	} else {
		var err error

		s, err = l.SkipSet(ctx)
		if err != nil {
			return nil, err
		}
	}

	opts = append([]grid.EngineOpt{grid.WithSkipSet(s)}, opts...)

	snap, err := l.Compute(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return report.NewDocument(snap, s).WithLabels(l.Items.Labels), nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// writeHighlighted writes src to w, highlighted as language when w is a
// terminal.
func writeHighlighted(w io.Writer, src, language, themeName string) error {
	out := src

	if isTerminal(w) {
		h := report.NewHighlighter(theme.New(themeName).ChromaStyle)

		highlighted, err := h.Highlight(src, language)
		if err != nil {
			slog.Warn("highlight output", slog.Any("err", err))
		} else {
			out = highlighted
		}
	}

	_, err := io.WriteString(w, out)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

var errNoLayoutFile = errors.New("no layout file")
