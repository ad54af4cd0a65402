package uitest

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultTimeout = 5 * time.Second

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

var (
	Compact  = Size{Width: 80, Height: 24}
	Standard = Size{Width: 120, Height: 40}
)

// NewTestModel starts m in a test program with the given terminal size.
func NewTestModel(tb testing.TB, m tea.Model, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, m, teatest.WithInitialTermSize(size.Width, size.Height))
}

// WaitForText waits until the output, with ANSI sequences removed, contains
// every text.
func WaitForText(tb testing.TB, r io.Reader, texts ...string) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		plain := []byte(ansi.Strip(string(b)))
		for _, text := range texts {
			if !bytes.Contains(plain, []byte(text)) {
				return false
			}
		}

		return true
	}, teatest.WithDuration(DefaultTimeout))
}

// Press sends a key press for the given key string, such as "q", " " or
// "esc".
func Press(tm *teatest.TestModel, keys ...string) {
	for _, k := range keys {
		tm.Send(KeyMsg(k))
	}
}

// KeyMsg builds the [tea.KeyMsg] whose String method returns k.
func KeyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// FinalOutput reads the output written after the program finished.
func FinalOutput(tb testing.TB, tm *teatest.TestModel) string {
	tb.Helper()

	b, err := io.ReadAll(tm.FinalOutput(tb, teatest.WithFinalTimeout(DefaultTimeout)))
	if err != nil {
		tb.Fatal(err)
	}

	return string(b)
}
