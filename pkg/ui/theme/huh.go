package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HuhTheme styles a huh form with the grid palette: headers title each
// field, items mark choices and vacancies stand in for empty input.
func HuhTheme(t *Theme) *huh.Theme {
	h := huh.ThemeBase()

	accent := t.HeaderStyle.GetForeground()
	choice := t.ItemStyle.GetForeground()
	empty := t.VacancyStyle.GetForeground()
	invalid := t.DeletedStyle.GetForeground()

	f := &h.Focused
	f.Base = f.Base.BorderForeground(accent)
	f.Card = f.Base
	f.Title = f.Title.Foreground(accent).Bold(true)
	f.Description = f.Description.Foreground(empty)
	f.ErrorIndicator = f.ErrorIndicator.Foreground(invalid)
	f.ErrorMessage = f.ErrorMessage.Foreground(invalid)

	for _, s := range []*lipgloss.Style{&f.SelectSelector, &f.NextIndicator, &f.PrevIndicator, &f.SelectedOption} {
		*s = s.Foreground(choice)
	}

	f.SelectedPrefix = t.ItemStyle.SetString("▣ ")
	f.UnselectedPrefix = t.VacancyStyle.SetString("□ ")
	f.FocusedButton = t.LogoStyle
	f.Next = f.FocusedButton
	f.BlurredButton = f.BlurredButton.
		Foreground(t.LogoStyle.GetForeground()).
		Background(empty)

	f.TextInput.Cursor = f.TextInput.Cursor.Foreground(t.DraggedStyle.GetForeground())
	f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(empty)
	f.TextInput.Prompt = f.TextInput.Prompt.Foreground(accent)

	h.Blurred = h.Focused
	h.Blurred.Base = f.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Card = h.Blurred.Base
	h.Blurred.NextIndicator = lipgloss.NewStyle()
	h.Blurred.PrevIndicator = lipgloss.NewStyle()

	return h
}
