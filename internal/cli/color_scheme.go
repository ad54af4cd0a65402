package cli

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/ui/theme"
)

// ColorSchemeFunc styles help and error output with the theme of the layout
// found from the working directory, or the default theme.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	t := theme.Default

	path, err := resolveLayoutPath("")
	if err == nil && path != "" {
		if l, err := layouts.Load(path); err == nil {
			t = theme.New(l.UI.Theme)
		}
	}

	return ThemeColorScheme(t, c)
}

// ThemeColorScheme maps a [theme.Theme] onto fang's color roles.
func ThemeColorScheme(t *theme.Theme, c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           t.GenericTextStyle.GetForeground(),
		Title:          t.LogoStyle.GetBackground(),
		Codeblock:      c(charmtone.Salt, charmtone.Pepper),
		Program:        t.HeaderStyle.GetForeground(),
		Command:        t.SelectedStyle.GetForeground(),
		DimmedArgument: t.SubtleStyle.GetForeground(),
		Comment:        t.SubtleStyle.GetForeground(),
		Flag:           t.ItemStyle.GetForeground(),
		Argument:       t.GenericTextStyle.GetForeground(),
		Description:    t.GenericTextStyle.GetForeground(),
		FlagDefault:    t.SelectedSubtleStyle.GetForeground(),
		QuotedString:   t.ItemStyle.GetForeground(),
		ErrorHeader: [2]color.Color{
			t.ErrorTitleStyle.GetForeground(),
			t.ErrorTitleStyle.GetBackground(),
		},
	}
}
