package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AnnotatorTheme provides a custom theme for the application.
type AnnotatorTheme struct{}

var _ fyne.Theme = (*AnnotatorTheme)(nil)

func (t *AnnotatorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x39, G: 0x49, B: 0x8C, A: 0xFF} // Indigo for masks
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xE5, G: 0x73, B: 0x1C, A: 0x80} // Orange for the active class
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *AnnotatorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *AnnotatorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *AnnotatorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	default:
		return theme.DefaultTheme().Size(name)
	}
}
