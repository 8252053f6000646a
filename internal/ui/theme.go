package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme preference values stored in AppConfig.Theme.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// BinPackerTheme wraps the default Fyne theme with compact sizing and an
// optional forced light or dark variant.
type BinPackerTheme struct {
	base     fyne.Theme
	variant  fyne.ThemeVariant
	override bool
}

// NewBinPackerTheme creates a theme for the given preference ("system",
// "light" or "dark"). Unknown values follow the system variant.
func NewBinPackerTheme(pref string) *BinPackerTheme {
	t := &BinPackerTheme{base: theme.DefaultTheme()}
	t.SetPreference(pref)
	return t
}

// SetPreference switches between following the system and a fixed variant.
func (t *BinPackerTheme) SetPreference(pref string) {
	switch pref {
	case ThemeLight:
		t.variant, t.override = theme.VariantLight, true
	case ThemeDark:
		t.variant, t.override = theme.VariantDark, true
	default:
		t.override = false
	}
}

// Color delegates to the base theme, substituting the forced variant if any.
func (t *BinPackerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.override {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *BinPackerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *BinPackerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *BinPackerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
