package theme

import "github.com/charmbracelet/lipgloss"

// Theme is the palette of the reader screens.
type Theme struct {
	Name string

	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Selected  lipgloss.Color // background of the selected row or card
	Card      lipgloss.Color
	Border    lipgloss.Color
	Error     lipgloss.Color
	Heading   lipgloss.Color

	// Backdrop variants 1 and 2 of the book list and the chapter grid.
	BookBackdrops    [2]lipgloss.Color
	ChapterBackdrops [2]lipgloss.Color
}

var (
	CatppuccinMocha = Theme{
		Name:             "Catppuccin Mocha",
		Text:             lipgloss.Color("#cdd6f4"),
		Muted:            lipgloss.Color("#6c7086"),
		Accent:           lipgloss.Color("#f5c2e7"),
		Selected:         lipgloss.Color("#585b70"),
		Card:             lipgloss.Color("#313244"),
		Border:           lipgloss.Color("#45475a"),
		Error:            lipgloss.Color("#f38ba8"),
		Heading:          lipgloss.Color("#89b4fa"),
		BookBackdrops:    [2]lipgloss.Color{"#1e1e2e", "#181825"},
		ChapterBackdrops: [2]lipgloss.Color{"#11111b", "#24273a"},
	}

	CatppuccinLatte = Theme{
		Name:             "Catppuccin Latte",
		Text:             lipgloss.Color("#4c4f69"),
		Muted:            lipgloss.Color("#9ca0b0"),
		Accent:           lipgloss.Color("#ea76cb"),
		Selected:         lipgloss.Color("#bcc0cc"),
		Card:             lipgloss.Color("#e6e9ef"),
		Border:           lipgloss.Color("#dce0e8"),
		Error:            lipgloss.Color("#d20f39"),
		Heading:          lipgloss.Color("#1e66f5"),
		BookBackdrops:    [2]lipgloss.Color{"#eff1f5", "#e6e9ef"},
		ChapterBackdrops: [2]lipgloss.Color{"#dce0e8", "#ccd0da"},
	}

	Dracula = Theme{
		Name:             "Dracula",
		Text:             lipgloss.Color("#f8f8f2"),
		Muted:            lipgloss.Color("#6272a4"),
		Accent:           lipgloss.Color("#ff79c6"),
		Selected:         lipgloss.Color("#44475a"),
		Card:             lipgloss.Color("#343746"),
		Border:           lipgloss.Color("#44475a"),
		Error:            lipgloss.Color("#ff5555"),
		Heading:          lipgloss.Color("#bd93f9"),
		BookBackdrops:    [2]lipgloss.Color{"#282a36", "#21222c"},
		ChapterBackdrops: [2]lipgloss.Color{"#191a21", "#2f3142"},
	}

	SolarizedDark = Theme{
		Name:             "Solarized Dark",
		Text:             lipgloss.Color("#839496"),
		Muted:            lipgloss.Color("#586e75"),
		Accent:           lipgloss.Color("#d33682"),
		Selected:         lipgloss.Color("#0a4454"),
		Card:             lipgloss.Color("#073642"),
		Border:           lipgloss.Color("#073642"),
		Error:            lipgloss.Color("#dc322f"),
		Heading:          lipgloss.Color("#268bd2"),
		BookBackdrops:    [2]lipgloss.Color{"#002b36", "#01313d"},
		ChapterBackdrops: [2]lipgloss.Color{"#00212b", "#053340"},
	}
)

var themes = map[string]Theme{
	"catppuccin-mocha": CatppuccinMocha,
	"catppuccin-latte": CatppuccinLatte,
	"dracula":          Dracula,
	"solarized-dark":   SolarizedDark,
}

// Names returns the theme keys accepted by GetTheme, in display order.
func Names() []string {
	return []string{"catppuccin-mocha", "catppuccin-latte", "dracula", "solarized-dark"}
}

// GetTheme returns a theme by key, defaulting to Catppuccin Mocha if not found
func GetTheme(name string) Theme {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return CatppuccinMocha
}

// Backdrop returns the color of a picked variant (1 or 2). Any other variant
// falls back to the first.
func Backdrop(variants [2]lipgloss.Color, variant int) lipgloss.Color {
	if variant == 2 {
		return variants[1]
	}
	return variants[0]
}
