package ui

import "sync"

// Theme is a color palette. Colors are hex strings; empty optional colors
// fall back to Primary.
type Theme struct {
	Name string

	Primary   string // header gradient, selection, focus
	Secondary string // footer keys, search prompt

	Bg         string
	BgSelected string // selected index row (defaults to Primary)

	Text        string
	TextMuted   string
	TextInverse string // text on Primary or Link backgrounds

	Erwin       string // Erwin's prose
	ErwinAccent string // Erwin's markers and gutter

	Error   string
	Success string
	Info    string

	Border      string
	BorderFocus string // focused pane divider (defaults to Primary)

	Title      string
	Heading    string
	Link       string
	InlineCode string
	CodeBg     string

	// Syntax highlighting
	Keyword  string
	String   string
	Number   string
	Operator string
	Comment  string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName identifies a builtin theme; it is what the config file stores.
type ThemeName string

const (
	ThemeDarkPurple     ThemeName = "dark-purple"
	ThemeNord           ThemeName = "nord"
	ThemeDracula        ThemeName = "dracula"
	ThemeGruvbox        ThemeName = "gruvbox"
	ThemeTokyoNight     ThemeName = "tokyo-night"
	ThemeCatppuccin     ThemeName = "catppuccin"
	ThemeScienceFiction ThemeName = "science-fiction"
	ThemeLight          ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Erwin:       "#F59E0B",
		ErwinAccent: "#A78BFA",
		Error:       "#EF4444",
		Success:     "#4ADE80",
		Info:        "#06B6D4",
		Border:      "#374151",
		Title:       "#A78BFA",
		Heading:     "#C4B5FD",
		Link:        "#67E8F9",
		InlineCode:  "#67E8F9",
		CodeBg:      "#1E1E2E",
		Keyword:     "#C084FC",
		String:      "#4ADE80",
		Number:      "#F59E0B",
		Operator:    "#06B6D4",
		Comment:     "#9CA3AF",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Erwin:       "#EBCB8B",
		ErwinAccent: "#A3BE8C",
		Error:       "#BF616A",
		Success:     "#A3BE8C",
		Info:        "#81A1C1",
		Border:      "#4C566A",
		Title:       "#88C0D0",
		Heading:     "#81A1C1",
		Link:        "#88C0D0",
		InlineCode:  "#A3BE8C",
		CodeBg:      "#242933",
		Keyword:     "#B48EAD",
		String:      "#A3BE8C",
		Number:      "#EBCB8B",
		Operator:    "#81A1C1",
		Comment:     "#D8DEE9",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Erwin:       "#FFB86C",
		ErwinAccent: "#FF79C6",
		Error:       "#FF5555",
		Success:     "#50FA7B",
		Info:        "#8BE9FD",
		Border:      "#44475A",
		Title:       "#BD93F9",
		Heading:     "#FF79C6",
		Link:        "#8BE9FD",
		InlineCode:  "#50FA7B",
		CodeBg:      "#21222C",
		Keyword:     "#BD93F9",
		String:      "#50FA7B",
		Number:      "#FFB86C",
		Operator:    "#BD93F9",
		Comment:     "#6272A4",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Erwin:       "#FE8019",
		ErwinAccent: "#FABD2F",
		Error:       "#FB4934",
		Success:     "#B8BB26",
		Info:        "#83A598",
		Border:      "#504945",
		Title:       "#FE8019",
		Heading:     "#FABD2F",
		Link:        "#83A598",
		InlineCode:  "#B8BB26",
		CodeBg:      "#1D2021",
		Keyword:     "#D3869B",
		String:      "#B8BB26",
		Number:      "#FE8019",
		Operator:    "#FE8019",
		Comment:     "#A89984",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Erwin:       "#E0AF68",
		ErwinAccent: "#9ECE6A",
		Error:       "#F7768E",
		Success:     "#9ECE6A",
		Info:        "#7DCFFF",
		Border:      "#3B4261",
		Title:       "#7AA2F7",
		Heading:     "#BB9AF7",
		Link:        "#7DCFFF",
		InlineCode:  "#9ECE6A",
		CodeBg:      "#16161E",
		Keyword:     "#BB9AF7",
		String:      "#9ECE6A",
		Number:      "#E0AF68",
		Operator:    "#BB9AF7",
		Comment:     "#565F89",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin Mocha",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		Text:        "#CDD6F4",
		TextMuted:   "#6C7086",
		TextInverse: "#1E1E2E",
		Erwin:       "#FAB387",
		ErwinAccent: "#F5C2E7",
		Error:       "#F38BA8",
		Success:     "#A6E3A1",
		Info:        "#89DCEB",
		Border:      "#313244",
		Title:       "#CBA6F7",
		Heading:     "#F5C2E7",
		Link:        "#89DCEB",
		InlineCode:  "#A6E3A1",
		CodeBg:      "#181825",
		Keyword:     "#CBA6F7",
		String:      "#A6E3A1",
		Number:      "#FAB387",
		Operator:    "#CBA6F7",
		Comment:     "#6C7086",
	},
	ThemeScienceFiction: {
		Name:        "Science Fiction",
		Primary:     "#E50914",
		Secondary:   "#8B0000",
		Bg:          "#0A0A0A",
		BgSelected:  "#2D0A0A",
		Text:        "#E8E8E8",
		TextMuted:   "#666666",
		TextInverse: "#0A0A0A",
		Erwin:       "#FF6600",
		ErwinAccent: "#FF4444",
		Error:       "#FF0000",
		Success:     "#00AA00",
		Info:        "#AA0000",
		Border:      "#330000",
		BorderFocus: "#E50914",
		Title:       "#E50914",
		Heading:     "#CC0000",
		Link:        "#FF4444",
		InlineCode:  "#FF6666",
		CodeBg:      "#1A0000",
		Keyword:     "#8B0000",
		String:      "#00AA00",
		Number:      "#FF6600",
		Operator:    "#E50914",
		Comment:     "#666666",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Erwin:       "#D97706",
		ErwinAccent: "#7C3AED",
		Error:       "#DC2626",
		Success:     "#16A34A",
		Info:        "#0891B2",
		Border:      "#D1D5DB",
		BorderFocus: "#6366F1",
		Title:       "#6366F1",
		Heading:     "#7C3AED",
		Link:        "#0891B2",
		InlineCode:  "#059669",
		CodeBg:      "#F3F4F6",
		Keyword:     "#7C3AED",
		String:      "#16A34A",
		Number:      "#D97706",
		Operator:    "#6366F1",
		Comment:     "#6B7280",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeScienceFiction,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// NextTheme returns the theme after name in display order, wrapping around.
// Unknown names yield the first theme.
func NextTheme(name ThemeName) ThemeName {
	names := ThemeNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

var (
	themeMu          sync.RWMutex
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentThemeName
}

// SetTheme sets the active theme and regenerates all styles. Unknown names
// select DefaultTheme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	themeMu.Lock()
	currentTheme = BuiltinThemes[name]
	currentThemeName = name
	themeMu.Unlock()
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}
