package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/erwindb/internal/style"
)

// Color palette, derived from the current theme by regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorErwin       color.Color
	ColorErwinAccent color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
	ColorInfo        color.Color
)

// Header and footer styles
var (
	HeaderStyle     lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Index table styles
var (
	IndexHeaderStyle   lipgloss.Style
	IndexHeaderSorted  lipgloss.Style
	IndexRowStyle      lipgloss.Style
	IndexMutedStyle    lipgloss.Style
	IndexSelectedStyle lipgloss.Style
	IndexMatchStyle    lipgloss.Style
	IndexEmptyStyle    lipgloss.Style
)

// Search bar styles
var (
	SearchPromptStyle lipgloss.Style
	SearchHintStyle   lipgloss.Style
)

// Pane styles
var (
	PaneDividerStyle        lipgloss.Style
	PaneDividerFocusedStyle lipgloss.Style
	PaneTitleStyle          lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// textStyles maps semantic document styles to terminal styles.
var textStyles [style.Separator + 1]lipgloss.Style

func init() {
	regenerateStyles()
}

// TextStyle returns the terminal style for a semantic style.
func TextStyle(s style.Style) lipgloss.Style {
	if s < 0 || int(s) >= len(textStyles) {
		return textStyles[style.Plain]
	}
	return textStyles[s]
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := CurrentTheme()

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorErwin = lipgloss.Color(t.Erwin)
	ColorErwinAccent = lipgloss.Color(t.ErwinAccent)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorInfo = lipgloss.Color(t.Info)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	IndexHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextMuted)

	IndexHeaderSorted = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	IndexRowStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	IndexMutedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	IndexSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(ColorText).
		Bold(true)

	IndexMatchStyle = lipgloss.NewStyle().
		Foreground(ColorErwin).
		Underline(true)

	IndexEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		Padding(1, 2)

	SearchPromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	SearchHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	PaneDividerStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	PaneDividerFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorBorderFocus)

	PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorErwinAccent)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	textStyles = [...]lipgloss.Style{
		style.Plain:       fg(t.Text),
		style.Keyword:     fg(t.Keyword).Bold(true),
		style.String:      fg(t.String),
		style.Comment:     fg(t.Comment).Italic(true),
		style.Number:      fg(t.Number),
		style.Operator:    fg(t.Operator),
		style.Code:        fg(t.Text),
		style.InlineCode:  fg(t.InlineCode).Background(lipgloss.Color(t.CodeBg)),
		style.Strong:      fg(t.Text).Bold(true),
		style.Emphasis:    fg(t.Text).Italic(true),
		style.Quote:       fg(t.TextMuted).Italic(true),
		style.Link:        fg(t.Link).Underline(true),
		style.LinkFocused: fg(t.TextInverse).Background(lipgloss.Color(t.Link)).Bold(true),
		style.Erwin:       fg(t.Erwin),
		style.ErwinAccent: fg(t.ErwinAccent).Bold(true),
		style.Title:       fg(t.Title).Bold(true),
		style.Heading:     fg(t.Heading).Bold(true),
		style.Muted:       fg(t.TextMuted),
		style.Separator:   fg(t.Border),
	}

	refreshModalStyles()
}
