package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " erwindb"

// Header represents the top header bar
type Header struct {
	width    int
	subtitle string // e.g. the open question's title
	detail   string // muted trailer, e.g. the sort order
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetSubtitle sets the text shown after the title.
func (h *Header) SetSubtitle(subtitle string) {
	h.subtitle = subtitle
}

// SetDetail sets the muted text at the right edge.
func (h *Header) SetDetail(detail string) {
	h.detail = detail
}

// View renders the header
func (h *Header) View() string {
	left := headerTitle
	right := ""
	if h.detail != "" {
		right = h.detail + " "
	}

	room := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if h.subtitle != "" && room > 4 {
		left += runewidth.Truncate("  "+h.subtitle, room-1, "…")
	}

	paddingLen := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := left + strings.Repeat(" ", paddingLen) + right
	return h.renderGradient(fullContent, len([]rune(fullContent))-len([]rune(right)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content over a background fading from the
// theme's primary color to its background. Runes from mutedFrom on use the
// muted text color.
func (h *Header) renderGradient(content string, mutedFrom int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	titleLen := len([]rune(headerTitle))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleLen)

		if i >= mutedFrom {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
