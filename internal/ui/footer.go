package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterMode selects the set of bindings shown.
type FooterMode int

const (
	FooterIndex FooterMode = iota
	FooterSearch
	FooterShow
)

// FlashType is the severity of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays up.
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient message that replaces the key bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry.
type FlashTickMsg time.Time

// FlashTick returns a command that fires once a second.
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	mode         FooterMode
	hasResults   bool // index shows search results
	semantic     bool // semantic search is available
	linkFocused  bool // show page has a focused link
	erwinAnswers bool // the open question has answers by Erwin
	dual         bool // the Erwin side pane is open
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetMode selects the page the bindings describe.
func (f *Footer) SetMode(mode FooterMode) {
	f.mode = mode
}

// SetIndexContext updates the conditional index bindings.
func (f *Footer) SetIndexContext(hasResults, semantic bool) {
	f.hasResults = hasResults
	f.semantic = semantic
}

// SetShowContext updates the conditional show page bindings.
func (f *Footer) SetShowContext(linkFocused, erwinAnswers, dual bool) {
	f.linkFocused = linkFocused
	f.erwinAnswers = erwinAnswers
	f.dual = dual
}

// SetFlash shows a flash message for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is shown.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the bindings for the current mode and context.
func (f *Footer) Bindings() []KeyBinding {
	switch f.mode {
	case FooterSearch:
		return []KeyBinding{
			{Key: "enter", Desc: "search"},
			{Key: "esc", Desc: "cancel"},
			{Key: "ctrl+w", Desc: "delete word"},
			{Key: "ctrl+u", Desc: "clear"},
		}

	case FooterShow:
		bindings := []KeyBinding{
			{Key: "j/k", Desc: "scroll"},
			{Key: "tab", Desc: "next link"},
		}
		if f.linkFocused {
			bindings = append(bindings,
				KeyBinding{Key: "o", Desc: "open link"},
				KeyBinding{Key: "y", Desc: "copy link"},
				KeyBinding{Key: "esc", Desc: "unfocus"},
			)
		} else {
			bindings = append(bindings, KeyBinding{Key: "o", Desc: "open in browser"})
		}
		if f.erwinAnswers {
			desc := "erwin"
			if f.dual {
				desc = "next erwin"
			}
			bindings = append(bindings, KeyBinding{Key: "e/E", Desc: desc})
		}
		return append(bindings, KeyBinding{Key: "q", Desc: "back"})

	default:
		bindings := []KeyBinding{
			{Key: "j/k", Desc: "move"},
			{Key: "enter", Desc: "open"},
			{Key: "/", Desc: "search titles"},
		}
		if f.semantic {
			bindings = append(bindings, KeyBinding{Key: "?", Desc: "semantic search"})
		}
		bindings = append(bindings,
			KeyBinding{Key: "1-5", Desc: "sort"},
			KeyBinding{Key: "t", Desc: "theme"},
		)
		if f.hasResults {
			return append(bindings, KeyBinding{Key: "esc", Desc: "clear search"})
		}
		return append(bindings, KeyBinding{Key: "q", Desc: "quit"})
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	var color = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, color = "✕", ColorError
	case FlashWarning:
		icon, color = "⚠", ColorErwin
	case FlashSuccess:
		icon, color = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	return lipgloss.NewStyle().Foreground(color).Render(icon + " " + f.flashMessage.Text)
}
