package app

import "github.com/zhubert/erwindb/internal/ui/modals"

// Shortcut is one key binding listed in the help modal.
type Shortcut struct {
	Key         string // The key binding as typed (e.g. "ctrl+d")
	DisplayKey  string // Display name in help; defaults to Key
	Description string
	Category    string
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryIndex    = "Question list"
	CategorySearch   = "Searching"
	CategoryQuestion = "Question page"
	CategoryGeneral  = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryIndex,
	CategorySearch,
	CategoryQuestion,
	CategoryGeneral,
}

// ShortcutRegistry lists every shortcut the key handlers implement.
var ShortcutRegistry = []Shortcut{
	{Key: "j", DisplayKey: "j/k ↑/↓", Description: "Move selection", Category: CategoryIndex},
	{Key: "g", DisplayKey: "g/G", Description: "First / last question", Category: CategoryIndex},
	{Key: "space", DisplayKey: "space", Description: "Page down", Category: CategoryIndex},
	{Key: "ctrl+d", DisplayKey: "ctrl+d/u", Description: "Half page down / up", Category: CategoryIndex},
	{Key: "1", DisplayKey: "1-5", Description: "Sort by id, date, score, views, answers", Category: CategoryIndex},
	{Key: "enter", Description: "Open question", Category: CategoryIndex},
	{Key: "o", Description: "Open question on StackOverflow", Category: CategoryIndex},

	{Key: "/", Description: "Filter titles as you type", Category: CategorySearch},
	{Key: "?", Description: "Semantic search", Category: CategorySearch},
	{Key: "esc", Description: "Clear search results", Category: CategorySearch},

	{Key: "j", DisplayKey: "j/k ↑/↓", Description: "Scroll", Category: CategoryQuestion},
	{Key: "space", DisplayKey: "space/d u", Description: "Page down / up", Category: CategoryQuestion},
	{Key: "g", DisplayKey: "g/G", Description: "Top / bottom", Category: CategoryQuestion},
	{Key: "e", DisplayKey: "e/E", Description: "Next / previous answer by Erwin", Category: CategoryQuestion},
	{Key: "tab", DisplayKey: "tab/shift+tab", Description: "Focus next / previous link", Category: CategoryQuestion},
	{Key: "o", Description: "Open focused link, or the question", Category: CategoryQuestion},
	{Key: "y", Description: "Copy focused link", Category: CategoryQuestion},
	{Key: "q", DisplayKey: "q/b esc", Description: "Back", Category: CategoryQuestion},

	{Key: "t", Description: "Next color theme", Category: CategoryGeneral},
	{Key: "h", Description: "This help", Category: CategoryGeneral},
	{Key: "ctrl+c", Description: "Quit", Category: CategoryGeneral},
}

// helpSections groups ShortcutRegistry by category for the help modal.
func helpSections() []modals.HelpSection {
	var sections []modals.HelpSection
	for _, category := range categoryOrder {
		section := modals.HelpSection{Title: category}
		for _, s := range ShortcutRegistry {
			if s.Category != category {
				continue
			}
			key := s.DisplayKey
			if key == "" {
				key = s.Key
			}
			section.Shortcuts = append(section.Shortcuts, modals.HelpShortcut{Key: key, Desc: s.Description})
		}
		if len(section.Shortcuts) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}
