// Package ui provides the visual components of the erwindb TUI.
//
// # Overview
//
// The ui package draws what the app package decides: it knows about themes,
// lipgloss styles and layout on screen, but owns no navigation state beyond
// the index table's selection.
//
// # Layout System
//
// The index page:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Column titles (1 line)                              │
//	│ Question rows                                       │
//	├─────────────────────────────────────────────────────┤
//	│ Search bar (1 line, while typing a title search)    │
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The show page is the header, one or two document panes and the footer.
// In dual mode the panes are separated by PaneDivider, whose width is
// layout.DualGutter.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: The application title, the current subtitle and a muted detail,
// over a gradient from the theme's primary color.
//
// Footer: Context-aware key bindings, or a flash message.
//
// Index: The sortable question table with fuzzy match highlighting.
//
// PaneView: Draws a window of a laid-out document. Semantic styles map to
// lipgloss styles through TextStyle; the focused link is repainted on an
// ultraviolet screen buffer.
//
// Modal: Popup dialogs from the modals package (semantic search, help).
//
// # Styles
//
// Styles are regenerated from the current Theme by SetTheme. Eight builtin
// themes are available; the config file stores the theme name.
package ui
