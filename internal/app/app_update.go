package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/keys"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/ui"
	"github.com/zhubert/erwindb/internal/ui/modals"
)

// mouseWheelLines is how far one wheel notch scrolls.
const mouseWheelLines = 3

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case QuestionsLoadedMsg:
		return m.handleQuestionsLoaded(msg)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case SemanticResultsMsg:
		return m.handleSemanticResults(msg)

	case BrowserOpenedMsg:
		if msg.Err != nil {
			logger.WithComponent("app").Warn("failed to open browser", "url", msg.URL, "error", msg.Err)
			return m, m.ShowFlashError(fmt.Sprintf("Failed to open %s: %v", msg.URL, msg.Err))
		}
		return m, nil

	case ui.FlashTickMsg:
		// Check if flash message has expired
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		// Flash still active, continue ticking
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil
	}

	// Blink and other input messages
	var cmds []tea.Cmd
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
	}
	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress routes a key to the modal, the search input or the page.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keys.CtrlC {
		return m, tea.Quit
	}
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}
	if m.page == PageShow {
		return m.handleShowKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleIndexKey(msg)
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch s := m.modal.State.(type) {
	case *modals.SemanticSearchState:
		switch key {
		case keys.Escape:
			m.modal.Hide()
			return m, nil
		case keys.Enter:
			query := strings.TrimSpace(s.Query())
			if query == "" {
				m.modal.SetError("Type what you are looking for first")
				return m, nil
			}
			m.modal.Hide()
			return m, m.runSemanticSearch(query)
		}

	case *modals.HelpState:
		if !s.IsFiltering() && (key == keys.Escape || key == "q" || key == "h") {
			m.modal.Hide()
			return m, nil
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleSearchKey edits the title search. Every edit refilters the index.
func (m *Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.stopSearch()
		m.index.ClearResults()
		m.updateSizes()
		return m, nil

	case keys.Enter:
		m.searching = false
		m.searchInput.Blur()
		if m.searchInput.Value() == "" {
			m.index.ClearResults()
		}
		m.updateSizes()
		return m, nil

	case keys.Up, keys.Down:
		// Move through the live results without leaving the input.
		if msg.String() == keys.Up {
			m.index.MoveBy(-1)
		} else {
			m.index.MoveBy(1)
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.applyTitleSearch()
	}
	return m, cmd
}

func (m *Model) startSearch() tea.Cmd {
	m.searching = true
	if m.index.ResultKind() == ui.ResultsTitle {
		m.searchInput.SetValue(m.index.Query())
	} else {
		m.searchInput.SetValue("")
	}
	m.searchInput.CursorEnd()
	m.updateSizes()
	return m.searchInput.Focus()
}

func (m *Model) stopSearch() {
	m.searching = false
	m.searchInput.Blur()
	m.searchInput.SetValue("")
}

func (m *Model) handleIndexKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	page := m.index.VisibleRows()
	switch key := msg.String(); key {
	case "q":
		if m.clearIndexResults() {
			return m, nil
		}
		return m, tea.Quit

	case keys.Escape:
		m.clearIndexResults()

	case "/":
		return m, m.startSearch()

	case "?":
		if !m.SemanticAvailable() {
			return m, m.ShowFlashWarning(m.semanticUnavailableReason())
		}
		if m.semanticPending {
			return m, m.ShowFlashInfo("A semantic search is already running")
		}
		m.modal.Show(modals.NewSemanticSearchState())

	case "h":
		m.modal.Show(modals.NewHelpStateFromSections(helpSections()))

	case "t":
		return m, m.cycleTheme()

	case "j", keys.Down:
		m.index.MoveBy(1)
	case "k", keys.Up:
		m.index.MoveBy(-1)
	case "g", keys.Home:
		m.index.Top()
	case "G", keys.End:
		m.index.Bottom()
	case keys.Space, keys.PgDown:
		m.index.MoveBy(page)
	case keys.PgUp:
		m.index.MoveBy(-page)
	case keys.CtrlD:
		m.index.MoveBy(max(page/2, 1))
	case keys.CtrlU:
		m.index.MoveBy(-max(page/2, 1))

	case "1", "2", "3", "4", "5":
		// Sorting applies to the full list, so a search filter is dropped.
		m.clearIndexResults()
		m.index.ToggleSort(ui.SortColumn(key[0] - '1'))

	case keys.Enter:
		if q, ok := m.index.Selected(); ok {
			return m, m.openQuestion(q.ID, 0)
		}

	case "o":
		if q, ok := m.index.Selected(); ok {
			return m, m.openBrowser(content.QuestionURL(q.ID))
		}
	}
	return m, nil
}

// clearIndexResults drops any search filter and reports whether there was
// one.
func (m *Model) clearIndexResults() bool {
	m.stopSearch()
	cleared := m.index.ClearResults()
	m.updateSizes()
	return cleared
}

func (m *Model) handleShowKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	pane := m.session.Active()
	page := max(pane.Height(), 1)

	switch msg.String() {
	case keys.Escape:
		if m.session.ClearFocus() {
			return m, nil
		}
		return m, m.goBack()
	case "q", "b", keys.Backspace:
		return m, m.goBack()

	case "j", keys.Down:
		pane.ScrollBy(1)
	case "k", keys.Up:
		pane.ScrollBy(-1)
	case keys.Space, "d", keys.PgDown:
		pane.ScrollBy(page)
	case "u", keys.PgUp:
		pane.ScrollBy(-page)
	case keys.CtrlD:
		pane.ScrollBy(max(page/2, 1))
	case keys.CtrlU:
		pane.ScrollBy(-max(page/2, 1))
	case "g", keys.Home:
		pane.ScrollTop()
	case "G", keys.End:
		pane.ScrollBottom()

	case "e", "E":
		if m.session.ErwinCount() == 0 {
			return m, m.ShowFlashInfo("No answers by Erwin on this question")
		}
		if msg.String() == "e" {
			m.session.NextErwin()
		} else {
			m.session.PrevErwin()
		}

	case keys.Tab, keys.ShiftTab:
		// Link positions come from the current layout.
		m.session.Render()
		if _, ok := m.session.FocusLink(msg.String() == keys.Tab); !ok {
			return m, m.ShowFlashInfo("No links on this page")
		}

	case "o":
		return m, m.openFocused()

	case "y":
		return m, m.copyFocusedLink()

	case "h":
		m.modal.Show(modals.NewHelpStateFromSections(helpSections()))

	case "t":
		return m, m.cycleTheme()
	}
	return m, nil
}

// openFocused follows the focused link: questions in the archive open in
// place, anything else in the browser. Without a focused link the question
// itself opens in the browser.
func (m *Model) openFocused() tea.Cmd {
	link, ok := m.session.FocusedLink()
	if !ok {
		return m.openBrowser(content.QuestionURL(m.session.QuestionID()))
	}
	if id := link.QuestionID; id != 0 && m.known[id] {
		if id == m.session.QuestionID() {
			return m.ShowFlashInfo("That link points at this question")
		}
		return m.openQuestion(id, m.session.QuestionID())
	}
	return m.openBrowser(link.URL)
}

// copyFocusedLink puts the focused link's URL on the clipboard. The terminal
// clipboard sequence is sent as well, for sessions without a native
// clipboard.
func (m *Model) copyFocusedLink() tea.Cmd {
	link, ok := m.session.FocusedLink()
	if !ok {
		return m.ShowFlashInfo("Focus a link with tab first")
	}
	if err := m.copyText(link.URL); err != nil {
		logger.WithComponent("app").Warn("native clipboard failed", "error", err)
	}
	return tea.Batch(tea.SetClipboard(link.URL), m.ShowFlashSuccess("Copied "+link.URL))
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m, nil
	}
	delta := 0
	switch msg.Button {
	case tea.MouseWheelUp:
		delta = -mouseWheelLines
	case tea.MouseWheelDown:
		delta = mouseWheelLines
	default:
		return m, nil
	}

	if m.page == PageShow && m.session != nil {
		pane := m.session.Main()
		if m.session.Dual() && msg.X > m.width/2 {
			pane = m.session.Side()
		}
		pane.ScrollBy(delta)
		return m, nil
	}
	m.index.MoveBy(delta)
	return m, nil
}
