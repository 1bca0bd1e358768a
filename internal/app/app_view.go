package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/render"
	"github.com/zhubert/erwindb/internal/session"
	"github.com/zhubert/erwindb/internal/ui"
)

// updateSizes recomputes the layout after a resize or a change that shows
// or hides the search bar.
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.index.SetSize(ctx.TerminalWidth, ctx.IndexRows(m.showSearchBar())+ui.IndexHeaderHeight)
	m.searchInput.SetWidth(max(ctx.TerminalWidth-4, 1))
	if m.session != nil {
		m.session.Resize(ctx.TerminalWidth, ctx.ContentHeight)
	}
}

// showSearchBar reports whether the index shows a line for the query.
func (m *Model) showSearchBar() bool {
	return m.searching || m.index.ResultKind() != ui.ResultsNone
}

// updateChrome refreshes the header and footer for the current state.
func (m *Model) updateChrome() {
	switch m.page {
	case PageShow:
		q := m.session.Page().Question
		m.header.SetSubtitle(q.DisplayTitle())
		m.header.SetDetail(m.showDetail())
		m.footer.SetMode(ui.FooterShow)
		_, focused := m.session.FocusedLink()
		m.footer.SetShowContext(focused, m.session.ErwinCount() > 0, m.session.Dual())

	default:
		m.header.SetSubtitle(m.indexSubtitle())
		m.header.SetDetail(m.indexDetail())
		if m.searching {
			m.footer.SetMode(ui.FooterSearch)
		} else {
			m.footer.SetMode(ui.FooterIndex)
		}
		m.footer.SetIndexContext(m.index.ResultKind() != ui.ResultsNone, m.SemanticAvailable())
	}
}

func (m *Model) indexSubtitle() string {
	switch m.index.ResultKind() {
	case ui.ResultsTitle:
		return "titles matching " + m.index.Query()
	case ui.ResultsSemantic:
		return "similar to " + m.index.Query()
	default:
		col, desc := m.index.Sort()
		dir := "ascending"
		if desc {
			dir = "descending"
		}
		return fmt.Sprintf("by %s, %s", col, dir)
	}
}

func (m *Model) indexDetail() string {
	switch {
	case m.loading != 0:
		return fmt.Sprintf("loading %d…", m.loading)
	case m.semanticPending:
		return "searching…"
	case !m.loaded:
		return "loading…"
	case m.index.ResultKind() != ui.ResultsNone:
		return fmt.Sprintf("%d of %d", m.index.Len(), len(m.index.Questions()))
	default:
		return fmt.Sprintf("%d questions", m.index.Len())
	}
}

func (m *Model) showDetail() string {
	if m.loading != 0 {
		return fmt.Sprintf("loading %d…", m.loading)
	}
	q := m.session.Page().Question
	detail := fmt.Sprintf("%s · %s views", content.FormatScore(q.Score), content.FormatNumber(q.ViewCount))
	if m.session.Dual() {
		if a, ok := m.session.CurrentErwin(); ok {
			detail = fmt.Sprintf("Erwin %s · %s", content.FormatScore(a.Score), detail)
		}
	}
	return detail
}

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.updateChrome()
	ctx := ui.GetViewContext()

	var body string
	if m.page == PageShow && m.session != nil {
		body = m.renderShow(ctx.TerminalWidth, ctx.ContentHeight)
	} else {
		body = m.renderIndex()
	}
	body = lipgloss.NewStyle().Height(ctx.ContentHeight).MaxHeight(ctx.ContentHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) renderIndex() string {
	if m.loadErr != nil {
		return ui.StatusErrorStyle.Render(fmt.Sprintf("  Could not read the archive: %v", m.loadErr))
	}
	if !m.loaded {
		return ui.StatusLoadingStyle.Render("  Loading questions…")
	}

	var sb strings.Builder
	if m.showSearchBar() {
		sb.WriteString(m.renderSearchBar())
		sb.WriteString("\n")
	}
	sb.WriteString(m.index.View())
	return sb.String()
}

func (m *Model) renderSearchBar() string {
	if m.searching {
		return ui.SearchPromptStyle.Render(" / ") + m.searchInput.View()
	}
	prompt := " / "
	if m.index.ResultKind() == ui.ResultsSemantic {
		prompt = " ? "
	}
	hint := "  esc to clear"
	return ui.SearchPromptStyle.Render(prompt) + m.index.Query() + ui.SearchHintStyle.Render(hint)
}

func (m *Model) renderShow(width, height int) string {
	view := m.session.Render()
	if view.Side == nil {
		return paneView(m.session.Main(), view.Main, layout.PaneWidth(width, layout.Single), height).Render()
	}
	paneWidth := layout.PaneWidth(width, layout.Dual)
	left := paneView(m.session.Main(), view.Main, paneWidth, height).Render()
	right := paneView(m.session.Side(), view.Side, paneWidth, height).Render()
	return ui.JoinPanes(left, right, height, view.SideFocused)
}

func paneView(p *session.Pane, entry *render.Entry, width, height int) ui.PaneView {
	pv := ui.PaneView{Entry: entry, Scroll: p.Scroll(), Width: width, Height: height}
	if link, ok := p.FocusedLink(); ok {
		pv.Focused = &link
	}
	return pv
}
