package modals

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// SemanticSearchState - State for the semantic search prompt
// =============================================================================

// SemanticSearchState collects a natural-language query. Enter and Esc are
// handled by the caller; every other key edits the input.
type SemanticSearchState struct {
	Input textinput.Model
}

func (*SemanticSearchState) modalState() {}

func (s *SemanticSearchState) Title() string { return "Semantic Search" }

func (s *SemanticSearchState) Help() string {
	return "Enter: search  Esc: cancel"
}

func (s *SemanticSearchState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	inputView := inputStyle.Render(s.Input.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, inputView, help)
}

func (s *SemanticSearchState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// Query returns the typed query.
func (s *SemanticSearchState) Query() string {
	return s.Input.Value()
}

// NewSemanticSearchState creates a focused prompt.
func NewSemanticSearchState() *SemanticSearchState {
	input := textinput.New()
	input.Placeholder = "Describe what you are looking for..."
	input.Prompt = "> "
	input.CharLimit = ModalInputCharLimit
	input.SetWidth(ModalInputWidth)
	input.Focus()

	return &SemanticSearchState{Input: input}
}
