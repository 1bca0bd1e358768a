package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestSemanticSearchState_Typing(t *testing.T) {
	s := NewSemanticSearchState()
	for _, r := range "lateral join" {
		var state ModalState
		state, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		s = state.(*SemanticSearchState)
	}
	if got := s.Query(); got != "lateral join" {
		t.Errorf("Query = %q, want %q", got, "lateral join")
	}

	view := ansi.Strip(s.Render())
	if !strings.Contains(view, "Semantic Search") {
		t.Errorf("render missing title:\n%s", view)
	}
	if !strings.Contains(view, "lateral join") {
		t.Errorf("render missing query:\n%s", view)
	}
}

func TestHelpState_Render(t *testing.T) {
	s := NewHelpStateFromSections([]HelpSection{
		{Title: "Index", Shortcuts: []HelpShortcut{{Key: "/", Desc: "search titles"}}},
		{Title: "Question", Shortcuts: []HelpShortcut{{Key: "tab", Desc: "next link"}}},
	})
	s.SetSize(60, 20)

	view := ansi.Strip(s.Render())
	for _, want := range []string{"Keyboard Shortcuts", "Index", "search titles", "Question", "next link"} {
		if !strings.Contains(view, want) {
			t.Errorf("render missing %q:\n%s", want, view)
		}
	}
	if s.IsFiltering() {
		t.Error("new help modal should not be filtering")
	}
}

func TestHelpState_SelectsFirstShortcut(t *testing.T) {
	s := NewHelpStateFromSections([]HelpSection{
		{Title: "Index", Shortcuts: []HelpShortcut{{Key: "j", Desc: "down"}}},
	})
	if got := s.list.Index(); got != 1 {
		t.Errorf("selected index = %d, want 1 (the first shortcut, after the heading)", got)
	}
}
