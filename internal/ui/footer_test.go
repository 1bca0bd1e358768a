package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestFooter_IndexBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(160)

	f.SetIndexContext(false, false)
	view := ansi.Strip(f.View())
	if !strings.Contains(view, "quit") {
		t.Errorf("index footer should offer quit: %q", view)
	}
	if strings.Contains(view, "semantic") {
		t.Errorf("semantic search hidden when unavailable: %q", view)
	}

	f.SetIndexContext(true, true)
	view = ansi.Strip(f.View())
	if !strings.Contains(view, "clear search") || !strings.Contains(view, "semantic search") {
		t.Errorf("footer with results = %q", view)
	}
}

func TestFooter_ShowBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(160)
	f.SetMode(FooterShow)

	f.SetShowContext(false, false, false)
	view := ansi.Strip(f.View())
	if !strings.Contains(view, "open in browser") || strings.Contains(view, "erwin") {
		t.Errorf("plain show footer = %q", view)
	}

	f.SetShowContext(true, true, true)
	view = ansi.Strip(f.View())
	for _, want := range []string{"open link", "copy link", "unfocus", "next erwin"} {
		if !strings.Contains(view, want) {
			t.Errorf("show footer missing %q: %q", want, view)
		}
	}
}

func TestFooter_SearchBindings(t *testing.T) {
	f := NewFooter()
	f.SetMode(FooterSearch)
	got := f.Bindings()
	if len(got) == 0 || got[0].Key != "enter" {
		t.Errorf("search bindings = %+v", got)
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Test error message", FlashError)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Test error message" {
		t.Errorf("Expected text 'Test error message', got %q", footer.flashMessage.Text)
	}
	if footer.flashMessage.Type != FlashError {
		t.Errorf("Expected type FlashError, got %v", footer.flashMessage.Type)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Expected duration %v, got %v", DefaultFlashDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Not expired", FlashInfo)
	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "Expired",
		Type:      FlashInfo,
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			view := footer.View()
			if !strings.Contains(view, tt.expectedIcon) {
				t.Errorf("Expected %s flash to contain icon %q", tt.name, tt.expectedIcon)
			}
			if strings.Contains(ansi.Strip(view), "quit") {
				t.Error("flash should replace the bindings")
			}
		})
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}
