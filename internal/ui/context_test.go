package ui

import (
	"testing"

	"github.com/zhubert/erwindb/internal/layout"
)

func TestGetViewContext_Singleton(t *testing.T) {
	ctx1 := GetViewContext()
	ctx2 := GetViewContext()

	if ctx1 != ctx2 {
		t.Error("GetViewContext should return the same instance")
	}
}

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(120, 40)

	if ctx.TerminalWidth != 120 {
		t.Errorf("Expected TerminalWidth 120, got %d", ctx.TerminalWidth)
	}
	if ctx.TerminalHeight != 40 {
		t.Errorf("Expected TerminalHeight 40, got %d", ctx.TerminalHeight)
	}

	expectedContent := 40 - HeaderHeight - FooterHeight
	if ctx.ContentHeight != expectedContent {
		t.Errorf("Expected ContentHeight %d, got %d", expectedContent, ctx.ContentHeight)
	}
}

func TestViewContext_MinimumSize(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(3, 1)

	if ctx.TerminalWidth != MinTerminalWidth || ctx.TerminalHeight != MinTerminalHeight {
		t.Errorf("size = %dx%d, want the minimum %dx%d",
			ctx.TerminalWidth, ctx.TerminalHeight, MinTerminalWidth, MinTerminalHeight)
	}
	if ctx.ContentHeight <= 0 {
		t.Errorf("ContentHeight = %d, want positive", ctx.ContentHeight)
	}
}

func TestViewContext_IndexRows(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(100, 30)

	content := 30 - HeaderHeight - FooterHeight
	if got := ctx.IndexRows(false); got != content-IndexHeaderHeight {
		t.Errorf("IndexRows(false) = %d, want %d", got, content-IndexHeaderHeight)
	}
	if got := ctx.IndexRows(true); got != content-IndexHeaderHeight-SearchBarHeight {
		t.Errorf("IndexRows(true) = %d, want %d", got, content-IndexHeaderHeight-SearchBarHeight)
	}
}

func TestViewContext_PaneWidth(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(163, 30)

	if got := ctx.PaneWidth(layout.Single); got != 163 {
		t.Errorf("single pane width = %d, want 163", got)
	}
	if got := ctx.PaneWidth(layout.Dual); got != 80 {
		t.Errorf("dual pane width = %d, want 80", got)
	}
}
