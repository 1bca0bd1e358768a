package ui

import (
	"sync"

	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
	)
}

// IndexRows returns the number of table rows that fit on the index page.
// The search bar takes a line only while it is shown.
func (v *ViewContext) IndexRows(searchBar bool) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := v.ContentHeight - IndexHeaderHeight
	if searchBar {
		rows -= SearchBarHeight
	}
	return max(rows, 1)
}

// PaneWidth returns the width of one document pane.
func (v *ViewContext) PaneWidth(mode layout.PaneMode) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return layout.PaneWidth(v.TerminalWidth, mode)
}
