package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/render"
	"github.com/zhubert/erwindb/internal/style"
)

// PaneDivider separates the panes in dual mode; it is layout.DualGutter
// columns wide.
const PaneDivider = " │ "

// RenderLine draws one laid-out line, grouping cells that share a style.
func RenderLine(line layout.Line) string {
	var sb, seg strings.Builder
	current := style.Plain
	col := 0
	flush := func() {
		if seg.Len() > 0 {
			sb.WriteString(TextStyle(current).Render(seg.String()))
			seg.Reset()
		}
	}
	for _, c := range line.Cells {
		s := line.StyleAt(col)
		if s != current {
			flush()
			current = s
		}
		seg.WriteString(c.Cluster)
		col += c.Width
	}
	flush()
	return sb.String()
}

// RenderDocument draws every line of entry, unpadded. It is used for
// non-interactive output.
func RenderDocument(entry *render.Entry) string {
	if entry == nil {
		return ""
	}
	lines := make([]string, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = RenderLine(l)
	}
	return strings.Join(lines, "\n")
}

// PaneView is the visible window of a rendered document.
type PaneView struct {
	Entry  *render.Entry
	Scroll int
	Width  int
	Height int
	// Focused is the focused link, if any; its hits are highlighted.
	Focused *layout.Link
}

// Render draws the window as exactly Height lines of Width columns.
func (p PaneView) Render() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", p.Width)
	rows := make([]string, p.Height)
	for y := range rows {
		i := p.Scroll + y
		if p.Entry == nil || i < 0 || i >= len(p.Entry.Lines) {
			rows[y] = blank
			continue
		}
		line := p.Entry.Lines[i]
		pad := p.Width - line.Width()
		if pad < 0 {
			pad = 0
		}
		rows[y] = RenderLine(line) + strings.Repeat(" ", pad)
	}
	view := strings.Join(rows, "\n")

	if p.Focused == nil || p.Entry == nil {
		return view
	}
	return focusView(view, p.Width, p.Height, p.focusedHits(), p.Focused.URL)
}

// focusedHits returns the focused link's hits inside the window, in window
// coordinates.
func (p PaneView) focusedHits() []hitRect {
	var rects []hitRect
	last := min(p.Scroll+p.Height, len(p.Entry.Lines))
	for i := max(p.Scroll, 0); i < last; i++ {
		for _, h := range p.Entry.Lines[i].Hits {
			if h.Link == p.Focused.ID {
				rects = append(rects, hitRect{y: i - p.Scroll, start: h.Start, end: h.End})
			}
		}
	}
	return rects
}

// JoinPanes places two rendered panes side by side with a divider. The
// divider takes the focus color on the side of the focused pane.
func JoinPanes(left, right string, height int, rightFocused bool) string {
	ls := strings.Split(left, "\n")
	rs := strings.Split(right, "\n")
	leftWidth := 0
	for _, l := range ls {
		leftWidth = max(leftWidth, ansi.StringWidth(l))
	}

	divider := PaneDividerStyle.Render(PaneDivider)
	if rightFocused {
		divider = PaneDividerFocusedStyle.Render(PaneDivider)
	}

	rows := make([]string, height)
	for y := range rows {
		var l, r string
		if y < len(ls) {
			l = ls[y]
		}
		if y < len(rs) {
			r = rs[y]
		}
		if w := ansi.StringWidth(l); w < leftWidth {
			l += strings.Repeat(" ", leftWidth-w)
		}
		rows[y] = l + divider + r
	}
	return strings.Join(rows, "\n")
}
