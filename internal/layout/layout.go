// Package layout wraps extracted markup to a terminal width.
//
// Layout works on grapheme clusters and their display widths (uniseg), so
// combining marks take no columns and wide CJK/emoji take two. Every
// rendered line records its cells, the style runs covering them in display
// columns, and the column ranges occupied by links. Nothing here knows about
// colors; the ui package maps semantic styles to the terminal.
package layout

import (
	"strings"

	"github.com/zhubert/erwindb/internal/markup"
	"github.com/zhubert/erwindb/internal/style"
)

// PaneMode selects how the viewport width is split.
type PaneMode int

const (
	Single PaneMode = iota
	Dual
)

func (m PaneMode) String() string {
	if m == Dual {
		return "dual"
	}
	return "single"
}

// DualGutter is the number of columns between the two panes in Dual mode.
const DualGutter = 3

// MaxRuleWidth caps the length of horizontal rules.
const MaxRuleWidth = 60

// PaneWidth returns the columns available to one pane.
func PaneWidth(width int, mode PaneMode) int {
	if mode == Dual {
		width = (width - DualGutter) / 2
	}
	if width < 0 {
		return 0
	}
	return width
}

// Cell is one grapheme cluster on a rendered line.
type Cell struct {
	Cluster string
	Width   int
}

// LinkHit is the column range [Start, End) a link occupies on one line.
type LinkHit struct {
	Start int
	End   int
	Link  markup.LinkID
}

// Line is one terminal row. Runs and Hits are in display columns.
type Line struct {
	Cells []Cell
	Runs  []style.Run
	Hits  []LinkHit
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, c := range l.Cells {
		w += c.Width
	}
	return w
}

// String returns the line text without styling.
func (l Line) String() string {
	var sb strings.Builder
	for _, c := range l.Cells {
		sb.WriteString(c.Cluster)
	}
	return sb.String()
}

// StyleAt returns the style covering column col.
func (l Line) StyleAt(col int) style.Style {
	for _, r := range l.Runs {
		if col >= r.Start && col < r.End {
			return r.Style
		}
	}
	return style.Plain
}

// Link is a document link positioned on the rendered grid: the line and
// column of its first hit and the line of its last.
type Link struct {
	markup.Link
	Line    int
	Col     int
	EndLine int
}

// Result is the output of Layout. Links keep document order and omit links
// that produced no hit. Anchors maps span anchors to the line they start on.
type Result struct {
	Lines   []Line
	Links   []Link
	Anchors map[string]int
}

// Layout wraps doc to the pane width derived from width and mode. A zero
// pane width or an empty document yields no lines.
func Layout(doc markup.Document, width int, mode PaneMode) Result {
	res := Result{Anchors: make(map[string]int)}
	pw := PaneWidth(width, mode)
	if pw == 0 || doc.IsEmpty() {
		return res
	}

	b := newBuilder(pw)
	for _, sp := range doc.Spans {
		b.add(sp)
	}
	b.finish()

	res.Lines = b.lines
	res.Anchors = b.anchors
	for _, l := range doc.Links {
		pos, ok := b.positions[l.ID]
		if !ok {
			continue
		}
		res.Links = append(res.Links, Link{Link: l, Line: pos.line, Col: pos.col, EndLine: pos.endLine})
	}
	return res
}
