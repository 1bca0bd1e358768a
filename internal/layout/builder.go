package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zhubert/erwindb/internal/highlight"
	"github.com/zhubert/erwindb/internal/markup"
	"github.com/zhubert/erwindb/internal/style"
)

const (
	tabWidth = 4

	// Prefixes are only drawn when the pane is wider than this.
	minPrefixWidth = 4
)

type attr struct {
	style style.Style
	link  markup.LinkID
}

type position struct {
	line, col, endLine int
}

type builder struct {
	width int

	lines     []Line
	anchors   map[string]int
	positions map[markup.LinkID]position

	// The open line.
	cells     []Cell
	attrs     []attr
	col       int
	prefixLen int
	open      bool
	code      bool // keep trailing whitespace
	wrapped   bool // continues the previous line after a wrap

	started  bool
	prev     markup.Span
	block    markup.Block
	item     int
	bulleted int
	accent   bool // the block holds Erwin text; its gutter is accented
}

func newBuilder(width int) *builder {
	return &builder{
		width:     width,
		anchors:   make(map[string]int),
		positions: make(map[markup.LinkID]position),
	}
}

// separated reports whether a span's block is set off by blank lines.
func separated(sp markup.Span) bool {
	return sp.Block != markup.BlockNone || sp.Kind == markup.KindCodeBlock || sp.Kind == markup.KindRule
}

func (b *builder) add(sp markup.Span) {
	if !b.started || sp.BlockIndex != b.prev.BlockIndex {
		b.flush()
		if b.started && (separated(b.prev) || separated(sp)) {
			b.blank()
		}
		b.block, b.item = sp.Block, sp.Item
		b.accent = false
	}
	if sp.Style == style.Erwin {
		b.accent = true
	}
	b.started = true
	b.prev = sp

	if sp.Anchor != "" {
		b.anchors[sp.Anchor] = len(b.lines)
	}

	switch sp.Kind {
	case markup.KindBreak:
		if b.open {
			b.flush()
		} else {
			b.blank()
		}
	case markup.KindRule:
		b.flush()
		b.rule()
	case markup.KindCodeBlock:
		b.flush()
		b.codeBlock(sp)
	case markup.KindPlain, markup.KindInlineCode:
		b.prose(sp)
	}
}

func (b *builder) finish() {
	b.flush()
	for n := len(b.lines); n > 0 && len(b.lines[n-1].Cells) == 0; n-- {
		b.lines = b.lines[:n-1]
	}
}

// blank emits an empty separator line unless the previous line already is
// one or nothing has been emitted yet.
func (b *builder) blank() {
	if n := len(b.lines); n == 0 || len(b.lines[n-1].Cells) == 0 {
		return
	}
	b.lines = append(b.lines, Line{})
}

func (b *builder) rule() {
	n := min(b.width, MaxRuleWidth)
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Cluster: "─", Width: 1}
	}
	b.lines = append(b.lines, Line{
		Cells: cells,
		Runs:  []style.Run{{Start: 0, End: n, Style: style.Separator}},
	})
}

func proseStyle(sp markup.Span) style.Style {
	switch {
	case sp.Link != 0:
		return style.Link
	case sp.Style != style.Plain:
		return sp.Style
	case sp.Kind == markup.KindInlineCode:
		return style.InlineCode
	default:
		return style.Plain
	}
}

func (b *builder) prose(sp markup.Span) {
	a := attr{style: proseStyle(sp), link: sp.Link}
	text := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(sp.Text)

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		b.proseCell(Cell{Cluster: gr.Str(), Width: gr.Width()}, a)
	}
}

func (b *builder) proseCell(c Cell, a attr) {
	if c.Cluster == " " && b.wrapped && b.contentLen() == 0 {
		return
	}
	b.startLine()

	if b.col+c.Width <= b.width || b.contentLen() == 0 {
		b.put(c, a)
		if b.col > b.width {
			b.wrap()
		}
		return
	}

	if c.Cluster == " " {
		b.wrap()
		return
	}

	if k := b.breakPoint(); k >= 0 {
		carriedCells := append([]Cell(nil), b.cells[k+1:]...)
		carriedAttrs := append([]attr(nil), b.attrs[k+1:]...)
		b.cells = b.cells[:k]
		b.attrs = b.attrs[:k]
		b.wrap()
		b.startLine()
		for i := range carriedCells {
			b.put(carriedCells[i], carriedAttrs[i])
		}
	} else {
		b.wrap()
		b.startLine()
	}

	b.put(c, a)
	if b.col > b.width {
		b.wrap()
	}
}

// breakPoint returns the index of the last space on the open line whose
// column lies in the trailing 20% of the width, or -1. A break never leaves
// the line without content.
func (b *builder) breakPoint() int {
	minBreak := b.width - b.width/5
	best := -1
	col := 0
	for i, c := range b.cells {
		if i > b.prefixLen && c.Cluster == " " && col >= minBreak {
			best = i
		}
		col += c.Width
	}
	return best
}

func (b *builder) codeBlock(sp markup.Span) {
	text := strings.TrimSuffix(sp.Text, "\n")
	runs := highlight.Highlight(text, sp.Lang)
	ri := 0

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		from, _ := gr.Positions()
		for ri < len(runs)-1 && from >= runs[ri].End {
			ri++
		}
		st := style.Code
		if ri < len(runs) {
			st = runs[ri].Style
		}
		a := attr{style: st}

		switch cl := gr.Str(); cl {
		case "\n", "\r\n", "\r":
			b.startLine()
			b.code = true
			b.flush()
		case "\t":
			for range tabWidth {
				b.codeCell(Cell{Cluster: " ", Width: 1}, a)
			}
		default:
			b.codeCell(Cell{Cluster: cl, Width: gr.Width()}, a)
		}
	}
	b.flush()
}

func (b *builder) codeCell(c Cell, a attr) {
	b.startLine()
	b.code = true
	if b.col+c.Width > b.width && b.contentLen() > 0 {
		b.flush()
		b.startLine()
		b.code = true
	}
	b.put(c, a)
}

func (b *builder) prefix() (string, style.Style) {
	if b.width <= minPrefixWidth {
		return "", style.Plain
	}
	switch b.block {
	case markup.BlockListItem:
		if b.item != b.bulleted {
			b.bulleted = b.item
			return "• ", style.Muted
		}
		return "  ", style.Plain
	case markup.BlockBlockquote:
		if b.accent {
			return "│ ", style.ErwinAccent
		}
		return "│ ", style.Quote
	}
	return "", style.Plain
}

func (b *builder) startLine() {
	if b.open {
		return
	}
	b.open = true
	p, st := b.prefix()
	gr := uniseg.NewGraphemes(p)
	for gr.Next() {
		b.put(Cell{Cluster: gr.Str(), Width: gr.Width()}, attr{style: st})
	}
	b.prefixLen = len(b.cells)
}

func (b *builder) put(c Cell, a attr) {
	b.cells = append(b.cells, c)
	b.attrs = append(b.attrs, a)
	b.col += c.Width
}

func (b *builder) contentLen() int {
	if !b.open {
		return 0
	}
	return len(b.cells) - b.prefixLen
}

func (b *builder) wrap() {
	b.flush()
	b.wrapped = true
}

// flush closes the open line, if any.
func (b *builder) flush() {
	if !b.open {
		return
	}
	cells, attrs := b.cells, b.attrs
	if !b.code {
		for len(cells) > b.prefixLen && cells[len(cells)-1].Cluster == " " {
			cells = cells[:len(cells)-1]
			attrs = attrs[:len(attrs)-1]
		}
	}
	keep := b.code || len(cells) > b.prefixLen

	b.cells, b.attrs = nil, nil
	b.col, b.prefixLen = 0, 0
	b.open, b.code, b.wrapped = false, false, false

	if keep {
		b.emit(cells, attrs)
	}
}

func (b *builder) emit(cells []Cell, attrs []attr) {
	lineNo := len(b.lines)
	line := Line{Cells: cells}

	col := 0
	for i, c := range cells {
		a := attrs[i]
		if c.Width > 0 {
			if n := len(line.Runs); n > 0 && line.Runs[n-1].Style == a.style && line.Runs[n-1].End == col {
				line.Runs[n-1].End += c.Width
			} else {
				line.Runs = append(line.Runs, style.Run{Start: col, End: col + c.Width, Style: a.style})
			}
		}
		if a.link != 0 && c.Width > 0 {
			if n := len(line.Hits); n > 0 && line.Hits[n-1].Link == a.link && line.Hits[n-1].End == col {
				line.Hits[n-1].End += c.Width
			} else {
				line.Hits = append(line.Hits, LinkHit{Start: col, End: col + c.Width, Link: a.link})
			}
		}
		col += c.Width
	}

	for _, h := range line.Hits {
		pos, ok := b.positions[h.Link]
		if !ok {
			pos = position{line: lineNo, col: h.Start}
		}
		pos.endLine = lineNo
		b.positions[h.Link] = pos
	}

	b.lines = append(b.lines, line)
}
