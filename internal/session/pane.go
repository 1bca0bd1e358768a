package session

import (
	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/navigator"
	"github.com/zhubert/erwindb/internal/render"
)

// Pane is one scrollable document view.
type Pane struct {
	doc    content.Document
	cache  *render.Cache
	entry  *render.Entry
	nav    *navigator.Navigator
	scroll int
	height int
}

// NewPane returns a pane showing doc. A nil cache gets a fresh one.
func NewPane(doc content.Document, cache *render.Cache) *Pane {
	if cache == nil {
		cache = render.NewCache(nil)
	}
	return &Pane{doc: doc, cache: cache, nav: navigator.New(nil)}
}

// SetDocument replaces the document. The scroll offset is kept and link
// focus is carried over by URL on the next Render.
func (p *Pane) SetDocument(doc content.Document) {
	p.doc = doc
}

// Document returns the document on display.
func (p *Pane) Document() content.Document {
	return p.doc
}

// Render lays the document out for width and mode and returns the entry.
// The navigator is rebuilt when the entry changed.
func (p *Pane) Render(width int, mode layout.PaneMode) *render.Entry {
	entry := p.cache.GetOrRender(p.doc.ID, width, mode, p.doc.Document)
	if entry == p.entry {
		return entry
	}
	p.entry = entry
	if prev, ok := p.nav.Current(); ok {
		p.nav = navigator.Rebuild(entry.Links, &prev, p.scroll)
	} else {
		p.nav = navigator.New(entry.Links)
	}
	p.clamp()
	return entry
}

// Entry returns the last rendered entry, or nil.
func (p *Pane) Entry() *render.Entry {
	return p.entry
}

// Lines returns the number of rendered lines.
func (p *Pane) Lines() int {
	if p.entry == nil {
		return 0
	}
	return len(p.entry.Lines)
}

// SetHeight sets the number of visible lines.
func (p *Pane) SetHeight(h int) {
	p.height = max(h, 0)
	p.clamp()
}

// Height returns the number of visible lines.
func (p *Pane) Height() int {
	return p.height
}

// Scroll returns the first visible line.
func (p *Pane) Scroll() int {
	return p.scroll
}

// ScrollBy moves the viewport by delta lines and drops link focus.
func (p *Pane) ScrollBy(delta int) {
	p.nav.Clear()
	p.scrollTo(p.scroll + delta)
}

// ScrollTop moves to the first line and drops link focus.
func (p *Pane) ScrollTop() {
	p.nav.Clear()
	p.scrollTo(0)
}

// ScrollBottom moves to the last page and drops link focus.
func (p *Pane) ScrollBottom() {
	p.nav.Clear()
	p.scrollTo(p.maxScroll())
}

// ScrollToAnchor moves an anchor's line to the top. It reports whether the
// anchor exists in the current layout.
func (p *Pane) ScrollToAnchor(anchor string) bool {
	if p.entry == nil {
		return false
	}
	line, ok := p.entry.Anchors[anchor]
	if !ok {
		return false
	}
	p.nav.Clear()
	p.scrollTo(line)
	return true
}

// FocusLink cycles link focus and scrolls the focused link into view.
func (p *Pane) FocusLink(forward bool) (layout.Link, bool) {
	p.nav.SetViewportTop(p.scroll)
	var (
		link layout.Link
		ok   bool
	)
	if forward {
		link, ok = p.nav.CycleNext()
	} else {
		link, ok = p.nav.CyclePrevious()
	}
	if !ok {
		return link, false
	}
	switch {
	case link.Line < p.scroll:
		p.scrollTo(link.Line)
	case p.height > 0 && link.EndLine >= p.scroll+p.height:
		p.scrollTo(link.Line - p.height/2)
	}
	return link, true
}

// FocusedLink returns the focused link.
func (p *Pane) FocusedLink() (layout.Link, bool) {
	return p.nav.Current()
}

// ClearFocus drops link focus and reports whether there was any.
func (p *Pane) ClearFocus() bool {
	_, had := p.nav.Current()
	p.nav.Clear()
	return had
}

func (p *Pane) scrollTo(line int) {
	p.scroll = line
	p.clamp()
}

func (p *Pane) maxScroll() int {
	return max(p.Lines()-p.height, 0)
}

func (p *Pane) clamp() {
	p.scroll = min(max(p.scroll, 0), p.maxScroll())
}
