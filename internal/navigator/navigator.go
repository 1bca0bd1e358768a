// Package navigator tracks keyboard focus over the links of a rendered
// document.
//
// Focus is an index into the link slice with explicit modulo arithmetic, so
// cycling is a ring in both directions. Indices are not stable across
// layouts; Rebuild carries focus over by URL and span position instead.
package navigator

import "github.com/zhubert/erwindb/internal/layout"

// Navigator holds the links of one layout and an optional focus.
type Navigator struct {
	links   []layout.Link
	focus   int
	focused bool
	top     int
}

// New returns an unfocused navigator over links.
func New(links []layout.Link) *Navigator {
	return &Navigator{links: links}
}

// Rebuild returns a navigator over links with focus seeded. When previous is
// non-nil and a link with the same URL exists, the one nearest previous in
// the document is focused. Otherwise the first link that ends at or below
// viewportTop is focused, or the last link when all of them are above it.
// An empty links slice yields an unfocused navigator.
func Rebuild(links []layout.Link, previous *layout.Link, viewportTop int) *Navigator {
	n := &Navigator{links: links, top: viewportTop}
	if len(links) == 0 {
		return n
	}

	n.focused = true
	if previous != nil {
		if i, ok := n.match(*previous); ok {
			n.focus = i
			return n
		}
	}
	n.focus = n.seed()
	return n
}

func (n *Navigator) match(prev layout.Link) (int, bool) {
	best, bestDist := -1, 0
	for i, l := range n.links {
		if l.URL != prev.URL {
			continue
		}
		d := l.Start - prev.Start
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

func (n *Navigator) seed() int {
	for i, l := range n.links {
		if l.EndLine >= n.top {
			return i
		}
	}
	return len(n.links) - 1
}

// Len returns the number of links.
func (n *Navigator) Len() int {
	return len(n.links)
}

// Links returns the links in navigation order.
func (n *Navigator) Links() []layout.Link {
	return n.links
}

// Index returns the focused index.
func (n *Navigator) Index() (int, bool) {
	return n.focus, n.focused
}

// Current returns the focused link.
func (n *Navigator) Current() (layout.Link, bool) {
	if !n.focused {
		return layout.Link{}, false
	}
	return n.links[n.focus], true
}

// CycleNext moves focus to the next link, wrapping after the last. From an
// unfocused state it focuses the link nearest the viewport top.
func (n *Navigator) CycleNext() (layout.Link, bool) {
	return n.cycle(1)
}

// CyclePrevious moves focus to the previous link, wrapping before the first.
// From an unfocused state it behaves like CycleNext.
func (n *Navigator) CyclePrevious() (layout.Link, bool) {
	return n.cycle(-1)
}

func (n *Navigator) cycle(step int) (layout.Link, bool) {
	count := len(n.links)
	if count == 0 {
		return layout.Link{}, false
	}
	if !n.focused {
		n.focused = true
		n.focus = n.seed()
	} else {
		n.focus = ((n.focus+step)%count + count) % count
	}
	return n.links[n.focus], true
}

// Clear drops focus.
func (n *Navigator) Clear() {
	n.focused = false
	n.focus = 0
}

// SetViewportTop records the first visible line, used to seed focus.
func (n *Navigator) SetViewportTop(top int) {
	n.top = top
}
