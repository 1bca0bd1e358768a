package navigator

import (
	"testing"

	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/markup"
)

func link(id int, url string, start, line, endLine int) layout.Link {
	return layout.Link{
		Link:    markup.Link{ID: markup.LinkID(id), URL: url, Text: url, Start: start, End: start + 1},
		Line:    line,
		EndLine: endLine,
	}
}

func sample() []layout.Link {
	return []layout.Link{
		link(1, "a", 0, 0, 0),
		link(2, "b", 3, 5, 6),
		link(3, "c", 7, 12, 12),
		link(4, "a", 9, 20, 20),
	}
}

func TestNew_Unfocused(t *testing.T) {
	n := New(sample())
	if _, ok := n.Current(); ok {
		t.Error("new navigator should be unfocused")
	}
	if n.Len() != 4 {
		t.Errorf("Len = %d, want 4", n.Len())
	}
}

func TestRebuild_Empty(t *testing.T) {
	n := Rebuild(nil, nil, 0)
	if _, ok := n.Current(); ok {
		t.Error("empty navigator should have no focus")
	}
	if _, ok := n.CycleNext(); ok {
		t.Error("cycling an empty navigator should report no link")
	}
	if _, ok := n.CyclePrevious(); ok {
		t.Error("cycling an empty navigator should report no link")
	}
}

func TestRebuild_Seed(t *testing.T) {
	tests := []struct {
		name string
		top  int
		want markup.LinkID
	}{
		{"top of document", 0, 1},
		{"inside a wrapped link", 6, 2},
		{"between links", 7, 3},
		{"past every link", 100, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, ok := Rebuild(sample(), nil, tt.top).Current()
			if !ok || cur.ID != tt.want {
				t.Errorf("focus = %v (%v), want link %d", cur.ID, ok, tt.want)
			}
		})
	}
}

func TestRebuild_PrefersPrevious(t *testing.T) {
	links := sample()

	prev := link(9, "a", 8, 0, 0)
	cur, _ := Rebuild(links, &prev, 0).Current()
	if cur.ID != 4 {
		t.Errorf("focus = %d, want the nearest link with the same URL (4)", cur.ID)
	}

	prev = link(9, "a", 1, 40, 40)
	cur, _ = Rebuild(links, &prev, 15).Current()
	if cur.ID != 1 {
		t.Errorf("focus = %d, want 1", cur.ID)
	}

	missing := link(9, "zzz", 0, 0, 0)
	cur, _ = Rebuild(links, &missing, 15).Current()
	if cur.ID != 4 {
		t.Errorf("focus = %d, want viewport seed 4", cur.ID)
	}
}

func TestCycle_Ring(t *testing.T) {
	links := sample()
	for start := range links {
		n := Rebuild(links, &links[start], 0)
		origin, _ := n.Current()

		for i := 0; i < n.Len(); i++ {
			n.CycleNext()
		}
		if cur, _ := n.Current(); cur.ID != origin.ID {
			t.Errorf("start %d: %d x next ended on %d", start, n.Len(), cur.ID)
		}

		for i := 0; i < n.Len(); i++ {
			n.CyclePrevious()
		}
		if cur, _ := n.Current(); cur.ID != origin.ID {
			t.Errorf("start %d: %d x previous ended on %d", start, n.Len(), cur.ID)
		}

		n.CycleNext()
		n.CyclePrevious()
		if cur, _ := n.Current(); cur.ID != origin.ID {
			t.Errorf("start %d: next then previous ended on %d", start, cur.ID)
		}
	}
}

func TestCycle_Wraps(t *testing.T) {
	n := Rebuild(sample(), nil, 100)
	if cur, _ := n.CycleNext(); cur.ID != 1 {
		t.Errorf("next after last = %d, want 1", cur.ID)
	}
	if cur, _ := n.CyclePrevious(); cur.ID != 4 {
		t.Errorf("previous before first = %d, want 4", cur.ID)
	}
}

func TestCycle_FromUnfocusedSeedsFromViewport(t *testing.T) {
	n := New(sample())
	n.SetViewportTop(10)
	if cur, ok := n.CycleNext(); !ok || cur.ID != 3 {
		t.Errorf("first next = %d, want 3", cur.ID)
	}

	n.Clear()
	if _, ok := n.Current(); ok {
		t.Error("Clear should drop focus")
	}
	n.SetViewportTop(0)
	if cur, _ := n.CyclePrevious(); cur.ID != 1 {
		t.Errorf("first previous = %d, want 1", cur.ID)
	}
}

func TestCycle_SplitLinkHits(t *testing.T) {
	doc := markup.Extract(`<p>aaaaaaa <a href="https://one">bbb ccc</a> and <a href="https://two">two</a></p>`)
	res := layout.Layout(doc, 10, layout.Single)

	hits := 0
	for _, l := range res.Lines {
		for _, h := range l.Hits {
			if h.Link == 1 {
				hits++
			}
		}
	}
	if hits != 2 {
		t.Fatalf("expected the first link to wrap into 2 hits, got %d", hits)
	}

	// Seeding from either line the first link touches focuses it, and the
	// next link is the same either way.
	for _, top := range []int{res.Links[0].Line, res.Links[0].EndLine} {
		n := Rebuild(res.Links, nil, top)
		if cur, _ := n.Current(); cur.ID != 1 {
			t.Fatalf("top %d: focus = %d, want 1", top, cur.ID)
		}
		if next, _ := n.CycleNext(); next.URL != "https://two" {
			t.Errorf("top %d: next = %q", top, next.URL)
		}
	}
}
