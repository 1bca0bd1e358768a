package layout

import (
	"strings"
	"testing"
	"unicode"

	"github.com/zhubert/erwindb/internal/markup"
	"github.com/zhubert/erwindb/internal/style"
)

func lineTexts(res Result) []string {
	out := make([]string, len(res.Lines))
	for i, l := range res.Lines {
		out[i] = l.String()
	}
	return out
}

func equalLines(t *testing.T, got Result, want []string) {
	t.Helper()
	lines := lineTexts(got)
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(lines), lines, len(want), want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPaneWidth(t *testing.T) {
	tests := []struct {
		width int
		mode  PaneMode
		want  int
	}{
		{80, Single, 80},
		{83, Dual, 40},
		{160, Dual, 78},
		{2, Dual, 0},
		{0, Single, 0},
		{-5, Single, 0},
	}
	for _, tt := range tests {
		if got := PaneWidth(tt.width, tt.mode); got != tt.want {
			t.Errorf("PaneWidth(%d, %v) = %d, want %d", tt.width, tt.mode, got, tt.want)
		}
	}
}

func TestLayout_Degenerate(t *testing.T) {
	doc := markup.Extract("<p>hello</p>")
	if res := Layout(doc, 0, Single); len(res.Lines) != 0 {
		t.Errorf("width 0 produced %d lines", len(res.Lines))
	}
	if res := Layout(markup.Document{}, 80, Single); len(res.Lines) != 0 {
		t.Errorf("empty document produced %d lines", len(res.Lines))
	}
	if res := Layout(doc, 3, Dual); len(res.Lines) != 0 {
		t.Errorf("dual pane narrower than the gutter produced %d lines", len(res.Lines))
	}
}

func TestLayout_Paragraphs(t *testing.T) {
	res := Layout(markup.Extract("<p>Hello</p><p>World</p>"), 80, Single)
	equalLines(t, res, []string{"Hello", "", "World"})
}

func TestLayout_WrapPrefersTrailingSpace(t *testing.T) {
	doc := markup.Extract("<p>hello world foo</p>")

	// The space at column 11 lies in the trailing 20% of 13 columns.
	equalLines(t, Layout(doc, 13, Single), []string{"hello world", "foo"})

	// At 14 columns it does not, so the word is split.
	equalLines(t, Layout(doc, 14, Single), []string{"hello world fo", "o"})
}

func TestLayout_WrapDropsLeadingSpace(t *testing.T) {
	equalLines(t, Layout(markup.Extract("<p>abcde fghij</p>"), 5, Single), []string{"abcde", "fghij"})
}

func TestLayout_WidthBound(t *testing.T) {
	inputs := []string{
		"<p>The quick brown fox jumps over the lazy dog, repeatedly and without pause.</p>",
		"<p>日本語のテキストは二列の幅を持ちます。混在 mixed text 👍🏽 emoji</p>",
		"<ul><li>first item with some words</li><li>second <a href='x'>linked item text</a></li></ul>",
		"<blockquote><p>quoted text that is long enough to wrap more than once</p></blockquote>",
		"<pre><code class='lang-sql'>SELECT very_long_column_name, another_one FROM some_table WHERE x = 1;\n\tAND y = '日本'</code></pre>",
		"<p>é́ combining marks and zero​width spaces</p><hr>",
	}
	for _, in := range inputs {
		doc := markup.Extract(in)
		for width := 1; width <= 70; width++ {
			for _, mode := range []PaneMode{Single, Dual} {
				res := Layout(doc, width, mode)
				pw := PaneWidth(width, mode)
				for i, l := range res.Lines {
					if l.Width() > pw && len(l.Cells) != 1 {
						t.Fatalf("width %d %v: line %d %q is %d columns", width, mode, i, l.String(), l.Width())
					}
				}
			}
		}
	}
}

func TestLayout_OversizedCluster(t *testing.T) {
	res := Layout(markup.Extract("<p>日本</p>"), 1, Single)
	equalLines(t, res, []string{"日", "本"})
}

func TestLayout_WideClusters(t *testing.T) {
	res := Layout(markup.Extract("<p>日本語テキスト</p>"), 5, Single)
	equalLines(t, res, []string{"日本", "語テ", "キス", "ト"})
	for _, l := range res.Lines {
		for _, c := range l.Cells {
			if c.Width != 2 {
				t.Errorf("cell %q width = %d, want 2", c.Cluster, c.Width)
			}
		}
	}
}

func TestLayout_CombiningMarks(t *testing.T) {
	res := Layout(markup.Line("ae\u0301b", style.Plain), 80, Single)
	if len(res.Lines) != 1 {
		t.Fatalf("lines = %q", lineTexts(res))
	}
	cells := res.Lines[0].Cells
	if len(cells) != 3 || cells[1].Cluster != "e\u0301" || cells[1].Width != 1 {
		t.Errorf("cells = %+v", cells)
	}
}

func TestLayout_LinkSplitAcrossLines(t *testing.T) {
	doc := markup.Extract(`<p>aaaaaaa <a href="https://example.com">bbb ccc</a></p>`)
	res := Layout(doc, 10, Single)

	equalLines(t, res, []string{"aaaaaaa bb", "b ccc"})

	var hits []LinkHit
	for _, l := range res.Lines {
		hits = append(hits, l.Hits...)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	if hits[0].Link != hits[1].Link {
		t.Errorf("split hits carry different link ids: %+v", hits)
	}
	if hits[0] != (LinkHit{Start: 8, End: 10, Link: 1}) {
		t.Errorf("first hit = %+v", hits[0])
	}
	if hits[1] != (LinkHit{Start: 0, End: 5, Link: 1}) {
		t.Errorf("second hit = %+v", hits[1])
	}

	if len(res.Links) != 1 {
		t.Fatalf("links = %+v", res.Links)
	}
	l := res.Links[0]
	if l.Line != 0 || l.Col != 8 || l.EndLine != 1 {
		t.Errorf("positioned link = %+v", l)
	}
	if res.Lines[0].StyleAt(8) != style.Link {
		t.Errorf("link cells should be styled as links")
	}
}

func TestLayout_Lists(t *testing.T) {
	res := Layout(markup.Extract("<ul><li>one two three</li><li>four</li></ul>"), 10, Single)
	equalLines(t, res, []string{"• one two", "  three", "", "• four"})
}

func TestLayout_Blockquote(t *testing.T) {
	res := Layout(markup.Extract("<blockquote>abcdefg hij</blockquote>"), 10, Single)
	equalLines(t, res, []string{"│ abcdefg", "│ hij"})
	if res.Lines[0].StyleAt(0) != style.Quote {
		t.Errorf("quote gutter style = %v", res.Lines[0].StyleAt(0))
	}
}

func TestLayout_CodeBlock(t *testing.T) {
	doc := markup.Extract("<p>before</p><pre class=\"lang-go\"><code>x := 1\n\ty := \"s\"</code></pre><p>after</p>")
	res := Layout(doc, 40, Single)
	equalLines(t, res, []string{"before", "", "x := 1", "    y := \"s\"", "", "after"})

	if got := res.Lines[3].StyleAt(9); got != style.String {
		t.Errorf("string literal style = %v, want string", got)
	}
}

func TestLayout_CodeWrapsAtExactColumn(t *testing.T) {
	doc := markup.Extract("<pre>abc def ghi</pre>")
	equalLines(t, Layout(doc, 4, Single), []string{"abc ", "def ", "ghi"})
}

func nonSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestLayout_CodeRoundTrip(t *testing.T) {
	code := "SELECT a.id, b.name\nFROM accounts a\n\tJOIN billing b ON b.account_id = a.id -- 日本\nWHERE a.created_at > now() - interval '1 day';"
	doc := markup.Extract("<pre class=\"lang-sql\"><code>" + code + "</code></pre>")
	want := nonSpace(code)

	for _, w := range []int{7, 14, 23, 46} {
		var sb strings.Builder
		for _, l := range Layout(doc, w, Single).Lines {
			sb.WriteString(l.String())
		}
		if got := nonSpace(sb.String()); got != want {
			t.Errorf("width %d: got %q, want %q", w, got, want)
		}
	}
}

func TestLayout_Rule(t *testing.T) {
	for _, tt := range []struct{ width, want int }{{20, 20}, {100, MaxRuleWidth}} {
		res := Layout(markup.Rule(), tt.width, Single)
		if len(res.Lines) != 1 || res.Lines[0].Width() != tt.want {
			t.Errorf("width %d: rule lines = %q", tt.width, lineTexts(res))
		}
	}
}

func TestLayout_NoLeadingOrTrailingBlank(t *testing.T) {
	res := Layout(markup.Extract("<br><p>a</p><p></p><br>"), 20, Single)
	equalLines(t, res, []string{"a"})
}

func TestLayout_BlankCollapse(t *testing.T) {
	var doc markup.Document
	doc.Append(markup.Line("title", style.Title))
	doc.Append(markup.Blank())
	doc.Append(markup.Blank())
	doc.Append(markup.Extract("<p>body</p>"))
	equalLines(t, Layout(doc, 20, Single), []string{"title", "", "body"})
}

func TestLayout_IndentationKept(t *testing.T) {
	res := Layout(markup.Line("    [+3] indented", style.Plain), 40, Single)
	equalLines(t, res, []string{"    [+3] indented"})
}

func TestLayout_Anchors(t *testing.T) {
	var doc markup.Document
	doc.Append(markup.Extract("<p>question</p>"))
	header := markup.Line("ANSWER 1", style.Erwin)
	header.Spans[0].Anchor = "answer-7"
	doc.Append(header)
	doc.Append(markup.Extract("<p>body</p>"))

	res := Layout(doc, 40, Single)
	line, ok := res.Anchors["answer-7"]
	if !ok {
		t.Fatal("anchor not recorded")
	}
	if got := res.Lines[line].String(); got != "ANSWER 1" {
		t.Errorf("anchor points at %q", got)
	}
}

func TestLayout_LinksWithoutHitsDropped(t *testing.T) {
	doc := markup.Document{
		Spans: []markup.Span{{Text: "x"}},
		Links: []markup.Link{{ID: 1, URL: "u", Text: "gone"}},
	}
	if res := Layout(doc, 10, Single); len(res.Links) != 0 {
		t.Errorf("links = %+v, want none", res.Links)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	doc := markup.Extract("<p>some <a href='a'>text</a> with <code>code</code></p><pre class='lang-go'>func f() {}</pre>")
	a := Layout(doc, 17, Single)
	b := Layout(doc, 17, Single)
	if strings.Join(lineTexts(a), "\n") != strings.Join(lineTexts(b), "\n") {
		t.Error("layout is not deterministic")
	}
	for i := range a.Lines {
		if len(a.Lines[i].Runs) != len(b.Lines[i].Runs) {
			t.Fatalf("line %d runs differ", i)
		}
		for j := range a.Lines[i].Runs {
			if a.Lines[i].Runs[j] != b.Lines[i].Runs[j] {
				t.Errorf("line %d run %d differs", i, j)
			}
		}
	}
}
