package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/zhubert/erwindb/internal/style"
)

// element is an open supported tag on the extractor stack.
type element struct {
	tag string
	// ignored marks an anchor opened inside another anchor; its tags are
	// tracked for matching but it produces no link.
	ignored bool
}

// depths counts the open elements that style or contain text, so the
// context of a text token is known without walking the stack.
type depths struct {
	code    int
	strong  int
	emph    int
	heading int
	para    int
	anchor  int // anchors that produce a link
}

type extractor struct {
	doc   Document
	stack []element
	open  map[string]int // open elements per tag, ignored anchors included
	depth depths

	// containers holds the open list items and blockquotes, innermost last.
	containers []Block

	// tail collects text merged into the last span until flush stores it.
	tail strings.Builder

	block int // current BlockIndex
	items int // list items seen so far

	// lastSpace is true when the previously emitted prose ended in (or is
	// at a position equivalent to) whitespace.
	lastSpace bool

	link *Link // open anchor, nil when outside a link

	pre     *strings.Builder // non-nil inside <pre>
	preLang string

	skip int // depth inside <script>/<style>
}

// Extract parses an HTML fragment. It never fails: unknown tags are dropped
// with their text kept, unterminated elements close at end of input, and
// anything the tokenizer cannot make sense of comes through as text.
//
// The tokenizer is driven in a flat loop with an explicit element stack, so
// deeply nested input grows the heap and never the goroutine stack.
func Extract(src string) Document {
	x := &extractor{lastSpace: true, open: make(map[string]int)}
	z := html.NewTokenizer(strings.NewReader(src))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			x.finish()
			return x.doc
		case html.TextToken:
			x.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			var attrs map[string]string
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if attrs == nil {
					attrs = make(map[string]string, 2)
				}
				attrs[string(key)] = string(val)
			}
			x.start(string(name), attrs, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			x.end(string(name))
		}
	}
}

func (x *extractor) start(tag string, attrs map[string]string, selfClosing bool) {
	if x.skip > 0 {
		if tag == "script" || tag == "style" {
			x.skip++
		}
		return
	}

	if x.pre != nil {
		// Inside <pre> only a nested <code> class matters.
		if tag == "code" && x.preLang == "" {
			x.preLang = langHint(attrs["class"])
		}
		if tag == "br" {
			x.pre.WriteByte('\n')
		}
		return
	}

	switch tag {
	case "script", "style":
		if !selfClosing {
			x.skip = 1
		}
	case "br":
		x.emit(Span{Kind: KindBreak})
		x.lastSpace = true
	case "hr":
		x.boundary()
		x.emit(Span{Kind: KindRule, Style: style.Separator})
		x.boundary()
	case "pre":
		if selfClosing {
			return
		}
		x.boundary()
		x.pre = &strings.Builder{}
		x.preLang = langHint(attrs["class"])
	case "p", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol":
		if selfClosing {
			return
		}
		x.boundary()
		x.push(element{tag: tag})
	case "li":
		if selfClosing {
			return
		}
		x.boundary()
		x.items++
		x.push(element{tag: tag})
	case "em", "i", "strong", "b", "code":
		if !selfClosing {
			x.push(element{tag: tag})
		}
	case "a":
		if selfClosing {
			return
		}
		if x.link != nil || x.depth.anchor > 0 {
			x.push(element{tag: tag, ignored: true})
			return
		}
		x.push(element{tag: tag})
		if href := strings.TrimSpace(attrs["href"]); href != "" {
			x.link = &Link{
				ID:    LinkID(len(x.doc.Links) + 1),
				URL:   href,
				Start: len(x.doc.Spans),
			}
		}
	}
}

func (x *extractor) end(tag string) {
	if x.skip > 0 {
		if tag == "script" || tag == "style" {
			x.skip--
		}
		return
	}

	if x.pre != nil {
		if tag == "pre" {
			x.closePre()
		}
		return
	}

	// Pop up to and including the innermost matching element; anything
	// opened after it closes implicitly.
	if x.open[tag] == 0 {
		return
	}
	idx := -1
	for i := len(x.stack) - 1; i >= 0; i-- {
		if x.stack[i].tag == tag {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for len(x.stack) > idx {
		x.pop()
	}
}

func (x *extractor) push(e element) {
	x.stack = append(x.stack, e)
	x.track(e, 1)
}

func (x *extractor) pop() {
	e := x.stack[len(x.stack)-1]
	x.stack = x.stack[:len(x.stack)-1]
	x.track(e, -1)

	switch e.tag {
	case "a":
		if !e.ignored {
			x.closeLink()
		}
	case "p", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li":
		x.boundary()
	}
}

// track adjusts the open-element counters by d as e is pushed or popped.
func (x *extractor) track(e element, d int) {
	x.open[e.tag] += d
	switch e.tag {
	case "code":
		x.depth.code += d
	case "strong", "b":
		x.depth.strong += d
	case "em", "i":
		x.depth.emph += d
	case "h1", "h2", "h3", "h4", "h5", "h6":
		x.depth.heading += d
		x.depth.para += d
	case "p":
		x.depth.para += d
	case "a":
		if !e.ignored {
			x.depth.anchor += d
		}
	case "li", "blockquote":
		if d > 0 {
			b := BlockListItem
			if e.tag == "blockquote" {
				b = BlockBlockquote
			}
			x.containers = append(x.containers, b)
		} else {
			x.containers = x.containers[:len(x.containers)-1]
		}
	}
}

// boundary starts a new block segment.
func (x *extractor) boundary() {
	x.block++
	x.lastSpace = true
}

func (x *extractor) text(s string) {
	if x.skip > 0 {
		return
	}
	if x.pre != nil {
		x.pre.WriteString(strings.ReplaceAll(s, "\u00a0", " "))
		return
	}

	s = collapseSpace(s)
	if x.lastSpace {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}
	x.lastSpace = strings.HasSuffix(s, " ")

	kind := KindPlain
	if x.depth.code > 0 {
		kind = KindInlineCode
	}
	x.emit(Span{Text: s, Kind: kind, Style: x.inlineStyle()})
}

// emit appends sp with the current block context, merging it into the
// previous span when nothing but the text differs.
func (x *extractor) emit(sp Span) {
	sp.Block, sp.Item = x.blockKind()
	sp.BlockIndex = x.block
	if x.link != nil && (sp.Kind == KindPlain || sp.Kind == KindInlineCode) {
		sp.Link = x.link.ID
	}

	if n := len(x.doc.Spans); n > 0 && sp.Text != "" {
		prev := &x.doc.Spans[n-1]
		if prev.Text != "" && prev.Kind == sp.Kind && prev.Block == sp.Block &&
			prev.BlockIndex == sp.BlockIndex && prev.Item == sp.Item &&
			prev.Link == sp.Link && prev.Style == sp.Style && prev.Lang == sp.Lang &&
			(sp.Kind == KindPlain || sp.Kind == KindInlineCode) {
			if x.tail.Len() == 0 {
				x.tail.WriteString(prev.Text)
			}
			x.tail.WriteString(sp.Text)
			return
		}
	}
	x.flush()
	x.doc.Spans = append(x.doc.Spans, sp)
}

// flush stores merged text in the last span.
func (x *extractor) flush() {
	if x.tail.Len() == 0 {
		return
	}
	x.doc.Spans[len(x.doc.Spans)-1].Text = x.tail.String()
	x.tail.Reset()
}

// blockKind reports the container that decides the line prefix for text at
// the current position: the innermost list item or blockquote, otherwise a
// paragraph or heading, otherwise none.
func (x *extractor) blockKind() (Block, int) {
	if n := len(x.containers); n > 0 {
		if x.containers[n-1] == BlockListItem {
			return BlockListItem, x.items
		}
		return BlockBlockquote, 0
	}
	if x.depth.para > 0 {
		return BlockParagraph, 0
	}
	return BlockNone, 0
}

// inlineStyle ranks heading over strong over emphasis, whatever the nesting
// order.
func (x *extractor) inlineStyle() style.Style {
	switch {
	case x.depth.heading > 0:
		return style.Heading
	case x.depth.strong > 0:
		return style.Strong
	case x.depth.emph > 0:
		return style.Emphasis
	}
	return style.Plain
}

func (x *extractor) closeLink() {
	x.flush()
	l := x.link
	x.link = nil
	if l == nil {
		return
	}
	l.End = len(x.doc.Spans)

	var sb strings.Builder
	for _, sp := range x.doc.Spans[l.Start:l.End] {
		if sp.Link == l.ID {
			sb.WriteString(sp.Text)
		}
	}
	l.Text = strings.TrimSpace(sb.String())
	if l.Text == "" {
		for i := l.Start; i < l.End; i++ {
			if x.doc.Spans[i].Link == l.ID {
				x.doc.Spans[i].Link = 0
			}
		}
		return
	}
	l.QuestionID = QuestionID(l.URL)
	x.doc.Links = append(x.doc.Links, *l)
}

func (x *extractor) closePre() {
	code := x.pre.String()
	lang := x.preLang
	x.pre = nil
	x.preLang = ""

	code = strings.TrimSuffix(code, "\n")
	code = strings.TrimPrefix(code, "\n")
	if code != "" {
		x.emit(Span{Text: code, Kind: KindCodeBlock, Lang: lang, Style: style.Code})
	}
	x.boundary()
}

// finish closes whatever is still open at end of input.
func (x *extractor) finish() {
	if x.pre != nil {
		x.closePre()
	}
	for len(x.stack) > 0 {
		x.pop()
	}
	x.closeLink()
	x.flush()
}

// langHint extracts the highlighting language from a class attribute such as
// "lang-sql prettyprint-override" or "language-go". "lang-none" disables
// highlighting.
func langHint(class string) string {
	for _, c := range strings.Fields(class) {
		var lang string
		switch {
		case strings.HasPrefix(c, "lang-"):
			lang = strings.TrimPrefix(c, "lang-")
		case strings.HasPrefix(c, "language-"):
			lang = strings.TrimPrefix(c, "language-")
		default:
			continue
		}
		if lang == "none" {
			return ""
		}
		return strings.ToLower(lang)
	}
	return ""
}

// collapseSpace folds every run of whitespace (including non-breaking
// spaces) into a single ASCII space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\u00a0':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
