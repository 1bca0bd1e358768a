// Package markup turns the bounded HTML dialect used by StackOverflow post
// bodies into a flat sequence of styled spans plus the hyperlinks they carry.
//
// The output is a tagged union rather than a tree: every span records its
// inline kind (plain text, inline code, code block, break, rule) and the block
// it belongs to (paragraph, list item, blockquote). The layout engine switches
// on these fields exhaustively; nothing here knows about terminal width.
package markup

import "github.com/zhubert/erwindb/internal/style"

// Kind is the inline kind of a span.
type Kind int

const (
	KindPlain Kind = iota
	KindInlineCode
	KindCodeBlock
	KindBreak // forced line break; carries no text
	KindRule  // horizontal rule; carries no text
)

// Block is the block-level container a span belongs to.
type Block int

const (
	BlockNone Block = iota
	BlockParagraph
	BlockListItem
	BlockBlockquote
)

// LinkID identifies a link within one document. Zero means "no link"; real
// ids start at 1 and follow document order.
type LinkID int

// Span is a run of text with a single semantic kind.
type Span struct {
	Text string
	Kind Kind
	// Lang is the language hint of a code block ("" when absent).
	Lang string

	Block Block
	// BlockIndex changes whenever a block element opens or closes. It never
	// decreases along a document.
	BlockIndex int
	// Item is the ordinal of the enclosing list item, 0 outside lists.
	Item int

	Link LinkID
	// Style overrides the default style derived from Kind. Plain means none.
	Style style.Style
	// Anchor names the span so the layout can report the line it lands on.
	Anchor string
}

// Link is a hyperlink extracted from an anchor element.
type Link struct {
	ID   LinkID
	URL  string
	Text string
	// Start and End delimit the spans rendering the anchor text: [Start, End).
	Start int
	End   int
	// QuestionID is set when URL points at a StackOverflow question.
	QuestionID int64
}

// Document is the extractor output: spans in reading order and links in
// navigation order.
type Document struct {
	Spans []Span
	Links []Link
}

// IsEmpty reports whether the document has nothing to render.
func (d Document) IsEmpty() bool {
	return len(d.Spans) == 0
}

// Append adds other to the end of d, renumbering other's link ids, block
// indices, list items and span ranges so they stay unique in the result.
func (d *Document) Append(other Document) {
	linkOffset := LinkID(len(d.Links))
	spanOffset := len(d.Spans)
	blockOffset, itemOffset := d.next()

	for _, sp := range other.Spans {
		if sp.Link != 0 {
			sp.Link += linkOffset
		}
		sp.BlockIndex += blockOffset
		if sp.Item != 0 {
			sp.Item += itemOffset
		}
		d.Spans = append(d.Spans, sp)
	}
	for _, l := range other.Links {
		l.ID += linkOffset
		l.Start += spanOffset
		l.End += spanOffset
		d.Links = append(d.Links, l)
	}
}

// next returns the first block index and list item ordinal that are free
// after the last span of d.
func (d *Document) next() (block, item int) {
	if len(d.Spans) == 0 {
		return 0, 0
	}
	for _, sp := range d.Spans {
		if sp.Item > item {
			item = sp.Item
		}
	}
	return d.Spans[len(d.Spans)-1].BlockIndex + 1, item
}

// Line returns a one-span document holding text on its own line.
func Line(text string, st style.Style) Document {
	return Document{Spans: []Span{{Text: text, Style: st}}}
}

// Blank returns a document that renders as a single empty line.
func Blank() Document {
	return Document{Spans: []Span{{Kind: KindBreak}}}
}

// Rule returns a document holding a horizontal rule.
func Rule() Document {
	return Document{Spans: []Span{{Kind: KindRule, Style: style.Separator}}}
}
