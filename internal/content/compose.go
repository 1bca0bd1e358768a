package content

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/zhubert/erwindb/internal/markup"
	"github.com/zhubert/erwindb/internal/style"
)

// Document is a composed page: the markup to lay out plus a fingerprint of
// its inputs that the render cache keys on.
type Document struct {
	markup.Document
	ID uint64
	// ErwinAnchors names the header anchor of every Erwin answer in the
	// document, in order.
	ErwinAnchors []string
}

// Options controls question composition.
type Options struct {
	// HideErwin omits Erwin's answers; they are shown in the side pane.
	HideErwin bool
}

// AnswerAnchor returns the anchor of an answer's header.
func AnswerAnchor(a Answer) string {
	return "answer-" + strconv.FormatInt(a.ID, 10)
}

// BuildQuestion composes the question page.
func BuildQuestion(page Page, opts Options) Document {
	q := page.Question
	c := newComposer("question", q.ID, opts.HideErwin)

	c.line(q.DisplayTitle(), style.Title)
	c.line("stackoverflow.com/questions/"+strconv.FormatInt(q.ID, 10), style.Muted)
	c.line(fmt.Sprintf("Asked by %s on %s  |  %d votes  |  %s views",
		q.AuthorName, FormatDate(q.CreationDate), q.Score, FormatNumber(q.ViewCount)), style.Muted)
	c.rule()
	c.line("QUESTION", style.Heading)
	c.blank()
	c.body(q.Body, false)
	c.comments(page.QuestionComments)

	for i, a := range page.Answers {
		erwin := IsErwin(a.AuthorName)
		if erwin && opts.HideErwin {
			continue
		}
		c.rule()
		c.answerHeader(fmt.Sprintf("ANSWER %d", i+1), a, erwin)
		c.body(a.Body, erwin)
		c.comments(page.CommentsFor(i))
	}
	c.rule()
	return c.doc
}

// BuildErwin composes the side pane for one of Erwin's answers.
func BuildErwin(a Answer, comments []Comment) Document {
	c := newComposer("erwin", a.ID, false)
	c.answerHeader("ANSWER", a, false)
	c.body(a.Body, true)
	c.comments(comments)
	return c.doc
}

type composer struct {
	doc  Document
	hash *xxhash.Digest
}

func newComposer(kind string, id int64, hideErwin bool) *composer {
	c := &composer{hash: xxhash.New()}
	fmt.Fprintf(c.hash, "%s:%d:%t\x00", kind, id, hideErwin)
	return c
}

// add appends d and folds its text, styles and link targets into the
// fingerprint.
func (c *composer) add(d markup.Document) {
	for _, sp := range d.Spans {
		fmt.Fprintf(c.hash, "%d:%d:%d:%s:%s\x00", sp.Kind, sp.Block, sp.Style, sp.Lang, sp.Text)
	}
	for _, l := range d.Links {
		fmt.Fprintf(c.hash, "%s\x00", l.URL)
	}
	c.doc.Append(d)
	c.doc.ID = c.hash.Sum64()
}

func (c *composer) line(text string, st style.Style) {
	c.add(markup.Line(text, st))
}

func (c *composer) blank() {
	c.add(markup.Blank())
}

func (c *composer) rule() {
	c.blank()
	c.add(markup.Rule())
	c.blank()
}

func (c *composer) answerHeader(label string, a Answer, marker bool) {
	if a.IsAccepted {
		label += " ✓ ACCEPTED"
	}
	label += fmt.Sprintf("  (%s votes)", FormatScore(a.Score))

	erwin := IsErwin(a.AuthorName)
	header := markup.Document{Spans: []markup.Span{{Text: label, Style: style.Heading}}}
	if marker {
		header.Spans = []markup.Span{
			{Text: " ◆ ", Style: style.ErwinAccent},
			{Text: label, Style: style.Erwin},
		}
	}
	anchor := AnswerAnchor(a)
	header.Spans[0].Anchor = anchor
	if erwin {
		c.doc.ErwinAnchors = append(c.doc.ErwinAnchors, anchor)
	}
	c.add(header)

	byStyle := style.Plain
	if erwin {
		byStyle = style.Erwin
	}
	c.line(fmt.Sprintf("by %s (%s rep)", a.AuthorName, FormatNumber(a.AuthorReputation)), byStyle)
	c.blank()
}

// body appends an HTML body. Erwin's prose is restyled and set in a gutter.
func (c *composer) body(html string, erwin bool) {
	d := markup.Extract(html)
	if erwin {
		for i := range d.Spans {
			sp := &d.Spans[i]
			if sp.Kind == markup.KindCodeBlock || sp.Kind == markup.KindRule {
				continue
			}
			if sp.Block == markup.BlockNone || sp.Block == markup.BlockParagraph {
				sp.Block = markup.BlockBlockquote
			}
			if sp.Style == style.Plain && sp.Link == 0 && sp.Kind == markup.KindPlain {
				sp.Style = style.Erwin
			}
		}
	}
	c.add(d)
}

func (c *composer) comments(comments []Comment) {
	if len(comments) == 0 {
		return
	}
	c.blank()
	c.line(fmt.Sprintf("Comments (%d)", len(comments)), style.Heading)
	for _, cm := range comments {
		c.blank()
		votes := ""
		if cm.Score > 0 {
			votes = fmt.Sprintf("[+%d] ", cm.Score)
		}
		if IsErwin(cm.AuthorName) {
			c.line(fmt.Sprintf("    ◆ %s%s — %s", votes, markup.StripTags(cm.Text), cm.AuthorName), style.Erwin)
			continue
		}
		c.line(fmt.Sprintf("    %s%s — %s", votes, markup.StripTags(cm.Text), cm.AuthorName), style.Muted)
	}
}
