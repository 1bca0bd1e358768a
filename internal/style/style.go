// Package style defines the semantic styles shared by the markup extractor,
// the highlighter and the layout engine. Styles name what a piece of text is,
// not how it looks; the ui package maps them to terminal colors.
package style

// Style is a semantic text style.
type Style int

const (
	Plain Style = iota
	Keyword
	String
	Comment
	Number
	Operator
	Code       // unhighlighted code block text
	InlineCode // `code` inside prose
	Strong
	Emphasis
	Quote
	Link
	LinkFocused
	Erwin       // text written by the highlighted author
	ErwinAccent // markers and gutters for the highlighted author
	Title
	Heading
	Muted
	Separator
)

var names = [...]string{
	Plain:       "plain",
	Keyword:     "keyword",
	String:      "string",
	Comment:     "comment",
	Number:      "number",
	Operator:    "operator",
	Code:        "code",
	InlineCode:  "inline-code",
	Strong:      "strong",
	Emphasis:    "emphasis",
	Quote:       "quote",
	Link:        "link",
	LinkFocused: "link-focused",
	Erwin:       "erwin",
	ErwinAccent: "erwin-accent",
	Title:       "title",
	Heading:     "heading",
	Muted:       "muted",
	Separator:   "separator",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// Run applies a style to the half-open range [Start, End). The unit of the
// range depends on the producer: the highlighter emits byte offsets into its
// input, rendered lines carry display columns.
type Run struct {
	Start int
	End   int
	Style Style
}

// Len returns the length of the run.
func (r Run) Len() int {
	return r.End - r.Start
}
