package markup

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var questionURL = regexp.MustCompile(`stackoverflow\.com/(?:questions|q)/(\d+)`)

// QuestionID returns the question id referenced by a StackOverflow question
// URL, or 0 when url does not point at a question.
func QuestionID(url string) int64 {
	m := questionURL.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// StripTags reduces an HTML fragment to its text with whitespace collapsed.
// It is used for titles and comments, which are rendered as single runs.
func StripTags(src string) string {
	if !strings.ContainsAny(src, "<&") {
		return strings.Join(strings.Fields(src), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return strings.Join(strings.Fields(DecodeEntities(src)), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// DecodeEntities replaces HTML character references with the characters they
// stand for.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}
