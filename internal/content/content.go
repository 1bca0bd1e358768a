// Package content holds the archive records and composes them into the
// markup documents shown on the question page and in the Erwin side pane.
package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zhubert/erwindb/internal/markup"
	"github.com/zhubert/erwindb/internal/search"
)

// Question is one archived question.
type Question struct {
	ID               int64
	Title            string
	Body             string
	Score            int64
	ViewCount        int64
	AnswerCount      int64
	CreationDate     int64 // unix seconds, 0 when unknown
	AcceptedAnswerID int64
	AuthorName       string
}

// DisplayTitle returns the title with HTML entities decoded.
func (q Question) DisplayTitle() string {
	return markup.DecodeEntities(q.Title)
}

// Answer is one answer to a question. ID is the archive row id that comment
// rows refer to; AnswerID is the StackOverflow answer id.
type Answer struct {
	ID               int64
	AnswerID         int64
	QuestionID       int64
	Body             string
	Score            int64
	IsAccepted       bool
	AuthorName       string
	AuthorReputation int64
}

// Comment is a comment on a question or an answer. Text is HTML.
type Comment struct {
	Text       string
	Score      int64
	AuthorName string
}

// Page is everything shown for one question. AnswerComments is parallel to
// Answers.
type Page struct {
	Question         Question
	Answers          []Answer
	QuestionComments []Comment
	AnswerComments   [][]Comment
}

// CommentsFor returns the comments of the answer at index i.
func (p Page) CommentsFor(i int) []Comment {
	if i < 0 || i >= len(p.AnswerComments) {
		return nil
	}
	return p.AnswerComments[i]
}

// ErwinAnswers returns the indexes of the answers written by Erwin.
func (p Page) ErwinAnswers() []int {
	var out []int
	for i, a := range p.Answers {
		if IsErwin(a.AuthorName) {
			out = append(out, i)
		}
	}
	return out
}

// Provider reads the archive. Implementations must be safe to call from a
// goroutine other than the UI's.
type Provider interface {
	Questions(ctx context.Context) ([]Question, error)
	Question(ctx context.Context, id int64) (Question, error)
	Answers(ctx context.Context, questionID int64) ([]Answer, error)
	QuestionComments(ctx context.Context, questionID int64) ([]Comment, error)
	AnswerComments(ctx context.Context, answerID int64) ([]Comment, error)
	QuestionEmbeddings(ctx context.Context) ([]search.Vector, error)
}

// LoadPage reads a question with its answers and all comments.
func LoadPage(ctx context.Context, p Provider, id int64) (Page, error) {
	q, err := p.Question(ctx, id)
	if err != nil {
		return Page{}, err
	}
	answers, err := p.Answers(ctx, id)
	if err != nil {
		return Page{}, err
	}
	qc, err := p.QuestionComments(ctx, id)
	if err != nil {
		return Page{}, err
	}
	page := Page{
		Question:         q,
		Answers:          answers,
		QuestionComments: qc,
		AnswerComments:   make([][]Comment, len(answers)),
	}
	for i, a := range answers {
		ac, err := p.AnswerComments(ctx, a.ID)
		if err != nil {
			return Page{}, err
		}
		page.AnswerComments[i] = ac
	}
	return page, nil
}

// Titles returns the fuzzy search corpus for questions.
func Titles(questions []Question) []search.Title {
	out := make([]search.Title, len(questions))
	for i, q := range questions {
		out[i] = search.Title{ID: q.ID, Text: q.DisplayTitle()}
	}
	return out
}

// IsErwin reports whether author is Erwin.
func IsErwin(author string) bool {
	return strings.Contains(strings.ToLower(author), "erwin")
}

// QuestionURL returns the public URL of a question.
func QuestionURL(id int64) string {
	return fmt.Sprintf("https://stackoverflow.com/questions/%d", id)
}

// FormatNumber abbreviates large counts: 1.2K, 3.4M.
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatDate formats unix seconds as "Jan 02, 2006" in UTC; 0 is "N/A".
func FormatDate(unix int64) string {
	if unix == 0 {
		return "N/A"
	}
	return time.Unix(unix, 0).UTC().Format("Jan 02, 2006")
}

// FormatScore prefixes positive scores with "+".
func FormatScore(n int64) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
