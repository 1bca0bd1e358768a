package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/erwindb/internal/config"
	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/errors"
	"github.com/zhubert/erwindb/internal/keys"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/search"
	"github.com/zhubert/erwindb/internal/ui"
)

func TestMain(m *testing.M) {
	logger.Reset()
	if err := logger.Init(os.DevNull); err != nil {
		panic(err)
	}
	code := m.Run()
	ui.SetTheme(ui.DefaultTheme)
	os.Exit(code)
}

// fakeProvider serves a fixed archive from memory.
type fakeProvider struct {
	questions []content.Question
	answers   map[int64][]content.Answer
	vectors   []search.Vector
	vectorErr error
	err       error
}

func (p *fakeProvider) Questions(ctx context.Context) ([]content.Question, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.questions, nil
}

func (p *fakeProvider) Question(ctx context.Context, id int64) (content.Question, error) {
	for _, q := range p.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return content.Question{}, errors.QuestionNotFound(id)
}

func (p *fakeProvider) Answers(ctx context.Context, questionID int64) ([]content.Answer, error) {
	return p.answers[questionID], nil
}

func (p *fakeProvider) QuestionComments(ctx context.Context, questionID int64) ([]content.Comment, error) {
	return nil, nil
}

func (p *fakeProvider) AnswerComments(ctx context.Context, answerID int64) ([]content.Comment, error) {
	return nil, nil
}

func (p *fakeProvider) QuestionEmbeddings(ctx context.Context) ([]search.Vector, error) {
	return p.vectors, p.vectorErr
}

// fakeEmbedder maps known queries to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float64
}

func (e fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0}, nil
}

const (
	localLink    = "https://stackoverflow.com/questions/2/postgres-array-contains"
	externalLink = "https://www.postgresql.org/docs/current/gin.html"
)

// testProvider returns an archive of three questions. Question 1 links to
// question 2 and to an external page, and has one answer by Erwin.
func testProvider() *fakeProvider {
	return &fakeProvider{
		questions: []content.Question{
			{
				ID:    1,
				Title: "How do I index a JSONB column?",
				Body: `<p>See <a href="` + localLink + `">this question</a> and ` +
					`<a href="` + externalLink + `">the GIN docs</a>.</p>`,
				Score:       10,
				ViewCount:   1500,
				AnswerCount: 2,
			},
			{ID: 2, Title: "Postgres array contains", Body: "<p>Arrays.</p>", Score: 5, ViewCount: 80, AnswerCount: 0},
			{ID: 3, Title: "Lateral join explained", Body: "<p>Joins.</p>", Score: 20, ViewCount: 300, AnswerCount: 0},
		},
		answers: map[int64][]content.Answer{
			1: {
				{ID: 11, AnswerID: 101, QuestionID: 1, Body: "<p>Use a GIN index.</p>", Score: 30, IsAccepted: true, AuthorName: "Erwin Brandstetter"},
				{ID: 12, AnswerID: 102, QuestionID: 1, Body: "<p>Or a btree on an expression.</p>", Score: 3, AuthorName: "someone"},
			},
		},
		vectors: []search.Vector{
			{ID: 1, Values: []float64{1, 0}},
			{ID: 2, Values: []float64{0, 1}},
			{ID: 3, Values: []float64{0.7, 0.7}},
		},
	}
}

func testEmbedder() fakeEmbedder {
	return fakeEmbedder{vectors: map[string][]float64{
		"arrays":     {0, 1},
		"jsonb":      {1, 0},
		"wrong dims": {1, 0, 0},
	}}
}

// testConfig creates a config saved under a temporary directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.Default(filepath.Join(t.TempDir(), "config.yaml"))
}

// testModel creates a model over the test archive with the questions
// loaded and the terminal sized.
func testModel(t *testing.T, width, height int) *Model {
	t.Helper()
	return testModelWith(t, testProvider(), testEmbedder(), width, height)
}

func testModelWith(t *testing.T, p content.Provider, emb search.Embedder, width, height int) *Model {
	t.Helper()
	m := New(testConfig(t), p, emb, "0.0.0-test")
	m.openBrowser = func(url string) tea.Cmd {
		return func() tea.Msg { return BrowserOpenedMsg{URL: url} }
	}
	m.copyText = func(string) error { return nil }
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	m.Update(m.Init()())
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlD:
		return tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}
	case keys.CtrlU:
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	case keys.CtrlW:
		return tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the command it produced.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) {
	for _, ch := range text {
		sendKey(m, string(ch))
	}
}

// deliver runs cmd and feeds its message back into the model. Only use it
// for commands that return immediately, such as loads and searches.
func deliver(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	_, next := m.Update(cmd())
	return next
}

// openFirst opens question 1 from the index.
func openFirst(t *testing.T, m *Model) {
	t.Helper()
	deliver(t, m, m.openQuestion(1, 0))
	if m.Page() != PageShow {
		t.Fatalf("page = %v, want Show", m.Page())
	}
}
