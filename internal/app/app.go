package app

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/erwindb/internal/clipboard"
	"github.com/zhubert/erwindb/internal/config"
	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/embed"
	"github.com/zhubert/erwindb/internal/errors"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/search"
	"github.com/zhubert/erwindb/internal/session"
	"github.com/zhubert/erwindb/internal/ui"
)

// Page is the screen on display.
type Page int

const (
	PageIndex Page = iota // question table
	PageShow              // one question with its answers
)

// String returns a human-readable name for the page
func (p Page) String() string {
	switch p {
	case PageIndex:
		return "Index"
	case PageShow:
		return "Show"
	default:
		return "Unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config   *config.Config
	version  string // App version (injected at build time)
	provider content.Provider
	embedder search.Embedder
	ctx      context.Context

	header *ui.Header
	footer *ui.Footer
	index  *ui.Index
	modal  *ui.Modal

	// Title search input, shown above the index while searching is set.
	searchInput textinput.Model
	searching   bool

	page    Page
	session *session.Session
	history []int64 // question ids to return to, most recent last

	titles  []search.Title
	vectors []search.Vector
	known   map[int64]bool // question ids in the archive
	loaded  bool
	loadErr error

	// loading is the question being fetched, 0 when idle.
	loading int64
	// semanticSeq numbers semantic queries; only the latest result is shown.
	semanticSeq     int
	semanticPending bool

	width  int
	height int

	openBrowser func(url string) tea.Cmd
	copyText    func(text string) error
}

// QuestionsLoadedMsg carries the question list and the stored title
// embeddings. A VectorErr disables semantic search but not the app.
type QuestionsLoadedMsg struct {
	Questions []content.Question
	Vectors   []search.Vector
	VectorErr error
	Err       error
}

// PageLoadedMsg is sent when a question page has been read. From is the
// question that was open when the load started, 0 from the index.
type PageLoadedMsg struct {
	ID   int64
	From int64
	Page content.Page
	Err  error
}

// SemanticResultsMsg answers the semantic query numbered Seq.
type SemanticResultsMsg struct {
	Seq     int
	Query   string
	Results []search.ScoredResult
	Err     error
}

// BrowserOpenedMsg reports the outcome of opening a URL.
type BrowserOpenedMsg struct {
	URL string
	Err error
}

// New creates a new app model reading from provider. embedder may be
// embed.Unavailable, which disables semantic search.
func New(cfg *config.Config, provider content.Provider, embedder search.Embedder, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter titles"
	ti.CharLimit = ui.SearchCharLimit

	return &Model{
		config:      cfg,
		version:     version,
		provider:    provider,
		embedder:    embedder,
		ctx:         context.Background(),
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(),
		index:       ui.NewIndex(),
		modal:       ui.NewModal(),
		searchInput: ti,
		page:        PageIndex,
		known:       make(map[int64]bool),
		openBrowser: openURL,
		copyText:    clipboard.WriteText,
	}
}

// Init starts loading the archive.
func (m *Model) Init() tea.Cmd {
	return m.loadQuestions()
}

// Page returns the screen on display.
func (m *Model) Page() Page {
	return m.page
}

// Session returns the open question, or nil on the index page.
func (m *Model) Session() *session.Session {
	return m.session
}

// History returns the question ids that back navigation returns to.
func (m *Model) History() []int64 {
	return m.history
}

// Index returns the question table.
func (m *Model) Index() *ui.Index {
	return m.index
}

// SemanticAvailable reports whether semantic search can run: an embedder is
// configured and the archive has title embeddings.
func (m *Model) SemanticAvailable() bool {
	return embed.Available(m.embedder) && len(m.vectors) > 0
}

// semanticUnavailableReason explains why SemanticAvailable is false.
func (m *Model) semanticUnavailableReason() string {
	if u, ok := m.embedder.(embed.Unavailable); ok && u.Reason != "" {
		return "Semantic search unavailable: " + u.Reason
	}
	if m.embedder == nil {
		return "Semantic search unavailable: no embedding provider"
	}
	return "Semantic search unavailable: the archive has no question embeddings"
}

func (m *Model) loadQuestions() tea.Cmd {
	ctx, provider := m.ctx, m.provider
	return func() tea.Msg {
		questions, err := provider.Questions(ctx)
		if err != nil {
			return QuestionsLoadedMsg{Err: err}
		}
		vectors, verr := provider.QuestionEmbeddings(ctx)
		return QuestionsLoadedMsg{Questions: questions, Vectors: vectors, VectorErr: verr}
	}
}

func (m *Model) handleQuestionsLoaded(msg QuestionsLoadedMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	m.loaded = true
	if msg.Err != nil {
		m.loadErr = msg.Err
		log.Error("failed to load questions", "error", msg.Err)
		return m, m.ShowFlashError(fmt.Sprintf("Failed to load questions: %v", msg.Err))
	}

	m.index.SetQuestions(msg.Questions)
	m.titles = content.Titles(msg.Questions)
	m.known = make(map[int64]bool, len(msg.Questions))
	for _, q := range msg.Questions {
		m.known[q.ID] = true
	}
	log.Info("questions loaded", "questions", len(msg.Questions), "embeddings", len(msg.Vectors))

	if msg.VectorErr != nil {
		log.Warn("failed to load embeddings", "error", msg.VectorErr)
		return m, m.ShowFlashWarning("Semantic search disabled: could not read question embeddings")
	}
	m.vectors = msg.Vectors
	return m, nil
}

// openQuestion starts loading question id. from is the open question, which
// is pushed onto the history once the load succeeds.
func (m *Model) openQuestion(id, from int64) tea.Cmd {
	m.loading = id
	ctx, provider := m.ctx, m.provider
	return func() tea.Msg {
		page, err := content.LoadPage(ctx, provider, id)
		return PageLoadedMsg{ID: id, From: from, Page: page, Err: err}
	}
}

func (m *Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	log := logger.WithQuestion(msg.ID)
	if msg.ID != m.loading {
		log.Debug("dropping stale page load", "loading", m.loading)
		return m, nil
	}
	m.loading = 0

	if msg.Err != nil {
		log.Warn("failed to load question", "error", msg.Err)
		if errors.Is(msg.Err, errors.KindNotFound) {
			return m, m.ShowFlashWarning(fmt.Sprintf("Question %d is not in the archive", msg.ID))
		}
		return m, m.ShowFlashError(fmt.Sprintf("Failed to load question %d: %v", msg.ID, msg.Err))
	}

	if msg.From != 0 {
		m.history = append(m.history, msg.From)
	}
	m.session = session.New(msg.Page, session.Options{DualPaneMinWidth: m.config.DualPaneMinWidth})
	m.page = PageShow
	m.updateSizes()
	log.Debug("question opened", "history", len(m.history))
	return m, nil
}

// goBack returns to the previous question, or to the index when the history
// is empty.
func (m *Model) goBack() tea.Cmd {
	if n := len(m.history); n > 0 {
		id := m.history[n-1]
		m.history = m.history[:n-1]
		return m.openQuestion(id, 0)
	}
	m.page = PageIndex
	m.session = nil
	m.loading = 0
	m.updateSizes()
	return nil
}

// runSemanticSearch embeds query and ranks the archive in the background.
func (m *Model) runSemanticSearch(query string) tea.Cmd {
	m.semanticSeq++
	m.semanticPending = true
	seq := m.semanticSeq
	ctx, emb, vectors := m.ctx, m.embedder, m.vectors
	limit := m.config.Search.SemanticLimit
	return func() tea.Msg {
		results, err := search.SemanticQuery(ctx, emb, vectors, query, limit)
		return SemanticResultsMsg{Seq: seq, Query: query, Results: results, Err: err}
	}
}

func (m *Model) handleSemanticResults(msg SemanticResultsMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	if msg.Seq != m.semanticSeq {
		log.Debug("dropping superseded semantic results", "seq", msg.Seq, "latest", m.semanticSeq)
		return m, nil
	}
	m.semanticPending = false

	if msg.Err != nil {
		log.Warn("semantic search failed", "query", msg.Query, "error", msg.Err)
		switch errors.GetKind(msg.Err) {
		case errors.KindDimension:
			return m, m.ShowFlashError("Semantic search failed: query embedding does not match the archive's dimensions")
		case errors.KindConfig:
			return m, m.ShowFlashWarning(msg.Err.Error())
		default:
			return m, m.ShowFlashError(fmt.Sprintf("Semantic search failed: %v", msg.Err))
		}
	}

	m.searching = false
	m.searchInput.Blur()
	m.index.SetResults(ui.ResultsSemantic, msg.Query, msg.Results)
	m.updateSizes()
	log.Debug("semantic results", "query", msg.Query, "results", len(msg.Results))
	return m, nil
}

// applyTitleSearch filters the index by the search input. An empty input
// shows every question.
func (m *Model) applyTitleSearch() {
	query := m.searchInput.Value()
	if query == "" {
		m.index.ClearResults()
		return
	}
	results := search.Fuzzy{Threshold: m.config.Search.FuzzyThreshold}.Search(m.titles, query)
	m.index.SetResults(ui.ResultsTitle, query, results)
}

// saveConfigOrFlash saves the config and returns a flash command on failure.
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Error("failed to save config", "error", err)
		return m.ShowFlashError(fmt.Sprintf("Failed to save config: %v", err))
	}
	return nil
}

// cycleTheme switches to the next built-in theme and remembers it.
func (m *Model) cycleTheme() tea.Cmd {
	next := ui.NextTheme(ui.CurrentThemeName())
	ui.SetTheme(next)
	m.config.SetTheme(string(next))
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return cmd
	}
	return m.ShowFlashInfo("Theme: " + ui.CurrentTheme().Name)
}
