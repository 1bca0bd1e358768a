package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/search"
)

// SortColumn is an index table column the question list can be sorted by.
type SortColumn int

const (
	SortID SortColumn = iota
	SortDate
	SortScore
	SortViews
	SortAnswers
)

func (c SortColumn) String() string {
	switch c {
	case SortID:
		return "id"
	case SortDate:
		return "date"
	case SortViews:
		return "views"
	case SortAnswers:
		return "answers"
	default:
		return "score"
	}
}

// ResultKind says what, if anything, filters the index.
type ResultKind int

const (
	ResultsNone ResultKind = iota
	ResultsTitle
	ResultsSemantic
)

// indexRow is one displayed question with the title ranges a search matched.
type indexRow struct {
	question   content.Question
	highlights []search.Range
}

// Index is the question table. Without search results it lists every
// question in the selected sort order; with results it lists the matching
// questions in rank order.
type Index struct {
	questions []content.Question
	byID      map[int64]int
	rows      []indexRow

	sortColumn SortColumn
	sortDesc   bool

	resultKind ResultKind
	query      string
	results    []search.ScoredResult

	selectedIdx  int
	scrollOffset int
	width        int
	height       int
}

// NewIndex creates an empty index sorted by score, highest first.
func NewIndex() *Index {
	return &Index{
		byID:       make(map[int64]int),
		sortColumn: SortScore,
		sortDesc:   true,
	}
}

// SetQuestions replaces the listed questions.
func (x *Index) SetQuestions(questions []content.Question) {
	x.questions = questions
	x.byID = make(map[int64]int, len(questions))
	for i, q := range questions {
		x.byID[q.ID] = i
	}
	x.rebuild()
}

// Questions returns the loaded questions in load order.
func (x *Index) Questions() []content.Question {
	return x.questions
}

// SetSize sets the table size; height counts the column title row.
func (x *Index) SetSize(width, height int) {
	x.width = width
	x.height = height
	x.ensureVisible()
}

// ToggleSort sorts by column. Selecting the current column flips the
// direction; a new column starts descending. The selection returns to the
// top.
func (x *Index) ToggleSort(column SortColumn) {
	if x.sortColumn == column {
		x.sortDesc = !x.sortDesc
	} else {
		x.sortColumn = column
		x.sortDesc = true
	}
	x.selectedIdx = 0
	x.rebuild()
}

// Sort returns the sort column and whether it is descending.
func (x *Index) Sort() (SortColumn, bool) {
	return x.sortColumn, x.sortDesc
}

// SetResults filters the index to results, in order. Results naming unknown
// questions are skipped.
func (x *Index) SetResults(kind ResultKind, query string, results []search.ScoredResult) {
	x.resultKind = kind
	x.query = query
	x.results = results
	x.selectedIdx = 0
	x.rebuild()
}

// ClearResults drops any search filter and reports whether there was one.
func (x *Index) ClearResults() bool {
	if x.resultKind == ResultsNone {
		return false
	}
	x.resultKind = ResultsNone
	x.query = ""
	x.results = nil
	x.selectedIdx = 0
	x.rebuild()
	return true
}

// ResultKind returns the active filter kind.
func (x *Index) ResultKind() ResultKind {
	return x.resultKind
}

// Query returns the query of the active filter.
func (x *Index) Query() string {
	return x.query
}

// Len returns the number of listed questions.
func (x *Index) Len() int {
	return len(x.rows)
}

// Selected returns the selected question.
func (x *Index) Selected() (content.Question, bool) {
	if x.selectedIdx < 0 || x.selectedIdx >= len(x.rows) {
		return content.Question{}, false
	}
	return x.rows[x.selectedIdx].question, true
}

// SelectedIndex returns the selected row.
func (x *Index) SelectedIndex() int {
	return x.selectedIdx
}

// MoveBy moves the selection by delta rows, clamped to the list.
func (x *Index) MoveBy(delta int) {
	x.selectedIdx = max(min(x.selectedIdx+delta, len(x.rows)-1), 0)
	x.ensureVisible()
}

// Top selects the first row.
func (x *Index) Top() {
	x.MoveBy(-len(x.rows))
}

// Bottom selects the last row.
func (x *Index) Bottom() {
	x.MoveBy(len(x.rows))
}

// VisibleRows returns the number of question rows on screen.
func (x *Index) VisibleRows() int {
	return max(x.height-IndexHeaderHeight, 1)
}

func (x *Index) rebuild() {
	x.rows = x.rows[:0]
	if x.resultKind == ResultsNone {
		for _, q := range x.questions {
			x.rows = append(x.rows, indexRow{question: q})
		}
		slices.SortStableFunc(x.rows, x.compare)
	} else {
		for _, r := range x.results {
			i, ok := x.byID[r.SubjectID]
			if !ok {
				continue
			}
			x.rows = append(x.rows, indexRow{question: x.questions[i], highlights: r.Highlights})
		}
	}
	x.MoveBy(0)
}

func (x *Index) compare(a, b indexRow) int {
	var c int
	qa, qb := a.question, b.question
	switch x.sortColumn {
	case SortID:
		c = cmp.Compare(qa.ID, qb.ID)
	case SortDate:
		c = cmp.Compare(qa.CreationDate, qb.CreationDate)
	case SortViews:
		c = cmp.Compare(qa.ViewCount, qb.ViewCount)
	case SortAnswers:
		c = cmp.Compare(qa.AnswerCount, qb.AnswerCount)
	default:
		c = cmp.Compare(qa.Score, qb.Score)
	}
	if x.sortDesc {
		return -c
	}
	return c
}

// ensureVisible scrolls so the selected row is on screen.
func (x *Index) ensureVisible() {
	visible := x.VisibleRows()
	if x.selectedIdx < x.scrollOffset {
		x.scrollOffset = x.selectedIdx
	}
	if x.selectedIdx >= x.scrollOffset+visible {
		x.scrollOffset = x.selectedIdx - visible + 1
	}
	x.scrollOffset = max(min(x.scrollOffset, len(x.rows)-visible), 0)
}

// fixedColumnsWidth is the selector plus the numeric columns.
const fixedColumnsWidth = 3 + ColumnIDWidth + ColumnDateWidth + ColumnScoreWidth + ColumnViewsWidth + ColumnAnswersWidth

// View renders the column titles and the visible rows.
func (x *Index) View() string {
	lines := []string{x.renderColumnTitles()}

	if len(x.rows) == 0 {
		msg := "No questions in the archive"
		if x.resultKind != ResultsNone {
			msg = fmt.Sprintf("No questions match %q", x.query)
		}
		lines = append(lines, IndexEmptyStyle.Render(msg))
		return lipgloss.NewStyle().Width(x.width).Height(x.height).Render(strings.Join(lines, "\n"))
	}

	end := min(x.scrollOffset+x.VisibleRows(), len(x.rows))
	for i := x.scrollOffset; i < end; i++ {
		lines = append(lines, x.renderRow(x.rows[i], i == x.selectedIdx))
	}
	for len(lines) < x.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (x *Index) renderColumnTitles() string {
	indicator := func(c SortColumn) string {
		if x.resultKind != ResultsNone || x.sortColumn != c {
			return " "
		}
		if x.sortDesc {
			return "▼"
		}
		return "▲"
	}
	title := func(c SortColumn, s string) string {
		if x.resultKind == ResultsNone && x.sortColumn == c {
			return IndexHeaderSorted.Render(s)
		}
		return IndexHeaderStyle.Render(s)
	}

	var sb strings.Builder
	sb.WriteString("   ")
	sb.WriteString(title(SortID, fmt.Sprintf("%*s%s ", ColumnIDWidth-2, "ID", indicator(SortID))))
	sb.WriteString(title(SortDate, fmt.Sprintf("%-*s%s ", ColumnDateWidth-2, "Date", indicator(SortDate))))
	sb.WriteString(title(SortScore, fmt.Sprintf("%*s%s ", ColumnScoreWidth-2, "Score", indicator(SortScore))))
	sb.WriteString(title(SortViews, fmt.Sprintf("%*s%s ", ColumnViewsWidth-2, "Views", indicator(SortViews))))
	sb.WriteString(title(SortAnswers, fmt.Sprintf("%*s%s ", ColumnAnswersWidth-2, "A", indicator(SortAnswers))))
	sb.WriteString(IndexHeaderStyle.Render("Title"))
	return sb.String()
}

func (x *Index) renderRow(row indexRow, selected bool) string {
	q := row.question

	idStyle, dimStyle, scoreStyle, answersStyle := IndexMutedStyle, IndexMutedStyle, IndexMutedStyle, IndexMutedStyle
	titleStyle, matchStyle := IndexRowStyle, IndexMatchStyle
	selector := "   "
	if q.Score > 0 {
		scoreStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	if q.AcceptedAnswerID != 0 {
		answersStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	if selected {
		idStyle, dimStyle, scoreStyle, answersStyle = IndexSelectedStyle, IndexSelectedStyle, IndexSelectedStyle, IndexSelectedStyle
		titleStyle = IndexSelectedStyle
		matchStyle = IndexSelectedStyle.Underline(true)
		selector = " > "
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(selector))
	sb.WriteString(idStyle.Render(fmt.Sprintf("%*d ", ColumnIDWidth-1, q.ID)))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%-*s ", ColumnDateWidth-1, content.FormatDate(q.CreationDate))))
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("%*d ", ColumnScoreWidth-1, q.Score)))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%*s ", ColumnViewsWidth-1, content.FormatNumber(q.ViewCount))))
	sb.WriteString(answersStyle.Render(fmt.Sprintf("%*d ", ColumnAnswersWidth-1, q.AnswerCount)))

	titleWidth := x.width - fixedColumnsWidth
	if titleWidth > 0 {
		sb.WriteString(renderTitle(q.DisplayTitle(), row.highlights, titleWidth, titleStyle, matchStyle))
	}
	return sb.String()
}

// renderTitle truncates title to width and styles the matched rune ranges.
func renderTitle(title string, highlights []search.Range, width int, base, match lipgloss.Style) string {
	const tail = "…"
	truncated := runewidth.Truncate(title, width, tail)
	body := truncated
	suffix := ""
	if truncated != title {
		body = strings.TrimSuffix(truncated, tail)
		suffix = tail
	}
	if len(highlights) == 0 {
		return base.Render(truncated)
	}

	matched := func(i int) bool {
		for _, h := range highlights {
			if i >= h.Start && i < h.End {
				return true
			}
		}
		return false
	}

	var sb, seg strings.Builder
	inMatch := false
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if inMatch {
			sb.WriteString(match.Render(seg.String()))
		} else {
			sb.WriteString(base.Render(seg.String()))
		}
		seg.Reset()
	}
	i := 0
	for _, r := range body {
		if m := matched(i); m != inMatch {
			flush()
			inMatch = m
		}
		seg.WriteRune(r)
		i++
	}
	flush()
	if suffix != "" {
		sb.WriteString(base.Render(suffix))
	}
	return sb.String()
}
