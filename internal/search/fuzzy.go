package search

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

const (
	matchBonus     = 1
	wordStartBonus = 8
	adjacentBonus  = 4
)

// Fuzzy ranks titles by in-order, case-insensitive subsequence matches.
//
// Threshold is relative: with a non-empty query, results scoring below
// Threshold times the best score are dropped. Zero keeps every match.
type Fuzzy struct {
	Threshold float64
}

type titleSource []Title

func (s titleSource) String(i int) string { return s[i].Text }
func (s titleSource) Len() int            { return len(s) }

// Search scores every title against query. Titles without a match are
// excluded. An empty query returns every title with score 0 in ascending id
// order and no highlights.
func (f Fuzzy) Search(corpus []Title, query string) []ScoredResult {
	if strings.TrimSpace(query) == "" {
		results := make([]ScoredResult, len(corpus))
		for i, t := range corpus {
			results[i] = ScoredResult{SubjectID: t.ID}
		}
		sortResults(results)
		return results
	}

	matches := fuzzy.FindFromNoSort(query, titleSource(corpus))
	results := make([]ScoredResult, 0, len(matches))
	best := 0.0
	for _, m := range matches {
		t := corpus[m.Index]
		matched := alignWordStarts(t.Text, query, m.MatchedIndexes)
		score := scoreMatch(t.Text, matched)
		if score > best {
			best = score
		}
		results = append(results, ScoredResult{
			SubjectID:  t.ID,
			Score:      score,
			Highlights: highlights(t.Text, matched),
		})
	}

	if f.Threshold > 0 {
		cut := f.Threshold * best
		results = slices.DeleteFunc(results, func(r ScoredResult) bool { return r.Score < cut })
	}
	sortResults(results)
	return results
}

// alignWordStarts re-picks the matched positions so each query rune lands on
// a word start when one is reachable without breaking the rest of the match.
// fuzzy.Find takes the first occurrence of every rune, so "pg" against
// "Optimizing PostgreSQL" would otherwise match the p in "Optimizing".
// It returns matched unchanged when query is not a subsequence of title.
func alignWordStarts(title, query string, matched []int) []int {
	q := []rune(query)
	if len(q) == 0 {
		return matched
	}
	var offs []int
	var runes []rune
	for i, r := range title {
		offs = append(offs, i)
		runes = append(runes, r)
	}

	// last[k] is the latest rune index query rune k can take while the
	// runes after it still match.
	last := make([]int, len(q))
	k := len(q) - 1
	for i := len(runes) - 1; i >= 0 && k >= 0; i-- {
		if foldEqual(runes[i], q[k]) {
			last[k] = i
			k--
		}
	}
	if k >= 0 {
		return matched
	}

	out := make([]int, 0, len(q))
	pos := 0
	for k, qr := range q {
		pick := -1
		for i := pos; i <= last[k]; i++ {
			if !foldEqual(runes[i], qr) {
				continue
			}
			if pick < 0 {
				pick = i
			}
			if wordStart(title, offs[i]) {
				pick = i
				break
			}
		}
		out = append(out, offs[pick])
		pos = pick + 1
	}
	return out
}

func foldEqual(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}

// scoreMatch rewards every matched character, matches at word starts and
// matches adjacent to the previous one; shorter titles win ties.
func scoreMatch(title string, matched []int) float64 {
	score := 0.0
	prev := -2
	for _, idx := range matched {
		score += matchBonus
		if wordStart(title, idx) {
			score += wordStartBonus
		}
		if prev >= 0 && idx == nextRune(title, prev) {
			score += adjacentBonus
		}
		prev = idx
	}
	return score + 1/float64(1+utf8.RuneCountInString(title))
}

// wordStart reports whether the rune at byte offset idx begins a word: it is
// the first rune, follows a non-alphanumeric rune, or is an upper-case rune
// after a lower-case one.
func wordStart(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:idx])
	cur, _ := utf8.DecodeRuneInString(s[idx:])
	if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
		return unicode.IsLetter(cur) || unicode.IsDigit(cur)
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

func nextRune(s string, idx int) int {
	_, size := utf8.DecodeRuneInString(s[idx:])
	return idx + size
}

// highlights converts matched byte offsets into merged rune ranges.
func highlights(title string, matched []int) []Range {
	if len(matched) == 0 {
		return nil
	}
	runeAt := make(map[int]int, len(matched))
	want := 0
	r := 0
	for i := range title {
		if want < len(matched) && matched[want] == i {
			runeAt[i] = r
			want++
		}
		r++
	}

	var out []Range
	for _, idx := range matched {
		ri, ok := runeAt[idx]
		if !ok {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == ri {
			out[n-1].End++
			continue
		}
		out = append(out, Range{Start: ri, End: ri + 1})
	}
	return out
}
