package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/errors"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/search"
	"github.com/zhubert/erwindb/internal/store"
)

var (
	semanticSearch bool
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Print the questions matching a query",
	Long: `Searches question titles and prints the best matches, highest first.

By default titles are matched as you would type them in the question list:
every character of the query must appear in order. With --semantic the query
is embedded and compared with the archive's title embeddings instead, which
needs a Gemini API key.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&semanticSearch, "semantic", "s", false, "Search by meaning instead of by title characters")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

// searchOptions controls printSearch.
type searchOptions struct {
	Query     string
	Semantic  bool
	Limit     int
	Threshold float64
	// Width caps each printed line; zero leaves lines unclipped.
	Width int
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := cmd.Context()
	db, err := store.Open(ctx, cfg.GetDatabase())
	if err != nil {
		return err
	}
	defer db.Close()

	var emb search.Embedder
	if semanticSearch {
		emb = newEmbedder(ctx, cfg)
	}
	return printSearch(ctx, cmd.OutOrStdout(), db, emb, searchOptions{
		Query:     strings.Join(args, " "),
		Semantic:  semanticSearch,
		Limit:     searchLimit,
		Threshold: cfg.Search.FuzzyThreshold,
	})
}

// printSearch writes one line per result: id, score and title.
func printSearch(ctx context.Context, w io.Writer, p content.Provider, emb search.Embedder, opts searchOptions) error {
	questions, err := p.Questions(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]content.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var results []search.ScoredResult
	if opts.Semantic {
		vectors, err := p.QuestionEmbeddings(ctx)
		if err != nil {
			return err
		}
		if len(vectors) == 0 {
			return errors.EmbeddingUnavailable("the archive has no title embeddings")
		}
		results, err = search.SemanticQuery(ctx, emb, vectors, opts.Query, opts.Limit)
		if err != nil {
			return err
		}
	} else {
		results = search.Fuzzy{Threshold: opts.Threshold}.Search(content.Titles(questions), opts.Query)
		results = search.Top(results, opts.Limit)
	}

	logger.WithComponent("cmd").Debug("search", "query", opts.Query, "semantic", opts.Semantic, "results", len(results))

	printed := 0
	for _, r := range results {
		q, ok := byID[r.SubjectID]
		if !ok {
			continue
		}
		score := fmt.Sprintf("%.0f", r.Score)
		if opts.Semantic {
			score = fmt.Sprintf("%.3f", r.Score)
		}
		line := fmt.Sprintf("%10d  %6s  %s", q.ID, score, q.DisplayTitle())
		if opts.Width > 0 {
			line = runewidth.Truncate(line, opts.Width, "…")
		}
		fmt.Fprintln(w, line)
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(w, "No matches.")
	}
	return nil
}
