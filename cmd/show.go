package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/render"
	"github.com/zhubert/erwindb/internal/store"
	"github.com/zhubert/erwindb/internal/ui"
)

// minShowWidth keeps code blocks and headers legible at tiny widths.
const minShowWidth = 20

var (
	showWidth int
	showPlain bool
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a question with its answers and comments",
	Long: `Renders a question page the way the browser shows it and prints it to
standard output. Use --plain to drop colors, e.g. when piping to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVarP(&showWidth, "width", "w", ui.DefaultWrapWidth, "Wrap width in columns")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print without colors or hyperlinks")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid question id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	if theme := cfg.GetTheme(); theme != "" {
		ui.SetThemeByName(theme)
	}

	ctx := cmd.Context()
	db, err := store.Open(ctx, cfg.GetDatabase())
	if err != nil {
		return err
	}
	defer db.Close()

	return printQuestion(ctx, cmd.OutOrStdout(), db, id, showWidth, showPlain)
}

// printQuestion lays out question id at width columns, answers included,
// and writes it to w.
func printQuestion(ctx context.Context, w io.Writer, p content.Provider, id int64, width int, plain bool) error {
	width = max(width, minShowWidth)
	page, err := content.LoadPage(ctx, p, id)
	if err != nil {
		return err
	}

	doc := content.BuildQuestion(page, content.Options{})
	entry := render.NewCache(nil).GetOrRender(doc.ID, width, layout.Single, doc.Document)
	out := ui.RenderDocument(entry)
	if plain {
		out = ansi.Strip(out)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
