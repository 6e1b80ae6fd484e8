package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/feedlens/internal/config"
	"github.com/Aman-CERP/feedlens/internal/dashboard"
	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/ui"
)

// listOptions holds CLI flags for list.
type listOptions struct {
	search  string
	exclude string
	format  string // "text", "json"
	limit   int
}

// listResult is the JSON shape of list output.
type listResult struct {
	Fetched int               `json:"fetched"`
	Shown   int               `json:"shown"`
	Summary dashboard.Summary `json:"summary"`
	Items   []dashboard.Item  `json:"items"`
}

func newListCmd(root *rootOptions) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feedback as a table",
		Long: `Fetch every feedback item, drop excluded ratings and keep the items
whose comment fuzzy-matches --search. Matched characters are highlighted.

The search is a subsequence match: "btn" matches "button", ignoring case.`,
		Example: `  feedlens list
  feedlens list --search "slow chckout"
  feedlens list --exclude-rating 4,5 --limit 20
  feedlens list --search login --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Fuzzy comment search")
	cmd.Flags().StringVarP(&opts.exclude, "exclude-rating", "x", "", "Ratings to hide, e.g. 1,2")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text, json")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of rows (0 shows all)")

	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts listOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	if opts.limit < 0 {
		return ferrors.ValidationError(fmt.Sprintf("invalid limit %d", opts.limit), nil).
			WithSuggestion("Use --limit 0 to show all rows")
	}
	criteria, err := parseCriteria(opts.search, opts.exclude)
	if err != nil {
		return err
	}
	cfg, err := root.config()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	slog.Info("list_started",
		slog.String("endpoint", client.Endpoint()),
		slog.String("search", criteria.Search),
		slog.String("exclude", criteria.Exclude.String()))

	items, err := client.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return reportFetchFailure(cmd, opts.format, cfg, err)
	}

	shown, err := dashboard.Apply(ctx, criteria, items, filterOptions(cfg))
	if err != nil {
		return err
	}
	summary := dashboard.Summarize(shown)

	limited := shown
	if opts.limit > 0 && len(limited) > opts.limit {
		limited = limited[:opts.limit]
	}

	slog.Info("list_complete",
		slog.Int("fetched", len(items)),
		slog.Int("matched", len(shown)),
		slog.Int("printed", len(limited)))

	if opts.format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), listResult{
			Fetched: len(items),
			Shown:   len(limited),
			Summary: summary,
			Items:   limited,
		})
	}

	return printList(cmd, cfg, summary, len(items), limited)
}

func printList(cmd *cobra.Command, cfg *config.Config, summary dashboard.Summary, fetched int, items []dashboard.Item) error {
	w := cmd.OutOrStdout()
	styles := uiConfig(w, cfg).Styles()

	if err := ui.RenderSummary(w, summary, fetched, styles); err != nil {
		return err
	}
	if err := ui.RenderTable(w, items, ui.TableOptions{
		Styles:       styles,
		CommentWidth: cfg.Display.CommentWidth,
	}); err != nil {
		return err
	}

	if len(items) < summary.Total {
		out := newOutput(cmd, w)
		out.Hint(fmt.Sprintf("Showing %s of %s; use --limit 0 to show all",
			humanize.Comma(int64(len(items))), humanize.Comma(int64(summary.Total))))
	}
	return nil
}
