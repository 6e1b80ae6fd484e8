package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/feedlens/internal/ui"
)

func newBrowseCmd(root *rootOptions) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse feedback interactively",
		Long: `Open the interactive browser: type to search comments, press 1-5 to
hide or show a rating, enter to open the details of the selected item.

When stdout is not a terminal, or display.plain is set, the list is printed
as by 'feedlens list' instead.`,
		Example: `  feedlens browse
  feedlens browse --search "page load" --exclude-rating 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context(), cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Initial comment search")
	cmd.Flags().StringVarP(&opts.exclude, "exclude-rating", "x", "", "Ratings hidden initially, e.g. 1,2")

	return cmd
}

func runBrowse(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts listOptions) error {
	criteria, err := parseCriteria(opts.search, opts.exclude)
	if err != nil {
		return err
	}
	cfg, err := root.config()
	if err != nil {
		return err
	}

	uc := uiConfig(cmd.OutOrStdout(), cfg)
	if !uc.Interactive() {
		slog.Debug("browse_fallback_plain")
		opts.format = formatText
		return runList(ctx, cmd, root, opts)
	}

	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	slog.Info("browse_started",
		slog.String("endpoint", cfg.Source.Endpoint),
		slog.Int("cache_size", cfg.Cache.Size))

	return ui.Browse(ctx, uc, ui.BrowseOptions{
		Source:   source,
		Criteria: criteria,
		Filter:   filterOptions(cfg),
	})
}
