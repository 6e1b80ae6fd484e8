package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/feedlens/internal/ui"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		search string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one feedback item in detail",
		Long: `Fetch the detailed record of one feedback item: rating, comment,
creation date, email and page URL, browser, the viewport compared with the
screen, and the location.`,
		Example: `  feedlens show 5b6c1f2e
  feedlens show 5b6c1f2e --search checkout
  feedlens show 5b6c1f2e --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd, root, args[0], format, search)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Highlight the comment as a list search would")

	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, root *rootOptions, id, format, search string) error {
	if err := checkFormat(format); err != nil {
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

	slog.Info("show_started", slog.String("id", id))

	d, err := client.Get(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return reportFetchFailure(cmd, format, cfg, err)
	}

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), d)
	}

	w := cmd.OutOrStdout()
	uc := uiConfig(w, cfg)
	return ui.RenderDetails(w, d, ui.DetailOptions{
		Styles:        uc.Styles(),
		ViewportWidth: uc.ViewportWidth,
		Search:        search,
	})
}
