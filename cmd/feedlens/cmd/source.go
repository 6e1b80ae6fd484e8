package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/feedlens/internal/api"
	"github.com/Aman-CERP/feedlens/internal/config"
	"github.com/Aman-CERP/feedlens/internal/dashboard"
	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/output"
	"github.com/Aman-CERP/feedlens/internal/ui"
	"github.com/Aman-CERP/feedlens/pkg/version"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func checkFormat(format string) error {
	if format == formatText || format == formatJSON {
		return nil
	}
	return ferrors.New(ferrors.ErrCodeInvalidFormat,
		fmt.Sprintf("unknown output format %q", format), nil).
		WithSuggestion("Use --format text or --format json")
}

func newClient(cfg *config.Config) (*api.Client, error) {
	return api.NewClient(api.Config{
		Endpoint:  cfg.Source.Endpoint,
		Timeout:   cfg.TimeoutDuration(),
		Retries:   cfg.Source.Retries,
		UserAgent: version.UserAgent(),
	})
}

// newSource returns the client, wrapped in a cache when cache.size > 0.
func newSource(cfg *config.Config) (api.Source, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Size > 0 {
		return api.NewCachedClient(client, cfg.Cache.Size, cfg.CacheTTL()), nil
	}
	return client, nil
}

func uiConfig(w io.Writer, cfg *config.Config) ui.Config {
	return ui.NewConfig(w,
		ui.WithForcePlain(cfg.Display.Plain),
		ui.WithNoColor(cfg.Display.NoColor),
		ui.WithCommentWidth(cfg.Display.CommentWidth),
		ui.WithViewportWidth(cfg.Display.ViewportWidth),
	)
}

// newOutput returns a status writer for w, colored only on a terminal.
func newOutput(cmd *cobra.Command, w io.Writer) *output.Writer {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return output.NewColored(w, !noColor && !ui.DetectNoColor() && ui.IsTTY(w))
}

func filterOptions(cfg *config.Config) dashboard.Options {
	return dashboard.Options{
		Workers:           cfg.Filter.Workers,
		ParallelThreshold: cfg.Filter.ParallelThreshold,
	}
}

func parseCriteria(search, exclude string) (dashboard.Criteria, error) {
	set, err := dashboard.ParseRatingSet(exclude)
	if err != nil {
		return dashboard.Criteria{}, err
	}
	return dashboard.Criteria{Search: search, Exclude: set}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportFetchFailure writes the failure report for a fetch error, as JSON on
// stdout or as the failure page on stderr, and marks the error reported.
func reportFetchFailure(cmd *cobra.Command, format string, cfg *config.Config, err error) error {
	if format == formatJSON {
		data, jerr := ferrors.FormatJSON(err)
		if jerr != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return reported(err)
	}

	stderr := cmd.ErrOrStderr()
	_ = ui.RenderFailure(stderr, err, uiConfig(stderr, cfg).Styles())
	return reported(err)
}
