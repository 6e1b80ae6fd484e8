package cmd

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/logging"
)

type logsOptions struct {
	follow  bool
	lines   int
	level   string
	filter  string
	logFile string
}

func newLogsCmd() *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View feedlens logs",
		Long: `View and tail the feedlens log file (~/.feedlens/logs/feedlens.log).

Logs are written when a command runs with --debug or with logging.enabled
set in the configuration. Use -f to follow new entries as they are written.`,
		Example: `  feedlens logs                  # Show last 50 entries
  feedlens logs -n 100           # Show last 100 entries
  feedlens logs -f               # Follow in real time
  feedlens logs --level warn     # Warnings and errors only
  feedlens logs --filter list_   # Filter by pattern`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of entries to show")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().StringVar(&opts.logFile, "file", "", "Path to log file")

	return cmd
}

func runLogs(ctx context.Context, cmd *cobra.Command, opts logsOptions) error {
	path, err := logging.FindLogFile(opts.logFile)
	if err != nil {
		return ferrors.ValidationError(err.Error(), nil).
			WithSuggestion("Run a command with --debug to start logging")
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return ferrors.ValidationError("invalid filter pattern", err).
				WithSuggestion("--filter takes a Go regular expression")
		}
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:   opts.level,
		Pattern: pattern,
		NoColor: noColor,
	}, cmd.OutOrStdout())

	stderr := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(stderr, "Log file: %s\n", path)

	if !opts.follow {
		entries, err := viewer.Tail(path, opts.lines)
		if err != nil {
			return err
		}
		viewer.Print(entries)
		return nil
	}

	_, _ = fmt.Fprintln(stderr, "Following... (Ctrl+C to stop)")
	err = viewer.Follow(ctx, path, func(e logging.Entry) {
		viewer.Print([]logging.Entry{e})
	})
	_, _ = fmt.Fprintln(stderr, "Stopped.")
	return err
}
