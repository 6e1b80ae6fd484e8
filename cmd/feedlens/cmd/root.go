// Package cmd provides the CLI commands for feedlens.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/feedlens/internal/config"
	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/logging"
	"github.com/Aman-CERP/feedlens/internal/profiling"
	"github.com/Aman-CERP/feedlens/pkg/version"
)

// rootOptions carries persistent flags and per-run state to subcommands.
type rootOptions struct {
	debug    bool
	endpoint string
	noColor  bool
	profile  profiling.Options

	cfg    *config.Config
	cfgErr error

	profiler   *profiling.Session
	logCleanup func()
	prevLogger *slog.Logger
}

// NewRootCmd creates the root command for the feedlens CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedlens",
		Short: "Browse and search user feedback from the terminal",
		Long: `feedlens fetches user feedback from a JSON endpoint and lets you
filter it by rating and fuzzy-search the comments, highlighting what matched.

Run 'feedlens browse' for the interactive view or 'feedlens list' for a
scriptable table.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.start(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.teardown()
		},
	}

	cmd.SetVersionTemplate("feedlens version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.feedlens/logs/")
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Feedback endpoint URL (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.PersistentFlags().StringVar(&opts.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&opts.profile.Mem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&opts.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newBrowseCmd(opts))
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// start loads configuration and starts logging and profiling. A config error
// is kept for the commands that need configuration.
func (o *rootOptions) start(cmd *cobra.Command) error {
	o.cfg, o.cfgErr = o.loadConfig()

	if err := o.startLogging(cmd); err != nil {
		return err
	}

	if o.profile.Enabled() {
		s, err := profiling.Start(o.profile)
		if err != nil {
			return err
		}
		o.profiler = s
	}
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	if o.endpoint != "" {
		cfg.Source.Endpoint = o.endpoint
	}
	if o.noColor {
		cfg.Display.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// config returns the effective configuration or the error that prevented it.
func (o *rootOptions) config() (*config.Config, error) {
	if o.cfg == nil && o.cfgErr == nil {
		o.cfg, o.cfgErr = o.loadConfig()
	}
	return o.cfg, o.cfgErr
}

// startLogging routes slog to the log file when --debug or logging.enabled
// is set, and discards it otherwise so records never reach the terminal.
func (o *rootOptions) startLogging(cmd *cobra.Command) error {
	o.prevLogger = slog.Default()

	enabled := o.debug || (o.cfg != nil && o.cfg.Logging.Enabled)
	if !enabled {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	logCfg := logging.DefaultConfig()
	if o.cfg != nil {
		logCfg.Level = o.cfg.Logging.Level
	}
	if o.debug {
		logCfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	o.logCleanup = cleanup
	slog.SetDefault(logger)

	slog.Info("command_started",
		slog.String("command", cmd.CommandPath()),
		slog.String("version", version.Version),
		slog.String("log_file", logCfg.FilePath))
	if o.cfgErr != nil {
		slog.Warn("config_load_failed", ferrors.LogAttrs(o.cfgErr)...)
	}
	return nil
}

// teardown stops profiling and logging. It is safe to call more than once.
func (o *rootOptions) teardown() error {
	var err error
	if o.profiler != nil {
		err = o.profiler.Stop()
		o.profiler = nil
	}

	if o.logCleanup != nil {
		slog.Info("command_finished")
		o.logCleanup()
		o.logCleanup = nil
	}
	if o.prevLogger != nil {
		slog.SetDefault(o.prevLogger)
		o.prevLogger = nil
	}
	return err
}

// Execute runs the root command and prints any error that the command did
// not already report.
func Execute(ctx context.Context) error {
	opts := &rootOptions{}
	root := newRootCmd(opts)

	err := root.ExecuteContext(ctx)
	// PersistentPostRunE does not run when the command fails
	if terr := opts.teardown(); err == nil {
		err = terr
	}
	if err != nil {
		reportError(root.ErrOrStderr(), err)
	}
	return err
}

// reportedError marks an error whose report was already written.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

func reportError(w io.Writer, err error) {
	var done *reportedError
	if errors.As(err, &done) || errors.Is(err, context.Canceled) {
		return
	}
	if _, ok := ferrors.As(err); ok {
		_, _ = fmt.Fprint(w, ferrors.FormatForCLI(err))
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\nRun 'feedlens --help' for usage.\n", err)
}
