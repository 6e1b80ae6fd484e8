package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/feedlens/configs"
	"github.com/Aman-CERP/feedlens/internal/config"
	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage the feedlens configuration files.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/feedlens/config.yaml)
  3. Project config (.feedlens.yaml in the current directory)
  4. Environment variables (FEEDLENS_*)
  5. Command-line flags (--endpoint, --no-color)`,
		Example: `  # Create user config from template
  feedlens config init

  # Show effective configuration
  feedlens config show

  # Print user config file path
  feedlens config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a configuration file from the documented template.

The user file is created at ~/.config/feedlens/config.yaml (or
$XDG_CONFIG_HOME/feedlens/config.yaml). With --project the template is
written to .feedlens.yaml in the current directory instead.

An existing file is kept unless --force is given; it is then backed up
before being replaced.`,
		Example: `  feedlens config init
  feedlens config init --project
  feedlens config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetUserConfigPath()
			if project {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				path = config.ProjectConfigPath(cwd)
			}
			return runConfigInit(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing configuration (a backup is kept)")
	cmd.Flags().BoolVar(&project, "project", false, "Write .feedlens.yaml in the current directory")

	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging all sources, or a single source
with --source.`,
		Example: `  feedlens config show
  feedlens config show --json
  feedlens config show --source user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, root, jsonOutput, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath()); err != nil {
				return err
			}
			if !config.UserConfigExists() {
				newOutput(cmd, cmd.ErrOrStderr()).Hint(initHint("user"))
			}
			return nil
		},
	}
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	out := newOutput(cmd, cmd.OutOrStdout())

	var backupPath string
	err := config.WithFileLock(path, func() error {
		if _, err := os.Stat(path); err == nil {
			if !force {
				return errConfigExists
			}
			b, err := config.Backup(path)
			if err != nil {
				return err
			}
			backupPath = b
		}

		if err := os.WriteFile(path, []byte(configs.UserConfigTemplate), 0o644); err != nil {
			return ferrors.New(ferrors.ErrCodeConfigWrite,
				fmt.Sprintf("failed to write config file %s", path), err)
		}
		return nil
	})

	if errors.Is(err, errConfigExists) {
		out.Warning("Configuration already exists")
		out.Statusf("📁", "Location: %s", path)
		out.Newline()
		out.Hint("Use --force to replace it (a backup is kept)")
		return nil
	}
	if err != nil {
		return err
	}

	out.Successf("Created configuration at %s", path)
	if backupPath != "" {
		out.Statusf("💾", "Backup: %s", backupPath)
	}
	out.Newline()
	out.Status("📋", "Next steps:")
	out.Status("", "  1. Edit the file to point source.endpoint at your feedback")
	out.Status("", "  2. Run 'feedlens config show' to verify")

	return nil
}

var errConfigExists = errors.New("config exists")

func runConfigShow(cmd *cobra.Command, root *rootOptions, jsonOutput bool, source string) error {
	out := newOutput(cmd, cmd.OutOrStdout())

	var (
		cfg        *config.Config
		sourceDesc string
	)

	switch source {
	case "merged":
		var err error
		cfg, err = root.config()
		if err != nil {
			return err
		}
		sourceDesc = "merged (defaults + user + project + env + flags)"

	case "user", "project":
		path := config.GetUserConfigPath()
		if source == "project" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			path = config.ProjectConfigPath(cwd)
		}

		var err error
		cfg, err = config.LoadFile(path)
		if ferrors.GetCode(err) == ferrors.ErrCodeConfigNotFound {
			out.Warningf("No %s configuration file found", source)
			out.Statusf("📁", "Expected at: %s", path)
			out.Hint(initHint(source))
			return nil
		}
		if err != nil {
			return err
		}
		sourceDesc = fmt.Sprintf("%s (%s)", source, filepath.Clean(path))

	case "defaults":
		cfg = config.NewConfig()
		sourceDesc = "defaults (hardcoded)"

	default:
		return ferrors.ValidationError(fmt.Sprintf("invalid source: %s", source), nil).
			WithSuggestion("Use --source merged, user, project or defaults")
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}

	out.Statusf("📋", "Configuration source: %s", sourceDesc)
	out.Newline()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}

func initHint(source string) string {
	if source == "project" {
		return "Run 'feedlens config init --project' to create one"
	}
	return "Run 'feedlens config init' to create one"
}
