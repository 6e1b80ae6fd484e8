// Package ui renders feedback for the terminal: highlighted comments, the
// list table, the details page, failure reports and the interactive browser.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Config configures how output is rendered.
type Config struct {
	Output     io.Writer
	ForcePlain bool
	NoColor    bool

	// CommentWidth is the maximum comment width in the list, in cells.
	CommentWidth int
	// ViewportWidth is the width of the viewport diagram, in cells.
	ViewportWidth int
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithForcePlain forces plain output even on a terminal.
func WithForcePlain(force bool) ConfigOption {
	return func(c *Config) {
		c.ForcePlain = force
	}
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) {
		c.NoColor = noColor
	}
}

// WithCommentWidth sets the list comment width.
func WithCommentWidth(width int) ConfigOption {
	return func(c *Config) {
		if width > 0 {
			c.CommentWidth = width
		}
	}
}

// WithViewportWidth sets the viewport diagram width.
func WithViewportWidth(width int) ConfigOption {
	return func(c *Config) {
		if width > 0 {
			c.ViewportWidth = width
		}
	}
}

// NewConfig creates a Config with defaults, then applies opts.
func NewConfig(output io.Writer, opts ...ConfigOption) Config {
	cfg := Config{
		Output:        output,
		CommentWidth:  DefaultCommentWidth,
		ViewportWidth: DefaultViewportWidth,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Styles resolves the styles for this config, honoring NO_COLOR.
func (c Config) Styles() Styles {
	return GetStyles(c.NoColor || DetectNoColor())
}

// Interactive reports whether the interactive browser can run: the output is
// a terminal, plain mode was not forced and we are not in CI.
func (c Config) Interactive() bool {
	if c.ForcePlain {
		return false
	}
	if !IsTTY(c.Output) {
		return false
	}
	return !DetectCI()
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
