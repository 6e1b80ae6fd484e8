// Package output prints human-facing CLI messages with status icons.
//
// Data (tables, JSON, details) is rendered by internal/ui; this package only
// covers the short lines around it: success, warnings, errors and hints.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out      io.Writer
	useColor bool

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

// New creates a Writer without color.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// NewColored creates a Writer that colors icons and hints when useColor is set.
func NewColored(out io.Writer, useColor bool) *Writer {
	w := New(out)
	if useColor {
		w.useColor = true
		w.success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		w.warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		w.failure = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		w.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	}
	return w
}

// Status prints a message after icon, or indented when icon is empty.
// Write errors are ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status(w.paint(w.success, "✅"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.paint(w.warning, "⚠️ "), msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.paint(w.failure, "❌"), msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Hint prints a dimmed suggestion line.
func (w *Writer) Hint(msg string) {
	w.Status("💡", w.paint(w.dim, msg))
}

// Code prints an indented block surrounded by blank lines.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	for _, line := range strings.Split(content, "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

func (w *Writer) paint(st lipgloss.Style, s string) string {
	if !w.useColor {
		return s
	}
	return st.Render(s)
}
