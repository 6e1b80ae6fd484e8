package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/fragment"
	"github.com/Aman-CERP/feedlens/internal/ui"
)

// matchResult is the JSON shape of match output.
type matchResult struct {
	Pattern   string              `json:"pattern"`
	Text      string              `json:"text"`
	Matched   bool                `json:"matched"`
	Fragments []fragment.Fragment `json:"fragments"`
}

func newMatchCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "match <pattern> <text>",
		Short: "Show how a search pattern matches a text",
		Long: `Fragmentize text by pattern and print the result: the highlighted text
followed by one line per fragment. Exits with an error when the pattern does
not match.`,
		Example: `  feedlens match btn "Big red button"
  feedlens match abc "xaxbxc" --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			pattern, text := args[0], args[1]
			frags, ok := fragment.Fragmentize(pattern, text)

			w := cmd.OutOrStdout()
			if format == formatJSON {
				if frags == nil {
					frags = []fragment.Fragment{}
				}
				if err := writeJSON(w, matchResult{Pattern: pattern, Text: text, Matched: ok, Fragments: frags}); err != nil {
					return err
				}
			} else if ok {
				noColor, _ := cmd.Flags().GetBool("no-color")
				styles := ui.NewConfig(w, ui.WithNoColor(noColor)).Styles()
				_, _ = fmt.Fprintln(w, ui.Highlight(frags, styles))
				for _, f := range frags {
					mark := " "
					if f.Matched {
						mark = "*"
					}
					_, _ = fmt.Fprintf(w, "%s %q\n", mark, f.Slice)
				}
			}

			if !ok {
				err := ferrors.ValidationError(
					fmt.Sprintf("%q does not match %q", pattern, truncateArg(text)), nil)
				if format == formatJSON {
					return reported(err)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json")

	return cmd
}

func truncateArg(s string) string {
	const maxRunes = 40
	if r := []rune(s); len(r) > maxRunes {
		return strings.TrimSpace(string(r[:maxRunes])) + "..."
	}
	return s
}
