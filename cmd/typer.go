package cmd

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fchimpan/vibeterm/internal/ascii"
	"github.com/fchimpan/vibeterm/internal/config"
	"github.com/fchimpan/vibeterm/internal/tui"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// parseColor accepts a swatch name ("Gray Dark", "gray-dark") or a hex color.
func parseColor(flag, s string, def lipgloss.Color) (lipgloss.Color, error) {
	if s == "" {
		return def, nil
	}
	name := strings.ReplaceAll(s, "-", " ")
	for _, sw := range tui.Swatches {
		if strings.EqualFold(sw.Name, name) {
			return sw.Value, nil
		}
	}
	if hexColor.MatchString(s) {
		return lipgloss.Color(s), nil
	}
	return "", &config.ValidationError{Field: flag, Reason: fmt.Sprintf("%q is neither a swatch name nor a #rrggbb color", s)}
}

func newTyperCmd(deps Deps) *cobra.Command {
	var fg, bg string

	c := &cobra.Command{
		Use:   "typer [LINE...]",
		Short: "Turn text into block-letter ASCII art",
		Long: "Turn text into block-letter ASCII art.\n\n" +
			"Each argument is one line. Without arguments an interactive editor opens,\n" +
			"or lines are read from stdin when it is not a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := parseColor("--fg", fg, tui.DefaultTyperText)
			if err != nil {
				printHint(deps.Stderr, err)
				return err
			}
			back, err := parseColor("--bg", bg, tui.DefaultTyperBackground)
			if err != nil {
				printHint(deps.Stderr, err)
				return err
			}

			interactive := deps.IsTerminal != nil && deps.IsTerminal()
			if len(args) == 0 && interactive {
				if deps.RunTyper == nil {
					return fmt.Errorf("deps.RunTyper is nil")
				}
				return deps.RunTyper(tui.TyperOptions{Text: text, Background: back, Copy: deps.Clipboard})
			}

			lines := args
			if len(lines) == 0 {
				if lines, err = readLines(deps); err != nil {
					return err
				}
			}
			for _, row := range ascii.GenerateLines(lines) {
				fmt.Fprintln(deps.Stdout, strings.TrimRight(row, " "))
			}
			return nil
		},
	}
	c.Flags().StringVar(&fg, "fg", "", "text color for the interactive editor (swatch name or #rrggbb)")
	c.Flags().StringVar(&bg, "bg", "", "background color for the interactive editor (swatch name or #rrggbb)")
	return c
}

func readLines(deps Deps) ([]string, error) {
	if deps.Stdin == nil {
		return nil, fmt.Errorf("no text given")
	}
	var lines []string
	sc := bufio.NewScanner(deps.Stdin)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}
