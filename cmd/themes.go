package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/theme"
)

func newThemesCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.Names() {
				fmt.Fprintln(deps.Stdout, themeLine(theme.Get(name)))
			}
			return nil
		},
	}
}

func themeLine(t theme.Theme) string {
	var b strings.Builder
	label := t.Key
	if t.Key == theme.Default {
		label += " (default)"
	}
	fmt.Fprintf(&b, "%-26s", label)
	for _, r := range content.Roles() {
		b.WriteString(t.Style(r, false).Render(" ■"))
	}
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TitleText).Background(t.TitleBar).Render(" " + t.Name + " "))
	return b.String()
}
