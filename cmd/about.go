package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const aboutMarkdown = `# vibeterm

A desktop full of terminals, each one busily typing out a conversation with
an AI coding assistant. Purely decorative.

## Desktop keys

| Key | Action |
| --- | --- |
| ` + "`+` / `-`" + ` | add / remove a terminal |
| ` + "`]` / `[`" + ` | add / remove ten terminals |
| ` + "`a`" + ` | arrange windows in a grid |
| ` + "`l`" + ` | toggle uniform / scattered layout |
| ` + "`t`" + ` | next theme |
| ` + "`>` / `<`" + ` | type faster / slower |
| ` + "`tab`" + ` | focus the next window |
| arrows | move the focused window |
| ` + "`x`" + ` | close the focused window |
| ` + "`k` / `b` / `K`" + ` | add a cat / add a rabbit / clear sprites |
| ` + "`c`" + ` | show or hide the controls panel |
| ` + "`q`" + ` | quit |

Drag a window by its title bar, resize it from the bottom-right corner and
close it with the red light.

## Typer

` + "`vibeterm typer 'I VIBE MORE' 'THAN YOU'`" + ` prints block letters.
Run it without arguments for the interactive editor.

## Config

Settings are read from ` + "`$XDG_CONFIG_HOME/vibeterm/config.toml`" + `:

` + "```toml" + `
terminals = 6
theme = "retro"
speed = 1.5
layout = "uniform"
cats = 1
rabbits = 1
loop_delay_ms = 3000
scripts_file = "~/my-scripts.yaml"
show_controls = true
` + "```" + `
`

func newAboutCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show keys, config and usage notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style := "notty"
			if deps.IsTerminal != nil && deps.IsTerminal() && deps.ColorEnabled != nil && deps.ColorEnabled() {
				style = "dark"
			}
			width := 80
			if deps.TermWidth != nil {
				width = min(deps.TermWidth(), 100)
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return fmt.Errorf("failed to create markdown renderer: %w", err)
			}
			out, err := r.Render(aboutMarkdown)
			if err != nil {
				return fmt.Errorf("failed to render about page: %w", err)
			}
			fmt.Fprint(deps.Stdout, out)
			return nil
		},
	}
}
