package cmd

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/vibeterm/internal/config"
	"github.com/fchimpan/vibeterm/internal/tui"
)

func defaultRunTUI(ctx context.Context, opts tui.Options, watch Watch) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		tui.NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if watch.Path != "" {
		go func() {
			err := config.Watch(ctx, watch.Path, func(cfg config.Config, err error) {
				p.Send(reloadMsg(cfg, err, watch.Override))
			})
			if err != nil {
				slog.Warn("config watch stopped", "path", watch.Path, "err", err)
			}
		}()
	}

	_, err := p.Run()
	return err
}

// reloadMsg turns a reloaded config into a desktop message, with the
// command-line overrides applied on top of the file.
func reloadMsg(cfg config.Config, err error, override func(*config.Config)) tui.ConfigMsg {
	if err != nil {
		return tui.ConfigMsg{Err: err}
	}
	if override != nil {
		override(&cfg)
		if err := cfg.Validate(); err != nil {
			return tui.ConfigMsg{Err: err}
		}
	}
	return tui.ConfigMsg{Config: cfg}
}

func defaultRunTyper(opts tui.TyperOptions) error {
	p := tea.NewProgram(tui.NewTyperModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
