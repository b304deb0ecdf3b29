package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fchimpan/vibeterm/internal/config"
	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/desk"
	"github.com/fchimpan/vibeterm/internal/tui"
)

func run(ctx context.Context, deps Deps, cfg config.Config, scriptsPath string, watch Watch, seed uint64) error {
	if deps.LoadScripts == nil {
		return fmt.Errorf("deps.LoadScripts is nil")
	}
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if deps.Now == nil {
		return fmt.Errorf("deps.Now is nil")
	}

	store := content.Default()
	if scriptsPath != "" {
		s, err := deps.LoadScripts(expandHome(scriptsPath))
		if err != nil {
			return fmt.Errorf("failed to load scripts: %w", err)
		}
		store = s
	}

	mode, err := desk.ParseMode(cfg.Layout)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Terminals:    cfg.Terminals,
		Theme:        cfg.Theme,
		Speed:        cfg.Speed,
		Layout:       mode,
		Cats:         cfg.Cats,
		Rabbits:      cfg.Rabbits,
		LoopDelay:    tui.LoopDelayFromConfig(cfg.LoopDelayMs),
		ShowControls: cfg.ShowControls,
		Store:        store,
		Seed:         seed,
		Now:          deps.Now,
	}
	slog.Info("starting desktop",
		"terminals", opts.Terminals, "theme", opts.Theme, "speed", opts.Speed,
		"layout", mode.String(), "categories", store.Categories(), "watch", watch.Path)
	return deps.RunTUI(ctx, opts, watch)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
