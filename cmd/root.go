package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/fchimpan/vibeterm/internal/config"
	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/tui"
)

type Deps struct {
	LoadConfig   func(path string) (config.Config, error)
	LoadScripts  func(path string) (*content.Store, error)
	RunTUI       func(ctx context.Context, opts tui.Options, watch Watch) error
	RunTyper     func(opts tui.TyperOptions) error
	Clipboard    func(string) error
	IsTerminal   func() bool
	ColorEnabled func() bool
	TermWidth    func() int
	ConfigPath   func() string
	Now          func() time.Time
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
}

func DefaultDeps() Deps {
	t := term.FromEnv()
	return Deps{
		LoadConfig:  config.Load,
		LoadScripts: content.Load,
		RunTUI:      defaultRunTUI,
		RunTyper:    defaultRunTyper,
		Clipboard:   clipboard.WriteAll,
		IsTerminal: func() bool {
			return t.IsTerminalOutput() &&
				(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
		},
		ColorEnabled: t.IsColorEnabled,
		TermWidth: func() int {
			w, _, err := t.Size()
			if err != nil || w <= 0 {
				return 80
			}
			return w
		},
		ConfigPath: config.DefaultPath,
		Now:        time.Now,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Watch configures live config reloading. An empty Path disables it.
type Watch struct {
	Path string
	// Override re-applies command-line flags on top of each reloaded file.
	Override func(*config.Config)
}

// flags shared by the root command and applied on top of the config file.
type desktopFlags struct {
	configPath  string
	scriptsPath string
	watch       bool
	terminals   int
	theme       string
	speed       float64
	layout      string
	cats        int
	rabbits     int
}

func NewRootCmd(deps Deps) *cobra.Command {
	var f desktopFlags
	var logFile string
	var noColor bool
	var closeLog func()
	finish := func() {
		if closeLog != nil {
			closeLog()
			closeLog = nil
		}
	}

	c := &cobra.Command{
		Use:          "vibeterm",
		Short:        "A desktop of terminals that vibe code at you",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			closer, err := setupLogging(logFile)
			if err != nil {
				return err
			}
			closeLog = closer
			if noColor || (deps.ColorEnabled != nil && !deps.ColorEnabled()) {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) { finish() },
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.IsTerminal != nil && !deps.IsTerminal() {
				return fmt.Errorf("vibeterm needs an interactive terminal (try `vibeterm typer TEXT` for plain output)")
			}

			cfg, cfgPath, err := loadConfig(deps, f.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				printHint(deps.Stderr, err)
				return err
			}
			applyFlags(cmd, &cfg, f)
			if err := cfg.Validate(); err != nil {
				printHint(deps.Stderr, err)
				return err
			}

			scripts := f.scriptsPath
			if scripts == "" {
				scripts = cfg.ScriptsFile
			}
			var watch Watch
			if f.watch && cfgPath != "" {
				watch = Watch{
					Path:     cfgPath,
					Override: func(c *config.Config) { applyFlags(cmd, c, f) },
				}
			}

			seed := uint64(deps.Now().UnixNano())
			if err := run(cmd.Context(), deps, cfg, scripts, watch, seed); err != nil {
				printHint(deps.Stderr, err)
				return err
			}
			return nil
		},
	}

	c.Flags().IntVarP(&f.terminals, "terminals", "n", 1, "number of terminal windows (1-100)")
	c.Flags().StringVar(&f.theme, "theme", config.Default().Theme, "color theme (see `vibeterm themes`)")
	c.Flags().Float64VarP(&f.speed, "speed", "s", 1.0, "typing speed multiplier (1.0 is normal)")
	c.Flags().StringVar(&f.layout, "layout", "uniform", "window layout: uniform or scattered")
	c.Flags().IntVar(&f.cats, "cats", 0, "number of bouncing cats")
	c.Flags().IntVar(&f.rabbits, "rabbits", 0, "number of bouncing rabbits")
	c.Flags().StringVar(&f.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/vibeterm/config.toml)")
	c.Flags().StringVar(&f.scriptsPath, "scripts", "", "YAML file with custom terminal scripts")
	c.Flags().BoolVar(&f.watch, "watch", false, "reload the config file when it changes")
	c.PersistentFlags().StringVar(&logFile, "log-file", "", "write debug logs to this file")
	c.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors")

	c.AddCommand(newTyperCmd(deps), newThemesCmd(deps), newAboutCmd(deps))

	// Post-run hooks are skipped when RunE fails, so the log is also closed here.
	for _, sub := range append([]*cobra.Command{c}, c.Commands()...) {
		runE := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer finish()
			return runE(cmd, args)
		}
	}

	c.SetIn(deps.Stdin)
	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}

// loadConfig reads the config file. A missing file is only an error when the
// path was given explicitly.
func loadConfig(deps Deps, path string, explicit bool) (config.Config, string, error) {
	if path == "" && deps.ConfigPath != nil {
		path = deps.ConfigPath()
	}
	if path == "" || deps.LoadConfig == nil {
		return config.Default(), path, nil
	}
	cfg, err := deps.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), path, nil
		}
		return config.Config{}, path, err
	}
	return cfg, path, nil
}

// applyFlags overrides config values with the flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f desktopFlags) {
	changed := cmd.Flags().Changed
	if changed("terminals") {
		cfg.Terminals = f.terminals
	}
	if changed("theme") {
		cfg.Theme = f.theme
	}
	if changed("speed") {
		cfg.Speed = f.speed
	}
	if changed("layout") {
		cfg.Layout = f.layout
	}
	if changed("cats") {
		cfg.Cats = f.cats
	}
	if changed("rabbits") {
		cfg.Rabbits = f.rabbits
	}
}

func printHint(w io.Writer, err error) {
	switch {
	case config.IsValidation(err):
		fmt.Fprintln(w, "hint: check the flag values and your config file (`vibeterm --help` lists the ranges)")
	case content.IsInvalidScript(err):
		fmt.Fprintln(w, "hint: scripts files look like `categories: [{name: ..., lines: [{text: ..., role: ...}]}]`")
	}
}
