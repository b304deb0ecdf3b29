// Package config loads user settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fchimpan/vibeterm/internal/desk"
	"github.com/fchimpan/vibeterm/internal/theme"
)

const (
	MinSpeed = 0.25
	MaxSpeed = 5.0

	MaxSprites = 200
)

type Config struct {
	Terminals    int     `toml:"terminals"`
	Theme        string  `toml:"theme"`
	Speed        float64 `toml:"speed"` // typing speed multiplier, 1.0 is normal
	Layout       string  `toml:"layout"`
	Cats         int     `toml:"cats"`
	Rabbits      int     `toml:"rabbits"`
	LoopDelayMs  int     `toml:"loop_delay_ms"`
	ScriptsFile  string  `toml:"scripts_file"`
	ShowControls bool    `toml:"show_controls"`
}

func Default() Config {
	return Config{
		Terminals:    1,
		Theme:        theme.Default,
		Speed:        1.0,
		Layout:       "uniform",
		LoopDelayMs:  3000,
		ShowControls: true,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/vibeterm/config.toml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vibeterm", "config.toml")
}

// ValidationError reports a config value that is out of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// Load decodes path on top of the defaults. Unknown keys are logged, not fatal.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("ignoring unknown config keys", "path", path, "keys", keys)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Terminals < desk.MinWindows || c.Terminals > desk.MaxWindows {
		return &ValidationError{Field: "terminals", Reason: fmt.Sprintf("must be between %d and %d", desk.MinWindows, desk.MaxWindows)}
	}
	if _, ok := theme.Lookup(c.Theme); !ok {
		return &ValidationError{Field: "theme", Reason: fmt.Sprintf("%q is not a known theme", c.Theme)}
	}
	if c.Speed < MinSpeed || c.Speed > MaxSpeed {
		return &ValidationError{Field: "speed", Reason: fmt.Sprintf("must be between %.2f and %.2f", MinSpeed, MaxSpeed)}
	}
	if _, err := desk.ParseMode(c.Layout); err != nil {
		return &ValidationError{Field: "layout", Reason: err.Error()}
	}
	if c.Cats < 0 || c.Rabbits < 0 || c.Cats+c.Rabbits > MaxSprites {
		return &ValidationError{Field: "cats/rabbits", Reason: fmt.Sprintf("must be >= 0 and total at most %d", MaxSprites)}
	}
	if c.LoopDelayMs < 0 {
		return &ValidationError{Field: "loop_delay_ms", Reason: "must be >= 0"}
	}
	return nil
}

// ClampSpeed keeps a speed multiplier within the supported range.
func ClampSpeed(v float64) float64 {
	return max(MinSpeed, min(MaxSpeed, v))
}
