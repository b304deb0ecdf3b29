package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scripts.yaml
var defaultScripts []byte

// Store is a read-only lookup of scripts by category.
// Category order is the order in which categories appear in the source file.
type Store struct {
	order   []string
	scripts map[string]Script
}

type scriptsFile struct {
	Categories []struct {
		Name  string `yaml:"name"`
		Lines []struct {
			Text    string `yaml:"text"`
			Role    string `yaml:"role"`
			Bold    bool   `yaml:"bold"`
			DelayMs int    `yaml:"delay_ms"`
		} `yaml:"lines"`
	} `yaml:"categories"`
}

// Default returns the store built from the embedded scripts.
func Default() *Store {
	s, err := Parse(defaultScripts)
	if err != nil {
		panic(fmt.Sprintf("content: embedded scripts: %v", err))
	}
	return s
}

// Load reads a YAML scripts file from disk.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scripts file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse builds a store from YAML.
func Parse(data []byte) (*Store, error) {
	var f scriptsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &InvalidScriptError{Reason: "malformed YAML", cause: err}
	}
	if len(f.Categories) == 0 {
		return nil, &InvalidScriptError{Reason: "no categories defined"}
	}

	s := &Store{scripts: make(map[string]Script, len(f.Categories))}
	for _, c := range f.Categories {
		if c.Name == "" {
			return nil, &InvalidScriptError{Reason: "category without a name"}
		}
		if _, dup := s.scripts[c.Name]; dup {
			return nil, &InvalidScriptError{Category: c.Name, Reason: "duplicate category"}
		}
		script := make(Script, 0, len(c.Lines))
		for i, l := range c.Lines {
			role, err := ParseRole(l.Role)
			if err != nil {
				return nil, &InvalidScriptError{Category: c.Name, Line: i + 1, Reason: err.Error(), cause: err}
			}
			if l.DelayMs < 0 {
				return nil, &InvalidScriptError{Category: c.Name, Line: i + 1, Reason: "delay_ms must be >= 0"}
			}
			script = append(script, Line{Text: l.Text, Role: role, Bold: l.Bold, DelayMs: l.DelayMs})
		}
		s.order = append(s.order, c.Name)
		s.scripts[c.Name] = script
	}
	return s, nil
}

// Categories returns the category keys in source order.
func (s *Store) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Script returns the script for a category. Unknown categories yield an empty
// script so callers render a blank terminal instead of failing.
func (s *Store) Script(category string) Script {
	return s.scripts[category]
}

// ForIndex picks a category cyclically by ordinal (e.g. a terminal's index).
func (s *Store) ForIndex(i int) (string, Script) {
	if len(s.order) == 0 {
		return "", nil
	}
	i %= len(s.order)
	if i < 0 {
		i += len(s.order)
	}
	name := s.order[i]
	return name, s.scripts[name]
}
