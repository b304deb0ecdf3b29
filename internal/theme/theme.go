// Package theme maps semantic line roles to concrete terminal colors.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/vibeterm/internal/content"
)

type Theme struct {
	Key        string
	Name       string
	Background lipgloss.Color
	TitleBar   lipgloss.Color
	TitleText  lipgloss.Color
	Border     lipgloss.Color
	colors     map[content.ColorRole]lipgloss.Color
}

// Color resolves a role to a color, falling back to the primary color.
func (t Theme) Color(role content.ColorRole) lipgloss.Color {
	if c, ok := t.colors[role]; ok {
		return c
	}
	return t.colors[content.RolePrimary]
}

// Style returns a foreground style for a role on this theme's background.
func (t Theme) Style(role content.ColorRole, bold bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Color(role)).
		Background(t.Background).
		Bold(bold)
}

const Default = "dark"

// Order is the cycling order of the theme switcher.
var order = []string{"dark", "light", "minimal", "retro", "solarized-light"}

// Tailwind-ish palette, as used by the original desktop.
var themes = map[string]Theme{
	"dark": {
		Key: "dark", Name: "Dark",
		Background: "#000000", TitleBar: "#9ca3af", TitleText: "#000000", Border: "#4b5563",
		colors: map[content.ColorRole]lipgloss.Color{
			content.RoleMuted:     "#9ca3af",
			content.RoleSuccess:   "#4ade80",
			content.RoleWarning:   "#facc15",
			content.RoleError:     "#f87171",
			content.RoleInfo:      "#60a5fa",
			content.RoleAccent:    "#c084fc",
			content.RolePrimary:   "#bbf7d0",
			content.RoleSecondary: "#d1d5db",
			content.RoleCommand:   "#6b7280",
		},
	},
	"light": {
		Key: "light", Name: "Light",
		Background: "#f9fafb", TitleBar: "#d1d5db", TitleText: "#111827", Border: "#9ca3af",
		colors: map[content.ColorRole]lipgloss.Color{
			content.RoleMuted:     "#6b7280",
			content.RoleSuccess:   "#16a34a",
			content.RoleWarning:   "#ea580c",
			content.RoleError:     "#dc2626",
			content.RoleInfo:      "#2563eb",
			content.RoleAccent:    "#9333ea",
			content.RolePrimary:   "#1f2937",
			content.RoleSecondary: "#4b5563",
			content.RoleCommand:   "#374151",
		},
	},
	"minimal": {
		Key: "minimal", Name: "Minimal",
		Background: "#ffffff", TitleBar: "#e5e7eb", TitleText: "#1f2937", Border: "#d1d5db",
		colors: map[content.ColorRole]lipgloss.Color{
			content.RoleMuted:     "#9ca3af",
			content.RoleSuccess:   "#4b5563",
			content.RoleWarning:   "#4b5563",
			content.RoleError:     "#374151",
			content.RoleInfo:      "#4b5563",
			content.RoleAccent:    "#374151",
			content.RolePrimary:   "#1f2937",
			content.RoleSecondary: "#4b5563",
			content.RoleCommand:   "#6b7280",
		},
	},
	"retro": {
		Key: "retro", Name: "Retro Green",
		Background: "#000000", TitleBar: "#14532d", TitleText: "#4ade80", Border: "#166534",
		colors: map[content.ColorRole]lipgloss.Color{
			content.RoleMuted:     "#16a34a",
			content.RoleSuccess:   "#4ade80",
			content.RoleWarning:   "#86efac",
			content.RoleError:     "#22c55e",
			content.RoleInfo:      "#4ade80",
			content.RoleAccent:    "#86efac",
			content.RolePrimary:   "#4ade80",
			content.RoleSecondary: "#22c55e",
			content.RoleCommand:   "#16a34a",
		},
	},
	"solarized-light": {
		Key: "solarized-light", Name: "Solarized Light",
		Background: "#fdf6e3", TitleBar: "#eee8d5", TitleText: "#586e75", Border: "#93a1a1",
		colors: map[content.ColorRole]lipgloss.Color{
			content.RoleMuted:     "#93a1a1",
			content.RoleSuccess:   "#859900",
			content.RoleWarning:   "#b58900",
			content.RoleError:     "#dc322f",
			content.RoleInfo:      "#268bd2",
			content.RoleAccent:    "#2aa198",
			content.RolePrimary:   "#657b83",
			content.RoleSecondary: "#586e75",
			content.RoleCommand:   "#839496",
		},
	},
}

// Names returns the available theme keys in switcher order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func Lookup(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// Get returns the named theme or the default one.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[Default]
}

// Next returns the theme after name in switcher order, wrapping around.
// Unknown names restart from the first theme.
func Next(name string) string {
	for i, n := range order {
		if n == name {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
