package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/theme"
)

// palette holds the styles for one theme. Cells keep pointers into it, so a
// new palette is built on theme change instead of mutating this one.
type palette struct {
	desk        lipgloss.Style
	body        lipgloss.Style
	border      lipgloss.Style
	borderFocus lipgloss.Style
	titleBar    lipgloss.Style
	titleFocus  lipgloss.Style
	lightClose  lipgloss.Style
	lightMin    lipgloss.Style
	lightZoom   lipgloss.Style
	cursor      lipgloss.Style
	sprite      lipgloss.Style

	panel       lipgloss.Style
	panelTitle  lipgloss.Style
	panelDim    lipgloss.Style
	btnAdd      lipgloss.Style
	btnRemove   lipgloss.Style
	btnOff      lipgloss.Style
	btnArrange  lipgloss.Style
	btnTheme    lipgloss.Style
	btnLayout   lipgloss.Style
	status      lipgloss.Style

	roles [][2]lipgloss.Style // [role][bold]
}

// Fixed UI colors that don't follow the theme, after the original controls panel.
var (
	colorPanelBg   = lipgloss.Color("#1f2937")
	colorPanelText = lipgloss.Color("#f9fafb")
	colorPanelDim  = lipgloss.Color("#9ca3af")
	colorGreen     = lipgloss.Color("#059669")
	colorRed       = lipgloss.Color("#dc2626")
	colorGray      = lipgloss.Color("#4b5563")
	colorBlue      = lipgloss.Color("#2563eb")
	colorPurple    = lipgloss.Color("#7c3aed")
	colorTeal      = lipgloss.Color("#0d9488")
)

func newPalette(t theme.Theme) *palette {
	base := lipgloss.NewStyle()
	p := &palette{
		desk:        base.Background(lipgloss.Color("#111827")),
		body:        base.Background(t.Background).Foreground(t.Color(content.RolePrimary)),
		border:      base.Background(t.Background).Foreground(t.Border),
		borderFocus: base.Background(t.Background).Foreground(t.Color(content.RoleAccent)),
		titleBar:    base.Background(t.TitleBar).Foreground(t.TitleText),
		titleFocus:  base.Background(t.TitleBar).Foreground(t.TitleText).Bold(true),
		lightClose:  base.Background(t.TitleBar).Foreground(lipgloss.Color("#ef4444")),
		lightMin:    base.Background(t.TitleBar).Foreground(lipgloss.Color("#eab308")),
		lightZoom:   base.Background(t.TitleBar).Foreground(lipgloss.Color("#22c55e")),
		cursor:      base.Background(t.Color(content.RolePrimary)).Foreground(t.Background),
		sprite:      base.Background(lipgloss.Color("#111827")).Foreground(lipgloss.Color("#fbbf24")),

		panel:      base.Background(colorPanelBg).Foreground(colorPanelText),
		panelTitle: base.Background(colorPanelBg).Foreground(colorPanelText).Bold(true),
		panelDim:   base.Background(colorPanelBg).Foreground(colorPanelDim),
		btnAdd:     base.Background(colorGreen).Foreground(colorPanelText).Bold(true),
		btnRemove:  base.Background(colorRed).Foreground(colorPanelText).Bold(true),
		btnOff:     base.Background(colorGray).Foreground(colorPanelDim),
		btnArrange: base.Background(colorBlue).Foreground(colorPanelText),
		btnTheme:   base.Background(colorPurple).Foreground(colorPanelText),
		btnLayout:  base.Background(colorTeal).Foreground(colorPanelText),
		status:     base.Background(lipgloss.Color("#111827")).Foreground(colorPanelDim),
	}
	roles := content.Roles()
	p.roles = make([][2]lipgloss.Style, len(roles))
	for _, r := range roles {
		p.roles[r] = [2]lipgloss.Style{t.Style(r, false), t.Style(r, true)}
	}
	return p
}

func (p *palette) role(r content.ColorRole, bold bool) *lipgloss.Style {
	if int(r) < 0 || int(r) >= len(p.roles) {
		r = content.RolePrimary
	}
	if bold {
		return &p.roles[r][1]
	}
	return &p.roles[r][0]
}
