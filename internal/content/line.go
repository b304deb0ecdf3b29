package content

import "fmt"

// ColorRole is the semantic color of a line; themes map it to a concrete color.
type ColorRole int

const (
	RolePrimary ColorRole = iota
	RoleMuted
	RoleSuccess
	RoleWarning
	RoleError
	RoleInfo
	RoleAccent
	RoleSecondary
	RoleCommand
)

var roleNames = [...]string{
	RolePrimary:   "primary",
	RoleMuted:     "muted",
	RoleSuccess:   "success",
	RoleWarning:   "warning",
	RoleError:     "error",
	RoleInfo:      "info",
	RoleAccent:    "accent",
	RoleSecondary: "secondary",
	RoleCommand:   "command",
}

// Roles returns every color role in declaration order.
func Roles() []ColorRole {
	out := make([]ColorRole, len(roleNames))
	for i := range roleNames {
		out[i] = ColorRole(i)
	}
	return out
}

func (r ColorRole) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "primary"
	}
	return roleNames[r]
}

// ParseRole maps a role name to its ColorRole. An empty name is primary.
func ParseRole(s string) (ColorRole, error) {
	if s == "" {
		return RolePrimary, nil
	}
	for i, n := range roleNames {
		if n == s {
			return ColorRole(i), nil
		}
	}
	return RolePrimary, fmt.Errorf("unknown color role %q", s)
}

// Line is a single line of a canned terminal script.
// DelayMs is a pause honored before the line starts revealing, not between characters.
type Line struct {
	Text    string
	Role    ColorRole
	Bold    bool
	DelayMs int
}

// Script is an ordered, immutable sequence of lines.
type Script []Line

// Text returns the concatenation of all line texts.
func (s Script) Text() string {
	n := 0
	for _, l := range s {
		n += len(l.Text)
	}
	b := make([]byte, 0, n)
	for _, l := range s {
		b = append(b, l.Text...)
	}
	return string(b)
}
