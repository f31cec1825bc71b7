package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, script names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

var accentColor = defaultAccent

// ConfigureTheme applies a user-chosen accent color. Empty or "none"
// disables the accent and renders those elements unstyled.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates an accent value: ANSI codes "0"-"255" or
// hex colors "#RGB"/"#RRGGBB". "none", "off" and "default" disable it.
func normalizeAccentColor(value string) (string, bool) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	switch trimmed {
	case "", "none", "off", "default":
		return "", false
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	if strings.HasPrefix(trimmed, "#") {
		hex := trimmed[1:]
		if !isHex(hex) {
			return "", false
		}
		switch len(hex) {
		case 3:
			var sb strings.Builder
			sb.WriteByte('#')
			for i := 0; i < 3; i++ {
				sb.WriteByte(hex[i])
				sb.WriteByte(hex[i])
			}
			return sb.String(), true
		case 6:
			return "#" + hex, true
		}
	}

	return "", false
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
