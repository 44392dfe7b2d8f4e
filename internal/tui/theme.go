package tui

import (
	"os"
	"strconv"
	"strings"

	"chatweaver/internal/model"
	"chatweaver/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The canvas must stay readable on light and dark terminal backgrounds, so chrome colors
// are lipgloss.AdaptiveColor pairs and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          lipgloss.TerminalColor = ac("240", "243")
	colorChromeMutedFg  lipgloss.TerminalColor = ac("240", "245")
	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
	colorSurfaceFg      lipgloss.TerminalColor = ac("235", "252")
	colorControlBg      lipgloss.TerminalColor = ac("252", "235")
	colorFadedFg        lipgloss.TerminalColor = ac("252", "238")
	colorErrorFg        lipgloss.TerminalColor = ac("160", "203")
	colorModalSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorModalHeaderBg  lipgloss.TerminalColor = ac("252", "237")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// palette holds the per-type node colors from the user's preferences.
type palette struct {
	accent    lipgloss.AdaptiveColor
	text      lipgloss.AdaptiveColor
	answer    lipgloss.AdaptiveColor
	condition lipgloss.AdaptiveColor
}

func paletteFromPrefs(p store.Prefs) palette {
	l, d := p.NodeColors.Light, p.NodeColors.Dark
	return palette{
		accent:    ac(l.Accent, d.Accent),
		text:      ac(l.TextNode, d.TextNode),
		answer:    ac(l.AnswerNode, d.AnswerNode),
		condition: ac(l.ConditionNode, d.ConditionNode),
	}
}

func (p palette) node(t model.NodeType) lipgloss.AdaptiveColor {
	switch t {
	case model.NodeAnswer:
		return p.answer
	case model.NodeCondition:
		return p.condition
	default:
		return p.text
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which is right for piped CLI output but can
// turn colors off inside a full-screen program. Here only NO_COLOR is honored.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// resolveTheme decides between light and dark.
//
// Priority:
// 1) CHATWEAVER_TUI_THEME=light|dark|auto
// 2) the theme preference
// 3) COLORFGBG heuristic ("fg;bg", e.g. "15;0")
//
// ok is false when nothing decided and terminal detection should stand.
func resolveTheme(pref string) (dark bool, ok bool) {
	for _, v := range []string{os.Getenv("CHATWEAVER_TUI_THEME"), pref} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case store.ThemeLight:
			return false, true
		case store.ThemeDark:
			return true, true
		}
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7, true
		}
	}
	return false, false
}

// applyThemePreference configures Lip Gloss's background detection so AdaptiveColor picks
// the variant matching the user's theme.
func applyThemePreference(pref string) {
	if dark, ok := resolveTheme(pref); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}
