package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/scrapcore/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	stylePlayer = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	styleEnemy = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleMapBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Map glyph colours, keyed by the plain-text glyph.
var glyphStyles = map[rune]lipgloss.Style{
	'@': lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	'P': lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	'G': lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	'C': lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
	'D': lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	'N': lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	'#': lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	':': lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	'~': lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	'.': lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindInfo lineKind = iota
	kindPlayer
	kindEnemy
	kindGain
	kindDanger
	kindWarn
	kindSystem
	kindTrace
)

// kindOf maps a log severity to its line kind.
func kindOf(sev types.Severity) lineKind {
	switch sev {
	case types.SevPlayer:
		return kindPlayer
	case types.SevEnemy:
		return kindEnemy
	case types.SevGain:
		return kindGain
	case types.SevDanger:
		return kindDanger
	case types.SevWarn:
		return kindWarn
	}
	return kindInfo
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindPlayer:
		return stylePlayer.Render(line)
	case kindEnemy:
		return styleEnemy.Render(line)
	case kindGain:
		return styleGain.Render(line)
	case kindDanger:
		return styleDanger.Render(line)
	case kindWarn:
		return styleWarn.Render(line)
	case kindSystem:
		return styledSystemMsg(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleInfo.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

func styledGlyph(g rune) string {
	if s, ok := glyphStyles[g]; ok {
		return s.Render(string(g))
	}
	return string(g)
}
