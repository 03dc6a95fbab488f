package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/scrapcore/cli"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// questLabel turns a quest stage into a short human label.
// "GATHER_PARTS" -> "Gather Parts".
func questLabel(stage types.QuestStage) string {
	words := strings.Split(strings.ToLower(string(stage)), "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing
// position, quest, leader and scrap. In combat the enemy replaces the
// position; after the run it shows the final score.
func (m Model) renderStatusBar() string {
	p := m.engine.Player()

	left := fmt.Sprintf(" (%d, %d) | %s", p.Pos.X, p.Pos.Y, questLabel(p.Quest.Stage))
	if p.Quest.Stage == types.GatherParts {
		left += fmt.Sprintf(" %d/%d", p.Quest.PartsFound, p.Quest.PartsNeeded)
	}
	if en := m.engine.Enemy(); en != nil {
		left = fmt.Sprintf(" VS %s (%s) %d/%d", en.Name, en.Class, en.HP, en.MaxHP)
	}
	if m.engine.Traveling() {
		left += fmt.Sprintf(" | travel %d", len(m.engine.Route()))
	}

	right := fmt.Sprintf("Scrap:%d ", p.Scrap)
	if b := state.ActiveBot(&p); b != nil {
		candidate := fmt.Sprintf("%s %d/%d | Scrap:%d ", b.Name, b.HP, state.EffectiveMaxHP(b), p.Scrap)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}
	if m.engine.Ended() {
		right = fmt.Sprintf("%s | Score:%d ", m.engine.Mode(), m.engine.Score())
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderMap draws the area around the squad as a bordered, coloured panel.
func (m Model) renderMap() string {
	rows := cli.MapRows(m.engine, cli.MapRadius)
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, g := range row {
			sb.WriteString(styledGlyph(g))
		}
	}
	return styleMapBox.Render(sb.String())
}
