package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/scrapcore/engine"
	"github.com/nathoo/scrapcore/engine/parser"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// minMapWidth is the terminal width below which the map panel is hidden.
const minMapWidth = 60

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // true for echoed player input
}

// Model is the Bubble Tea model for the scrapcore TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// revealMsg carries log entries whose presentation delay has elapsed.
type revealMsg struct {
	entries []types.LogEntry
}

// unlockMsg ends a combat input lock.
type unlockMsg struct{}

// travelMsg asks for the next step of the route with the given generation.
type travelMsg struct {
	gen int
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	m := New(eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the boot text.
func (m Model) Init() tea.Cmd {
	res := m.engine.Start()
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return revealMsg{entries: res.Log}
	})
}

// Update handles messages (key presses, window resize, timers).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.logWidth(), vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case revealMsg:
		m = m.appendEntries(msg.entries)

	case unlockMsg:
		m.engine.ReleaseInput()

	case travelMsg:
		res := m.engine.TickTravel(msg.gen)
		return m, m.present(res)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendSystem(input, []string{"Nothing to repeat."})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendSystem(input, output)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m = m.appendInput(input)
	if m.engine.Locked() {
		m = m.appendSystem("", []string{"Processing..."})
		return m, nil
	}
	cmd := parser.Parse(input, m.engine.Mode() == types.InCombat)
	if cmd == nil {
		m = m.appendSystem("", []string{"I don't understand that. Type /help for commands."})
		return m, nil
	}
	return m, m.present(m.engine.Step(cmd))
}

// present shows a command result and schedules what it started: delayed log
// entries, the end of an input lock and the next travel step.
func (m *Model) present(res types.Result) tea.Cmd {
	now, later := splitByDelay(res.Log)
	*m = m.appendEntries(now)
	if m.trace {
		*m = m.appendTrace(res)
	}

	var cmds []tea.Cmd
	for _, group := range later {
		cmds = append(cmds, tea.Tick(group[0].Delay, func(time.Time) tea.Msg {
			return revealMsg{entries: group}
		}))
	}
	if res.Lock > 0 {
		cmds = append(cmds, tea.Tick(res.Lock, func(time.Time) tea.Msg {
			return unlockMsg{}
		}))
	}
	if m.engine.Traveling() {
		gen := m.engine.TravelGeneration()
		cmds = append(cmds, tea.Tick(m.engine.Rules().TravelInterval, func(time.Time) tea.Msg {
			return travelMsg{gen: gen}
		}))
	}
	return tea.Batch(cmds...)
}

// splitByDelay separates entries shown at once from those revealed later,
// grouped by delay in ascending order.
func splitByDelay(entries []types.LogEntry) (now []types.LogEntry, later [][]types.LogEntry) {
	byDelay := map[time.Duration][]types.LogEntry{}
	var delays []time.Duration
	for _, e := range entries {
		if e.Delay <= 0 {
			now = append(now, e)
			continue
		}
		if _, ok := byDelay[e.Delay]; !ok {
			delays = append(delays, e.Delay)
		}
		byDelay[e.Delay] = append(byDelay[e.Delay], e)
	}
	sort.Slice(delays, func(i, j int) bool { return delays[i] < delays[j] })
	for _, d := range delays {
		later = append(later, byDelay[d])
	}
	return now, later
}

func (m Model) appendInput(input string) Model {
	m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
	m.refreshViewport()
	return m
}

// appendEntries adds log entries to the narrative and refreshes the viewport.
func (m Model) appendEntries(entries []types.LogEntry) Model {
	if len(entries) == 0 {
		return m
	}
	for _, e := range entries {
		m.rawLines = append(m.rawLines, rawLine{text: e.Message, kind: kindOf(e.Severity)})
	}
	m.refreshViewport()
	return m
}

// appendSystem adds meta-command output, optionally echoing the input.
func (m Model) appendSystem(input string, lines []string) Model {
	if input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
	}
	for _, line := range lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: kindSystem})
	}
	m.refreshViewport()
	return m
}

func (m Model) appendTrace(res types.Result) Model {
	for _, line := range m.formatTrace(res) {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: kindTrace})
	}
	m.refreshViewport()
	return m
}

// logWidth is the width left for the narrative next to the map panel.
func (m Model) logWidth() int {
	if m.width < minMapWidth {
		return m.width
	}
	return m.width - lipgloss.Width(m.renderMap()) - 1
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.logWidth()
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wrapped))
			continue
		}
		styled = append(styled, renderLineKind(wrapped, rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: narrative and map, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	body := m.viewport.View()
	if m.width >= minMapWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.renderMap())
	}
	return body + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/team":
		return m.cmdTeam(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Position, quest and squad summary",
		"  /team         Squad and base camp",
		"  /trace        Toggle debug trace output",
		"",
		"Exploring:",
		"  n/s/e/w               Move one tile",
		"  travel <x> <y>        Walk a route to a tile",
		"  interact (x)          Use what is here or ahead",
		"  switch <n>, swap <n> <m>, bench <n>, deploy <m>",
		"  equip/store <skill>, use <item> [n], buy <module>, repair",
		"",
		"Combat:",
		"  <skill>, shield, recruit, switch <n>, use <item>",
		"  again (g)             Repeat your last command",
		"",
		"Map: @ squad  P pod  G guardian  C cache  D derelict  N npc  # wall  : debris  ~ acid",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	p := m.engine.Player()
	output := []string{
		fmt.Sprintf("Mode: %s", m.engine.Mode()),
		fmt.Sprintf("Position: (%d, %d) facing %s", p.Pos.X, p.Pos.Y, p.Facing),
		fmt.Sprintf("Quest: %s (parts %d/%d)", p.Quest.Stage, p.Quest.PartsFound, p.Quest.PartsNeeded),
		fmt.Sprintf("Scrap: %d", p.Scrap),
	}
	if len(p.Inventory) > 0 {
		var inv []string
		for _, it := range p.Inventory {
			inv = append(inv, fmt.Sprintf("%s x%d", it.Name, it.Count))
		}
		output = append(output, "Inventory: "+strings.Join(inv, ", "))
	}
	if label := m.engine.AvailableInteraction(); label != "" {
		output = append(output, "Here: "+label)
	}
	return output
}

func (m *Model) cmdTeam() []string {
	p := m.engine.Player()
	var output []string
	for i := range p.Team {
		b := &p.Team[i]
		marker := " "
		if i == p.ActiveSlot {
			marker = "*"
		}
		output = append(output, fmt.Sprintf("%s%d %s L%d HP %d/%d RAM: %s",
			marker, i+1, b.Name, b.Level, b.HP, state.EffectiveMaxHP(b), strings.Join(b.ActiveSkills, ", ")))
	}
	for i, b := range p.Reserves {
		output = append(output, fmt.Sprintf("  camp %d %s L%d", i+1, b.Name, b.Level))
	}
	return output
}

func (m *Model) formatTrace(result types.Result) []string {
	var lines []string
	if !result.Handled {
		lines = append(lines, "[trace] ignored")
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s", e.Type))
		}
	}
	if result.Lock > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Lock: %s", result.Lock))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

