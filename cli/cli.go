// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the scrapcore engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/scrapcore/engine"
	"github.com/nathoo/scrapcore/engine/parser"
	"github.com/nathoo/scrapcore/engine/snapshot"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// MapRadius is how many tiles /map shows around the squad.
const MapRadius = 6

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop: boot message, then prompt, input, dispatch and
// output until the input ends, /quit, or the run is over. Presentation
// delays are not waited for; input locks are released right away.
func (c *CLI) Run() {
	c.printResult(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for !c.Engine.Ended() {
		c.print(c.prompt())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		cmd := parser.Parse(input, c.Engine.Mode() == types.InCombat)
		if cmd == nil {
			c.printLine("I don't understand that. Type /help for commands.")
			continue
		}
		c.step(cmd)
	}
}

// step runs one command, then drains whatever it started: combat locks are
// released and planned routes are walked to the end.
func (c *CLI) step(cmd types.Command) {
	res := c.Engine.Step(cmd)
	c.printResult(res)
	if c.Trace {
		c.printTrace(res)
	}
	if c.Engine.Locked() {
		c.Engine.ReleaseInput()
	}
	for c.Engine.Traveling() {
		res := c.Engine.TickTravel(c.Engine.TravelGeneration())
		c.printResult(res)
		if c.Trace {
			c.printTrace(res)
		}
	}
}

func (c *CLI) prompt() string {
	if c.Engine.Mode() == types.InCombat {
		if en := c.Engine.Enemy(); en != nil {
			return fmt.Sprintf("[%s %d/%d] > ", en.Name, en.HP, en.MaxHP)
		}
	}
	return "> "
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/dump":
		c.cmdDump()

	case "/map":
		for _, row := range MapRows(c.Engine, MapRadius) {
			c.printLine(row)
		}

	case "/team":
		c.cmdTeam()

	case "/shop":
		c.cmdShop()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Position, quest and squad summary",
		"  /dump         Full state as JSON",
		"  /map          Show the area around the squad",
		"  /team         Squad, reserves and skills",
		"  /shop         Modules for sale",
		"  /trace        Toggle debug trace output",
		"",
		"Exploring:",
		"  n/s/e/w, go <dir>       Move one tile",
		"  travel <x> <y>          Walk a route to a tile",
		"  interact (x)            Use what is here or ahead",
		"  switch <n>              Make squad slot n the leader",
		"  swap <n> <m>            Trade squad slot n with reserve m",
		"  bench <n> / deploy <m>  Send to or call from base camp",
		"  equip/store <skill>     Load or unload a skill",
		"  use <item> [n]          Use an item on the leader or slot n",
		"  buy <module>            Install a module on the leader",
		"  repair                  Spend scrap to patch the leader",
		"",
		"Combat:",
		"  <skill>                 Use an active skill, e.g. laser shot",
		"  shield                  Shield module",
		"  recruit                 Try to reprogram the enemy",
		"  switch <n>              Swap in slot n (costs the turn)",
		"  use <item>              Use an item on the active bot",
		"",
		"  again (g)               Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	p := c.Engine.Player()
	q := p.Quest
	c.printSystem(fmt.Sprintf("Mode: %s", c.Engine.Mode()))
	c.printSystem(fmt.Sprintf("Position: (%d, %d) facing %s", p.Pos.X, p.Pos.Y, p.Facing))
	c.printSystem(fmt.Sprintf("Quest: %s (parts %d/%d)", q.Stage, q.PartsFound, q.PartsNeeded))
	c.printSystem(fmt.Sprintf("Scrap: %d", p.Scrap))
	if b := state.ActiveBot(&p); b != nil {
		c.printSystem(fmt.Sprintf("Leader: %s", botLine(b)))
	}
	if len(p.Inventory) > 0 {
		var inv []string
		for _, it := range p.Inventory {
			inv = append(inv, fmt.Sprintf("%s x%d", it.Name, it.Count))
		}
		c.printSystem("Inventory: " + strings.Join(inv, ", "))
	}
	if label := c.Engine.AvailableInteraction(); label != "" {
		c.printSystem("Here: " + label)
	}
}

func (c *CLI) cmdDump() {
	data, err := snapshot.Encode(c.Engine.Snapshot())
	if err != nil {
		c.printSystem(fmt.Sprintf("Dump failed: %v", err))
		return
	}
	c.printLine(string(data))
}

func (c *CLI) cmdTeam() {
	p := c.Engine.Player()
	for i := range p.Team {
		marker := " "
		if i == p.ActiveSlot {
			marker = "*"
		}
		b := &p.Team[i]
		c.printLine(fmt.Sprintf("%s%d %s", marker, i+1, botLine(b)))
		c.printLine(fmt.Sprintf("    RAM: %s", strings.Join(b.ActiveSkills, ", ")))
		if len(b.StoredSkills) > 0 {
			c.printLine(fmt.Sprintf("    Stored: %s", strings.Join(b.StoredSkills, ", ")))
		}
	}
	if len(p.Reserves) == 0 {
		return
	}
	c.printLine("Base camp:")
	for i := range p.Reserves {
		c.printLine(fmt.Sprintf("  %d %s", i+1, botLine(&p.Reserves[i])))
	}
}

func (c *CLI) cmdShop() {
	for _, m := range c.Engine.Registry().Modules() {
		c.printLine(fmt.Sprintf("  %-16s %4d scrap  %s", m.ID, m.Cost, m.Description))
	}
}

func botLine(b *types.Bot) string {
	status := ""
	if b.IsDefeated {
		status = " OFFLINE"
	}
	return fmt.Sprintf("%s (%s L%d) HP %d/%d XP %d/%d%s",
		b.Name, b.Class, b.Level, b.HP, state.EffectiveMaxHP(b), b.XP, b.MaxXP, status)
}

func (c *CLI) printTrace(result types.Result) {
	if !result.Handled {
		c.printSystem("[trace] ignored")
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	if result.Lock > 0 {
		c.printSystem(fmt.Sprintf("[trace] Lock: %s", result.Lock))
	}
	if ph := c.Engine.Phase(); ph != "" {
		c.printSystem(fmt.Sprintf("[trace] Phase: %s", ph))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, e := range result.Log {
		c.printLine(e.Message)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
