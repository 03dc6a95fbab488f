package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/scrapcore/engine"
	"github.com/nathoo/scrapcore/types"
)

// newTestEngine returns an engine with a far pod and no random encounters.
func newTestEngine() *engine.Engine {
	rules := engine.DefaultRules()
	rules.EncounterChance = 0
	pod := types.Position{X: 150, Y: -150}
	return engine.New(engine.Config{Seed: 3, Rules: &rules, Pod: &pod})
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := &CLI{
		Engine: newTestEngine(),
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_Intro(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "SYSTEM REBOOT") {
		t.Error("expected boot message in output")
	}
	if !strings.Contains(output, "Goodbye.") {
		t.Error("expected goodbye on /quit")
	}
}

func TestCLI_Move(t *testing.T) {
	c, out := newTestCLI(t, "e\n/state\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Position: (1, 0) facing RIGHT") {
		t.Errorf("expected new position in state output, got:\n%s", out.String())
	}
}

func TestCLI_TravelWalksWholeRoute(t *testing.T) {
	c, out := newTestCLI(t, "travel 2 0\n/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Navigating to (2, 0)") {
		t.Error("expected navigation message")
	}
	if !strings.Contains(output, "Position: (2, 0)") {
		t.Errorf("expected to arrive at (2, 0), got:\n%s", output)
	}
	if c.Engine.Traveling() {
		t.Error("route should be finished")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "e\ng\n/state\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Position: (2, 0)") {
		t.Errorf("expected two steps east, got:\n%s", out.String())
	}
}

func TestCLI_AgainWithNothing(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Error("expected nothing to repeat message")
	}
}

func TestCLI_NotUnderstood(t *testing.T) {
	c, out := newTestCLI(t, "dance wildly\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "I don't understand that.") {
		t.Error("expected parse failure message")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/map", "/quit", "travel", "recruit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nw\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_TraceIgnored(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nrepair\n/quit\n")
	c.Run()

	// Repair at full health is refused.
	if !strings.Contains(out.String(), "[trace] ignored") {
		t.Errorf("expected ignored trace line, got:\n%s", out.String())
	}
}

func TestCLI_Map(t *testing.T) {
	c, out := newTestCLI(t, "/map\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "@") {
		t.Error("expected squad marker in map output")
	}

	rows := MapRows(c.Engine, MapRadius)
	if len(rows) != 2*MapRadius+1 {
		t.Fatalf("expected %d map rows, got %d", 2*MapRadius+1, len(rows))
	}
	if rows[MapRadius][MapRadius] != '@' {
		t.Errorf("centre = %q, want @", rows[MapRadius][MapRadius])
	}
}

func TestCLI_DumpAndTeam(t *testing.T) {
	c, out := newTestCLI(t, "/dump\n/team\n/shop\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, `"mode": "EXPLORING"`) {
		t.Error("expected JSON snapshot")
	}
	if !strings.Contains(output, "*1 Scout-01") {
		t.Error("expected active leader in team listing")
	}
	if !strings.Contains(output, "hull_plating") {
		t.Error("expected module shop listing")
	}
}

func TestCLI_CommentsAndEcho(t *testing.T) {
	c, out := newTestCLI(t, "# a comment\nrepair\n/quit\n")
	c.EchoInput = true
	c.Run()

	output := out.String()
	if strings.Contains(output, "a comment") {
		t.Error("comment lines should be skipped")
	}
	if !strings.Contains(output, "> repair") {
		t.Error("expected echoed input after the prompt")
	}
}

func TestGlyph(t *testing.T) {
	e := newTestEngine()
	w := e.World()
	if g := Glyph(w, nil, w.Pod.X, w.Pod.Y); g != 'P' {
		t.Errorf("pod glyph = %q", g)
	}
	if g := Glyph(w, nil, w.Guardian.X, w.Guardian.Y); g != 'G' {
		t.Errorf("guardian glyph = %q", g)
	}
	if g := Glyph(w, nil, 0, 0); g != '.' {
		t.Errorf("origin glyph = %q", g)
	}
}
