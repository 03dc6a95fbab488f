// Package engine provides the exploration controller and the command
// surface that wires the world, pathfinder, combat resolver and quest
// state machine into single commands.
package engine

import (
	"fmt"
	"time"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/engine/combat"
	"github.com/nathoo/scrapcore/engine/dialogue"
	"github.com/nathoo/scrapcore/engine/events"
	"github.com/nathoo/scrapcore/engine/resolve"
	"github.com/nathoo/scrapcore/engine/rng"
	"github.com/nathoo/scrapcore/engine/score"
	"github.com/nathoo/scrapcore/engine/snapshot"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/engine/world"
	"github.com/nathoo/scrapcore/types"
)

// Version is reported in snapshots.
const Version = "0.1.0"

// Config selects the content, balance and seed of a run.
type Config struct {
	Seed     int64
	Registry *catalog.Registry // nil means the built-in catalog
	Rules    *Rules            // nil means DefaultRules
	Pod      *types.Position   // fixed pod position; nil places it at random
}

// Engine owns all mutable state of one run. It is not safe for concurrent
// use; drivers call it from a single goroutine.
type Engine struct {
	reg      *catalog.Registry
	rules    Rules
	world    world.Config
	rng      *rng.RNG
	resolver *combat.Resolver
	log      *events.Log
	handlers []events.Handler

	player types.Player
	mode   types.Mode
	enc    *combat.Encounter

	locked    bool
	route     []types.Position
	travelGen int

	score int
	won   bool
}

// turn is the private copy a command works on until it commits.
type turn struct {
	p      types.Player
	events []types.Event
	lock   time.Duration
}

// New creates an engine for a fresh run.
func New(cfg Config) *Engine {
	reg := cfg.Registry
	if reg == nil {
		reg = catalog.Default()
	}
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	r := rng.New(cfg.Seed)

	var wc world.Config
	if cfg.Pod != nil {
		wc = world.NewConfig(rules.Layout, *cfg.Pod)
	} else {
		wc = world.RandomConfig(rules.Layout, r)
	}

	e := &Engine{
		reg:      reg,
		rules:    rules,
		world:    wc,
		rng:      r,
		resolver: &combat.Resolver{Reg: reg, RNG: r, Rules: rules.Combat},
		log:      events.NewLog(events.DefaultHistory),
		player:   state.NewPlayer(reg, types.Position{}, rules.PartsNeeded),
		mode:     types.Exploring,
	}
	e.handlers = e.questHandlers()
	return e
}

// Start returns the boot message of a new run.
func (e *Engine) Start() types.Result {
	e.log.Begin()
	e.log.Add("SYSTEM REBOOT... Unit online. Scrapyard sector uncharted.", types.SevInfo)
	if h := dialogue.StageHint(e.player.Quest); h != "" {
		e.log.Add(h, types.SevInfo)
	}
	return types.Result{Handled: true, Log: e.log.Current()}
}

// Step runs any command of the command surface. Skill, item and module
// names are resolved against what the squad can use first.
func (e *Engine) Step(cmd types.Command) types.Result {
	cmd, err := resolve.Command(cmd, &e.player, e.reg)
	if err != nil {
		if e.locked || e.Ended() {
			return types.Result{}
		}
		e.log.Begin()
		return e.refuse(err.Error())
	}
	switch c := cmd.(type) {
	case types.Move:
		return e.Move(c.DX, c.DY)
	case types.NavigateTo:
		return e.NavigateTo(c.X, c.Y)
	case types.Interact:
		return e.Interact()
	case types.SwitchActiveBot:
		return e.SwitchActiveBot(c.Index)
	case types.SwapReserve:
		return e.SwapReserve(c.TeamIndex, c.ReserveIndex)
	case types.EquipSkill:
		return e.EquipSkill(c.SkillID, c.ToActive)
	case types.UseItem:
		return e.UseItem(c.ItemID, c.BotIndex)
	case types.BuyModule:
		return e.BuyModule(c.ModuleID)
	case types.Repair:
		return e.Repair()
	case types.CombatAction:
		return e.SubmitCombatAction(c.Action)
	}
	return types.Result{}
}

// SubmitCombatAction resolves one combat round. The result's Lock is how
// long the presentation needs; input stays locked until ReleaseInput.
func (e *Engine) SubmitCombatAction(a types.Action) types.Result {
	if !e.accepts(types.InCombat) {
		return types.Result{}
	}
	t := e.begin()
	enc := *e.enc
	rd := e.resolver.Resolve(&t.p, &enc, a, e.log)
	if !rd.Handled {
		return e.refuse("")
	}
	t.events = rd.Events

	switch rd.Outcome {
	case combat.Won, combat.Recruited:
		e.enc = nil
		e.mode = types.Exploring
	case combat.Lost:
		e.enc = nil
		e.finish(t, false)
	default:
		*e.enc = enc
	}
	t.lock = e.log.Offset()
	e.locked = true
	return e.commit(t)
}

// ReleaseInput clears the input lock set by a combat round.
func (e *Engine) ReleaseInput() { e.locked = false }

// Locked reports whether input is refused until ReleaseInput.
func (e *Engine) Locked() bool { return e.locked }

// Player returns a copy of the player state.
func (e *Engine) Player() types.Player { return state.Clone(e.player) }

// Enemy returns the current enemy, or nil outside combat.
func (e *Engine) Enemy() *types.Enemy {
	if e.enc == nil {
		return nil
	}
	en := e.enc.Enemy
	return &en
}

// Phase is the combat phase, or "" outside combat.
func (e *Engine) Phase() combat.Phase {
	if e.enc == nil {
		return ""
	}
	return e.enc.Phase
}

// Log returns the retained log entries, oldest first.
func (e *Engine) Log() []types.LogEntry { return e.log.History() }

// Mode is the top-level game mode.
func (e *Engine) Mode() types.Mode { return e.mode }

// QuestStage is the current quest stage.
func (e *Engine) QuestStage() types.QuestStage { return e.player.Quest.Stage }

// World is the immutable world configuration of this run.
func (e *Engine) World() world.Config { return e.world }

// Registry is the content catalog of this run.
func (e *Engine) Registry() *catalog.Registry { return e.reg }

// Rules are the balance constants of this run.
func (e *Engine) Rules() Rules { return e.rules }

// Seed is the seed of the run's random source.
func (e *Engine) Seed() int64 { return e.rng.Seed() }

// Score is the final score once the run has ended, otherwise 0.
func (e *Engine) Score() int { return e.score }

// Won reports whether the run ended in victory.
func (e *Engine) Won() bool { return e.won }

// Ended reports whether the run is over.
func (e *Engine) Ended() bool { return e.mode == types.GameOver || e.mode == types.Victory }

// Snapshot returns the observable state.
func (e *Engine) Snapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Version:     Version,
		Seed:        e.rng.Seed(),
		Mode:        e.mode,
		QuestStage:  e.player.Quest.Stage,
		Player:      e.Player(),
		Enemy:       e.Enemy(),
		Pod:         e.world.Pod,
		Guardian:    e.world.Guardian,
		Interaction: e.AvailableInteraction(),
		Log:         e.Log(),
		Locked:      e.locked,
		Score:       e.score,
		Won:         e.won,
	}
}

// accepts reports whether a command for the given mode may run now. Any
// accepted command cancels travel in progress.
func (e *Engine) accepts(mode types.Mode) bool {
	if e.locked || e.mode != mode {
		return false
	}
	e.cancelTravel()
	return true
}

func (e *Engine) begin() *turn {
	e.log.Begin()
	return &turn{p: state.Clone(e.player)}
}

// commit dispatches the turn's events, then replaces the player state.
func (e *Engine) commit(t *turn) types.Result {
	events.Dispatch(t.events, &t.p, e.handlers, e.log)
	e.player = t.p
	res := types.Result{
		Handled: true,
		Log:     e.log.Current(),
		Events:  t.events,
		Lock:    t.lock,
	}
	if e.Ended() {
		res.Score = e.score
	}
	return res
}

// refuse reports an ignored command, with an optional status line.
func (e *Engine) refuse(msg string) types.Result {
	if msg != "" {
		e.log.Add(msg, types.SevWarn)
	}
	return types.Result{Log: e.log.Current()}
}

// finish ends the run and computes the final score.
func (e *Engine) finish(t *turn, won bool) {
	e.cancelTravel()
	e.won = won
	if won {
		e.mode = types.Victory
	} else {
		e.mode = types.GameOver
	}
	e.score = score.Compute(t.p.Stats, won, e.rules.Scoring)
	if won {
		e.log.Add("MISSION COMPLETE. The escape pod has launched.", types.SevGain)
	} else {
		e.log.Add("GAME OVER. All units offline.", types.SevDanger)
	}
	e.log.Add(fmt.Sprintf("Final score: %d", e.score), types.SevInfo)
	t.events = append(t.events, types.Event{
		Type: events.RunEnded,
		Data: map[string]any{"won": won, "score": e.score},
	})
}

// questHandlers advance the quest on events raised by the combat resolver.
func (e *Engine) questHandlers() []events.Handler {
	return []events.Handler{
		{
			EventType: events.BossDefeated,
			When:      func(p *types.Player) bool { return p.Quest.Stage == types.DefeatGuardian },
			Apply: func(p *types.Player, _ types.Event, log *events.Log) {
				if tool, ok := e.reg.Item(e.reg.OmniToolID()); ok {
					state.AddItem(p, tool)
				}
				p.Quest.HasOmniTool = true
				p.Quest.Stage = types.RepairPod
				p.Stats.QuestsCompleted++
				log.Add("GUARDIAN DEFEATED! OMNI-TOOL ACQUIRED.", types.SevGain)
			},
		},
	}
}
