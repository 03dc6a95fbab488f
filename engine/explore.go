package engine

import (
	"fmt"
	"math"

	"github.com/nathoo/scrapcore/engine/combat"
	"github.com/nathoo/scrapcore/engine/dialogue"
	"github.com/nathoo/scrapcore/engine/events"
	"github.com/nathoo/scrapcore/engine/path"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/engine/world"
	"github.com/nathoo/scrapcore/types"
)

// neighbours in scan order: up, right, down, left.
var neighbours = [4]types.Position{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// Move takes a single step. Walls refuse the step but still turn the squad.
func (e *Engine) Move(dx, dy int) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	if !e.step(t, dx, dy) {
		e.player.Facing = t.p.Facing
		return e.refuse("Blocked.")
	}
	return e.commit(t)
}

// NavigateTo plans a route to (x, y). The route is walked one tile per
// TickTravel call.
func (e *Engine) NavigateTo(x, y int) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	goal := types.Position{X: x, Y: y}
	route, ok := path.Find(e.world, t.p.Pos, goal, e.rules.PathBudget)
	if !ok {
		return e.refuse("No path.")
	}
	if len(route) == 0 {
		return e.refuse("")
	}
	e.route = route
	e.travelGen++
	e.log.Add(fmt.Sprintf("Navigating to (%d, %d): %d steps.", x, y, len(route)), types.SevInfo)
	return e.commit(t)
}

// TickTravel advances a planned route by one tile. gen must match the
// generation returned by TravelGeneration when the tick was scheduled;
// stale ticks are ignored.
func (e *Engine) TickTravel(gen int) types.Result {
	if gen != e.travelGen || len(e.route) == 0 || e.locked || e.mode != types.Exploring {
		return types.Result{}
	}
	t := e.begin()
	next := e.route[0]
	e.route = e.route[1:]
	if !e.step(t, next.X-t.p.Pos.X, next.Y-t.p.Pos.Y) {
		e.cancelTravel()
		e.player.Facing = t.p.Facing
		return e.refuse("Route blocked.")
	}
	return e.commit(t)
}

// Traveling reports whether a route is being walked.
func (e *Engine) Traveling() bool { return len(e.route) > 0 }

// TravelGeneration identifies the current route for scheduled ticks.
func (e *Engine) TravelGeneration() int { return e.travelGen }

// Route returns the remaining tiles of the planned route.
func (e *Engine) Route() []types.Position {
	return append([]types.Position(nil), e.route...)
}

func (e *Engine) cancelTravel() {
	if len(e.route) > 0 {
		e.route = nil
		e.travelGen++
	}
}

// step moves the squad one tile and applies what happens on arrival. It
// reports false if the destination is not walkable or the step is not a
// single orthogonal move.
func (e *Engine) step(t *turn, dx, dy int) bool {
	if abs(dx)+abs(dy) != 1 {
		return false
	}
	t.p.Facing = facing(dx, dy)
	dest := types.Position{X: t.p.Pos.X + dx, Y: t.p.Pos.Y + dy}
	if !e.world.Walkable(dest.X, dest.Y) {
		return false
	}
	t.p.Pos = dest
	t.p.Stats.Steps++

	if e.world.TerrainAt(dest.X, dest.Y) == types.AcidPool {
		e.acid(t)
		return true
	}
	if e.world.NearGuardian(dest.X, dest.Y) && e.guardianReady(&t.p) {
		e.startBoss(t)
		return true
	}
	e.rollEncounter(t)
	return true
}

// acid burns the active bot. A bot burnt to zero is defeated and stops
// any route; if no bot is left standing the run ends.
func (e *Engine) acid(t *turn) {
	bot := state.ActiveBot(&t.p)
	if bot == nil || bot.IsDefeated {
		return
	}
	taken := min(e.rules.AcidDamage, bot.HP)
	bot.HP -= taken
	t.p.Stats.DamageTaken += taken
	if bot.HP > 0 {
		e.log.Add(fmt.Sprintf("WARNING: Corrosive environment. %s -%d HP.", bot.Name, taken), types.SevWarn)
		return
	}

	bot.IsDefeated = true
	t.p.Stats.BotsLost++
	e.cancelTravel()
	e.log.Add(fmt.Sprintf("DANGER: Acid damage! %s disabled.", bot.Name), types.SevDanger)
	t.events = append(t.events, types.Event{Type: events.BotDefeated, Data: map[string]any{"bot": bot.ID}})
	next := state.FirstAlive(t.p.Team)
	if next < 0 {
		e.finish(t, false)
		return
	}
	t.p.ActiveSlot = next
	e.log.Add(fmt.Sprintf("Switching to %s.", t.p.Team[next].Name), types.SevWarn)
}

func (e *Engine) rollEncounter(t *turn) {
	pos := t.p.Pos
	if e.world.DistToPod(pos.X, pos.Y) < e.rules.PodSafeRadius {
		return
	}
	bot := state.ActiveBot(&t.p)
	if bot == nil || bot.IsDefeated {
		return
	}
	if !e.rng.Chance(e.encounterChance(bot)) {
		return
	}
	enemy, ok := combat.Spawn(e.reg, bot.Level, e.rng)
	if !ok {
		return
	}
	e.startCombat(t, enemy)
	e.log.Add(fmt.Sprintf("ALERT: %s approaching!", enemy.Name), types.SevDanger)
}

// encounterChance is the per-step encounter chance for bot, scaled down
// by a scanner module's percentage.
func (e *Engine) encounterChance(bot *types.Bot) float64 {
	chance := e.rules.EncounterChance
	if v, ok := state.ModuleValue(bot, types.Scanner); ok {
		chance *= float64(100-min(v, 100)) / 100
	}
	return chance
}

func (e *Engine) startCombat(t *turn, enemy types.Enemy) {
	e.cancelTravel()
	e.enc = combat.NewEncounter(enemy)
	e.mode = types.InCombat
}

// guardianReady reports whether the guardian fight can begin.
func (e *Engine) guardianReady(p *types.Player) bool {
	q := p.Quest
	return q.Stage == types.DefeatGuardian ||
		(q.Stage == types.GatherParts && q.PartsFound >= q.PartsNeeded)
}

// startBoss advances a completed gather stage and starts the guardian fight.
func (e *Engine) startBoss(t *turn) {
	if t.p.Quest.Stage == types.GatherParts {
		e.advance(t, types.DefeatGuardian)
		e.log.Add("Parts installed. GUARDIAN SIGNAL DETECTED.", types.SevDanger)
	}
	boss := combat.Boss(e.reg)
	e.startCombat(t, boss)
	e.log.Add(fmt.Sprintf("WARNING: %s ACTIVATED. PREPARE FOR COMBAT.", boss.Name), types.SevDanger)
}

func (e *Engine) advance(t *turn, stage types.QuestStage) {
	t.p.Quest.Stage = stage
	t.p.Stats.QuestsCompleted++
	t.events = append(t.events, types.Event{
		Type: events.QuestAdvanced,
		Data: map[string]any{"stage": string(stage)},
	})
}

// Interact resolves the point of interest the squad is on or facing.
func (e *Engine) Interact() types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	pos, poi := e.target(&t.p)
	switch poi {
	case types.Pod:
		e.pod(t)
	case types.Guardian:
		if !e.guardianReady(&t.p) {
			e.log.Add("A dormant guardian. Its sensors ignore you.", types.SevInfo)
			break
		}
		e.startBoss(t)
	case types.Cache:
		e.cache(t, pos)
	case types.NPC:
		t.p.Visited[world.Key(pos)] = true
		e.log.Add(dialogue.Greeting("Stranded Bot", dialogue.Hint(e.reg.Hints(), e.rng)), types.SevInfo)
	case types.Derelict:
		e.derelict(t, pos)
	default:
		return e.refuse("Nothing to interact with.")
	}
	return e.commit(t)
}

// AvailableInteraction labels what Interact would do right now, or "".
func (e *Engine) AvailableInteraction() string {
	if e.mode != types.Exploring {
		return ""
	}
	_, poi := e.target(&e.player)
	switch poi {
	case types.Pod:
		switch e.player.Quest.Stage {
		case types.FindPod:
			return "Inspect Escape Pod"
		case types.GatherParts:
			return fmt.Sprintf("Install Parts (%d/%d)", e.player.Quest.PartsFound, e.player.Quest.PartsNeeded)
		case types.DefeatGuardian:
			return "Confront Guardian"
		case types.RepairPod:
			return "Launch Escape Pod"
		}
	case types.Guardian:
		return "Approach Guardian"
	case types.Cache:
		return "Open Cache"
	case types.NPC:
		return "Talk"
	case types.Derelict:
		return fmt.Sprintf("Repair Derelict (%d scrap)", e.rules.RecruitCost)
	}
	return ""
}

// target picks the tile to interact with: the current tile if it holds
// a live POI, else the faced tile if it does, else the first neighbour
// that does, scanning up, right, down, left.
func (e *Engine) target(p *types.Player) (types.Position, types.POI) {
	if poi := e.livePOI(p, p.Pos); poi != types.NoPOI {
		return p.Pos, poi
	}
	ahead := p.Pos
	switch p.Facing {
	case types.FacingUp:
		ahead.Y--
	case types.FacingDown:
		ahead.Y++
	case types.FacingLeft:
		ahead.X--
	case types.FacingRight:
		ahead.X++
	}
	if poi := e.livePOI(p, ahead); poi != types.NoPOI {
		return ahead, poi
	}
	for _, d := range neighbours {
		n := types.Position{X: p.Pos.X + d.X, Y: p.Pos.Y + d.Y}
		if poi := e.livePOI(p, n); poi != types.NoPOI {
			return n, poi
		}
	}
	return ahead, types.NoPOI
}

// livePOI is the POI at pos, treating visited ones as gone.
func (e *Engine) livePOI(p *types.Player, pos types.Position) types.POI {
	poi := e.world.POIAt(pos.X, pos.Y)
	switch poi {
	case types.Pod, types.Guardian, types.NoPOI:
		return poi
	}
	if p.Visited[world.Key(pos)] {
		return types.NoPOI
	}
	return poi
}

func (e *Engine) pod(t *turn) {
	q := &t.p.Quest
	switch q.Stage {
	case types.FindPod:
		e.advance(t, types.GatherParts)
		e.log.Add(fmt.Sprintf("Escape pod found. Systems critical: needs %d hyperdrive parts.", q.PartsNeeded), types.SevGain)
	case types.GatherParts:
		if q.PartsFound < q.PartsNeeded {
			e.log.Add(fmt.Sprintf("Needs hyperdrive parts. Found: %d/%d", q.PartsFound, q.PartsNeeded), types.SevInfo)
			return
		}
		e.startBoss(t)
	case types.DefeatGuardian:
		e.log.Add("The guardian blocks the launch sequence!", types.SevDanger)
		e.startBoss(t)
	case types.RepairPod:
		if !q.HasOmniTool {
			e.log.Add("Need the Omni-Tool to initiate launch.", types.SevInfo)
			return
		}
		e.advance(t, types.Completed)
		e.finish(t, true)
	default:
		e.log.Add("The pod is gone.", types.SevInfo)
	}
}

func (e *Engine) cache(t *turn, pos types.Position) {
	t.p.Visited[world.Key(pos)] = true
	q := &t.p.Quest
	if q.Stage == types.GatherParts && q.PartsFound < q.PartsNeeded {
		dist := math.Hypot(float64(pos.X), float64(pos.Y))
		if e.rng.Chance(dist / e.rules.PartDistance) {
			if part, ok := e.reg.Item(e.reg.QuestPartID()); ok {
				state.AddItem(&t.p, part)
			}
			q.PartsFound++
			e.log.Add(fmt.Sprintf("Found hyperdrive part! (%d/%d)", q.PartsFound, q.PartsNeeded), types.SevGain)
			return
		}
	}
	scrap := e.rules.CacheScrapMin + e.rng.Intn(e.rules.CacheScrapSpread)
	t.p.Scrap += scrap
	t.p.Stats.ScrapCollected += scrap
	e.log.Add(fmt.Sprintf("Cache opened: found %d scrap.", scrap), types.SevGain)
}

func (e *Engine) derelict(t *turn, pos types.Position) {
	t.p.Visited[world.Key(pos)] = true
	if t.p.Scrap < e.rules.RecruitCost {
		t.p.Scrap += e.rules.ConsolationScrap
		t.p.Stats.ScrapCollected += e.rules.ConsolationScrap
		e.log.Add(fmt.Sprintf("Need %d scrap to repair. Salvaged %d scrap instead.",
			e.rules.RecruitCost, e.rules.ConsolationScrap), types.SevInfo)
		return
	}

	classes := e.reg.Classes()
	if len(classes) == 0 {
		return
	}
	t.p.Scrap -= e.rules.RecruitCost
	class := classes[e.rng.Intn(len(classes))].Class
	nb := state.NewBot(e.reg, state.NextBotID(&t.p), e.recruitName(&t.p), class, 1)
	if ps := e.reg.Personalities(); len(ps) > 0 {
		nb.Personality = ps[e.rng.Intn(len(ps))]
	}
	t.p.Stats.BotsRecruited++
	t.events = append(t.events, types.Event{
		Type: events.BotRecruited,
		Data: map[string]any{"bot": nb.ID, "class": string(nb.Class)},
	})
	if state.AddBot(&t.p, nb) {
		e.log.Add(fmt.Sprintf("Recruited %s (%s). Joined squad!", nb.Name, nb.Class), types.SevGain)
	} else {
		e.log.Add(fmt.Sprintf("Recruited %s (%s). Sent to base camp.", nb.Name, nb.Class), types.SevGain)
	}
}

// recruitName draws a name not used by any owned bot.
func (e *Engine) recruitName(p *types.Player) string {
	names := e.reg.Names()
	var free []string
	for _, n := range names {
		if !state.NameInUse(p, n) {
			free = append(free, n)
		}
	}
	if len(free) > 0 {
		return free[e.rng.Intn(len(free))]
	}
	base := "Unit"
	if len(names) > 0 {
		base = names[e.rng.Intn(len(names))]
	}
	return state.UniqueName(p, base)
}

func facing(dx, dy int) types.Facing {
	switch {
	case dx > 0:
		return types.FacingRight
	case dx < 0:
		return types.FacingLeft
	case dy < 0:
		return types.FacingUp
	}
	return types.FacingDown
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
