package combat

import (
	"fmt"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/engine/events"
	"github.com/nathoo/scrapcore/engine/rng"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// Phase is a state of the per-encounter machine.
type Phase string

const (
	AwaitingAction  Phase = "AWAITING_PLAYER_ACTION"
	ResolvingAction Phase = "RESOLVING_PLAYER_ACTION"
	CheckingVictory Phase = "CHECKING_VICTORY"
	EnemyTurn       Phase = "ENEMY_ATTACK"
	Terminal        Phase = "TERMINAL"
)

// Outcome is how a round left the encounter.
type Outcome int

const (
	Continue Outcome = iota
	Won
	Lost
	Recruited
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Recruited:
		return "recruited"
	}
	return "continue"
}

// Encounter is one battle against one enemy.
type Encounter struct {
	Enemy types.Enemy
	Phase Phase
	Round int
}

// NewEncounter starts a battle awaiting the player's first action.
func NewEncounter(e types.Enemy) *Encounter {
	return &Encounter{Enemy: e, Phase: AwaitingAction}
}

// Round is the result of one resolved player action.
type Round struct {
	Handled bool
	Outcome Outcome
	Trace   []Phase // phases visited in order
	Events  []types.Event
}

// Resolver resolves combat rounds against a content registry and the run's
// random source.
type Resolver struct {
	Reg   *catalog.Registry
	RNG   *rng.RNG
	Rules Rules
}

// Resolve runs one round: the player's action, the victory check and, if
// the enemy survives, its retaliation. Invalid actions are refused without
// consuming the turn. p and enc are modified in place.
func (r *Resolver) Resolve(p *types.Player, enc *Encounter, a types.Action, log *events.Log) Round {
	var rd Round
	if enc == nil || enc.Phase != AwaitingAction {
		return rd
	}
	bot := state.ActiveBot(p)
	if bot == nil {
		return rd
	}
	if !r.valid(p, bot, enc, a) {
		return rd
	}

	rd.Handled = true
	enc.Round++
	r.enter(enc, &rd, ResolvingAction)

	if r.playerAction(p, enc, a, log, &rd) {
		return rd
	}

	log.At(r.Rules.CheckDelay)
	r.enter(enc, &rd, CheckingVictory)
	if enc.Enemy.HP <= 0 {
		r.victory(p, enc, log, &rd)
		return rd
	}

	log.At(r.Rules.AttackDelay)
	r.enter(enc, &rd, EnemyTurn)
	r.enemyAttack(p, enc, log, &rd)
	if rd.Outcome == Lost {
		return rd
	}
	r.enter(enc, &rd, AwaitingAction)
	return rd
}

func (r *Resolver) enter(enc *Encounter, rd *Round, ph Phase) {
	enc.Phase = ph
	rd.Trace = append(rd.Trace, ph)
}

func (r *Resolver) valid(p *types.Player, bot *types.Bot, enc *Encounter, a types.Action) bool {
	switch a := a.(type) {
	case types.UseSkill:
		if bot.IsDefeated || !state.IsActiveSkill(bot, a.SkillID) {
			return false
		}
		_, ok := r.Reg.Skill(a.SkillID)
		return ok
	case types.ShieldModule:
		return !bot.IsDefeated
	case types.Recruit:
		return !enc.Enemy.IsBoss
	case types.SwitchTo:
		if a.Slot < 0 || a.Slot >= len(p.Team) || a.Slot == p.ActiveSlot {
			return false
		}
		return !p.Team[a.Slot].IsDefeated
	case types.CombatItem:
		i := state.FindItem(p, a.ItemID)
		if i < 0 || p.Inventory[i].Count <= 0 {
			return false
		}
		probe := state.CloneBot(*bot)
		_, ok := state.ApplyItem(&probe, p.Inventory[i], r.Reg, r.Rules.LevelHP)
		return ok
	}
	return false
}

// playerAction applies the action. It reports true when the encounter
// ended during the action itself.
func (r *Resolver) playerAction(p *types.Player, enc *Encounter, a types.Action, log *events.Log, rd *Round) bool {
	bot := state.ActiveBot(p)
	switch a := a.(type) {
	case types.UseSkill:
		s, _ := r.Reg.Skill(a.SkillID)
		p.Stats.SkillUsage[s.ID]++
		r.useSkill(p, bot, s, enc, log)

	case types.ShieldModule:
		v, ok := state.ModuleValue(bot, types.ShieldGen)
		if !ok {
			v = r.Rules.ShieldModDefault
		}
		bot.Shield += v
		log.Add(fmt.Sprintf("Shields up (+%d).", v), types.SevGain)

	case types.Recruit:
		return r.recruit(p, bot, enc, log, rd)

	case types.SwitchTo:
		p.ActiveSlot = a.Slot
		log.Add(fmt.Sprintf("Switched to %s.", p.Team[a.Slot].Name), types.SevInfo)

	case types.CombatItem:
		i := state.FindItem(p, a.ItemID)
		it := p.Inventory[i]
		use, _ := state.ApplyItem(bot, it, r.Reg, r.Rules.LevelHP)
		state.TakeItem(p, it.ID)
		p.Stats.HealingDone += use.Healed
		log.Add(fmt.Sprintf("Used %s.", it.Name), types.SevInfo)
		ItemLog(bot, use, log)
		rd.Events = append(rd.Events, LevelEvents(bot, use.Ups)...)
	}
	return false
}

func (r *Resolver) useSkill(p *types.Player, bot *types.Bot, s types.Skill, enc *Encounter, log *events.Log) {
	switch s.Category {
	case types.CategoryAttack, types.CategoryTech:
		boost, _ := state.ModuleValue(bot, types.DamageBoost)
		h := SkillDamage(s, bot.Level, boost, enc.Enemy.Class, r.RNG)
		if s.Roll == types.RollGamble {
			if h.Failed {
				log.Add("Hack failed!", types.SevPlayer)
			} else {
				log.Add("Hack successful!", types.SevPlayer)
			}
		}
		if h.Damage <= 0 {
			return
		}
		dealt := min(h.Damage, enc.Enemy.HP)
		enc.Enemy.HP -= dealt
		p.Stats.DamageDealt += dealt
		log.Add(fmt.Sprintf("%s used %s for %d dmg!", bot.Name, s.Name, h.Damage), types.SevPlayer)
		switch {
		case h.Multiplier > 1:
			log.Add("It's super effective!", types.SevGain)
		case h.Multiplier < 1:
			log.Add("It's not very effective...", types.SevWarn)
		}

	case types.CategoryDefense:
		v := s.Shield + bot.Level*r.Rules.ShieldPerLevel
		bot.Shield += v
		log.Add(fmt.Sprintf("%s used %s. Shields raised (+%d).", bot.Name, s.Name, v), types.SevGain)

	case types.CategorySupport:
		if s.Heal <= 0 {
			log.Add(fmt.Sprintf("%s used %s.", bot.Name, s.Name), types.SevPlayer)
			return
		}
		healed := state.Heal(bot, s.Heal)
		p.Stats.HealingDone += healed
		log.Add(fmt.Sprintf("%s used %s (+%d HP).", bot.Name, s.Name, healed), types.SevGain)
	}
}

func (r *Resolver) recruit(p *types.Player, bot *types.Bot, enc *Encounter, log *events.Log, rd *Round) bool {
	chance := RecruitChance(enc.Enemy, r.Rules.RecruitCap)
	if !r.RNG.Chance(chance) {
		log.Add("Recruit failed! Firewall too strong.", types.SevDanger)
		return false
	}
	log.Add("HACK SUCCESSFUL! Enemy rebooted.", types.SevGain)

	e := enc.Enemy
	nb := state.NewBot(r.Reg, state.NextBotID(p), state.UniqueName(p, RecruitName(e)), e.Class, bot.Level)
	nb.MaxHP = e.MaxHP
	nb.HP = max(int(float64(e.MaxHP)*r.Rules.RecruitHPFactor), 1)
	nb.Personality = "Reformatted. Awaiting orders."

	log.At(r.Rules.RecruitDelay)
	if state.AddBot(p, nb) {
		log.Add(fmt.Sprintf("%s joined the squad!", nb.Name), types.SevGain)
	} else {
		log.Add(fmt.Sprintf("%s sent to base camp.", nb.Name), types.SevGain)
	}
	p.Stats.BotsRecruited++
	state.ResetShields(p)

	rd.Outcome = Recruited
	rd.Events = append(rd.Events, types.Event{
		Type: events.BotRecruited,
		Data: map[string]any{"bot": nb.ID, "class": string(nb.Class)},
	})
	r.enter(enc, rd, Terminal)
	return true
}

func (r *Resolver) victory(p *types.Player, enc *Encounter, log *events.Log, rd *Round) {
	e := enc.Enemy
	bot := state.ActiveBot(p)
	scrap := e.MaxHP/2 + 10

	log.At(r.Rules.RewardDelay)
	log.Add(fmt.Sprintf("Victory! +%d Scrap, +%d XP.", scrap, e.XPValue), types.SevGain)
	p.Scrap += scrap
	p.Stats.ScrapCollected += scrap

	if loot := r.Reg.LootTable(); len(loot) > 0 && r.RNG.Chance(r.Rules.LootChance) {
		drop := loot[r.RNG.Intn(len(loot))]
		state.AddItem(p, drop)
		log.Add(fmt.Sprintf("Found item: %s", drop.Name), types.SevGain)
	}

	ups := state.GrantXP(bot, e.XPValue, r.Reg, r.Rules.LevelHP)
	LevelLog(ups, log)
	rd.Events = append(rd.Events, LevelEvents(bot, ups)...)

	if v, ok := state.ModuleValue(bot, types.AutoRepair); ok {
		if healed := state.Heal(bot, v); healed > 0 {
			p.Stats.HealingDone += healed
			log.Add(fmt.Sprintf("Nanites repair %s (+%d HP).", bot.Name, healed), types.SevGain)
		}
	}
	state.ResetShields(p)

	rd.Outcome = Won
	rd.Events = append(rd.Events, types.Event{
		Type: events.EnemyDefeated,
		Data: map[string]any{"enemy": e.Type, "scrap": scrap, "xp": e.XPValue},
	})
	if e.IsBoss {
		rd.Events = append(rd.Events, types.Event{
			Type: events.BossDefeated,
			Data: map[string]any{"enemy": e.Type},
		})
	}
	r.enter(enc, rd, Terminal)
}

func (r *Resolver) enemyAttack(p *types.Player, enc *Encounter, log *events.Log, rd *Round) {
	bot := state.ActiveBot(p)
	dmg := EnemyAttack(bot.Level)
	log.Add(fmt.Sprintf("%s attacks for %d dmg.", enc.Enemy.Name, dmg), types.SevEnemy)

	absorbed, taken := state.Damage(bot, dmg)
	p.Stats.DamageTaken += taken
	if absorbed > 0 {
		log.Add(fmt.Sprintf("Shield absorbed %d.", absorbed), types.SevInfo)
	}
	if !bot.IsDefeated {
		return
	}

	p.Stats.BotsLost++
	log.Add(fmt.Sprintf("%s has been defeated!", bot.Name), types.SevEnemy)
	rd.Events = append(rd.Events, types.Event{
		Type: events.BotDefeated,
		Data: map[string]any{"bot": bot.ID},
	})

	next := state.FirstAlive(p.Team)
	if next < 0 {
		log.Add("All units offline. The squad is lost.", types.SevDanger)
		state.ResetShields(p)
		rd.Outcome = Lost
		r.enter(enc, rd, Terminal)
		return
	}
	p.ActiveSlot = next
	log.Add(fmt.Sprintf("WARNING: Unit down. Switching to %s...", p.Team[next].Name), types.SevDanger)
}

// ItemLog writes the messages for an applied item.
func ItemLog(b *types.Bot, use state.ItemUse, log *events.Log) {
	switch {
	case use.Revived:
		log.Add(fmt.Sprintf("%s rebooted with %d HP.", b.Name, b.HP), types.SevGain)
	case use.Healed > 0:
		log.Add(fmt.Sprintf("%s repaired (+%d HP).", b.Name, use.Healed), types.SevGain)
	case use.XP > 0:
		log.Add(fmt.Sprintf("%s gained %d XP.", b.Name, use.XP), types.SevGain)
	}
	LevelLog(use.Ups, log)
}

// LevelLog writes the messages for a series of level-ups.
func LevelLog(ups []state.LevelUp, log *events.Log) {
	for _, up := range ups {
		log.Add(fmt.Sprintf("LEVEL UP! Level %d. Fully repaired.", up.Level), types.SevGain)
		if up.Learned == nil {
			continue
		}
		if up.Stored {
			log.Add(fmt.Sprintf("Learned: %s (stored, RAM full)", up.Learned.Name), types.SevGain)
		} else {
			log.Add(fmt.Sprintf("Learned: %s", up.Learned.Name), types.SevGain)
		}
	}
}

// LevelEvents returns one LevelUp event per level gained.
func LevelEvents(b *types.Bot, ups []state.LevelUp) []types.Event {
	var evs []types.Event
	for _, up := range ups {
		evs = append(evs, types.Event{
			Type: events.LevelUp,
			Data: map[string]any{"bot": b.ID, "level": up.Level},
		})
	}
	return evs
}
