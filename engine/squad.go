package engine

import (
	"fmt"

	"github.com/nathoo/scrapcore/engine/combat"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// SwitchActiveBot makes team slot i the active bot outside combat.
func (e *Engine) SwitchActiveBot(i int) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	if i < 0 || i >= len(t.p.Team) {
		return e.refuse("No bot in that slot.")
	}
	if i == t.p.ActiveSlot {
		return e.refuse("")
	}
	if t.p.Team[i].IsDefeated {
		return e.refuse(fmt.Sprintf("%s is offline.", t.p.Team[i].Name))
	}
	t.p.ActiveSlot = i
	e.log.Add(fmt.Sprintf("%s takes the lead.", t.p.Team[i].Name), types.SevInfo)
	return e.commit(t)
}

// SwapReserve moves bots between the team and base camp. With both indexes
// set the two bots trade places; ti of -1 deploys reserve ri into a free
// team slot; ri of -1 benches team bot ti. A swap that would leave the team
// without a working bot is refused.
func (e *Engine) SwapReserve(ti, ri int) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	p := &t.p
	inTeam := ti >= 0 && ti < len(p.Team)
	inCamp := ri >= 0 && ri < len(p.Reserves)

	var msg string
	switch {
	case inTeam && inCamp:
		out, in := p.Team[ti], p.Reserves[ri]
		p.Team[ti], p.Reserves[ri] = in, out
		msg = fmt.Sprintf("%s deployed. %s sent to base camp.", in.Name, out.Name)

	case ti == -1 && inCamp:
		if len(p.Team) >= state.MaxTeam {
			return e.refuse("Squad is full.")
		}
		in := p.Reserves[ri]
		p.Reserves = append(p.Reserves[:ri], p.Reserves[ri+1:]...)
		p.Team = append(p.Team, in)
		msg = fmt.Sprintf("%s deployed.", in.Name)

	case inTeam && ri == -1:
		if len(p.Team) == 1 {
			return e.refuse("Cannot bench the last bot.")
		}
		out := p.Team[ti]
		p.Team = append(p.Team[:ti], p.Team[ti+1:]...)
		p.Reserves = append(p.Reserves, out)
		if p.ActiveSlot == ti || p.ActiveSlot >= len(p.Team) {
			p.ActiveSlot = 0
		} else if p.ActiveSlot > ti {
			p.ActiveSlot--
		}
		msg = fmt.Sprintf("%s sent to base camp.", out.Name)

	default:
		return e.refuse("Invalid swap.")
	}

	next := state.FirstAlive(p.Team)
	if next < 0 {
		return e.refuse("The squad needs at least one working bot.")
	}
	if p.Team[p.ActiveSlot].IsDefeated {
		p.ActiveSlot = next
	}
	e.log.Add(msg, types.SevInfo)
	return e.commit(t)
}

// EquipSkill moves a known skill of the active bot between RAM and storage.
func (e *Engine) EquipSkill(id string, toActive bool) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	bot := state.ActiveBot(&t.p)
	if bot == nil || !state.KnowsSkill(bot, id) {
		return e.refuse("Unknown skill.")
	}
	name := id
	if s, ok := e.reg.Skill(id); ok {
		name = s.Name
	}

	if toActive {
		if state.IsActiveSkill(bot, id) {
			return e.refuse("")
		}
		if len(bot.ActiveSkills) >= state.MaxActiveSkills {
			return e.refuse("RAM full. Store a skill first.")
		}
		bot.StoredSkills = remove(bot.StoredSkills, id)
		bot.ActiveSkills = append(bot.ActiveSkills, id)
		e.log.Add(fmt.Sprintf("%s loaded %s.", bot.Name, name), types.SevInfo)
		return e.commit(t)
	}

	if !state.IsActiveSkill(bot, id) {
		return e.refuse("")
	}
	if len(bot.ActiveSkills) == 1 {
		return e.refuse("A bot needs at least one active skill.")
	}
	bot.ActiveSkills = remove(bot.ActiveSkills, id)
	bot.StoredSkills = append(bot.StoredSkills, id)
	e.log.Add(fmt.Sprintf("%s stored %s.", bot.Name, name), types.SevInfo)
	return e.commit(t)
}

// UseItem applies an inventory item to team slot i, or to the active bot
// when i is -1. The item is consumed only if it had an effect.
func (e *Engine) UseItem(id string, i int) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	if i == -1 {
		i = t.p.ActiveSlot
	}
	if i < 0 || i >= len(t.p.Team) {
		return e.refuse("No bot in that slot.")
	}
	idx := state.FindItem(&t.p, id)
	if idx < 0 {
		return e.refuse("You don't have that.")
	}
	it := t.p.Inventory[idx]
	bot := &t.p.Team[i]
	use, ok := state.ApplyItem(bot, it, e.reg, e.rules.Combat.LevelHP)
	if !ok {
		return e.refuse(fmt.Sprintf("%s has no effect on %s.", it.Name, bot.Name))
	}
	state.TakeItem(&t.p, id)
	t.p.Stats.HealingDone += use.Healed
	e.log.Add(fmt.Sprintf("Used %s.", it.Name), types.SevInfo)
	combat.ItemLog(bot, use, e.log)
	t.events = combat.LevelEvents(bot, use.Ups)
	return e.commit(t)
}

// BuyModule installs a catalog module on the active bot.
func (e *Engine) BuyModule(id string) types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	m, ok := e.reg.Module(id)
	if !ok {
		return e.refuse("Unknown module.")
	}
	bot := state.ActiveBot(&t.p)
	if bot == nil {
		return e.refuse("")
	}
	if state.HasModule(bot, id) {
		return e.refuse(fmt.Sprintf("%s already has %s.", bot.Name, m.Name))
	}
	if t.p.Scrap < m.Cost {
		return e.refuse(fmt.Sprintf("Need %d scrap.", m.Cost))
	}
	t.p.Scrap -= m.Cost
	bot.Modules = append(bot.Modules, m)
	t.p.Stats.ModulesInstalled++
	e.log.Add(fmt.Sprintf("Installed %s on %s.", m.Name, bot.Name), types.SevGain)
	return e.commit(t)
}

// Repair spends scrap to patch the active bot.
func (e *Engine) Repair() types.Result {
	if !e.accepts(types.Exploring) {
		return types.Result{}
	}
	t := e.begin()
	bot := state.ActiveBot(&t.p)
	if bot == nil || bot.IsDefeated {
		return e.refuse("Offline bots need a reboot chip.")
	}
	if bot.HP >= state.EffectiveMaxHP(bot) {
		return e.refuse(fmt.Sprintf("%s is fully operational.", bot.Name))
	}
	if t.p.Scrap < e.rules.RepairCost {
		return e.refuse(fmt.Sprintf("Need %d scrap.", e.rules.RepairCost))
	}
	t.p.Scrap -= e.rules.RepairCost
	healed := state.Heal(bot, e.rules.RepairAmount)
	t.p.Stats.HealingDone += healed
	e.log.Add(fmt.Sprintf("%s repaired (+%d HP).", bot.Name, healed), types.SevGain)
	return e.commit(t)
}

func remove(ids []string, id string) []string {
	out := ids[:0:0]
	for _, s := range ids {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}
