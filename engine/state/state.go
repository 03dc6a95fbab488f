// Package state holds the entity model rules: building the player and bots,
// derived values (effective max HP, module bonuses), inventory stacking and
// the leveling rule.
package state

import (
	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
)

// Squad and skill limits.
const (
	MaxTeam         = 3
	MaxActiveSkills = 3
	StartMaxXP      = 100
	DefaultLevelHP  = 15
)

// NewPlayer creates the player at the start of a game with the catalog's
// starter bot and inventory.
func NewPlayer(reg *catalog.Registry, start types.Position, partsNeeded int) types.Player {
	st := reg.Starter()
	starter := NewBot(reg, st.ID, st.Name, st.Class, 1)
	starter.HP, starter.MaxHP = st.HP, st.HP
	starter.Personality = st.Personality

	return types.Player{
		Pos:       start,
		Facing:    types.FacingDown,
		Team:      []types.Bot{starter},
		Reserves:  []types.Bot{},
		Inventory: reg.StarterItems(),
		Visited:   map[string]bool{},
		Quest: types.QuestState{
			Stage:       types.FindPod,
			PartsNeeded: partsNeeded,
		},
		Stats: types.PlayerStats{SkillUsage: map[string]int{}},
	}
}

// NewBot builds a fresh bot of a class at full health. Unknown classes get
// no skills and 1 HP so the caller notices.
func NewBot(reg *catalog.Registry, id, name string, class types.Class, level int) types.Bot {
	def, ok := reg.Class(class)
	hp := def.HP
	if !ok || hp <= 0 {
		hp = 1
	}
	if level < 1 {
		level = 1
	}
	return types.Bot{
		ID:           id,
		Name:         name,
		Class:        class,
		HP:           hp,
		MaxHP:        hp,
		Level:        level,
		MaxXP:        StartMaxXP * level,
		Modules:      []types.Module{},
		ActiveSkills: def.StartingSkills,
		StoredSkills: []string{},
	}
}

// EffectiveMaxHP is the bot's base max HP plus installed hull plating.
func EffectiveMaxHP(b *types.Bot) int {
	limit := b.MaxHP
	for _, m := range b.Modules {
		if m.Effect == types.HullPlating {
			limit += m.Value
		}
	}
	return limit
}

// ModuleValue returns the value of the first installed module with the
// given effect.
func ModuleValue(b *types.Bot, effect types.ModuleEffect) (int, bool) {
	for _, m := range b.Modules {
		if m.Effect == effect {
			return m.Value, true
		}
	}
	return 0, false
}

// HasModule reports whether a module id is installed on the bot.
func HasModule(b *types.Bot, id string) bool {
	for _, m := range b.Modules {
		if m.ID == id {
			return true
		}
	}
	return false
}

// KnowsSkill reports whether the skill is active or stored on the bot.
func KnowsSkill(b *types.Bot, id string) bool {
	return indexOf(b.ActiveSkills, id) >= 0 || indexOf(b.StoredSkills, id) >= 0
}

// IsActiveSkill reports whether the skill is loaded in RAM.
func IsActiveSkill(b *types.Bot, id string) bool {
	return indexOf(b.ActiveSkills, id) >= 0
}

// ActiveBot returns the bot in the active slot, or nil for an empty team.
func ActiveBot(p *types.Player) *types.Bot {
	if p.ActiveSlot < 0 || p.ActiveSlot >= len(p.Team) {
		return nil
	}
	return &p.Team[p.ActiveSlot]
}

// FirstAlive returns the index of the first non-defeated team member, or -1.
func FirstAlive(team []types.Bot) int {
	for i := range team {
		if !team[i].IsDefeated {
			return i
		}
	}
	return -1
}

// Heal restores up to amount HP, clamped at effective max. Defeated bots
// are not healed. Returns the HP actually restored.
func Heal(b *types.Bot, amount int) int {
	if b.IsDefeated || amount <= 0 {
		return 0
	}
	before := b.HP
	b.HP = min(b.HP+amount, EffectiveMaxHP(b))
	return b.HP - before
}

// Damage applies incoming damage, draining shield before HP. It returns
// how much the shield absorbed and how much HP was lost. A bot reduced to
// 0 HP becomes defeated.
func Damage(b *types.Bot, amount int) (absorbed, taken int) {
	if amount <= 0 {
		return 0, 0
	}
	if b.Shield > 0 {
		absorbed = min(b.Shield, amount)
		b.Shield -= absorbed
		amount -= absorbed
	}
	taken = min(b.HP, amount)
	b.HP -= taken
	if b.HP <= 0 {
		b.HP = 0
		b.IsDefeated = true
	}
	return absorbed, taken
}

// LevelUp describes one level gained.
type LevelUp struct {
	Level   int
	Learned *types.Skill // nil if no new skill unlocked
	Stored  bool         // learned skill went to storage, RAM was full
}

// GrantXP adds xp and applies the leveling rule until xp drops below the
// threshold: level+1, carry the remainder, grow the threshold by 1.5x,
// raise max HP by hpPerLevel, heal fully and learn the first unknown
// catalog skill unlocked at the new level.
func GrantXP(b *types.Bot, xp int, reg *catalog.Registry, hpPerLevel int) []LevelUp {
	if xp <= 0 {
		return nil
	}
	b.XP += xp

	var ups []LevelUp
	for b.MaxXP > 0 && b.XP >= b.MaxXP {
		b.Level++
		b.XP -= b.MaxXP
		b.MaxXP = b.MaxXP * 3 / 2
		b.MaxHP += hpPerLevel
		b.HP = EffectiveMaxHP(b)
		b.IsDefeated = false

		up := LevelUp{Level: b.Level}
		for _, s := range reg.Skills() {
			if s.MinLevel != b.Level || KnowsSkill(b, s.ID) {
				continue
			}
			skill := s
			up.Learned = &skill
			if len(b.ActiveSkills) < MaxActiveSkills {
				b.ActiveSkills = append(b.ActiveSkills, s.ID)
			} else {
				b.StoredSkills = append(b.StoredSkills, s.ID)
				up.Stored = true
			}
			break
		}
		ups = append(ups, up)
	}
	return ups
}

// FindItem returns the inventory index of an item id, or -1.
func FindItem(p *types.Player, id string) int {
	for i := range p.Inventory {
		if p.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// HasItem reports whether at least one of an item is carried.
func HasItem(p *types.Player, id string) bool {
	i := FindItem(p, id)
	return i >= 0 && p.Inventory[i].Count > 0
}

// AddItem stacks an item onto an existing entry or appends a new one.
func AddItem(p *types.Player, it types.Item) {
	if it.Count <= 0 {
		it.Count = 1
	}
	if i := FindItem(p, it.ID); i >= 0 {
		p.Inventory[i].Count += it.Count
		return
	}
	p.Inventory = append(p.Inventory, it)
}

// TakeItem removes one of an item, dropping empty stacks.
func TakeItem(p *types.Player, id string) bool {
	i := FindItem(p, id)
	if i < 0 || p.Inventory[i].Count <= 0 {
		return false
	}
	p.Inventory[i].Count--
	if p.Inventory[i].Count == 0 {
		p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
	}
	return true
}

// AddBot places a bot in the team if there is room, otherwise in reserves.
// It reports whether the bot joined the team.
func AddBot(p *types.Player, b types.Bot) bool {
	if len(p.Team) < MaxTeam {
		p.Team = append(p.Team, b)
		return true
	}
	p.Reserves = append(p.Reserves, b)
	return false
}

// NameInUse reports whether any owned bot already carries the name.
func NameInUse(p *types.Player, name string) bool {
	for _, b := range p.Team {
		if b.Name == name {
			return true
		}
	}
	for _, b := range p.Reserves {
		if b.Name == name {
			return true
		}
	}
	return false
}

// ResetShields clears temporary shields on every team bot.
func ResetShields(p *types.Player) {
	for i := range p.Team {
		p.Team[i].Shield = 0
	}
}

func indexOf(ids []string, id string) int {
	for i, s := range ids {
		if s == id {
			return i
		}
	}
	return -1
}
