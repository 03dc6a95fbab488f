package state

import (
	"fmt"
	"math"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
)

// ItemUse is what applying an item to a bot did.
type ItemUse struct {
	Healed  int
	Revived bool
	XP      int
	Ups     []LevelUp
}

// ApplyItem applies a consumable to a bot. It reports false, leaving the
// bot untouched, when the item is not usable on that bot: heals and XP on a
// defeated bot, revives on a standing one, a heal at full HP, or any quest
// item. The caller removes the item from inventory on success.
func ApplyItem(b *types.Bot, it types.Item, reg *catalog.Registry, hpPerLevel int) (ItemUse, bool) {
	var use ItemUse
	switch it.Effect {
	case types.ItemHeal:
		if b.IsDefeated || b.HP >= EffectiveMaxHP(b) {
			return use, false
		}
		use.Healed = Heal(b, int(it.Value))
	case types.ItemRevive:
		if !b.IsDefeated {
			return use, false
		}
		hp := int(math.Floor(float64(EffectiveMaxHP(b)) * it.Value))
		b.HP = max(hp, 1)
		b.IsDefeated = false
		use.Revived = true
		use.Healed = b.HP
	case types.ItemXP:
		if b.IsDefeated {
			return use, false
		}
		use.XP = int(it.Value)
		use.Ups = GrantXP(b, use.XP, reg, hpPerLevel)
	default:
		return use, false
	}
	return use, true
}

// UniqueName returns base if no owned bot uses it, otherwise base with the
// first free numeric suffix.
func UniqueName(p *types.Player, base string) string {
	if !NameInUse(p, base) {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s %d", base, n)
		if !NameInUse(p, name) {
			return name
		}
	}
}

// NextBotID returns an id for the next recruited bot.
func NextBotID(p *types.Player) string {
	return fmt.Sprintf("recruit_%d", p.Stats.BotsRecruited+1)
}
