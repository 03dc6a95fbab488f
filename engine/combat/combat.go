// Package combat implements the encounter resolver: the damage model with
// type effectiveness, recruit odds, enemy spawning and the per-round state
// machine.
package combat

import (
	"math"
	"strings"
	"time"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/engine/rng"
	"github.com/nathoo/scrapcore/types"
)

// DefaultBaseDamage applies to offensive skills that list no base damage.
const DefaultBaseDamage = 12

// Rules are the tunable combat constants.
type Rules struct {
	LevelHP          int     // base max HP gained per level
	LootChance       float64 // chance of a drop on victory
	ShieldPerLevel   int     // DEFENSE skill shield per bot level
	ShieldModDefault int     // SHIELD_MOD value without a shield module
	RecruitHPFactor  float64 // recruited bot starts at this share of max HP
	RecruitCap       float64 // upper bound of the recruit chance

	CheckDelay   time.Duration // victory check after the player action
	RewardDelay  time.Duration // victory rewards
	AttackDelay  time.Duration // enemy retaliation
	RecruitDelay time.Duration // recruited bot joins
}

// DefaultRules returns the standard balance.
func DefaultRules() Rules {
	return Rules{
		LevelHP:          15,
		LootChance:       0.3,
		ShieldPerLevel:   5,
		ShieldModDefault: 20,
		RecruitHPFactor:  0.5,
		RecruitCap:       0.9,
		CheckDelay:       800 * time.Millisecond,
		RewardDelay:      1300 * time.Millisecond,
		AttackDelay:      1800 * time.Millisecond,
		RecruitDelay:     1000 * time.Millisecond,
	}
}

// effectiveness maps damage type to the classes it is strong or weak against.
var effectiveness = map[types.DamageType]map[types.Class]float64{
	types.Kinetic:  {types.Assault: 1.5, types.Tank: 0.5},
	types.Thermal:  {types.Tech: 1.5, types.Assault: 0.5},
	types.Electric: {types.Tank: 1.5, types.Tech: 0.5},
}

// Effectiveness returns the damage multiplier of a damage type against a
// class. Unlisted pairs and untyped damage are neutral.
func Effectiveness(dt types.DamageType, c types.Class) float64 {
	if m, ok := effectiveness[dt][c]; ok {
		return m
	}
	return 1.0
}

// Hit is the outcome of an offensive skill.
type Hit struct {
	Damage     int
	Multiplier float64
	Failed     bool // a gamble roll missed
}

// SkillDamage computes the damage of an offensive skill:
// floor((base + level*3 + boost) * effectiveness). A missed gamble zeroes
// the base only.
func SkillDamage(s types.Skill, level, boost int, target types.Class, r *rng.RNG) Hit {
	base := s.BaseDamage
	if base <= 0 {
		base = DefaultBaseDamage
	}
	var h Hit
	switch s.Roll {
	case types.RollSpread:
		base += r.Intn(s.Spread)
	case types.RollGamble:
		if !r.Chance(s.SuccessRate) {
			base = 0
			h.Failed = true
		}
	}
	h.Multiplier = Effectiveness(s.DamageType, target)
	raw := base + level*3 + boost
	h.Damage = int(math.Floor(float64(raw) * h.Multiplier))
	return h
}

// EnemyAttack is the retaliation damage against a bot of the given level.
func EnemyAttack(level int) int {
	return int(math.Floor(8 + float64(level)*1.5))
}

// RecruitChance is the probability a recruit attempt succeeds:
// (1 - hp/maxHP) * 1.5 clamped to [0, limit]. Bosses cannot be recruited.
func RecruitChance(e types.Enemy, limit float64) float64 {
	if e.IsBoss || e.MaxHP <= 0 {
		return 0
	}
	c := (1 - float64(e.HP)/float64(e.MaxHP)) * 1.5
	return math.Max(0, math.Min(limit, c))
}

// Spawn picks an enemy from the spawn table rows eligible at level using
// weighted selection. It reports false when no row is eligible.
func Spawn(reg *catalog.Registry, level int, r *rng.RNG) (types.Enemy, bool) {
	rows := reg.Spawns(level)
	weights := make([]int, 0, len(rows))
	eligible := rows[:0]
	for _, row := range rows {
		if row.Weight > 0 {
			eligible = append(eligible, row)
			weights = append(weights, row.Weight)
		}
	}
	if len(eligible) == 0 {
		return types.Enemy{}, false
	}
	def := eligible[r.WeightedSelect(weights)]
	return enemyFrom(def, level, false), true
}

// Boss builds the guardian.
func Boss(reg *catalog.Registry) types.Enemy {
	return enemyFrom(reg.Boss(), 0, true)
}

func enemyFrom(def catalog.EnemyDef, level int, boss bool) types.Enemy {
	hp := def.BaseHP + def.HPPerLevel*level
	if hp <= 0 {
		hp = 1
	}
	return types.Enemy{
		Type:    def.Type,
		Name:    def.Name,
		Class:   def.Class,
		HP:      hp,
		MaxHP:   hp,
		XPValue: def.XP,
		IsBoss:  boss,
	}
}

// RecruitName is the name a rebooted enemy answers to.
func RecruitName(e types.Enemy) string {
	first, _, _ := strings.Cut(e.Name, " ")
	if first == "" {
		first = e.Type
	}
	return first + " Unit"
}
