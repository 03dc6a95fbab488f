// Package parser converts typed command lines into commands for the text
// drivers. Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/scrapcore/types"
)

var directions = map[string][2]int{
	"n": {0, -1}, "north": {0, -1}, "up": {0, -1},
	"s": {0, 1}, "south": {0, 1}, "down": {0, 1},
	"e": {1, 0}, "east": {1, 0}, "right": {1, 0},
	"w": {-1, 0}, "west": {-1, 0}, "left": {-1, 0},
}

var verbAliases = map[string]string{
	// Movement
	"go":   "move",
	"walk": "move",
	"step": "move",

	// Travel
	"goto":     "travel",
	"nav":      "travel",
	"navigate": "travel",

	// Interact
	"x":        "interact",
	"search":   "interact",
	"talk":     "interact",
	"open":     "interact",
	"examine":  "interact",
	"activate": "interact",

	// Squad
	"select": "switch",
	"active": "switch",
	"lead":   "switch",

	// Skills
	"load":    "equip",
	"unload":  "store",
	"unequip": "store",
	"bench":   "rest",

	// Combat
	"attack":  "skill",
	"cast":    "skill",
	"fire":    "skill",
	"shield":  "shieldmod",
	"defend":  "shieldmod",
	"reboot":  "recruit",
	"capture": "recruit",

	// Camp
	"heal":     "repair",
	"fix":      "repair",
	"purchase": "buy",
	"install":  "buy",
}

// Parse converts a raw command line into a command. During combat, skill
// names, items and slot switches become combat actions. Returns nil when
// the line is not understood.
func Parse(input string, combat bool) types.Command {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return nil
	}

	// Direction shortcut: bare "n", "west", etc.
	if len(words) == 1 {
		if d, ok := directions[words[0]]; ok {
			return types.Move{DX: d[0], DY: d[1]}
		}
	}

	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := words[1:]

	switch verb {
	case "move":
		if len(rest) == 1 {
			if d, ok := directions[rest[0]]; ok {
				return types.Move{DX: d[0], DY: d[1]}
			}
		}
	case "travel":
		if x, y, ok := twoInts(rest); ok {
			return types.NavigateTo{X: x, Y: y}
		}
	case "interact", "use":
		if verb == "use" && len(rest) > 0 {
			return parseUse(rest, combat)
		}
		if !combat {
			return types.Interact{}
		}
	case "switch":
		if n, ok := slot(rest); ok {
			if combat {
				return types.CombatAction{Action: types.SwitchTo{Slot: n}}
			}
			return types.SwitchActiveBot{Index: n}
		}
	case "swap":
		if len(rest) == 2 {
			t, ok1 := slot(rest[:1])
			r, ok2 := slot(rest[1:])
			if ok1 && ok2 {
				return types.SwapReserve{TeamIndex: t, ReserveIndex: r}
			}
		}
	case "rest":
		if n, ok := slot(rest); ok {
			return types.SwapReserve{TeamIndex: n, ReserveIndex: -1}
		}
	case "deploy":
		if n, ok := slot(rest); ok {
			return types.SwapReserve{TeamIndex: -1, ReserveIndex: n}
		}
	case "equip", "store":
		if len(rest) > 0 {
			return types.EquipSkill{SkillID: SkillID(rest), ToActive: verb == "equip"}
		}
	case "buy":
		if len(rest) > 0 {
			return types.BuyModule{ModuleID: ItemID(rest)}
		}
	case "repair":
		if len(rest) == 0 {
			return types.Repair{}
		}
	case "skill":
		if combat && len(rest) > 0 {
			return types.CombatAction{Action: types.UseSkill{SkillID: SkillID(rest)}}
		}
	case "shieldmod", "shield_mod":
		if combat {
			return types.CombatAction{Action: types.ShieldModule{}}
		}
	case "recruit":
		if combat {
			return types.CombatAction{Action: types.Recruit{}}
		}
	default:
		// A bare skill name is an attack during combat.
		if combat {
			return types.CombatAction{Action: types.UseSkill{SkillID: SkillID(words)}}
		}
	}
	return nil
}

func parseUse(rest []string, combat bool) types.Command {
	if combat {
		return types.CombatAction{Action: types.CombatItem{ItemID: ItemID(rest)}}
	}
	// Trailing number is the target slot: "use repair kit 2".
	bot := -1
	if len(rest) > 1 {
		if n, ok := slot(rest[len(rest)-1:]); ok {
			bot = n
			rest = rest[:len(rest)-1]
		}
	}
	return types.UseItem{ItemID: ItemID(rest), BotIndex: bot}
}

// SkillID normalizes words to a catalog skill id: "laser shot" -> "LASER_SHOT".
func SkillID(words []string) string {
	return strings.ToUpper(strings.Join(words, "_"))
}

// ItemID normalizes words to an item or module id: "repair kit" -> "repair_kit".
func ItemID(words []string) string {
	return strings.ToLower(strings.Join(words, "_"))
}

// slot reads a single 1-based slot number and returns it 0-based.
func slot(words []string) (int, bool) {
	if len(words) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(words[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func twoInts(words []string) (int, int, bool) {
	if len(words) == 1 {
		words = strings.Split(words[0], ",")
	}
	if len(words) != 2 {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(strings.TrimSuffix(words[0], ","))
	y, err2 := strconv.Atoi(words[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, y, true
}
