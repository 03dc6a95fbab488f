package parser

import (
	"reflect"
	"testing"

	"github.com/nathoo/scrapcore/types"
)

func TestParse_Exploring(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{"empty string", "", nil},
		{"whitespace only", "   ", nil},

		// Movement
		{"bare north", "n", types.Move{DX: 0, DY: -1}},
		{"bare west word", "West", types.Move{DX: -1, DY: 0}},
		{"go east", "go east", types.Move{DX: 1, DY: 0}},
		{"walk down", "walk down", types.Move{DX: 0, DY: 1}},
		{"go nowhere", "go sideways", nil},

		// Travel
		{"travel spaced", "travel 12 -4", types.NavigateTo{X: 12, Y: -4}},
		{"goto comma", "goto 3,7", types.NavigateTo{X: 3, Y: 7}},
		{"nav comma space", "nav -3, 8", types.NavigateTo{X: -3, Y: 8}},
		{"travel bad", "travel here", nil},

		// Interact
		{"interact", "interact", types.Interact{}},
		{"use bare", "use", types.Interact{}},
		{"search alias", "search", types.Interact{}},

		// Squad
		{"switch 1-based", "switch 2", types.SwitchActiveBot{Index: 1}},
		{"switch zero", "switch 0", nil},
		{"swap", "swap 1 3", types.SwapReserve{TeamIndex: 0, ReserveIndex: 2}},
		{"bench", "bench 2", types.SwapReserve{TeamIndex: 1, ReserveIndex: -1}},
		{"deploy", "deploy 1", types.SwapReserve{TeamIndex: -1, ReserveIndex: 0}},

		// Skills
		{"equip", "equip quick dash", types.EquipSkill{SkillID: "QUICK_DASH", ToActive: true}},
		{"store", "unequip HACK", types.EquipSkill{SkillID: "HACK", ToActive: false}},

		// Items and camp
		{"use item active", "use repair kit", types.UseItem{ItemID: "repair_kit", BotIndex: -1}},
		{"use item slot", "use battery 3", types.UseItem{ItemID: "battery", BotIndex: 2}},
		{"buy", "buy hull plating", types.BuyModule{ModuleID: "hull_plating"}},
		{"repair", "repair", types.Repair{}},
		{"heal alias", "heal", types.Repair{}},

		// Combat verbs outside combat
		{"recruit outside", "recruit", nil},
		{"skill outside", "laser_shot", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Combat(t *testing.T) {
	act := func(a types.Action) types.Command { return types.CombatAction{Action: a} }
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		{"bare skill", "laser_shot", act(types.UseSkill{SkillID: "LASER_SHOT"})},
		{"attack spaced", "attack burst fire", act(types.UseSkill{SkillID: "BURST_FIRE"})},
		{"shield", "shield", act(types.ShieldModule{})},
		{"shield mod token", "SHIELD_MOD", act(types.ShieldModule{})},
		{"recruit", "recruit", act(types.Recruit{})},
		{"switch", "switch 3", act(types.SwitchTo{Slot: 2})},
		{"item", "use repair kit", act(types.CombatItem{ItemID: "repair_kit"})},
		{"interact refused", "interact", nil},
		{"movement still parses", "n", types.Move{DX: 0, DY: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIDs(t *testing.T) {
	if got := SkillID([]string{"target", "lock"}); got != "TARGET_LOCK" {
		t.Errorf("SkillID = %q", got)
	}
	if got := ItemID([]string{"XP", "Chip"}); got != "xp_chip" {
		t.Errorf("ItemID = %q", got)
	}
}
