package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
)

func testPlayer() *types.Player {
	return &types.Player{
		Team: []types.Bot{{
			Name:         "Patch",
			Class:        types.Tech,
			ActiveSkills: []string{"ZAP", "QUICK_FIX"},
			StoredSkills: []string{"QUICK_DASH", "VIRUS"},
		}},
		Inventory: []types.Item{
			{ID: "repair_kit", Name: "Repair Kit", Count: 2},
			{ID: "battery", Name: "Power Cell", Count: 1},
		},
	}
}

func TestCommand_Skills(t *testing.T) {
	reg := catalog.Default()
	p := testPlayer()

	tests := []struct {
		name string
		in   types.Command
		want types.Command
	}{
		{"exact id", types.EquipSkill{SkillID: "VIRUS", ToActive: true}, types.EquipSkill{SkillID: "VIRUS", ToActive: true}},
		{"id word", types.EquipSkill{SkillID: "DASH", ToActive: true}, types.EquipSkill{SkillID: "QUICK_DASH", ToActive: true}},
		{"name word", types.EquipSkill{SkillID: "SYSTEM"}, types.EquipSkill{SkillID: "VIRUS"}},
		{"combat active only", types.CombatAction{Action: types.UseSkill{SkillID: "ARC"}},
			types.CombatAction{Action: types.UseSkill{SkillID: "ZAP"}}},
		{"combat ignores stored", types.CombatAction{Action: types.UseSkill{SkillID: "QUICK"}},
			types.CombatAction{Action: types.UseSkill{SkillID: "QUICK_FIX"}}},
		{"unknown kept", types.EquipSkill{SkillID: "TELEPORT"}, types.EquipSkill{SkillID: "TELEPORT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Command(tt.in, p, reg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Command(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCommand_Ambiguous(t *testing.T) {
	_, err := Command(types.EquipSkill{SkillID: "QUICK", ToActive: true}, testPlayer(), catalog.Default())

	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if len(amb.Candidates) != 2 {
		t.Errorf("candidates = %v, want QUICK_FIX and QUICK_DASH", amb.Candidates)
	}
	if !strings.Contains(err.Error(), "Which quick?") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestCommand_Items(t *testing.T) {
	reg := catalog.Default()
	p := testPlayer()

	got, err := Command(types.UseItem{ItemID: "kit", BotIndex: -1}, p, reg)
	if err != nil || got != (types.UseItem{ItemID: "repair_kit", BotIndex: -1}) {
		t.Errorf("use kit = %+v, %v", got, err)
	}

	got, err = Command(types.CombatAction{Action: types.CombatItem{ItemID: "power_cell"}}, p, reg)
	if err != nil || got != (types.CombatAction{Action: types.CombatItem{ItemID: "battery"}}) {
		t.Errorf("use power cell = %+v, %v", got, err)
	}

	// Items not carried are left for the engine to refuse.
	got, _ = Command(types.UseItem{ItemID: "xp_chip", BotIndex: 0}, p, reg)
	if got != (types.UseItem{ItemID: "xp_chip", BotIndex: 0}) {
		t.Errorf("unknown item rewritten to %+v", got)
	}
}

func TestCommand_Modules(t *testing.T) {
	reg := catalog.Default()
	p := testPlayer()

	tests := []struct{ in, want string }{
		{"hull_plating", "hull_plating"},
		{"plating", "hull_plating"},
		{"titanium", "hull_plating"},
		{"sensor_mast", "scanner"},
		{"nanite", "auto_repair"},
	}
	for _, tt := range tests {
		got, err := Command(types.BuyModule{ModuleID: tt.in}, p, reg)
		if err != nil {
			t.Errorf("buy %q: %v", tt.in, err)
			continue
		}
		if got.(types.BuyModule).ModuleID != tt.want {
			t.Errorf("buy %q = %+v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommand_OtherCommandsUntouched(t *testing.T) {
	cmds := []types.Command{
		types.Move{DX: 1},
		types.Interact{},
		types.CombatAction{Action: types.Recruit{}},
	}
	for _, c := range cmds {
		got, err := Command(c, testPlayer(), catalog.Default())
		if err != nil || got != c {
			t.Errorf("Command(%+v) = %+v, %v", c, got, err)
		}
	}
}

func TestCommand_NoActiveBot(t *testing.T) {
	p := &types.Player{ActiveSlot: 3}
	got, err := Command(types.EquipSkill{SkillID: "ZAP"}, p, catalog.Default())
	if err != nil || got != (types.EquipSkill{SkillID: "ZAP"}) {
		t.Errorf("got %+v, %v", got, err)
	}
}
