package state

import (
	"reflect"
	"testing"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
)

func testPlayer(t *testing.T) (types.Player, *catalog.Registry) {
	t.Helper()
	reg := catalog.Default()
	return NewPlayer(reg, types.Position{}, 3), reg
}

func TestNewPlayer(t *testing.T) {
	p, _ := testPlayer(t)

	if len(p.Team) != 1 {
		t.Fatalf("expected 1 starter bot, got %d", len(p.Team))
	}
	b := p.Team[0]
	if b.Name != "Scout-01" || b.Class != types.Scout {
		t.Errorf("starter = %s/%s", b.Name, b.Class)
	}
	if b.HP != 100 || b.MaxHP != 100 || b.Level != 1 || b.MaxXP != StartMaxXP {
		t.Errorf("starter stats = %+v", b)
	}
	if !reflect.DeepEqual(b.ActiveSkills, []string{"LASER_SHOT", "HACK"}) {
		t.Errorf("starter skills = %v", b.ActiveSkills)
	}
	if p.Quest.Stage != types.FindPod || p.Quest.PartsNeeded != 3 {
		t.Errorf("quest = %+v", p.Quest)
	}
	if p.Visited == nil || p.Stats.SkillUsage == nil {
		t.Error("maps should be initialized")
	}
	if i := FindItem(&p, "repair_kit"); i < 0 || p.Inventory[i].Count != 2 {
		t.Errorf("expected 2 repair kits, got %+v", p.Inventory)
	}
}

func TestNewBot_UnknownClass(t *testing.T) {
	reg := catalog.Default()
	b := NewBot(reg, "x", "X", types.Class("GHOST"), 0)
	if b.HP != 1 || b.Level != 1 || len(b.ActiveSkills) != 0 {
		t.Errorf("unknown class bot = %+v", b)
	}
}

func TestEffectiveMaxHP_HullPlating(t *testing.T) {
	p, reg := testPlayer(t)
	b := &p.Team[0]
	if got := EffectiveMaxHP(b); got != 100 {
		t.Fatalf("base effective max = %d, want 100", got)
	}
	m, _ := reg.Module("hull_plating")
	b.Modules = append(b.Modules, m)
	if got := EffectiveMaxHP(b); got != 150 {
		t.Errorf("plated effective max = %d, want 150", got)
	}
	if v, ok := ModuleValue(b, types.HullPlating); !ok || v != 50 {
		t.Errorf("ModuleValue = %d, %v", v, ok)
	}
	if _, ok := ModuleValue(b, types.Scanner); ok {
		t.Error("scanner not installed")
	}
	if !HasModule(b, "hull_plating") || HasModule(b, "scanner") {
		t.Error("HasModule mismatch")
	}
}

func TestHeal_ClampsAndSkipsDefeated(t *testing.T) {
	b := &types.Bot{HP: 90, MaxHP: 100}
	if got := Heal(b, 50); got != 10 || b.HP != 100 {
		t.Errorf("heal = %d, hp = %d", got, b.HP)
	}
	d := &types.Bot{HP: 0, MaxHP: 100, IsDefeated: true}
	if got := Heal(d, 50); got != 0 || d.HP != 0 {
		t.Errorf("defeated bot healed: %d, hp = %d", got, d.HP)
	}
}

func TestDamage(t *testing.T) {
	tests := []struct {
		name                 string
		hp, shield, amount   int
		wantAbsorb, wantTake int
		wantHP, wantShield   int
		wantDefeated         bool
	}{
		{"no shield", 50, 0, 20, 0, 20, 30, 0, false},
		{"shield soaks all", 50, 30, 20, 20, 0, 50, 10, false},
		{"shield overflow", 50, 10, 25, 10, 15, 35, 0, false},
		{"lethal", 10, 0, 25, 0, 10, 0, 0, true},
		{"zero", 10, 5, 0, 0, 0, 10, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &types.Bot{HP: tt.hp, MaxHP: 100, Shield: tt.shield}
			absorbed, taken := Damage(b, tt.amount)
			if absorbed != tt.wantAbsorb || taken != tt.wantTake {
				t.Errorf("absorbed, taken = %d, %d; want %d, %d", absorbed, taken, tt.wantAbsorb, tt.wantTake)
			}
			if b.HP != tt.wantHP || b.Shield != tt.wantShield || b.IsDefeated != tt.wantDefeated {
				t.Errorf("bot = hp %d shield %d defeated %v", b.HP, b.Shield, b.IsDefeated)
			}
		})
	}
}

func TestGrantXP_SingleLevel(t *testing.T) {
	p, reg := testPlayer(t)
	b := &p.Team[0]
	b.HP = 40

	ups := GrantXP(b, 130, reg, DefaultLevelHP)
	if len(ups) != 1 || ups[0].Level != 2 {
		t.Fatalf("ups = %+v", ups)
	}
	if b.Level != 2 || b.XP != 30 || b.MaxXP != 150 {
		t.Errorf("level %d xp %d/%d", b.Level, b.XP, b.MaxXP)
	}
	if b.MaxHP != 115 || b.HP != 115 {
		t.Errorf("hp %d/%d, want full 115", b.HP, b.MaxHP)
	}
	if ups[0].Learned != nil {
		t.Errorf("no skill unlocks at level 2, got %s", ups[0].Learned.ID)
	}
}

func TestGrantXP_CascadeLearnsSkills(t *testing.T) {
	p, reg := testPlayer(t)
	b := &p.Team[0]

	// Thresholds: 100, 150, 225, 337 -> level 5 at 812.
	ups := GrantXP(b, 812, reg, DefaultLevelHP)
	if len(ups) != 4 || b.Level != 5 || b.XP != 0 || b.MaxXP != 505 {
		t.Fatalf("level %d xp %d/%d after %d ups", b.Level, b.XP, b.MaxXP, len(ups))
	}
	if ups[1].Learned == nil || ups[1].Learned.ID != "TARGET_LOCK" || ups[1].Stored {
		t.Errorf("level 3 unlock = %+v", ups[1])
	}
	if ups[3].Learned == nil || ups[3].Learned.ID != "QUICK_DASH" || !ups[3].Stored {
		t.Errorf("level 5 unlock = %+v", ups[3])
	}
	if len(b.ActiveSkills) != MaxActiveSkills {
		t.Errorf("active skills = %v", b.ActiveSkills)
	}
	if !reflect.DeepEqual(b.StoredSkills, []string{"QUICK_DASH"}) {
		t.Errorf("stored skills = %v", b.StoredSkills)
	}
}

func TestGrantXP_LumpSumEqualsIncrements(t *testing.T) {
	for _, total := range []int{99, 100, 257, 475, 1000} {
		lump, reg := testPlayer(t)
		steps, _ := testPlayer(t)

		GrantXP(&lump.Team[0], total, reg, DefaultLevelHP)
		left := total
		for left > 0 {
			n := min(left, 7)
			GrantXP(&steps.Team[0], n, reg, DefaultLevelHP)
			left -= n
		}

		a, b := lump.Team[0], steps.Team[0]
		if a.Level != b.Level || a.XP != b.XP || a.MaxXP != b.MaxXP || a.MaxHP != b.MaxHP {
			t.Errorf("total %d: lump %d %d/%d hp %d, steps %d %d/%d hp %d",
				total, a.Level, a.XP, a.MaxXP, a.MaxHP, b.Level, b.XP, b.MaxXP, b.MaxHP)
		}
		if !reflect.DeepEqual(a.ActiveSkills, b.ActiveSkills) || !reflect.DeepEqual(a.StoredSkills, b.StoredSkills) {
			t.Errorf("total %d: skills differ: %v/%v vs %v/%v",
				total, a.ActiveSkills, a.StoredSkills, b.ActiveSkills, b.StoredSkills)
		}
	}
}

func TestGrantXP_NonPositive(t *testing.T) {
	p, reg := testPlayer(t)
	if ups := GrantXP(&p.Team[0], 0, reg, DefaultLevelHP); ups != nil {
		t.Errorf("expected no level ups, got %+v", ups)
	}
	if p.Team[0].XP != 0 {
		t.Errorf("xp = %d", p.Team[0].XP)
	}
}

func TestInventory_StackAndTake(t *testing.T) {
	p, reg := testPlayer(t)
	kit, _ := reg.Item("repair_kit")
	AddItem(&p, kit)
	if i := FindItem(&p, "repair_kit"); p.Inventory[i].Count != 3 {
		t.Errorf("stack count = %d, want 3", p.Inventory[i].Count)
	}

	chip, _ := reg.Item("xp_chip")
	AddItem(&p, chip)
	if len(p.Inventory) != 2 {
		t.Fatalf("inventory = %+v", p.Inventory)
	}

	if !TakeItem(&p, "xp_chip") {
		t.Fatal("expected take to succeed")
	}
	if HasItem(&p, "xp_chip") || FindItem(&p, "xp_chip") >= 0 {
		t.Error("empty stack should be removed")
	}
	if TakeItem(&p, "xp_chip") {
		t.Error("taking a missing item should fail")
	}
}

func TestAddBot_TeamThenReserves(t *testing.T) {
	p, reg := testPlayer(t)
	if !AddBot(&p, NewBot(reg, "b1", "Bolt", types.Tank, 1)) {
		t.Error("second bot should join the team")
	}
	if !AddBot(&p, NewBot(reg, "b2", "Echo", types.Tech, 1)) {
		t.Error("third bot should join the team")
	}
	if AddBot(&p, NewBot(reg, "b3", "Prime", types.Assault, 1)) {
		t.Error("fourth bot should go to reserves")
	}
	if len(p.Team) != MaxTeam || len(p.Reserves) != 1 {
		t.Errorf("team %d reserves %d", len(p.Team), len(p.Reserves))
	}
	if !NameInUse(&p, "Prime") || NameInUse(&p, "Rusty") {
		t.Error("NameInUse mismatch")
	}
}

func TestActiveBotAndFirstAlive(t *testing.T) {
	p, reg := testPlayer(t)
	AddBot(&p, NewBot(reg, "b1", "Bolt", types.Tank, 1))
	p.Team[0].IsDefeated = true
	if got := FirstAlive(p.Team); got != 1 {
		t.Errorf("FirstAlive = %d, want 1", got)
	}
	p.Team[1].IsDefeated = true
	if got := FirstAlive(p.Team); got != -1 {
		t.Errorf("FirstAlive = %d, want -1", got)
	}
	p.ActiveSlot = 5
	if ActiveBot(&p) != nil {
		t.Error("out of range slot should give nil")
	}
}

func TestClone_IsDeep(t *testing.T) {
	p, _ := testPlayer(t)
	p.Visited["1,1"] = true
	c := Clone(p)

	c.Team[0].HP = 1
	c.Team[0].ActiveSkills[0] = "X"
	c.Inventory[0].Count = 99
	c.Visited["2,2"] = true
	c.Stats.SkillUsage["HACK"] = 4

	if p.Team[0].HP == 1 || p.Team[0].ActiveSkills[0] == "X" {
		t.Error("team not deep-copied")
	}
	if p.Inventory[0].Count == 99 {
		t.Error("inventory not copied")
	}
	if p.Visited["2,2"] || p.Stats.SkillUsage["HACK"] != 0 {
		t.Error("maps not copied")
	}
}
