package loader

import (
	"testing"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
)

func TestCompileSkill_Defaults(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Skill "BRACE" { name = "Brace", category = "DEFENSE", min_level = 2, shield = 12 }
	`); err != nil {
		t.Fatal(err)
	}
	if len(coll.skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(coll.skills))
	}

	s := compileSkill(coll.skills[0])
	if s.ID != "BRACE" || s.Name != "Brace" {
		t.Errorf("skill = %+v", s)
	}
	if s.DamageType != types.Untyped {
		t.Errorf("DamageType = %q, want NONE", s.DamageType)
	}
	if s.Roll != types.RollFixed {
		t.Errorf("Roll = %q, want fixed", s.Roll)
	}
	if s.Shield != 12 || s.MinLevel != 2 {
		t.Errorf("Shield/MinLevel = %d/%d", s.Shield, s.MinLevel)
	}
}

func TestCompileModuleAndItem(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Module "plating" { name = "Plating", cost = 80, effect = "HULL_PLATING", value = 40 }
		Item "chip" { name = "Chip", effect = "XP", value = 75 }
	`); err != nil {
		t.Fatal(err)
	}

	m := compileModule(coll.modules[0])
	if m.Type != types.Passive || m.Cost != 80 || m.Value != 40 || m.Effect != types.HullPlating {
		t.Errorf("module = %+v", m)
	}
	it := compileItem(coll.items[0])
	if it.Effect != types.ItemXP || it.Value != 75 || it.Count != 1 {
		t.Errorf("item = %+v", it)
	}
}

func TestCompileClass_BadSkillList(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`BotClass "TECH" { name = "Tech", hp = 70, skills = { "ZAP", 3 } }`); err != nil {
		t.Fatal(err)
	}
	if _, err := compileClass(coll.classes[0]); err == nil {
		t.Fatal("expected error for non-string skill")
	}
}

func TestCompileEnemy_RepeatedType(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Enemy "DRONE" { name = "Drone", class = "SCOUT", base_hp = 40, xp = 20, max_level = 2, weight = 80 }
		Enemy "DRONE" { name = "Drone", class = "SCOUT", base_hp = 50, hp_per_level = 5, xp = 25, min_level = 3, weight = 40 }
		Boss "WARDEN" { name = "Warden", class = "TANK", base_hp = 400, xp = 900 }
	`); err != nil {
		t.Fatal(err)
	}

	c, err := compile(coll, catalog.DefaultContent())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Enemies) != 2 {
		t.Fatalf("enemies = %d, want 2", len(c.Enemies))
	}
	if c.Enemies[1].HPPerLevel != 5 || c.Enemies[1].MinLevel != 3 {
		t.Errorf("second row = %+v", c.Enemies[1])
	}
	if c.Boss.Type != "WARDEN" || c.Boss.BaseHP != 400 {
		t.Errorf("boss = %+v", c.Boss)
	}
}

func TestCompile_QuestOverride(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Item "flux" { name = "Flux", effect = "QUEST", value = 1 }
		Item "key" { name = "Key", effect = "QUEST", value = 1 }
		Quest { part = "flux", omni_tool = "key" }
	`); err != nil {
		t.Fatal(err)
	}
	c, err := compile(coll, catalog.DefaultContent())
	if err != nil {
		t.Fatal(err)
	}
	if c.QuestPartID != "flux" || c.OmniToolID != "key" {
		t.Errorf("quest ids = %q, %q", c.QuestPartID, c.OmniToolID)
	}
	if len(c.Items) != 2 {
		t.Errorf("items = %d, want 2", len(c.Items))
	}
}

func TestCompile_StarterItemsNotTables(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`Starter { name = "X", class = "SCOUT", hp = 50, items = { "repair_kit" } }`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll, catalog.DefaultContent()); err == nil {
		t.Fatal("expected error for string item entry")
	}
}

func TestCompile_PoolNotStrings(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`Hints { "ok", { "nested" } }`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll, catalog.DefaultContent()); err == nil {
		t.Fatal("expected error for nested hint")
	}
}

func TestResolveItems(t *testing.T) {
	defs := []types.Item{{ID: "kit", Name: "Kit", Effect: types.ItemHeal, Value: 50, Count: 1}}
	got := resolveItems([]types.Item{{ID: "kit", Count: 4}, {ID: "ghost", Count: 1}}, defs)
	if got[0].Name != "Kit" || got[0].Count != 4 || got[0].Value != 50 {
		t.Errorf("resolved = %+v", got[0])
	}
	if got[1].Name != "" {
		t.Errorf("unknown id should stay bare, got %+v", got[1])
	}
}
