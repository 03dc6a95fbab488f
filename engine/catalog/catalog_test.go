package catalog

import (
	"testing"

	"github.com/nathoo/scrapcore/types"
)

func TestDefault_Lookups(t *testing.T) {
	r := Default()

	s, ok := r.Skill("LASER_SHOT")
	if !ok || s.BaseDamage != 15 || s.DamageType != types.Thermal {
		t.Errorf("LASER_SHOT = %+v, %v", s, ok)
	}
	if _, ok := r.Skill("NOPE"); ok {
		t.Error("unknown skill should not resolve")
	}

	m, ok := r.Module("shield_gen")
	if !ok || m.Effect != types.ShieldGen || m.Value != 30 {
		t.Errorf("shield_gen = %+v, %v", m, ok)
	}

	it, ok := r.Item("battery")
	if !ok || it.Effect != types.ItemRevive || it.Count != 1 {
		t.Errorf("battery = %+v, %v", it, ok)
	}

	c, ok := r.Class(types.Tank)
	if !ok || c.HP != 150 || len(c.StartingSkills) != 2 {
		t.Errorf("tank = %+v, %v", c, ok)
	}
}

func TestDefault_StartingSkillsExist(t *testing.T) {
	r := Default()
	for _, c := range r.Classes() {
		for _, id := range c.StartingSkills {
			if _, ok := r.Skill(id); !ok {
				t.Errorf("class %s starts with unknown skill %q", c.Class, id)
			}
		}
	}
}

func TestLootTable_ExcludesQuestItems(t *testing.T) {
	r := Default()
	loot := r.LootTable()
	if len(loot) == 0 {
		t.Fatal("expected a non-empty loot table")
	}
	for _, it := range loot {
		if it.Effect == types.ItemQuest {
			t.Errorf("quest item %q in loot table", it.ID)
		}
	}
}

func TestSpawns_ByLevel(t *testing.T) {
	r := Default()
	tests := []struct {
		level int
		want  map[string]bool
	}{
		{1, map[string]bool{"SCRAP_DRONE": true, "HEAVY_MECH": true}},
		{2, map[string]bool{"SCRAP_DRONE": true, "HEAVY_MECH": true}},
		{3, map[string]bool{"SCRAP_DRONE": true, "HEAVY_MECH": true, "NANITE_SWARM": true, "JUNKER_BEHEMOTH": true}},
		{12, map[string]bool{"SCRAP_DRONE": true, "HEAVY_MECH": true, "NANITE_SWARM": true, "JUNKER_BEHEMOTH": true}},
	}
	for _, tt := range tests {
		rows := r.Spawns(tt.level)
		got := map[string]bool{}
		for _, e := range rows {
			got[e.Type] = true
		}
		if len(got) != len(tt.want) {
			t.Errorf("level %d: got types %v, want %v", tt.level, got, tt.want)
		}
		for typ := range tt.want {
			if !got[typ] {
				t.Errorf("level %d: missing %s", tt.level, typ)
			}
		}
	}
	if n := len(r.Spawns(1)); n != 2 {
		t.Errorf("level 1 rows = %d, want 2", n)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	c := DefaultContent()
	c.Skills = append(c.Skills, c.Skills[0])
	if _, err := New(c); err == nil {
		t.Error("expected duplicate skill error")
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := Default()
	names := r.Names()
	names[0] = "Mutated"
	if r.Names()[0] == "Mutated" {
		t.Error("Names should return a copy")
	}
	classes := r.Classes()
	classes[0].StartingSkills[0] = "Mutated"
	if c, _ := r.Class(classes[0].Class); c.StartingSkills[0] == "Mutated" {
		t.Error("Classes should deep-copy starting skills")
	}
}
