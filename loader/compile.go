// Package loader loads Lua content packs into a content catalog at startup.
// The Lua VM is discarded after loading; no Lua runs during a game.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a keyed definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList reads the array part of a table as strings.
func stringList(tbl *lua.LTable) ([]string, error) {
	if tbl == nil {
		return nil, nil
	}
	out := make([]string, 0, tbl.MaxN())
	for i := 1; i <= tbl.MaxN(); i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("entry %d is not a string", i)
		}
		out = append(out, string(s))
	}
	return out, nil
}

// compile converts the collected Lua data into Content. Every section the
// pack defines replaces the matching section of base.
func compile(coll *collector, base catalog.Content) (catalog.Content, error) {
	c := base

	if len(coll.skills) > 0 {
		c.Skills = nil
		for _, raw := range coll.skills {
			c.Skills = append(c.Skills, compileSkill(raw))
		}
	}
	if len(coll.modules) > 0 {
		c.Modules = nil
		for _, raw := range coll.modules {
			c.Modules = append(c.Modules, compileModule(raw))
		}
	}
	if len(coll.items) > 0 {
		c.Items = nil
		for _, raw := range coll.items {
			c.Items = append(c.Items, compileItem(raw))
		}
	}
	if len(coll.classes) > 0 {
		c.Classes = nil
		for _, raw := range coll.classes {
			cl, err := compileClass(raw)
			if err != nil {
				return c, fmt.Errorf("compiling class %s: %w", raw.id, err)
			}
			c.Classes = append(c.Classes, cl)
		}
	}
	if len(coll.enemies) > 0 {
		c.Enemies = nil
		for _, raw := range coll.enemies {
			c.Enemies = append(c.Enemies, compileEnemy(raw))
		}
	}
	if coll.boss != nil {
		c.Boss = compileEnemy(*coll.boss)
	}

	if coll.starter != nil {
		st, items, err := compileStarter(coll.starter)
		if err != nil {
			return c, fmt.Errorf("compiling starter: %w", err)
		}
		c.Starter = st
		if items != nil {
			c.StarterItems = items
		}
	}
	if coll.quest != nil {
		if id := getString(coll.quest, "part"); id != "" {
			c.QuestPartID = id
		}
		if id := getString(coll.quest, "omni_tool"); id != "" {
			c.OmniToolID = id
		}
	}

	pools := []struct {
		name string
		tbl  *lua.LTable
		dst  *[]string
	}{
		{"Names", coll.names, &c.Names},
		{"Personalities", coll.personalities, &c.Personalities},
		{"Hints", coll.hints, &c.Hints},
	}
	for _, p := range pools {
		if p.tbl == nil {
			continue
		}
		list, err := stringList(p.tbl)
		if err != nil {
			return c, fmt.Errorf("compiling %s: %w", p.name, err)
		}
		*p.dst = list
	}

	c.StarterItems = resolveItems(c.StarterItems, c.Items)
	return c, nil
}

// resolveItems fills id-only stacks from the item definitions. Unknown ids
// are left as they are for validate to report.
func resolveItems(stacks, defs []types.Item) []types.Item {
	out := make([]types.Item, len(stacks))
	for i, st := range stacks {
		out[i] = st
		for _, d := range defs {
			if d.ID == st.ID {
				d.Count = st.Count
				out[i] = d
				break
			}
		}
	}
	return out
}

func compileSkill(raw rawDef) types.Skill {
	t := raw.table
	dt := types.DamageType(getString(t, "damage_type"))
	if dt == "" {
		dt = types.Untyped
	}
	return types.Skill{
		ID:          raw.id,
		Name:        getString(t, "name"),
		Description: getString(t, "description"),
		Category:    types.SkillCategory(getString(t, "category")),
		DamageType:  dt,
		MinLevel:    getInt(t, "min_level"),
		BaseDamage:  getInt(t, "base_damage"),
		Roll:        types.DamageRoll(getString(t, "roll")),
		Spread:      getInt(t, "spread"),
		SuccessRate: getNumber(t, "success_rate"),
		Heal:        getInt(t, "heal"),
		Shield:      getInt(t, "shield"),
	}
}

func compileModule(raw rawDef) types.Module {
	t := raw.table
	mt := types.ModuleType(getString(t, "type"))
	if mt == "" {
		mt = types.Passive
	}
	return types.Module{
		ID:          raw.id,
		Name:        getString(t, "name"),
		Description: getString(t, "description"),
		Cost:        getInt(t, "cost"),
		Type:        mt,
		Effect:      types.ModuleEffect(getString(t, "effect")),
		Value:       getInt(t, "value"),
	}
}

func compileItem(raw rawDef) types.Item {
	t := raw.table
	return types.Item{
		ID:          raw.id,
		Name:        getString(t, "name"),
		Description: getString(t, "description"),
		Effect:      types.ItemEffect(getString(t, "effect")),
		Value:       getNumber(t, "value"),
		Count:       1,
	}
}

func compileClass(raw rawDef) (catalog.ClassDef, error) {
	t := raw.table
	skills, err := stringList(getTable(t, "skills"))
	if err != nil {
		return catalog.ClassDef{}, fmt.Errorf("skills: %w", err)
	}
	return catalog.ClassDef{
		Class:          types.Class(raw.id),
		Name:           getString(t, "name"),
		HP:             getInt(t, "hp"),
		StartingSkills: skills,
	}, nil
}

func compileEnemy(raw rawDef) catalog.EnemyDef {
	t := raw.table
	return catalog.EnemyDef{
		Type:       raw.id,
		Name:       getString(t, "name"),
		Class:      types.Class(getString(t, "class")),
		BaseHP:     getInt(t, "base_hp"),
		HPPerLevel: getInt(t, "hp_per_level"),
		XP:         getInt(t, "xp"),
		MinLevel:   getInt(t, "min_level"),
		MaxLevel:   getInt(t, "max_level"),
		Weight:     getInt(t, "weight"),
	}
}

// compileStarter reads the starter bot. items is nil when the table has no
// items list, keeping the built-in starting inventory.
func compileStarter(t *lua.LTable) (catalog.StarterDef, []types.Item, error) {
	st := catalog.StarterDef{
		ID:          getString(t, "id"),
		Name:        getString(t, "name"),
		Class:       types.Class(getString(t, "class")),
		HP:          getInt(t, "hp"),
		Personality: getString(t, "personality"),
	}
	if st.ID == "" {
		st.ID = "starter_bot"
	}

	list := getTable(t, "items")
	if list == nil {
		return st, nil, nil
	}
	items := []types.Item{}
	for i := 1; i <= list.MaxN(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return st, nil, fmt.Errorf("items entry %d is not a table", i)
		}
		count := getInt(entry, "count")
		if count <= 0 {
			count = 1
		}
		// Only the id and count are known here; resolveItems fills the rest.
		items = append(items, types.Item{ID: getString(entry, "id"), Count: count})
	}
	return st, items, nil
}

// sortedLuaFiles returns .lua files with content.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var main string
	var others []string
	for _, f := range files {
		if f == "content.lua" {
			main = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if main != "" {
		return append([]string{main}, others...)
	}
	return others
}
