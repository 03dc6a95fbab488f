package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Skill "ID" { ... }, curried like the other keyed constructors.
	L.SetGlobal("Skill", keyed(L, func(d rawDef) { coll.skills = append(coll.skills, d) }))
	L.SetGlobal("Module", keyed(L, func(d rawDef) { coll.modules = append(coll.modules, d) }))
	L.SetGlobal("Item", keyed(L, func(d rawDef) { coll.items = append(coll.items, d) }))
	L.SetGlobal("BotClass", keyed(L, func(d rawDef) { coll.classes = append(coll.classes, d) }))

	// Enemy "TYPE" { ... } may repeat a type for different level bands.
	L.SetGlobal("Enemy", keyed(L, func(d rawDef) { coll.enemies = append(coll.enemies, d) }))
	L.SetGlobal("Boss", keyed(L, func(d rawDef) { coll.boss = &d }))

	// Starter { ... }, Quest { ... } and the string pools take a table.
	L.SetGlobal("Starter", single(L, &coll.starter))
	L.SetGlobal("Quest", single(L, &coll.quest))
	L.SetGlobal("Names", single(L, &coll.names))
	L.SetGlobal("Personalities", single(L, &coll.personalities))
	L.SetGlobal("Hints", single(L, &coll.hints))
}

// keyed builds a constructor of the form Name "id" { ... }.
func keyed(L *lua.LState, add func(rawDef)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			add(rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	})
}

// single builds a constructor of the form Name { ... }. A later call
// replaces an earlier one.
func single(L *lua.LState, dst **lua.LTable) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		*dst = L.CheckTable(1)
		return 0
	})
}
