package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/scrapcore/engine/catalog"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	skills        []rawDef
	modules       []rawDef
	items         []rawDef
	classes       []rawDef
	enemies       []rawDef
	boss          *rawDef
	starter       *lua.LTable
	quest         *lua.LTable
	names         *lua.LTable
	personalities *lua.LTable
	hints         *lua.LTable
}

// Load reads all .lua files from dir, compiles them over the built-in
// content, validates references, and returns the Registry. Sections a pack
// does not define keep their built-in values. The Lua VM is discarded after
// loading.
func Load(dir string) (*catalog.Registry, error) {
	c, err := LoadContent(dir)
	if err != nil {
		return nil, err
	}
	reg, err := catalog.New(c)
	if err != nil {
		return nil, fmt.Errorf("indexing content: %w", err)
	}
	return reg, nil
}

// LoadContent is Load without building the Registry.
func LoadContent(dir string) (catalog.Content, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return catalog.Content{}, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return catalog.Content{}, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return catalog.Content{}, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	c, err := compile(coll, catalog.DefaultContent())
	if err != nil {
		return catalog.Content{}, fmt.Errorf("compiling content: %w", err)
	}
	if err := validate(c); err != nil {
		return catalog.Content{}, err
	}
	return c, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// The simulation owns the only random source.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}
