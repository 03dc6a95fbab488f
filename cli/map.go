package cli

import (
	"strings"

	"github.com/nathoo/scrapcore/engine"
	"github.com/nathoo/scrapcore/engine/world"
	"github.com/nathoo/scrapcore/types"
)

var poiGlyphs = map[types.POI]rune{types.Cache: 'C', types.Derelict: 'D', types.NPC: 'N'}

// Glyph returns the plain-text symbol for a tile. Visited caches, derelicts
// and NPCs are drawn as the floor they stand on.
func Glyph(w world.Config, visited map[string]bool, x, y int) rune {
	switch poi := w.POIAt(x, y); poi {
	case types.Pod:
		return 'P'
	case types.Guardian:
		return 'G'
	case types.Cache, types.Derelict, types.NPC:
		if !visited[world.Key(types.Position{X: x, Y: y})] {
			return poiGlyphs[poi]
		}
	}
	switch w.TerrainAt(x, y) {
	case types.Wall:
		return '#'
	case types.Debris:
		return ':'
	case types.AcidPool:
		return '~'
	}
	return '.'
}

// MapRows renders the square of the given radius centred on the squad.
func MapRows(e *engine.Engine, radius int) []string {
	p := e.Player()
	w := e.World()
	rows := make([]string, 0, 2*radius+1)
	var sb strings.Builder
	for y := p.Pos.Y - radius; y <= p.Pos.Y+radius; y++ {
		sb.Reset()
		for x := p.Pos.X - radius; x <= p.Pos.X+radius; x++ {
			if x == p.Pos.X && y == p.Pos.Y {
				sb.WriteRune('@')
				continue
			}
			sb.WriteRune(Glyph(w, p.Visited, x, y))
		}
		rows = append(rows, sb.String())
	}
	return rows
}
