// Package world computes the infinite map on demand. Terrain and points of
// interest are pure functions of a coordinate and an immutable Config; no
// grid is ever stored.
package world

import (
	"math"
	"strconv"

	"github.com/nathoo/scrapcore/engine/rng"
	"github.com/nathoo/scrapcore/types"
)

// Terrain hash bands.
const (
	wallAbove   = 0.85
	debrisAbove = 0.80
	acidBelow   = 0.03
)

// POI hash bands.
const (
	cacheAbove    = 0.985
	derelictAbove = 0.975
	npcAbove      = 0.970
)

// Config fixes the per-game parts of the world. It is created once when a
// game starts and never changes afterwards.
type Config struct {
	Pod      types.Position
	Guardian types.Position

	OriginSafe int // Chebyshev radius of forced floor around the origin
	PodSafe    int // Chebyshev radius of forced floor around the pod
	SpawnClear int // no random POIs while |x| and |y| are below this
	PodClear   int // no random POIs this close (Chebyshev) to the pod
}

// Layout holds the tunable geometry used to build a Config.
type Layout struct {
	PodMinDist     int
	PodMaxDist     int
	GuardianOffset types.Position
	OriginSafe     int
	PodSafe        int
	SpawnClear     int
	PodClear       int
}

// DefaultLayout returns the standard world geometry.
func DefaultLayout() Layout {
	return Layout{
		PodMinDist:     12,
		PodMaxDist:     30,
		GuardianOffset: types.Position{X: 3, Y: 0},
		OriginSafe:     2,
		PodSafe:        3,
		SpawnClear:     5,
		PodClear:       5,
	}
}

// NewConfig builds a Config with the pod placed at pod.
func NewConfig(l Layout, pod types.Position) Config {
	return Config{
		Pod:        pod,
		Guardian:   types.Position{X: pod.X + l.GuardianOffset.X, Y: pod.Y + l.GuardianOffset.Y},
		OriginSafe: l.OriginSafe,
		PodSafe:    l.PodSafe,
		SpawnClear: l.SpawnClear,
		PodClear:   l.PodClear,
	}
}

// RandomConfig places the pod at a random point whose Chebyshev distance
// from the origin lies in [PodMinDist, PodMaxDist].
func RandomConfig(l Layout, r *rng.RNG) Config {
	lo, hi := l.PodMinDist, l.PodMaxDist
	if hi < lo {
		hi = lo
	}
	// One axis carries the ring distance, the other is free.
	major := lo + r.Intn(hi-lo+1)
	if r.Intn(2) == 0 {
		major = -major
	}
	minor := r.Intn(2*hi+1) - hi
	pod := types.Position{X: major, Y: minor}
	if r.Intn(2) == 0 {
		pod = types.Position{X: minor, Y: major}
	}
	return NewConfig(l, pod)
}

// Key returns the canonical string key for a coordinate.
func Key(p types.Position) string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// TerrainAt returns the terrain at (x, y).
func (c Config) TerrainAt(x, y int) types.Terrain {
	if chebyshev(x, y, 0, 0) <= c.OriginSafe || chebyshev(x, y, c.Pod.X, c.Pod.Y) <= c.PodSafe {
		return types.Floor
	}

	h := terrainHash(x, y)
	switch {
	case h > wallAbove:
		return types.Wall
	case h > debrisAbove:
		return types.Debris
	case h < acidBelow:
		return types.AcidPool
	}
	return types.Floor
}

// Walkable reports whether a tile can be entered.
func (c Config) Walkable(x, y int) bool {
	return c.TerrainAt(x, y) != types.Wall
}

// POIAt returns the point of interest at (x, y).
func (c Config) POIAt(x, y int) types.POI {
	if x == c.Pod.X && y == c.Pod.Y {
		return types.Pod
	}
	if x == c.Guardian.X && y == c.Guardian.Y {
		return types.Guardian
	}
	if c.TerrainAt(x, y) != types.Floor {
		return types.NoPOI
	}
	if abs(x) < c.SpawnClear && abs(y) < c.SpawnClear {
		return types.NoPOI
	}
	if chebyshev(x, y, c.Pod.X, c.Pod.Y) < c.PodClear {
		return types.NoPOI
	}

	h := poiHash(x, y)
	switch {
	case h > cacheAbove:
		return types.Cache
	case h > derelictAbove:
		return types.Derelict
	case h > npcAbove:
		return types.NPC
	}
	return types.NoPOI
}

// DistToPod is the Euclidean distance from (x, y) to the pod.
func (c Config) DistToPod(x, y int) float64 {
	return math.Hypot(float64(x-c.Pod.X), float64(y-c.Pod.Y))
}

// NearGuardian reports whether (x, y) is on or next to the guardian,
// diagonals included.
func (c Config) NearGuardian(x, y int) bool {
	return chebyshev(x, y, c.Guardian.X, c.Guardian.Y) <= 1
}

func terrainHash(x, y int) float64 {
	return frac(math.Sin(float64(x)*12.9898+float64(y)*78.233) * 43758.5453)
}

func poiHash(x, y int) float64 {
	return frac(math.Cos(float64(x)*43.234+float64(y)*12.123) * 91238.123)
}

func frac(n float64) float64 {
	return n - math.Floor(n)
}

func chebyshev(x, y, cx, cy int) int {
	dx, dy := abs(x-cx), abs(y-cy)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
