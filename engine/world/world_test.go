package world

import (
	"testing"

	"github.com/nathoo/scrapcore/engine/rng"
	"github.com/nathoo/scrapcore/types"
)

func testConfig() Config {
	return NewConfig(DefaultLayout(), types.Position{X: 20, Y: -14})
}

func TestTerrainAt_Deterministic(t *testing.T) {
	c := testConfig()
	for x := -60; x <= 60; x += 3 {
		for y := -60; y <= 60; y += 3 {
			a := c.TerrainAt(x, y)
			b := c.TerrainAt(x, y)
			if a != b {
				t.Fatalf("TerrainAt(%d,%d) not stable: %v vs %v", x, y, a, b)
			}
		}
	}
}

func TestTerrainAt_SafeZonesAreFloor(t *testing.T) {
	c := testConfig()
	for dx := -c.OriginSafe; dx <= c.OriginSafe; dx++ {
		for dy := -c.OriginSafe; dy <= c.OriginSafe; dy++ {
			if got := c.TerrainAt(dx, dy); got != types.Floor {
				t.Errorf("origin safe zone (%d,%d) = %v, want Floor", dx, dy, got)
			}
		}
	}
	for dx := -c.PodSafe; dx <= c.PodSafe; dx++ {
		for dy := -c.PodSafe; dy <= c.PodSafe; dy++ {
			x, y := c.Pod.X+dx, c.Pod.Y+dy
			if got := c.TerrainAt(x, y); got != types.Floor {
				t.Errorf("pod safe zone (%d,%d) = %v, want Floor", x, y, got)
			}
		}
	}
}

func TestTerrainAt_AllBandsOccur(t *testing.T) {
	c := testConfig()
	seen := map[types.Terrain]int{}
	for x := -100; x <= 100; x++ {
		for y := -100; y <= 100; y++ {
			seen[c.TerrainAt(x, y)]++
		}
	}
	for _, want := range []types.Terrain{types.Floor, types.Wall, types.Debris, types.AcidPool} {
		if seen[want] == 0 {
			t.Errorf("terrain %v never generated in a 201x201 window", want)
		}
	}
	if seen[types.Floor] < seen[types.Wall] {
		t.Errorf("expected floor to dominate walls, got floor=%d wall=%d", seen[types.Floor], seen[types.Wall])
	}
}

func TestTerrainAt_ConfigOnlyMovesSafeZones(t *testing.T) {
	a := NewConfig(DefaultLayout(), types.Position{X: 20, Y: -14})
	b := NewConfig(DefaultLayout(), types.Position{X: -25, Y: 17})

	// Far from both pods the hash alone decides.
	for x := 50; x < 70; x++ {
		for y := 50; y < 70; y++ {
			if a.TerrainAt(x, y) != b.TerrainAt(x, y) {
				t.Fatalf("terrain at (%d,%d) depends on pod placement", x, y)
			}
		}
	}
}

func TestPOIAt_FixedPoints(t *testing.T) {
	c := testConfig()
	if got := c.POIAt(c.Pod.X, c.Pod.Y); got != types.Pod {
		t.Errorf("POIAt(pod) = %v, want Pod", got)
	}
	if got := c.POIAt(c.Guardian.X, c.Guardian.Y); got != types.Guardian {
		t.Errorf("POIAt(guardian) = %v, want Guardian", got)
	}
	if got := c.TerrainAt(c.Guardian.X, c.Guardian.Y); got != types.Floor {
		t.Errorf("guardian tile terrain = %v, want Floor", got)
	}
}

func TestPOIAt_OnlyOnFloorOutsideClearZones(t *testing.T) {
	c := testConfig()
	found := 0
	for x := -80; x <= 80; x++ {
		for y := -80; y <= 80; y++ {
			poi := c.POIAt(x, y)
			if poi == types.NoPOI || poi == types.Pod || poi == types.Guardian {
				continue
			}
			found++
			if c.TerrainAt(x, y) != types.Floor {
				t.Fatalf("POI %v at (%d,%d) on non-floor terrain", poi, x, y)
			}
			if abs(x) < c.SpawnClear && abs(y) < c.SpawnClear {
				t.Fatalf("POI %v at (%d,%d) inside spawn clearing", poi, x, y)
			}
			if chebyshev(x, y, c.Pod.X, c.Pod.Y) < c.PodClear {
				t.Fatalf("POI %v at (%d,%d) inside pod clearing", poi, x, y)
			}
		}
	}
	if found == 0 {
		t.Error("expected some random POIs in a 161x161 window")
	}
}

func TestPOIAt_Deterministic(t *testing.T) {
	c := testConfig()
	for x := -40; x <= 40; x++ {
		for y := -40; y <= 40; y++ {
			if c.POIAt(x, y) != c.POIAt(x, y) {
				t.Fatalf("POIAt(%d,%d) not stable", x, y)
			}
		}
	}
}

func TestRandomConfig_PodWithinRing(t *testing.T) {
	l := DefaultLayout()
	r := rng.New(99)
	for i := 0; i < 200; i++ {
		c := RandomConfig(l, r)
		d := chebyshev(c.Pod.X, c.Pod.Y, 0, 0)
		if d < l.PodMinDist || d > l.PodMaxDist {
			t.Fatalf("pod %+v at distance %d outside [%d,%d]", c.Pod, d, l.PodMinDist, l.PodMaxDist)
		}
		want := types.Position{X: c.Pod.X + l.GuardianOffset.X, Y: c.Pod.Y + l.GuardianOffset.Y}
		if c.Guardian != want {
			t.Fatalf("guardian = %+v, want %+v", c.Guardian, want)
		}
	}
}

func TestRandomConfig_SameSeedSameWorld(t *testing.T) {
	a := RandomConfig(DefaultLayout(), rng.New(5))
	b := RandomConfig(DefaultLayout(), rng.New(5))
	if a != b {
		t.Errorf("same seed produced different configs: %+v vs %+v", a, b)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		pos  types.Position
		want string
	}{
		{types.Position{X: 0, Y: 0}, "0,0"},
		{types.Position{X: -3, Y: 12}, "-3,12"},
		{types.Position{X: 105, Y: -7}, "105,-7"},
	}
	for _, tt := range tests {
		if got := Key(tt.pos); got != tt.want {
			t.Errorf("Key(%+v) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestNearGuardian(t *testing.T) {
	c := testConfig()
	g := c.Guardian
	if !c.NearGuardian(g.X, g.Y) || !c.NearGuardian(g.X+1, g.Y-1) {
		t.Error("expected guardian tile and diagonal neighbour to count as near")
	}
	if c.NearGuardian(g.X+2, g.Y) {
		t.Error("two tiles away should not count as near")
	}
}
