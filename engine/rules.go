package engine

import (
	"time"

	"github.com/nathoo/scrapcore/engine/combat"
	"github.com/nathoo/scrapcore/engine/path"
	"github.com/nathoo/scrapcore/engine/score"
	"github.com/nathoo/scrapcore/engine/world"
)

// Rules are the balance constants of exploration plus the combat and
// scoring rules. Zero values are not defaults; start from DefaultRules.
type Rules struct {
	Layout  world.Layout
	Combat  combat.Rules
	Scoring score.Weights

	EncounterChance float64 // per step, before the scanner
	PodSafeRadius   float64 // no encounters this close (Euclidean) to the pod
	AcidDamage      int

	RecruitCost      int
	ConsolationScrap int
	CacheScrapMin    int
	CacheScrapSpread int
	PartDistance     float64 // part chance is distance from origin / PartDistance
	PartsNeeded      int

	RepairCost   int
	RepairAmount int

	PathBudget     int
	TravelInterval time.Duration
}

// DefaultRules returns the standard balance.
func DefaultRules() Rules {
	return Rules{
		Layout:  world.DefaultLayout(),
		Combat:  combat.DefaultRules(),
		Scoring: score.DefaultWeights(),

		EncounterChance: 0.08,
		PodSafeRadius:   5,
		AcidDamage:      10,

		RecruitCost:      50,
		ConsolationScrap: 15,
		CacheScrapMin:    20,
		CacheScrapSpread: 50,
		PartDistance:     50,
		PartsNeeded:      3,

		RepairCost:   15,
		RepairAmount: 20,

		PathBudget:     path.DefaultBudget,
		TravelInterval: 150 * time.Millisecond,
	}
}
