// Package tuning reads balance constants from a YAML file. Fields left out
// of the file keep their defaults.
package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nathoo/scrapcore/engine"
	"github.com/nathoo/scrapcore/engine/score"
	"github.com/nathoo/scrapcore/types"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed tuning.schema.json
var schemaSrc string

var schema = jsonschema.MustCompileString("tuning.schema.json", schemaSrc)

// Tuning is the on-disk balance document.
type Tuning struct {
	World       World         `yaml:"world"`
	Exploration Exploration   `yaml:"exploration"`
	Combat      Combat        `yaml:"combat"`
	Scoring     score.Weights `yaml:"scoring"`
}

// World holds map layout distances.
type World struct {
	PodMinDist     int   `yaml:"pod_min_dist"`
	PodMaxDist     int   `yaml:"pod_max_dist"`
	GuardianOffset []int `yaml:"guardian_offset"`
	OriginSafe     int   `yaml:"origin_safe"`
	PodSafe        int   `yaml:"pod_safe"`
	SpawnClear     int   `yaml:"spawn_clear"`
	PodClear       int   `yaml:"pod_clear"`
}

// Exploration holds overworld constants. Durations are in milliseconds.
type Exploration struct {
	EncounterChance  float64 `yaml:"encounter_chance"`
	PodSafeRadius    float64 `yaml:"pod_safe_radius"`
	AcidDamage       int     `yaml:"acid_damage"`
	RecruitCost      int     `yaml:"recruit_cost"`
	ConsolationScrap int     `yaml:"consolation_scrap"`
	CacheScrapMin    int     `yaml:"cache_scrap_min"`
	CacheScrapSpread int     `yaml:"cache_scrap_spread"`
	PartDistance     float64 `yaml:"part_distance"`
	PartsNeeded      int     `yaml:"parts_needed"`
	RepairCost       int     `yaml:"repair_cost"`
	RepairAmount     int     `yaml:"repair_amount"`
	PathBudget       int     `yaml:"path_budget"`
	TravelIntervalMs int     `yaml:"travel_interval_ms"`
}

// Combat holds fight constants and log delays.
type Combat struct {
	LevelHP          int     `yaml:"level_hp"`
	LootChance       float64 `yaml:"loot_chance"`
	ShieldPerLevel   int     `yaml:"shield_per_level"`
	ShieldModDefault int     `yaml:"shield_mod_default"`
	RecruitHPFactor  float64 `yaml:"recruit_hp_factor"`
	RecruitCap       float64 `yaml:"recruit_cap"`
	CheckDelayMs     int     `yaml:"check_delay_ms"`
	RewardDelayMs    int     `yaml:"reward_delay_ms"`
	AttackDelayMs    int     `yaml:"attack_delay_ms"`
	RecruitDelayMs   int     `yaml:"recruit_delay_ms"`
}

// Defaults mirrors engine.DefaultRules.
func Defaults() Tuning {
	return FromRules(engine.DefaultRules())
}

// FromRules expresses engine rules as a tuning document.
func FromRules(r engine.Rules) Tuning {
	l, c := r.Layout, r.Combat
	return Tuning{
		World: World{
			PodMinDist:     l.PodMinDist,
			PodMaxDist:     l.PodMaxDist,
			GuardianOffset: []int{l.GuardianOffset.X, l.GuardianOffset.Y},
			OriginSafe:     l.OriginSafe,
			PodSafe:        l.PodSafe,
			SpawnClear:     l.SpawnClear,
			PodClear:       l.PodClear,
		},
		Exploration: Exploration{
			EncounterChance:  r.EncounterChance,
			PodSafeRadius:    r.PodSafeRadius,
			AcidDamage:       r.AcidDamage,
			RecruitCost:      r.RecruitCost,
			ConsolationScrap: r.ConsolationScrap,
			CacheScrapMin:    r.CacheScrapMin,
			CacheScrapSpread: r.CacheScrapSpread,
			PartDistance:     r.PartDistance,
			PartsNeeded:      r.PartsNeeded,
			RepairCost:       r.RepairCost,
			RepairAmount:     r.RepairAmount,
			PathBudget:       r.PathBudget,
			TravelIntervalMs: int(r.TravelInterval / time.Millisecond),
		},
		Combat: Combat{
			LevelHP:          c.LevelHP,
			LootChance:       c.LootChance,
			ShieldPerLevel:   c.ShieldPerLevel,
			ShieldModDefault: c.ShieldModDefault,
			RecruitHPFactor:  c.RecruitHPFactor,
			RecruitCap:       c.RecruitCap,
			CheckDelayMs:     int(c.CheckDelay / time.Millisecond),
			RewardDelayMs:    int(c.RewardDelay / time.Millisecond),
			AttackDelayMs:    int(c.AttackDelay / time.Millisecond),
			RecruitDelayMs:   int(c.RecruitDelay / time.Millisecond),
		},
		Scoring: r.Scoring,
	}
}

// Rules converts the document into engine rules.
func (t Tuning) Rules() engine.Rules {
	r := engine.DefaultRules()

	w := t.World
	r.Layout.PodMinDist = w.PodMinDist
	r.Layout.PodMaxDist = w.PodMaxDist
	if len(w.GuardianOffset) == 2 {
		r.Layout.GuardianOffset = types.Position{X: w.GuardianOffset[0], Y: w.GuardianOffset[1]}
	}
	r.Layout.OriginSafe = w.OriginSafe
	r.Layout.PodSafe = w.PodSafe
	r.Layout.SpawnClear = w.SpawnClear
	r.Layout.PodClear = w.PodClear

	e := t.Exploration
	r.EncounterChance = e.EncounterChance
	r.PodSafeRadius = e.PodSafeRadius
	r.AcidDamage = e.AcidDamage
	r.RecruitCost = e.RecruitCost
	r.ConsolationScrap = e.ConsolationScrap
	r.CacheScrapMin = e.CacheScrapMin
	r.CacheScrapSpread = e.CacheScrapSpread
	r.PartDistance = e.PartDistance
	r.PartsNeeded = e.PartsNeeded
	r.RepairCost = e.RepairCost
	r.RepairAmount = e.RepairAmount
	r.PathBudget = e.PathBudget
	r.TravelInterval = ms(e.TravelIntervalMs)

	c := t.Combat
	r.Combat.LevelHP = c.LevelHP
	r.Combat.LootChance = c.LootChance
	r.Combat.ShieldPerLevel = c.ShieldPerLevel
	r.Combat.ShieldModDefault = c.ShieldModDefault
	r.Combat.RecruitHPFactor = c.RecruitHPFactor
	r.Combat.RecruitCap = c.RecruitCap
	r.Combat.CheckDelay = ms(c.CheckDelayMs)
	r.Combat.RewardDelay = ms(c.RewardDelayMs)
	r.Combat.AttackDelay = ms(c.AttackDelayMs)
	r.Combat.RecruitDelay = ms(c.RecruitDelayMs)

	r.Scoring = t.Scoring
	return r
}

// Load reads and validates a tuning file.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	t, err := Parse(raw)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a tuning document over the defaults.
func Parse(raw []byte) (Tuning, error) {
	if err := validateDoc(raw); err != nil {
		return Tuning{}, err
	}
	t := Defaults()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.World.PodMaxDist < t.World.PodMinDist {
		return Tuning{}, fmt.Errorf("world.pod_max_dist %d is below pod_min_dist %d",
			t.World.PodMaxDist, t.World.PodMinDist)
	}
	return t, nil
}

// validateDoc checks the raw document against the embedded schema. YAML is
// re-encoded as JSON so the validator sees JSON numbers.
func validateDoc(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	return nil
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
