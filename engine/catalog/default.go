package catalog

import "github.com/nathoo/scrapcore/types"

// Default returns the built-in content.
func Default() *Registry {
	return MustNew(DefaultContent())
}

// DefaultContent returns the built-in content as plain data.
func DefaultContent() Content {
	return Content{
		Skills: []types.Skill{
			// Scout
			{ID: "LASER_SHOT", Name: "Laser Shot", Description: "Fast, reliable thermal damage.", Category: types.CategoryAttack, DamageType: types.Thermal, MinLevel: 1, BaseDamage: 15},
			{ID: "TARGET_LOCK", Name: "Target Lock", Description: "Lock on. Deals no damage.", Category: types.CategorySupport, DamageType: types.Untyped, MinLevel: 3},
			{ID: "QUICK_DASH", Name: "Quick Dash", Description: "Evasive shield.", Category: types.CategoryDefense, DamageType: types.Untyped, MinLevel: 5, Shield: 15},

			// Assault
			{ID: "BURST_FIRE", Name: "Burst Fire", Description: "Fire 3 shots. Low accuracy.", Category: types.CategoryAttack, DamageType: types.Kinetic, MinLevel: 1, BaseDamage: 10, Roll: types.RollSpread, Spread: 10},
			{ID: "GRENADE", Name: "Plasma Grenade", Description: "High damage explosive.", Category: types.CategoryAttack, DamageType: types.Thermal, MinLevel: 3, BaseDamage: 40},
			{ID: "OVERCLOCK", Name: "Overclock", Description: "Push the reactor past its limits.", Category: types.CategorySupport, DamageType: types.Untyped, MinLevel: 5},

			// Tank
			{ID: "BASH", Name: "Piston Bash", Description: "Melee hit.", Category: types.CategoryAttack, DamageType: types.Kinetic, MinLevel: 1, BaseDamage: 20},
			{ID: "REINFORCE", Name: "Reinforce", Description: "Raise a heavy temporary shield.", Category: types.CategoryDefense, DamageType: types.Untyped, MinLevel: 3, Shield: 30},
			{ID: "TAUNT", Name: "Aggro Shout", Description: "Brace behind a light shield.", Category: types.CategoryDefense, DamageType: types.Untyped, MinLevel: 5, Shield: 20},

			// Tech
			{ID: "ZAP", Name: "Arc Zap", Description: "Electric arc.", Category: types.CategoryTech, DamageType: types.Electric, MinLevel: 1, BaseDamage: 15},
			{ID: "QUICK_FIX", Name: "Quick Fix", Description: "Restore 30 HP.", Category: types.CategorySupport, DamageType: types.Untyped, MinLevel: 3, Heal: 30},
			{ID: "VIRUS", Name: "System Virus", Description: "Corrupting payload.", Category: types.CategoryTech, DamageType: types.Electric, MinLevel: 5, BaseDamage: 12},

			// Universal
			{ID: "HACK", Name: "System Hack", Description: "Risky. High Dmg or Fail.", Category: types.CategoryTech, DamageType: types.Untyped, MinLevel: 1, BaseDamage: 30, Roll: types.RollGamble, SuccessRate: 0.6},
		},
		Modules: []types.Module{
			{ID: "hull_plating", Name: "Titanium Plating", Description: "Increases Max HP by 50.", Cost: 100, Type: types.Passive, Effect: types.HullPlating, Value: 50},
			{ID: "scanner", Name: "Sensor Mast", Description: "Cuts random encounters by 40%.", Cost: 120, Type: types.Passive, Effect: types.Scanner, Value: 40},
			{ID: "targeting_chip", Name: "Combat CPU", Description: "Increases Attack damage by 10.", Cost: 150, Type: types.Passive, Effect: types.DamageBoost, Value: 10},
			{ID: "shield_gen", Name: "Shield Generator", Description: "Combat action: gain 30 temporary shield.", Cost: 250, Type: types.Active, Effect: types.ShieldGen, Value: 30},
			{ID: "auto_repair", Name: "Nanite Hive", Description: "Heal 10 HP after every battle.", Cost: 300, Type: types.Passive, Effect: types.AutoRepair, Value: 10},
		},
		Items: []types.Item{
			{ID: "repair_kit", Name: "Repair Kit", Description: "Heal 50 HP", Effect: types.ItemHeal, Value: 50, Count: 1},
			{ID: "xp_chip", Name: "Data Chip", Description: "Grant 50 XP", Effect: types.ItemXP, Value: 50, Count: 1},
			{ID: "battery", Name: "Power Cell", Description: "Revive Bot (25% HP)", Effect: types.ItemRevive, Value: 0.25, Count: 1},
			{ID: "hyperdrive_part", Name: "Hyperdrive Flux", Description: "Required to repair the Pod.", Effect: types.ItemQuest, Value: 1, Count: 1},
			{ID: "omni_tool", Name: "The Omni-Tool", Description: "The master key to the Escape Pod.", Effect: types.ItemQuest, Value: 1, Count: 1},
		},
		Classes: []ClassDef{
			{Class: types.Scout, Name: "Scout", HP: 80, StartingSkills: []string{"LASER_SHOT", "HACK"}},
			{Class: types.Assault, Name: "Assault", HP: 120, StartingSkills: []string{"BURST_FIRE", "HACK"}},
			{Class: types.Tank, Name: "Tank", HP: 150, StartingSkills: []string{"BASH", "HACK"}},
			{Class: types.Tech, Name: "Tech", HP: 70, StartingSkills: []string{"ZAP", "HACK"}},
		},
		Enemies: []EnemyDef{
			{Type: "SCRAP_DRONE", Name: "Scrap Drone", Class: types.Scout, BaseHP: 40, XP: 20, MinLevel: 1, MaxLevel: 2, Weight: 80},
			{Type: "HEAVY_MECH", Name: "Heavy Mech", Class: types.Tank, BaseHP: 80, XP: 40, MinLevel: 1, MaxLevel: 2, Weight: 20},
			{Type: "SCRAP_DRONE", Name: "Scrap Drone", Class: types.Scout, BaseHP: 50, HPPerLevel: 5, XP: 25, MinLevel: 3, Weight: 40},
			{Type: "HEAVY_MECH", Name: "Heavy Mech", Class: types.Tank, BaseHP: 100, HPPerLevel: 10, XP: 40, MinLevel: 3, Weight: 30},
			{Type: "NANITE_SWARM", Name: "Nanite Swarm", Class: types.Tech, BaseHP: 60, HPPerLevel: 5, XP: 50, MinLevel: 3, Weight: 20},
			{Type: "JUNKER_BEHEMOTH", Name: "Junker Behemoth", Class: types.Assault, BaseHP: 200, HPPerLevel: 10, XP: 100, MinLevel: 3, Weight: 10},
		},
		Boss: EnemyDef{Type: "CORE_GUARDIAN", Name: "THE WARDEN", Class: types.Tank, BaseHP: 500, XP: 1000},
		Starter: StarterDef{
			ID:          "starter_bot",
			Name:        "Scout-01",
			Class:       types.Scout,
			HP:          100,
			Personality: "Ready for duty.",
		},
		StarterItems: []types.Item{
			{ID: "repair_kit", Name: "Repair Kit", Description: "Heals 50 HP", Effect: types.ItemHeal, Value: 50, Count: 2},
		},
		QuestPartID: "hyperdrive_part",
		OmniToolID:  "omni_tool",
		Names: []string{
			"Rusty", "Sparky", "Bolt", "Gearhead", "Circuit", "Omega",
			"Unit-734", "Glitch", "Prime", "Echo", "Vortex", "Ironclad",
		},
		Personalities: []string{
			"Cheerful beep.", "Grumpy hum.", "Stoic silence.", "Manic clicking.", "Philosophical whir.",
		},
		Hints: []string{
			"I saw a Hyperdrive part in a crate far to the east...",
			"The Guardian only appears when the pod is active.",
			"Need spare parts? Too bad.",
			"My logic core hurts.",
			"Caches further from the crash site hold the good stuff.",
		},
	}
}
