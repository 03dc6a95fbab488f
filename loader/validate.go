package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var validCategories = map[types.SkillCategory]bool{
	types.CategoryAttack:  true,
	types.CategorySupport: true,
	types.CategoryTech:    true,
	types.CategoryDefense: true,
}

var validDamageTypes = map[types.DamageType]bool{
	types.Kinetic:  true,
	types.Thermal:  true,
	types.Electric: true,
	types.Untyped:  true,
}

var validRolls = map[types.DamageRoll]bool{
	types.RollFixed:  true,
	types.RollSpread: true,
	types.RollGamble: true,
}

var validClasses = map[types.Class]bool{
	types.Scout:   true,
	types.Assault: true,
	types.Tank:    true,
	types.Tech:    true,
}

var validModuleEffects = map[types.ModuleEffect]bool{
	types.HullPlating: true,
	types.DamageBoost: true,
	types.ShieldGen:   true,
	types.Scanner:     true,
	types.AutoRepair:  true,
}

var validItemEffects = map[types.ItemEffect]bool{
	types.ItemHeal:   true,
	types.ItemXP:     true,
	types.ItemRevive: true,
	types.ItemQuest:  true,
}

// validate checks the compiled content for referential integrity and
// consistency. Warnings alone do not fail validation.
func validate(c catalog.Content) error {
	ve := &ValidationError{}

	skills := map[string]bool{}
	for _, s := range c.Skills {
		if skills[s.ID] {
			ve.errorf("duplicate skill %q", s.ID)
		}
		skills[s.ID] = true
		validateSkill(s, ve)
	}

	modules := map[string]bool{}
	for _, m := range c.Modules {
		if modules[m.ID] {
			ve.errorf("duplicate module %q", m.ID)
		}
		modules[m.ID] = true
		if !validModuleEffects[m.Effect] {
			ve.errorf("module %q has unknown effect %q", m.ID, m.Effect)
		}
		if m.Type != types.Passive && m.Type != types.Active {
			ve.errorf("module %q has unknown type %q", m.ID, m.Type)
		}
		if m.Cost < 0 {
			ve.errorf("module %q has negative cost", m.ID)
		}
	}

	items := map[string]types.Item{}
	for _, it := range c.Items {
		if _, dup := items[it.ID]; dup {
			ve.errorf("duplicate item %q", it.ID)
		}
		items[it.ID] = it
		if !validItemEffects[it.Effect] {
			ve.errorf("item %q has unknown effect %q", it.ID, it.Effect)
		}
	}

	classes := map[types.Class]bool{}
	if len(c.Classes) == 0 {
		ve.errorf("at least one BotClass is required")
	}
	for _, cl := range c.Classes {
		if classes[cl.Class] {
			ve.errorf("duplicate class %q", cl.Class)
		}
		classes[cl.Class] = true
		if !validClasses[cl.Class] {
			ve.errorf("class %q is not one of SCOUT, ASSAULT, TANK, TECH", cl.Class)
		}
		if cl.HP <= 0 {
			ve.errorf("class %q needs positive hp", cl.Class)
		}
		if len(cl.StartingSkills) == 0 || len(cl.StartingSkills) > state.MaxActiveSkills {
			ve.errorf("class %q needs 1 to %d starting skills, has %d",
				cl.Class, state.MaxActiveSkills, len(cl.StartingSkills))
		}
		for _, id := range cl.StartingSkills {
			if !skills[id] {
				ve.errorf("class %q starting skill %q is not defined", cl.Class, id)
			}
		}
	}

	if len(c.Enemies) == 0 {
		ve.errorf("at least one Enemy is required")
	}
	reachable := false
	for _, e := range c.Enemies {
		validateEnemy("enemy", e, ve)
		if e.Weight <= 0 {
			ve.errorf("enemy %q needs a positive weight", e.Type)
		}
		if e.MinLevel <= 1 {
			reachable = true
		}
	}
	if len(c.Enemies) > 0 && !reachable {
		ve.warnf("no enemy spawns at level 1")
	}
	validateEnemy("boss", c.Boss, ve)

	if !classes[c.Starter.Class] {
		ve.errorf("starter class %q is not defined", c.Starter.Class)
	}
	if c.Starter.Name == "" {
		ve.errorf("starter needs a name")
	}
	if c.Starter.HP <= 0 {
		ve.errorf("starter needs positive hp")
	}
	for _, it := range c.StarterItems {
		if _, ok := items[it.ID]; !ok {
			ve.errorf("starter item %q is not defined", it.ID)
		}
	}

	for _, ref := range []struct{ role, id string }{
		{"quest part", c.QuestPartID},
		{"omni tool", c.OmniToolID},
	} {
		it, ok := items[ref.id]
		switch {
		case !ok:
			ve.errorf("%s item %q is not defined", ref.role, ref.id)
		case it.Effect != types.ItemQuest:
			ve.warnf("%s item %q is not a QUEST item and can drop as loot", ref.role, ref.id)
		}
	}

	if len(c.Names) == 0 {
		ve.warnf("no recruit names; recruits will be called Unit")
	}
	if len(c.Hints) == 0 {
		ve.warnf("no NPC hints")
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateSkill(s types.Skill, ve *ValidationError) {
	if s.Name == "" {
		ve.errorf("skill %q needs a name", s.ID)
	}
	if !validCategories[s.Category] {
		ve.errorf("skill %q has unknown category %q", s.ID, s.Category)
	}
	if !validDamageTypes[s.DamageType] {
		ve.errorf("skill %q has unknown damage type %q", s.ID, s.DamageType)
	}
	if !validRolls[s.Roll] {
		ve.errorf("skill %q has unknown roll %q", s.ID, s.Roll)
	}
	if s.Roll == types.RollSpread && s.Spread <= 0 {
		ve.errorf("skill %q uses SPREAD without a positive spread", s.ID)
	}
	if s.Roll == types.RollGamble && (s.SuccessRate <= 0 || s.SuccessRate > 1) {
		ve.errorf("skill %q uses GAMBLE with success_rate outside (0, 1]", s.ID)
	}
	if s.MinLevel < 1 {
		ve.errorf("skill %q needs min_level of at least 1", s.ID)
	}
}

func validateEnemy(role string, e catalog.EnemyDef, ve *ValidationError) {
	if e.Type == "" {
		ve.errorf("%s needs a type", role)
		return
	}
	if !validClasses[e.Class] {
		ve.errorf("%s %q has unknown class %q", role, e.Type, e.Class)
	}
	if e.BaseHP <= 0 {
		ve.errorf("%s %q needs positive base_hp", role, e.Type)
	}
	if e.MaxLevel > 0 && e.MaxLevel < e.MinLevel {
		ve.errorf("%s %q has max_level below min_level", role, e.Type)
	}
}
