package loader

import (
	"testing"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/types"
)

func TestValidate_DefaultContent(t *testing.T) {
	if err := validate(catalog.DefaultContent()); err != nil {
		t.Fatalf("built-in content should validate, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *catalog.Content)
		want   string
	}{
		{"unknown category", func(c *catalog.Content) {
			c.Skills[0].Category = "MAGIC"
		}, "unknown category"},
		{"spread without width", func(c *catalog.Content) {
			c.Skills[0].Roll = types.RollSpread
			c.Skills[0].Spread = 0
		}, "SPREAD"},
		{"gamble odds", func(c *catalog.Content) {
			c.Skills[0].Roll = types.RollGamble
			c.Skills[0].SuccessRate = 1.5
		}, "GAMBLE"},
		{"duplicate skill", func(c *catalog.Content) {
			c.Skills = append(c.Skills, c.Skills[0])
		}, "duplicate skill"},
		{"module effect", func(c *catalog.Content) {
			c.Modules[0].Effect = "WARP"
		}, "unknown effect"},
		{"too many starting skills", func(c *catalog.Content) {
			c.Classes[0].StartingSkills = []string{"LASER_SHOT", "HACK", "BASH", "ZAP"}
		}, "starting skills"},
		{"no classes", func(c *catalog.Content) {
			c.Classes = nil
		}, "BotClass"},
		{"bad enemy class", func(c *catalog.Content) {
			c.Enemies[0].Class = "DRAGON"
		}, "unknown class"},
		{"zero weight", func(c *catalog.Content) {
			c.Enemies[0].Weight = 0
		}, "positive weight"},
		{"level band", func(c *catalog.Content) {
			c.Enemies[0].MinLevel, c.Enemies[0].MaxLevel = 5, 2
		}, "max_level below min_level"},
		{"boss hp", func(c *catalog.Content) {
			c.Boss.BaseHP = 0
		}, "boss"},
		{"missing quest part", func(c *catalog.Content) {
			c.QuestPartID = "unobtainium"
		}, "quest part"},
		{"starter hp", func(c *catalog.Content) {
			c.Starter.HP = 0
		}, "starter needs positive hp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := catalog.DefaultContent()
			tt.mutate(&c)
			err := validate(c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve := err.(*ValidationError)
			assertContains(t, ve.Errors, tt.want)
		})
	}
}

func TestValidate_WarningsOnly(t *testing.T) {
	c := catalog.DefaultContent()
	c.Names = nil
	c.Hints = nil
	if err := validate(c); err != nil {
		t.Fatalf("empty pools should only warn, got: %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []string{"a", "b"}}
	if got := ve.Error(); got != "validation failed with 2 error(s):\n  a\n  b" {
		t.Errorf("Error() = %q", got)
	}
}
