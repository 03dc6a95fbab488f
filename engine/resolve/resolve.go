// Package resolve maps the names players type for skills, items and modules
// to catalog IDs.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/scrapcore/engine/catalog"
	"github.com/nathoo/scrapcore/engine/state"
	"github.com/nathoo/scrapcore/types"
)

// AmbiguityError indicates multiple candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("Which %s? (%s)", e.Name, names)
}

// candidate is something a name can resolve to.
type candidate struct {
	id   string
	name string
}

// Command rewrites the skill, item or module ID of cmd to the single
// catalog ID its words name. Unknown names are left alone so the engine
// reports them; a name matching several candidates is an AmbiguityError.
func Command(cmd types.Command, p *types.Player, reg *catalog.Registry) (types.Command, error) {
	switch c := cmd.(type) {
	case types.EquipSkill:
		id, err := resolveName(c.SkillID, botSkills(p, reg, true))
		c.SkillID = id
		return c, err
	case types.UseItem:
		id, err := resolveName(c.ItemID, inventory(p))
		c.ItemID = id
		return c, err
	case types.BuyModule:
		id, err := resolveName(c.ModuleID, shop(reg))
		c.ModuleID = id
		return c, err
	case types.CombatAction:
		switch a := c.Action.(type) {
		case types.UseSkill:
			id, err := resolveName(a.SkillID, botSkills(p, reg, false))
			a.SkillID = id
			return types.CombatAction{Action: a}, err
		case types.CombatItem:
			id, err := resolveName(a.ItemID, inventory(p))
			a.ItemID = id
			return types.CombatAction{Action: a}, err
		}
	}
	return cmd, nil
}

// resolveName resolves a single name to a candidate ID.
func resolveName(name string, cands []candidate) (string, error) {
	// 1. Exact ID match.
	for _, c := range cands {
		if strings.EqualFold(c.id, name) {
			return c.id, nil
		}
	}

	// 2. Every query word appears in the ID or display name.
	query := words(name)
	if len(query) == 0 {
		return name, nil
	}
	var matches []string
	for _, c := range cands {
		if matchesWords(c, query) && !containsStr(matches, c.id) {
			matches = append(matches, c.id)
		}
	}

	switch len(matches) {
	case 0:
		return name, nil
	case 1:
		return matches[0], nil
	default:
		return name, &AmbiguityError{Name: strings.Join(query, " "), Candidates: matches}
	}
}

// matchesWords checks if every query word is a word of the candidate's ID
// or name. "laser" matches LASER_SHOT, "titanium" matches "Titanium Plating".
func matchesWords(c candidate, query []string) bool {
	have := append(words(c.id), words(c.name)...)
	for _, q := range query {
		if !containsStr(have, q) {
			return false
		}
	}
	return true
}

// words lowercases s and splits it on spaces, underscores and hyphens.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
}

// botSkills lists the skills of the active bot; stored skills count only
// when loading RAM outside combat.
func botSkills(p *types.Player, reg *catalog.Registry, withStored bool) []candidate {
	b := state.ActiveBot(p)
	if b == nil {
		return nil
	}
	ids := append([]string(nil), b.ActiveSkills...)
	if withStored {
		ids = append(ids, b.StoredSkills...)
	}
	cands := make([]candidate, 0, len(ids))
	for _, id := range ids {
		c := candidate{id: id}
		if s, ok := reg.Skill(id); ok {
			c.name = s.Name
		}
		cands = append(cands, c)
	}
	return cands
}

func inventory(p *types.Player) []candidate {
	cands := make([]candidate, 0, len(p.Inventory))
	for _, it := range p.Inventory {
		cands = append(cands, candidate{id: it.ID, name: it.Name})
	}
	return cands
}

func shop(reg *catalog.Registry) []candidate {
	mods := reg.Modules()
	cands := make([]candidate, 0, len(mods))
	for _, m := range mods {
		cands = append(cands, candidate{id: m.ID, name: m.Name})
	}
	return cands
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
