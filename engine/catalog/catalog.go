// Package catalog holds the immutable reference content of a game: skills,
// modules, items, bot classes, the enemy spawn table and flavour text.
// A Registry is built once and only read afterwards; it is passed
// explicitly to everything that needs content.
package catalog

import (
	"fmt"

	"github.com/nathoo/scrapcore/types"
)

// ClassDef is a recruitable bot chassis.
type ClassDef struct {
	Class          types.Class
	Name           string
	HP             int
	StartingSkills []string
}

// EnemyDef is one row of the spawn table. MaxLevel 0 means no upper bound.
type EnemyDef struct {
	Type       string
	Name       string
	Class      types.Class
	BaseHP     int
	HPPerLevel int
	XP         int
	MinLevel   int
	MaxLevel   int
	Weight     int
}

// StarterDef describes the bot a new game begins with.
type StarterDef struct {
	ID          string
	Name        string
	Class       types.Class
	HP          int
	Personality string
}

// Content is the plain data a Registry is built from.
type Content struct {
	Skills        []types.Skill
	Modules       []types.Module
	Items         []types.Item
	Classes       []ClassDef
	Enemies       []EnemyDef
	Boss          EnemyDef
	Starter       StarterDef
	StarterItems  []types.Item
	QuestPartID   string
	OmniToolID    string
	Names         []string
	Personalities []string
	Hints         []string
}

// Registry is the read-only lookup view over Content.
type Registry struct {
	content Content
	skills  map[string]int
	modules map[string]int
	items   map[string]int
	classes map[types.Class]int
}

// New indexes content. Duplicate ids are rejected.
func New(c Content) (*Registry, error) {
	c.Skills = append([]types.Skill(nil), c.Skills...)
	c.Modules = append([]types.Module(nil), c.Modules...)
	c.Items = append([]types.Item(nil), c.Items...)
	c.Classes = append([]ClassDef(nil), c.Classes...)
	c.Enemies = append([]EnemyDef(nil), c.Enemies...)
	r := &Registry{
		content: c,
		skills:  make(map[string]int, len(c.Skills)),
		modules: make(map[string]int, len(c.Modules)),
		items:   make(map[string]int, len(c.Items)),
		classes: make(map[types.Class]int, len(c.Classes)),
	}
	for i, s := range c.Skills {
		if _, dup := r.skills[s.ID]; dup {
			return nil, fmt.Errorf("duplicate skill %q", s.ID)
		}
		r.skills[s.ID] = i
	}
	for i, m := range c.Modules {
		if _, dup := r.modules[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module %q", m.ID)
		}
		r.modules[m.ID] = i
	}
	for i, it := range c.Items {
		if _, dup := r.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item %q", it.ID)
		}
		r.items[it.ID] = i
	}
	for i, cl := range c.Classes {
		if _, dup := r.classes[cl.Class]; dup {
			return nil, fmt.Errorf("duplicate class %q", cl.Class)
		}
		r.classes[cl.Class] = i
	}
	return r, nil
}

// MustNew is New for content known to be valid.
func MustNew(c Content) *Registry {
	r, err := New(c)
	if err != nil {
		panic(err)
	}
	return r
}

// Skill looks up a skill by id.
func (r *Registry) Skill(id string) (types.Skill, bool) {
	i, ok := r.skills[id]
	if !ok {
		return types.Skill{}, false
	}
	return r.content.Skills[i], true
}

// Skills returns every skill in catalog order.
func (r *Registry) Skills() []types.Skill {
	return append([]types.Skill(nil), r.content.Skills...)
}

// Module looks up a module by id.
func (r *Registry) Module(id string) (types.Module, bool) {
	i, ok := r.modules[id]
	if !ok {
		return types.Module{}, false
	}
	return r.content.Modules[i], true
}

// Modules returns the module shop in catalog order.
func (r *Registry) Modules() []types.Module {
	return append([]types.Module(nil), r.content.Modules...)
}

// Item returns a single-count stack of the item with the given id.
func (r *Registry) Item(id string) (types.Item, bool) {
	i, ok := r.items[id]
	if !ok {
		return types.Item{}, false
	}
	it := r.content.Items[i]
	it.Count = 1
	return it, true
}

// LootTable returns every item that can drop from a fight: all items
// except quest items.
func (r *Registry) LootTable() []types.Item {
	var out []types.Item
	for _, it := range r.content.Items {
		if it.Effect == types.ItemQuest {
			continue
		}
		it.Count = 1
		out = append(out, it)
	}
	return out
}

// Class looks up a bot class.
func (r *Registry) Class(c types.Class) (ClassDef, bool) {
	i, ok := r.classes[c]
	if !ok {
		return ClassDef{}, false
	}
	def := r.content.Classes[i]
	def.StartingSkills = append([]string(nil), def.StartingSkills...)
	return def, true
}

// Classes returns every bot class in catalog order.
func (r *Registry) Classes() []ClassDef {
	out := make([]ClassDef, len(r.content.Classes))
	for i, c := range r.content.Classes {
		c.StartingSkills = append([]string(nil), c.StartingSkills...)
		out[i] = c
	}
	return out
}

// Spawns returns the spawn table rows eligible at a player level.
func (r *Registry) Spawns(level int) []EnemyDef {
	var out []EnemyDef
	for _, e := range r.content.Enemies {
		if level < e.MinLevel {
			continue
		}
		if e.MaxLevel > 0 && level > e.MaxLevel {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Boss returns the guardian definition.
func (r *Registry) Boss() EnemyDef { return r.content.Boss }

// Starter returns the starting bot definition.
func (r *Registry) Starter() StarterDef { return r.content.Starter }

// StarterItems returns the starting inventory.
func (r *Registry) StarterItems() []types.Item {
	return append([]types.Item(nil), r.content.StarterItems...)
}

// QuestPartID is the item granted by caches during the gather stage.
func (r *Registry) QuestPartID() string { return r.content.QuestPartID }

// OmniToolID is the item granted for defeating the guardian.
func (r *Registry) OmniToolID() string { return r.content.OmniToolID }

// Names is the pool recruited bots draw their names from.
func (r *Registry) Names() []string { return append([]string(nil), r.content.Names...) }

// Personalities is the pool of personality lines for recruits.
func (r *Registry) Personalities() []string {
	return append([]string(nil), r.content.Personalities...)
}

// Hints is what NPCs say.
func (r *Registry) Hints() []string { return append([]string(nil), r.content.Hints...) }
