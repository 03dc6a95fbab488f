package state

import "github.com/nathoo/scrapcore/types"

// Clone deep-copies a player so a command can work on a private copy and
// commit it only when it completes.
func Clone(p types.Player) types.Player {
	out := p
	out.Team = cloneBots(p.Team)
	out.Reserves = cloneBots(p.Reserves)
	out.Inventory = append([]types.Item{}, p.Inventory...)
	out.Visited = make(map[string]bool, len(p.Visited))
	for k, v := range p.Visited {
		out.Visited[k] = v
	}
	out.Stats.SkillUsage = make(map[string]int, len(p.Stats.SkillUsage))
	for k, v := range p.Stats.SkillUsage {
		out.Stats.SkillUsage[k] = v
	}
	return out
}

// CloneBot deep-copies a bot.
func CloneBot(b types.Bot) types.Bot {
	out := b
	out.Modules = append([]types.Module{}, b.Modules...)
	out.ActiveSkills = append([]string{}, b.ActiveSkills...)
	out.StoredSkills = append([]string{}, b.StoredSkills...)
	return out
}

func cloneBots(bots []types.Bot) []types.Bot {
	out := make([]types.Bot, len(bots))
	for i, b := range bots {
		out[i] = CloneBot(b)
	}
	return out
}
