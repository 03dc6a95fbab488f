// Package dialogue picks what NPCs say.
package dialogue

import (
	"github.com/nathoo/scrapcore/engine/rng"
	"github.com/nathoo/scrapcore/types"
)

const fallbackHint = "..."

// Hint picks one hint line at random.
func Hint(hints []string, r *rng.RNG) string {
	if len(hints) == 0 {
		return fallbackHint
	}
	return hints[r.Intn(len(hints))]
}

// Greeting prefixes an NPC line with who speaks it.
func Greeting(speaker, line string) string {
	if speaker == "" {
		speaker = "Stranded Bot"
	}
	return speaker + ": \"" + line + "\""
}

// StageHint returns a nudge toward the current quest objective, or "" once
// the quest is done.
func StageHint(q types.QuestState) string {
	switch q.Stage {
	case types.FindPod:
		return "Find the escape pod. It crashed somewhere out in the yard."
	case types.GatherParts:
		if q.PartsFound >= q.PartsNeeded {
			return "You have enough parts. Head back to the pod."
		}
		return "Search caches for hyperdrive parts. The far ones are richer."
	case types.DefeatGuardian:
		return "The Warden guards the pod. Take it down."
	case types.RepairPod:
		return "Bring the Omni-Tool to the pod."
	}
	return ""
}
