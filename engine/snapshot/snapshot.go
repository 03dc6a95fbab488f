// Package snapshot renders the observable game state as JSON for drivers,
// tracing and tests. The world itself is never serialized: it is rebuilt
// from the pod position and the visited keys.
package snapshot

import (
	"encoding/json"

	"github.com/nathoo/scrapcore/types"
)

// Snapshot is the observable state of a run.
type Snapshot struct {
	Version     string           `json:"version"`
	Seed        int64            `json:"seed"`
	Mode        types.Mode       `json:"mode"`
	QuestStage  types.QuestStage `json:"quest_stage"`
	Player      types.Player     `json:"player"`
	Enemy       *types.Enemy     `json:"enemy"`
	Pod         types.Position   `json:"pod"`
	Guardian    types.Position   `json:"guardian"`
	Interaction string           `json:"interaction,omitempty"`
	Log         []types.LogEntry `json:"log"`
	Locked      bool             `json:"input_locked"`
	Score       int              `json:"score"`
	Won         bool             `json:"won"`
}

// Encode serializes a snapshot to indented JSON.
func Encode(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
