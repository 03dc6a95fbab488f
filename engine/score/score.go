// Package score reduces end-of-run statistics to a single number.
package score

import (
	"math"

	"github.com/nathoo/scrapcore/types"
)

// Weights are the scoring coefficients.
type Weights struct {
	WinBonus     int     `yaml:"win_bonus" json:"win_bonus"`
	LossPenalty  int     `yaml:"loss_penalty" json:"loss_penalty"`
	Scrap        float64 `yaml:"scrap" json:"scrap"`
	BotRecruited float64 `yaml:"bot_recruited" json:"bot_recruited"`
	DamageDealt  float64 `yaml:"damage_dealt" json:"damage_dealt"`
	HealingDone  float64 `yaml:"healing_done" json:"healing_done"`
	Module       float64 `yaml:"module" json:"module"`
	QuestStep    float64 `yaml:"quest_step" json:"quest_step"`
	BotLost      float64 `yaml:"bot_lost" json:"bot_lost"`
	Step         float64 `yaml:"step" json:"step"`
}

// DefaultWeights returns the standard scoring.
func DefaultWeights() Weights {
	return Weights{
		WinBonus:     5000,
		LossPenalty:  2000,
		Scrap:        1,
		BotRecruited: 150,
		DamageDealt:  0.5,
		HealingDone:  0.5,
		Module:       100,
		QuestStep:    500,
		BotLost:      200,
		Step:         1,
	}
}

// Compute scores a finished run. Penalties are given as positive weights
// and subtracted. The result is never negative.
func Compute(s types.PlayerStats, won bool, w Weights) int {
	total := float64(-w.LossPenalty)
	if won {
		total = float64(w.WinBonus)
	}
	total += w.Scrap * float64(s.ScrapCollected)
	total += w.BotRecruited * float64(s.BotsRecruited)
	total += w.DamageDealt * float64(s.DamageDealt)
	total += w.HealingDone * float64(s.HealingDone)
	total += w.Module * float64(s.ModulesInstalled)
	total += w.QuestStep * float64(s.QuestsCompleted)
	total -= w.BotLost * float64(s.BotsLost)
	total -= w.Step * float64(s.Steps)

	if total < 0 {
		return 0
	}
	return int(math.Floor(total))
}
