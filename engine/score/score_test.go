package score

import (
	"testing"

	"github.com/nathoo/scrapcore/types"
)

func TestCompute(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name  string
		stats types.PlayerStats
		won   bool
		want  int
	}{
		{"empty win", types.PlayerStats{}, true, 5000},
		{"empty loss clamps", types.PlayerStats{}, false, 0},
		{
			name: "full win",
			stats: types.PlayerStats{
				Steps:            300,
				DamageDealt:      1001,
				HealingDone:      200,
				ScrapCollected:   450,
				BotsRecruited:    2,
				BotsLost:         1,
				ModulesInstalled: 3,
				QuestsCompleted:  4,
			},
			won: true,
			// 5000 + 450 + 300 + 500.5 + 100 + 300 + 2000 - 200 - 300
			want: 8150,
		},
		{
			name:  "loss with progress",
			stats: types.PlayerStats{ScrapCollected: 2500, QuestsCompleted: 1},
			won:   false,
			want:  1000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.stats, tt.won, w); got != tt.want {
				t.Errorf("Compute = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute_StepsPenalize(t *testing.T) {
	w := DefaultWeights()
	few := Compute(types.PlayerStats{Steps: 10}, true, w)
	many := Compute(types.PlayerStats{Steps: 1000}, true, w)
	if many >= few {
		t.Errorf("more steps should score lower: %d vs %d", many, few)
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	s := types.PlayerStats{BotsLost: 50, Steps: 100000}
	if got := Compute(s, true, DefaultWeights()); got != 0 {
		t.Errorf("Compute = %d, want 0", got)
	}
}
