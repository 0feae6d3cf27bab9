package meta

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// HillClimbConfig parameterizes hill climbing with random restarts.
type HillClimbConfig struct {
	NumRestarts   int
	MaxIterPerRun int
}

// DefaultHillClimbConfig returns the usual 10-restart setup.
func DefaultHillClimbConfig() HillClimbConfig {
	return HillClimbConfig{NumRestarts: 10, MaxIterPerRun: 100}
}

// Validate checks the restart parameters.
func (c HillClimbConfig) Validate() error {
	if c.NumRestarts <= 0 {
		return &knap.ValidationError{Field: "NumRestarts", Reason: "must be positive"}
	}
	if c.MaxIterPerRun <= 0 {
		return &knap.ValidationError{Field: "MaxIterPerRun", Reason: "must be positive"}
	}
	return nil
}

// HillClimb ascends from the given start by repeatedly taking the best 1-flip
// neighbor, stopping at the first non-improving round or after maxIterations.
func HillClimb(initial *knap.Solution, maxIterations int, rng *rand.Rand) *knap.Solution {
	current := initial.Copy()
	for iter := 0; iter < maxIterations; iter++ {
		neighbor := heuristics.LocalSearch1FlipBest(current, rng)
		if neighbor.Value <= current.Value {
			break
		}
		current = neighbor
	}
	return current
}

// HillClimbRestart runs HillClimb from several random feasible starts and
// returns the best local optimum found.
func HillClimbRestart(inst *knap.Instance, cfg HillClimbConfig, rng *rand.Rand) (*knap.Solution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var best *knap.Solution
	for restart := 0; restart < cfg.NumRestarts; restart++ {
		initial := knap.RandomSolution(inst, rng)
		result := HillClimb(initial, cfg.MaxIterPerRun, rng)
		if best == nil || result.Value > best.Value {
			best = result
			slog.Debug("Hill climbing improved", "restart", restart, "best_value", best.Value)
		}
	}
	return best, nil
}
