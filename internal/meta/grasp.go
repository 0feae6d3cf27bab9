package meta

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// GRASPConfig parameterizes the greedy randomized adaptive search procedure.
type GRASPConfig struct {
	MaxIterations int
	// Alpha controls the restricted candidate list: 0 is deterministic
	// greedy, 1 is uniform among items that fit.
	Alpha float64
}

// DefaultGRASPConfig returns the usual 100-iteration, alpha 0.3 setup.
func DefaultGRASPConfig() GRASPConfig {
	return GRASPConfig{MaxIterations: 100, Alpha: 0.3}
}

// Validate checks the GRASP parameters.
func (c GRASPConfig) Validate() error {
	if c.MaxIterations <= 0 {
		return &knap.ValidationError{Field: "MaxIterations", Reason: "must be positive"}
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return &knap.ValidationError{Field: "Alpha", Reason: "must be in [0,1]"}
	}
	return nil
}

// GRASP repeatedly builds a semi-greedy solution and polishes it with a fixed
// local-search chain (1-flip, 2-swap, capacity fill), keeping the best result
// across iterations.
func GRASP(inst *knap.Instance, cfg GRASPConfig, rng *rand.Rand) (*knap.Solution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var best *knap.Solution
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		solution := heuristics.GreedyRandom(inst, cfg.Alpha, rng)
		solution = heuristics.LocalSearch1FlipBest(solution, rng)
		solution = heuristics.LocalSearch2Swap(solution, rng)
		solution = heuristics.FillRemaining(solution, rng)

		if best == nil || solution.Value > best.Value {
			best = solution.Copy()
			slog.Debug("GRASP improved", "iteration", iter, "best_value", best.Value)
		}
	}
	return best, nil
}
