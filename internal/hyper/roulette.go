package hyper

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// Roulette selects operators with probability proportional to their scores,
// which grow multiplicatively on improvement and shrink toward the floor on
// failure.
type Roulette struct {
	engine
}

// NewRoulette builds a roulette-wheel policy over the given operator set.
func NewRoulette(operators []heuristics.Operator, rng *rand.Rand) *Roulette {
	return &Roulette{engine: newEngine(operators, 0, rng)}
}

// Solve runs the selection loop for the given iteration budget, starting from
// a ratio-greedy construction. Any feasible candidate replaces the working
// solution, improving or not; that random-walk acceptance is the policy's
// exploration mechanism.
func (r *Roulette) Solve(inst *knap.Instance, iterations int) (*knap.Solution, error) {
	if err := validateIterations(iterations); err != nil {
		return nil, err
	}

	current := heuristics.GreedyRatio(inst, r.rng)
	best := current.Copy()

	for i := 0; i < iterations; i++ {
		op := r.selectRoulette()
		oldValue := current.Value

		candidate := op.Apply(inst, current, r.rng)
		if !candidate.IsFeasible() {
			continue
		}

		r.recordOutcome(op.Name, oldValue, candidate.Value)
		current = candidate

		if current.Value > best.Value {
			best = current.Copy()
			slog.Debug("Roulette improved", "iteration", i, "operator", op.Name, "best_value", best.Value)
		}
	}
	return best, nil
}
