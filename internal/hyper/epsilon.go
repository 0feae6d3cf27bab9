package hyper

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// EpsilonGreedy explores a random operator with probability epsilon and
// otherwise exploits the highest-scoring one. Epsilon decays every iteration
// down to a floor, shifting from exploration to exploitation over the run.
type EpsilonGreedy struct {
	engine
	epsilon      float64
	epsilonDecay float64
	minEpsilon   float64
}

// NewEpsilonGreedy builds an epsilon-greedy policy. The canonical parameters
// are epsilon 0.3, decay 0.99, floor 0.05.
func NewEpsilonGreedy(operators []heuristics.Operator, epsilon, decay, minEpsilon float64, rng *rand.Rand) *EpsilonGreedy {
	return &EpsilonGreedy{
		engine:       newEngine(operators, 0, rng),
		epsilon:      epsilon,
		epsilonDecay: decay,
		minEpsilon:   minEpsilon,
	}
}

// Epsilon returns the current exploration rate.
func (e *EpsilonGreedy) Epsilon() float64 {
	return e.epsilon
}

func (e *EpsilonGreedy) selectOperator() heuristics.Operator {
	if e.rng.Float64() < e.epsilon {
		return e.operators[e.rng.Intn(len(e.operators))]
	}
	best := e.operators[0]
	for _, op := range e.operators[1:] {
		if e.stats[op.Name].Score > e.stats[best.Name].Score {
			best = op
		}
	}
	return best
}

func (e *EpsilonGreedy) decayEpsilon() {
	e.epsilon *= e.epsilonDecay
	if e.epsilon < e.minEpsilon {
		e.epsilon = e.minEpsilon
	}
}

// Solve runs the selection loop from a ratio-greedy seed. Like the roulette
// policy it accepts every feasible candidate; epsilon decays once per
// iteration whether or not the candidate was feasible.
func (e *EpsilonGreedy) Solve(inst *knap.Instance, iterations int) (*knap.Solution, error) {
	if err := validateIterations(iterations); err != nil {
		return nil, err
	}

	current := heuristics.GreedyRatio(inst, e.rng)
	best := current.Copy()

	for i := 0; i < iterations; i++ {
		op := e.selectOperator()
		oldValue := current.Value

		candidate := op.Apply(inst, current, e.rng)
		if candidate.IsFeasible() {
			e.recordOutcome(op.Name, oldValue, candidate.Value)
			current = candidate

			if current.Value > best.Value {
				best = current.Copy()
				slog.Debug("Epsilon-greedy improved",
					"iteration", i, "operator", op.Name, "best_value", best.Value, "epsilon", e.epsilon)
			}
		}

		e.decayEpsilon()
	}
	return best, nil
}
