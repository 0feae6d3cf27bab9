package hyper

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// Adaptive combines epsilon-greedy selection over Q-values with stagnation
// detection. Unlike the other policies it only moves to a candidate that is
// at least as good as the working solution; a run of non-improving
// iterations triggers a reseed from a random feasible solution.
type Adaptive struct {
	engine
	epsilon         float64
	epsilonDecay    float64
	minEpsilon      float64
	learningRate    float64
	stagnationLimit int
}

// NewAdaptive builds the adaptive policy. Canonical parameters: epsilon 0.4,
// decay 0.995 with floor 0.05, learning rate 0.15, stagnation limit 20.
// Q-values start at 1.0 so untried operators remain attractive early on.
func NewAdaptive(operators []heuristics.Operator, epsilon, decay, learningRate float64, stagnationLimit int, rng *rand.Rand) *Adaptive {
	return &Adaptive{
		engine:          newEngine(operators, 1.0, rng),
		epsilon:         epsilon,
		epsilonDecay:    decay,
		minEpsilon:      0.05,
		learningRate:    learningRate,
		stagnationLimit: stagnationLimit,
	}
}

// Epsilon returns the current exploration rate.
func (a *Adaptive) Epsilon() float64 {
	return a.epsilon
}

func (a *Adaptive) selectOperator() heuristics.Operator {
	if a.rng.Float64() < a.epsilon {
		return a.operators[a.rng.Intn(len(a.operators))]
	}
	best := a.operators[0]
	for _, op := range a.operators[1:] {
		if a.stats[op.Name].QValue > a.stats[best.Name].QValue {
			best = op
		}
	}
	return best
}

// updateLearning applies the adaptive reward scheme against the pre-move
// solution value.
func (a *Adaptive) updateLearning(name string, improvement, oldValue int) {
	var reward float64
	switch {
	case improvement > 0:
		reward = 1.0 + float64(improvement)/float64(max(oldValue, 1))*5
	case improvement == 0:
		reward = 0.1
	default:
		reward = -0.3
	}

	st := a.stats[name]
	st.QValue += a.learningRate * (reward - st.QValue)
}

// Solve starts from the best of the three deterministic greedy constructions
// and runs the adaptive loop. Acceptance requires improvement >= 0 (ties
// move, regressions do not); the stagnation counter resets only on strict
// improvement, and hitting the limit replaces the working solution with a
// filled random restart. Epsilon decays once per iteration regardless of
// candidate feasibility.
func (a *Adaptive) Solve(inst *knap.Instance, iterations int) (*knap.Solution, error) {
	if err := validateIterations(iterations); err != nil {
		return nil, err
	}

	best := heuristics.GreedyValue(inst, a.rng)
	for _, construct := range []func(*knap.Instance, *rand.Rand) *knap.Solution{
		heuristics.GreedyWeight, heuristics.GreedyRatio,
	} {
		if sol := construct(inst, a.rng); sol.Value > best.Value {
			best = sol
		}
	}

	current := best.Copy()
	stagnation := 0

	for i := 0; i < iterations; i++ {
		op := a.selectOperator()
		oldValue := current.Value

		candidate := op.Apply(inst, current, a.rng)
		if candidate.IsFeasible() {
			improvement := candidate.Value - oldValue

			a.updateLearning(op.Name, improvement, oldValue)
			a.recordOutcome(op.Name, oldValue, candidate.Value)

			if improvement >= 0 {
				current = candidate
				if improvement > 0 {
					stagnation = 0
				} else {
					stagnation++
				}

				if current.Value > best.Value {
					best = current.Copy()
					slog.Debug("Adaptive improved",
						"iteration", i, "operator", op.Name, "best_value", best.Value)
				}
			} else {
				stagnation++
			}

			if stagnation >= a.stagnationLimit {
				current = knap.RandomSolution(inst, a.rng)
				current = heuristics.FillRemaining(current, a.rng)
				stagnation = 0
				slog.Debug("Adaptive reseeded after stagnation", "iteration", i)
			}
		}

		a.epsilon *= a.epsilonDecay
		if a.epsilon < a.minEpsilon {
			a.epsilon = a.minEpsilon
		}
	}
	return best, nil
}
