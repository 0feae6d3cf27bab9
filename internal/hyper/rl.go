package hyper

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// ReinforcementLearning keeps a Q-value estimate per operator, selects via a
// softmax over Q/temperature, and anneals the temperature so selection grows
// greedier over the run. The roulette-style score is maintained in parallel
// so the exported statistics stay comparable across policies.
type ReinforcementLearning struct {
	engine
	learningRate   float64
	discountFactor float64
	temperature    float64
}

// NewReinforcementLearning builds the softmax/Q-value policy. Canonical
// parameters: learning rate 0.1, discount 0.9.
func NewReinforcementLearning(operators []heuristics.Operator, learningRate, discountFactor float64, rng *rand.Rand) *ReinforcementLearning {
	return &ReinforcementLearning{
		engine:         newEngine(operators, 0, rng),
		learningRate:   learningRate,
		discountFactor: discountFactor,
		temperature:    1.0,
	}
}

// selectSoftmax picks an operator with probability proportional to
// exp(Q/temperature). The exponent is capped to avoid overflow once Q-values
// grow large at low temperatures.
func (r *ReinforcementLearning) selectSoftmax() heuristics.Operator {
	weights := make([]float64, len(r.operators))
	total := 0.0
	for i, op := range r.operators {
		exponent := r.stats[op.Name].QValue / r.temperature
		if exponent > 50 {
			exponent = 50
		}
		weights[i] = math.Exp(exponent)
		total += weights[i]
	}

	draw := r.rng.Float64() * total
	accumulated := 0.0
	for i, op := range r.operators {
		accumulated += weights[i]
		if accumulated >= draw {
			return op
		}
	}
	return r.operators[len(r.operators)-1]
}

func (r *ReinforcementLearning) updateQ(name string, reward float64) {
	st := r.stats[name]
	st.QValue += r.learningRate * (reward - st.QValue)
}

// Solve runs the selection loop from a ratio-greedy seed, accepting every
// feasible candidate. The temperature decays by 0.99 per iteration with a
// floor of 0.1, regardless of candidate feasibility.
func (r *ReinforcementLearning) Solve(inst *knap.Instance, iterations int) (*knap.Solution, error) {
	if err := validateIterations(iterations); err != nil {
		return nil, err
	}

	current := heuristics.GreedyRatio(inst, r.rng)
	best := current.Copy()

	for i := 0; i < iterations; i++ {
		op := r.selectSoftmax()
		oldValue := current.Value

		candidate := op.Apply(inst, current, r.rng)
		if candidate.IsFeasible() {
			improvement := candidate.Value - oldValue

			var reward float64
			switch {
			case improvement > 0:
				reward = 1.0 + float64(improvement)/float64(max(oldValue, 1))
			case improvement == 0:
				reward = 0.0
			default:
				reward = -0.5
			}

			r.updateQ(op.Name, reward)
			r.recordOutcome(op.Name, oldValue, candidate.Value)
			current = candidate

			if current.Value > best.Value {
				best = current.Copy()
				slog.Debug("RL improved", "iteration", i, "operator", op.Name, "best_value", best.Value)
			}
		}

		r.temperature *= 0.99
		if r.temperature < 0.1 {
			r.temperature = 0.1
		}
	}
	return best, nil
}
