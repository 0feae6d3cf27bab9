package meta

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// AnnealingConfig holds the simulated annealing schedule.
type AnnealingConfig struct {
	InitialTemp  float64
	CoolingRate  float64
	MinTemp      float64
	ItersPerTemp int
}

// DefaultAnnealingConfig returns a schedule suited to mid-sized instances.
func DefaultAnnealingConfig() AnnealingConfig {
	return AnnealingConfig{
		InitialTemp:  1000,
		CoolingRate:  0.95,
		MinTemp:      1,
		ItersPerTemp: 50,
	}
}

// Validate checks the schedule parameters.
func (c AnnealingConfig) Validate() error {
	if c.InitialTemp <= 0 {
		return &knap.ValidationError{Field: "InitialTemp", Reason: "must be positive"}
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return &knap.ValidationError{Field: "CoolingRate", Reason: "must be in (0,1)"}
	}
	if c.MinTemp <= 0 {
		return &knap.ValidationError{Field: "MinTemp", Reason: "must be positive"}
	}
	if c.ItersPerTemp <= 0 {
		return &knap.ValidationError{Field: "ItersPerTemp", Reason: "must be positive"}
	}
	return nil
}

// SimulatedAnnealing runs a temperature-controlled random walk from a
// ratio-greedy seed. Worsening feasible moves are accepted with probability
// exp(delta/temperature); infeasible neighbors are rejected outright without
// touching the acceptance rule. Returns the best feasible solution seen.
func SimulatedAnnealing(inst *knap.Instance, cfg AnnealingConfig, rng *rand.Rand) (*knap.Solution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	current := heuristics.GreedyRatio(inst, rng)
	best := current.Copy()
	temperature := cfg.InitialTemp

	totalIters := 0
	acceptedWorse := 0

	for temperature > cfg.MinTemp {
		for i := 0; i < cfg.ItersPerTemp; i++ {
			totalIters++

			neighbor := generateNeighbor(current, rng)
			if !neighbor.IsFeasible() {
				continue
			}

			delta := neighbor.Value - current.Value
			if delta > 0 {
				current = neighbor
			} else {
				// delta <= 0, so the exponent never overflows; underflow
				// to probability 0 at low temperatures is fine.
				probability := math.Exp(float64(delta) / temperature)
				if rng.Float64() < probability {
					current = neighbor
					acceptedWorse++
				}
			}

			if current.IsFeasible() && current.Value > best.Value {
				best = current.Copy()
			}
		}
		temperature *= cfg.CoolingRate
	}

	slog.Debug("Simulated annealing finished",
		"iterations", totalIters,
		"accepted_worse", acceptedWorse,
		"best_value", best.Value,
	)
	return best, nil
}

// generateNeighbor draws a random move: a single flip one time in three, a
// swap of a selected item for an unselected one otherwise. The swap falls
// back to a flip when either side is empty.
func generateNeighbor(solution *knap.Solution, rng *rand.Rand) *knap.Solution {
	neighbor := solution.Copy()

	if rng.Intn(3) == 0 {
		neighbor.Flip(rng.Intn(solution.Instance.N()))
		return neighbor
	}

	inside := neighbor.Selected()
	outside := neighbor.Unselected()
	if len(inside) == 0 || len(outside) == 0 {
		neighbor.Flip(rng.Intn(solution.Instance.N()))
		return neighbor
	}

	iOut := inside[rng.Intn(len(inside))]
	iIn := outside[rng.Intn(len(outside))]
	neighbor.Items[iOut] = 0
	neighbor.Items[iIn] = 1
	neighbor.Evaluate()
	return neighbor
}
