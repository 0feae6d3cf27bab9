package heuristics

import (
	"math/rand"
	"sort"

	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// greedyConstruct builds a solution by trying items in the order produced by
// less, keeping every item that fits. All three deterministic greedy
// constructions share this loop and differ only in their ordering.
func greedyConstruct(inst *knap.Instance, less func(a, b int) bool) *knap.Solution {
	sol := knap.NewSolution(inst)
	order := make([]int, inst.N())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return less(order[x], order[y])
	})

	for _, i := range order {
		sol.Items[i] = 1
		sol.Evaluate()
		if !sol.IsFeasible() {
			sol.Items[i] = 0
		}
	}
	sol.Evaluate()
	return sol
}

// GreedyValue picks the most valuable items first.
func GreedyValue(inst *knap.Instance, _ *rand.Rand) *knap.Solution {
	return greedyConstruct(inst, func(a, b int) bool {
		return inst.Values[a] > inst.Values[b]
	})
}

// GreedyWeight picks the lightest items first.
func GreedyWeight(inst *knap.Instance, _ *rand.Rand) *knap.Solution {
	return greedyConstruct(inst, func(a, b int) bool {
		return inst.Weights[a] < inst.Weights[b]
	})
}

// GreedyRatio picks items with the best value/weight ratio first. This is
// usually the strongest of the deterministic constructions and serves as the
// baseline seed for the metaheuristics.
func GreedyRatio(inst *knap.Instance, _ *rand.Rand) *knap.Solution {
	return greedyConstruct(inst, func(a, b int) bool {
		return inst.Ratio(a) > inst.Ratio(b)
	})
}

// GreedyRandom is the semi-greedy GRASP construction. Each step it builds a
// restricted candidate list (RCL) of the items that still fit and whose ratio
// is within alpha of the current best, then picks one uniformly at random.
// alpha=0 degenerates to a deterministic ratio-greedy choice, alpha=1 is a
// uniform choice among every item that fits.
func GreedyRandom(inst *knap.Instance, alpha float64, rng *rand.Rand) *knap.Solution {
	sol := knap.NewSolution(inst)

	candidates := make([]int, inst.N())
	for i := range candidates {
		candidates[i] = i
	}

	for len(candidates) > 0 {
		viable := candidates[:0:0]
		for _, i := range candidates {
			if inst.Weights[i] <= sol.RemainingCapacity() {
				viable = append(viable, i)
			}
		}
		if len(viable) == 0 {
			break
		}

		maxRatio := inst.Ratio(viable[0])
		minRatio := maxRatio
		for _, i := range viable[1:] {
			r := inst.Ratio(i)
			if r > maxRatio {
				maxRatio = r
			}
			if r < minRatio {
				minRatio = r
			}
		}
		threshold := maxRatio - alpha*(maxRatio-minRatio)

		rcl := viable[:0:0]
		for _, i := range viable {
			if inst.Ratio(i) >= threshold {
				rcl = append(rcl, i)
			}
		}

		chosen := rcl[rng.Intn(len(rcl))]
		sol.Add(chosen)

		for idx, i := range candidates {
			if i == chosen {
				candidates = append(candidates[:idx], candidates[idx+1:]...)
				break
			}
		}
	}

	sol.Evaluate()
	return sol
}
