package opt

import (
	"sort"

	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// RelaxedConstruct builds a knapsack solution by optimizing a continuous
// relaxation: each item gets a priority in [0,1], and a position vector is
// decoded by adding items in descending priority order while they fit. The
// decode always yields a feasible solution, so the objective needs no
// penalty term; minimizing the negated value maximizes the knapsack value.
//
// This is a heavyweight constructive seed for comparison experiments, not a
// member of the hyperheuristic operator set.
func RelaxedConstruct(inst *knap.Instance, optimizer Optimizer) *knap.Solution {
	dim := inst.N()
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range upper {
		upper[i] = 1
	}

	eval := func(position []float64) float64 {
		sol := decodePosition(inst, position)
		return -float64(sol.Value)
	}

	bestPosition, _ := optimizer.Run(eval, lower, upper, dim)
	return decodePosition(inst, bestPosition)
}

// decodePosition turns a continuous priority vector into a feasible solution.
func decodePosition(inst *knap.Instance, position []float64) *knap.Solution {
	order := make([]int, inst.N())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return position[order[x]] > position[order[y]]
	})

	sol := knap.NewSolution(inst)
	for _, i := range order {
		sol.Add(i)
	}
	return sol
}
