package heuristics

import (
	"math/rand"
	"sort"

	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// LocalSearch1Flip scans the 1-flip neighborhood (toggle a single item) and
// returns the best feasible improving neighbor, or a copy of the input when
// none improves. First- and best-improvement coincide here because the whole
// neighborhood is scanned and the best candidate kept.
func LocalSearch1Flip(solution *knap.Solution, _ *rand.Rand) *knap.Solution {
	best := solution.Copy()
	for i := 0; i < solution.Instance.N(); i++ {
		candidate := solution.Copy()
		candidate.Flip(i)
		if candidate.IsFeasible() && candidate.Value > best.Value {
			best = candidate
		}
	}
	return best
}

// LocalSearch1FlipBest is the explicit best-improvement variant of the 1-flip
// search, kept as a separately named operator so selection policies can learn
// distinct statistics for it.
func LocalSearch1FlipBest(solution *knap.Solution, _ *rand.Rand) *knap.Solution {
	best := solution.Copy()
	for i := 0; i < solution.Instance.N(); i++ {
		candidate := solution.Copy()
		candidate.Flip(i)
		if candidate.IsFeasible() && candidate.Value > best.Value {
			best = candidate
		}
	}
	return best
}

// LocalSearch2Swap tries every exchange of one selected item for one
// unselected item and returns the best feasible improvement. The wider
// neighborhood escapes local optima that 1-flip cannot.
func LocalSearch2Swap(solution *knap.Solution, _ *rand.Rand) *knap.Solution {
	best := solution.Copy()
	inside := solution.Selected()
	outside := solution.Unselected()

	for _, iOut := range inside {
		for _, iIn := range outside {
			candidate := solution.Copy()
			candidate.Items[iOut] = 0
			candidate.Items[iIn] = 1
			candidate.Evaluate()
			if candidate.IsFeasible() && candidate.Value > best.Value {
				best = candidate
			}
		}
	}
	return best
}

// RemoveWorst drops the selected item with the worst value/weight ratio.
// This always lowers the immediate value; it only pays off inside a strategy
// that later refills the freed capacity.
func RemoveWorst(solution *knap.Solution, _ *rand.Rand) *knap.Solution {
	inside := solution.Selected()
	if len(inside) == 0 {
		return solution.Copy()
	}

	worst := inside[0]
	for _, i := range inside[1:] {
		if solution.Instance.Ratio(i) < solution.Instance.Ratio(worst) {
			worst = i
		}
	}

	result := solution.Copy()
	result.Remove(worst)
	return result
}

// FillRemaining adds unselected items in descending ratio order while they
// fit, exploiting any slack capacity the current selection leaves.
func FillRemaining(solution *knap.Solution, _ *rand.Rand) *knap.Solution {
	result := solution.Copy()
	outside := result.Unselected()
	sort.SliceStable(outside, func(x, y int) bool {
		return result.Instance.Ratio(outside[x]) > result.Instance.Ratio(outside[y])
	})

	for _, i := range outside {
		result.Add(i)
	}
	return result
}
