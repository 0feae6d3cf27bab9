package heuristics

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/hyperknapsack/internal/knap"
)

func TestLocalSearch1Flip_Improves(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)
	sol.Add(4) // weight 2, value 3

	improved := LocalSearch1Flip(sol, nil)
	if improved.Value <= sol.Value {
		t.Errorf("Expected improvement over %d, got %d", sol.Value, improved.Value)
	}
	if !improved.IsFeasible() {
		t.Error("Improved solution must be feasible")
	}

	// Input must not be mutated
	if sol.Value != 3 {
		t.Errorf("Input solution was mutated, value now %d", sol.Value)
	}
}

func TestLocalSearch1Flip_NoImprovementAtOptimum(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)
	for _, i := range []int{0, 1, 2, 4, 6} { // optimal selection, weight 15
		sol.Add(i)
	}

	result := LocalSearch1Flip(sol, nil)
	if result.Value != 30 {
		t.Errorf("Expected the optimum 30 to stand, got %d", result.Value)
	}
}

func TestLocalSearch1FlipBest_MatchesFullScan(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)
	sol.Add(3)

	a := LocalSearch1Flip(sol, nil)
	b := LocalSearch1FlipBest(sol, nil)
	if a.Value != b.Value {
		t.Errorf("Both 1-flip variants scan the full neighborhood, got %d vs %d", a.Value, b.Value)
	}
}

func TestLocalSearch2Swap(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)
	// Items 3 and 5: weight 13, value 21. Swapping 3 for 0 gives weight 12, value 22.
	sol.Add(3)
	sol.Add(5)

	improved := LocalSearch2Swap(sol, nil)
	if improved.Value <= 21 {
		t.Errorf("Expected a swap improvement over 21, got %d", improved.Value)
	}
	if !improved.IsFeasible() {
		t.Error("Swapped solution must be feasible")
	}
}

func TestLocalSearch2Swap_EmptySolution(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)

	result := LocalSearch2Swap(sol, nil)
	if result.Value != 0 {
		t.Errorf("Swap on an empty solution should be a no-op, got value %d", result.Value)
	}
}

func TestRemoveWorst(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)
	sol.Add(0) // ratio 2.0
	sol.Add(3) // ratio 1.5, the worst selected

	result := RemoveWorst(sol, nil)
	if result.Items[3] != 0 {
		t.Error("Expected item 3 (worst ratio) to be removed")
	}
	if result.Items[0] != 1 {
		t.Error("Item 0 should remain selected")
	}
	if result.Value != 10 {
		t.Errorf("Expected value 10, got %d", result.Value)
	}
}

func TestRemoveWorst_EmptySolution(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)

	result := RemoveWorst(sol, nil)
	if result.Value != 0 {
		t.Errorf("RemoveWorst on empty solution should be a no-op, got %d", result.Value)
	}
}

func TestFillRemaining(t *testing.T) {
	inst := testInstance(t)
	sol := knap.NewSolution(inst)
	sol.Add(3) // weight 6, leaves capacity 9

	result := FillRemaining(sol, nil)
	if !result.IsFeasible() {
		t.Fatal("Filled solution must be feasible")
	}
	if result.Value <= sol.Value {
		t.Errorf("Expected fill to add items, value still %d", result.Value)
	}
	if result.Items[3] != 1 {
		t.Error("FillRemaining must keep the existing selection")
	}

	// Best-ratio items 1, 0 (weights 3, 5) fit into the remaining 9;
	// after that 2 (weight 4) does not, nor anything heavier, but 6 (weight 1) does.
	if result.Value != 9+7+10+2 {
		t.Errorf("Expected value 28, got %d", result.Value)
	}
}

func TestFillRemaining_FullSolution(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(3))
	sol := GreedyRatio(inst, rng)

	result := FillRemaining(sol, rng)
	if result.Value < sol.Value {
		t.Errorf("Fill must never lose value: %d -> %d", sol.Value, result.Value)
	}
}
