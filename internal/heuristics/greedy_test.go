package heuristics

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// testInstance builds the reference instance used across the heuristic tests.
// Optimal value is 30 (items 0, 1, 2, 4, 6 weigh exactly 15).
func testInstance(t *testing.T) *knap.Instance {
	t.Helper()
	inst, err := knap.NewInstance(15, []int{5, 3, 4, 6, 2, 7, 1}, []int{10, 7, 8, 9, 3, 12, 2})
	if err != nil {
		t.Fatalf("Failed to build test instance: %v", err)
	}
	return inst
}

func TestGreedyValue(t *testing.T) {
	inst := testInstance(t)
	sol := GreedyValue(inst, nil)

	if !sol.IsFeasible() {
		t.Fatal("Greedy solution must be feasible")
	}
	// Picks items 5, 0, 1 (values 12, 10, 7) before running out of capacity
	if sol.Value != 29 {
		t.Errorf("Expected value 29, got %d", sol.Value)
	}
}

func TestGreedyWeight(t *testing.T) {
	inst := testInstance(t)
	sol := GreedyWeight(inst, nil)

	if !sol.IsFeasible() {
		t.Fatal("Greedy solution must be feasible")
	}
	// Lightest-first happens to find the optimum here
	if sol.Value != 30 {
		t.Errorf("Expected value 30, got %d", sol.Value)
	}
}

func TestGreedyRatio(t *testing.T) {
	inst := testInstance(t)
	sol := GreedyRatio(inst, nil)

	if !sol.IsFeasible() {
		t.Fatal("Greedy solution must be feasible")
	}
	if sol.Value != 30 {
		t.Errorf("Expected value 30, got %d", sol.Value)
	}
	if sol.Weight != 15 {
		t.Errorf("Expected weight 15, got %d", sol.Weight)
	}
}

func TestGreedyRandom_AlphaZeroMatchesRatioGreedy(t *testing.T) {
	inst := testInstance(t)
	ratioValue := GreedyRatio(inst, nil).Value

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		sol := GreedyRandom(inst, 0, rng)
		if !sol.IsFeasible() {
			t.Fatalf("Seed %d: solution infeasible", seed)
		}
		if sol.Value != ratioValue {
			t.Errorf("Seed %d: alpha=0 should match ratio greedy value %d, got %d",
				seed, ratioValue, sol.Value)
		}
	}
}

func TestGreedyRandom_AlwaysFeasible(t *testing.T) {
	inst := testInstance(t)

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		sol := GreedyRandom(inst, 1.0, rng)
		if !sol.IsFeasible() {
			t.Fatalf("Seed %d: solution infeasible with weight %d", seed, sol.Weight)
		}
		if sol.Value == 0 {
			t.Errorf("Seed %d: expected a non-empty construction", seed)
		}
	}
}

func TestGreedyRandom_Deterministic(t *testing.T) {
	inst := testInstance(t)

	a := GreedyRandom(inst, 0.5, rand.New(rand.NewSource(9)))
	b := GreedyRandom(inst, 0.5, rand.New(rand.NewSource(9)))

	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			t.Fatal("Same seed should produce the same construction")
		}
	}
}

func TestGreedy_AllItemsTooHeavy(t *testing.T) {
	inst, err := knap.NewInstance(5, []int{10, 20, 30}, []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	for name, construct := range map[string]func(*knap.Instance, *rand.Rand) *knap.Solution{
		"greedy_value":  GreedyValue,
		"greedy_weight": GreedyWeight,
		"greedy_ratio":  GreedyRatio,
	} {
		sol := construct(inst, nil)
		if sol.Value != 0 || len(sol.Selected()) != 0 {
			t.Errorf("%s: expected an empty solution, got %v", name, sol)
		}
		if !sol.IsFeasible() {
			t.Errorf("%s: empty solution must be feasible", name)
		}
	}

	rng := rand.New(rand.NewSource(1))
	sol := GreedyRandom(inst, 0.3, rng)
	if sol.Value != 0 || len(sol.Selected()) != 0 {
		t.Errorf("greedy_random: expected an empty solution, got %v", sol)
	}
}
