package meta

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// testInstance builds the reference instance with known optimal value 30.
func testInstance(t *testing.T) *knap.Instance {
	t.Helper()
	inst, err := knap.NewInstance(15, []int{5, 3, 4, 6, 2, 7, 1}, []int{10, 7, 8, 9, 3, 12, 2})
	if err != nil {
		t.Fatalf("Failed to build test instance: %v", err)
	}
	return inst
}

func TestSimulatedAnnealing(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(42))

	sol, err := SimulatedAnnealing(inst, DefaultAnnealingConfig(), rng)
	if err != nil {
		t.Fatalf("SimulatedAnnealing failed: %v", err)
	}

	if !sol.IsFeasible() {
		t.Fatal("Result must be feasible")
	}

	// Never worse than its own greedy seed
	seed := heuristics.GreedyRatio(inst, nil)
	if sol.Value < seed.Value {
		t.Errorf("Result %d worse than the greedy seed %d", sol.Value, seed.Value)
	}
}

func TestSimulatedAnnealing_ImmediateTermination(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(42))

	// InitialTemp equal to MinTemp skips the loop entirely and returns the
	// constructed seed.
	cfg := AnnealingConfig{InitialTemp: 1, CoolingRate: 0.95, MinTemp: 1, ItersPerTemp: 50}
	sol, err := SimulatedAnnealing(inst, cfg, rng)
	if err != nil {
		t.Fatalf("SimulatedAnnealing failed: %v", err)
	}

	seed := heuristics.GreedyRatio(inst, nil)
	if sol.Value != seed.Value {
		t.Errorf("Expected the untouched greedy seed value %d, got %d", seed.Value, sol.Value)
	}
}

func TestSimulatedAnnealing_Deterministic(t *testing.T) {
	inst := testInstance(t)

	a, err := SimulatedAnnealing(inst, DefaultAnnealingConfig(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SimulatedAnnealing(inst, DefaultAnnealingConfig(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}

	if a.Value != b.Value {
		t.Errorf("Same seed should reproduce the same result: %d vs %d", a.Value, b.Value)
	}
}

func TestAnnealingConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  AnnealingConfig
	}{
		{"zero initial temp", AnnealingConfig{InitialTemp: 0, CoolingRate: 0.9, MinTemp: 1, ItersPerTemp: 10}},
		{"cooling rate 1", AnnealingConfig{InitialTemp: 100, CoolingRate: 1, MinTemp: 1, ItersPerTemp: 10}},
		{"cooling rate 0", AnnealingConfig{InitialTemp: 100, CoolingRate: 0, MinTemp: 1, ItersPerTemp: 10}},
		{"zero min temp", AnnealingConfig{InitialTemp: 100, CoolingRate: 0.9, MinTemp: 0, ItersPerTemp: 10}},
		{"zero iters", AnnealingConfig{InitialTemp: 100, CoolingRate: 0.9, MinTemp: 1, ItersPerTemp: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}

	if err := DefaultAnnealingConfig().Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestGenerateNeighbor_SingleMove(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(3))

	sol := heuristics.GreedyRatio(inst, rng)
	for i := 0; i < 100; i++ {
		neighbor := generateNeighbor(sol, rng)

		diff := 0
		for j := range sol.Items {
			if sol.Items[j] != neighbor.Items[j] {
				diff++
			}
		}
		if diff != 1 && diff != 2 {
			t.Fatalf("Neighbor should differ by a flip or a swap, differs in %d positions", diff)
		}
	}
}
