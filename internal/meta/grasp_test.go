package meta

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
)

func TestGRASP(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(42))

	sol, err := GRASP(inst, DefaultGRASPConfig(), rng)
	if err != nil {
		t.Fatalf("GRASP failed: %v", err)
	}

	if !sol.IsFeasible() {
		t.Fatal("Result must be feasible")
	}
	// On this instance GRASP reliably reaches the optimum
	if sol.Value != 30 {
		t.Errorf("Expected optimal value 30, got %d", sol.Value)
	}
}

func TestGRASP_AlphaZeroAtLeastGreedy(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(42))

	cfg := GRASPConfig{MaxIterations: 10, Alpha: 0}
	sol, err := GRASP(inst, cfg, rng)
	if err != nil {
		t.Fatalf("GRASP failed: %v", err)
	}

	greedy := heuristics.GreedyRatio(inst, nil)
	if sol.Value < greedy.Value {
		t.Errorf("GRASP with alpha=0 must not fall below ratio greedy: %d < %d",
			sol.Value, greedy.Value)
	}
}

func TestGRASP_Deterministic(t *testing.T) {
	inst := testInstance(t)
	cfg := GRASPConfig{MaxIterations: 20, Alpha: 0.5}

	a, err := GRASP(inst, cfg, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GRASP(inst, cfg, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}

	if a.Value != b.Value {
		t.Errorf("Same seed should reproduce the same result: %d vs %d", a.Value, b.Value)
	}
}

func TestGRASPConfig_Validate(t *testing.T) {
	if err := (GRASPConfig{MaxIterations: 0, Alpha: 0.3}).Validate(); err == nil {
		t.Error("Expected error for zero iterations")
	}
	if err := (GRASPConfig{MaxIterations: 10, Alpha: -0.1}).Validate(); err == nil {
		t.Error("Expected error for negative alpha")
	}
	if err := (GRASPConfig{MaxIterations: 10, Alpha: 1.1}).Validate(); err == nil {
		t.Error("Expected error for alpha above 1")
	}
	if err := DefaultGRASPConfig().Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}
