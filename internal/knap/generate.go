package knap

import (
	"fmt"
	"math/rand"
)

// GenerateRandom creates an instance with weights and values drawn uniformly
// from [1,100] and capacity set to capacityRatio of the total weight.
func GenerateRandom(n int, capacityRatio float64, rng *rand.Rand) (*Instance, error) {
	if n <= 0 {
		return nil, &ValidationError{Field: "N", Reason: "must be positive"}
	}
	weights := make([]int, n)
	values := make([]int, n)
	totalWeight := 0
	for i := 0; i < n; i++ {
		weights[i] = rng.Intn(100) + 1
		values[i] = rng.Intn(100) + 1
		totalWeight += weights[i]
	}

	capacity := int(float64(totalWeight) * capacityRatio)
	if capacity < 1 {
		capacity = 1
	}

	inst, err := NewInstance(capacity, weights, values)
	if err != nil {
		return nil, err
	}
	inst.Name = fmt.Sprintf("random_n%d", n)
	return inst, nil
}

// GenerateCorrelated creates an instance whose values track the weights with
// small noise (value = weight ± 10, floored at 1). Correlated instances have
// near-uniform ratios and are harder for ratio-driven heuristics.
func GenerateCorrelated(n int, capacityRatio float64, rng *rand.Rand) (*Instance, error) {
	if n <= 0 {
		return nil, &ValidationError{Field: "N", Reason: "must be positive"}
	}
	weights := make([]int, n)
	values := make([]int, n)
	totalWeight := 0
	for i := 0; i < n; i++ {
		weights[i] = rng.Intn(100) + 1
		v := weights[i] + rng.Intn(21) - 10
		if v < 1 {
			v = 1
		}
		values[i] = v
		totalWeight += weights[i]
	}

	capacity := int(float64(totalWeight) * capacityRatio)
	if capacity < 1 {
		capacity = 1
	}

	inst, err := NewInstance(capacity, weights, values)
	if err != nil {
		return nil, err
	}
	inst.Name = fmt.Sprintf("correlated_n%d", n)
	return inst, nil
}
