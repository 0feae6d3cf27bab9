package experiment

import (
	"math"
	"sort"
)

// Summary aggregates the runs of one algorithm on one instance.
type Summary struct {
	Algorithm  string   `json:"algorithm"`
	Instance   string   `json:"instance"`
	Runs       int      `json:"runs"`
	BestValue  int      `json:"bestValue"`
	MeanValue  float64  `json:"meanValue"`
	StdValue   float64  `json:"stdValue"`
	MeanTimeMS float64  `json:"meanTimeMs"`
	StdTimeMS  float64  `json:"stdTimeMs"`
	MeanGap    *float64 `json:"meanGap,omitempty"`
}

// Summarize groups results by (algorithm, instance) and computes mean and
// sample standard deviation of value and execution time, plus the mean gap
// where known optima are available. Output ordering is deterministic.
func Summarize(results []Result) []Summary {
	type key struct{ algorithm, instance string }
	groups := make(map[key][]Result)
	var order []key
	for _, res := range results {
		k := key{res.Algorithm, res.Instance}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], res)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].algorithm != order[j].algorithm {
			return order[i].algorithm < order[j].algorithm
		}
		return order[i].instance < order[j].instance
	})

	summaries := make([]Summary, 0, len(order))
	for _, k := range order {
		group := groups[k]
		s := Summary{
			Algorithm: k.algorithm,
			Instance:  k.instance,
			Runs:      len(group),
		}

		values := make([]float64, len(group))
		times := make([]float64, len(group))
		var gaps []float64
		for i, res := range group {
			values[i] = float64(res.Value)
			times[i] = res.ExecutionMS
			if res.Value > s.BestValue {
				s.BestValue = res.Value
			}
			if res.GapPercent != nil {
				gaps = append(gaps, *res.GapPercent)
			}
		}

		s.MeanValue, s.StdValue = meanStd(values)
		s.MeanTimeMS, s.StdTimeMS = meanStd(times)
		if len(gaps) > 0 {
			meanGap, _ := meanStd(gaps)
			s.MeanGap = &meanGap
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// meanStd returns the mean and sample standard deviation.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)
	return mean, math.Sqrt(variance)
}
