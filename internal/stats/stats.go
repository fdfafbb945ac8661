// Package stats turns fetched lists into the numbers the console charts.
//
// Every function here is pure and never fails: missing fields count as zero
// and records that cannot be placed in a bucket are skipped.
package stats

import (
	"math"
	"sort"
)

// sumSorted adds the values in ascending order so the result does not
// depend on the order the records arrived in.
func sumSorted(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	var total float64
	for _, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
	}
	return total
}

// PercentOf returns part as a percentage of whole, or 0 when whole is not positive.
func PercentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// ClampPercent limits p to the [0, 100] range a progress bar can draw.
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
