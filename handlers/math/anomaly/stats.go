package anomaly

import (
	"math"
	"sort"
	"time"
)

// intervals returns the consecutive gaps between sorted timestamps.
func intervals(times []time.Time) []time.Duration {
	if len(times) < 2 {
		return nil
	}
	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	out := make([]time.Duration, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		out = append(out, sorted[i].Sub(sorted[i-1]))
	}
	return out
}

// meanSeconds returns the mean of durations in seconds.
func meanSeconds(ds []time.Duration) float64 {
	if len(ds) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range ds {
		sum += d.Seconds()
	}
	return sum / float64(len(ds))
}

// stdDevSeconds returns the population standard deviation in seconds.
func stdDevSeconds(ds []time.Duration, mean float64) float64 {
	if len(ds) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, d := range ds {
		diff := d.Seconds() - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(ds)))
}

// coefficientOfVariation is stdDev/mean; machine-driven actions cluster
// near zero, human activity rarely drops below ~0.5.
func coefficientOfVariation(ds []time.Duration) (cv, mean float64) {
	mean = meanSeconds(ds)
	if mean == 0 {
		return 0, 0
	}
	return stdDevSeconds(ds, mean) / mean, mean
}
