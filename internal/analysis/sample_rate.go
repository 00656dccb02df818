package analysis

import (
	"fmt"
	"math"
	"sort"
)

// EstimateSampleRate returns 1/median(dt) over the finite, strictly positive
// successive differences of times. Duplicate or backwards timestamps are
// ignored, so a minority of irregular intervals does not move the estimate.
func EstimateSampleRate(times []float64) (float64, error) {
	deltas := positiveDeltas(times)
	if len(deltas) == 0 {
		return 0, fmt.Errorf("%w: %d samples, no positive interval", ErrInvalidTime, len(times))
	}
	return 1 / median(deltas), nil
}

func positiveDeltas(times []float64) []float64 {
	if len(times) < 2 {
		return nil
	}
	out := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// median sorts x in place. For even lengths it averages the two middle values.
func median(x []float64) float64 {
	sort.Float64s(x)
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}
	return (x[n/2-1] + x[n/2]) / 2
}
