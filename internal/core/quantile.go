package core

import (
	"math"
	"slices"
)

// OutlierMultiplier scales the IQR to place the Tukey fences.
const OutlierMultiplier = 1.5

// Quantile returns the p-quantile (0 <= p <= 1) of sorted using linear
// interpolation between closest ranks: h = (n-1)p, then
// x[floor(h)] + (h-floor(h)) * (x[floor(h)+1] - x[floor(h)]).
// sorted must be in ascending order. An empty slice returns NaN.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Fence holds the quartiles and Tukey bounds of a distribution.
type Fence struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// Outside reports whether v lies strictly beyond either bound.
func (f Fence) Outside(v float64) bool {
	return v < f.Lower || v > f.Upper
}

// TukeyFence computes the quartiles and [Q1-1.5*IQR, Q3+1.5*IQR] bounds of
// values. The input is not modified. ok is false when values is empty.
func TukeyFence(values []float64) (fence Fence, ok bool) {
	if len(values) == 0 {
		return Fence{}, false
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1

	return Fence{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - OutlierMultiplier*iqr,
		Upper: q3 + OutlierMultiplier*iqr,
	}, true
}
