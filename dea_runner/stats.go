package dea_runner

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// welchT runs Welch's unequal-variance two-sample t-test and returns
// the two-sided p-value. Needs at least two observations per group and
// nonzero pooled variance; anything else is untestable and returns NaN.
func welchT(a, b []float64) float64 {
	if len(a) < 2 || len(b) < 2 {
		return math.NaN()
	}
	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	na, nb := float64(len(a)), float64(len(b))
	se2 := varA/na + varB/nb
	if se2 == 0 {
		if meanA == meanB {
			return 1
		}
		return math.NaN()
	}

	t := (meanA - meanB) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom.
	df := se2 * se2 / ((varA*varA)/(na*na*(na-1)) + (varB*varB)/(nb*nb*(nb-1)))
	if df <= 0 || math.IsNaN(df) {
		return math.NaN()
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// bhFDR applies Benjamini-Hochberg correction to one contrast's
// p-values. NaN entries (untested features) stay NaN and do not count
// toward the number of tests.
func bhFDR(pvalues []float64) []float64 {
	type indexed struct {
		idx int
		p   float64
	}
	var tested []indexed
	for i, p := range pvalues {
		if !math.IsNaN(p) {
			tested = append(tested, indexed{i, p})
		}
	}

	out := make([]float64, len(pvalues))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(tested) == 0 {
		return out
	}

	sort.Slice(tested, func(a, b int) bool { return tested[a].p < tested[b].p })

	n := float64(len(tested))
	// Walk from the largest p-value down, keeping the running minimum so
	// the corrected values are monotone.
	minSoFar := 1.0
	for r := len(tested) - 1; r >= 0; r-- {
		q := tested[r].p * n / float64(r+1)
		if q < minSoFar {
			minSoFar = q
		}
		out[tested[r].idx] = minSoFar
	}
	return out
}
