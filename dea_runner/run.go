// Package dea_runner resumes the pipeline after the manual method
// selection: it rebuilds the normalized experiment, enumerates every
// pairwise condition contrast, and tests each feature for differential
// abundance. The statistical engine sits behind the Engine interface
// per the same swap-friendly contract as the normalization side.
package dea_runner

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"prot_norm_go/config"
	"prot_norm_go/experiment"
)

// ContrastStat is one feature's outcome under one contrast. Tested is
// false when the feature failed the replicate-presence filter; its
// numeric fields are then NaN but the feature still appears in results.
type ContrastStat struct {
	Log2FC      float64
	PValue      float64
	FDR         float64
	Tested      bool
	Significant bool
}

// Results is the feature-by-contrast statistics table.
type Results struct {
	Contrasts []Contrast
	Features  []experiment.Feature
	// Stats[i][k] is feature i under contrast k.
	Stats [][]ContrastStat
}

// Engine runs the differential-expression tests.
type Engine interface {
	Test(exp *experiment.Experiment, contrasts []Contrast, thr config.Thresholds) (*Results, error)
}

// GonumEngine is the in-process engine: Welch t-test per feature per
// contrast on the already-normalized values (no further log transform),
// Benjamini-Hochberg FDR within each contrast.
type GonumEngine struct{}

func (GonumEngine) Test(exp *experiment.Experiment, contrasts []Contrast, thr config.Thresholds) (*Results, error) {
	norm, err := exp.Assay("norm")
	if err != nil {
		return nil, err
	}
	groups := exp.GroupIndices()

	res := &Results{
		Contrasts: contrasts,
		Features:  exp.Features,
		Stats:     make([][]ContrastStat, len(exp.Features)),
	}
	for i := range res.Stats {
		res.Stats[i] = make([]ContrastStat, len(contrasts))
	}

	for k, c := range contrasts {
		colsA, colsB := groups[c.A], groups[c.B]
		// Least replicate presence: at least this many non-missing
		// values per group, half the group's replicates rounded up.
		minA := leastRepCount(len(colsA), thr.LeastRepFraction)
		minB := leastRepCount(len(colsB), thr.LeastRepFraction)

		pvals := make([]float64, len(exp.Features))
		for i := range exp.Features {
			a := presentValues(norm, i, colsA)
			b := presentValues(norm, i, colsB)

			st := ContrastStat{Log2FC: math.NaN(), PValue: math.NaN(), FDR: math.NaN()}
			if len(a) > 0 && len(b) > 0 {
				// Values are log2, so the mean difference is the fold change.
				st.Log2FC = stat.Mean(a, nil) - stat.Mean(b, nil)
			}
			if len(a) >= minA && len(b) >= minB {
				st.PValue = welchT(a, b)
				st.Tested = !math.IsNaN(st.PValue)
			}
			pvals[i] = st.PValue
			res.Stats[i][k] = st
		}

		for i, q := range bhFDR(pvals) {
			st := &res.Stats[i][k]
			st.FDR = q
			st.Significant = st.Tested &&
				st.FDR <= thr.FDRCutoff &&
				math.Abs(st.Log2FC) >= thr.MinLog2FC
		}
	}
	return res, nil
}

// leastRepCount is ceil(fraction * groupSize), never below 2 since a
// variance needs two observations.
func leastRepCount(groupSize int, fraction float64) int {
	n := int(math.Ceil(fraction * float64(groupSize)))
	if n < 2 {
		n = 2
	}
	return n
}

func presentValues(m *experiment.Matrix, row int, cols []int) []float64 {
	var vals []float64
	for _, j := range cols {
		if v := m.Values[row][j]; !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// SignificantCount tallies significance calls per contrast, for the
// run summary.
func (r *Results) SignificantCount() map[string]int {
	counts := make(map[string]int, len(r.Contrasts))
	for k, c := range r.Contrasts {
		n := 0
		for i := range r.Stats {
			if r.Stats[i][k].Significant {
				n++
			}
		}
		counts[c.String()] = n
	}
	return counts
}
