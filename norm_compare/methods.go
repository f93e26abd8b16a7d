// Package norm_compare computes several normalization variants of the
// raw abundance matrix and writes them out together with a comparison
// report, so a human can judge which variant to carry into differential
// expression. The numeric engine sits behind the Engine interface and
// can be swapped without touching the orchestration.
package norm_compare

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"prot_norm_go/experiment"
)

// Engine turns one raw matrix into named normalized variants. All
// variants are on log2 scale and keep the raw matrix's row and column
// order; missing values stay missing.
type Engine interface {
	Methods() []string
	Normalize(raw *experiment.Matrix) (map[string]*experiment.Matrix, error)
}

// GonumEngine is the in-process engine.
type GonumEngine struct{}

// Methods lists the variants in report order.
func (GonumEngine) Methods() []string {
	return []string{"log2", "median", "mean", "quantile", "gi"}
}

func (g GonumEngine) Normalize(raw *experiment.Matrix) (map[string]*experiment.Matrix, error) {
	if len(raw.Values) == 0 {
		return nil, fmt.Errorf("cannot normalize an empty matrix")
	}
	logm := log2Matrix(raw)

	out := map[string]*experiment.Matrix{
		"log2":     logm,
		"median":   centerColumns(logm, colMedians(logm)),
		"mean":     centerColumns(logm, colMeans(logm)),
		"quantile": quantileNormalize(logm),
		"gi":       globalIntensity(raw, logm),
	}
	return out, nil
}

// newShaped returns an all-NaN matrix with the same axes as m.
func newShaped(m *experiment.Matrix) *experiment.Matrix {
	vals := make([][]float64, len(m.Values))
	for i := range vals {
		row := make([]float64, len(m.SampleNames))
		for j := range row {
			row[j] = math.NaN()
		}
		vals[i] = row
	}
	return &experiment.Matrix{
		FeatureIDs:  m.FeatureIDs,
		SampleNames: m.SampleNames,
		Values:      vals,
	}
}

// log2Matrix log-transforms every positive value. Zeros and negatives
// cannot carry abundance information and become missing.
func log2Matrix(m *experiment.Matrix) *experiment.Matrix {
	out := newShaped(m)
	for i, row := range m.Values {
		for j, v := range row {
			if !math.IsNaN(v) && v > 0 {
				out.Values[i][j] = math.Log2(v)
			}
		}
	}
	return out
}

// validColumn gathers a column's non-missing values in row order.
func validColumn(m *experiment.Matrix, j int) []float64 {
	var vals []float64
	for i := range m.Values {
		if v := m.Values[i][j]; !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

func colMedians(m *experiment.Matrix) []float64 {
	meds := make([]float64, len(m.SampleNames))
	for j := range meds {
		vals := validColumn(m, j)
		if len(vals) == 0 {
			meds[j] = math.NaN()
			continue
		}
		sort.Float64s(vals)
		meds[j] = stat.Quantile(0.5, stat.LinInterp, vals, nil)
	}
	return meds
}

func colMeans(m *experiment.Matrix) []float64 {
	means := make([]float64, len(m.SampleNames))
	for j := range means {
		vals := validColumn(m, j)
		if len(vals) == 0 {
			means[j] = math.NaN()
			continue
		}
		means[j] = stat.Mean(vals, nil)
	}
	return means
}

// centerColumns subtracts each column's location estimate and adds the
// grand mean of the estimates back, so samples share a common center
// without shifting the overall intensity scale.
func centerColumns(m *experiment.Matrix, centers []float64) *experiment.Matrix {
	grand := stat.Mean(finite(centers), nil)
	out := newShaped(m)
	for i, row := range m.Values {
		for j, v := range row {
			if !math.IsNaN(v) && !math.IsNaN(centers[j]) {
				out.Values[i][j] = v - centers[j] + grand
			}
		}
	}
	return out
}

// globalIntensity scales each sample by its total raw intensity, the
// classic total-ion-current correction, expressed on log2 scale.
func globalIntensity(raw, logm *experiment.Matrix) *experiment.Matrix {
	logSums := make([]float64, len(raw.SampleNames))
	for j := range logSums {
		sum := 0.0
		for i := range raw.Values {
			if v := raw.Values[i][j]; !math.IsNaN(v) && v > 0 {
				sum += v
			}
		}
		if sum > 0 {
			logSums[j] = math.Log2(sum)
		} else {
			logSums[j] = math.NaN()
		}
	}
	return centerColumns(logm, logSums)
}

// quantileNormalize forces every sample onto a shared reference
// distribution: the mean quantile across samples. With complete data
// this makes the sorted values of all columns identical. Columns with
// missing values are mapped through their own rank fractions, the usual
// interpolating variant.
func quantileNormalize(m *experiment.Matrix) *experiment.Matrix {
	nCols := len(m.SampleNames)
	sortedCols := make([][]float64, nCols)
	maxValid := 0
	for j := 0; j < nCols; j++ {
		vals := validColumn(m, j)
		sort.Float64s(vals)
		sortedCols[j] = vals
		if len(vals) > maxValid {
			maxValid = len(vals)
		}
	}
	if maxValid == 0 {
		return newShaped(m)
	}

	// Reference distribution: mean across columns of each quantile.
	ref := make([]float64, maxValid)
	for k := 0; k < maxValid; k++ {
		p := 0.0
		if maxValid > 1 {
			p = float64(k) / float64(maxValid-1)
		}
		sum, n := 0.0, 0
		for j := 0; j < nCols; j++ {
			if len(sortedCols[j]) == 0 {
				continue
			}
			sum += stat.Quantile(p, stat.LinInterp, sortedCols[j], nil)
			n++
		}
		ref[k] = sum / float64(n)
	}

	out := newShaped(m)
	for j := 0; j < nCols; j++ {
		// Rank the column's valid entries by value.
		type cell struct {
			row int
			v   float64
		}
		var cells []cell
		for i := range m.Values {
			if v := m.Values[i][j]; !math.IsNaN(v) {
				cells = append(cells, cell{i, v})
			}
		}
		sort.Slice(cells, func(a, b int) bool { return cells[a].v < cells[b].v })
		n := len(cells)
		for r, c := range cells {
			p := 0.0
			if n > 1 {
				p = float64(r) / float64(n-1)
			}
			out.Values[c.row][j] = stat.Quantile(p, stat.LinInterp, ref, nil)
		}
	}
	return out
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
