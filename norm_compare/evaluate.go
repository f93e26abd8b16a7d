package norm_compare

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"prot_norm_go/experiment"
)

// PooledGroupCV scores one normalized matrix: the mean percent
// coefficient of variation across all (feature, condition) cells with at
// least two present replicates, computed on the back-transformed
// intensity scale. Lower means the method removed more technical
// variation within replicate groups.
func PooledGroupCV(m *experiment.Matrix, groups map[string][]int) float64 {
	var cvs []float64
	for _, cols := range groups {
		if len(cols) < 2 {
			continue
		}
		for i := range m.Values {
			var vals []float64
			for _, j := range cols {
				if v := m.Values[i][j]; !math.IsNaN(v) {
					vals = append(vals, math.Exp2(v))
				}
			}
			if len(vals) < 2 {
				continue
			}
			mean := stat.Mean(vals, nil)
			if mean == 0 {
				continue
			}
			cvs = append(cvs, stat.StdDev(vals, nil)/math.Abs(mean)*100)
		}
	}
	if len(cvs) == 0 {
		return math.NaN()
	}
	return stat.Mean(cvs, nil)
}
