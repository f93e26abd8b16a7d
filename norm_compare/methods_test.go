package norm_compare

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prot_norm_go/experiment"
)

func rawMatrix(values [][]float64, samples ...string) *experiment.Matrix {
	ids := make([]string, len(values))
	for i := range ids {
		ids[i] = string(rune('A' + i))
	}
	return &experiment.Matrix{FeatureIDs: ids, SampleNames: samples, Values: values}
}


func TestGonumEngine(t *testing.T) {
	raw := rawMatrix([][]float64{
		{4, 8, 16},
		{16, 32, 64},
		{2, math.NaN(), 8},
	}, "a1", "a2", "b1")

	variants, err := GonumEngine{}.Normalize(raw)
	require.NoError(t, err)

	t.Run("produces every advertised method", func(t *testing.T) {
		for _, method := range (GonumEngine{}).Methods() {
			m, ok := variants[method]
			require.True(t, ok, "missing variant %s", method)
			assert.Equal(t, raw.FeatureIDs, m.FeatureIDs, "%s must not reorder rows", method)
			assert.Equal(t, raw.SampleNames, m.SampleNames, "%s must not reorder columns", method)
		}
	})

	t.Run("log2 transforms values and keeps missing cells missing", func(t *testing.T) {
		m := variants["log2"]
		assert.Equal(t, 2.0, m.Values[0][0])
		assert.Equal(t, 3.0, m.Values[0][1])
		assert.Equal(t, 6.0, m.Values[1][2])
		assert.True(t, math.IsNaN(m.Values[2][1]))
	})

	t.Run("median normalization equalizes column medians", func(t *testing.T) {
		meds := colMedians(variants["median"])
		for j := 1; j < len(meds); j++ {
			assert.InDelta(t, meds[0], meds[j], 1e-9)
		}
	})

	t.Run("quantile normalization equalizes sorted columns", func(t *testing.T) {
		// Complete 2-column matrix: after quantile normalization the
		// sorted values of both columns must be identical.
		complete := rawMatrix([][]float64{
			{2, 64},
			{8, 4},
			{32, 16},
		}, "s1", "s2")
		v, err := GonumEngine{}.Normalize(complete)
		require.NoError(t, err)
		q := v["quantile"]

		c0, c1 := q.Column(0), q.Column(1)
		sort.Float64s(c0)
		sort.Float64s(c1)
		require.Len(t, c1, len(c0))
		for i := range c0 {
			assert.InDelta(t, c0[i], c1[i], 1e-9)
		}
	})

	t.Run("global intensity removes a constant scaling factor", func(t *testing.T) {
		// Second sample is the first scaled by 2: gi must map both
		// columns onto the same values.
		scaled := rawMatrix([][]float64{
			{4, 8},
			{16, 32},
			{64, 128},
		}, "s1", "s2")
		v, err := GonumEngine{}.Normalize(scaled)
		require.NoError(t, err)
		g := v["gi"]
		for i := range g.Values {
			assert.InDelta(t, g.Values[i][0], g.Values[i][1], 1e-9)
		}
	})

	t.Run("zeros become missing, not minus infinity", func(t *testing.T) {
		withZero := rawMatrix([][]float64{{0, 4}}, "s1", "s2")
		v, err := GonumEngine{}.Normalize(withZero)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v["log2"].Values[0][0]))
	})

	t.Run("empty matrix is rejected", func(t *testing.T) {
		_, err := GonumEngine{}.Normalize(rawMatrix(nil, "s1"))
		assert.Error(t, err)
	})
}

func TestPooledGroupCV(t *testing.T) {
	groups := map[string][]int{"a": {0, 1}, "b": {2, 3}}

	t.Run("tighter replicates score lower", func(t *testing.T) {
		tight := rawMatrix([][]float64{
			{5.0, 5.01, 8.0, 8.01},
			{3.0, 3.01, 4.0, 4.01},
		}, "a1", "a2", "b1", "b2")
		loose := rawMatrix([][]float64{
			{5.0, 7.0, 8.0, 10.0},
			{3.0, 5.0, 4.0, 6.0},
		}, "a1", "a2", "b1", "b2")

		assert.Less(t, PooledGroupCV(tight, groups), PooledGroupCV(loose, groups))
	})

	t.Run("no scorable cells yields NaN", func(t *testing.T) {
		nan := math.NaN()
		empty := rawMatrix([][]float64{{nan, nan, nan, nan}}, "a1", "a2", "b1", "b2")
		assert.True(t, math.IsNaN(PooledGroupCV(empty, groups)))
	})
}

func TestMatrixToTable(t *testing.T) {
	m := rawMatrix([][]float64{{1.5, math.NaN()}}, "a1", "b1")
	features := []experiment.Feature{{ID: "P1", Gene: "G1"}}

	tbl := MatrixToTable(m, features)
	assert.Equal(t, []string{"accession", "gene_symbol", "a1", "b1"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"P1", "G1", "1.5", "NA"}, tbl.Rows[0])
}
