package dea_runner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prot_norm_go/config"
	"prot_norm_go/experiment"
)

func normExperiment(t *testing.T, values [][]float64) *experiment.Experiment {
	t.Helper()
	samples := []experiment.Sample{
		{Name: "a1", Condition: "a", Replicate: "1", Label: "a.1"},
		{Name: "a2", Condition: "a", Replicate: "2", Label: "a.2"},
		{Name: "a3", Condition: "a", Replicate: "3", Label: "a.3"},
		{Name: "b1", Condition: "b", Replicate: "1", Label: "b.1"},
		{Name: "b2", Condition: "b", Replicate: "2", Label: "b.2"},
		{Name: "b3", Condition: "b", Replicate: "3", Label: "b.3"},
	}
	features := make([]experiment.Feature, len(values))
	ids := make([]string, len(values))
	for i := range values {
		ids[i] = "P" + string(rune('1'+i))
		features[i] = experiment.Feature{ID: ids[i], Gene: "G" + string(rune('1'+i))}
	}
	m := &experiment.Matrix{
		FeatureIDs:  ids,
		SampleNames: []string{"a1", "a2", "a3", "b1", "b2", "b3"},
		Values:      values,
	}
	exp, err := experiment.New("norm", m, samples, features)
	require.NoError(t, err)
	return exp
}

func TestGonumEngineTest(t *testing.T) {
	nan := math.NaN()
	exp := normExperiment(t, [][]float64{
		// Strong, consistent difference: should be significant.
		{10.0, 10.1, 9.9, 13.0, 13.1, 12.9},
		// No real difference: tested but not significant.
		{10.0, 10.05, 9.95, 10.02, 10.0, 9.98},
		// Present in only one of three replicates of group a:
		// fails the least-replicate filter, stays in the output.
		{10.0, nan, nan, 11.0, 11.1, 10.9},
	})

	contrasts := EnumerateContrasts(exp.Conditions())
	require.Equal(t, []Contrast{{A: "a", B: "b"}}, contrasts)

	thr := config.Default().DEA
	res, err := GonumEngine{}.Test(exp, contrasts, thr)
	require.NoError(t, err)
	require.Len(t, res.Stats, 3)

	t.Run("clear difference is called significant", func(t *testing.T) {
		st := res.Stats[0][0]
		assert.True(t, st.Tested)
		assert.InDelta(t, -3.0, st.Log2FC, 1e-9)
		assert.True(t, st.Significant)
		assert.LessOrEqual(t, st.FDR, thr.FDRCutoff)
	})

	t.Run("null feature is tested but not significant", func(t *testing.T) {
		st := res.Stats[1][0]
		assert.True(t, st.Tested)
		assert.False(t, st.Significant)
	})

	t.Run("under-replicated feature keeps its row with NA statistics", func(t *testing.T) {
		st := res.Stats[2][0]
		assert.False(t, st.Tested)
		assert.True(t, math.IsNaN(st.PValue))
		assert.True(t, math.IsNaN(st.FDR))
		assert.False(t, st.Significant)
		// The fold change is still reportable from the present values.
		assert.InDelta(t, -1.0, st.Log2FC, 1e-9)
		assert.Equal(t, "P3", res.Features[2].ID)
	})

	t.Run("significance tally matches", func(t *testing.T) {
		assert.Equal(t, map[string]int{"a-b": 1}, res.SignificantCount())
	})
}

func TestGonumEngineEmptyContrasts(t *testing.T) {
	exp := normExperiment(t, [][]float64{
		{10, 10, 10, 10, 10, 10},
	})
	// Pretend a single-condition design: no contrasts at all.
	res, err := GonumEngine{}.Test(exp, nil, config.Default().DEA)
	require.NoError(t, err)

	tbl := ResultsToTable(res)
	assert.Equal(t, []string{"accession", "gene_symbol"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"P1", "G1"}, tbl.Rows[0])
}

func TestResultsToTable(t *testing.T) {
	nan := math.NaN()
	exp := normExperiment(t, [][]float64{
		{10.0, 10.1, 9.9, 13.0, 13.1, 12.9},
		{10.0, nan, nan, 11.0, 11.1, 10.9},
	})
	contrasts := EnumerateContrasts(exp.Conditions())
	res, err := GonumEngine{}.Test(exp, contrasts, config.Default().DEA)
	require.NoError(t, err)

	tbl := ResultsToTable(res)
	assert.Equal(t, []string{
		"accession", "gene_symbol",
		"a-b_log2fc", "a-b_pvalue", "a-b_fdr", "a-b_significant",
	}, tbl.Columns)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "true", tbl.Rows[0][5])
	assert.Equal(t, "NA", tbl.Rows[1][3], "untested p-value renders as NA")
	assert.Equal(t, "NA", tbl.Rows[1][5], "untested call renders as NA")
}

func TestLeastRepCount(t *testing.T) {
	assert.Equal(t, 2, leastRepCount(3, 0.5), "half of three rounds up")
	assert.Equal(t, 2, leastRepCount(4, 0.5))
	assert.Equal(t, 3, leastRepCount(6, 0.5))
	assert.Equal(t, 2, leastRepCount(2, 0.5), "floor of two keeps the t-test computable")
	assert.Equal(t, 2, leastRepCount(1, 0.5))
}
