package dea_runner

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prot_norm_go/experiment"
)

func rawTwoByTwo(t *testing.T) *experiment.Experiment {
	t.Helper()
	m := &experiment.Matrix{
		FeatureIDs:  []string{"P1", "P2"},
		SampleNames: []string{"a1", "b1"},
		Values:      [][]float64{{100, 200}, {300, 400}},
	}
	samples := []experiment.Sample{
		{Name: "a1", Condition: "a", Replicate: "1", Label: "a.1"},
		{Name: "b1", Condition: "b", Replicate: "1", Label: "b.1"},
	}
	features := []experiment.Feature{{ID: "P1", Gene: "G1"}, {ID: "P2", Gene: "G2"}}
	exp, err := experiment.New("raw", m, samples, features)
	require.NoError(t, err)
	return exp
}

func writeNormTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "median_normalized.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadNormalized(t *testing.T) {
	raw := rawTwoByTwo(t)

	t.Run("rebuilds the norm assay around the raw metadata", func(t *testing.T) {
		path := writeNormTSV(t, "accession\tgene_symbol\ta1\tb1\nP1\tG1\t6.64\tNA\nP2\tG2\t8.23\t8.64\n")

		exp, err := LoadNormalized(path, raw)
		require.NoError(t, err)
		assert.Equal(t, raw.Samples, exp.Samples)
		assert.Equal(t, raw.Features, exp.Features)

		norm, err := exp.Assay("norm")
		require.NoError(t, err)
		assert.Equal(t, 6.64, norm.Values[0][0])
		assert.True(t, math.IsNaN(norm.Values[0][1]))
		assert.Equal(t, 8.64, norm.Values[1][1])
	})

	t.Run("rejects a reordered feature list", func(t *testing.T) {
		path := writeNormTSV(t, "accession\tgene_symbol\ta1\tb1\nP2\tG2\t1\t2\nP1\tG1\t3\t4\n")
		_, err := LoadNormalized(path, raw)
		assert.ErrorContains(t, err, "raw experiment says")
	})

	t.Run("rejects a missing sample column", func(t *testing.T) {
		path := writeNormTSV(t, "accession\tgene_symbol\ta1\nP1\tG1\t1\nP2\tG2\t2\n")
		_, err := LoadNormalized(path, raw)
		assert.ErrorContains(t, err, "missing sample columns: b1")
	})

	t.Run("rejects a non-numeric cell", func(t *testing.T) {
		path := writeNormTSV(t, "accession\tgene_symbol\ta1\tb1\nP1\tG1\tbroken\t2\nP2\tG2\t3\t4\n")
		_, err := LoadNormalized(path, raw)
		assert.ErrorContains(t, err, "not numeric")
	})
}
