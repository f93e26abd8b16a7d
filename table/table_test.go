package table

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDelim(t *testing.T) {
	t.Run("sniffs tab-delimited txt", func(t *testing.T) {
		path := writeFile(t, "proteins.txt", "Accession\tGene Symbol\tA1\nP001\tGENE1\t100.5\n")

		tbl, err := ReadDelim(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Accession", "Gene Symbol", "A1"}, tbl.Columns)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, []string{"P001", "GENE1", "100.5"}, tbl.Rows[0])
	})

	t.Run("sniffs comma-delimited csv", func(t *testing.T) {
		path := writeFile(t, "sample_table.csv", "sample,condition,replicate\nA1,A,1\nB1,B,1\n")

		tbl, err := ReadDelim(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"sample", "condition", "replicate"}, tbl.Columns)
		assert.Len(t, tbl.Rows, 2)
	})

	t.Run("preserves row and column order", func(t *testing.T) {
		path := writeFile(t, "t.txt", "c\tb\ta\n3\t2\t1\n6\t5\t4\n")

		tbl, err := ReadDelim(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, tbl.Columns)
		assert.Equal(t, []string{"3", "2", "1"}, tbl.Rows[0])
		assert.Equal(t, []string{"6", "5", "4"}, tbl.Rows[1])
	})

	t.Run("reads gzip input transparently", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "t.txt.gz")
		f, err := os.Create(path)
		require.NoError(t, err)
		gw := gzip.NewWriter(f)
		_, err = gw.Write([]byte("a\tb\n1\t2\n"))
		require.NoError(t, err)
		require.NoError(t, gw.Close())
		require.NoError(t, f.Close())

		tbl, err := ReadDelim(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, tbl.Columns)
		assert.Equal(t, [][]string{{"1", "2"}}, tbl.Rows)
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := ReadDelim(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}

func TestColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"accession", "a1"},
		Rows:    [][]string{{"P1", "10"}, {"P2", "20"}},
	}

	vals, err := tbl.Column("a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20"}, vals)

	_, err = tbl.Column("missing")
	assert.ErrorContains(t, err, `column "missing" not found`)
}

func TestWriteTSVRoundTrip(t *testing.T) {
	tbl := &Table{
		Columns: []string{"accession", "gene_symbol", "a1"},
		Rows:    [][]string{{"P1", "G1", "1.25"}, {"P2", "", "NA"}},
	}
	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, tbl.WriteTSV(path))

	back, err := ReadDelim(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, back.Columns)
	assert.Equal(t, tbl.Rows, back.Rows)
}
