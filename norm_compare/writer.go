package norm_compare

import (
	"math"
	"strconv"

	"prot_norm_go/experiment"
	"prot_norm_go/table"
)

// MatrixToTable flattens a normalized matrix into a writable table:
// feature metadata columns first, then one column per sample. Row and
// column order follow the matrix exactly.
func MatrixToTable(m *experiment.Matrix, features []experiment.Feature) *table.Table {
	cols := append([]string{"accession", "gene_symbol"}, m.SampleNames...)
	t := &table.Table{Columns: cols}
	for i, row := range m.Values {
		rec := make([]string, 0, len(cols))
		rec = append(rec, features[i].ID, features[i].Gene)
		for _, v := range row {
			rec = append(rec, formatAbundance(v))
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

// formatAbundance writes full float64 precision so reloading the TSV
// reproduces the matrix bit-for-bit; missing values are NA.
func formatAbundance(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
