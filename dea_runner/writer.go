package dea_runner

import (
	"math"
	"strconv"

	"prot_norm_go/table"
)

// ResultsToTable flattens the feature-by-contrast statistics into a
// writable table: feature metadata first, then four columns per
// contrast. Untested cells are NA across the board so they cannot be
// mistaken for tiny effect sizes.
func ResultsToTable(r *Results) *table.Table {
	cols := []string{"accession", "gene_symbol"}
	for _, c := range r.Contrasts {
		name := c.String()
		cols = append(cols,
			name+"_log2fc",
			name+"_pvalue",
			name+"_fdr",
			name+"_significant",
		)
	}

	t := &table.Table{Columns: cols}
	for i, f := range r.Features {
		row := make([]string, 0, len(cols))
		row = append(row, f.ID, f.Gene)
		for k := range r.Contrasts {
			st := r.Stats[i][k]
			row = append(row, formatStat(st.Log2FC), formatStat(st.PValue), formatStat(st.FDR), formatCall(st))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatCall(st ContrastStat) string {
	if !st.Tested {
		return "NA"
	}
	return strconv.FormatBool(st.Significant)
}
