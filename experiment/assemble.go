package experiment

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"prot_norm_go/table"
)

// Canonical design-table column names after schema normalization.
// "group" is accepted as an alias for "condition" since sample sheets
// in the wild use either.
const (
	designSampleCol    = "sample"
	designConditionCol = "condition"
	designGroupAlias   = "group"
	designReplicateCol = "replicate"
)

// Assemble turns the schema-normalized design and quantification tables
// into a raw Experiment: sample metadata in design order, feature
// metadata in quantification order, and an abundance matrix aligned to
// both. Every validation here is deliberate: the original workflow let
// mismatches surface as low-level selection failures deep inside the
// statistics engine.
func Assemble(design, quant *table.Table, idCol, geneCol string) (*Experiment, error) {
	samples, err := buildSampleMeta(design)
	if err != nil {
		return nil, err
	}
	features, err := buildFeatureMeta(quant, idCol, geneCol)
	if err != nil {
		return nil, err
	}
	m, err := buildMatrix(quant, samples, idCol)
	if err != nil {
		return nil, err
	}
	return New("raw", m, samples, features)
}

func buildSampleMeta(design *table.Table) ([]Sample, error) {
	sampleIdx := design.ColumnIndex(designSampleCol)
	if sampleIdx < 0 {
		return nil, fmt.Errorf("design table has no %q column (have: %s)", designSampleCol, strings.Join(design.Columns, ", "))
	}
	condIdx := design.ColumnIndex(designConditionCol)
	if condIdx < 0 {
		condIdx = design.ColumnIndex(designGroupAlias)
	}
	if condIdx < 0 {
		return nil, fmt.Errorf("design table has no %q or %q column (have: %s)", designConditionCol, designGroupAlias, strings.Join(design.Columns, ", "))
	}
	repIdx := design.ColumnIndex(designReplicateCol)
	if repIdx < 0 {
		return nil, fmt.Errorf("design table has no %q column (have: %s)", designReplicateCol, strings.Join(design.Columns, ", "))
	}

	seen := make(map[string]bool)
	samples := make([]Sample, 0, len(design.Rows))
	for _, row := range design.Rows {
		s := Sample{
			Name:      row[sampleIdx],
			Condition: row[condIdx],
			Replicate: row[repIdx],
		}
		if s.Name == "" {
			return nil, fmt.Errorf("design table contains a row with an empty sample name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate sample %q in design table", s.Name)
		}
		seen[s.Name] = true
		s.Label = s.Condition + "." + s.Replicate
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("design table has no sample rows")
	}
	return samples, nil
}

func buildFeatureMeta(quant *table.Table, idCol, geneCol string) ([]Feature, error) {
	ids, err := quant.Column(idCol)
	if err != nil {
		return nil, fmt.Errorf("quantification table: %w", err)
	}
	// Gene annotation is optional; exports from some search engines
	// leave it out entirely.
	var genes []string
	if quant.ColumnIndex(geneCol) >= 0 {
		genes, _ = quant.Column(geneCol)
	}

	features := make([]Feature, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("quantification table row %d has an empty %s", i+2, idCol)
		}
		features[i] = Feature{ID: id}
		if genes != nil {
			features[i].Gene = genes[i]
		}
	}
	return features, nil
}

func buildMatrix(quant *table.Table, samples []Sample, idCol string) (*Matrix, error) {
	// Every design sample must exist as a quantification column. Collect
	// all misses so the operator fixes the sheet in one pass.
	var missing []string
	colIdx := make([]int, len(samples))
	for j, s := range samples {
		idx := quant.ColumnIndex(s.Name)
		if idx < 0 {
			missing = append(missing, s.Name)
		}
		colIdx[j] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("design samples missing from quantification columns: %s", strings.Join(missing, ", "))
	}

	ids, err := quant.Column(idCol)
	if err != nil {
		return nil, err
	}

	m := &Matrix{
		FeatureIDs:  ids,
		SampleNames: make([]string, len(samples)),
		Values:      make([][]float64, len(quant.Rows)),
	}
	for j, s := range samples {
		m.SampleNames[j] = s.Name
	}
	for i, row := range quant.Rows {
		vals := make([]float64, len(samples))
		for j, idx := range colIdx {
			v, err := parseAbundance(row[idx])
			if err != nil {
				return nil, fmt.Errorf("quantification row %d (%s), sample %s: %w", i+2, ids[i], samples[j].Name, err)
			}
			vals[j] = v
		}
		m.Values[i] = vals
	}
	return m, nil
}

// parseAbundance converts one cell to a float64. Empty cells and the
// usual missing-value spellings become NaN; anything else non-numeric
// is a hard error rather than a silent missing value.
func parseAbundance(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not numeric", cell)
	}
	return v, nil
}
