package dea_runner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"prot_norm_go/experiment"
	"prot_norm_go/table"
)

// LoadNormalized reads one normalization method's TSV back and rebuilds
// an experiment with assay "norm" around the raw experiment's sample
// and feature metadata. The TSV must carry the same features in the
// same order and a column per sample; anything else means the file was
// edited or belongs to a different run.
func LoadNormalized(path string, raw *experiment.Experiment) (*experiment.Experiment, error) {
	t, err := table.ReadDelim(path)
	if err != nil {
		return nil, err
	}

	ids, err := t.Column("accession")
	if err != nil {
		return nil, fmt.Errorf("normalized table %s: %w", path, err)
	}
	if len(ids) != len(raw.Features) {
		return nil, fmt.Errorf("normalized table %s has %d features, raw experiment has %d", path, len(ids), len(raw.Features))
	}
	for i, f := range raw.Features {
		if ids[i] != f.ID {
			return nil, fmt.Errorf("normalized table %s row %d is %q, raw experiment says %q", path, i+2, ids[i], f.ID)
		}
	}

	var missing []string
	colIdx := make([]int, len(raw.Samples))
	for j, s := range raw.Samples {
		idx := t.ColumnIndex(s.Name)
		if idx < 0 {
			missing = append(missing, s.Name)
		}
		colIdx[j] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("normalized table %s is missing sample columns: %s", path, strings.Join(missing, ", "))
	}

	m := &experiment.Matrix{
		FeatureIDs:  ids,
		SampleNames: make([]string, len(raw.Samples)),
		Values:      make([][]float64, len(t.Rows)),
	}
	for j, s := range raw.Samples {
		m.SampleNames[j] = s.Name
	}
	for i, row := range t.Rows {
		vals := make([]float64, len(raw.Samples))
		for j, idx := range colIdx {
			cell := strings.TrimSpace(row[idx])
			if cell == "" || strings.EqualFold(cell, "na") || strings.EqualFold(cell, "nan") {
				vals[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("normalized table %s row %d, sample %s: value %q is not numeric", path, i+2, raw.Samples[j].Name, cell)
			}
			vals[j] = v
		}
		m.Values[i] = vals
	}

	return experiment.New("norm", m, raw.Samples, raw.Features)
}
