// Package experiment holds the annotated abundance matrix: sample
// metadata, feature metadata, and one or more named assays whose rows
// and columns are pinned to the metadata order. It is the unit every
// pipeline stage exchanges and persists.
package experiment

import (
	"encoding/json"
	"fmt"
	"math"
)

// Sample is one row of the design table after schema normalization,
// plus the synthesized display label.
type Sample struct {
	Name      string `json:"sample"`
	Condition string `json:"condition"`
	Replicate string `json:"replicate"`
	// Label is condition.replicate, used in plots and reports.
	Label string `json:"label"`
}

// Feature maps one abundance row to its identifier and annotation.
type Feature struct {
	ID   string `json:"accession"`
	Gene string `json:"gene_symbol"`
}

// Matrix is a dense feature-by-sample abundance matrix. Values[i][j] is
// feature i in sample j; missing measurements are NaN. FeatureIDs and
// SampleNames pin the order and must never be reindexed after
// construction.
type Matrix struct {
	FeatureIDs  []string
	SampleNames []string
	Values      [][]float64
}

// matrixJSON is the wire form: JSON has no NaN, so missing values are
// encoded as null.
type matrixJSON struct {
	FeatureIDs  []string     `json:"features"`
	SampleNames []string     `json:"samples"`
	Values      [][]*float64 `json:"values"`
}

func (m *Matrix) MarshalJSON() ([]byte, error) {
	wire := matrixJSON{FeatureIDs: m.FeatureIDs, SampleNames: m.SampleNames}
	wire.Values = make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		out := make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				v := row[j]
				out[j] = &v
			}
		}
		wire.Values[i] = out
	}
	return json.Marshal(wire)
}

func (m *Matrix) UnmarshalJSON(data []byte) error {
	var wire matrixJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.FeatureIDs = wire.FeatureIDs
	m.SampleNames = wire.SampleNames
	m.Values = make([][]float64, len(wire.Values))
	for i, row := range wire.Values {
		out := make([]float64, len(row))
		for j, p := range row {
			if p == nil {
				out[j] = math.NaN()
			} else {
				out[j] = *p
			}
		}
		m.Values[i] = out
	}
	return nil
}

// Column returns one sample's values in feature order.
func (m *Matrix) Column(j int) []float64 {
	col := make([]float64, len(m.Values))
	for i := range m.Values {
		col[i] = m.Values[i][j]
	}
	return col
}

// Experiment bundles named assays with the sample and feature metadata
// they are aligned to. Construct once, never mutate.
type Experiment struct {
	Assays   map[string]*Matrix `json:"assays"`
	Samples  []Sample           `json:"sample_metadata"`
	Features []Feature          `json:"feature_metadata"`
}

// New builds an Experiment after checking the assay dimensions against
// the metadata. An assay whose shape or order disagrees with the
// metadata is a construction bug, not a runtime condition to tolerate.
func New(assayName string, m *Matrix, samples []Sample, features []Feature) (*Experiment, error) {
	if len(m.Values) != len(features) {
		return nil, fmt.Errorf("assay %q has %d rows but feature metadata has %d", assayName, len(m.Values), len(features))
	}
	if len(m.SampleNames) != len(samples) {
		return nil, fmt.Errorf("assay %q has %d columns but sample metadata has %d", assayName, len(m.SampleNames), len(samples))
	}
	for j, s := range samples {
		if m.SampleNames[j] != s.Name {
			return nil, fmt.Errorf("assay %q column %d is %q, sample metadata says %q", assayName, j, m.SampleNames[j], s.Name)
		}
	}
	for i, f := range features {
		if m.FeatureIDs[i] != f.ID {
			return nil, fmt.Errorf("assay %q row %d is %q, feature metadata says %q", assayName, i, m.FeatureIDs[i], f.ID)
		}
	}
	return &Experiment{
		Assays:   map[string]*Matrix{assayName: m},
		Samples:  samples,
		Features: features,
	}, nil
}

// Assay returns a named assay or an error naming what is available.
func (e *Experiment) Assay(name string) (*Matrix, error) {
	m, ok := e.Assays[name]
	if !ok {
		names := make([]string, 0, len(e.Assays))
		for n := range e.Assays {
			names = append(names, n)
		}
		return nil, fmt.Errorf("no assay %q in experiment (have %v)", name, names)
	}
	return m, nil
}

// Conditions returns the distinct condition labels in first-appearance
// order. Contrast enumeration depends on this order being stable.
func (e *Experiment) Conditions() []string {
	seen := make(map[string]bool)
	var order []string
	for _, s := range e.Samples {
		if !seen[s.Condition] {
			seen[s.Condition] = true
			order = append(order, s.Condition)
		}
	}
	return order
}

// GroupIndices maps each condition label to the column indices of its
// replicates, in sample order.
func (e *Experiment) GroupIndices() map[string][]int {
	groups := make(map[string][]int)
	for j, s := range e.Samples {
		groups[s.Condition] = append(groups[s.Condition], j)
	}
	return groups
}
