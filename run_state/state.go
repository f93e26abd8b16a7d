// Package run_state persists the pipeline's progress between tool
// invocations. The normalization comparison ends at a deliberate manual
// gate: a human inspects the comparison report and picks one method, so
// the run must survive on disk until dea_runner resumes it.
package run_state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Pipeline stages, in order.
const (
	StageRawBuilt          = "raw_built"
	StageAwaitingSelection = "awaiting_selection"
	StageDEAComplete       = "dea_complete"
)

// State records where a run stands and which artifacts it produced.
type State struct {
	Stage         string `json:"stage"`
	RawExperiment string `json:"raw_experiment"`

	// Filled by norm_compare.
	NormalizationDir string            `json:"normalization_dir,omitempty"`
	Methods          map[string]string `json:"methods,omitempty"`
	ComparisonReport string            `json:"comparison_report,omitempty"`

	// Filled by dea_runner on resume.
	ChosenMethod   string `json:"chosen_method,omitempty"`
	NormExperiment string `json:"normalized_experiment,omitempty"`
	DEAResults     string `json:"dea_results,omitempty"`
	DEAReport      string `json:"dea_report,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Save writes the state file, creating the directory if needed.
func (s *State) Save(path string) error {
	s.UpdatedAt = time.Now().UTC()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a state file written by Save.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run state: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse run state %s: %w", path, err)
	}
	return &s, nil
}

// MethodFile resolves a chosen normalization method to its output file,
// failing with the list of available methods when the choice is unknown.
func (s *State) MethodFile(method string) (string, error) {
	path, ok := s.Methods[method]
	if !ok {
		names := make([]string, 0, len(s.Methods))
		for m := range s.Methods {
			names = append(names, m)
		}
		return "", fmt.Errorf("no normalization output for method %q (have %v)", method, names)
	}
	return path, nil
}
