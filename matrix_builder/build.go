package matrix_builder

import (
	"fmt"

	"prot_norm_go/config"
	"prot_norm_go/experiment"
	"prot_norm_go/run_state"
	"prot_norm_go/table"
)

// Build runs stages 1-4: locate the two input files, normalize their
// schemas, assemble the raw experiment, persist it, and record the run
// state. Returns the experiment so callers can report on it.
func Build(cfg config.Pipeline) (*experiment.Experiment, error) {
	quantPath, err := LocateInput(cfg.InputDir, cfg.QuantPattern)
	if err != nil {
		return nil, fmt.Errorf("quantification table: %w", err)
	}
	designPath, err := LocateInput(cfg.InputDir, cfg.DesignPattern)
	if err != nil {
		return nil, fmt.Errorf("design table: %w", err)
	}

	quant, err := table.ReadDelim(quantPath)
	if err != nil {
		return nil, err
	}
	design, err := table.ReadDelim(designPath)
	if err != nil {
		return nil, err
	}

	// One naming convention everywhere. The design table's cells are
	// snake-cased too: its sample names must line up with the
	// snake-cased quantification column names.
	quant.SnakeColumns()
	design.SnakeColumns()
	design.SnakeCells()

	exp, err := experiment.Assemble(design, quant, cfg.QuantIDColumn, cfg.QuantGeneColumn)
	if err != nil {
		return nil, err
	}

	if err := experiment.Save(exp, cfg.RawExperimentPath()); err != nil {
		return nil, err
	}

	state := &run_state.State{
		Stage:         run_state.StageRawBuilt,
		RawExperiment: cfg.RawExperimentPath(),
	}
	if err := state.Save(cfg.StatePath()); err != nil {
		return nil, err
	}
	return exp, nil
}
