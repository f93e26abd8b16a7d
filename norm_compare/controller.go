package norm_compare

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"prot_norm_go/config"
	"prot_norm_go/experiment"
	"prot_norm_go/run_state"
)

// Compare runs stage 5: hand the raw experiment to the engine, write
// one TSV per method plus the PDF comparison report, and park the run
// state at the manual selection gate.
func Compare(cfg config.Pipeline, eng Engine, exp *experiment.Experiment) (*run_state.State, error) {
	raw, err := exp.Assay("raw")
	if err != nil {
		return nil, err
	}

	dir := cfg.NormResultsDir()
	if _, statErr := os.Stat(dir); statErr == nil {
		// Reuse is accepted; stale files from an earlier run are the
		// operator's to clean.
		fmt.Printf("Output directory %s already exists, reusing it\n", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	variants, err := eng.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalization engine: %w", err)
	}

	groups := exp.GroupIndices()
	methodFiles := make(map[string]string, len(variants))
	cv := make(map[string]float64, len(variants))
	for _, method := range eng.Methods() {
		m := variants[method]
		out := filepath.Join(dir, method+"_normalized.tsv")
		if err := MatrixToTable(m, exp.Features).WriteTSV(out); err != nil {
			return nil, err
		}
		methodFiles[method] = out
		cv[method] = PooledGroupCV(m, groups)
	}

	report := cfg.ComparisonReportPath()
	if err := WriteComparisonPDF(report, eng.Methods(), variants, exp.Samples, cv); err != nil {
		return nil, err
	}

	state := &run_state.State{
		Stage:            run_state.StageAwaitingSelection,
		RawExperiment:    cfg.RawExperimentPath(),
		NormalizationDir: dir,
		Methods:          methodFiles,
		ComparisonReport: report,
	}
	if err := state.Save(cfg.StatePath()); err != nil {
		return nil, err
	}
	return state, nil
}

func Run(args []string) {

	fs := flag.NewFlagSet("norm_compare", flag.ExitOnError)

	cfgFile := fs.String("config", "", "Optional YAML pipeline configuration")
	outDir := fs.String("out_dir", "", "Directory holding pipeline outputs")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if len(fs.Args()) > 0 {
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args())
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	exp, err := experiment.Load(cfg.RawExperimentPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load raw experiment (run matrix_builder first):", err)
		os.Exit(1)
	}

	state, err := Compare(cfg, GonumEngine{}, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Normalization comparison failed:", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d normalized variants to %s\n", len(state.Methods), state.NormalizationDir)
	fmt.Printf("Wrote comparison report: %s\n", state.ComparisonReport)
	fmt.Println("Inspect the report, then resume with: prot_norm dea_runner -method <name>")
}
