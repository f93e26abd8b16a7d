package dea_runner

import (
	"flag"
	"fmt"
	"os"

	"prot_norm_go/config"
	"prot_norm_go/experiment"
	"prot_norm_go/run_state"
)

func Run(args []string) {

	fs := flag.NewFlagSet("dea_runner", flag.ExitOnError)

	cfgFile := fs.String("config", "", "Optional YAML pipeline configuration")
	outDir := fs.String("out_dir", "", "Directory holding pipeline outputs")
	method := fs.String("method", "median", "Normalization method chosen from the comparison report")

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

	state, err := run_state.Load(cfg.StatePath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load run state (run norm_compare first):", err)
		os.Exit(1)
	}
	normFile, err := state.MethodFile(*method)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	raw, err := experiment.Load(state.RawExperiment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load raw experiment:", err)
		os.Exit(1)
	}

	exp, err := LoadNormalized(normFile, raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to rebuild normalized experiment:", err)
		os.Exit(1)
	}
	if err := experiment.Save(exp, cfg.NormExperimentPath()); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to persist normalized experiment:", err)
		os.Exit(1)
	}

	if _, statErr := os.Stat(cfg.DEAOutputDir()); statErr == nil {
		fmt.Printf("Output directory %s already exists, reusing it\n", cfg.DEAOutputDir())
	}
	if err := os.MkdirAll(cfg.DEAOutputDir(), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create DEA output directory:", err)
		os.Exit(1)
	}

	contrasts := EnumerateContrasts(exp.Conditions())
	if len(contrasts) == 0 {
		// A single-condition design has nothing to contrast; that is a
		// degenerate input, not a crash. Leave a header-only results
		// table so downstream tooling finds the expected file.
		fmt.Println("Design has fewer than two conditions; no contrasts to test")
	}

	results, err := GonumEngine{}.Test(exp, contrasts, cfg.DEA)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DEA engine failed:", err)
		os.Exit(1)
	}

	if err := ResultsToTable(results).WriteTSV(cfg.DEAResultsPath()); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to write DEA results:", err)
		os.Exit(1)
	}
	if err := WriteSummaryPDF(cfg.DEAReportPath(), results, cfg.DEA.FDRCutoff, cfg.DEA.MinLog2FC); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to write DEA report:", err)
		os.Exit(1)
	}

	state.Stage = run_state.StageDEAComplete
	state.ChosenMethod = *method
	state.NormExperiment = cfg.NormExperimentPath()
	state.DEAResults = cfg.DEAResultsPath()
	if len(contrasts) > 0 {
		state.DEAReport = cfg.DEAReportPath()
	}
	if err := state.Save(cfg.StatePath()); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to update run state:", err)
		os.Exit(1)
	}

	fmt.Printf("Tested %d features across %d contrasts (%s normalization)\n",
		len(results.Features), len(results.Contrasts), *method)
	for c, n := range results.SignificantCount() {
		fmt.Printf("  %s: %d significant\n", c, n)
	}
	fmt.Printf("Wrote DEA results: %s\n", cfg.DEAResultsPath())
	fmt.Printf("Wrote DEA report: %s\n", cfg.DEAReportPath())
}
