// Package pipeline drives stages 1 through 5 in one invocation:
// assemble the raw experiment, compute the normalization variants, and
// stop at the manual selection gate. Differential expression is never
// chained on automatically; choosing the normalization method is a
// human decision made against the comparison report.
package pipeline

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"prot_norm_go/config"
	"prot_norm_go/matrix_builder"
	"prot_norm_go/norm_compare"
)

// newLogger builds the production logger used for pipeline progress.
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

func Run(args []string) {

	fs := flag.NewFlagSet("run", flag.ExitOnError)

	cfgFile := fs.String("config", "", "Optional YAML pipeline configuration")
	inDir := fs.String("in_dir", "", "Directory holding the quantification and design tables")
	outDir := fs.String("out_dir", "", "Directory to write pipeline outputs into")

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
	if *inDir != "" {
		cfg.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Infow("building raw experiment", "input_dir", cfg.InputDir)
	exp, err := matrix_builder.Build(cfg)
	if err != nil {
		log.Errorw("matrix builder failed", "error", err)
		os.Exit(1)
	}
	raw := exp.Assays["raw"]
	log.Infow("raw experiment assembled",
		"features", len(raw.FeatureIDs),
		"samples", len(raw.SampleNames),
		"conditions", len(exp.Conditions()),
		"snapshot", cfg.RawExperimentPath(),
	)

	log.Infow("comparing normalization methods", "output_dir", cfg.NormResultsDir())
	state, err := norm_compare.Compare(cfg, norm_compare.GonumEngine{}, exp)
	if err != nil {
		log.Errorw("normalization comparison failed", "error", err)
		os.Exit(1)
	}
	log.Infow("normalization comparison complete",
		"methods", len(state.Methods),
		"report", state.ComparisonReport,
	)

	fmt.Println()
	fmt.Println("The pipeline is paused at the method-selection gate.")
	fmt.Printf("Inspect %s, then resume with:\n", state.ComparisonReport)
	fmt.Println("  prot_norm dea_runner -method <log2|median|mean|quantile|gi>")
	fmt.Println("  prot_norm report_builder")
}
