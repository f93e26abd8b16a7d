package matrix_builder

import (
	"flag"
	"fmt"
	"os"

	"prot_norm_go/config"
)

func Run(args []string) {

	fs := flag.NewFlagSet("matrix_builder", flag.ExitOnError) // Isolated flag set specifically for "matrix_builder" subcommand

	cfgFile := fs.String("config", "", "Optional YAML pipeline configuration")
	inDir := fs.String("in_dir", "", "Directory holding the quantification and design tables")
	outDir := fs.String("out_dir", "", "Directory to write pipeline outputs into")

	err := fs.Parse(args) // Parse inputs
	if err != nil {
		fmt.Println("Error parsing flags:", err) // Check for outright input failures
		os.Exit(1)
	}

	if len(fs.Args()) > 0 { // If unparsed arguments remain:
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args()) // Flag the error and report it
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

	exp, err := Build(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to build raw experiment:", err)
		os.Exit(1)
	}

	raw := exp.Assays["raw"]
	fmt.Printf("Assembled raw experiment: %d features x %d samples, %d conditions\n",
		len(raw.FeatureIDs), len(raw.SampleNames), len(exp.Conditions()))
	fmt.Printf("Wrote experiment snapshot: %s\n", cfg.RawExperimentPath())
	fmt.Printf("Wrote run state: %s\n", cfg.StatePath())
}
