package sanity_check

import (
	"flag"
	"fmt"
	"os"

	"prot_norm_go/config" // Version control file
	"prot_norm_go/matrix_builder"
)

// Run performs a simple sanity check: prints the version, loads the
// configuration, and dry-runs input discovery so an operator can see
// which files a real run would pick up before anything is written.
func Run(args []string) {

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	cfgFile := fs.String("config", "", "Optional YAML pipeline configuration")
	inDir := fs.String("in_dir", "", "Directory holding the quantification and design tables")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully running Prot Norm! (%s)\n", config.Main_version)

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}
	if *inDir != "" {
		cfg.InputDir = *inDir
	}

	fmt.Printf("Input directory:  %s\n", cfg.InputDir)
	fmt.Printf("Output directory: %s\n", cfg.OutputDir)

	ok := true
	if quant, err := matrix_builder.LocateInput(cfg.InputDir, cfg.QuantPattern); err != nil {
		fmt.Println("Quantification table:", err)
		ok = false
	} else {
		fmt.Printf("Quantification table: %s\n", quant)
	}
	if design, err := matrix_builder.LocateInput(cfg.InputDir, cfg.DesignPattern); err != nil {
		fmt.Println("Design table:", err)
		ok = false
	} else {
		fmt.Printf("Design table: %s\n", design)
	}

	if !ok {
		os.Exit(1)
	}
	fmt.Println("All checks passed.")
}
