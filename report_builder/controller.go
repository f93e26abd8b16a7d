package report_builder

import (
	"flag"
	"fmt"
	"os"

	"prot_norm_go/config"
	"prot_norm_go/table"
)

func Run(args []string) {

	fs := flag.NewFlagSet("report_builder", flag.ExitOnError)

	cfgFile := fs.String("config", "", "Optional YAML pipeline configuration")
	outDir := fs.String("out_dir", "", "Directory holding pipeline outputs")
	inFile := fs.String("in_file", "", "DEA results TSV (default: the pipeline's dea_results.tsv)")
	outFile := fs.String("out_file", "", "HTML file to write (default: the pipeline's dea_results.html)")

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
	in := cfg.DEAResultsPath()
	if *inFile != "" {
		in = *inFile
	}
	out := cfg.HTMLReportPath()
	if *outFile != "" {
		out = *outFile
	}

	results, err := table.ReadDelim(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load DEA results (run dea_runner first):", err)
		os.Exit(1)
	}

	if err := WriteHTMLReport(out, results); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to write HTML:", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote HTML file: %s\n", out)
}
