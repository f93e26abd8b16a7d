package main

import (
	"fmt"
	"os"
	"strings"

	"prot_norm_go/benchmark"
	version_control "prot_norm_go/config"
	"prot_norm_go/dea_runner"
	"prot_norm_go/matrix_builder"
	"prot_norm_go/norm_compare"
	"prot_norm_go/pipeline"
	"prot_norm_go/report_builder"
	"prot_norm_go/sanity_check"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`Prot Norm - Custom Help Menu
Usage:
  prot_norm <tool> [options]

Tools:
  matrix_builder	Locate inputs and build the raw abundance experiment
  norm_compare		Compute normalization variants and a comparison report
  dea_runner		Run differential expression on a chosen variant
  report_builder	Render DEA results as an interactive HTML table
  run			Full pipeline up to the manual method-selection gate
  check			Run diagnostic test on config and input discovery

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information

Benchmarking:
  -benchmark		Must be used in associtation with a tool.
			Displays computational resource usage and
			pertinent operating system information
  `,
	)
	os.Exit(0)
}

func printVersion() {
	fmt.Println("Prot Norm - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tProt Norm:\t\t%s\n", version_control.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tMatrix Builder:\t\t%s\n", version_control.Matrix_Builder)
	fmt.Printf("\tNorm Compare:\t\t%s\n", version_control.Norm_Compare)
	fmt.Printf("\tDEA Runner:\t\t%s\n", version_control.DEA_Runner)
	fmt.Printf("\tReport Builder:\t\t%s\n", version_control.Report_Builder)
	fmt.Printf("\tPipeline Runner:\t%s\n", version_control.Pipeline_Runner)
	fmt.Printf("\tSanity Check:\t\t%s\n", version_control.Sanity_check)
	fmt.Printf("\tBenchmark:\t\t%s\n", version_control.Benchmark)

	fmt.Println("")

	os.Exit(0)
}

// Main controller
func main() {

	// If no arguments are given, show help
	if len(os.Args) < 2 {
		printCustomHelp()
	}

	// Scan for executible-specific help flags
	for _, arg := range os.Args[1:] {
		if len(os.Args) < 3 {
			if arg == "-h" || arg == "-help" {
				printCustomHelp()
			}
		}
	}

	// Version request
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
		}
	}

	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Check for global -benchmark flag
	benchmarking := false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		if arg == "-benchmark" {
			benchmarking = true
		} else {
			cleanedArgs = append(cleanedArgs, arg)
		}
	}

	// Tool execution wrapper
	run := func() {
		switch toolName {
		case "matrix_builder":
			matrix_builder.Run(cleanedArgs)
		case "norm_compare":
			norm_compare.Run(cleanedArgs)
		case "dea_runner":
			dea_runner.Run(cleanedArgs)
		case "report_builder":
			report_builder.Run(cleanedArgs)
		case "run":
			pipeline.Run(cleanedArgs)
		case "check":
			sanity_check.Run(cleanedArgs)
		default:
			fmt.Printf("Unknown tool: %s\n", toolName)
			os.Exit(1)
		}
	}

	if benchmarking {
		label := fmt.Sprintf("prot_norm %s %s", toolName, strings.Join(cleanedArgs, " "))
		benchmark.Run(label, run)
	} else {
		run()
	}
}
