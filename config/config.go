package config // Pipeline configuration file

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Pipeline holds every path, pattern and threshold the tools need.
// All paths are explicit; no tool reads the process working directory
// except through InputDir's default value.
type Pipeline struct {
	// Where the quantification and design files are searched for.
	InputDir string `yaml:"input_dir"`

	// Root of everything the pipeline writes.
	OutputDir string `yaml:"output_dir"`

	// Filename globs for input discovery. Exactly one file must match each.
	QuantPattern  string `yaml:"quant_pattern"`
	DesignPattern string `yaml:"design_pattern"`

	// Canonical (snake-cased) column names of the quantification table.
	QuantIDColumn   string `yaml:"quant_id_column"`
	QuantGeneColumn string `yaml:"quant_gene_column"`

	// Output layout under OutputDir.
	NormSubdir string `yaml:"normalization_subdir"`
	DEASubdir  string `yaml:"dea_subdir"`
	StateFile  string `yaml:"state_file"`

	DEA Thresholds `yaml:"dea"`
}

// Thresholds is the fixed filtering policy handed to the DEA engine.
type Thresholds struct {
	// Multiple-testing corrected significance cutoff.
	FDRCutoff float64 `yaml:"fdr_cutoff"`

	// Minimum absolute log2 fold change for a significance call.
	MinLog2FC float64 `yaml:"min_log2_fold_change"`

	// A feature must be present in at least this fraction of each
	// group's replicates (rounded up) to be tested for a contrast.
	LeastRepFraction float64 `yaml:"least_replicate_fraction"`
}

// Default returns the stock configuration used when no YAML file is given.
func Default() Pipeline {
	return Pipeline{
		InputDir:        ".",
		OutputDir:       "prot_norm_output",
		QuantPattern:    "*Proteins.txt",
		DesignPattern:   "sample_table.csv",
		QuantIDColumn:   "accession",
		QuantGeneColumn: "gene_symbol",
		NormSubdir:      "normalization_results",
		DEASubdir:       "dea_output",
		StateFile:       "run_state.json",
		DEA: Thresholds{
			FDRCutoff:        0.01,
			MinLog2FC:        1.0,
			LeastRepFraction: 0.5,
		},
	}
}

// Load reads a YAML config over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Pipeline, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Path helpers. Every artifact location is derived here so the stages
// agree on the layout without sharing globals.

func (p Pipeline) StatePath() string {
	return filepath.Join(p.OutputDir, p.StateFile)
}

func (p Pipeline) RawExperimentPath() string {
	return filepath.Join(p.OutputDir, "raw_experiment.json.gz")
}

func (p Pipeline) NormExperimentPath() string {
	return filepath.Join(p.OutputDir, "normalized_experiment.json.gz")
}

func (p Pipeline) NormResultsDir() string {
	return filepath.Join(p.OutputDir, p.NormSubdir)
}

func (p Pipeline) ComparisonReportPath() string {
	return filepath.Join(p.NormResultsDir(), "normalization_report.pdf")
}

func (p Pipeline) DEAOutputDir() string {
	return filepath.Join(p.OutputDir, p.DEASubdir)
}

func (p Pipeline) DEAResultsPath() string {
	return filepath.Join(p.DEAOutputDir(), "dea_results.tsv")
}

func (p Pipeline) DEAReportPath() string {
	return filepath.Join(p.DEAOutputDir(), "dea_report.pdf")
}

func (p Pipeline) HTMLReportPath() string {
	return filepath.Join(p.OutputDir, "dea_results.html")
}
