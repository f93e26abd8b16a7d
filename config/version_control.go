package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executible
	Main_version = "v1.0.0"

	// Modular tools
	Matrix_Builder  = "v1.0.0"
	Norm_Compare    = "v1.0.0"
	DEA_Runner      = "v1.0.0"
	Report_Builder  = "v1.0.0"
	Pipeline_Runner = "v1.0.0"
	Sanity_check    = "v1.0.0"
	Benchmark       = "v1.0.0"
)
