// Package constants provides shared constants for the liquidity-sim application.
package constants

// Network constants
const (
	// DefaultEdgeAmount is the debt amount assumed for edges that do not
	// specify one.
	DefaultEdgeAmount = 10000.0

	// CapitalBuffer is the multiple of total debt each company starts with.
	CapitalBuffer = 1.5

	// SuspicionNoiseSigma is the standard deviation of the Gaussian noise
	// applied to the scenario baseline suspicion at initialization.
	SuspicionNoiseSigma = 0.05
)

// Cycle analysis constants
const (
	// MinCycleLength is the shortest cycle eligible for bank intervention.
	MinCycleLength = 3

	// MaxCycleLength is the longest cycle eligible for bank intervention.
	MaxCycleLength = 10

	// DefaultCycleBudget caps the number of node expansions a single cycle
	// search may perform before degrading to an empty result.
	DefaultCycleBudget = 1_000_000

	// HubThreshold is the cycle membership count that marks a hub node.
	HubThreshold = 5

	// MegaHubThreshold is the cycle membership count that marks a mega hub.
	MegaHubThreshold = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultIterations is the iteration count used when the config omits one
	DefaultIterations = 100
)

// Validation constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// ProbabilityTolerance is the tolerance for probability comparisons
	ProbabilityTolerance = 1e-9
)
