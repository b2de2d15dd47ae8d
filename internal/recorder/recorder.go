// Package recorder persists completed simulation runs for later analysis.
package recorder

import (
	"github.com/iwvelando/liquidity-sim/internal/simulation"
)

// RunRecord identifies one completed run and the configuration that
// produced it.
type RunRecord struct {
	ID               string
	Scenario         string
	Iterations       int
	BankIntervention bool
	Seed             int64
}

// Recorder persists run histories and final company states.
type Recorder interface {
	RecordRun(record *RunRecord, result *simulation.RunResult) error
	Close() error
}
