package recorder

import "github.com/iwvelando/liquidity-sim/internal/simulation"

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord, _ *simulation.RunResult) error { return nil }
func (n *NoopRecorder) Close() error                                          { return nil }
