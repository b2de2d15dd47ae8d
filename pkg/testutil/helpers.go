// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/liquidity-sim/internal/simulation"
)

// FindCompany finds a company state by name in a run result.
// Returns a pointer to the state if found, nil otherwise.
func FindCompany(result *simulation.RunResult, name string) *simulation.CompanyState {
	for i := range result.Companies {
		if result.Companies[i].Name == name {
			return &result.Companies[i]
		}
	}
	return nil
}

// FindScenarioRun finds a run by scenario in a results slice.
// Returns the run if found, nil otherwise.
func FindScenarioRun(results []*simulation.RunResult, scenario simulation.Scenario) *simulation.RunResult {
	for _, result := range results {
		if result.Scenario == scenario {
			return result
		}
	}
	return nil
}
