package simulation

import "fmt"

// Scenario is a named macro-economic regime. The set is closed; each member
// maps to a fixed baseline suspicion.
type Scenario string

const (
	ScenarioCrisis    Scenario = "crisis"
	ScenarioRecession Scenario = "recession"
	ScenarioNormal    Scenario = "normal"
	ScenarioGrowth    Scenario = "growth"
	ScenarioBoom      Scenario = "boom"
)

// baselineSuspicion maps each scenario to its baseline suspicion level,
// monotonically decreasing from crisis to boom.
var baselineSuspicion = map[Scenario]float64{
	ScenarioCrisis:    0.9,
	ScenarioRecession: 0.7,
	ScenarioNormal:    0.5,
	ScenarioGrowth:    0.3,
	ScenarioBoom:      0.1,
}

// Scenarios returns all scenarios ordered from highest to lowest baseline
// suspicion.
func Scenarios() []Scenario {
	return []Scenario{ScenarioCrisis, ScenarioRecession, ScenarioNormal, ScenarioGrowth, ScenarioBoom}
}

// ParseScenario maps a config string to a Scenario.
func ParseScenario(name string) (Scenario, error) {
	scenario := Scenario(name)
	if _, ok := baselineSuspicion[scenario]; !ok {
		return "", fmt.Errorf("unrecognized scenario %q", name)
	}
	return scenario, nil
}

// BaselineSuspicion returns the baseline suspicion for the scenario.
func (s Scenario) BaselineSuspicion() float64 {
	return baselineSuspicion[s]
}

func (s Scenario) String() string {
	return string(s)
}
