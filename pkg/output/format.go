// Package output provides utilities for formatting and displaying simulation
// results.
package output

import (
	"fmt"

	"github.com/iwvelando/liquidity-sim/internal/analysis"
	"github.com/iwvelando/liquidity-sim/internal/cycles"
	"github.com/iwvelando/liquidity-sim/internal/simulation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary
// of each run.
func PrettyFormat(results []*simulation.RunResult) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for scenario %s (bank intervention: %t) ---\n",
			result.Scenario, result.BankIntervention)
		fmt.Printf("Total payments made:      %d\n", result.Summary.TotalPayments)
		fmt.Printf("Total payments delayed:   %d\n", result.Summary.TotalDelays)
		fmt.Printf("Payment rate:             %.1f%%\n", result.Summary.PaymentRate*100)
		_, _ = p.Printf("Total payment volume:     $%.2f\n", result.Summary.TotalVolume)
		fmt.Printf("Cycles resolved:          %d\n", result.Summary.CyclesResolved)
		fmt.Printf("Average final reputation: %.3f\n", result.Summary.AvgFinalReputation)
		fmt.Printf("Average final suspicion:  %.3f\n", result.Summary.AvgFinalSuspicion)
		_, _ = p.Printf("Average final capital:    $%.2f\n", result.Summary.AvgFinalCapital)
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs run summaries in comma-separated value format.
func CsvFormat(results []*simulation.RunResult) {
	fmt.Printf(`"scenario","bank_intervention","total_payments","total_delays","payment_rate","total_volume","cycles_resolved","avg_final_reputation","avg_final_suspicion","avg_final_capital"`)
	fmt.Printf("\n")
	for _, result := range results {
		fmt.Printf(`"%s","%t","%d","%d","%.4f","%.2f","%d","%.4f","%.4f","%.2f"`,
			result.Scenario, result.BankIntervention,
			result.Summary.TotalPayments, result.Summary.TotalDelays,
			result.Summary.PaymentRate, result.Summary.TotalVolume,
			result.Summary.CyclesResolved, result.Summary.AvgFinalReputation,
			result.Summary.AvgFinalSuspicion, result.Summary.AvgFinalCapital)
		fmt.Printf("\n")
	}
}

// PrettyNetwork outputs the cycle participation report.
func PrettyNetwork(report cycles.ParticipationReport) {
	fmt.Printf("--- Network structure ---\n")
	fmt.Printf("Total cycles:               %d\n", report.TotalCycles)
	fmt.Printf("Companies in cycles:        %d\n", report.CompaniesInCycles)
	fmt.Printf("Hub nodes (5+ cycles):      %d\n", len(report.Hubs))
	fmt.Printf("Mega hub nodes (10+ cycles): %d\n", len(report.MegaHubs))
	fmt.Printf("Max cycle participation:    %d\n", report.MaxParticipation)
}

// PrettyComparison outputs the bank intervention impact of a paired run.
func PrettyComparison(comparison *analysis.Comparison) {
	fmt.Printf("--- Bank intervention impact (%s scenario) ---\n", comparison.Scenario)
	fmt.Printf("Payment increase:        %+.1f%%\n", comparison.PaymentIncreasePct)
	fmt.Printf("Volume increase:         %+.1f%%\n", comparison.VolumeIncreasePct)
	fmt.Printf("Suspicion reduction:     %+.3f\n", comparison.SuspicionReduction)
	fmt.Printf("Payment rate improvement: %+.1f percentage points\n", comparison.RateImprovementPts)
}
