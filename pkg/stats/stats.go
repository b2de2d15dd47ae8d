// Package stats reduces an ordered iteration history into run-level summary
// statistics. Everything here is a pure function over its inputs.
package stats

import "github.com/iwvelando/liquidity-sim/pkg/mathutil"

// IterationResult records the aggregate outcomes of a single iteration.
type IterationResult struct {
	Iteration          int
	PaymentsMade       int
	PaymentsDelayed    int
	TotalPaymentAmount float64
	CyclesResolved     int
}

// CompanyFinal carries the end-of-run per-company values that feed the
// population averages.
type CompanyFinal struct {
	Reputation float64
	Suspicion  float64
	Capital    float64
}

// SummaryStatistics aggregates a full run.
type SummaryStatistics struct {
	TotalPayments      int
	TotalDelays        int
	PaymentRate        float64
	TotalVolume        float64
	CyclesResolved     int
	AvgFinalReputation float64
	AvgFinalSuspicion  float64
	AvgFinalCapital    float64
}

// Reduce folds a run's history and the final company population into
// SummaryStatistics. PaymentRate is 0 when no payments or delays occurred.
func Reduce(history []IterationResult, finals []CompanyFinal) SummaryStatistics {
	var summary SummaryStatistics
	for _, result := range history {
		summary.TotalPayments += result.PaymentsMade
		summary.TotalDelays += result.PaymentsDelayed
		summary.TotalVolume += result.TotalPaymentAmount
		summary.CyclesResolved += result.CyclesResolved
	}
	summary.PaymentRate = mathutil.SafeRate(
		float64(summary.TotalPayments),
		float64(summary.TotalPayments+summary.TotalDelays),
	)

	reputations := make([]float64, len(finals))
	suspicions := make([]float64, len(finals))
	capitals := make([]float64, len(finals))
	for i, final := range finals {
		reputations[i] = final.Reputation
		suspicions[i] = final.Suspicion
		capitals[i] = final.Capital
	}
	summary.AvgFinalReputation = mathutil.Mean(reputations)
	summary.AvgFinalSuspicion = mathutil.Mean(suspicions)
	summary.AvgFinalCapital = mathutil.Mean(capitals)

	return summary
}
