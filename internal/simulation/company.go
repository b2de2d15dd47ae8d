// Package simulation implements the iterative liquidity game: per-company
// pay/delay decisions coupled through the debt network, with reputation and
// suspicion feedback, and an optional cycle-targeted bank guarantee.
package simulation

import "github.com/iwvelando/liquidity-sim/pkg/mathutil"

// PaymentDecision is the outcome of one debtor -> creditor decision.
type PaymentDecision int

const (
	Delay PaymentDecision = iota
	Pay
)

func (d PaymentDecision) String() string {
	if d == Pay {
		return "pay"
	}
	return "delay"
}

// Reputation and suspicion feedback parameters.
const (
	reputationHighRate = 0.8
	reputationLowRate  = 0.3
	reputationBoost    = 1.05
	reputationPenalty  = 0.9
	reputationFloor    = 0.1

	suspicionHighRate = 0.7
	suspicionLowRate  = 0.3
	suspicionStep     = 0.05
)

// Obligation is one debt relationship, referencing the counterparty by its
// stable company id.
type Obligation struct {
	Company int
	Amount  float64
}

// Company holds per-agent simulation state. Creditors and Debtors mirror the
// topology's edges exactly and never change shape during a run; only
// Capital, Reputation, Suspicion, and the per-iteration counters mutate.
type Company struct {
	ID        int
	Name      string
	Capital   float64
	TotalDebt float64

	// Reputation in [0,1]: how reliably this company is seen to pay.
	Reputation float64
	// Suspicion in [0,1]: this company's estimate that it will not be paid.
	Suspicion float64

	// Creditors are who this company owes; Debtors are who owe it.
	Creditors []Obligation
	Debtors   []Obligation

	// Per-iteration counters, reset at the top of every iteration.
	PaymentsMade        int
	PaymentsReceived    int
	PaymentsDelayedToMe int
}

// ResetCounters zeroes the per-iteration counters.
func (c *Company) ResetCounters() {
	c.PaymentsMade = 0
	c.PaymentsReceived = 0
	c.PaymentsDelayedToMe = 0
}

// ProbabilityToPay computes (1 - suspicion) * product of this company's
// debtors' reputations, read from the supplied snapshot. The empty product
// is 1, so a company with no debtors pays with probability 1 - suspicion.
// The result is always in [0,1].
func (c *Company) ProbabilityToPay(reputations []float64) float64 {
	p := 1 - c.Suspicion
	for _, debtor := range c.Debtors {
		p *= reputations[debtor.Company]
	}
	return p
}

// Decide draws a Bernoulli pay/delay outcome for one creditor relationship.
// reputations is the population reputation snapshot as of the end of the
// previous iteration; draw is a uniform variate in [0,1).
func (c *Company) Decide(reputations []float64, draw float64) PaymentDecision {
	if draw < c.ProbabilityToPay(reputations) {
		return Pay
	}
	return Delay
}

// UpdateReputation adjusts reputation from this iteration's payment
// counters. No-op when the company neither made nor received a payment. The
// payment rate is defined as 1 for a company with no creditors: nothing was
// owed, so its obligations are fully satisfied.
func (c *Company) UpdateReputation() {
	if c.PaymentsMade+c.PaymentsReceived == 0 {
		return
	}

	rate := 1.0
	if len(c.Creditors) > 0 {
		rate = float64(c.PaymentsMade) / float64(len(c.Creditors))
	}

	if rate > reputationHighRate {
		c.Reputation = mathutil.Clamp(c.Reputation*reputationBoost, 0, 1)
	} else if rate < reputationLowRate {
		c.Reputation = mathutil.Clamp(c.Reputation*reputationPenalty, reputationFloor, 1)
	}
}

// UpdateSuspicion adjusts suspicion from the fraction of expected inbound
// payments that arrived. No-op when nothing was received or delayed.
func (c *Company) UpdateSuspicion() {
	if c.PaymentsReceived+c.PaymentsDelayedToMe == 0 {
		return
	}

	receiveRate := float64(c.PaymentsReceived) / float64(c.PaymentsReceived+c.PaymentsDelayedToMe)
	if receiveRate > suspicionHighRate {
		c.Suspicion = mathutil.Clamp(c.Suspicion-suspicionStep, 0, 1)
	} else if receiveRate < suspicionLowRate {
		c.Suspicion = mathutil.Clamp(c.Suspicion+suspicionStep, 0, 1)
	}
}
