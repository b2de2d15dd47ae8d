package simulation

import (
	"math"
	"testing"
)

func TestProbabilityToPay(t *testing.T) {
	tests := []struct {
		name        string
		suspicion   float64
		debtors     []Obligation
		reputations []float64
		expected    float64
	}{
		{
			name:        "No debtors uses empty product",
			suspicion:   0.3,
			reputations: []float64{},
			expected:    0.7,
		},
		{
			name:        "Single debtor scales by reputation",
			suspicion:   0.5,
			debtors:     []Obligation{{Company: 0, Amount: 10000}},
			reputations: []float64{0.8},
			expected:    0.4,
		},
		{
			name:        "Multiple debtors multiply",
			suspicion:   0.0,
			debtors:     []Obligation{{Company: 0}, {Company: 1}},
			reputations: []float64{0.5, 0.5},
			expected:    0.25,
		},
		{
			name:        "Full suspicion yields zero",
			suspicion:   1.0,
			debtors:     []Obligation{{Company: 0}},
			reputations: []float64{1.0},
			expected:    0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Company{Suspicion: tt.suspicion, Debtors: tt.debtors}
			p := c.ProbabilityToPay(tt.reputations)
			if math.Abs(p-tt.expected) > 1e-9 {
				t.Errorf("ProbabilityToPay() = %v, expected %v", p, tt.expected)
			}
		})
	}
}

func TestProbabilityToPayBounds(t *testing.T) {
	// Probability stays in [0,1] for all valid suspicion and reputation values.
	suspicions := []float64{0.0, 0.25, 0.5, 0.75, 1.0}
	reputationSets := [][]float64{
		{},
		{0.0},
		{1.0},
		{0.1, 0.9},
		{0.5, 0.5, 0.5, 0.5, 0.5},
	}

	for _, suspicion := range suspicions {
		for _, reputations := range reputationSets {
			debtors := make([]Obligation, len(reputations))
			for i := range reputations {
				debtors[i] = Obligation{Company: i}
			}
			c := &Company{Suspicion: suspicion, Debtors: debtors}
			p := c.ProbabilityToPay(reputations)
			if p < 0 || p > 1 {
				t.Errorf("ProbabilityToPay() = %v out of [0,1] for suspicion %v, reputations %v", p, suspicion, reputations)
			}
		}
	}
}

func TestDecide(t *testing.T) {
	c := &Company{Suspicion: 0.5}

	// Probability to pay is 0.5: draws below pay, draws at or above delay.
	if got := c.Decide(nil, 0.25); got != Pay {
		t.Errorf("Decide(draw=0.25) = %v, expected pay", got)
	}
	if got := c.Decide(nil, 0.75); got != Delay {
		t.Errorf("Decide(draw=0.75) = %v, expected delay", got)
	}
	if got := c.Decide(nil, 0.5); got != Delay {
		t.Errorf("Decide(draw=0.5) = %v, expected delay at boundary", got)
	}
}

func TestUpdateReputation(t *testing.T) {
	tests := []struct {
		name             string
		reputation       float64
		creditors        int
		paymentsMade     int
		paymentsReceived int
		expected         float64
	}{
		{
			name:         "High rate boosts",
			reputation:   0.5,
			creditors:    2,
			paymentsMade: 2,
			expected:     0.525,
		},
		{
			name:         "Boost capped at 1",
			reputation:   0.99,
			creditors:    1,
			paymentsMade: 1,
			expected:     1.0,
		},
		{
			name:         "Low rate penalizes",
			reputation:   0.5,
			creditors:    4,
			paymentsMade: 1,
			expected:     0.45,
		},
		{
			name:         "Penalty floored at 0.1",
			reputation:   0.105,
			creditors:    1,
			paymentsMade: 0,
			// Counters guard would skip; receiving keeps it active.
			paymentsReceived: 1,
			expected:         0.1,
		},
		{
			name:         "Middle rate unchanged",
			reputation:   0.5,
			creditors:    2,
			paymentsMade: 1,
			expected:     0.5,
		},
		{
			name:       "Guarded no-op with zero counters",
			reputation: 0.5,
			creditors:  2,
			expected:   0.5,
		},
		{
			// With no creditors the rate is always 1, so reputation can only
			// be boosted; starting at the 1.0 cap it never moves.
			name:             "No creditors never changes from cap",
			reputation:       1.0,
			creditors:        0,
			paymentsReceived: 3,
			expected:         1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Company{
				Reputation:       tt.reputation,
				Creditors:        make([]Obligation, tt.creditors),
				PaymentsMade:     tt.paymentsMade,
				PaymentsReceived: tt.paymentsReceived,
			}
			c.UpdateReputation()
			if math.Abs(c.Reputation-tt.expected) > 1e-9 {
				t.Errorf("Reputation = %v, expected %v", c.Reputation, tt.expected)
			}
		})
	}
}

func TestUpdateSuspicion(t *testing.T) {
	tests := []struct {
		name      string
		suspicion float64
		received  int
		delayed   int
		expected  float64
	}{
		{
			name:      "High receive rate reduces suspicion",
			suspicion: 0.5,
			received:  4,
			delayed:   1,
			expected:  0.45,
		},
		{
			name:      "Reduction floored at 0",
			suspicion: 0.03,
			received:  1,
			delayed:   0,
			expected:  0.0,
		},
		{
			name:      "Low receive rate increases suspicion",
			suspicion: 0.5,
			received:  1,
			delayed:   4,
			expected:  0.55,
		},
		{
			name:      "Increase capped at 1",
			suspicion: 0.98,
			received:  0,
			delayed:   1,
			expected:  1.0,
		},
		{
			name:      "Middle rate unchanged",
			suspicion: 0.5,
			received:  1,
			delayed:   1,
			expected:  0.5,
		},
		{
			name:      "Guarded no-op with zero counters",
			suspicion: 0.5,
			expected:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Company{
				Suspicion:           tt.suspicion,
				PaymentsReceived:    tt.received,
				PaymentsDelayedToMe: tt.delayed,
			}
			c.UpdateSuspicion()
			if math.Abs(c.Suspicion-tt.expected) > 1e-9 {
				t.Errorf("Suspicion = %v, expected %v", c.Suspicion, tt.expected)
			}
		})
	}
}

func TestResetCounters(t *testing.T) {
	c := &Company{PaymentsMade: 3, PaymentsReceived: 2, PaymentsDelayedToMe: 1}
	c.ResetCounters()
	if c.PaymentsMade != 0 || c.PaymentsReceived != 0 || c.PaymentsDelayedToMe != 0 {
		t.Errorf("ResetCounters() left counters: %+v", c)
	}
}
