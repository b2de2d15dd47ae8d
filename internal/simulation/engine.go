package simulation

import (
	"fmt"

	"github.com/iwvelando/liquidity-sim/internal/cycles"
	"github.com/iwvelando/liquidity-sim/internal/topology"
	"github.com/iwvelando/liquidity-sim/pkg/constants"
	"github.com/iwvelando/liquidity-sim/pkg/mathutil"
	"github.com/iwvelando/liquidity-sim/pkg/stats"
	"go.uber.org/zap"
)

// CompanyState is a read-only snapshot of one company, handed to downstream
// reporting collaborators at the end of a run.
type CompanyState struct {
	Name                string
	Capital             float64
	Reputation          float64
	Suspicion           float64
	PaymentsMade        int
	PaymentsReceived    int
	PaymentsDelayedToMe int
}

// RunResult is everything a completed run produces.
type RunResult struct {
	Scenario         Scenario
	BankIntervention bool
	History          []stats.IterationResult
	Summary          stats.SummaryStatistics
	Companies        []CompanyState
}

// Engine orchestrates the iterative liquidity game over a fixed topology.
// A run moves through INIT -> RUNNING -> DONE: Run reinitializes every
// company from the topology, executes the requested iterations
// sequentially, and reduces the history into summary statistics.
type Engine struct {
	graph    *topology.Graph
	scenario Scenario
	source   *Source
	detector *cycles.Detector
	logger   *zap.Logger

	companies []*Company
	history   []stats.IterationResult
	iteration int
}

// NewEngine creates an engine for a validated topology. The seed fixes the
// entire run: initialization noise and every decision draw derive from it.
func NewEngine(graph *topology.Graph, scenario Scenario, seed int64, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		graph:    graph,
		scenario: scenario,
		source:   NewSource(seed),
		detector: cycles.NewDetector(logger),
		logger:   logger,
	}
}

// initCompanies builds the company population fresh from the topology:
// capital is 1.5x total debt, reputation 1.0, and suspicion the scenario
// baseline plus Gaussian noise clipped to [0,1]. Relationship maps mirror
// the graph's edges exactly and never change shape afterwards.
func (e *Engine) initCompanies() {
	names := e.graph.Nodes()
	e.companies = make([]*Company, len(names))
	for id, name := range names {
		e.companies[id] = &Company{
			ID:         id,
			Name:       name,
			Reputation: 1.0,
		}
	}

	for _, edge := range e.graph.Edges() {
		debtor, _ := e.graph.Index(edge.Source)
		creditor, _ := e.graph.Index(edge.Target)
		e.companies[debtor].Creditors = append(e.companies[debtor].Creditors, Obligation{Company: creditor, Amount: edge.Amount})
		e.companies[creditor].Debtors = append(e.companies[creditor].Debtors, Obligation{Company: debtor, Amount: edge.Amount})
		e.companies[debtor].TotalDebt += edge.Amount
	}

	baseline := e.scenario.BaselineSuspicion()
	noise := e.source.InitStream()
	for _, company := range e.companies {
		company.Capital = company.TotalDebt * constants.CapitalBuffer
		jitter := noise.NormFloat64() * constants.SuspicionNoiseSigma
		company.Suspicion = mathutil.Clamp(baseline+jitter, 0, 1)
	}
}

// decision is one recorded phase-3 outcome, applied unchanged in phase 4.
type decision struct {
	debtor   int
	creditor int
	amount   float64
	outcome  PaymentDecision
}

// ExecuteIteration advances the game by one iteration. The decide and
// execute phases are strictly separated: every decision for the whole
// iteration is recorded against a reputation snapshot before any capital or
// counter mutates, so processing order cannot leak one company's updated
// state into another's decision.
func (e *Engine) ExecuteIteration(useBankIntervention bool) stats.IterationResult {
	e.iteration++
	result := stats.IterationResult{Iteration: e.iteration}

	// Phase 1: reset per-iteration counters.
	for _, company := range e.companies {
		company.ResetCounters()
	}

	// Phase 2: compute the guarantee set. The cycle set is recomputed every
	// intervention-enabled iteration, matching the reference behavior even
	// though the topology is fixed within a run.
	guaranteed := make(map[cycles.EdgeKey]struct{})
	if useBankIntervention {
		found := e.detector.Detect(e.graph)
		result.CyclesResolved = len(found)
		guaranteed = cycles.GuaranteedEdges(found)
	}

	// Phase 3: record all decisions against the previous iteration's
	// reputation snapshot. No company state is mutated here.
	reputations := make([]float64, len(e.companies))
	for id, company := range e.companies {
		reputations[id] = company.Reputation
	}

	var decisions []decision
	for _, company := range e.companies {
		for _, obligation := range company.Creditors {
			creditorName := e.companies[obligation.Company].Name
			key := cycles.EdgeKey{Debtor: company.Name, Creditor: creditorName}

			outcome := Pay
			if _, ok := guaranteed[key]; !ok {
				draw := e.source.DecisionDraw(e.iteration, company.Name, creditorName)
				outcome = company.Decide(reputations, draw)
			}

			decisions = append(decisions, decision{
				debtor:   company.ID,
				creditor: obligation.Company,
				amount:   obligation.Amount,
				outcome:  outcome,
			})
		}
	}

	// Phase 4: execute every recorded decision. Capital is intentionally
	// never validated or floored; a decided payment always transfers.
	for _, d := range decisions {
		debtor := e.companies[d.debtor]
		creditor := e.companies[d.creditor]

		if d.outcome == Pay {
			debtor.Capital -= d.amount
			creditor.Capital += d.amount
			debtor.PaymentsMade++
			creditor.PaymentsReceived++
			result.PaymentsMade++
			result.TotalPaymentAmount += d.amount
		} else {
			creditor.PaymentsDelayedToMe++
			result.PaymentsDelayed++
		}
	}

	// Phase 5: feedback from the counters just populated.
	for _, company := range e.companies {
		company.UpdateReputation()
		company.UpdateSuspicion()
	}

	e.history = append(e.history, result)
	return result
}

// Run executes a full simulation: all company state is rebuilt from the
// topology, history is cleared, and iterations execute sequentially.
func (e *Engine) Run(iterations int, useBankIntervention bool) (*RunResult, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	e.initCompanies()
	e.history = nil
	e.iteration = 0

	e.logger.Debug("starting simulation run",
		zap.String("op", "simulation.Run"),
		zap.String("scenario", e.scenario.String()),
		zap.Int("iterations", iterations),
		zap.Bool("bankIntervention", useBankIntervention),
		zap.Int("companies", len(e.companies)),
	)

	for i := 0; i < iterations; i++ {
		e.ExecuteIteration(useBankIntervention)
	}

	result := &RunResult{
		Scenario:         e.scenario,
		BankIntervention: useBankIntervention,
		History:          append([]stats.IterationResult(nil), e.history...),
		Companies:        e.Companies(),
	}

	finals := make([]stats.CompanyFinal, len(e.companies))
	for i, company := range e.companies {
		finals[i] = stats.CompanyFinal{
			Reputation: company.Reputation,
			Suspicion:  company.Suspicion,
			Capital:    company.Capital,
		}
	}
	result.Summary = stats.Reduce(result.History, finals)

	e.logger.Debug("simulation run complete",
		zap.String("op", "simulation.Run"),
		zap.Int("totalPayments", result.Summary.TotalPayments),
		zap.Int("totalDelays", result.Summary.TotalDelays),
		zap.Float64("paymentRate", result.Summary.PaymentRate),
	)

	return result, nil
}

// Companies returns a snapshot of current company state in id order.
func (e *Engine) Companies() []CompanyState {
	snapshot := make([]CompanyState, len(e.companies))
	for i, company := range e.companies {
		snapshot[i] = CompanyState{
			Name:                company.Name,
			Capital:             company.Capital,
			Reputation:          company.Reputation,
			Suspicion:           company.Suspicion,
			PaymentsMade:        company.PaymentsMade,
			PaymentsReceived:    company.PaymentsReceived,
			PaymentsDelayedToMe: company.PaymentsDelayedToMe,
		}
	}
	return snapshot
}

// AnalyzeNetwork produces the read-only cycle participation report for the
// engine's topology. Engine state is untouched.
func (e *Engine) AnalyzeNetwork() cycles.ParticipationReport {
	return cycles.AnalyzeParticipation(e.detector.Detect(e.graph))
}
