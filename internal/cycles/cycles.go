// Package cycles enumerates bounded-length simple cycles in the debt graph
// and derives the bank guarantee set and participation analytics from them.
package cycles

import (
	"sort"

	"github.com/iwvelando/liquidity-sim/internal/topology"
	"github.com/iwvelando/liquidity-sim/pkg/constants"
	"go.uber.org/zap"
)

// EdgeKey identifies a debtor -> creditor arc.
type EdgeKey struct {
	Debtor   string
	Creditor string
}

// Detector searches for simple directed cycles with length in
// [MinLength, MaxLength]. Simple-cycle enumeration is worst-case
// exponential, so the search carries a hard expansion budget; when it runs
// out the whole call returns an empty cycle set. The intervention signal
// may miss cycles, the run must never hang.
type Detector struct {
	MinLength int
	MaxLength int
	Budget    int

	logger *zap.Logger
}

// NewDetector creates a Detector with the standard length bounds and budget.
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		MinLength: constants.MinCycleLength,
		MaxLength: constants.MaxCycleLength,
		Budget:    constants.DefaultCycleBudget,
		logger:    logger,
	}
}

// Detect returns every simple cycle of eligible length, each as a node-name
// sequence without the closing repetition. Each cycle is reported exactly
// once, rotated so its lowest-id node comes first. Returns an empty set if
// the search budget is exhausted.
func (d *Detector) Detect(g *topology.Graph) [][]string {
	n := g.NodeCount()

	// Parallel edges collapse to one arc for cycle purposes.
	adj := make([][]int, n)
	for v := 0; v < n; v++ {
		seen := make(map[int]bool)
		for _, w := range g.Successors(v) {
			if !seen[w] {
				seen[w] = true
				adj[v] = append(adj[v], w)
			}
		}
		sort.Ints(adj[v])
	}

	s := &search{
		graph:     g,
		adj:       adj,
		minLength: d.MinLength,
		maxLength: d.MaxLength,
		budget:    d.Budget,
		onPath:    make([]bool, n),
	}

	for start := 0; start < n; start++ {
		s.start = start
		s.path = s.path[:0]
		if !s.visit(start) {
			d.logger.Warn("cycle search budget exhausted, treating cycle set as empty",
				zap.String("op", "cycles.Detect"),
				zap.Int("budget", d.Budget),
				zap.Int("cyclesFoundSoFar", len(s.found)),
			)
			return nil
		}
	}

	return s.found
}

type search struct {
	graph     *topology.Graph
	adj       [][]int
	minLength int
	maxLength int
	budget    int
	start     int
	path      []int
	onPath    []bool
	found     [][]string
}

// visit extends the current path through v. Only nodes with id >= start are
// explored, so every cycle is discovered exactly once, from its lowest-id
// member. Returns false when the budget is exhausted.
func (s *search) visit(v int) bool {
	if s.budget <= 0 {
		return false
	}
	s.budget--

	s.path = append(s.path, v)
	s.onPath[v] = true
	defer func() {
		s.path = s.path[:len(s.path)-1]
		s.onPath[v] = false
	}()

	for _, w := range s.adj[v] {
		if w < s.start {
			continue
		}
		if w == s.start {
			if len(s.path) >= s.minLength && len(s.path) <= s.maxLength {
				cycle := make([]string, len(s.path))
				for i, id := range s.path {
					cycle[i] = s.graph.Name(id)
				}
				s.found = append(s.found, cycle)
			}
			continue
		}
		if s.onPath[w] || len(s.path) >= s.maxLength {
			continue
		}
		if !s.visit(w) {
			return false
		}
	}

	return true
}

// GuaranteedEdges returns the union over all cycles of every consecutive
// debtor -> creditor arc, wrapping last back to first.
func GuaranteedEdges(cycles [][]string) map[EdgeKey]struct{} {
	guaranteed := make(map[EdgeKey]struct{})
	for _, cycle := range cycles {
		for i, debtor := range cycle {
			creditor := cycle[(i+1)%len(cycle)]
			guaranteed[EdgeKey{Debtor: debtor, Creditor: creditor}] = struct{}{}
		}
	}
	return guaranteed
}

// ParticipationReport summarizes how companies participate in cycles.
type ParticipationReport struct {
	TotalCycles       int
	CompaniesInCycles int
	Counts            map[string]int
	Hubs              []string
	MegaHubs          []string
	AvgParticipation  float64
	MaxParticipation  int
}

// AnalyzeParticipation counts per-company cycle memberships and classifies
// hubs (>= 5 memberships) and mega hubs (>= 10). Read-only: no engine state
// is touched.
func AnalyzeParticipation(cycles [][]string) ParticipationReport {
	report := ParticipationReport{
		TotalCycles: len(cycles),
		Counts:      make(map[string]int),
	}

	for _, cycle := range cycles {
		for _, company := range cycle {
			report.Counts[company]++
		}
	}
	report.CompaniesInCycles = len(report.Counts)

	total := 0
	for company, count := range report.Counts {
		total += count
		if count > report.MaxParticipation {
			report.MaxParticipation = count
		}
		if count >= constants.HubThreshold {
			report.Hubs = append(report.Hubs, company)
		}
		if count >= constants.MegaHubThreshold {
			report.MegaHubs = append(report.MegaHubs, company)
		}
	}
	if len(report.Counts) > 0 {
		report.AvgParticipation = float64(total) / float64(len(report.Counts))
	}
	sort.Strings(report.Hubs)
	sort.Strings(report.MegaHubs)

	return report
}
