package topology

import (
	"fmt"
	"os"

	"github.com/iwvelando/liquidity-sim/pkg/constants"
	"gopkg.in/yaml.v3"
)

// fileDocument mirrors the on-disk YAML topology format.
type fileDocument struct {
	Nodes []string   `yaml:"nodes"`
	Edges []fileEdge `yaml:"edges"`
}

type fileEdge struct {
	Source string   `yaml:"source"`
	Target string   `yaml:"target"`
	Amount *float64 `yaml:"amount,omitempty"`
}

// LoadFile reads a YAML topology document from path and builds a validated
// Graph. Edges that omit an amount default to constants.DefaultEdgeAmount.
func LoadFile(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading topology file, %s", err)
	}
	return Parse(raw)
}

// Parse builds a validated Graph from YAML topology bytes.
func Parse(raw []byte) (*Graph, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unable to decode topology, %s", err)
	}

	edges := make([]Edge, 0, len(doc.Edges))
	for _, fe := range doc.Edges {
		amount := constants.DefaultEdgeAmount
		if fe.Amount != nil {
			amount = *fe.Amount
		}
		edges = append(edges, Edge{Source: fe.Source, Target: fe.Target, Amount: amount})
	}

	return New(doc.Nodes, edges)
}
