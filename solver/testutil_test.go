package solver

import (
	"fmt"
	"testing"

	"github.com/politic-in/districting/region"
)

// buildChainGraph returns a linear chain of n regions, R0..R(n-1), each
// adjacent to its immediate neighbors, with a hop-count distance between
// every pair and the given per-region metric values (repeated/cycled if
// shorter than n).
func buildChainGraph(t *testing.T, n int, metrics ...int) *region.RegionGraph {
	t.Helper()
	if len(metrics) == 0 {
		metrics = []int{10}
	}

	regions := make([]*region.Region, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("R%d", i)
		var adj []string
		if i > 0 {
			adj = append(adj, fmt.Sprintf("R%d", i-1))
		}
		if i < n-1 {
			adj = append(adj, fmt.Sprintf("R%d", i+1))
		}
		m := metrics[i%len(metrics)]
		regions[i] = region.NewRegion(code, "Region "+code, map[string]int{"pop": m}, adj)
	}

	for i, r := range regions {
		for j, other := range regions {
			if i == j {
				continue
			}
			dist := i - j
			if dist < 0 {
				dist = -dist
			}
			r.Distances[other.Code] = dist
		}
	}

	graph, err := region.NewRegionGraph(regions, []string{"pop"})
	if err != nil {
		t.Fatalf("buildChainGraph: %v", err)
	}
	return graph
}
