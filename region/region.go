// Package region defines the region graph the districting solver partitions:
// named areas with per-metric magnitudes, adjacency, and inter-region
// distances.
package region

import (
	"errors"
	"fmt"
	"sort"

	"github.com/politic-in/districting/types"
)

// Region is a single unit of geography the solver assigns to a district.
type Region struct {
	Code string
	Name string

	// Metrics holds one value per metric name known to the owning RegionGraph
	// (population, area, etc.) — the value the solver balances across
	// districts depends on which metric a given Solver run was built for.
	Metrics map[string]int

	// Adj is the set of codes of regions directly bordering this one.
	Adj map[string]struct{}

	// Distances maps a reachable region's code to the hop count between the
	// two regions along the adjacency graph. Unreachable or self pairs are
	// simply absent.
	Distances map[string]int
}

// NewRegion constructs a Region with its metric and adjacency maps initialized.
func NewRegion(code, name string, metrics map[string]int, adj []string) *Region {
	adjSet := make(map[string]struct{}, len(adj))
	for _, code := range adj {
		adjSet[code] = struct{}{}
	}
	return &Region{
		Code:      code,
		Name:      name,
		Metrics:   metrics,
		Adj:       adjSet,
		Distances: make(map[string]int),
	}
}

// IsAdjacent reports whether other borders this region.
func (r *Region) IsAdjacent(other *Region) bool {
	_, ok := r.Adj[other.Code]
	return ok
}

func (r *Region) String() string { return r.Code }

// MetricRef identifies a metric either by name or by its index into a
// RegionGraph's ordered metric-name list — spec's "metricID may be the
// metric name or its index".
type MetricRef struct {
	name    string
	index   int
	byIndex bool
}

// MetricByName builds a MetricRef that resolves by metric name.
func MetricByName(name string) MetricRef { return MetricRef{name: name} }

// MetricByIndex builds a MetricRef that resolves by position in the graph's
// ordered metric list.
func MetricByIndex(i int) MetricRef { return MetricRef{index: i, byIndex: true} }

// RegionGraph is the immutable set of all regions plus the ordered list of
// metric names known across them.
type RegionGraph struct {
	regions     map[string]*Region
	metricNames []string
}

var errNoRegions = errors.New("region graph has no regions")

// NewRegionGraph builds a graph from a list of regions and the ordered metric
// names they carry. Adjacency codes referring to regions absent from regions
// are rejected, matching the original's debugCheckForMissingEntries concern.
func NewRegionGraph(regions []*Region, metricNames []string) (*RegionGraph, error) {
	if len(regions) == 0 {
		return nil, errNoRegions
	}

	m := make(map[string]*Region, len(regions))
	for _, r := range regions {
		m[r.Code] = r
	}

	for _, r := range regions {
		for adjCode := range r.Adj {
			if _, ok := m[adjCode]; !ok {
				return nil, fmt.Errorf("%w: %s references unknown adjacent region %s", types.ErrRegionNotFound, r.Code, adjCode)
			}
		}
	}

	names := make([]string, len(metricNames))
	copy(names, metricNames)

	return &RegionGraph{regions: m, metricNames: names}, nil
}

// Get returns the region with the given code.
func (g *RegionGraph) Get(code string) (*Region, bool) {
	r, ok := g.regions[code]
	return r, ok
}

// All returns every region in the graph, ordered by code for determinism.
func (g *RegionGraph) All() []*Region {
	out := make([]*Region, 0, len(g.regions))
	for _, r := range g.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of regions in the graph.
func (g *RegionGraph) Len() int { return len(g.regions) }

// MetricNames returns the graph's ordered metric-name list.
func (g *RegionGraph) MetricNames() []string {
	out := make([]string, len(g.metricNames))
	copy(out, g.metricNames)
	return out
}

// ResolveMetric resolves a MetricRef to a concrete metric name known to the graph.
func (g *RegionGraph) ResolveMetric(ref MetricRef) (string, error) {
	if ref.byIndex {
		if ref.index < 0 || ref.index >= len(g.metricNames) {
			return "", fmt.Errorf("%w: index %d", types.ErrUnknownMetric, ref.index)
		}
		return g.metricNames[ref.index], nil
	}
	for _, name := range g.metricNames {
		if name == ref.name {
			return ref.name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", types.ErrUnknownMetric, ref.name)
}
