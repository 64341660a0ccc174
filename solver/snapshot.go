package solver

import (
	"fmt"
	"sort"

	"github.com/politic-in/districting/region"
	"github.com/politic-in/districting/types"
)

// Snapshot is the serializable form of a Solver's placement state: the
// distance matrix and region graph are assumed to already be on disk and
// loaded independently, so only the placement decisions themselves travel.
type Snapshot struct {
	MetricName string
	NumDist    int
	Placements map[string]int // region code -> district index, 0 if unplaced
	Unplaced   []string       // region codes with no district yet
}

// Snapshot captures the solver's current placements as code-keyed pairs,
// suitable for storage or transmission. It carries no reference to the
// Region or District values themselves.
func (s *Solver) Snapshot() Snapshot {
	placements := make(map[string]int, len(s.order))
	for _, r := range s.order {
		placements[r.Code] = s.placementAt(r.Code)
	}

	unplaced := make([]string, 0, len(s.unplacedRegions))
	for code := range s.unplacedRegions {
		unplaced = append(unplaced, code)
	}
	sort.Strings(unplaced)

	return Snapshot{
		MetricName: s.metricName,
		NumDist:    len(s.districts),
		Placements: placements,
		Unplaced:   unplaced,
	}
}

// LoadSnapshot rebuilds a Solver against graph from a previously captured
// Snapshot. The unused-district forest is not itself serialized; it is
// reconstructed by replaying every placement through the normal place path,
// which leaves it exactly where a live solver that reached the same
// placements would have left it.
func LoadSnapshot(graph *region.RegionGraph, snap Snapshot) (*Solver, error) {
	if snap.NumDist < 1 {
		return nil, fmt.Errorf("%w: k=%d", types.ErrInvalidK, snap.NumDist)
	}

	st, err := newState(graph, snap.MetricName, snap.NumDist)
	if err != nil {
		return nil, err
	}

	for code, idx := range snap.Placements {
		if idx == 0 {
			continue
		}
		r, ok := graph.Get(code)
		if !ok {
			return nil, fmt.Errorf("%w: snapshot references %s", types.ErrRegionNotFound, code)
		}
		if idx < 1 || idx > len(st.districts) {
			return nil, fmt.Errorf("%w: snapshot district index %d for %s", types.ErrInvalidInput, idx, code)
		}
		st.place(r, st.districts[idx-1])
	}

	return &Solver{State: st}, nil
}
