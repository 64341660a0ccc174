// Package solver implements the greedy-with-backtracking districting search:
// it grows k connected districts over a region graph, balancing a chosen
// metric within balance.MaxAcceptable, backtracking through a failure cache
// and an unused-district forest whenever growth paints itself into a corner.
package solver

import (
	"fmt"
	"sort"

	"github.com/politic-in/districting/balance"
	"github.com/politic-in/districting/district"
	"github.com/politic-in/districting/region"
	"github.com/politic-in/districting/types"
	"github.com/politic-in/districting/unused"
)

// State holds everything one solver run mutates: the k real districts and
// their min-heap, the placement map and its ordered vector form (used for
// failure-cache hashing), the unused-district forest, and phase timing.
type State struct {
	graph      *region.RegionGraph
	metricName string

	districts []*district.District
	heap      *district.Heap

	maxAcceptable int

	// order is every region sorted by code, fixed for the life of a reset
	// cycle. placementVec mirrors it position-for-position and is what gets
	// hashed into the failure cache, matching the original's reliance on a
	// stable-iteration-order dict of placements.
	order        []*region.Region
	posOf        map[string]int
	placementVec []int

	placements      map[*region.Region]int
	placedRegions   []*region.Region
	unplacedRegions map[string]*region.Region

	forest   *unused.Forest
	failures *failureCache

	timing *timing

	inProgress bool
}

func newState(graph *region.RegionGraph, metricName string, numDist int) (*State, error) {
	if numDist < 1 {
		return nil, fmt.Errorf("%w: k=%d", types.ErrInvalidK, numDist)
	}

	all := graph.All()
	if len(all) == 0 {
		return nil, types.ErrEmptyGraph
	}

	sum := 0
	largest := 0
	for _, r := range all {
		v := r.Metrics[metricName]
		sum += v
		if v > largest {
			largest = v
		}
	}
	maxAcceptable := balance.MaxAcceptable(sum, numDist, largest)

	districts := make([]*district.District, numDist)
	for i := range districts {
		districts[i] = district.New(i+1, metricName, maxAcceptable)
	}

	order := make([]*region.Region, len(all))
	copy(order, all)
	posOf := make(map[string]int, len(order))
	placements := make(map[*region.Region]int, len(order))
	unplacedRegions := make(map[string]*region.Region, len(order))
	for i, r := range order {
		posOf[r.Code] = i
		placements[r] = 0
		unplacedRegions[r.Code] = r
	}

	return &State{
		graph:           graph,
		metricName:      metricName,
		districts:       districts,
		heap:            district.NewHeap(districts),
		maxAcceptable:   maxAcceptable,
		order:           order,
		posOf:           posOf,
		placementVec:    make([]int, len(order)),
		placements:      placements,
		unplacedRegions: unplacedRegions,
		forest:          unused.Build(all),
		failures:        newFailureCache(),
		timing:          newTiming(),
	}, nil
}

func (s *State) setPlacement(r *region.Region, idx int) {
	s.placements[r] = idx
	s.placementVec[s.posOf[r.Code]] = idx
}

func (s *State) placementAt(code string) int {
	return s.placementVec[s.posOf[code]]
}

func (s *State) isPlacedCode(code string) bool {
	return s.placementAt(code) > 0
}

// unplacedSorted returns the unplaced regions ordered by code, giving
// candidate-selection ties a deterministic, reproducible winner.
func (s *State) unplacedSorted() []*region.Region {
	out := make([]*region.Region, 0, len(s.unplacedRegions))
	for _, r := range s.unplacedRegions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func sortedMembers(members map[string]*region.Region) []*region.Region {
	out := make([]*region.Region, 0, len(members))
	for _, r := range members {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// place commits r to d: updates d's member/adjacency bookkeeping, moves r
// from unplaced to placed, records its placement index, and lets the unused
// forest drop r from whichever provisional district held it.
func (s *State) place(r *region.Region, d *district.District) {
	d.AddRegion(r)
	s.placedRegions = append(s.placedRegions, r)
	delete(s.unplacedRegions, r.Code)
	s.setPlacement(r, d.Index)
	s.forest.OnPlace(r)
	s.heap.Fix(d)
}

// unplace reverses place for r. If r is nil, the most recently placed
// region is popped instead (the stack-pop fallback smartUnplace falls back
// to when no reshuffle candidate exists).
func (s *State) unplace(r *region.Region) (*region.Region, *district.District) {
	if r == nil {
		n := len(s.placedRegions)
		r = s.placedRegions[n-1]
		s.placedRegions = s.placedRegions[:n-1]
	} else {
		for i, placed := range s.placedRegions {
			if placed == r {
				s.placedRegions = append(s.placedRegions[:i], s.placedRegions[i+1:]...)
				break
			}
		}
	}

	d := s.districts[s.placements[r]-1]
	d.RemoveRegion(r)
	s.unplacedRegions[r.Code] = r
	s.setPlacement(r, 0)
	s.forest.OnUnplace(r)
	s.heap.Fix(d)
	return r, d
}

// diffCalc is the second component of smartUnplace's sort key: the number of
// target's members bordering r, minus the number of r's neighbors in its
// current district.
func (s *State) diffCalc(r *region.Region, target *district.District) int {
	cur := s.districts[s.placements[r]-1]
	stillTouching := 0
	for adjCode := range r.Adj {
		if _, ok := cur.Regions[adjCode]; ok {
			stillTouching++
		}
	}
	return target.Adj[r.Code] - stillTouching
}

// unplaceSmarter targets the smallest district and looks for the placed
// region that would most usefully move there, falling back to popping the
// placement stack when no reshuffle candidate exists.
func (s *State) unplaceSmarter() (*region.Region, *district.District) {
	d := s.heap.Min()
	for {
		var best *region.Region
		var bestAdj, bestDiff, bestMetric int
		found := false

		for _, r := range s.placedRegions {
			cur := s.districts[s.placements[r]-1]
			if !s.canAddToDistrict(r, d, false, true) || !cur.CanRemove(r) {
				continue
			}
			adjCount := d.Adj[r.Code]
			diff := s.diffCalc(r, d)
			metric := r.Metrics[s.metricName]

			if !found ||
				adjCount > bestAdj ||
				(adjCount == bestAdj && diff > bestDiff) ||
				(adjCount == bestAdj && diff == bestDiff && metric > bestMetric) {
				best, bestAdj, bestDiff, bestMetric = r, adjCount, diff, metric
				found = true
			}
		}

		if !found {
			s.unplace(nil)
			d = s.heap.Min()
			continue
		}

		s.unplace(best)
		return best, d
	}
}

func (s *State) recordFailure() {
	s.failures.Add(s.placementVec)
}
