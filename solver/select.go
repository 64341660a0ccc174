package solver

import (
	"math"
	"sort"

	"github.com/politic-in/districting/district"
	"github.com/politic-in/districting/region"
)

// canAddToDistrict reports whether r may join d. Unless onlyFailures, it
// first requires d to have room and either border r directly or (when
// allowDisconnected) have r sitting in an adjacency-free provisional
// district. It then tentatively records the placement and checks whether the
// resulting placement vector is a known dead end, restoring the prior
// placement before returning.
func (s *State) canAddToDistrict(r *region.Region, d *district.District, onlyFailures, allowDisconnected bool) bool {
	if !onlyFailures {
		eligible := d.CanAdd(r) && (d.IsAdjacent(r) || (allowDisconnected && s.forest.IsDisconnected(r)))
		if !eligible {
			return false
		}
	}

	if s.failures.Len() == 0 {
		return true
	}

	prior := s.placements[r]
	s.setPlacement(r, d.Index)
	isFailure := s.failures.Contains(s.placementVec)
	s.setPlacement(r, prior)
	return !isFailure
}

// distanceScore is the grow-path ranking key for adding r to d: the negated
// total hop-distance from r to d's current members, so smaller total
// distance ranks higher. An empty district has no members to measure
// against, so every candidate scores equally.
func (s *State) distanceScore(r *region.Region, d *district.District) float64 {
	if len(d.Regions) == 0 {
		return 1
	}
	sum := 0
	for code := range d.Regions {
		sum += r.Distances[code]
	}
	return -float64(sum)
}

// median returns the linearly-interpolated 50th percentile of vals, matching
// numpy's default percentile interpolation (the original computes its seed
// threshold with numpy.percentile(..., 50)).
func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	mid := float64(n-1) / 2
	lo := int(math.Floor(mid))
	hi := int(math.Ceil(mid))
	if lo == hi {
		return sorted[lo]
	}
	frac := mid - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// getLargestUnplacedAny returns the unplaced region with the largest metric,
// ignoring adjacency entirely — the seed path's last-resort fallback.
func (s *State) getLargestUnplacedAny() (*region.Region, bool) {
	unplaced := s.unplacedSorted()
	if len(unplaced) == 0 {
		return nil, false
	}
	best := unplaced[0]
	for _, r := range unplaced[1:] {
		if r.Metrics[s.metricName] > best.Metrics[s.metricName] {
			best = r
		}
	}
	return best, true
}

// getNextStarter implements the seed path (spec 4.5): among unplaced regions
// at or above the median unplaced metric that may join d, pick whichever has
// the greatest maximum graph-distance to any already-placed region, so new
// districts seed as far as possible from existing ones. Falls back to the
// largest unplaced region overall if no filtered candidate can reach any
// placed region at all.
func (s *State) getNextStarter(d *district.District) (*region.Region, bool) {
	unplaced := s.unplacedSorted()
	if len(unplaced) == 0 {
		return nil, false
	}

	metrics := make([]float64, len(unplaced))
	for i, r := range unplaced {
		metrics[i] = float64(r.Metrics[s.metricName])
	}
	threshold := median(metrics)

	type scored struct {
		r     *region.Region
		score float64
		has   bool
	}
	var candidates []scored
	for _, r := range unplaced {
		if float64(r.Metrics[s.metricName]) < threshold {
			continue
		}
		if !s.canAddToDistrict(r, d, false, true) {
			continue
		}
		maxDist := 0
		has := false
		for code, dist := range r.Distances {
			if s.isPlacedCode(code) {
				if !has || dist > maxDist {
					maxDist = dist
				}
				has = true
			}
		}
		candidates = append(candidates, scored{r, float64(maxDist), has})
	}

	anyReachable := false
	for _, c := range candidates {
		if c.has {
			anyReachable = true
			break
		}
	}
	if !anyReachable {
		return s.getLargestUnplacedAny()
	}

	var best scored
	found := false
	for _, c := range candidates {
		if !c.has {
			continue
		}
		if !found || c.score > best.score || (c.score == best.score && c.r.Metrics[s.metricName] > best.r.Metrics[s.metricName]) {
			best = c
			found = true
		}
	}
	return best.r, found
}

// getLargestUnplacedFor implements the grow path (spec 4.5): among unplaced
// regions that may join d, pick the one with the smallest total hop-distance
// to d's current members, breaking ties by larger metric.
func (s *State) getLargestUnplacedFor(d *district.District) (*region.Region, bool) {
	anyUnplacedNeighbor := false
	for adjCode := range d.Adj {
		if !s.isPlacedCode(adjCode) {
			anyUnplacedNeighbor = true
			break
		}
	}
	allowDisconnected := !anyUnplacedNeighbor

	var best *region.Region
	var bestScore float64
	var bestMetric int
	found := false

	for _, r := range s.unplacedSorted() {
		if !s.canAddToDistrict(r, d, false, allowDisconnected) {
			continue
		}
		score := s.distanceScore(r, d)
		metric := r.Metrics[s.metricName]
		if !found || score > bestScore || (score == bestScore && metric > bestMetric) {
			best, bestScore, bestMetric = r, score, metric
			found = true
		}
	}
	return best, found
}

// getNextRegion picks the next region/district pair to place, or reports
// selection failure. It also drives the phase-timing tags named in the
// spec's observability section.
func (s *State) getNextRegion() (*region.Region, *district.District, bool) {
	s.timing.Mark()
	d := s.heap.Min()
	s.timing.Record("getMinDistrict")

	if len(d.Adj) == 0 {
		if r, ok := s.getNextStarter(d); ok {
			s.timing.Record("getSeed")
			return r, d, true
		}
	}

	if r, ok := s.getLargestUnplacedFor(d); ok {
		s.timing.Record("getUnplaced")
		return r, d, true
	}

	s.timing.Record("selectFailed")
	s.recordFailure()
	return nil, nil, false
}

// addUnusedDistricts implements enclosure resolution (spec 4.6): any
// provisional district whose external adjacency is entirely contained in one
// real district's members is folded into it. Returns false the moment any
// region of such an enclosure fails canAddToDistrict(onlyFailures=true),
// signalling the whole step as a failure to the caller.
func (s *State) addUnusedDistricts() bool {
	forestDistricts := append([]*district.District(nil), s.forest.Districts()...)

	for _, ud := range forestDistricts {
		if len(ud.Adj) == 0 {
			continue
		}

		for _, d := range s.districts {
			if !adjSubsetOfMembers(ud.Adj, d.Regions) {
				continue
			}

			members := sortedMembers(ud.Regions)
			toPlace := make([]*region.Region, 0, len(members))
			for _, r := range members {
				if !s.canAddToDistrict(r, d, true, false) {
					return false
				}
				toPlace = append(toPlace, r)
			}
			for _, r := range toPlace {
				s.place(r, d)
			}
			break
		}
	}
	return true
}

func adjSubsetOfMembers(adj map[string]int, members map[string]*region.Region) bool {
	for code := range adj {
		if _, ok := members[code]; !ok {
			return false
		}
	}
	return true
}
