package solver

import (
	"fmt"
	"math"

	"github.com/politic-in/districting/district"
	"github.com/politic-in/districting/region"
	"github.com/politic-in/districting/types"
)

// Solver grows k connected, metric-balanced districts over a region graph.
// A Solver is not safe for concurrent use; inProgress short-circuits
// accidental re-entry into Step but is not a lock.
type Solver struct {
	*State
}

// New builds a Solver targeting numDist districts balanced on the metric
// identified by metric (by name or by index into the graph's metric list).
func New(graph *region.RegionGraph, metric region.MetricRef, numDist int) (*Solver, error) {
	name, err := graph.ResolveMetric(metric)
	if err != nil {
		return nil, err
	}
	st, err := newState(graph, name, numDist)
	if err != nil {
		return nil, err
	}
	return &Solver{State: st}, nil
}

// Reset reinitializes the solver in place for a new metric/k combination
// over the same region graph, without discarding the Solver value itself.
func (s *Solver) Reset(metric region.MetricRef, numDist int) error {
	name, err := s.graph.ResolveMetric(metric)
	if err != nil {
		return err
	}
	st, err := newState(s.graph, name, numDist)
	if err != nil {
		return err
	}
	s.State = st
	return nil
}

// IsSolved reports whether every region is placed and every district's
// metric is within the balance bound.
func (s *Solver) IsSolved() bool {
	for _, v := range s.placementVec {
		if v <= 0 {
			return false
		}
	}
	for _, d := range s.districts {
		if d.Metric > s.maxAcceptable {
			return false
		}
	}
	return true
}

// StandardDeviationPercent returns 100 times the population standard
// deviation of the district metrics, divided by their sum (0 if the sum is
// zero).
func (s *Solver) StandardDeviationPercent() float64 {
	n := len(s.districts)
	if n == 0 {
		return 0
	}
	sum := 0
	metrics := make([]float64, n)
	for i, d := range s.districts {
		metrics[i] = float64(d.Metric)
		sum += d.Metric
	}
	if sum == 0 {
		return 0
	}
	mean := float64(sum) / float64(n)
	var variance float64
	for _, m := range metrics {
		variance += (m - mean) * (m - mean)
	}
	variance /= float64(n)
	return 100 * math.Sqrt(variance) / float64(sum)
}

// ElapsedSeconds returns the time since the first Step call, or -1 if Step
// has never run.
func (s *Solver) ElapsedSeconds() float64 {
	return s.timing.Elapsed()
}

// PhaseStat is the accumulated time and occurrence count for one named
// solver phase.
type PhaseStat struct {
	Seconds float64
	Count   int
}

// PhaseStats exposes the per-phase counters named in the spec's
// observability section (getMinDistrict, getSeed, getUnplaced, selectFailed,
// unplace, place, checkUnused). Display-only; never consulted by the solver
// itself.
func (s *Solver) PhaseStats() map[string]PhaseStat {
	out := make(map[string]PhaseStat, len(s.timing.seconds))
	for tag, secs := range s.timing.seconds {
		out[tag] = PhaseStat{Seconds: secs, Count: s.timing.count[tag]}
	}
	return out
}

// FailureCount returns the number of distinct placement dead ends recorded
// this reset cycle.
func (s *Solver) FailureCount() int { return s.failures.Len() }

// PlacedCount returns how many regions currently sit in a real district.
func (s *Solver) PlacedCount() int { return len(s.placedRegions) }

// AssignmentRow is one region's current placement, as currentAssignment
// reports it.
type AssignmentRow struct {
	Name          string
	Code          string
	DistrictIndex int
	Metric        int
}

// CurrentAssignment lists every placed region's (name, code, district index,
// metric) tuple, ordered by district then code. If nothing has been placed
// yet, it returns a single sentinel row rather than an empty slice.
func (s *Solver) CurrentAssignment() []AssignmentRow {
	var rows []AssignmentRow
	for _, d := range s.districts {
		for _, r := range sortedMembers(d.Regions) {
			rows = append(rows, AssignmentRow{
				Name:          r.Name,
				Code:          r.Code,
				DistrictIndex: d.Index,
				Metric:        r.Metrics[s.metricName],
			})
		}
	}
	if len(rows) == 0 {
		rows = append(rows, AssignmentRow{Name: "none", Code: "none"})
	}
	return rows
}

// Districts returns the solver's real districts, in index order.
func (s *Solver) Districts() []*district.District {
	out := make([]*district.District, len(s.districts))
	copy(out, s.districts)
	return out
}

// Step advances the search by one placement, per spec 4.8: pick the next
// region via candidate selection, falling back to a smart unplace on
// selection failure, then run enclosure resolution if every district now
// has external adjacency. A no-op if already solved or mid-step.
func (s *Solver) Step() {
	if s.inProgress {
		return
	}
	s.inProgress = true
	defer func() { s.inProgress = false }()

	s.timing.Mark()
	if s.IsSolved() {
		return
	}

	r, d, ok := s.getNextRegion()
	if !ok {
		r, d = s.unplaceSmarter()
		s.timing.Record("unplace")
	}

	s.place(r, d)
	s.timing.Record("place")

	allAdjacent := true
	for _, dd := range s.districts {
		if len(dd.Adj) == 0 {
			allAdjacent = false
			break
		}
	}
	if allAdjacent && !s.IsSolved() {
		if !s.addUnusedDistricts() {
			s.recordFailure()
		}
		s.timing.Record("checkUnused")
	}
}

// Solve steps until the search is solved. If maxSteps is positive, Solve
// aborts with an error after that many steps without reaching a solution;
// a non-positive maxSteps runs unbounded, matching the original's plain
// while-not-solved loop (spec notes termination is an input property, left
// to the driver to bound if it cares to).
func (s *Solver) Solve(maxSteps int) error {
	steps := 0
	for !s.IsSolved() {
		if maxSteps > 0 && steps >= maxSteps {
			return fmt.Errorf("%w: did not solve within %d steps", types.ErrOperationFailed, maxSteps)
		}
		s.Step()
		steps++
	}
	return nil
}
