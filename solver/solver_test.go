package solver

import (
	"testing"

	"github.com/politic-in/districting/region"
)

func TestSolve_SingleDistrictAbsorbsWholeChain(t *testing.T) {
	graph := buildChainGraph(t, 6, 4, 7, 3, 9, 2, 5)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Solve(20); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !s.IsSolved() {
		t.Fatal("expected the single-district run to solve")
	}

	rows := s.CurrentAssignment()
	if len(rows) != 6 {
		t.Fatalf("expected all 6 regions placed, got %d rows", len(rows))
	}
	for _, row := range rows {
		if row.DistrictIndex != 1 {
			t.Errorf("expected every region in district 1, got %d for %s", row.DistrictIndex, row.Code)
		}
	}
}

func TestSolve_TwoDistrictsOverEvenChain(t *testing.T) {
	graph := buildChainGraph(t, 4, 10) // R0-R1-R2-R3, each metric 10
	s, err := New(graph, region.MetricByName("pop"), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Solve(100); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !s.IsSolved() {
		t.Fatal("expected the two-district run to solve")
	}

	for _, d := range s.districts {
		if d.Metric > s.maxAcceptable {
			t.Errorf("district %d metric %d exceeds bound %d", d.Index, d.Metric, s.maxAcceptable)
		}
		if len(d.Regions) == 0 {
			t.Errorf("district %d ended up empty", d.Index)
		}
	}
}

func TestIsSolved_RequiresAllPlacedAndWithinBound(t *testing.T) {
	graph := buildChainGraph(t, 3)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.IsSolved() {
		t.Fatal("a fresh solver with nothing placed should not be solved")
	}
}

func TestCurrentAssignment_SentinelWhenEmpty(t *testing.T) {
	graph := buildChainGraph(t, 2)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rows := s.CurrentAssignment()
	if len(rows) != 1 || rows[0].Code != "none" {
		t.Fatalf("expected a single sentinel row, got %+v", rows)
	}
}

func TestPhaseStats_RecordsPlaceAfterAStep(t *testing.T) {
	graph := buildChainGraph(t, 4)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.Step()

	stats := s.PhaseStats()
	place, ok := stats["place"]
	if !ok || place.Count < 1 {
		t.Fatalf("expected a recorded place phase after one Step, got %+v", stats)
	}
	if s.ElapsedSeconds() < 0 {
		t.Error("expected ElapsedSeconds to be non-negative after a step")
	}
}

func TestElapsedSeconds_NegativeBeforeAnyStep(t *testing.T) {
	graph := buildChainGraph(t, 2)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ElapsedSeconds() != -1 {
		t.Errorf("expected -1 before any step, got %f", s.ElapsedSeconds())
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	graph := buildChainGraph(t, 6, 4, 7, 3, 9, 2, 5)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.Step()
	s.Step()

	snap := s.Snapshot()
	reloaded, err := LoadSnapshot(graph, snap)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	want := s.CurrentAssignment()
	got := reloaded.CurrentAssignment()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows after reload, got %d", len(want), len(got))
	}

	index := make(map[string]AssignmentRow, len(want))
	for _, row := range want {
		index[row.Code] = row
	}
	for _, row := range got {
		wantRow, ok := index[row.Code]
		if !ok || wantRow.DistrictIndex != row.DistrictIndex {
			t.Errorf("mismatch for %s: got district %d, want %+v", row.Code, row.DistrictIndex, wantRow)
		}
	}
}
