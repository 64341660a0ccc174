package solver

import (
	"testing"

	"github.com/politic-in/districting/region"
)

func TestCanAddToDistrict_ShortCircuitsWhenNoFailures(t *testing.T) {
	graph := buildChainGraph(t, 2)
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r0, _ := graph.Get("R0")

	if !s.canAddToDistrict(r0, s.districts[0], true, false) {
		t.Error("with an empty failure cache and onlyFailures set, any region should be accepted")
	}
}

func TestGetLargestUnplacedFor_PrefersClosest(t *testing.T) {
	graph := buildChainGraph(t, 4) // R0-R1-R2-R3
	s, err := New(graph, region.MetricByName("pop"), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r0, _ := graph.Get("R0")
	d := s.districts[0]
	s.place(r0, d)

	got, ok := s.getLargestUnplacedFor(d)
	if !ok {
		t.Fatal("expected a candidate to grow into")
	}
	if got.Code != "R1" {
		t.Errorf("expected R1 (only region bordering the district), got %s", got.Code)
	}
}

func TestGetNextStarter_FallsBackToLargestWhenNothingPlaced(t *testing.T) {
	graph := buildChainGraph(t, 4, 5, 20, 15, 10) // R0=5, R1=20, R2=15, R3=10
	s, err := New(graph, region.MetricByName("pop"), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	d := s.heap.Min()
	got, ok := s.getNextStarter(d)
	if !ok {
		t.Fatal("expected a starter region")
	}
	if got.Code != "R1" {
		t.Errorf("with nothing placed yet, every candidate is unreachable and the fallback should pick the largest metric (R1), got %s", got.Code)
	}
}
