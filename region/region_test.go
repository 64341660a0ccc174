package region

import (
	"errors"
	"testing"

	"github.com/politic-in/districting/types"
)

func buildTestGraph(t *testing.T) *RegionGraph {
	t.Helper()
	a := NewRegion("A", "Alpha", map[string]int{"pop": 10}, []string{"B"})
	b := NewRegion("B", "Beta", map[string]int{"pop": 20}, []string{"A", "C"})
	c := NewRegion("C", "Gamma", map[string]int{"pop": 30}, []string{"B"})

	g, err := NewRegionGraph([]*Region{a, b, c}, []string{"pop"})
	if err != nil {
		t.Fatalf("NewRegionGraph: %v", err)
	}
	return g
}

func TestNewRegionGraph_UnknownAdjacency(t *testing.T) {
	a := NewRegion("A", "Alpha", map[string]int{"pop": 10}, []string{"Z"})
	_, err := NewRegionGraph([]*Region{a}, []string{"pop"})
	if !errors.Is(err, types.ErrRegionNotFound) {
		t.Fatalf("expected ErrRegionNotFound, got %v", err)
	}
}

func TestNewRegionGraph_Empty(t *testing.T) {
	if _, err := NewRegionGraph(nil, []string{"pop"}); err == nil {
		t.Fatal("expected error for empty region list")
	}
}

func TestRegionGraph_GetAndAll(t *testing.T) {
	g := buildTestGraph(t)

	if _, ok := g.Get("A"); !ok {
		t.Fatal("expected to find region A")
	}
	if _, ok := g.Get("Q"); ok {
		t.Fatal("did not expect to find region Q")
	}

	all := g.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Fatal("All() should be sorted by code")
		}
	}
}

func TestRegionGraph_ResolveMetric(t *testing.T) {
	g := buildTestGraph(t)

	name, err := g.ResolveMetric(MetricByName("pop"))
	if err != nil || name != "pop" {
		t.Fatalf("ResolveMetric(byName) = %q, %v", name, err)
	}

	name, err = g.ResolveMetric(MetricByIndex(0))
	if err != nil || name != "pop" {
		t.Fatalf("ResolveMetric(byIndex) = %q, %v", name, err)
	}

	if _, err := g.ResolveMetric(MetricByIndex(5)); !errors.Is(err, types.ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric for out-of-range index, got %v", err)
	}

	if _, err := g.ResolveMetric(MetricByName("nope")); !errors.Is(err, types.ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric for unknown name, got %v", err)
	}
}

func TestRegion_IsAdjacent(t *testing.T) {
	g := buildTestGraph(t)
	a, _ := g.Get("A")
	b, _ := g.Get("B")
	c, _ := g.Get("C")

	if !a.IsAdjacent(b) {
		t.Error("expected A adjacent to B")
	}
	if a.IsAdjacent(c) {
		t.Error("did not expect A adjacent to C")
	}
}
