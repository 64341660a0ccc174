package namematch

import (
	"errors"
	"testing"

	"github.com/politic-in/districting/region"
)

func testGraph(t *testing.T) *region.RegionGraph {
	t.Helper()
	regions := []*region.Region{
		region.NewRegion("A", "North Springfield", map[string]int{"pop": 10}, []string{"B"}),
		region.NewRegion("B", "South Springfield", map[string]int{"pop": 10}, []string{"A"}),
		region.NewRegion("C", "North Platte", map[string]int{"pop": 10}, nil),
	}
	graph, err := region.NewRegionGraph(regions, []string{"pop"})
	if err != nil {
		t.Fatalf("NewRegionGraph() error = %v", err)
	}
	return graph
}

func TestMatcher_ExactMatch(t *testing.T) {
	m := NewMatcher(testGraph(t))

	result, err := m.Match("North Springfield")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Code != "A" {
		t.Errorf("Code = %s, want A", result.Code)
	}
	if result.MatchType != "exact" {
		t.Errorf("MatchType = %s, want exact", result.MatchType)
	}
}

func TestMatcher_FuzzyMatch(t *testing.T) {
	m := NewMatcher(testGraph(t))

	result, err := m.Match("North Springfeild") // misspelled
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Code != "A" {
		t.Errorf("Code = %s, want A", result.Code)
	}
}

func TestMatcher_AbbreviationExpansion(t *testing.T) {
	m := NewMatcher(testGraph(t))

	result, err := m.Match("N Platte")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Code != "C" {
		t.Errorf("Code = %s, want C", result.Code)
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher(testGraph(t))

	_, err := m.Match("Nonexistent Place Name Entirely")
	if err == nil {
		t.Fatal("expected an error for an unrelated query")
	}
}

func TestMatcher_EmptyInput(t *testing.T) {
	m := NewMatcher(testGraph(t))

	if _, err := m.Match(""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestMatcher_NoRegionsLoaded(t *testing.T) {
	m := NewMatcherWithConfig(&region.RegionGraph{}, DefaultMatcherConfig())
	if _, err := m.Match("anything"); !errors.Is(err, ErrNoRegionsLoaded) {
		t.Fatalf("error = %v, want ErrNoRegionsLoaded", err)
	}
}

func TestMatcher_MatchWithCandidates_Limit(t *testing.T) {
	m := NewMatcher(testGraph(t))

	results, err := m.MatchWithCandidates("Springfield", 1)
	if err != nil {
		t.Fatalf("MatchWithCandidates() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
}

func TestMatcher_AddRegion(t *testing.T) {
	m := NewMatcher(testGraph(t))
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}

	m.AddRegion("D", "East Springfield")
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 after AddRegion", m.Len())
	}

	result, err := m.Match("East Springfield")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Code != "D" {
		t.Errorf("Code = %s, want D", result.Code)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Saint   Louis  ": "saint louis",
		"St. Louis":         "street louis",
		"N Dakota":          "north dakota",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhoneticEncode(t *testing.T) {
	a := PhoneticEncode("Smith")
	b := PhoneticEncode("Smyth")
	if a != b {
		t.Errorf("PhoneticEncode(Smith)=%s PhoneticEncode(Smyth)=%s, want equal", a, b)
	}
	if PhoneticEncode("") != "" {
		t.Error("PhoneticEncode(\"\") should be empty")
	}
}
