package loader

import "testing"

func TestValidate(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		adj := map[string][]string{
			"A": {"B"},
			"B": {"A"},
		}
		records := []RegionRecord{
			{Code: "A", Metrics: map[string]int{"pop": 1}},
			{Code: "B", Metrics: map[string]int{"pop": 1}},
		}
		names := map[string]string{"A": "Alpha", "B": "Beta"}

		report := Validate(adj, records, names)
		if !report.Clean() {
			t.Fatalf("expected clean report, got %+v", report)
		}
	})

	t.Run("neighbor missing region data", func(t *testing.T) {
		adj := map[string][]string{
			"A": {"B", "C"}, // C never gets its own row
		}
		records := []RegionRecord{
			{Code: "A", Metrics: map[string]int{"pop": 1}},
			{Code: "B", Metrics: map[string]int{"pop": 1}},
		}
		names := map[string]string{"A": "Alpha", "B": "Beta"}

		report := Validate(adj, records, names)
		if report.Clean() {
			t.Fatal("expected unclean report")
		}
		if len(report.MissingFromRegionData) != 1 || report.MissingFromRegionData[0] != "C" {
			t.Fatalf("MissingFromRegionData = %v, want [C]", report.MissingFromRegionData)
		}
	})

	t.Run("region with no adjacency row is an island, reported and marks the report unclean", func(t *testing.T) {
		adj := map[string][]string{
			"A": {},
		}
		records := []RegionRecord{
			{Code: "A", Metrics: map[string]int{"pop": 1}},
			{Code: "I", Metrics: map[string]int{"pop": 1}},
		}
		names := map[string]string{"A": "Alpha", "I": "Isolate"}

		report := Validate(adj, records, names)
		if report.Clean() {
			t.Fatal("expected unclean report: I has no adjacency row")
		}
		if len(report.MissingFromAdjacency) != 1 || report.MissingFromAdjacency[0] != "I" {
			t.Fatalf("MissingFromAdjacency = %v, want [I]", report.MissingFromAdjacency)
		}
	})

	t.Run("missing name table entry never affects Clean", func(t *testing.T) {
		adj := map[string][]string{"A": {}}
		records := []RegionRecord{{Code: "A", Metrics: map[string]int{"pop": 1}}}
		names := map[string]string{}

		report := Validate(adj, records, names)
		if !report.Clean() {
			t.Fatal("missing display name should not mark the report unclean")
		}
		if len(report.MissingFromNameTable) != 1 || report.MissingFromNameTable[0] != "A" {
			t.Fatalf("MissingFromNameTable = %v, want [A]", report.MissingFromNameTable)
		}
	})
}
