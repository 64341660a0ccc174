// Command districter is the minimal CLI driver for the districting solver:
// it loads the four on-disk inputs, runs the solver to completion, and
// prints the resulting assignment. The interactive map/HTTP wrapper that
// drives stepwise solving per client lives outside this module's scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/politic-in/districting/loader"
	"github.com/politic-in/districting/region"
	"github.com/politic-in/districting/solver"
)

func main() {
	dataDir := flag.String("data", ".", "directory containing adjacency.csv, data.tsv, distance.csv, names.csv")
	metricName := flag.String("metric", "", "metric name to balance districts on (defaults to the first metric column in data.tsv)")
	numDist := flag.Int("k", 2, "number of districts to partition into")
	maxSteps := flag.Int("max-steps", 0, "abort if not solved within this many steps (0 = unbounded)")
	flag.Parse()

	if *numDist < 1 {
		log.Fatalf("districter: -k must be >= 1, got %d", *numDist)
	}

	graph, err := loadGraph(*dataDir)
	if err != nil {
		log.Fatalf("districter: %v", err)
	}

	metric := region.MetricByIndex(0)
	if *metricName != "" {
		metric = region.MetricByName(*metricName)
	}

	s, err := solver.New(graph, metric, *numDist)
	if err != nil {
		log.Fatalf("districter: %v", err)
	}

	if err := s.Solve(*maxSteps); err != nil {
		log.Fatalf("districter: %v", err)
	}

	printAssignment(s)
	printSummary(s)
}

func loadGraph(dataDir string) (*region.RegionGraph, error) {
	adj, err := loader.LoadAdjacency(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading adjacency: %w", err)
	}

	records, metricNames, err := loader.LoadRegionData(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading region data: %w", err)
	}

	names, err := loader.LoadNameTable(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading name table: %w", err)
	}

	if report := loader.Validate(adj, records, names); !report.Clean() {
		for _, code := range report.MissingFromRegionData {
			log.Printf("districter: %s appears in adjacency.csv but has no row in data.tsv", code)
		}
		for _, code := range report.MissingFromAdjacency {
			log.Printf("districter: %s has no adjacency.csv row; it will load as an island", code)
		}
	}

	regions := make([]*region.Region, 0, len(records))
	for _, rec := range records {
		display := names[rec.Code]
		if display == "" {
			display = rec.Code
		}
		regions = append(regions, region.NewRegion(rec.Code, display, rec.Metrics, adj[rec.Code]))
	}

	graph, err := region.NewRegionGraph(regions, metricNames)
	if err != nil {
		return nil, fmt.Errorf("building region graph: %w", err)
	}

	if err := loader.LoadOrBuildDistances(dataDir, regions); err != nil {
		return nil, fmt.Errorf("loading distances: %w", err)
	}

	return graph, nil
}

func printAssignment(s *solver.Solver) {
	for _, row := range s.CurrentAssignment() {
		fmt.Printf("%-20s %-8s district %d  (%d)\n", row.Name, row.Code, row.DistrictIndex, row.Metric)
	}
}

func printSummary(s *solver.Solver) {
	fmt.Fprintf(os.Stderr, "\nsolved: %v   stddev: %.3f%%   elapsed: %.3fs   failures: %d\n",
		s.IsSolved(), s.StandardDeviationPercent(), s.ElapsedSeconds(), s.FailureCount())

	for tag, stat := range s.PhaseStats() {
		fmt.Fprintf(os.Stderr, "  %-16s %8.4fs  (%d calls)\n", tag, stat.Seconds, stat.Count)
	}
}
