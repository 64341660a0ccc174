// Package h3grid builds a region.RegionGraph directly from an H3 polygon
// fill, a second input modality alongside loader's CSV/TSV files: the same
// solver can partition a hex-tiled area without a pre-supplied adjacency
// CSV, as long as a metric function can assign each cell a value.
package h3grid

import (
	"fmt"
	"sort"

	"github.com/politic-in/districting/h3utils"
	"github.com/politic-in/districting/region"
	"github.com/politic-in/districting/types"
)

// MetricFunc assigns metric values to an H3 cell. The returned map's keys
// become the RegionGraph's metric names; every cell must report the same
// set of keys.
type MetricFunc func(cellID string) map[string]int

// BuildGraph fills polygon with H3 cells at resolution and returns a
// region.RegionGraph whose adjacency comes from h3utils.GetNeighbors and
// whose Distances come from h3utils.DistanceInCells computed pairwise across
// every cell in the fill — no BFS fallback, since the H3 grid distance
// function already gives an exact hop count between any two cells.
func BuildGraph(polygon types.GeoPolygon, resolution int, metricFn MetricFunc) (*region.RegionGraph, error) {
	if !polygon.IsValid() {
		return nil, fmt.Errorf("%w: polygon needs at least 3 exterior points", types.ErrInvalidLocation)
	}

	ring := make([][2]float64, len(polygon.ExteriorRing))
	for i, pt := range polygon.ExteriorRing {
		ring[i] = [2]float64{pt.Lat, pt.Lng}
	}

	cellIDs, err := h3utils.PolygonToCells(ring, resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidLocation, err)
	}
	if len(cellIDs) == 0 {
		return nil, fmt.Errorf("%w: polygon fill produced no cells at resolution %d", types.ErrEmptyGraph, resolution)
	}
	sort.Strings(cellIDs)

	cellSet := make(map[string]struct{}, len(cellIDs))
	for _, id := range cellIDs {
		cellSet[id] = struct{}{}
	}

	var metricNames []string
	regions := make([]*region.Region, 0, len(cellIDs))
	for _, id := range cellIDs {
		metrics := metricFn(id)
		if metricNames == nil {
			metricNames = sortedKeys(metrics)
		}

		neighbors, err := h3utils.GetNeighbors(id)
		if err != nil {
			return nil, fmt.Errorf("neighbors of %s: %w", id, err)
		}

		var adj []string
		for _, n := range neighbors {
			if _, inFill := cellSet[n]; inFill {
				adj = append(adj, n)
			}
		}

		r := region.NewRegion(id, id, metrics, adj)
		regions = append(regions, r)
	}

	for i, r := range regions {
		for j := i + 1; j < len(regions); j++ {
			other := regions[j]
			dist, err := h3utils.DistanceInCells(r.Code, other.Code)
			if err != nil || dist <= 0 {
				continue
			}
			r.Distances[other.Code] = dist
			other.Distances[r.Code] = dist
		}
	}

	return region.NewRegionGraph(regions, metricNames)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
