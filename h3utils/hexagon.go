// Package h3utils wraps uber/h3-go with a small subset of cell/latlng/boundary
// operations, trimmed from the full hexagon toolkit. The H3 grid loader
// (h3grid) calls PolygonToCells, GetNeighbors and DistanceInCells; the other
// helpers have no caller inside this module.
package h3utils

import (
	"errors"
	"fmt"

	"github.com/uber/h3-go/v4"
)

// Error definitions
var (
	ErrInvalidCellID     = errors.New("invalid H3 cell ID")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrInvalidPolygon    = errors.New("invalid polygon")
)

// Resolution bounds, per the H3 spec.
const (
	MinResolution = 0
	MaxResolution = 15
)

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

func cellFromString(cellID string) (h3.Cell, error) {
	var cell h3.Cell
	if err := cell.UnmarshalText([]byte(cellID)); err != nil {
		return 0, err
	}
	if !cell.IsValid() {
		return 0, fmt.Errorf("invalid cell")
	}
	return cell, nil
}

// LatLngToCellAtResolution converts lat/lng to an H3 cell at the given
// resolution.
func LatLngToCellAtResolution(lat, lng float64, resolution int) string {
	if resolution < MinResolution || resolution > MaxResolution {
		return ""
	}
	latLng := h3.NewLatLng(lat, lng)
	cell := h3.LatLngToCell(latLng, resolution)
	return cell.String()
}

// CellToLatLng returns the center of an H3 cell.
func CellToLatLng(cellID string) (lat, lng float64, err error) {
	cell, err := cellFromString(cellID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidCellID, cellID)
	}

	latLng := cell.LatLng()
	return latLng.Lat, latLng.Lng, nil
}

// GetNeighbors returns the immediate neighbors of a cell (k-ring with k=1,
// center excluded) — the adjacency relation h3grid.BuildGraph seeds region
// adjacency from.
func GetNeighbors(cellID string) ([]string, error) {
	cell, err := cellFromString(cellID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCellID, cellID)
	}

	disk := cell.GridDisk(1)
	result := make([]string, 0, len(disk)-1)
	for _, n := range disk {
		if n.String() != cellID {
			result = append(result, n.String())
		}
	}
	return result, nil
}

// DistanceInCells returns the grid distance between two cells.
func DistanceInCells(cellID1, cellID2 string) (int, error) {
	cell1, err := cellFromString(cellID1)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCellID, cellID1)
	}
	cell2, err := cellFromString(cellID2)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCellID, cellID2)
	}
	return h3.GridDistance(cell1, cell2), nil
}

// PolygonToCells fills a polygon (a slice of [lat, lng] pairs describing its
// exterior ring) with H3 cells at the given resolution.
func PolygonToCells(polygon [][2]float64, resolution int) ([]string, error) {
	if len(polygon) < 3 {
		return nil, ErrInvalidPolygon
	}
	if resolution < MinResolution || resolution > MaxResolution {
		return nil, ErrInvalidResolution
	}

	geoLoop := make([]h3.LatLng, len(polygon))
	for i, coord := range polygon {
		geoLoop[i] = h3.NewLatLng(coord[0], coord[1])
	}

	cells := h3.PolygonToCells(h3.GeoPolygon{GeoLoop: geoLoop}, resolution)

	result := make([]string, len(cells))
	for i, c := range cells {
		result[i] = c.String()
	}
	return result, nil
}

// GetCellBoundary returns the boundary vertices of a cell.
func GetCellBoundary(cellID string) ([]LatLng, error) {
	cell, err := cellFromString(cellID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCellID, cellID)
	}

	boundary := cell.Boundary()
	result := make([]LatLng, len(boundary))
	for i, ll := range boundary {
		result[i] = LatLng{Lat: ll.Lat, Lng: ll.Lng}
	}
	return result, nil
}
