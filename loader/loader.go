// Package loader reads the four on-disk inputs the districting solver is
// built from — adjacency, region metrics, inter-region distances, and a
// name table. It does not build the region.RegionGraph itself; callers
// (cmd/districter) assemble the graph from what these functions return.
package loader

import "errors"

// Well-known file names within a data directory.
const (
	AdjacencyFile  = "adjacency.csv"
	RegionDataFile = "data.tsv"
	DistanceFile   = "distance.csv"
	NameTableFile  = "names.csv"
)

// Common errors.
var (
	ErrDataDirNotFound = errors.New("data directory not found")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidCSV      = errors.New("invalid CSV format")
	ErrInvalidTSV      = errors.New("invalid TSV format")
)

const totalRowCode = "Total"
