package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/politic-in/districting/region"
)

// LoadOrBuildDistances populates each region's Distances map from the
// distance-matrix CSV in dataDir. If the file is absent, it computes every
// region's hop distances via a per-region breadth-first search over the
// adjacency already present on regions, then writes the matrix back so the
// next run can skip the computation.
func LoadOrBuildDistances(dataDir string, regions []*region.Region) error {
	path := filepath.Join(dataDir, DistanceFile)
	byCode := make(map[string]*region.Region, len(regions))
	for _, r := range regions {
		byCode[r.Code] = r
	}

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		return readDistanceCSV(f, path, byCode)
	}
	if !os.IsNotExist(err) {
		return err
	}

	for _, r := range regions {
		r.Distances = bfsDistances(r, byCode)
	}
	return writeDistanceCSV(path, regions)
}

func readDistanceCSV(f *os.File, path string, byCode map[string]*region.Region) error {
	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%w: %s: missing header: %v", ErrInvalidCSV, path, err)
	}
	if len(header) == 0 || header[0] != "name" {
		return fmt.Errorf("%w: %s: expected \"name\" as the first column", ErrInvalidCSV, path)
	}
	codes := header[1:]

	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%w: %s: %v", ErrInvalidCSV, path, err)
		}

		name := row[0]
		r, ok := byCode[name]
		if !ok {
			continue
		}

		for i, code := range codes {
			col := i + 1
			if col >= len(row) || row[col] == "" {
				continue
			}
			dist, err := strconv.Atoi(row[col])
			if err != nil {
				return fmt.Errorf("%w: %s: %s->%s: %v", ErrInvalidCSV, path, name, code, err)
			}
			r.Distances[code] = dist
		}
	}
	return nil
}

func writeDistanceCSV(path string, regions []*region.Region) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, 0, len(regions)+1)
	header = append(header, "name")
	for _, r := range regions {
		header = append(header, r.Code)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range regions {
		row := make([]string, len(header))
		row[0] = r.Code
		for i, code := range header[1:] {
			if d, ok := r.Distances[code]; ok && d > 0 {
				row[i+1] = strconv.Itoa(d)
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// bfsDistances computes seed's hop distance to every region reachable
// through adjacency, excluding itself. Regions outside byCode are treated as
// absent and simply never reached.
func bfsDistances(seed *region.Region, byCode map[string]*region.Region) map[string]int {
	dist := map[string]int{seed.Code: 0}
	queue := []*region.Region{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for code := range cur.Adj {
			if _, seen := dist[code]; seen {
				continue
			}
			next, ok := byCode[code]
			if !ok {
				continue
			}
			dist[code] = dist[cur.Code] + 1
			queue = append(queue, next)
		}
	}

	delete(dist, seed.Code)
	return dist
}
