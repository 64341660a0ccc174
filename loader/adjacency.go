package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoadAdjacency reads the adjacency CSV: one row per region, the first cell
// its code, the remaining cells the codes of directly bordering regions.
func LoadAdjacency(dataDir string) (map[string][]string, error) {
	path := filepath.Join(dataDir, AdjacencyFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows have a variable number of neighbors

	adj := make(map[string][]string)
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCSV, path, err)
		}
		if len(row) == 0 {
			continue
		}
		code := row[0]
		adj[code] = append([]string(nil), row[1:]...)
	}

	return adj, nil
}
