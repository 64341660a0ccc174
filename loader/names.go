package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoadNameTable reads the code-to-display-name table: a two-column CSV with
// header "code,name". Regions absent from this table fall back to their
// code as their display name (handled by callers, not here).
func LoadNameTable(dataDir string) (map[string]string, error) {
	path := filepath.Join(dataDir, NameTableFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: missing header: %v", ErrInvalidCSV, path, err)
	}

	codeCol, nameCol := -1, -1
	for i, col := range header {
		switch col {
		case "code":
			codeCol = i
		case "name":
			nameCol = i
		}
	}
	if codeCol == -1 || nameCol == -1 {
		return nil, fmt.Errorf("%w: %s: header must have \"code\" and \"name\" columns", ErrInvalidCSV, path)
	}

	names := make(map[string]string)
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCSV, path, err)
		}
		if codeCol >= len(row) || nameCol >= len(row) {
			continue
		}
		names[row[codeCol]] = row[nameCol]
	}

	return names, nil
}
