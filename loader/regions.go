package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RegionRecord is one row of region data: a code and its metric values,
// keyed by metric name.
type RegionRecord struct {
	Code    string
	Metrics map[string]int
}

// LoadRegionData reads the region TSV: a header row whose first column is
// "Region" and whose remaining columns are metric names, followed by one
// row per region. Values may carry thousands-grouping commas. A row whose
// code is "Total" is skipped. The returned metric names preserve the
// header's column order.
func LoadRegionData(dataDir string) ([]RegionRecord, []string, error) {
	path := filepath.Join(dataDir, RegionDataFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: missing header: %v", ErrInvalidTSV, path, err)
	}

	codeCol := -1
	for i, col := range header {
		if col == "Region" {
			codeCol = i
			break
		}
	}
	if codeCol == -1 {
		return nil, nil, fmt.Errorf("%w: %s: no Region column in header", ErrInvalidTSV, path)
	}

	metricNames := make([]string, 0, len(header)-1)
	for i, col := range header {
		if i != codeCol {
			metricNames = append(metricNames, col)
		}
	}

	var records []RegionRecord
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrInvalidTSV, path, err)
		}

		code := row[codeCol]
		if code == totalRowCode {
			continue
		}

		metrics := make(map[string]int, len(metricNames))
		for i, col := range header {
			if i == codeCol || i >= len(row) {
				continue
			}
			value, err := parseMetricValue(row[i])
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s: %s column for %s: %v", ErrInvalidTSV, path, col, code, err)
			}
			metrics[col] = value
		}

		records = append(records, RegionRecord{Code: code, Metrics: metrics})
	}

	return records, metricNames, nil
}

func parseMetricValue(raw string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, nil
	}
	return strconv.Atoi(cleaned)
}
