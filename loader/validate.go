package loader

import "sort"

// ValidationReport cross-references the codes seen across the adjacency,
// region-data, and name-table inputs, surfacing codes present in one but
// absent from another before the solver ever starts — a configuration
// error (spec §7), not a search failure.
type ValidationReport struct {
	// MissingFromRegionData lists codes that appear in the adjacency table
	// (as a row or as someone's neighbor) but have no region-data row.
	MissingFromRegionData []string
	// MissingFromAdjacency lists region-data codes with no adjacency row
	// of their own (they will load as islands, which may be intentional).
	MissingFromAdjacency []string
	// MissingFromNameTable lists region-data codes with no entry in the
	// name table (they fall back to their code as a display name).
	MissingFromNameTable []string
}

// Clean reports whether the report found nothing worth flagging besides
// missing display names, which are never fatal.
func (r ValidationReport) Clean() bool {
	return len(r.MissingFromRegionData) == 0 && len(r.MissingFromAdjacency) == 0
}

// Validate cross-checks the three code-keyed inputs loaded by this package,
// the Go equivalent of the original's debugCheckForMissingEntries ad-hoc
// script: a region referenced only as someone's adjacency-list neighbor but
// never given its own data row is almost always a typo in one of the input
// files, not a genuinely unreachable region.
func Validate(adj map[string][]string, records []RegionRecord, names map[string]string) ValidationReport {
	dataCodes := make(map[string]struct{}, len(records))
	for _, rec := range records {
		dataCodes[rec.Code] = struct{}{}
	}

	referenced := make(map[string]struct{})
	for code, neighbors := range adj {
		referenced[code] = struct{}{}
		for _, n := range neighbors {
			referenced[n] = struct{}{}
		}
	}

	var report ValidationReport
	for code := range referenced {
		if _, ok := dataCodes[code]; !ok {
			report.MissingFromRegionData = append(report.MissingFromRegionData, code)
		}
	}
	for code := range dataCodes {
		if _, ok := adj[code]; !ok {
			report.MissingFromAdjacency = append(report.MissingFromAdjacency, code)
		}
		if _, ok := names[code]; !ok {
			report.MissingFromNameTable = append(report.MissingFromNameTable, code)
		}
	}

	sort.Strings(report.MissingFromRegionData)
	sort.Strings(report.MissingFromAdjacency)
	sort.Strings(report.MissingFromNameTable)
	return report
}
