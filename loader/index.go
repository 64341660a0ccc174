package loader

import (
	"sync"

	"github.com/politic-in/districting/region"
)

// RegionIndex provides concurrent-safe O(1) lookup of regions by code or by
// display name, separate from the RegionGraph's own code-keyed map so
// callers (a CLI's name-matching flag, an HTTP handler) don't need to hold
// a reference to the graph to resolve user input.
type RegionIndex struct {
	mu     sync.RWMutex
	byCode map[string]*region.Region
	byName map[string][]*region.Region
	names  map[string]string // code -> display name
}

// NewRegionIndex builds an index over every region in graph, using names
// (code -> display name) for the name-based lookup. Regions without an
// entry in names are indexed under their own code.
func NewRegionIndex(graph *region.RegionGraph, names map[string]string) *RegionIndex {
	idx := &RegionIndex{
		byCode: make(map[string]*region.Region),
		byName: make(map[string][]*region.Region),
		names:  make(map[string]string),
	}
	idx.Rebuild(graph, names)
	return idx
}

// Rebuild replaces the index contents in place, under write lock.
func (idx *RegionIndex) Rebuild(graph *region.RegionGraph, names map[string]string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.byCode = make(map[string]*region.Region)
	idx.byName = make(map[string][]*region.Region)
	idx.names = make(map[string]string)

	for _, r := range graph.All() {
		idx.byCode[r.Code] = r

		display, ok := names[r.Code]
		if !ok {
			display = r.Code
		}
		idx.names[r.Code] = display
		idx.byName[display] = append(idx.byName[display], r)
	}
}

// ByCode returns the region with the given code.
func (idx *RegionIndex) ByCode(code string) (*region.Region, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	r, ok := idx.byCode[code]
	return r, ok
}

// ByName returns every region registered under the given display name.
// Multiple regions may share a display name; callers wanting a single best
// match should use namematch.Matcher instead.
func (idx *RegionIndex) ByName(name string) []*region.Region {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	matches := idx.byName[name]
	out := make([]*region.Region, len(matches))
	copy(out, matches)
	return out
}

// DisplayName returns the human-readable name registered for code, falling
// back to the code itself if none was supplied.
func (idx *RegionIndex) DisplayName(code string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if name, ok := idx.names[code]; ok {
		return name
	}
	return code
}

// Len reports how many regions are indexed.
func (idx *RegionIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.byCode)
}
