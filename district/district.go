// Package district implements the growable, connectivity-aware districts the
// solver assigns regions into, plus an ordering structure over them.
package district

import "github.com/politic-in/districting/region"

// District is one of the k target partitions being built. Index 0 is
// reserved for provisional "unused" districts tracked by the unused package;
// those never accumulate a metric or overhead budget.
type District struct {
	Index   int
	Regions map[string]*region.Region
	// Adj maps a region code not yet in this district to the number of this
	// district's members that border it.
	Adj               map[string]int
	Metric            int
	RemainingOverhead int

	metricName string

	// heapIndex is maintained by Heap for O(log n) Fix after metric changes.
	heapIndex int
}

// New creates a district. metricName and maxAcceptable are ignored for the
// provisional index-0 districts (unused.Forest constructs those directly).
func New(index int, metricName string, maxAcceptable int) *District {
	return &District{
		Index:             index,
		Regions:           make(map[string]*region.Region),
		Adj:               make(map[string]int),
		RemainingOverhead: maxAcceptable,
		metricName:        metricName,
		heapIndex:         -1,
	}
}

// AddRegion adds a region to the district, updating its metric total,
// remaining overhead, and adjacency counts.
func (d *District) AddRegion(r *region.Region) {
	d.Regions[r.Code] = r

	if d.Index != 0 {
		d.Metric += r.Metrics[d.metricName]
		d.RemainingOverhead -= r.Metrics[d.metricName]
	}

	delete(d.Adj, r.Code)
	for adjCode := range r.Adj {
		if _, already := d.Regions[adjCode]; !already {
			d.Adj[adjCode]++
		}
	}
}

// RemoveRegion removes a region from the district, reversing AddRegion's
// bookkeeping. A no-op if the region is not a member.
func (d *District) RemoveRegion(r *region.Region) {
	if _, ok := d.Regions[r.Code]; !ok {
		return
	}
	delete(d.Regions, r.Code)

	if d.Index != 0 {
		d.Metric -= r.Metrics[d.metricName]
		d.RemainingOverhead += r.Metrics[d.metricName]
	}

	count := 0
	for adjCode := range r.Adj {
		if _, inDistrict := d.Regions[adjCode]; inDistrict {
			count++
		}
	}
	if count > 0 {
		d.Adj[r.Code] = count
	} else {
		delete(d.Adj, r.Code)
	}

	for adjCode := range r.Adj {
		if n, ok := d.Adj[adjCode]; ok {
			if n <= 1 {
				delete(d.Adj, adjCode)
			} else {
				d.Adj[adjCode] = n - 1
			}
		}
	}
}

// IsAdjacent reports whether r borders this district, or the district is
// still empty of any adjacency (the seed case).
func (d *District) IsAdjacent(r *region.Region) bool {
	if len(d.Adj) == 0 {
		return true
	}
	_, ok := d.Adj[r.Code]
	return ok
}

// CanAdd reports whether adding r would keep the district's metric within
// its balance bound. Provisional (index 0) districts accept anything.
func (d *District) CanAdd(r *region.Region) bool {
	return d.Index == 0 || d.RemainingOverhead >= r.Metrics[d.metricName]
}

// CanRemove reports whether removing r would keep the rest of the district
// connected. It checks connectivity only among the district members bordering
// r — a bounded scan, not a full BFS over the whole district — matching the
// original solver's canRemove.
func (d *District) CanRemove(r *region.Region) bool {
	var touching []*region.Region
	for code, member := range d.Regions {
		if code == r.Code {
			continue
		}
		if _, ok := r.Adj[code]; ok {
			touching = append(touching, member)
		}
	}
	if len(touching) == 0 {
		return true
	}

	n := len(touching)
	seed := touching[n-1]
	queue := []*region.Region{seed}
	touching = touching[:n-1]

	for len(queue) > 0 {
		seed = queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		for {
			idx := -1
			for i, candidate := range touching {
				if _, ok := seed.Adj[candidate.Code]; ok {
					idx = i
					break
				}
			}
			if idx == -1 {
				break
			}
			queue = append(queue, touching[idx])
			touching = append(touching[:idx], touching[idx+1:]...)
		}

		if len(touching) == 0 {
			return true
		}
	}
	return false
}
