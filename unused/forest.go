// Package unused maintains the "unused-district forest": the partition of
// regions not yet assigned to a real district into provisional (index-0)
// districts, one per connected component of what remains. It exists purely
// to make enclosure detection (spec's addUnusedDistricts) and disconnected-
// region handling fast — it carries no metric budget of its own.
package unused

import (
	"github.com/politic-in/districting/district"
	"github.com/politic-in/districting/region"
)

// Forest is the current set of provisional districts covering every
// unplaced region exactly once.
type Forest struct {
	districts []*district.District
}

// Build groups regions into provisional districts, one per connected
// component of the adjacency restricted to regions, following the style of
// a breadth-first connected-components scan: pick an unvisited region, pull
// in everything reachable through it that's still in the pool, repeat.
func Build(regions []*region.Region) *Forest {
	pool := make(map[string]*region.Region, len(regions))
	for _, r := range regions {
		pool[r.Code] = r
	}

	f := &Forest{}
	for len(pool) > 0 {
		var seed *region.Region
		for _, r := range pool {
			seed = r
			break
		}

		d := district.New(0, "", 0)
		d.AddRegion(seed)
		delete(pool, seed.Code)

		queue := []*region.Region{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for adjCode := range cur.Adj {
				next, ok := pool[adjCode]
				if !ok {
					continue
				}
				d.AddRegion(next)
				delete(pool, adjCode)
				queue = append(queue, next)
			}
		}

		f.districts = append(f.districts, d)
	}
	return f
}

// Districts returns the forest's current provisional districts.
func (f *Forest) Districts() []*district.District {
	return f.districts
}

// IsDisconnected reports whether r belongs to a provisional district that has
// no adjacency to anything outside itself — an island with nowhere else to
// attach, which candidate selection treats as eligible for placement anywhere.
func (f *Forest) IsDisconnected(r *region.Region) bool {
	for _, d := range f.districts {
		if len(d.Adj) != 0 {
			continue
		}
		if _, ok := d.Regions[r.Code]; ok {
			return true
		}
	}
	return false
}

// OnPlace removes r from whichever provisional district holds it, having just
// been placed into a real district. If removing r disconnects that
// provisional district (r was its sole bridge), the district is re-split into
// fresh connected components over the regions that remain.
func (f *Forest) OnPlace(r *region.Region) {
	for i, d := range f.districts {
		if _, ok := d.Regions[r.Code]; !ok {
			continue
		}

		onlyConnection := !d.CanRemove(r)
		d.RemoveRegion(r)

		switch {
		case len(d.Regions) == 0:
			f.districts = append(f.districts[:i], f.districts[i+1:]...)
		case onlyConnection:
			remaining := make([]*region.Region, 0, len(d.Regions))
			for _, member := range d.Regions {
				remaining = append(remaining, member)
			}
			f.districts = append(f.districts[:i], f.districts[i+1:]...)
			f.districts = append(f.districts, Build(remaining).districts...)
		}
		return
	}
}

// OnUnplace adds r, just removed from a real district, back into the forest —
// joining an adjacent provisional district, starting a new one if it borders
// none, or merging several together if it bridges multiple.
func (f *Forest) OnUnplace(r *region.Region) {
	var adjacent []int
	for i, d := range f.districts {
		if _, ok := d.Adj[r.Code]; ok {
			adjacent = append(adjacent, i)
		}
	}

	switch len(adjacent) {
	case 0:
		d := district.New(0, "", 0)
		d.AddRegion(r)
		f.districts = append(f.districts, d)

	case 1:
		f.districts[adjacent[0]].AddRegion(r)

	default:
		// Merge: keep the largest adjacent district, fold the region and the
		// rest of the adjacent districts' members into it, drop the others.
		largest := adjacent[0]
		for _, i := range adjacent[1:] {
			if len(f.districts[i].Regions) > len(f.districts[largest].Regions) {
				largest = i
			}
		}

		keep := f.districts[largest]
		keep.AddRegion(r)

		drop := make(map[int]bool, len(adjacent)-1)
		for _, i := range adjacent {
			if i == largest {
				continue
			}
			drop[i] = true
			for _, member := range f.districts[i].Regions {
				keep.AddRegion(member)
			}
		}

		remaining := make([]*district.District, 0, len(f.districts)-len(drop))
		for i, d := range f.districts {
			if !drop[i] {
				remaining = append(remaining, d)
			}
		}
		f.districts = remaining
	}
}
