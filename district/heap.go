package district

import "container/heap"

// Heap orders Districts by (metric, index) so the solver's "smallest
// district" lookup (spec's getMinDistrict phase) is O(log n) instead of a
// linear scan, per the design notes' "ordered smallest-district lookup"
// suggestion.
type Heap []*District

func (h Heap) Len() int { return len(h) }

func (h Heap) Less(i, j int) bool {
	if h[i].Metric != h[j].Metric {
		return h[i].Metric < h[j].Metric
	}
	return h[i].Index < h[j].Index
}

func (h Heap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *Heap) Push(x any) {
	d := x.(*District)
	d.heapIndex = len(*h)
	*h = append(*h, d)
}

func (h *Heap) Pop() any {
	old := *h
	n := len(old)
	d := old[n-1]
	old[n-1] = nil
	d.heapIndex = -1
	*h = old[:n-1]
	return d
}

// NewHeap builds a Heap from districts and establishes the heap invariant.
func NewHeap(districts []*District) *Heap {
	h := make(Heap, len(districts))
	copy(h, districts)
	for i, d := range h {
		d.heapIndex = i
	}
	heap.Init(&h)
	return &h
}

// Min returns the district with the smallest metric without removing it.
func (h *Heap) Min() *District {
	if len(*h) == 0 {
		return nil
	}
	return (*h)[0]
}

// Fix re-establishes heap order for d after its metric has changed.
func (h *Heap) Fix(d *District) {
	if d.heapIndex >= 0 {
		heap.Fix(h, d.heapIndex)
	}
}
