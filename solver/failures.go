package solver

import (
	"encoding/binary"
	"hash/maphash"
)

// failureCache records placement vectors the solver has already tried and
// failed with, so the same dead end is never explored twice in one reset
// cycle. Vectors are hashed into buckets with hash/maphash and compared
// exactly on collision, rather than kept as a flat slice scanned linearly,
// since a run can accumulate many thousands of entries.
type failureCache struct {
	seed    maphash.Seed
	buckets map[uint64][][]int
	count   int
}

func newFailureCache() *failureCache {
	return &failureCache{
		seed:    maphash.MakeSeed(),
		buckets: make(map[uint64][][]int),
	}
}

func (c *failureCache) hash(vec []int) uint64 {
	var h maphash.Hash
	h.SetSeed(c.seed)
	var buf [8]byte
	for _, v := range vec {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Contains reports whether vec has already been recorded as a failure.
func (c *failureCache) Contains(vec []int) bool {
	bucket, ok := c.buckets[c.hash(vec)]
	if !ok {
		return false
	}
	for _, existing := range bucket {
		if intsEqual(existing, vec) {
			return true
		}
	}
	return false
}

// Add records vec as a failure, unless it is already present.
func (c *failureCache) Add(vec []int) {
	if c.Contains(vec) {
		return
	}
	h := c.hash(vec)
	cp := append([]int(nil), vec...)
	c.buckets[h] = append(c.buckets[h], cp)
	c.count++
}

// Len returns the number of distinct failure vectors recorded.
func (c *failureCache) Len() int { return c.count }

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
