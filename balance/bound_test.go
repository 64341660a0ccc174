package balance

import "testing"

func TestMaxAcceptable_SingleDistrict(t *testing.T) {
	if got := MaxAcceptable(1000, 1, 200); got != 1000 {
		t.Errorf("single district has no std dev bound, expected sum itself: got %d", got)
	}
}

func TestMaxAcceptable_TwoDistricts(t *testing.T) {
	// For n=2 the (1, n-1) split degenerates to an even split; the target
	// bound is mean + sum/200 (0.5% of the sum each side of the mean).
	sum := 100000
	got := MaxAcceptable(sum, 2, 1)
	want := sum/2 + sum/200
	if diff := got - want; diff < -1 || diff > 1 {
		t.Errorf("MaxAcceptable(%d, 2, 1) = %d, want ~%d", sum, got, want)
	}
}

func TestMaxAcceptable_FloorsAtLargestRegion(t *testing.T) {
	// A single region bigger than the computed bound must win.
	got := MaxAcceptable(1000, 4, 900)
	if got < 900 {
		t.Errorf("expected bound to be at least the largest region's metric, got %d", got)
	}
}

func TestMaxAcceptable_ShrinksWithDistrictCount(t *testing.T) {
	sum := 1000000
	small := MaxAcceptable(sum, 3, 1)
	large := MaxAcceptable(sum, 30, 1)
	if large >= small {
		t.Errorf("expected bound to shrink as district count grows: n=3 -> %d, n=30 -> %d", small, large)
	}
}
