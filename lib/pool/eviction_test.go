package pool

import (
	"testing"

	"github.com/NoteDance/Pool/lib/rl"
)

// testExp builds an experience whose state identifies its append order
func testExp(i int) rl.Experience[int, int] {
	return rl.Experience[int, int]{
		State:     i,
		Action:    i % 2,
		NextState: i + 1,
		Reward:    float64(i),
		Done:      false,
	}
}

// appendAndEvict runs the registry append path against a bare partition and
// returns the observed length after each append
func appendAndEvict(policy EvictionPolicy, capacity, appends int) (*partition[int, int], []int) {
	p := &partition[int, int]{}
	lengths := make([]int, 0, appends)
	for i := 0; i < appends; i++ {
		p.append(testExp(i))
		applyEviction(policy, p, capacity)
		lengths = append(lengths, p.length())
	}
	return p, lengths
}

func equalInts(a, b []int) bool {
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

func TestEvictionNone(t *testing.T) {
	// capacity 5, default policy: overflow removes exactly the single
	// oldest sample, stabilizing at capacity
	p, lengths := appendAndEvict(EvictionPolicy{Mode: EvictNone}, 5, 6)

	want := []int{1, 2, 3, 4, 5, 5}
	if !equalInts(lengths, want) {
		t.Errorf("Expected lengths %v, got %v", want, lengths)
	}

	// the removed element was the oldest: the front is now the 2nd append
	if p.states[0] != 1 {
		t.Errorf("Expected oldest surviving state 1, got %d", p.states[0])
	}
}

func TestEvictionSlidingWindow(t *testing.T) {
	// capacity 5, window 3: the 6th append exceeds capacity and truncates
	// to the most recent 3 samples
	policy := EvictionPolicy{Mode: EvictSlidingWindow, WindowSize: 3}
	p, lengths := appendAndEvict(policy, 5, 6)

	want := []int{1, 2, 3, 4, 5, 3}
	if !equalInts(lengths, want) {
		t.Errorf("Expected lengths %v, got %v", want, lengths)
	}

	// recency preserved: the three most recent samples survive
	if !equalInts(p.states, []int{3, 4, 5}) {
		t.Errorf("Expected surviving states [3 4 5], got %v", p.states)
	}
}

func TestEvictionPeriodicClear(t *testing.T) {
	// every 3rd append removes the 2 oldest samples, independent of
	// capacity
	policy := EvictionPolicy{Mode: EvictPeriodicClear, ClearingFreq: 3, ClearWindow: 2}
	_, lengths := appendAndEvict(policy, 100, 7)

	want := []int{1, 2, 1, 2, 3, 2, 3}
	if !equalInts(lengths, want) {
		t.Errorf("Expected lengths %v, got %v", want, lengths)
	}
}

func TestEvictionPeriodicClearShortPartition(t *testing.T) {
	// a clear larger than the partition removes everything, not more
	policy := EvictionPolicy{Mode: EvictPeriodicClear, ClearingFreq: 2, ClearWindow: 10}
	_, lengths := appendAndEvict(policy, 100, 4)

	want := []int{1, 0, 1, 0}
	if !equalInts(lengths, want) {
		t.Errorf("Expected lengths %v, got %v", want, lengths)
	}
}

func TestEvictionSlidingWindowCapacityIndependence(t *testing.T) {
	// the window only triggers beyond capacity: below it nothing is evicted
	policy := EvictionPolicy{Mode: EvictSlidingWindow, WindowSize: 2}
	_, lengths := appendAndEvict(policy, 10, 5)

	want := []int{1, 2, 3, 4, 5}
	if !equalInts(lengths, want) {
		t.Errorf("Expected lengths %v, got %v", want, lengths)
	}
}

func TestEvictionRemovedCount(t *testing.T) {
	p := &partition[int, int]{}
	policy := EvictionPolicy{Mode: EvictSlidingWindow, WindowSize: 3}

	removed := 0
	for i := 0; i < 6; i++ {
		p.append(testExp(i))
		removed += applyEviction(policy, p, 5)
	}

	// 6 appended, 3 held
	if removed != 3 {
		t.Errorf("Expected 3 removed samples, got %d", removed)
	}
}
