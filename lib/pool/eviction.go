package pool

import "fmt"

// --------------------------------------------------------------------------
// Eviction Modes
// --------------------------------------------------------------------------

// EvictionMode identifies the eviction policy variant of a pool.
type EvictionMode int

const (
	// EvictNone removes exactly the single oldest sample whenever an append
	// leaves a partition longer than its capacity.
	EvictNone EvictionMode = iota
	// EvictSlidingWindow truncates a partition to its most recent WindowSize
	// samples whenever an append leaves it longer than its capacity.
	EvictSlidingWindow
	// EvictPeriodicClear removes the oldest ClearWindow samples every
	// ClearingFreq appends, independent of capacity.
	EvictPeriodicClear
)

func (m EvictionMode) String() string {
	switch m {
	case EvictNone:
		return "None"
	case EvictSlidingWindow:
		return "SlidingWindow"
	case EvictPeriodicClear:
		return "PeriodicClear"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Eviction Policy
// --------------------------------------------------------------------------

// EvictionPolicy is the tagged policy variant selected once at construction
// and shared read-only by all partitions. Only the parameters belonging to
// the active mode are used.
type EvictionPolicy struct {
	Mode         EvictionMode
	WindowSize   int // sliding window: samples kept on overflow
	ClearingFreq int // periodic clear: appends between clears
	ClearWindow  int // periodic clear: oldest samples removed per clear
}

func (p EvictionPolicy) String() string {
	switch p.Mode {
	case EvictSlidingWindow:
		return fmt.Sprintf("SlidingWindow(%d)", p.WindowSize)
	case EvictPeriodicClear:
		return fmt.Sprintf("PeriodicClear(freq=%d, window=%d)", p.ClearingFreq, p.ClearWindow)
	default:
		return "None"
	}
}

// applyEviction bounds a partition immediately after an append and returns
// the number of samples removed. Truncation always removes from the front
// (oldest first), preserving recency.
//
// The periodic clear fires before the capacity check: the clear is driven
// purely by the partition's append counter, the capacity bound then applies
// to whatever is left.
//
// Thread-safety: This function is not synchronized - the caller serializes
// access to the partition.
func applyEviction[S, A any](policy EvictionPolicy, p *partition[S, A], capacity int) int {
	removed := 0

	// periodic clear, independent of capacity
	if policy.Mode == EvictPeriodicClear && p.appends%uint64(policy.ClearingFreq) == 0 {
		n := policy.ClearWindow
		if l := p.length(); n > l {
			n = l
		}
		p.dropFront(n)
		removed += n
	}

	// capacity bound
	if p.length() > capacity {
		if policy.Mode == EvictSlidingWindow {
			// truncate to the most recent WindowSize samples
			if n := p.length() - policy.WindowSize; n > 0 {
				p.dropFront(n)
				removed += n
			}
		} else {
			// remove exactly the single oldest sample
			p.dropFront(1)
			removed++
		}
	}

	return removed
}
