package pool

import (
	"github.com/NoteDance/Pool/lib/rl"
)

// --------------------------------------------------------------------------
// Partition (one worker slot of the pool)
// --------------------------------------------------------------------------

// partition is the columnar buffer for one worker slot: one ordered slice per
// experience field. All five slices are equal in length at every observable
// point; samples are only ever appended at the back and removed at the front.
//
// Thread-safety: A partition is not internally synchronized. The registry
// serializes concurrent access (or guarantees a single writer).
type partition[S, A any] struct {
	states     []S
	actions    []A
	nextStates []S
	rewards    []float64
	dones      []bool

	// appends counts every append to this partition, it drives the
	// periodic-clear policy
	appends uint64
}

// append adds one value to each of the five columns and increments the
// append counter. Eviction is applied by the caller afterwards.
func (p *partition[S, A]) append(exp rl.Experience[S, A]) {
	p.states = append(p.states, exp.State)
	p.actions = append(p.actions, exp.Action)
	p.nextStates = append(p.nextStates, exp.NextState)
	p.rewards = append(p.rewards, exp.Reward)
	p.dones = append(p.dones, exp.Done)
	p.appends++
}

// length returns the current common length of the five columns.
func (p *partition[S, A]) length() int {
	return len(p.states)
}

// dropFront removes the n oldest samples from all five columns.
func (p *partition[S, A]) dropFront(n int) {
	if n <= 0 {
		return
	}
	if n > p.length() {
		n = p.length()
	}
	p.states = trimFront(p.states, n)
	p.actions = trimFront(p.actions, n)
	p.nextStates = trimFront(p.nextStates, n)
	p.rewards = trimFront(p.rewards, n)
	p.dones = trimFront(p.dones, n)
}

// snapshot returns a copy of the five columns in their current order.
// The copy is safe to use after the partition is mutated again.
func (p *partition[S, A]) snapshot() rl.Batch[S, A] {
	b := rl.Batch[S, A]{
		States:     make([]S, len(p.states)),
		Actions:    make([]A, len(p.actions)),
		NextStates: make([]S, len(p.nextStates)),
		Rewards:    make([]float64, len(p.rewards)),
		Dones:      make([]bool, len(p.dones)),
	}
	copy(b.States, p.states)
	copy(b.Actions, p.actions)
	copy(b.NextStates, p.nextStates)
	copy(b.Rewards, p.rewards)
	copy(b.Dones, p.dones)
	return b
}

// trimFront removes the first n elements of s in place and zeroes the
// vacated tail slots.
func trimFront[T any](s []T, n int) []T {
	keep := copy(s, s[n:])

	// help the go gc
	var zero T
	for i := keep; i < len(s); i++ {
		s[i] = zero
	}

	return s[:keep]
}
