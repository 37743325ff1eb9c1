package pool

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/NoteDance/Pool/lib/pool/util"
	"github.com/NoteDance/Pool/lib/rl"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Partition Registry
// --------------------------------------------------------------------------

// Registry owns exactly Processes partitions, indexed 0..Processes-1 and
// fixed at construction, plus the synchronization needed for cross-worker
// writes. Partitions are never exposed directly, they are mutated only
// through the append operations.
type Registry[S, A any] struct {
	partitions []*partition[S, A]
	capacity   int
	policy     EvictionPolicy

	// mu guards balanced placement: reading all lengths, computing the
	// weights, sampling the target index and appending must be one atomic
	// unit, otherwise two workers can both observe the same partition as
	// shortest and write to it
	mu  sync.Mutex
	rng *rand.Rand

	// striped counters for cheap concurrent stats
	appends *xsync.Counter
	evicted *xsync.Counter
}

// NewRegistry creates a registry with cfg.Processes empty partitions.
// The eviction policy and per-partition capacity are fixed at this point.
//
// Thread-safety: This function is not thread-safe and should only be called
// once during initialization.
func NewRegistry[S, A any](cfg Config) (*Registry[S, A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	partitions := make([]*partition[S, A], cfg.Processes)
	for i := range partitions {
		partitions[i] = &partition[S, A]{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = util.GenerateSeed()
	}

	return &Registry[S, A]{
		partitions: partitions,
		capacity:   cfg.Capacity(),
		policy:     cfg.Policy(),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		appends:    xsync.NewCounter(),
		evicted:    xsync.NewCounter(),
	}, nil
}

// append writes one experience to the partition at index and applies the
// eviction policy. Callers serialize access to the target partition.
func (r *Registry[S, A]) append(index int, exp rl.Experience[S, A]) {
	p := r.partitions[index]
	p.append(exp)
	removed := applyEviction(r.policy, p, r.capacity)

	r.appends.Inc()
	metricAppends.Inc()
	if removed > 0 {
		r.evicted.Add(int64(removed))
		metricEvicted.Add(removed)
	}
}

// --------------------------------------------------------------------------
// Write Paths
// --------------------------------------------------------------------------

// AppendTo is the direct single-writer path: it appends one experience to
// the partition at index without locking.
//
// Thread-safety: Concurrent calls with different indices never collide.
// The contract assumes each index is written by exactly one worker;
// concurrent calls with the same index are not supported by this mode.
func (r *Registry[S, A]) AppendTo(index int, exp rl.Experience[S, A]) {
	r.append(index, exp)
}

// AppendBalanced selects a target partition with probability weighted by the
// inverse of its current length (shorter partitions favored, keeping the
// partitions roughly equal in size), appends the experience there and
// returns the chosen index. The weight of a partition of length L is
// 1/(L+1), so empty partitions never cause a division by zero.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
// The whole read-lengths, choose-index, append sequence runs under one lock.
func (r *Registry[S, A]) AppendBalanced(exp rl.Experience[S, A]) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total float64
	for _, p := range r.partitions {
		total += 1 / float64(p.length()+1)
	}

	// sample an index from the cumulative weights
	x := r.rng.Float64() * total
	index := len(r.partitions) - 1
	for i, p := range r.partitions {
		x -= 1 / float64(p.length()+1)
		if x < 0 {
			index = i
			break
		}
	}

	r.append(index, exp)
	return index
}

// --------------------------------------------------------------------------
// Read Path
// --------------------------------------------------------------------------

// ReadAll concatenates all partition snapshots in ascending index order into
// five flat columns. Each partition's internal order is preserved. Reading
// an empty registry returns a valid empty batch.
//
// Thread-safety: ReadAll copies each partition before concatenating but
// gives no consistency guarantee against concurrently running workers:
// callers should stop collection first or accept a torn (stale) read.
// Because partitions only ever grow at the back and shrink at the front,
// a torn read is stale, never corrupt.
func (r *Registry[S, A]) ReadAll() rl.Batch[S, A] {
	var out rl.Batch[S, A]
	for _, p := range r.partitions {
		out.Append(p.snapshot())
	}
	return out
}

// Lengths returns the current length of every partition in index order.
func (r *Registry[S, A]) Lengths() []int {
	lengths := make([]int, len(r.partitions))
	for i, p := range r.partitions {
		lengths[i] = p.length()
	}
	return lengths
}

// Size returns the total number of samples currently held across all
// partitions.
func (r *Registry[S, A]) Size() int {
	size := 0
	for _, p := range r.partitions {
		size += p.length()
	}
	return size
}

// Partitions returns the number of partitions.
func (r *Registry[S, A]) Partitions() int {
	return len(r.partitions)
}

// --------------------------------------------------------------------------
// Introspection
// --------------------------------------------------------------------------

// Info reports statistics about the pool state.
type Info struct {
	Partitions int                    `json:"partitions"`
	Capacity   int                    `json:"capacity"`
	Policy     string                 `json:"policy"`
	Size       int                    `json:"size"`
	Lengths    []int                  `json:"lengths"`
	Appends    int64                  `json:"appends"`
	Evicted    int64                  `json:"evicted"`
	Balance    util.DistributionStats `json:"balance"`
}

func (i Info) String() string {
	return fmt.Sprintf("Info{Partitions: %d, Capacity: %d, Policy: %s, Size: %d, Appends: %d, Evicted: %d}",
		i.Partitions, i.Capacity, i.Policy, i.Size, i.Appends, i.Evicted)
}

// Info returns statistics about the registry. Like ReadAll it may observe a
// torn state while workers are running; all values are best-effort.
func (r *Registry[S, A]) Info() Info {
	lengths := r.Lengths()

	sizes := make([]float64, len(lengths))
	size := 0
	for i, l := range lengths {
		sizes[i] = float64(l)
		size += l
	}

	return Info{
		Partitions: r.Partitions(),
		Capacity:   r.capacity,
		Policy:     r.policy.String(),
		Size:       size,
		Lengths:    lengths,
		Appends:    r.appends.Value(),
		Evicted:    r.evicted.Value(),
		Balance:    util.NewDistributionStats(sizes),
	}
}
