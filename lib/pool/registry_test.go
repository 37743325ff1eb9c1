package pool

import (
	"sync"
	"testing"
)

func newTestRegistry(t *testing.T, cfg Config) *Registry[int, int] {
	t.Helper()
	r, err := NewRegistry[int, int](cfg)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return r
}

func TestRegistryReadAllOrder(t *testing.T) {
	r := newTestRegistry(t, Config{Processes: 2, PoolSize: 100})

	// partitions [ [a,b], [c] ] flatten to [a,b,c]
	r.AppendTo(0, testExp(10)) // a
	r.AppendTo(0, testExp(11)) // b
	r.AppendTo(1, testExp(20)) // c

	batch := r.ReadAll()
	if batch.Len() != 3 {
		t.Fatalf("Expected batch length 3, got %d", batch.Len())
	}
	if !equalInts(batch.States, []int{10, 11, 20}) {
		t.Errorf("Expected states [10 11 20], got %v", batch.States)
	}

	// all five columns share the flattened order
	if len(batch.Actions) != 3 || len(batch.NextStates) != 3 || len(batch.Rewards) != 3 || len(batch.Dones) != 3 {
		t.Errorf("Column lengths diverged in batch: %d %d %d %d",
			len(batch.Actions), len(batch.NextStates), len(batch.Rewards), len(batch.Dones))
	}
	if batch.Rewards[2] != 20 {
		t.Errorf("Expected reward 20 at index 2, got %v", batch.Rewards[2])
	}
}

func TestRegistryReadAllEmpty(t *testing.T) {
	r := newTestRegistry(t, Config{Processes: 4, PoolSize: 100})

	// reading empty partitions returns a valid empty batch, not an error
	batch := r.ReadAll()
	if batch.Len() != 0 {
		t.Errorf("Expected empty batch, got length %d", batch.Len())
	}
}

func TestRegistryAppendToIsolation(t *testing.T) {
	r := newTestRegistry(t, Config{Processes: 2, PoolSize: 100})

	// concurrent single-writer appends with different indices never collide
	var wg sync.WaitGroup
	wg.Add(2)
	for id := 0; id < 2; id++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				r.AppendTo(id, testExp(i))
			}
		}(id)
	}
	wg.Wait()

	if !equalInts(r.Lengths(), []int{500, 500}) {
		t.Errorf("Expected lengths [500 500], got %v", r.Lengths())
	}
}

func TestRegistryAppendBalancedEmptyPool(t *testing.T) {
	r := newTestRegistry(t, Config{Processes: 3, PoolSize: 100, Balanced: true, Seed: 1})

	// all partitions at length zero: the 1/(len+1) weight must stay finite
	index := r.AppendBalanced(testExp(0))
	if index < 0 || index >= 3 {
		t.Fatalf("Expected index in [0,3), got %d", index)
	}
	if r.Size() != 1 {
		t.Errorf("Expected size 1, got %d", r.Size())
	}
}

func TestRegistryAppendBalancedFavorsShort(t *testing.T) {
	// partitions at lengths [5,0]: weight ratio (1/6):(1/1), partition 1
	// must be chosen with probability 6/7, well above the 0.8 bound
	const trials = 500

	hits := 0
	for i := 0; i < trials; i++ {
		r := newTestRegistry(t, Config{Processes: 2, PoolSize: 100, Balanced: true, Seed: uint64(i + 1)})
		for j := 0; j < 5; j++ {
			r.AppendTo(0, testExp(j))
		}

		if r.AppendBalanced(testExp(99)) == 1 {
			hits++
		}
	}

	if hits < trials*8/10 {
		t.Errorf("Expected partition 1 chosen in at least 80%% of %d trials, got %d", trials, hits)
	}
}

func TestRegistryAppendBalancedConcurrent(t *testing.T) {
	r := newTestRegistry(t, Config{Processes: 4, PoolSize: 1 << 20, Balanced: true})

	const (
		writers          = 4
		appendsPerWriter = 1000
	)

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < appendsPerWriter; i++ {
				r.AppendBalanced(testExp(i))
			}
		}()
	}
	wg.Wait()

	if r.Size() != writers*appendsPerWriter {
		t.Fatalf("Expected %d samples, got %d", writers*appendsPerWriter, r.Size())
	}

	// inverse-length weighting keeps the partitions roughly equal
	for i, l := range r.Lengths() {
		if l < 700 || l > 1300 {
			t.Errorf("Partition %d badly balanced: length %d (expected ~1000)", i, l)
		}
	}
}

func TestRegistryEvictionCounters(t *testing.T) {
	// capacity 2, default policy: 5 appends evict 3 samples
	r := newTestRegistry(t, Config{Processes: 1, PoolSize: 2})
	for i := 0; i < 5; i++ {
		r.AppendTo(0, testExp(i))
	}

	info := r.Info()
	if info.Size != 2 {
		t.Errorf("Expected size 2, got %d", info.Size)
	}
	if info.Appends != 5 {
		t.Errorf("Expected 5 appends, got %d", info.Appends)
	}
	if info.Evicted != 3 {
		t.Errorf("Expected 3 evicted samples, got %d", info.Evicted)
	}

	// recency preserved across evictions
	batch := r.ReadAll()
	if !equalInts(batch.States, []int{3, 4}) {
		t.Errorf("Expected surviving states [3 4], got %v", batch.States)
	}
}

func TestRegistryInfo(t *testing.T) {
	r := newTestRegistry(t, Config{Processes: 2, PoolSize: 10, WindowSize: 3})
	r.AppendTo(0, testExp(1))

	if r.Partitions() != 2 {
		t.Errorf("Expected 2 partitions, got %d", r.Partitions())
	}

	info := r.Info()
	if info.Partitions != 2 {
		t.Errorf("Expected 2 partitions, got %d", info.Partitions)
	}
	if info.Capacity != 5 {
		t.Errorf("Expected capacity 5, got %d", info.Capacity)
	}
	if info.Policy != "SlidingWindow(3)" {
		t.Errorf("Expected policy SlidingWindow(3), got %s", info.Policy)
	}
	if !equalInts(info.Lengths, []int{1, 0}) {
		t.Errorf("Expected lengths [1 0], got %v", info.Lengths)
	}
}

func TestRegistryAppendBalancedDeterministic(t *testing.T) {
	// the same seed yields the same placement sequence
	run := func() []int {
		r := newTestRegistry(t, Config{Processes: 3, PoolSize: 100, Balanced: true, Seed: 7})
		var picks []int
		for i := 0; i < 50; i++ {
			picks = append(picks, r.AppendBalanced(testExp(i)))
		}
		return picks
	}

	first := run()
	second := run()
	if !equalInts(first, second) {
		t.Errorf("Placement sequences diverge for identical seeds:\n%v\n%v", first, second)
	}
}
