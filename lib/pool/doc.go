// Package pool implements a size-bounded, partitioned experience buffer that
// is filled by parallel collection workers and read back as flat columns for
// training. It is the core of this module; environments and the training
// loop are external collaborators.
//
// The package focuses on:
//   - One partition per worker slot with columnar storage (five parallel
//     slices, equal in length at every observable point)
//   - Bounded growth through a tagged eviction policy chosen once at
//     construction (drop-oldest, sliding window, or periodic clear)
//   - Two write disciplines: a lock-free single-writer path and a
//     lock-guarded balanced path that favors shorter partitions
//   - Flattened read-back in ascending partition index order
//
// Key Components:
//
//   - Config: Construction parameters and their validation. The
//     per-partition capacity is ceil(PoolSize/Processes). WindowSize and
//     ClearingFreq select mutually exclusive eviction variants; setting both
//     is a configuration error raised before any worker starts.
//
//   - EvictionPolicy: The tagged policy variant applied immediately after
//     every append. Truncation always removes from the front (oldest first).
//     The periodic clear is driven purely by a per-partition append counter
//     and fires independent of capacity.
//
//   - Registry: Owns the partitions and the write synchronization. In
//     single-writer mode each partition has exactly one writer and appends
//     take no lock. In balanced mode every append holds one mutex across the
//     whole read-lengths, choose-index, append sequence; without that, two
//     workers can both observe the same partition as shortest and defeat the
//     balancing. The selection weight of a partition of length L is 1/(L+1).
//
//   - Manager: Validates the configuration, builds the registry and drives
//     one worker goroutine per environment. Workers block only on
//     environment calls; a hung environment stalls its worker indefinitely
//     (no timeouts are defined for environment calls - a known liveness
//     limitation). An environment failure is fatal to its worker and is
//     logged, counted and returned from RunForSteps/Stop; it never crashes
//     the other workers.
//
// Consistency model: ReadAll copies every partition before concatenating but
// does not synchronize against running workers. Because partitions only grow
// at the back and shrink at the front, a concurrent read is stale, never
// corrupt. Callers that need an exact cut stop collection first.
//
// Workers run as goroutines over one shared registry. The registry is the
// single shared region: partitions are never handed to workers directly,
// every mutation goes through the append operations, and the runtime
// schedules the workers in parallel across cores.
package pool
