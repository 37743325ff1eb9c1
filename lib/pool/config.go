package pool

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Pool configuration struct
// --------------------------------------------------------------------------

// Config holds all construction parameters for an experience pool.
//
// WindowSize and ClearingFreq select mutually exclusive eviction policies.
// If neither is set, overflow beyond the per-partition capacity removes
// exactly the single oldest sample.
type Config struct {
	// Processes is the number of partitions and collection workers.
	Processes int

	// PoolSize is the total target buffer size across all partitions.
	// The per-partition capacity is ceil(PoolSize / Processes): the last
	// partial slot is shared rather than dropped, so the pool may hold up
	// to Processes-1 samples more than PoolSize when the division is uneven.
	PoolSize int

	// WindowSize selects the sliding-window eviction policy (>0).
	// On overflow the partition is truncated to its most recent WindowSize
	// samples.
	WindowSize int

	// ClearingFreq and ClearWindow together select the periodic-clear
	// policy: every ClearingFreq appends to a partition, its oldest
	// ClearWindow samples are removed, independent of capacity.
	ClearingFreq int
	ClearWindow  int

	// Balanced enables balanced placement: every append selects a target
	// partition weighted by inverse length instead of the worker's own
	// partition.
	Balanced bool

	// Seed for the balanced-placement RNG. Zero means a random seed.
	Seed uint64
}

// DefaultConfig returns the default pool configuration
func DefaultConfig() *Config {
	return &Config{
		Processes: runtime.NumCPU(),
		PoolSize:  4096,
		Balanced:  true,
	}
}

// --------------------------------------------------------------------------
// Validation and derived values
// --------------------------------------------------------------------------

// Validate checks the configuration for construction-time errors.
// It is called before any worker starts.
func (c *Config) Validate() error {
	if c.Processes <= 0 {
		return NewError(RetCInvalidConfig, fmt.Sprintf("processes must be positive, got %d", c.Processes))
	}
	if c.PoolSize <= 0 {
		return NewError(RetCInvalidConfig, fmt.Sprintf("pool size must be positive, got %d", c.PoolSize))
	}
	if c.WindowSize < 0 || c.ClearingFreq < 0 || c.ClearWindow < 0 {
		return NewError(RetCInvalidConfig, "eviction parameters must not be negative")
	}
	if c.WindowSize > 0 && c.ClearingFreq > 0 {
		return NewError(RetCInvalidConfig, "window size and clearing frequency are mutually exclusive")
	}
	if c.ClearingFreq > 0 && c.ClearWindow == 0 {
		return NewError(RetCInvalidConfig, "clearing frequency requires a clear window")
	}
	if c.ClearWindow > 0 && c.ClearingFreq == 0 {
		return NewError(RetCInvalidConfig, "clear window requires a clearing frequency")
	}
	return nil
}

// Capacity returns the per-partition target capacity,
// ceil(PoolSize / Processes).
func (c *Config) Capacity() int {
	return (c.PoolSize + c.Processes - 1) / c.Processes
}

// Policy derives the eviction policy variant from the optional parameters.
// Exactly one variant is active per pool instance.
func (c *Config) Policy() EvictionPolicy {
	switch {
	case c.WindowSize > 0:
		return EvictionPolicy{Mode: EvictSlidingWindow, WindowSize: c.WindowSize}
	case c.ClearingFreq > 0:
		return EvictionPolicy{Mode: EvictPeriodicClear, ClearingFreq: c.ClearingFreq, ClearWindow: c.ClearWindow}
	default:
		return EvictionPolicy{Mode: EvictNone}
	}
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Buffer settings
	addSection("Experience Pool")
	addField("Processes", strconv.Itoa(c.Processes))
	addField("Pool Size", strconv.Itoa(c.PoolSize))
	addField("Partition Capacity", strconv.Itoa(c.Capacity()))
	addField("Eviction Policy", c.Policy().String())

	// Placement settings
	addSection("Placement")
	if c.Balanced {
		addField("Mode", "balanced (inverse-length weighted)")
		if c.Seed != 0 {
			addField("Seed", strconv.FormatUint(c.Seed, 10))
		} else {
			addField("Seed", "random")
		}
	} else {
		addField("Mode", "single-writer (one partition per worker)")
	}

	return sb.String()
}
