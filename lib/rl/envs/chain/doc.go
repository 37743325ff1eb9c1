// Package chain implements a minimal reference environment: a seeded random
// walk on a bounded chain with terminal states at both ends. It exists so
// the collection pipeline can be exercised end to end (CLI, tests,
// benchmarks) without an external simulator.
package chain
