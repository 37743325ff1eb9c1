// Package rl defines the core types shared between environments and the
// experience pool: the Experience tuple, the columnar Batch used for
// reading collected data back, and the Environment interface that
// simulators implement.
//
// The package focuses on:
//   - A minimal, generic contract between simulators and the pool
//   - Columnar storage of experiences (one slice per tuple field)
//   - Explicit error reporting from environment calls
//
// The package intentionally contains no logic beyond slice concatenation.
// The actual buffering, eviction and parallel collection live in the pool
// package (github.com/NoteDance/Pool/lib/pool). Reference environment
// implementations live under envs/ and a reusable contract test suite under
// testing/.
package rl
