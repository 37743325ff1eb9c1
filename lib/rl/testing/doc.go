// Package testing provides a standardized contract test suite for
// implementations of the rl.Environment interface.
//   - RunEnvironmentTests: Validates reset/step semantics, episode
//     termination handling and the reset-on-done collection loop.
package testing
