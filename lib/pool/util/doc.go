// Package util provides small helpers for the pool package: random seed
// generation for the balanced-placement RNG and distribution statistics
// used to report how evenly samples are spread across partitions.
package util
