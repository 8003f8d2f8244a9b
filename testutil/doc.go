// Package testutil provides deterministic helpers for tests and
// benchmarks: a seeded thread-safe RNG and generators for random forests
// and document sets.
package testutil
