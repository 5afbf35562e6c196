// Package testutil provides deterministic helpers for tests and benchmarks.
package testutil
