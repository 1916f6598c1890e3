// Package testutil provides shared helpers for tests: a seeded, thread-safe
// random number generator and vector generation utilities.
package testutil
