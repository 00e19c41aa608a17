// Package orchestrator implements §4.M: the per-page, idempotent,
// resumable driver that streams a booklet through stages A→K and folds
// the result into model.Grundbuch. Persisting the booklet JSON is left to
// the caller (internal/persist).
package orchestrator

import "runtime"

// maxPoolSize is the hard cap §5 places on the worker pool regardless of
// core count.
const maxPoolSize = 125

// PoolSize implements §5's exact formula: 1 on ≤3 cores, otherwise
// (n+1)/2, capped at 125.
func PoolSize() int {
	n := runtime.NumCPU()
	if n <= 3 {
		return 1
	}
	size := (n + 1) / 2
	if size > maxPoolSize {
		return maxPoolSize
	}
	return size
}
