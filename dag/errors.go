package dag

import "github.com/pkg/errors"

// Sentinel errors. The core never logs and never retries; it surfaces
// these synchronously and leaves the Dag value that produced them
// unchanged (see spec §7).
var (
	// ErrNotFound is returned by strict getters when a hash is absent.
	// Non-strict getters return a zero value and false instead.
	ErrNotFound = errors.New("dag: commit not found")

	// ErrAmbiguousPrefix names the ambiguous-prefix condition. No function
	// in this package returns it: Resolve reports an ambiguous prefix as
	// nil (spec §4.5/§9).
	ErrAmbiguousPrefix = errors.New("dag: ambiguous hash prefix")

	// ErrInvalidDag marks a cycle or other structural inconsistency
	// detected while sorting. The Dag value itself is left untouched.
	ErrInvalidDag = errors.New("dag: invalid dag (cycle detected)")
)
