// Package stdbric implements the standard bric variants: concrete
// execution shapes that a host bric composes a *bric.Bric with and
// installs via SetBehavior, so the scheduler can drive it as a
// scheduler.Stepper.
//
// The exec-lifecycle method contracts (resetExec/nextExecStep/
// execFinished/processInput/newReduction/finalizeReduction) referenced
// throughout _examples/original_source/src/Bric.cxx, MRBric.cxx and
// ApplicationBric.h belong to a BricImpl base class that is not present
// in the retrieved source: Bric.h, basicbrics.h and brics.h all predate
// it and describe an older template-based Output<T>/Input<T> API that
// Bric.cxx no longer uses. This package follows each variant's
// documented scheduling behavior instead, using MRBric.cxx only for
// the layering/pump algorithm that scheduler already implements.
package stdbric

import "dbrx/bric"

// Importer is implemented by a bric with no inputs that manufactures
// one output tuple per run.
type Importer interface {
	Import() error
}

// Transformer is implemented by a bric that reads its current inputs
// once and produces exactly one output tuple.
type Transformer interface {
	ProcessInput() error
}

// Mapper is implemented by a bric whose single input expands into a
// sequence of output tuples.
type Mapper interface {
	// ProcessInput consumes the current input and initializes the
	// state NextOutput will iterate over.
	ProcessInput() error
	// NextOutput produces the next output tuple and returns true, or
	// returns false once the sequence is exhausted.
	NextOutput() (bool, error)
}

// Reducer is implemented by a bric that folds a sequence of incoming
// tuples into a single output tuple.
type Reducer interface {
	// NewReduction opens a fresh accumulation.
	NewReduction() error
	// ProcessInput folds one more incoming tuple into the accumulation.
	ProcessInput() error
	// FinalizeReduction closes the accumulation and sets the output.
	FinalizeReduction() error
}

// sourcesFinished reports whether every recorded source of b has
// finished producing output this run. A reducer or async reducer uses
// this to decide between folding another tuple and finalizing.
func sourcesFinished(b *bric.Bric) bool {
	for _, src := range b.Sources() {
		stepper, ok := src.Behavior().(interface{ ExecFinished() bool })
		if !ok || !stepper.ExecFinished() {
			return false
		}
	}
	return true
}
