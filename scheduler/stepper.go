package scheduler

// Stepper is the execution contract the scheduler drives every
// scheduled bric through. A standard bric variant (import, transform,
// mapper, reducer, async reducer) implements it and installs itself via
// (*bric.Bric).SetBehavior so the scheduler can recover it from a plain
// *bric.Bric without either package importing the other's concrete
// types.
type Stepper interface {
	// NextExecStep advances the bric by one cooperative step. It
	// returns true if the step produced output, or if the bric is
	// already finished.
	NextExecStep() (bool, error)

	// ExecFinished reports whether the bric has no more output to
	// produce this run.
	ExecFinished() bool

	// ResetExec rewinds the bric to the start of a fresh run.
	ResetExec()
}
