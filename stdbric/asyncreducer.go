package stdbric

import (
	"github.com/tevino/abool"

	"dbrx/bric"
)

// AsyncReducerBric behaves like ReducerBric, but it emits at most one
// output tuple in total across its lifetime and tracks readiness with
// its own atomic flag rather than the step-by-step ExecFinished signal,
// so an external reader (such as a running application's debug/metrics
// surface) can poll Ready() from another goroutine without racing the
// scheduler.
type AsyncReducerBric struct {
	*bric.Bric
	behavior Reducer
	started  bool
	finished bool
	ready    *abool.AtomicBool
}

// NewAsyncReducer builds an AsyncReducerBric named name, backed by
// behavior.
func NewAsyncReducer(name string, behavior Reducer) *AsyncReducerBric {
	b := bric.NewBric(name, bric.Capabilities{
		CanHaveInputs:     true,
		CanHaveOutputs:    true,
		CanHaveDynInputs:  true,
		CanHaveDynOutputs: true,
	})
	ar := &AsyncReducerBric{Bric: b, behavior: behavior, ready: abool.New()}
	b.SetBehavior(ar)
	return ar
}

// SetReducer installs behavior after construction, for callers that
// need the bric itself (to register input/output terminals) before the
// behavior that reads/writes them can be built.
func (ar *AsyncReducerBric) SetReducer(behavior Reducer) { ar.behavior = behavior }

// Ready reports whether FinalizeReduction has run and the single
// output tuple is available for reading.
func (ar *AsyncReducerBric) Ready() bool { return ar.ready.IsSet() }

func (ar *AsyncReducerBric) ResetExec() {
	ar.started = false
	ar.finished = false
	ar.ready.UnSet()
}

func (ar *AsyncReducerBric) ExecFinished() bool { return ar.finished }

func (ar *AsyncReducerBric) NextExecStep() (bool, error) {
	if ar.finished {
		return true, nil
	}
	if !ar.started {
		if err := ar.behavior.NewReduction(); err != nil {
			return false, err
		}
		ar.started = true
	}
	if sourcesFinished(ar.Bric) {
		if err := ar.behavior.FinalizeReduction(); err != nil {
			return false, err
		}
		ar.finished = true
		ar.ready.Set()
		return true, nil
	}
	if err := ar.behavior.ProcessInput(); err != nil {
		return false, err
	}
	return true, nil
}
