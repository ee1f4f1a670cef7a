package stdbric

import "dbrx/bric"

// ReducerBric opens a reduction with NewReduction(), folds one
// incoming tuple per step via ProcessInput() while its sources are
// still producing, then closes the reduction with FinalizeReduction()
// once every source reports finished, emitting exactly one output
// tuple.
type ReducerBric struct {
	*bric.Bric
	behavior Reducer
	started  bool
	finished bool
}

// NewReducer builds a ReducerBric named name, backed by behavior.
func NewReducer(name string, behavior Reducer) *ReducerBric {
	b := bric.NewBric(name, bric.Capabilities{
		CanHaveInputs:     true,
		CanHaveOutputs:    true,
		CanHaveDynInputs:  true,
		CanHaveDynOutputs: true,
	})
	r := &ReducerBric{Bric: b, behavior: behavior}
	b.SetBehavior(r)
	return r
}

// SetReducer installs behavior after construction, for callers that
// need the bric itself (to register input/output terminals) before the
// behavior that reads/writes them can be built.
func (r *ReducerBric) SetReducer(behavior Reducer) { r.behavior = behavior }

func (r *ReducerBric) ResetExec() {
	r.started = false
	r.finished = false
}

func (r *ReducerBric) ExecFinished() bool { return r.finished }

func (r *ReducerBric) NextExecStep() (bool, error) {
	if r.finished {
		return true, nil
	}
	if !r.started {
		if err := r.behavior.NewReduction(); err != nil {
			return false, err
		}
		r.started = true
	}
	if sourcesFinished(r.Bric) {
		if err := r.behavior.FinalizeReduction(); err != nil {
			return false, err
		}
		r.finished = true
		return true, nil
	}
	if err := r.behavior.ProcessInput(); err != nil {
		return false, err
	}
	return true, nil
}
