package stdbric

import "dbrx/bric"

// Transform is a TransformBric: one ProcessInput() call reads the
// current inputs and produces exactly one output tuple, then the bric
// reports finished. Grounded on basicbrics.h's ConvertBric/CopyBric.
type Transform struct {
	*bric.Bric
	behavior Transformer
	finished bool
}

// NewTransform builds a Transform bric named name, backed by behavior.
// The caller registers its own input and output terminals.
func NewTransform(name string, behavior Transformer) *Transform {
	b := bric.NewBric(name, bric.Capabilities{
		CanHaveInputs:     true,
		CanHaveOutputs:    true,
		CanHaveDynInputs:  true,
		CanHaveDynOutputs: true,
	})
	tr := &Transform{Bric: b, behavior: behavior}
	b.SetBehavior(tr)
	return tr
}

// SetTransformer installs behavior after construction, for callers that
// need the bric itself (to register input/output terminals) before the
// behavior that reads/writes them can be built.
func (tr *Transform) SetTransformer(behavior Transformer) { tr.behavior = behavior }

func (tr *Transform) ResetExec() { tr.finished = false }

func (tr *Transform) ExecFinished() bool { return tr.finished }

func (tr *Transform) NextExecStep() (bool, error) {
	if tr.finished {
		return true, nil
	}
	if err := tr.behavior.ProcessInput(); err != nil {
		return false, err
	}
	tr.finished = true
	return true, nil
}
