package scheduler

import (
	"dbrx/bric"
	"dbrx/dbrxerr"
)

// layer is one rank of the topological sort: every bric in it is
// mutually independent and can be stepped together. Grounds
// MRBric::ExecLayer.
type layer struct {
	brics        []*bric.Bric
	steppers     []Stepper
	execFinished bool
}

func newLayer(brics []*bric.Bric) (*layer, error) {
	steppers := make([]Stepper, len(brics))
	for i, b := range brics {
		s, ok := b.Behavior().(Stepper)
		if !ok {
			return nil, dbrxerr.Schedulef("bric %q has no schedulable behavior installed", b.AbsolutePath())
		}
		steppers[i] = s
	}
	return &layer{brics: brics, steppers: steppers}, nil
}

func (l *layer) resetExec() {
	l.execFinished = false
	for _, s := range l.steppers {
		s.ResetExec()
	}
}

// nextExecStep steps every bric in the layer once. It reports true only
// if every bric in the layer produced output this step, or if the whole
// layer is now finished — a single stalled bric holds the layer back,
// mirroring MRBric::ExecLayer::nextExecStep's allBricExecsTrue AND-fold.
func (l *layer) nextExecStep() (bool, error) {
	if l.execFinished {
		return true, nil
	}

	allProducedOutput := true
	allFinished := true
	for _, s := range l.steppers {
		produced, err := s.NextExecStep()
		if err != nil {
			return false, err
		}
		if !produced {
			allProducedOutput = false
		}
		if !s.ExecFinished() {
			allFinished = false
		}
	}
	l.execFinished = allFinished
	return allProducedOutput || l.execFinished, nil
}
