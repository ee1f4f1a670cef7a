package scheduler

import (
	"context"

	"dbrx/bric"
	"dbrx/dbrxerr"
)

// Scheduler drives the immediate sub-brics of one composite bric
// through a layered cooperative pump loop. Grounded
// on _examples/original_source/src/MRBric.cxx's m_execLayers/
// m_topLayer/m_currentLayer/m_bottomLayer/m_runningDown state, rendered
// with slice indices in place of C++ iterators.
type Scheduler struct {
	layers []*layer

	top, current, bottom int
	runningDown           bool
	innerExecFinished     bool

	metricsLabel string
}

// Build gathers parent's immediate sub-brics (static and dynamic),
// topologically layers them by their recorded sibling source/dest
// edges, and returns a freshly reset Scheduler ready to pump them.
func Build(parent *bric.Bric) (*Scheduler, error) {
	sub := parent.SubBrics()
	execBrics := make([]*bric.Bric, 0, len(sub))
	for _, b := range sub {
		execBrics = append(execBrics, b)
	}

	layerOf, err := CalcLayers(execBrics)
	if err != nil {
		return nil, err
	}

	nLayers := 1
	for _, l := range layerOf {
		if l+1 > nLayers {
			nLayers = l + 1
		}
	}

	grouped := make([][]*bric.Bric, nLayers)
	for _, b := range execBrics {
		idx := layerOf[b]
		grouped[idx] = append(grouped[idx], b)
	}
	for _, g := range grouped {
		sortBricsByName(g)
	}

	layers := make([]*layer, nLayers)
	for i, g := range grouped {
		l, err := newLayer(g)
		if err != nil {
			return nil, err
		}
		layers[i] = l
	}

	s := &Scheduler{layers: layers, metricsLabel: parent.AbsolutePath().String()}
	s.ResetExec()
	layerCount.WithLabelValues(s.metricsLabel).Set(float64(nLayers))
	return s, nil
}

// ResetExec rewinds every layer and the pump cursors to the start of a
// fresh run.
func (s *Scheduler) ResetExec() {
	if len(s.layers) == 0 {
		s.innerExecFinished = true
		return
	}
	s.top = 0
	s.current = 0
	s.bottom = len(s.layers) - 1
	s.innerExecFinished = false
	s.runningDown = true
	for _, l := range s.layers {
		l.resetExec()
	}
}

// ExecFinished reports whether the whole composite has finished this
// run.
func (s *Scheduler) ExecFinished() bool { return s.innerExecFinished }

// Step advances the pump loop by one cooperative step, mirroring
// MRBric::processingStep. Returns the updated ExecFinished value.
func (s *Scheduler) Step() (bool, error) {
	if s.innerExecFinished {
		return true, nil
	}

	stepsTotal.WithLabelValues(s.metricsLabel).Inc()

	cur := s.layers[s.current]
	produced, err := cur.nextExecStep()
	if err != nil {
		return false, err
	}
	if cur.execFinished {
		s.top = s.current
	}

	switch {
	case s.current == s.bottom:
		s.runningDown = false
		if s.layers[s.bottom].execFinished {
			s.innerExecFinished = true
		} else {
			s.moveUpOneLayer()
		}
	case s.runningDown:
		s.moveDownOneLayer()
	case produced:
		s.runningDown = true
		s.moveDownOneLayer()
	default:
		s.runningDown = false
		if s.current != s.top {
			s.moveUpOneLayer()
		} else {
			s.innerExecFinished = true
			return false, dbrxerr.Schedulef("deadlock: top execution layer produced no output but is not finished")
		}
	}

	return s.innerExecFinished, nil
}

func (s *Scheduler) moveUpOneLayer()   { s.current-- }
func (s *Scheduler) moveDownOneLayer() { s.current++ }

// Run pumps the scheduler to completion, or until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for !s.innerExecFinished {
		select {
		case <-ctx.Done():
			return dbrxerr.Schedulef("run cancelled").Wrap(ctx.Err())
		default:
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	runsTotal.WithLabelValues(s.metricsLabel).Inc()
	return nil
}
