package stdbric

import "dbrx/bric"

// MapperBric is a bric whose single ProcessInput() call initializes
// internal state that NextOutput() then iterates, emitting one output
// tuple per call until the sequence is exhausted. brics.h's
// SimpleInput-driven Add/Mult brics show the same
// read-once-expand-many shape in the older API.
type MapperBric struct {
	*bric.Bric
	behavior    Mapper
	initialized bool
	finished    bool
}

// NewMapper builds a MapperBric named name, backed by behavior.
func NewMapper(name string, behavior Mapper) *MapperBric {
	b := bric.NewBric(name, bric.Capabilities{
		CanHaveInputs:     true,
		CanHaveOutputs:    true,
		CanHaveDynInputs:  true,
		CanHaveDynOutputs: true,
	})
	m := &MapperBric{Bric: b, behavior: behavior}
	b.SetBehavior(m)
	return m
}

// SetMapper installs behavior after construction, for callers that need
// the bric itself (to register input/output terminals) before the
// behavior that reads/writes them can be built.
func (m *MapperBric) SetMapper(behavior Mapper) { m.behavior = behavior }

func (m *MapperBric) ResetExec() {
	m.initialized = false
	m.finished = false
}

func (m *MapperBric) ExecFinished() bool { return m.finished }

func (m *MapperBric) NextExecStep() (bool, error) {
	if m.finished {
		return true, nil
	}
	if !m.initialized {
		if err := m.behavior.ProcessInput(); err != nil {
			return false, err
		}
		m.initialized = true
	}
	more, err := m.behavior.NextOutput()
	if err != nil {
		return false, err
	}
	if !more {
		m.finished = true
		return false, nil
	}
	return true, nil
}
