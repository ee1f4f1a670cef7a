package stdbric

import (
	"context"

	"dbrx/bric"
	"dbrx/scheduler"
)

// Composite is any bric with its own sub-brics: the Application's
// "brics" group, and any intermediate "group" bric that hosts dynamically configured
// children of its own. It owns a nested scheduler.Scheduler over its
// direct children and, from the outside, behaves like a single
// TransformBric whose one ProcessInput drains that nested scheduler to
// completion — mirroring MRBric itself being simultaneously a
// TransformBric to its parent and a layered scheduler internally
// (MRBric.cxx's processInput loops processingStep() until
// m_innerExecFinished).
type Composite struct {
	*bric.Bric
	sched    *scheduler.Scheduler
	finished bool
}

// NewComposite builds a Composite bric named name with caps, always
// granting CanHaveDynBrics since a composite's purpose is to host
// children, whether declared statically by the caller afterward or
// instantiated dynamically via configuration.
func NewComposite(name string, caps bric.Capabilities) *Composite {
	caps.CanHaveDynBrics = true
	b := bric.NewBric(name, caps)
	c := &Composite{Bric: b}
	b.SetBehavior(c)
	return c
}

// Init (re)builds the nested scheduler from the composite's current
// sub-brics. Call it once configuration has finished adding and
// resolving all children, and again after any reconfiguration that
// adds or removes a dynamic child.
func (c *Composite) Init() error {
	s, err := scheduler.Build(c.Bric)
	if err != nil {
		return err
	}
	c.sched = s
	return nil
}

func (c *Composite) ResetExec() {
	c.finished = false
	if c.sched != nil {
		c.sched.ResetExec()
	}
}

func (c *Composite) ExecFinished() bool { return c.finished }

func (c *Composite) NextExecStep() (bool, error) {
	if c.finished {
		return true, nil
	}
	if c.sched != nil {
		if err := c.sched.Run(context.Background()); err != nil {
			return false, err
		}
	}
	c.finished = true
	return true, nil
}
