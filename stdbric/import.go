package stdbric

import "dbrx/bric"

// Import is an ImportBric: a source bric with no inputs whose single
// Import() call manufactures one output tuple per run, then reports
// finished. Grounded on basicbrics.h's ConstBric, the simplest
// import-shaped bric in the retrieved source.
type Import struct {
	*bric.Bric
	behavior Importer
	finished bool
}

// NewImport builds an Import bric named name, backed by behavior. The
// caller is responsible for registering whatever output terminals
// behavior writes to.
func NewImport(name string, behavior Importer) *Import {
	b := bric.NewBric(name, bric.Capabilities{
		CanHaveOutputs:    true,
		CanHaveDynOutputs: true,
	})
	im := &Import{Bric: b, behavior: behavior}
	b.SetBehavior(im)
	return im
}

// SetImporter installs behavior after construction, for callers that
// need the bric itself (to register output terminals) before the
// behavior that writes to them can be built.
func (im *Import) SetImporter(behavior Importer) { im.behavior = behavior }

func (im *Import) ResetExec() { im.finished = false }

func (im *Import) ExecFinished() bool { return im.finished }

func (im *Import) NextExecStep() (bool, error) {
	if im.finished {
		return true, nil
	}
	if err := im.behavior.Import(); err != nil {
		return false, err
	}
	im.finished = true
	return true, nil
}
