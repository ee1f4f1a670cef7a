package examplebrics

import (
	"dbrx/bric"
	"dbrx/stdbric"
)

// constBehavior reproduces a configured constant value at its output
// on every run, the simplest import-shaped bric, grounded on
// basicbrics.h's ConstBric.
type constBehavior struct {
	value *bric.ParamTerminal
	out   *bric.OutputTerminal
}

func (c *constBehavior) Import() error {
	return c.out.Set(c.value.Get())
}

func newConst() *bric.Bric {
	im := stdbric.NewImport("", nil)
	value := must(im.AddParam("value", realType))
	out := must(im.AddOutput("output", realType))
	im.SetImporter(&constBehavior{value: value, out: out})
	return im.Bric
}
