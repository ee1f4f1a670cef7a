package examplebrics

import (
	"dbrx/bric"
	"dbrx/stdbric"
)

// linCalibBehavior applies a linear calibration, offset + slope*input,
// to its single input. Grounded on basicbrics.h's LinCalibBric.
type linCalibBehavior struct {
	offset *bric.ParamTerminal
	slope  *bric.ParamTerminal
	input  *bric.InputTerminal
	out    *bric.OutputTerminal
}

func (c *linCalibBehavior) ProcessInput() error {
	offset := c.offset.Get().(float64)
	slope := c.slope.Get().(float64)
	input := c.input.Get().(float64)
	return c.out.Set(offset + slope*input)
}

func newLinCalib() *bric.Bric {
	tr := stdbric.NewTransform("", nil)
	offset := must(tr.AddParam("offset", realType))
	slope := must(tr.AddParam("slope", realType))
	input := must(tr.AddInput("input", realType))
	out := must(tr.AddOutput("output", realType))
	tr.SetTransformer(&linCalibBehavior{offset: offset, slope: slope, input: input, out: out})
	return tr.Bric
}
