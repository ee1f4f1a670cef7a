package examplebrics

import (
	"dbrx/bric"
	"dbrx/stdbric"
)

// sumBehavior folds its incoming tuples by addition.
type sumBehavior struct {
	input *bric.InputTerminal
	out   *bric.OutputTerminal

	total float64
}

func (s *sumBehavior) NewReduction() error {
	s.total = 0
	return nil
}

func (s *sumBehavior) ProcessInput() error {
	s.total += s.input.Get().(float64)
	return nil
}

func (s *sumBehavior) FinalizeReduction() error {
	return s.out.Set(s.total)
}

func newSum() *bric.Bric {
	r := stdbric.NewReducer("", nil)
	input := must(r.AddInput("input", realType))
	out := must(r.AddOutput("output", realType))
	r.SetReducer(&sumBehavior{input: input, out: out})
	return r.Bric
}
