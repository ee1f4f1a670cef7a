package examplebrics

import (
	"reflect"

	"dbrx/bric"
	"dbrx/dbrxerr"
	"dbrx/propval"
	"dbrx/slot"
	"dbrx/stdbric"
)

var realSliceType = reflect.TypeOf([]float64(nil))

func init() {
	slot.RegisterAdapter(realSliceType, slot.Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			vals := v.([]float64)
			out := make([]propval.PropVal, len(vals))
			for i, x := range vals {
				out[i] = propval.Real(x)
			}
			return propval.ArrayVal(out), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			a, ok := p.AsArray()
			if !ok {
				return nil, dbrxerr.Typef("PropVal of kind %s is not convertible to a real sequence", p.Kind())
			}
			out := make([]float64, len(a))
			for i, elem := range a {
				r, ok := elem.AsReal()
				if !ok {
					return nil, dbrxerr.Typef("sequence element %d of kind %s is not convertible to real", i, elem.Kind())
				}
				out[i] = r
			}
			return out, nil
		},
	})
}

// sequenceBehavior re-emits a configured list of values, one per
// exec step, until the list is exhausted.
type sequenceBehavior struct {
	values *bric.ParamTerminal
	out    *bric.OutputTerminal

	vals []float64
	next int
}

func (s *sequenceBehavior) ProcessInput() error {
	s.vals = s.values.Get().([]float64)
	s.next = 0
	return nil
}

func (s *sequenceBehavior) NextOutput() (bool, error) {
	if s.next >= len(s.vals) {
		return false, nil
	}
	if err := s.out.Set(s.vals[s.next]); err != nil {
		return false, err
	}
	s.next++
	return true, nil
}

func newSequence() *bric.Bric {
	m := stdbric.NewMapper("", nil)
	values := must(m.AddParam("values", realSliceType))
	out := must(m.AddOutput("output", realType))
	m.SetMapper(&sequenceBehavior{values: values, out: out})
	return m.Bric
}
