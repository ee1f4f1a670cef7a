package slot

import (
	"reflect"

	"dbrx/dbrxerr"
	"dbrx/propval"
)

// Adapter projects a Go value of a declared type to and from a PropVal.
// A type without a registered adapter cannot be read or written through
// the config layer: asking raises a conversion error.
type Adapter struct {
	ToPropVal   func(v interface{}) (propval.PropVal, error)
	FromPropVal func(p propval.PropVal) (interface{}, error)
}

var adapters = map[reflect.Type]Adapter{}

// RegisterAdapter installs the PropVal adapter for typ, replacing any
// previous registration. Host code calls this for any bric terminal
// type beyond the built-ins registered by this package, the same way
// bg/common/cfgapi adds a typed getter per property shape it needs.
func RegisterAdapter(typ reflect.Type, a Adapter) {
	adapters[typ] = a
}

func lookupAdapter(typ reflect.Type) (Adapter, bool) {
	a, ok := adapters[typ]
	return a, ok
}

func toPropVal(typ reflect.Type, v interface{}) (propval.PropVal, error) {
	a, ok := lookupAdapter(typ)
	if !ok {
		return propval.None(), dbrxerr.Typef("no PropVal adapter registered for type %s", typ)
	}
	return a.ToPropVal(v)
}

func fromPropVal(typ reflect.Type, p propval.PropVal) (interface{}, error) {
	a, ok := lookupAdapter(typ)
	if !ok {
		return nil, dbrxerr.Typef("no PropVal adapter registered for type %s", typ)
	}
	return a.FromPropVal(p)
}

func init() {
	RegisterAdapter(reflect.TypeOf(int64(0)), Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			return propval.Int64(v.(int64)), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			i, ok := p.AsInt64()
			if !ok {
				return nil, dbrxerr.Typef("PropVal of kind %s is not convertible to int64", p.Kind())
			}
			return i, nil
		},
	})

	RegisterAdapter(reflect.TypeOf(float64(0)), Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			return propval.Real(v.(float64)), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			r, ok := p.AsReal()
			if !ok {
				return nil, dbrxerr.Typef("PropVal of kind %s is not convertible to real", p.Kind())
			}
			return r, nil
		},
	})

	RegisterAdapter(reflect.TypeOf(false), Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			return propval.Bool(v.(bool)), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			b, ok := p.AsBool()
			if !ok {
				return nil, dbrxerr.Typef("PropVal of kind %s is not convertible to bool", p.Kind())
			}
			return b, nil
		},
	})

	RegisterAdapter(reflect.TypeOf(""), Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			return propval.Str(v.(string)), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			s, ok := p.AsString()
			if !ok {
				return nil, dbrxerr.Typef("PropVal of kind %s is not convertible to string", p.Kind())
			}
			return s, nil
		},
	})

	RegisterAdapter(reflect.TypeOf([]byte(nil)), Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			return propval.BytesVal(v.([]byte)), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			b, ok := p.AsBytes()
			if !ok {
				return nil, dbrxerr.Typef("PropVal of kind %s is not convertible to bytes", p.Kind())
			}
			return b, nil
		},
	})

	RegisterAdapter(reflect.TypeOf(propval.PropVal{}), Adapter{
		ToPropVal: func(v interface{}) (propval.PropVal, error) {
			return v.(propval.PropVal), nil
		},
		FromPropVal: func(p propval.PropVal) (interface{}, error) {
			return p, nil
		},
	})
}
