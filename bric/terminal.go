package bric

import (
	"reflect"
	"strings"

	"dbrx/dbrxerr"
	"dbrx/propval"
	"dbrx/slot"
)

// Terminal is a named, typed port on a bric.
type Terminal interface {
	Component
	Type() reflect.Type
}

// isReference reports whether s is a reference string: one whose first
// non-whitespace character is "&".
func isReference(s string) bool {
	trimmed := strings.TrimLeft(s, " \t")
	return strings.HasPrefix(trimmed, "&")
}

// parseReference strips the leading "&" (and any whitespace after it,
// following _examples/original_source/src/Bric.cxx's BCReference parse)
// and parses the remainder as a PropPath.
func parseReference(s string) (propval.PropPath, error) {
	trimmed := strings.TrimLeft(s, " \t")
	rest := strings.TrimLeft(trimmed[1:], " \t")
	return propval.ParsePropPath(rest)
}

// OutputTerminal is a bric's named output port. It owns the PrimaryValue
// backing the port, so every input or const-reference bound to it
// observes whatever it last wrote, even across payload replacement.
type OutputTerminal struct {
	baseComponent
	primary *slot.PrimaryValue
}

// NewOutput declares an output terminal of the given type, unregistered.
func NewOutput(name string, typ reflect.Type) *OutputTerminal {
	return &OutputTerminal{
		baseComponent: baseComponent{name: propval.StrKey(name)},
		primary:       slot.NewPrimaryValue(typ),
	}
}

// Type returns the terminal's declared payload type.
func (o *OutputTerminal) Type() reflect.Type { return o.primary.Type() }

// Value returns the underlying PrimaryValue, for connecting inputs to
// it.
func (o *OutputTerminal) Value() *slot.PrimaryValue { return o.primary }

// Set replaces the output's current payload.
func (o *OutputTerminal) Set(v interface{}) error { return o.primary.Set(v) }

// Get returns the output's current payload.
func (o *OutputTerminal) Get() interface{} { return o.primary.Get() }

// ApplyConfig is a no-op: outputs are not directly configurable.
func (o *OutputTerminal) ApplyConfig(propval.PropVal) error { return nil }

// GetConfig always reports none: outputs carry no persisted
// configuration of their own.
func (o *OutputTerminal) GetConfig() propval.PropVal { return propval.None() }

// InputTerminal is a bric's named input port. Its value is either a
// live reference to a sibling's output, or (when the configuration
// supplies a literal instead of a "&path" reference) a fixed constant
// held locally.
type InputTerminal struct {
	baseComponent
	ref         *slot.Reference
	srcTerminal *OutputTerminal
	sourcePath  propval.PropPath
	fixed       *slot.PrimaryValue
}

// NewInput declares an input terminal of the given type, unregistered
// and unconnected.
func NewInput(name string, typ reflect.Type) *InputTerminal {
	return &InputTerminal{
		baseComponent: baseComponent{name: propval.StrKey(name)},
		ref:           slot.NewReference(typ),
	}
}

// Type returns the terminal's declared payload type.
func (in *InputTerminal) Type() reflect.Type { return in.ref.Type() }

// HasFixedValue reports whether the input was configured with a literal
// value rather than a "&path" reference, per
// _examples/original_source/src/Bric.cxx's connectInputs, which skips
// fixed inputs when wiring references.
func (in *InputTerminal) HasFixedValue() bool { return in.fixed != nil }

// Source returns the unresolved reference path last applied via
// ApplyConfig, or nil if the input holds a fixed value or was never
// configured.
func (in *InputTerminal) Source() propval.PropPath { return in.sourcePath }

// ConnectTo binds the input to out's storage, mirroring
// Bric::InputTerminal::connectTo.
func (in *InputTerminal) ConnectTo(out *OutputTerminal) error {
	if err := in.ref.ReferTo(out.primary); err != nil {
		return err
	}
	in.srcTerminal = out
	if in.Parent() != nil && out.Parent() != nil {
		if _, err := in.Parent().addSource(out.Parent()); err != nil {
			return err
		}
	}
	return nil
}

// SrcTerminal returns the output this input is currently bound to, or
// nil if unbound or fixed.
func (in *InputTerminal) SrcTerminal() *OutputTerminal { return in.srcTerminal }

// Get returns the input's current value: the fixed value if one was
// configured, otherwise the referent's payload.
func (in *InputTerminal) Get() interface{} {
	if in.fixed != nil {
		return in.fixed.Get()
	}
	return in.ref.Get()
}

// ToPropVal projects the input's current value to a PropVal.
func (in *InputTerminal) ToPropVal() (propval.PropVal, error) {
	if in.fixed != nil {
		return in.fixed.ToPropVal()
	}
	return in.ref.ToPropVal()
}

// ApplyConfig records a "&path" reference for later resolution by
// Bric.connectInputs, or materializes a fixed local value otherwise.
func (in *InputTerminal) ApplyConfig(v propval.PropVal) error {
	if s, ok := v.AsString(); ok && isReference(s) {
		path, err := parseReference(s)
		if err != nil {
			return dbrxerr.Configurationf("invalid reference %q for input %q", s, in.AbsolutePath()).Wrap(err)
		}
		in.sourcePath = path
		in.fixed = nil
		return nil
	}

	fixed := slot.NewPrimaryValue(in.ref.Type())
	if err := fixed.FromPropVal(v); err != nil {
		return err
	}
	in.fixed = fixed
	in.sourcePath = nil
	return nil
}

// GetConfig reports the fixed value or the "&path" reference string
// currently configured, or none if the input has neither.
func (in *InputTerminal) GetConfig() propval.PropVal {
	if in.fixed != nil {
		v, err := in.fixed.ToPropVal()
		if err != nil {
			return propval.None()
		}
		return v
	}
	if in.sourcePath != nil {
		return propval.Str("&" + in.sourcePath.String())
	}
	return propval.None()
}

// ParamTerminal is a bric's named parameter port: a plain configurable
// value with no wiring semantics.
type ParamTerminal struct {
	baseComponent
	primary *slot.PrimaryValue
}

// NewParam declares a param terminal of the given type.
func NewParam(name string, typ reflect.Type) *ParamTerminal {
	return &ParamTerminal{
		baseComponent: baseComponent{name: propval.StrKey(name)},
		primary:       slot.NewPrimaryValue(typ),
	}
}

// Type returns the terminal's declared payload type.
func (p *ParamTerminal) Type() reflect.Type { return p.primary.Type() }

// Get returns the parameter's current value.
func (p *ParamTerminal) Get() interface{} { return p.primary.Get() }

// Set replaces the parameter's current value.
func (p *ParamTerminal) Set(v interface{}) error { return p.primary.Set(v) }

// ApplyConfig assigns the parameter's value from a PropVal.
func (p *ParamTerminal) ApplyConfig(v propval.PropVal) error {
	return p.primary.FromPropVal(v)
}

// GetConfig projects the parameter's current value to a PropVal.
func (p *ParamTerminal) GetConfig() propval.PropVal {
	v, err := p.primary.ToPropVal()
	if err != nil {
		return propval.None()
	}
	return v
}
