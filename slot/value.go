package slot

import (
	"reflect"

	"dbrx/dbrxerr"
	"dbrx/propval"
)

// PrimaryValue owns a Slot outright: the storage behind an output
// terminal. It is the only handle that may be freely reassigned a new
// payload; every Reference or ConstReference bound to it shares the
// same underlying Slot, so they see the replacement immediately.
type PrimaryValue struct {
	slot *Slot
}

// NewPrimaryValue allocates a PrimaryValue of the given type, with its
// payload set to the type's zero value.
func NewPrimaryValue(typ reflect.Type) *PrimaryValue {
	p := &PrimaryValue{slot: NewSlot(typ)}
	p.slot.SetDefault()
	return p
}

// Type returns the declared payload type.
func (p *PrimaryValue) Type() reflect.Type { return p.slot.Type() }

// Slot returns the underlying shared storage cell, for binding a
// Reference or ConstReference to it.
func (p *PrimaryValue) Slot() *Slot { return p.slot }

// Empty reports whether the payload is currently unset.
func (p *PrimaryValue) Empty() bool { return p.slot.Empty() }

// Get returns the current payload.
func (p *PrimaryValue) Get() interface{} { return p.slot.Get() }

// Set replaces the payload.
func (p *PrimaryValue) Set(v interface{}) error { return p.slot.Set(v) }

// SetDefault resets the payload to the type's zero value.
func (p *PrimaryValue) SetDefault() { p.slot.SetDefault() }

// Clear empties the payload.
func (p *PrimaryValue) Clear() { p.slot.Clear() }

// ToPropVal projects the current payload to a PropVal via the adapter
// registered for this slot's type.
func (p *PrimaryValue) ToPropVal() (propval.PropVal, error) {
	return toPropVal(p.slot.Type(), p.slot.Get())
}

// FromPropVal assigns the payload from a PropVal via the registered
// adapter.
func (p *PrimaryValue) FromPropVal(v propval.PropVal) error {
	val, err := fromPropVal(p.slot.Type(), v)
	if err != nil {
		return err
	}
	return p.slot.Set(val)
}

// Reference is a writable alias onto another PrimaryValue's Slot: the
// binding behind an input terminal. It is unbound (Valid() == false)
// until ReferTo is called by the connection resolver.
type Reference struct {
	typ  reflect.Type
	slot *Slot
}

// NewReference declares a Reference of the given type, unbound.
func NewReference(typ reflect.Type) *Reference {
	return &Reference{typ: typ}
}

// Type returns the declared type a source must match exactly to bind.
func (r *Reference) Type() reflect.Type { return r.typ }

// Valid reports whether the reference has been bound to a source.
func (r *Reference) Valid() bool { return r.slot != nil }

// ReferTo binds r to source's slot. The source's declared type must
// match r's exactly: no implicit conversion or narrowing at bind time.
func (r *Reference) ReferTo(source *PrimaryValue) error {
	if source.Type() != r.typ {
		return dbrxerr.Typef("cannot bind reference of type %s to source of type %s", r.typ, source.Type())
	}
	r.slot = source.slot
	return nil
}

// Get returns the referent's current payload.
func (r *Reference) Get() interface{} {
	if r.slot == nil {
		return nil
	}
	return r.slot.Get()
}

// Set writes through to the referent's slot.
func (r *Reference) Set(v interface{}) error {
	if r.slot == nil {
		return dbrxerr.Wiringf("cannot write to an unbound reference")
	}
	return r.slot.Set(v)
}

// ToPropVal projects the referent's current payload to a PropVal.
func (r *Reference) ToPropVal() (propval.PropVal, error) {
	if r.slot == nil {
		return propval.None(), dbrxerr.Wiringf("cannot read an unbound reference")
	}
	return toPropVal(r.slot.Type(), r.slot.Get())
}

// ConstReference is a read-only alias onto another PrimaryValue's Slot: the
// binding behind a const-reference input, which can observe but never
// write the referent.
type ConstReference struct {
	typ  reflect.Type
	slot *Slot
}

// NewConstReference declares a ConstReference of the given type,
// unbound.
func NewConstReference(typ reflect.Type) *ConstReference {
	return &ConstReference{typ: typ}
}

// Type returns the declared type a source must match exactly to bind.
func (r *ConstReference) Type() reflect.Type { return r.typ }

// Valid reports whether the reference has been bound to a source.
func (r *ConstReference) Valid() bool { return r.slot != nil }

// ReferTo binds r to source's slot, read-only.
func (r *ConstReference) ReferTo(source *PrimaryValue) error {
	if source.Type() != r.typ {
		return dbrxerr.Typef("cannot bind const reference of type %s to source of type %s", r.typ, source.Type())
	}
	r.slot = source.slot
	return nil
}

// Get returns the referent's current payload.
func (r *ConstReference) Get() interface{} {
	if r.slot == nil {
		return nil
	}
	return r.slot.Get()
}

// ToPropVal projects the referent's current payload to a PropVal.
func (r *ConstReference) ToPropVal() (propval.PropVal, error) {
	if r.slot == nil {
		return propval.None(), dbrxerr.Wiringf("cannot read an unbound reference")
	}
	return toPropVal(r.slot.Type(), r.slot.Get())
}
