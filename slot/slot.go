// Package slot implements the typed value slots of the bric graph: the
// shared storage cell behind an output terminal, and the primary,
// reference and const-reference handles that read and write it.
//
// The source's Value.h binds a reference to a pointer-to-pointer into
// its source so that reallocating the source's payload is observed
// without a copy. In a safe target language that becomes an
// indirection-through-a-shared-handle instead — here a *Slot shared
// between a PrimaryValue and every Reference/ConstReference bound to
// it, the same shared-mutable-cell idiom bg/common/cfgtree.go uses
// for a PNode's cached value pointer.
package slot

import (
	"reflect"

	"dbrx/dbrxerr"
)

// Slot is the shared storage cell for one terminal's payload. A
// PrimaryValue owns a Slot outright; a Reference or ConstReference
// bound to that PrimaryValue shares the same Slot, so every reader
// observes whatever the owner most recently wrote, even across
// replacement of the payload itself.
type Slot struct {
	typ     reflect.Type
	payload interface{}
}

// NewSlot allocates an empty slot for values of the given type.
func NewSlot(typ reflect.Type) *Slot {
	return &Slot{typ: typ}
}

// Type returns the slot's declared payload type.
func (s *Slot) Type() reflect.Type { return s.typ }

// Empty reports whether the slot currently holds no payload.
func (s *Slot) Empty() bool { return s.payload == nil }

// Get returns the current payload, or nil if empty.
func (s *Slot) Get() interface{} { return s.payload }

// Set stores v, which must be nil or of exactly the slot's declared
// type.
func (s *Slot) Set(v interface{}) error {
	if v != nil && reflect.TypeOf(v) != s.typ {
		return dbrxerr.Typef("cannot store %T in a slot of type %s", v, s.typ)
	}
	s.payload = v
	return nil
}

// SetDefault replaces the payload with the zero value of the slot's
// type.
func (s *Slot) SetDefault() {
	s.payload = reflect.Zero(s.typ).Interface()
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.payload = nil
}
