package propval

import (
	"math"

	"dbrx/nameintern"
)

// Kind identifies which variant a PropVal currently holds.
type Kind int

// The tagged variants of a PropVal.
const (
	KindNone Kind = iota
	KindBool
	KindInt64
	KindReal
	KindName
	KindString
	KindBytes
	KindArray
	KindProps
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindReal:
		return "real"
	case KindName:
		return "name"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindProps:
		return "props"
	default:
		return "unknown"
	}
}

// PropVal is a self-describing, typed value: none, bool, int64, real,
// name, string, bytes, an array of PropVal, or an ordered props map.
type PropVal struct {
	kind Kind
	b    bool
	i    int64
	r    float64
	n    nameintern.Name
	s    string
	y    []byte
	a    []PropVal
	o    *Props
}

// None returns the absorbing "no value" PropVal.
func None() PropVal { return PropVal{kind: KindNone} }

// Bool wraps a boolean.
func Bool(b bool) PropVal { return PropVal{kind: KindBool, b: b} }

// Int64 wraps a 64-bit integer.
func Int64(i int64) PropVal { return PropVal{kind: KindInt64, i: i} }

// Real wraps a floating-point value. A real that fits losslessly in an
// int64 is normalized to the int64 variant instead.
func Real(r float64) PropVal {
	if !math.IsNaN(r) && !math.IsInf(r, 0) {
		if i := int64(r); float64(i) == r {
			return Int64(i)
		}
	}
	return PropVal{kind: KindReal, r: r}
}

// NameVal wraps an already-interned name.
func NameVal(n nameintern.Name) PropVal { return PropVal{kind: KindName, n: n} }

// Str wraps a string.
func Str(s string) PropVal { return PropVal{kind: KindString, s: s} }

// BytesVal wraps a byte slice, copying it so the PropVal owns its data.
func BytesVal(y []byte) PropVal {
	cp := make([]byte, len(y))
	copy(cp, y)
	return PropVal{kind: KindBytes, y: cp}
}

// ArrayVal wraps a slice of PropVal, copying the slice header.
func ArrayVal(a []PropVal) PropVal {
	cp := make([]PropVal, len(a))
	copy(cp, a)
	return PropVal{kind: KindArray, a: cp}
}

// PropsVal wraps a *Props.
func PropsVal(p *Props) PropVal { return PropVal{kind: KindProps, o: p} }

// EmptyProps returns a PropVal holding a freshly allocated, empty props
// map, convenient for building configuration trees incrementally.
func EmptyProps() PropVal { return PropsVal(NewProps()) }

// Kind reports which variant v currently holds.
func (v PropVal) Kind() Kind { return v.kind }

// IsNone reports whether v is the none variant.
func (v PropVal) IsNone() bool { return v.kind == KindNone }

// IsProps reports whether v holds a props map.
func (v PropVal) IsProps() bool { return v.kind == KindProps }

// IsArray reports whether v holds an array.
func (v PropVal) IsArray() bool { return v.kind == KindArray }

// AsBool returns v's value as a bool. Only meaningful for KindBool or a
// KindInt64 of 0/1.
func (v PropVal) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindInt64:
		if v.i == 0 || v.i == 1 {
			return v.i == 1, true
		}
	}
	return false, false
}

// AsInt64 returns v's value as an int64.
func (v PropVal) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt64:
		return v.i, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsReal returns v's value as a float64.
func (v PropVal) AsReal() (float64, bool) {
	switch v.kind {
	case KindReal:
		return v.r, true
	case KindInt64:
		return float64(v.i), true
	}
	return 0, false
}

// AsString returns v's value as a string. Names and strings are cross-
// identified, matching PropVal equality's string/name rule.
func (v PropVal) AsString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindName:
		return nameintern.String(v.n), true
	}
	return "", false
}

// AsBytes returns v's raw bytes.
func (v PropVal) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	cp := make([]byte, len(v.y))
	copy(cp, v.y)
	return cp, true
}

// AsArray returns v's elements.
func (v PropVal) AsArray() ([]PropVal, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	cp := make([]PropVal, len(v.a))
	copy(cp, v.a)
	return cp, true
}

// AsProps returns v's props map.
func (v PropVal) AsProps() (*Props, bool) {
	if v.kind != KindProps {
		return nil, false
	}
	return v.o, true
}

// Clone deep-copies v.
func (v PropVal) Clone() PropVal {
	switch v.kind {
	case KindBytes:
		return BytesVal(v.y)
	case KindArray:
		out := make([]PropVal, len(v.a))
		for i, e := range v.a {
			out[i] = e.Clone()
		}
		return PropVal{kind: KindArray, a: out}
	case KindProps:
		return PropsVal(v.o.Clone())
	default:
		return v
	}
}

// Equal implements the cross-type equality rules: name cross-identifies
// with string, bool cross-identifies with int64 in {0,1}, and none is
// absorbing within props (handled in Props.Equal).
func (v PropVal) Equal(o PropVal) bool {
	switch v.kind {
	case KindNone:
		return o.kind == KindNone
	case KindBool:
		ob, ok := o.AsBool()
		return ok && v.b == ob
	case KindInt64:
		oi, ok := o.AsInt64()
		return ok && v.i == oi
	case KindReal:
		return o.kind == KindReal && v.r == o.r
	case KindName, KindString:
		os, ok := o.AsString()
		return ok && (o.kind == KindName || o.kind == KindString) && v.strVal() == os
	case KindBytes:
		if o.kind != KindBytes || len(v.y) != len(o.y) {
			return false
		}
		for i := range v.y {
			if v.y[i] != o.y[i] {
				return false
			}
		}
		return true
	case KindArray:
		if o.kind != KindArray || len(v.a) != len(o.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(o.a[i]) {
				return false
			}
		}
		return true
	case KindProps:
		if o.kind != KindProps {
			return false
		}
		return v.o.Equal(o.o)
	default:
		return false
	}
}

func (v PropVal) strVal() string {
	if v.kind == KindName {
		return nameintern.String(v.n)
	}
	return v.s
}

// propEntry is one (key, value) pair of an ordered Props map.
type propEntry struct {
	key PropKey
	val PropVal
}

// Props is an ordered map from PropKey to PropVal, kept sorted by the
// PropKey identity ordering at all times so that iteration, diff,
// merge and JSON encoding can all walk it as a single sorted sequence,
// the way _examples/original_source/src/Props.cxx walks a
// std::map<PropKey, PropVal> with a custom comparator.
type Props struct {
	entries []propEntry
}

// NewProps returns a new, empty Props map.
func NewProps() *Props {
	return &Props{}
}

// Len returns the number of entries in p.
func (p *Props) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

func (p *Props) search(key PropKey) (int, bool) {
	lo, hi := 0, len(p.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		e := p.entries[mid].key
		if e.Equal(key) {
			return mid, true
		}
		if e.Less(key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, false
}

// Get returns the value stored at key, and whether it was present.
func (p *Props) Get(key PropKey) (PropVal, bool) {
	if p == nil {
		return PropVal{}, false
	}
	idx, ok := p.search(key)
	if !ok {
		return PropVal{}, false
	}
	return p.entries[idx].val, true
}

// GetName is a convenience wrapper around Get for a name-keyed (string)
// entry.
func (p *Props) GetName(name string) (PropVal, bool) {
	return p.Get(StrKey(name))
}

// Set inserts or updates the value at key, keeping entries sorted.
func (p *Props) Set(key PropKey, val PropVal) {
	idx, ok := p.search(key)
	if ok {
		p.entries[idx].val = val
		return
	}
	p.entries = append(p.entries, propEntry{})
	copy(p.entries[idx+1:], p.entries[idx:])
	p.entries[idx] = propEntry{key: key, val: val}
}

// SetName is a convenience wrapper around Set for a name-keyed entry.
func (p *Props) SetName(name string, val PropVal) {
	p.Set(StrKey(name), val)
}

// Delete removes the entry at key, if present.
func (p *Props) Delete(key PropKey) {
	idx, ok := p.search(key)
	if !ok {
		return
	}
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
}

// Range calls fn for each entry in identity order, stopping early if fn
// returns false.
func (p *Props) Range(fn func(PropKey, PropVal) bool) {
	if p == nil {
		return
	}
	for _, e := range p.entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Keys returns the ordered list of keys.
func (p *Props) Keys() []PropKey {
	out := make([]PropKey, p.Len())
	for i, e := range p.entries {
		out[i] = e.key
	}
	return out
}

// Clone deep-copies p.
func (p *Props) Clone() *Props {
	if p == nil {
		return NewProps()
	}
	out := &Props{entries: make([]propEntry, len(p.entries))}
	for i, e := range p.entries {
		out.entries[i] = propEntry{key: e.key, val: e.val.Clone()}
	}
	return out
}

// Equal implements a "none is absorbing" equality: two props maps are
// equal iff they agree on all keys whose values (on either side) are
// not none. A key present on only one side must carry a none value to
// still compare equal, mirroring Props.cxx's operator==.
func (p *Props) Equal(o *Props) bool {
	i, j := 0, 0
	pe, oe := p.entries, o.entries
	for i < len(pe) && j < len(oe) {
		ka, kb := pe[i].key, oe[j].key
		switch {
		case ka.Equal(kb):
			if !pe[i].val.Equal(oe[j].val) {
				return false
			}
			i++
			j++
		case ka.Less(kb):
			if !pe[i].val.IsNone() {
				return false
			}
			i++
		default:
			if !oe[j].val.IsNone() {
				return false
			}
			j++
		}
	}
	for ; i < len(pe); i++ {
		if !pe[i].val.IsNone() {
			return false
		}
	}
	for ; j < len(oe); j++ {
		if !oe[j].val.IsNone() {
			return false
		}
	}
	return true
}
