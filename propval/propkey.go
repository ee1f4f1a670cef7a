// Package propval implements the property tree: PropKey, PropPath and
// PropVal. It is the self-describing, ordered, typed value tree used
// for configuration, reference paths, variable substitution and
// serialization throughout the engine.
//
// The Go shape (an ordered slice of key/value pairs rather than a native
// map) follows bg/common/cfgtree.go's PNode, whose Children are likewise
// walked in a stable, non-alphabetic order; the cross-type equality,
// diff/merge/patch and substitution rules are grounded directly on
// _examples/original_source/src/Props.cxx, whose tree is untyped and
// string-valued-leaves only.
package propval

import (
	"strconv"

	"dbrx/nameintern"
)

// PropKey is a sum of two variants: a 64-bit integer, or an interned
// name. Keys of different variants are strictly ordered (integers before
// names) and compare equal only within the same variant. Name-key
// ordering is by interned identity, not lexicographic order — two
// PropKeys interned from the same table compare in the order their
// underlying strings were first seen.
type PropKey struct {
	isInt bool
	i     int64
	n     nameintern.Name
}

// IntKey builds an integer-variant PropKey.
func IntKey(i int64) PropKey {
	return PropKey{isInt: true, i: i}
}

// NameKey builds a name-variant PropKey from an already-interned Name.
func NameKey(n nameintern.Name) PropKey {
	return PropKey{n: n}
}

// StrKey interns s in the default name table and builds a name-variant
// PropKey from it.
func StrKey(s string) PropKey {
	return NameKey(nameintern.Intern(s))
}

// IsInt reports whether k is the integer variant.
func (k PropKey) IsInt() bool { return k.isInt }

// Int returns the integer value of k. Only meaningful when IsInt is true.
func (k PropKey) Int() int64 { return k.i }

// NameID returns the interned name of k. Only meaningful when IsInt is
// false.
func (k PropKey) NameID() nameintern.Name { return k.n }

// String renders k for display: the decimal integer, or the interned
// string.
func (k PropKey) String() string {
	if k.isInt {
		return strconv.FormatInt(k.i, 10)
	}
	return nameintern.String(k.n)
}

// Equal reports whether two keys are the same variant and value.
func (k PropKey) Equal(o PropKey) bool {
	if k.isInt != o.isInt {
		return false
	}
	if k.isInt {
		return k.i == o.i
	}
	return k.n == o.n
}

// Less implements the identity ordering: integers sort before names;
// within a variant, by numeric value or by interned-name identity.
func (k PropKey) Less(o PropKey) bool {
	if k.isInt != o.isInt {
		return k.isInt
	}
	if k.isInt {
		return k.i < o.i
	}
	return k.n < o.n
}

// ParseKeyComponent builds a PropKey from a single path or JSON-object-key
// component: a string that parses as a decimal integer in the inclusive
// 64-bit range becomes an integer key; anything else becomes an interned
// name key. This is the rule used for recovering JSON object keys,
// reused here for PropPath components too so "&a.3.b" can reach into
// an integer-keyed map the same way a JSON document would.
func ParseKeyComponent(s string) PropKey {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Reject non-canonical forms like "+1", "01", " 1" so that
		// round-tripping IntKey(1).String() -> ParseKeyComponent
		// always recovers the integer variant.
		if strconv.FormatInt(i, 10) == s {
			return IntKey(i)
		}
	}
	return StrKey(s)
}

// PropPath is a non-empty, ordered sequence of PropKey elements,
// identifying a location in a PropVal tree or the target of a reference.
type PropPath []PropKey

// ParsePropPath splits s on "." into path components, converting each
// with ParseKeyComponent. Returns an error if s is empty.
func ParsePropPath(s string) (PropPath, error) {
	if s == "" {
		return nil, errEmptyPath
	}
	var path PropPath
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			path = append(path, ParseKeyComponent(s[start:i]))
			start = i + 1
		}
	}
	return path, nil
}

// String renders a PropPath back into dot-separated form.
func (p PropPath) String() string {
	out := ""
	for i, k := range p {
		if i > 0 {
			out += "."
		}
		out += k.String()
	}
	return out
}

// Head returns the first component and the remaining tail.
func (p PropPath) Head() (PropKey, PropPath) {
	return p[0], p[1:]
}
