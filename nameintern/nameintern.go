// Package nameintern interns strings into stable, comparable
// identifiers. Equality and ordering on a Name compare identifiers,
// not string contents, so repeated path-resolution lookups are cheap
// integer comparisons rather than string comparisons.
//
// The registry only grows for the lifetime of the process: once a string
// is interned it keeps its id, and no id is ever reused. This mirrors the
// grow-only discipline of _examples/original_source/src/NameTable.cxx,
// generalized from that C++ singleton to a mutex-guarded Go registry in
// the shape of bg/ap_common/broker.go's shared, lock-protected socket
// state.
package nameintern

import "sync"

// Name is a stable identifier for an interned string. The zero Name is
// the distinguished empty name, matching NameTable.cxx's reservation of
// id 0 for "".
type Name uint32

// Empty is the interned empty string.
const Empty Name = 0

// Table is a thread-safe string-interning registry.
type Table struct {
	mu      sync.RWMutex
	byStr   map[string]Name
	strings []string
}

// NewTable returns a fresh, empty interning table with the empty string
// already registered as Empty.
func NewTable() *Table {
	t := &Table{
		byStr:   map[string]Name{"": Empty},
		strings: []string{""},
	}
	return t
}

// Default is the process-wide name table used by packages that don't
// carry their own.
var Default = NewTable()

// Intern returns the stable Name for s, allocating a new one if s hasn't
// been seen before.
func (t *Table) Intern(s string) Name {
	if s == "" {
		return Empty
	}

	t.mu.RLock()
	if n, ok := t.byStr[s]; ok {
		t.mu.RUnlock()
		return n
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.byStr[s]; ok {
		return n
	}
	n := Name(len(t.strings))
	t.strings = append(t.strings, s)
	t.byStr[s] = n
	return n
}

// Intern interns s in the default table.
func Intern(s string) Name { return Default.Intern(s) }

// String returns the string a Name was interned from.
func (t *Table) String(n Name) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(n) >= len(t.strings) {
		return ""
	}
	return t.strings[n]
}

// String returns the string a Name was interned from in the default
// table.
func String(n Name) string { return Default.String(n) }

// Len reports how many distinct strings have been interned.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}
