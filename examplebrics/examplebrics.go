// Package examplebrics provides a handful of concrete bric classes —
// Const, LinCalib, Sequence and Sum — registered under dbrx/bric's
// dynamic class registry so configuration fixtures can reference them
// by a "type" tag. Grounded on the reference classes in
// _examples/original_source/src/basicbrics.h.
package examplebrics

import "reflect"

var realType = reflect.TypeOf(float64(0))

// must panics if registering a terminal on a freshly built bric fails,
// which can only happen from a programming error (a duplicate or
// reserved name) in one of this package's own factories.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func init() {
	registerAll()
}
