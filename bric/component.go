// Package bric implements the bric graph: named components (sub-brics
// and terminals) registered into an ordered parent, the
// ascend/descend reference-path resolver that wires inputs to
// outputs, and ordered configuration application.
//
// The source this is ported from (_examples/original_source/src/
// Bric.h/.cxx) builds this out of several virtual-inheritance mixins
// (BricComponent, Terminal, HasPrimaryValue, ...). Here it becomes a
// single concrete Bric struct holding its components plus a
// capability set, with the five standard bric variants becoming
// plain Go structs that compose a *Bric rather than inherit from
// it — the same composition-over-inheritance shape bg/common/
// cfgtree.go uses for its PNode tree.
package bric

import "dbrx/propval"

// Component is a named child of a Bric: a sub-bric, or one of the three
// terminal kinds. ApplyConfig/GetConfig let Bric.applyConfig/getConfig
// dispatch generically over every component the way
// _examples/original_source/src/Bric.cxx's applyConfig/getConfig do.
type Component interface {
	Name() propval.PropKey
	Parent() *Bric
	AbsolutePath() propval.PropPath
	ApplyConfig(propval.PropVal) error
	GetConfig() propval.PropVal
}

// baseComponent is embedded by every Component implementation to supply
// the name/parent bookkeeping common to sub-brics and terminals alike.
type baseComponent struct {
	name   propval.PropKey
	parent *Bric
}

func (c *baseComponent) Name() propval.PropKey { return c.name }

func (c *baseComponent) Parent() *Bric { return c.parent }

func (c *baseComponent) setParent(p *Bric) { c.parent = p }

// AbsolutePath returns the dot-path from the root bric to this
// component, walking the parent pointer chain.
func (c *baseComponent) AbsolutePath() propval.PropPath {
	if c.parent == nil {
		return propval.PropPath{c.name}
	}
	path := c.parent.AbsolutePath()
	out := make(propval.PropPath, len(path)+1)
	copy(out, path)
	out[len(path)] = c.name
	return out
}
