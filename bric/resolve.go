package bric

import (
	"sort"

	"dbrx/dbrxerr"
	"dbrx/propval"
)

// Default names used to resolve a bare sibling/ancestor reference path
// that doesn't name a terminal explicitly, per
// _examples/original_source/src/Bric.cxx's s_defaultInputName/
// s_defaultOutputName.
var (
	defaultInputName  = propval.StrKey("input")
	defaultOutputName = propval.StrKey("output")
)

// connectInputToInner descends from b along sourcePath to find the
// output (or inner terminal) that dst's input should bind to, creating a
// dynamic output on the fly if b allows it and sourcePath names none of
// its static components.
func (b *Bric) connectInputToInner(dst *Bric, inputName propval.PropKey, sourcePath propval.PropPath) (*InputTerminal, error) {
	if len(sourcePath) == 0 {
		sourcePath = propval.PropPath{defaultOutputName}
	}
	sourceName, rest := sourcePath.Head()

	if comp, err := b.GetComponent(sourceName); err == nil {
		switch c := comp.(type) {
		case *Bric:
			return c.connectInputToInner(dst, inputName, rest)
		case Terminal:
			return dst.connectOwnInputTo(inputName, c)
		default:
			return nil, dbrxerr.Wiringf("component %q in bric %q is neither a bric nor a terminal", sourceName, b.AbsolutePath())
		}
	}

	if b.caps.CanHaveDynOutputs {
		input, err := dst.GetInput(inputName)
		if err != nil {
			return nil, dbrxerr.Wiringf("no input %q found in bric %q", inputName, dst.AbsolutePath())
		}
		out := NewOutput(sourceName.String(), input.Type())
		if err := b.addDynOutput(out); err != nil {
			return nil, err
		}
		return dst.connectOwnInputTo(inputName, out)
	}

	return nil, dbrxerr.Wiringf("couldn't resolve source path %q for input %q of bric %q, no such component in bric %q",
		sourcePath, inputName, dst.AbsolutePath(), b.AbsolutePath())
}

// connectInputToSiblingOrUp ascends from b toward the common ancestor
// that sourcePath's leading component names, then descends via
// connectInputToInner, mirroring Bric::connectInputToSiblingOrUp.
func (b *Bric) connectInputToSiblingOrUp(dst *Bric, inputName propval.PropKey, sourcePath propval.PropPath) (*InputTerminal, error) {
	if len(sourcePath) == 0 {
		return nil, dbrxerr.Wiringf("empty source path while looking up source for input %q of bric %q inside bric %q",
			inputName, dst.AbsolutePath(), b.AbsolutePath())
	}
	siblingName, rest := sourcePath.Head()

	if siblingName.Equal(b.name) {
		return b.connectInputToInner(dst, inputName, rest)
	}

	parent := b.Parent()
	if parent == nil {
		return nil, dbrxerr.Wiringf("reached top-level bric %q while looking up source for input %q in bric %q",
			b.AbsolutePath(), inputName, dst.AbsolutePath())
	}

	sibling, ok := parent.brics[siblingName]
	if !ok {
		sibling, ok = parent.dynBrics[siblingName]
	}
	if ok {
		return sibling.connectInputToInner(dst, inputName, rest)
	}

	input, err := parent.connectInputToSiblingOrUp(dst, inputName, sourcePath)
	if err != nil {
		return nil, err
	}
	b.hasExternalSources = true
	return input, nil
}

// connectOwnInputTo binds dst's named input to source, creating a
// dynamic input if dst allows it and doesn't already have that name.
func (dst *Bric) connectOwnInputTo(inputName propval.PropKey, source Terminal) (*InputTerminal, error) {
	if input, ok := dst.inputs[inputName]; ok {
		out, ok := source.(*OutputTerminal)
		if !ok {
			return nil, dbrxerr.Wiringf("source %q for input %q of bric %q is not an output terminal",
				source.AbsolutePath(), inputName, dst.AbsolutePath())
		}
		if err := input.ConnectTo(out); err != nil {
			return nil, err
		}
		return input, nil
	}

	if dst.caps.CanHaveDynInputs {
		out, ok := source.(*OutputTerminal)
		if !ok {
			return nil, dbrxerr.Wiringf("source %q for dynamic input %q of bric %q is not an output terminal",
				source.AbsolutePath(), inputName, dst.AbsolutePath())
		}
		input := NewInput(inputName.String(), source.Type())
		if err := dst.addDynInput(input); err != nil {
			return nil, err
		}
		if err := input.ConnectTo(out); err != nil {
			return nil, err
		}
		return input, nil
	}

	return nil, dbrxerr.Wiringf("can't connect non-existing input %q to terminal %q", inputName, source.AbsolutePath())
}

// disconnectInputs tears down every reference edge under b, recursively,
// ahead of a full reconnect pass.
func (b *Bric) disconnectInputs() {
	for _, sub := range b.brics {
		sub.disconnectInputs()
	}
	for _, sub := range b.dynBrics {
		sub.disconnectInputs()
	}

	b.sources = nil
	b.hasExternalSources = false
	b.inputsConnected = false
	b.dests = nil
	b.dynTerminals = make(map[propval.PropKey]Terminal)
}

// connectInputs resolves every non-fixed input under b against its
// configured source path, recursively, and then settles sources/dests.
func (b *Bric) connectInputs() error {
	if b.inputsConnected {
		return dbrxerr.Schedulef("can't connect already-connected inputs in bric %q", b.AbsolutePath())
	}

	for _, input := range b.inputs {
		if input.HasFixedValue() {
			continue
		}
		if _, err := b.connectInputToSiblingOrUp(b, input.name, input.Source()); err != nil {
			return err
		}
	}

	for _, sub := range b.brics {
		if err := sub.connectInputs(); err != nil {
			return err
		}
	}
	for _, sub := range b.dynBrics {
		if err := sub.connectInputs(); err != nil {
			return err
		}
	}
	for _, sub := range b.brics {
		sub.updateDeps()
	}
	for _, sub := range b.dynBrics {
		sub.updateDeps()
	}
	b.inputsConnected = true
	return nil
}

// Initializable is implemented by a bric variant that must prepare
// internal state once a full connectInputs pass has resolved the whole
// hierarchy's wiring — stdbric.Composite, to build its nested
// scheduler over now-connected sub-brics. Declared here rather than
// where it's implemented so bric never needs to import stdbric.
type Initializable interface {
	Init() error
}

// InitHierarchy disconnects and re-resolves every reference-path input
// in the bric tree rooted at b, then lets every nested Initializable
// behavior prepare its own state, children before parents. Grounded on
// _examples/original_source/src/Bric.cxx's initBricHierarchy/
// initRecursive.
func (b *Bric) InitHierarchy() error {
	if b.Parent() != nil {
		return dbrxerr.Wiringf("can't init bric hierarchy starting from bric %q, not a top bric", b.AbsolutePath())
	}
	b.disconnectInputs()
	if err := b.connectInputs(); err != nil {
		return err
	}
	return b.initRecursive()
}

func (b *Bric) initRecursive() error {
	for _, sub := range b.brics {
		if err := sub.initRecursive(); err != nil {
			return err
		}
	}
	for _, sub := range b.dynBrics {
		if err := sub.initRecursive(); err != nil {
			return err
		}
	}
	if initer, ok := b.behavior.(Initializable); ok {
		return initer.Init()
	}
	return nil
}

// updateDeps sorts and dedupes b's source/dest edges.
func (b *Bric) updateDeps() {
	b.sources = sortUniqueBrics(b.sources)
	b.dests = sortUniqueBrics(b.dests)
}

func sortUniqueBrics(in []*Bric) []*Bric {
	if len(in) < 2 {
		return in
	}
	seen := make(map[*Bric]bool, len(in))
	out := in[:0]
	for _, b := range in {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name.Less(out[j].name) })
	return out
}

// addSource establishes a source/dest edge between the sibling
// ancestors of b and source that sit at the same hierarchy level,
// mirroring Bric::addSource's ascend-to-common-siblings walk. It
// returns the resolved source bric (the sibling-level ancestor of
// source, not necessarily source itself).
func (b *Bric) addSource(source *Bric) (*Bric, error) {
	dst := b
	src := source

	dstDepth := dst.HierarchyLevel()
	srcDepth := src.HierarchyLevel()
	for i := dstDepth; i > srcDepth; i-- {
		dst = dst.Parent()
	}
	for i := srcDepth; i > dstDepth; i-- {
		src = src.Parent()
	}

	for dst.Parent() != nil && !src.SiblingOf(dst) {
		dst = dst.Parent()
		src = src.Parent()
	}

	if src.SiblingOf(dst) {
		dst.sources = append(dst.sources, src)
		src.dests = append(src.dests, dst)
		return src, nil
	}

	return nil, dbrxerr.Wiringf("can't establish source/dest relationship between unrelated brics %q and %q",
		b.AbsolutePath(), source.AbsolutePath())
}
