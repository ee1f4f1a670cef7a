package bric

import (
	"reflect"

	"github.com/satori/uuid"

	"dbrx/dbrxerr"
	"dbrx/nameintern"
	"dbrx/propval"
)

var (
	typeKey  = propval.StrKey("type")
	emptyKey = propval.NameKey(nameintern.Empty)
)

// Capabilities is a bric's capability vector: which terminal kinds it
// may host, statically or dynamically.
type Capabilities struct {
	CanHaveInputs     bool
	CanHaveOutputs    bool
	CanHaveDynInputs  bool
	CanHaveDynOutputs bool
	CanHaveDynBrics   bool
}

type componentEntry struct {
	key  propval.PropKey
	comp Component
}

// Bric is a named processing node: a component itself (so it can be
// nested), and a registrar for its own child components. All state is
// ephemeral; nothing survives a process restart.
type Bric struct {
	baseComponent
	caps Capabilities

	components []componentEntry

	brics     map[propval.PropKey]*Bric
	inputs    map[propval.PropKey]*InputTerminal
	outputs   map[propval.PropKey]*OutputTerminal
	params    map[propval.PropKey]*ParamTerminal
	terminals map[propval.PropKey]Terminal

	dynBrics       map[propval.PropKey]*Bric
	dynBricClasses map[propval.PropKey]string
	dynTerminals   map[propval.PropKey]Terminal

	sources            []*Bric
	dests              []*Bric
	hasExternalSources bool
	inputsConnected    bool

	behavior interface{}

	instanceID uuid.UUID
}

// NewBric allocates an empty bric with the given name and capability
// vector.
func NewBric(name string, caps Capabilities) *Bric {
	return &Bric{
		baseComponent:  baseComponent{name: propval.StrKey(name)},
		caps:           caps,
		brics:          make(map[propval.PropKey]*Bric),
		inputs:         make(map[propval.PropKey]*InputTerminal),
		outputs:        make(map[propval.PropKey]*OutputTerminal),
		params:         make(map[propval.PropKey]*ParamTerminal),
		terminals:      make(map[propval.PropKey]Terminal),
		dynBrics:       make(map[propval.PropKey]*Bric),
		dynBricClasses: make(map[propval.PropKey]string),
		dynTerminals:   make(map[propval.PropKey]Terminal),
	}
}

// SetBehavior attaches the execution hooks (processInput and friends)
// implemented by the concrete bric composing this *Bric. The scheduler
// type-asserts the stored value against the small interfaces it needs,
// composition standing in for what would otherwise be inheritance.
func (b *Bric) SetBehavior(impl interface{}) { b.behavior = impl }

// Behavior returns whatever was last passed to SetBehavior.
func (b *Bric) Behavior() interface{} { return b.behavior }

// Caps returns the bric's capability vector.
func (b *Bric) Caps() Capabilities { return b.caps }

// InstanceID returns the identifier assigned when this bric was
// instantiated dynamically from a "type" tag, for correlating log
// lines across a sub-bric's destroy/recreate cycle. It is the zero
// UUID for a statically composed bric.
func (b *Bric) InstanceID() uuid.UUID { return b.instanceID }

func (b *Bric) search(key propval.PropKey) (int, bool) {
	lo, hi := 0, len(b.components)
	for lo < hi {
		mid := (lo + hi) / 2
		k := b.components[mid].key
		if k.Equal(key) {
			return mid, true
		}
		if k.Less(key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, false
}

func (b *Bric) insertComponent(key propval.PropKey, comp Component) {
	idx, ok := b.search(key)
	if ok {
		b.components[idx].comp = comp
		return
	}
	b.components = append(b.components, componentEntry{})
	copy(b.components[idx+1:], b.components[idx:])
	b.components[idx] = componentEntry{key: key, comp: comp}
}

// HasComponent reports whether a direct child with this name exists.
func (b *Bric) HasComponent(key propval.PropKey) bool {
	_, ok := b.search(key)
	return ok
}

// GetComponent returns the direct child registered under key.
func (b *Bric) GetComponent(key propval.PropKey) (Component, error) {
	idx, ok := b.search(key)
	if !ok {
		return nil, dbrxerr.Wiringf("no component %q found in bric %q", key, b.AbsolutePath())
	}
	return b.components[idx].comp, nil
}

// Components returns the registered children in identity order, the
// single source of truth for iteration.
func (b *Bric) Components() []Component {
	out := make([]Component, len(b.components))
	for i, e := range b.components {
		out[i] = e.comp
	}
	return out
}

// registerComponent enforces the registration rules: no reserved "type"
// name, no empty name, no duplicate name, and capability checks for
// terminal kinds the bric disallows.
func (b *Bric) registerComponent(key propval.PropKey, comp Component) error {
	if key.Equal(typeKey) {
		return dbrxerr.Wiringf("can't add component with reserved name \"type\" to bric %q", b.AbsolutePath())
	}
	if key.Equal(emptyKey) {
		return dbrxerr.Wiringf("can't register a component with an empty name in bric %q", b.AbsolutePath())
	}
	if b.HasComponent(key) {
		return dbrxerr.Wiringf("can't add duplicate component %q to bric %q", key, b.AbsolutePath())
	}

	switch c := comp.(type) {
	case *Bric:
		c.setParent(b)
		b.brics[key] = c
	case *ParamTerminal:
		c.setParent(b)
		b.params[key] = c
		b.terminals[key] = c
	case *OutputTerminal:
		if !b.caps.CanHaveOutputs {
			return dbrxerr.Wiringf("bric %q cannot have outputs", b.AbsolutePath())
		}
		c.setParent(b)
		b.outputs[key] = c
		b.terminals[key] = c
	case *InputTerminal:
		if !b.caps.CanHaveInputs {
			return dbrxerr.Wiringf("bric %q cannot have inputs", b.AbsolutePath())
		}
		c.setParent(b)
		b.inputs[key] = c
		b.terminals[key] = c
	default:
		return dbrxerr.Wiringf("unknown component type for %q", key)
	}

	b.insertComponent(key, comp)
	return nil
}

// unregisterComponent inverts registerComponent exactly.
func (b *Bric) unregisterComponent(key propval.PropKey) {
	delete(b.brics, key)
	delete(b.params, key)
	delete(b.outputs, key)
	delete(b.inputs, key)
	delete(b.terminals, key)

	if idx, ok := b.search(key); ok {
		b.components = append(b.components[:idx], b.components[idx+1:]...)
	}
}

// AddInput declares and registers a new input terminal.
func (b *Bric) AddInput(name string, typ reflect.Type) (*InputTerminal, error) {
	in := NewInput(name, typ)
	if err := b.registerComponent(in.name, in); err != nil {
		return nil, err
	}
	return in, nil
}

// AddOutput declares and registers a new output terminal.
func (b *Bric) AddOutput(name string, typ reflect.Type) (*OutputTerminal, error) {
	out := NewOutput(name, typ)
	if err := b.registerComponent(out.name, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddParam declares and registers a new param terminal.
func (b *Bric) AddParam(name string, typ reflect.Type) (*ParamTerminal, error) {
	p := NewParam(name, typ)
	if err := b.registerComponent(p.name, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddSubBric registers an already-constructed static sub-bric.
func (b *Bric) AddSubBric(sub *Bric) error {
	return b.registerComponent(sub.name, sub)
}

// GetBric returns the named direct sub-bric (static or dynamic).
func (b *Bric) GetBric(key propval.PropKey) (*Bric, error) {
	if sub, ok := b.brics[key]; ok {
		return sub, nil
	}
	if sub, ok := b.dynBrics[key]; ok {
		return sub, nil
	}
	return nil, dbrxerr.Wiringf("no bric %q found in bric %q", key, b.AbsolutePath())
}

// GetTerminal returns the named terminal, static or dynamic.
func (b *Bric) GetTerminal(key propval.PropKey) (Terminal, error) {
	if t, ok := b.terminals[key]; ok {
		return t, nil
	}
	if t, ok := b.dynTerminals[key]; ok {
		return t, nil
	}
	return nil, dbrxerr.Wiringf("no terminal %q found in bric %q", key, b.AbsolutePath())
}

// GetInput returns the named input terminal.
func (b *Bric) GetInput(key propval.PropKey) (*InputTerminal, error) {
	t, err := b.GetTerminal(key)
	if err != nil {
		return nil, err
	}
	in, ok := t.(*InputTerminal)
	if !ok {
		return nil, dbrxerr.Wiringf("terminal %q in bric %q is not an input", key, b.AbsolutePath())
	}
	return in, nil
}

// GetOutput returns the named output terminal.
func (b *Bric) GetOutput(key propval.PropKey) (*OutputTerminal, error) {
	t, err := b.GetTerminal(key)
	if err != nil {
		return nil, err
	}
	out, ok := t.(*OutputTerminal)
	if !ok {
		return nil, dbrxerr.Wiringf("terminal %q in bric %q is not an output", key, b.AbsolutePath())
	}
	return out, nil
}

// GetParam returns the named param terminal.
func (b *Bric) GetParam(key propval.PropKey) (*ParamTerminal, error) {
	t, err := b.GetTerminal(key)
	if err != nil {
		return nil, err
	}
	p, ok := t.(*ParamTerminal)
	if !ok {
		return nil, dbrxerr.Wiringf("terminal %q in bric %q is not a param", key, b.AbsolutePath())
	}
	return p, nil
}

// addDynOutput registers a dynamically created output terminal, used by
// connectInputToInner when a bric with CanHaveDynOutputs is asked to
// resolve a source name it doesn't statically have.
func (b *Bric) addDynOutput(out *OutputTerminal) error {
	if !b.caps.CanHaveDynOutputs {
		return dbrxerr.Wiringf("bric %q cannot have dynamic outputs", b.AbsolutePath())
	}
	out.setParent(b)
	b.dynTerminals[out.name] = out
	return nil
}

// addDynInput registers a dynamically created input terminal, used by
// connectOwnInputTo when a bric with CanHaveDynInputs is asked to bind a
// name it doesn't statically have.
func (b *Bric) addDynInput(in *InputTerminal) error {
	if !b.caps.CanHaveDynInputs {
		return dbrxerr.Wiringf("bric %q cannot have dynamic inputs", b.AbsolutePath())
	}
	in.setParent(b)
	b.dynTerminals[in.name] = in
	return nil
}

// SubBrics returns the bric's static and dynamic sub-brics.
func (b *Bric) SubBrics() map[propval.PropKey]*Bric {
	out := make(map[propval.PropKey]*Bric, len(b.brics)+len(b.dynBrics))
	for k, v := range b.brics {
		out[k] = v
	}
	for k, v := range b.dynBrics {
		out[k] = v
	}
	return out
}

// Sources returns the sibling brics this bric depends on, set up by
// connectInputs/addSource.
func (b *Bric) Sources() []*Bric { return b.sources }

// Dests returns the sibling brics that depend on this bric.
func (b *Bric) Dests() []*Bric { return b.dests }

// HierarchyLevel returns the number of ancestors above this bric.
func (b *Bric) HierarchyLevel() int {
	level := 0
	for p := b.Parent(); p != nil; p = p.Parent() {
		level++
	}
	return level
}

// SiblingOf reports whether b and other share the same parent.
func (b *Bric) SiblingOf(other *Bric) bool {
	return b.Parent() != nil && b.Parent() == other.Parent()
}
