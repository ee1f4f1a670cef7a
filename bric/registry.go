package bric

import (
	"sync"

	"dbrx/dbrxerr"
)

// Factory produces a fresh, unconfigured bric of a registered dynamic
// type. The caller assigns it a name and then calls ApplyConfig, the
// same two-step createBricFromTypeName + applyConfig sequence
// _examples/original_source/src/Bric.cxx's addDynBric uses.
//
// The source dispatches a class name onto one of five standard bric
// base classes via RTTI (createBricFromTypeName). Since the Go
// variants don't form a type hierarchy the factory registry here
// dispatches directly by name instead — hosts register every concrete
// dynamic type they want "type" tags to be able to name.
type Factory func() *Bric

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register installs the factory for className, replacing any previous
// registration. Hosts populate this before the first applyConfig call
// that might reference className.
func Register(className string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[className] = f
}

func lookupFactory(className string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[className]
	return f, ok
}

func newFromTypeName(className string) (*Bric, error) {
	f, ok := lookupFactory(className)
	if !ok {
		return nil, dbrxerr.Configurationf("dynamic generation of bric of class %q not supported, no factory registered", className)
	}
	return f(), nil
}
