package main

import (
	"path/filepath"
	"strings"

	"dbrx/dbrxerr"
	"dbrx/propval"
)

// parseVars turns a list of "-V NAME=VALUE" flag values into a vars
// props map, following ApplicationConfig::addVar's "name=value" split.
func parseVars(defs []string) (*propval.Props, error) {
	vars := propval.NewProps()
	for _, def := range defs {
		eq := strings.IndexByte(def, '=')
		if eq < 0 {
			return nil, dbrxerr.Configurationf("invalid variable specification %q, must have format \"name=value\"", def)
		}
		name, val := def[:eq], def[eq+1:]
		vars.SetName(name, propval.FromLiteral(val))
	}
	return vars, nil
}

// loadConfigs reads and left-to-right patches every config file named
// in paths into one props map, following
// ApplicationConfig::addConfigFromFile/finalize. When substitute is
// set, each file first gets its own "$_" reference resolved to its
// containing directory (ignoring any other unresolved variable, since
// the bulk of substitution happens once over the merged result), then
// the merged result is substituted against vars (and, if useEnv is
// set, the process environment), strictly: an unresolved variable is
// a ConfigurationError.
func loadConfigs(paths []string, vars *propval.Props, substitute, useEnv bool) (propval.PropVal, error) {
	merged := propval.NewProps()

	for _, path := range paths {
		v, err := propval.LoadFile(path)
		if err != nil {
			return propval.PropVal{}, err
		}
		if substitute {
			pathVars := propval.NewProps()
			pathVars.SetName("_", propval.Str(filepath.Dir(path)))
			v, err = v.SubstVars(pathVars, false, true)
			if err != nil {
				return propval.PropVal{}, err
			}
		}
		props, ok := v.AsProps()
		if !ok {
			return propval.PropVal{}, dbrxerr.Configurationf("invalid config in %q, must contain an object, not a value or an array", path)
		}
		propval.Patch(merged, props)
	}

	result := propval.PropsVal(merged)
	if substitute {
		var err error
		result, err = result.SubstVars(vars, useEnv, false)
		if err != nil {
			return propval.PropVal{}, err
		}
	}
	return result, nil
}
