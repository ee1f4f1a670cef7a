package bric

import (
	"github.com/satori/uuid"

	"dbrx/dbrxerr"
	"dbrx/propval"
)

// isBricConfig reports whether config is shaped like a dynamic bric
// declaration: a props map carrying a string-valued "type" key.
func isBricConfig(config propval.PropVal) bool {
	props, ok := config.AsProps()
	if !ok {
		return false
	}
	typeVal, ok := props.Get(typeKey)
	if !ok {
		return false
	}
	_, isStr := typeVal.AsString()
	return isStr
}

// addDynBric instantiates, names, registers and configures a dynamic
// sub-bric from a "type"-tagged config map, following
// Bric::addDynBric(PropKey, const PropVal&).
func (b *Bric) addDynBric(bricName propval.PropKey, config propval.PropVal) error {
	if !b.caps.CanHaveDynBrics {
		return dbrxerr.Wiringf("bric %q cannot have dynamic sub-brics", b.AbsolutePath())
	}
	if !isBricConfig(config) {
		return dbrxerr.Configurationf("invalid configuration format for dynamic sub-bric %q in bric %q", bricName, b.AbsolutePath())
	}
	props, _ := config.AsProps()
	typeVal, _ := props.Get(typeKey)
	className, _ := typeVal.AsString()

	sub, err := newFromTypeName(className)
	if err != nil {
		return err
	}
	sub.name = bricName
	sub.setParent(b)
	sub.instanceID = uuid.NewV4()

	b.dynBrics[bricName] = sub
	b.dynBricClasses[bricName] = className
	b.insertComponent(bricName, sub)

	return sub.ApplyConfig(config)
}

// delDynBric removes a dynamic sub-bric and its component-list entry.
func (b *Bric) delDynBric(bricName propval.PropKey) {
	delete(b.dynBrics, bricName)
	delete(b.dynBricClasses, bricName)
	if idx, ok := b.search(bricName); ok {
		b.components = append(b.components[:idx], b.components[idx+1:]...)
	}
}

// ApplyConfig walks config in identity order, applying each entry to
// the matching existing component, reconfiguring or recreating a
// dynamic sub-bric, or instantiating a new one from a "type"-tagged
// value. The reserved "type" key (present when config is itself a
// dynamic-bric declaration) is skipped, matching
// Bric::applyConfig.
func (b *Bric) ApplyConfig(config propval.PropVal) error {
	props, ok := config.AsProps()
	if !ok {
		return dbrxerr.Configurationf("configuration for bric %q must be a props map, got %s", b.AbsolutePath(), config.Kind())
	}

	var rangeErr error
	props.Range(func(componentName propval.PropKey, componentConfig propval.PropVal) bool {
		if componentName.Equal(typeKey) {
			return true
		}

		if className, isDyn := b.dynBricClasses[componentName]; isDyn {
			if componentConfig.IsNone() {
				b.delDynBric(componentName)
				return true
			}
			if isBricConfig(componentConfig) {
				cfgProps, _ := componentConfig.AsProps()
				typeVal, _ := cfgProps.Get(typeKey)
				newClassName, _ := typeVal.AsString()
				if newClassName != className {
					b.delDynBric(componentName)
					rangeErr = b.addDynBric(componentName, componentConfig)
					return rangeErr == nil
				}
			}
			rangeErr = b.dynBrics[componentName].ApplyConfig(componentConfig)
			return rangeErr == nil
		}

		if comp, err := b.GetComponent(componentName); err == nil {
			rangeErr = comp.ApplyConfig(componentConfig)
			return rangeErr == nil
		}

		if isBricConfig(componentConfig) {
			rangeErr = b.addDynBric(componentName, componentConfig)
			return rangeErr == nil
		}

		rangeErr = dbrxerr.Configurationf("invalid configuration, bric %q doesn't have a component named %q", b.AbsolutePath(), componentName)
		return false
	})

	return rangeErr
}

// GetConfig reassembles the bric's configuration from its components,
// in identity order, re-attaching the "type" tag for dynamic children.
func (b *Bric) GetConfig() propval.PropVal {
	props := propval.NewProps()
	for _, entry := range b.components {
		componentConfig := entry.comp.GetConfig()
		if className, isDyn := b.dynBricClasses[entry.key]; isDyn {
			cfgProps, ok := componentConfig.AsProps()
			if !ok {
				cfgProps = propval.NewProps()
			}
			cfgProps.Set(typeKey, propval.Str(className))
			props.Set(entry.key, propval.PropsVal(cfgProps))
			continue
		}
		if !componentConfig.IsNone() {
			props.Set(entry.key, componentConfig)
		}
	}
	return propval.PropsVal(props)
}
