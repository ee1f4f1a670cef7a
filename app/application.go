// Package app implements the application top-level: the root bric
// holding one sub-bric group named "brics" that contains the user's
// graph, plus the load-time "requires" and "logLevel" parameters and
// the run-to-completion entry point.
package app

import (
	"context"
	"reflect"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dbrx/bric"
	"dbrx/dbrxerr"
	"dbrx/propval"
	"dbrx/stdbric"
)

var (
	stringType      = reflect.TypeOf("")
	stringSliceType = reflect.TypeOf([]string(nil))
	requiresKey     = propval.StrKey("requires")
)

// Application is the top bric of a run: never itself nested under
// another bric, it owns a "brics" Composite holding the user's graph
// and drives it to completion in Run.
type Application struct {
	root     *bric.Bric
	brics    *stdbric.Composite
	requires *bric.ParamTerminal
	logLevel *bric.ParamTerminal

	loader HostLoader
	logger *zap.Logger
	level  zap.AtomicLevel
}

// New builds an Application. loader resolves "requires" entries; pass
// NullLoader{} if the embedder doesn't support them. logger and level
// are optional: when non-nil/non-zero, a configured "logLevel" updates
// level and is logged through logger.
func New(loader HostLoader, logger *zap.Logger, level zap.AtomicLevel) (*Application, error) {
	if loader == nil {
		loader = NullLoader{}
	}

	root := bric.NewBric("", bric.Capabilities{})
	bricsGroup := stdbric.NewComposite("brics", bric.Capabilities{
		CanHaveInputs: true, CanHaveOutputs: true,
		CanHaveDynInputs: true, CanHaveDynOutputs: true,
	})
	if err := root.AddSubBric(bricsGroup.Bric); err != nil {
		return nil, err
	}

	requires, err := root.AddParam("requires", stringSliceType)
	if err != nil {
		return nil, err
	}
	logLevel, err := root.AddParam("logLevel", stringType)
	if err != nil {
		return nil, err
	}
	if err := logLevel.Set("info"); err != nil {
		return nil, err
	}

	return &Application{
		root:     root,
		brics:    bricsGroup,
		requires: requires,
		logLevel: logLevel,
		loader:   loader,
		logger:   logger,
		level:    level,
	}, nil
}

// Brics returns the bric group holding the user's graph, for callers
// to populate via AddSubBric or ApplyConfig before Run.
func (a *Application) Brics() *bric.Bric { return a.brics.Bric }

// GetConfig reports the application's current configuration, including
// its "brics" sub-tree.
func (a *Application) GetConfig() propval.PropVal { return a.root.GetConfig() }

// ApplyConfig processes "requires" first, handing each entry to the
// host loader, then applies the rest of config normally — mirroring
// ApplicationBric::applyConfig's "requirements have to be loaded before
// applying the actual config" ordering.
func (a *Application) ApplyConfig(config propval.PropVal) error {
	props, ok := config.AsProps()
	if !ok {
		return dbrxerr.Configurationf("application configuration must be a props map, got %s", config.Kind())
	}

	rest := props
	if reqVal, ok := props.Get(requiresKey); ok {
		arr, ok := reqVal.AsArray()
		if !ok {
			return dbrxerr.Configurationf("\"requires\" must be an array of strings")
		}
		deps := make([]string, 0, len(arr))
		for _, item := range arr {
			dep, ok := item.AsString()
			if !ok {
				return dbrxerr.Configurationf("\"requires\" entries must be strings")
			}
			if err := a.loader.Load(dep); err != nil {
				return dbrxerr.Resourcef("loading requirement %q failed", dep).Wrap(err)
			}
			deps = append(deps, dep)
		}
		if err := a.requires.Set(deps); err != nil {
			return err
		}
		rest = props.Clone()
		rest.Delete(requiresKey)
	}

	if err := a.root.ApplyConfig(propval.PropsVal(rest)); err != nil {
		return err
	}
	return a.applyLogLevel()
}

func (a *Application) applyLogLevel() error {
	name, _ := a.logLevel.Get().(string)
	if name == "" {
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return dbrxerr.Configurationf("invalid logLevel %q", name).Wrap(err)
	}
	if a.logger == nil {
		return nil
	}
	if a.level.Level() != lvl {
		a.logger.Debug("changing logging level", zap.String("level", lvl.String()))
	}
	a.level.SetLevel(lvl)
	return nil
}

// Run connects every input reference in the hierarchy, initializes
// every nested scheduler, and pumps the graph to completion. It
// refuses to run a hierarchy whose root has been reparented, mirroring
// ApplicationBric::run's own top-bric assertion.
func (a *Application) Run(ctx context.Context) error {
	if a.root.Parent() != nil {
		return dbrxerr.Wiringf("can't run bric %q, not a top bric", a.root.AbsolutePath())
	}

	if err := a.root.InitHierarchy(); err != nil {
		return err
	}

	a.brics.ResetExec()
	for !a.brics.ExecFinished() {
		select {
		case <-ctx.Done():
			return dbrxerr.Schedulef("run cancelled").Wrap(ctx.Err())
		default:
		}
		if _, err := a.brics.NextExecStep(); err != nil {
			return err
		}
	}
	return nil
}
