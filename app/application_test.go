package app

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dbrx/bric"
	"dbrx/propval"
	"dbrx/stdbric"
)

var intType = reflect.TypeOf(int64(0))

type recordingLoader struct {
	loaded []string
}

func (r *recordingLoader) Load(requirement string) error {
	r.loaded = append(r.loaded, requirement)
	return nil
}

type constImport struct {
	out *bric.OutputTerminal
	val int64
}

func (c *constImport) Import() error { return c.out.Set(c.val) }

type doubler struct {
	in  *bric.InputTerminal
	out *bric.OutputTerminal
}

func (d *doubler) ProcessInput() error {
	return d.out.Set(d.in.Get().(int64) * 2)
}

func TestApplyConfigLoadsRequiresBeforeRestOfConfig(t *testing.T) {
	loader := &recordingLoader{}
	a, err := New(loader, nil, zap.AtomicLevel{})
	require.NoError(t, err)

	props := propval.NewProps()
	props.Set(requiresKey, propval.ArrayVal([]propval.PropVal{propval.Str("libfoo.so"), propval.Str("libbar.so")}))

	require.NoError(t, a.ApplyConfig(propval.PropsVal(props)))
	assert.Equal(t, []string{"libfoo.so", "libbar.so"}, loader.loaded)
}

func TestApplyConfigUpdatesLogLevel(t *testing.T) {
	logger := zap.NewNop()
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	a, err := New(NullLoader{}, logger, level)
	require.NoError(t, err)

	props := propval.NewProps()
	props.Set(propval.StrKey("logLevel"), propval.Str("debug"))
	require.NoError(t, a.ApplyConfig(propval.PropsVal(props)))

	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestApplyConfigRejectsInvalidLogLevel(t *testing.T) {
	a, err := New(NullLoader{}, nil, zap.AtomicLevel{})
	require.NoError(t, err)

	props := propval.NewProps()
	props.Set(propval.StrKey("logLevel"), propval.Str("not-a-level"))
	assert.Error(t, a.ApplyConfig(propval.PropsVal(props)))
}

func TestRunDrivesGraphToCompletion(t *testing.T) {
	a, err := New(NullLoader{}, nil, zap.AtomicLevel{})
	require.NoError(t, err)

	group := a.Brics()

	src := stdbric.NewImport("src", nil)
	srcOut, err := src.AddOutput("output", intType)
	require.NoError(t, err)
	src.SetImporter(&constImport{out: srcOut, val: 21})
	require.NoError(t, group.AddSubBric(src.Bric))

	tr := stdbric.NewTransform("double", nil)
	in, err := tr.AddInput("input", intType)
	require.NoError(t, err)
	out, err := tr.AddOutput("output", intType)
	require.NoError(t, err)
	tr.SetTransformer(&doubler{in: in, out: out})
	require.NoError(t, group.AddSubBric(tr.Bric))

	require.NoError(t, in.ApplyConfig(propval.Str("&src.output")))

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, int64(42), out.Get())
}
