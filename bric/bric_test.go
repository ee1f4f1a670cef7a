package bric

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbrx/propval"
)

var realType = reflect.TypeOf(float64(0))

func TestRegisterComponentRejectsDuplicateAndReserved(t *testing.T) {
	root := NewBric("root", Capabilities{CanHaveOutputs: true, CanHaveInputs: true})

	_, err := root.AddOutput("output", realType)
	require.NoError(t, err)

	_, err = root.AddOutput("output", realType)
	assert.Error(t, err, "duplicate component name must be rejected")

	_, err = root.AddParam("type", realType)
	assert.Error(t, err, "reserved name \"type\" must be rejected")
}

func TestRegisterComponentEnforcesCapabilities(t *testing.T) {
	noIO := NewBric("noio", Capabilities{})
	_, err := noIO.AddInput("input", realType)
	assert.Error(t, err)
	_, err = noIO.AddOutput("output", realType)
	assert.Error(t, err)
}

// buildSiblings wires a root bric containing two static sub-brics, "src"
// (an output-only source) and "dst" (an input-only sink configured with
// a "&src.output" reference), the same sibling-wiring shape a
// LinCalib/Const pair uses.
func buildSiblings(t *testing.T) (root, src, dst *Bric) {
	t.Helper()
	root = NewBric("root", Capabilities{})

	src = NewBric("src", Capabilities{CanHaveOutputs: true})
	_, err := src.AddOutput("output", realType)
	require.NoError(t, err)
	require.NoError(t, root.AddSubBric(src))

	dst = NewBric("dst", Capabilities{CanHaveInputs: true})
	in, err := dst.AddInput("input", realType)
	require.NoError(t, err)
	require.NoError(t, in.ApplyConfig(propval.Str("&src.output")))
	require.NoError(t, root.AddSubBric(dst))

	return root, src, dst
}

func TestConnectInputsResolvesSiblingReference(t *testing.T) {
	root, src, dst := buildSiblings(t)

	require.NoError(t, root.connectInputs())

	out, err := src.GetOutput(propval.StrKey("output"))
	require.NoError(t, err)
	require.NoError(t, out.Set(7.0))

	in, err := dst.GetInput(propval.StrKey("input"))
	require.NoError(t, err)
	assert.Equal(t, 7.0, in.Get())

	assert.Contains(t, dst.Sources(), src)
	assert.Contains(t, src.Dests(), dst)
}

func TestConnectInputsRejectsDoubleConnect(t *testing.T) {
	root, _, _ := buildSiblings(t)
	require.NoError(t, root.connectInputs())
	assert.Error(t, root.connectInputs())
}

func TestDisconnectInputsClearsEdges(t *testing.T) {
	root, src, dst := buildSiblings(t)
	require.NoError(t, root.connectInputs())
	require.NotEmpty(t, dst.Sources())

	root.disconnectInputs()
	assert.Empty(t, dst.Sources())
	assert.Empty(t, src.Dests())
}

// newTestDynBric builds a minimal bric registered under the dynamic-type
// registry for exercising applyConfig/getConfig's dynamic-bric path.
func newTestDynBric(className string) *Bric {
	b := NewBric("", Capabilities{CanHaveInputs: true, CanHaveOutputs: true, CanHaveDynBrics: true})
	_, _ = b.AddParam("k", reflect.TypeOf(int64(0)))
	return b
}

func TestDynamicBricReconfigurationKeepsSameClass(t *testing.T) {
	Register("classA", func() *Bric { return newTestDynBric("classA") })

	root := NewBric("root", Capabilities{CanHaveDynBrics: true})

	cfg := propval.EmptyProps()
	props, _ := cfg.AsProps()
	childCfg := propval.EmptyProps()
	childProps, _ := childCfg.AsProps()
	childProps.SetName("type", propval.Str("classA"))
	childProps.SetName("k", propval.Int64(1))
	props.SetName("child", childCfg)

	require.NoError(t, root.ApplyConfig(cfg))

	child, err := root.GetBric(propval.StrKey("child"))
	require.NoError(t, err)
	p, err := child.GetParam(propval.StrKey("k"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Get())

	cfg2 := propval.EmptyProps()
	props2, _ := cfg2.AsProps()
	childCfg2 := propval.EmptyProps()
	childProps2, _ := childCfg2.AsProps()
	childProps2.SetName("k", propval.Int64(2))
	props2.SetName("child", childCfg2)

	require.NoError(t, root.ApplyConfig(cfg2))
	sameChild, err := root.GetBric(propval.StrKey("child"))
	require.NoError(t, err)
	assert.Same(t, child, sameChild, "reconfiguring with the same class must not recreate the bric")
	p2, err := sameChild.GetParam(propval.StrKey("k"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), p2.Get())
}

func TestDynamicBricTypeChangeRecreates(t *testing.T) {
	Register("classA2", func() *Bric { return newTestDynBric("classA2") })
	Register("classB2", func() *Bric { return newTestDynBric("classB2") })

	root := NewBric("root", Capabilities{CanHaveDynBrics: true})

	mkChildCfg := func(class string, k int64) propval.PropVal {
		cfg := propval.EmptyProps()
		p, _ := cfg.AsProps()
		p.SetName("type", propval.Str(class))
		p.SetName("k", propval.Int64(k))
		return cfg
	}

	cfg1 := propval.EmptyProps()
	props1, _ := cfg1.AsProps()
	props1.SetName("child", mkChildCfg("classA2", 1))
	require.NoError(t, root.ApplyConfig(cfg1))
	firstChild, err := root.GetBric(propval.StrKey("child"))
	require.NoError(t, err)

	cfg2 := propval.EmptyProps()
	props2, _ := cfg2.AsProps()
	props2.SetName("child", mkChildCfg("classB2", 2))
	require.NoError(t, root.ApplyConfig(cfg2))

	secondChild, err := root.GetBric(propval.StrKey("child"))
	require.NoError(t, err)
	assert.NotSame(t, firstChild, secondChild, "changing the type tag must destroy and recreate the child")
	assert.NotEqual(t, firstChild.InstanceID(), secondChild.InstanceID(), "a recreated dynamic bric must get a fresh instance id")

	got := root.GetConfig()
	gotProps, ok := got.AsProps()
	require.True(t, ok)
	childGot, ok := gotProps.Get(propval.StrKey("child"))
	require.True(t, ok)
	childGotProps, ok := childGot.AsProps()
	require.True(t, ok)
	typeVal, ok := childGotProps.Get(typeKey)
	require.True(t, ok)
	s, _ := typeVal.AsString()
	assert.Equal(t, "classB2", s)
}

func TestDynamicBricRemovedByNone(t *testing.T) {
	Register("classA3", func() *Bric { return newTestDynBric("classA3") })

	root := NewBric("root", Capabilities{CanHaveDynBrics: true})
	cfg := propval.EmptyProps()
	props, _ := cfg.AsProps()
	childCfg := propval.EmptyProps()
	childProps, _ := childCfg.AsProps()
	childProps.SetName("type", propval.Str("classA3"))
	props.SetName("child", childCfg)
	require.NoError(t, root.ApplyConfig(cfg))
	require.True(t, root.HasComponent(propval.StrKey("child")))

	cfg2 := propval.EmptyProps()
	props2, _ := cfg2.AsProps()
	props2.SetName("child", propval.None())
	require.NoError(t, root.ApplyConfig(cfg2))
	assert.False(t, root.HasComponent(propval.StrKey("child")))
}

func TestHierarchyLevelAndSiblingOf(t *testing.T) {
	root := NewBric("root", Capabilities{})
	a := NewBric("a", Capabilities{})
	b := NewBric("b", Capabilities{})
	require.NoError(t, root.AddSubBric(a))
	require.NoError(t, root.AddSubBric(b))

	assert.Equal(t, 0, root.HierarchyLevel())
	assert.Equal(t, 1, a.HierarchyLevel())
	assert.True(t, a.SiblingOf(b))
	assert.False(t, root.SiblingOf(a))
}
