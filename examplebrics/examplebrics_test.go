package examplebrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbrx/bric"
	"dbrx/propval"
	"dbrx/scheduler"
)

func newDynRoot() *bric.Bric {
	return bric.NewBric("", bric.Capabilities{CanHaveDynBrics: true})
}

// TestLinearTransform checks that a LinCalib transform fed by a Const
// import computes offset + slope*input over one tick.
func TestLinearTransform(t *testing.T) {
	root := newDynRoot()

	src := propval.NewProps()
	src.SetName("type", propval.Str("Const"))
	src.SetName("value", propval.Real(3.0))

	tr := propval.NewProps()
	tr.SetName("type", propval.Str("LinCalib"))
	tr.SetName("offset", propval.Real(1.0))
	tr.SetName("slope", propval.Real(2.0))
	tr.SetName("input", propval.Str("&src.output"))

	config := propval.NewProps()
	config.SetName("src", propval.PropsVal(src))
	config.SetName("t", propval.PropsVal(tr))

	require.NoError(t, root.ApplyConfig(propval.PropsVal(config)))
	require.NoError(t, root.InitHierarchy())

	sched, err := scheduler.Build(root)
	require.NoError(t, err)
	require.NoError(t, sched.Run(context.Background()))

	tBric, err := root.GetComponent(propval.StrKey("t"))
	require.NoError(t, err)
	out, err := tBric.(*bric.Bric).GetComponent(propval.StrKey("output"))
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.(*bric.OutputTerminal).Get())
}

// TestMapReduce checks that a Sequence mapper yielding [1,2,3,4] feeds
// a Sum reducer, which after one full run reports 10.
func TestMapReduce(t *testing.T) {
	root := newDynRoot()

	seq := propval.NewProps()
	seq.SetName("type", propval.Str("Sequence"))
	seq.SetName("values", propval.ArrayVal([]propval.PropVal{
		propval.Real(1), propval.Real(2), propval.Real(3), propval.Real(4),
	}))

	sum := propval.NewProps()
	sum.SetName("type", propval.Str("Sum"))
	sum.SetName("input", propval.Str("&seq.output"))

	config := propval.NewProps()
	config.SetName("seq", propval.PropsVal(seq))
	config.SetName("sum", propval.PropsVal(sum))

	require.NoError(t, root.ApplyConfig(propval.PropsVal(config)))
	require.NoError(t, root.InitHierarchy())

	sched, err := scheduler.Build(root)
	require.NoError(t, err)
	require.NoError(t, sched.Run(context.Background()))

	sumBric, err := root.GetComponent(propval.StrKey("sum"))
	require.NoError(t, err)
	out, err := sumBric.(*bric.Bric).GetComponent(propval.StrKey("output"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, out.(*bric.OutputTerminal).Get())
}
