package stdbric

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbrx/bric"
	"dbrx/propval"
)

var intType = reflect.TypeOf(int64(0))

// constImport is an Importer that writes a fixed value once.
type constImport struct {
	out *bric.OutputTerminal
	val int64
}

func (c *constImport) Import() error { return c.out.Set(c.val) }

func TestImportProducesOnceThenStaysFinished(t *testing.T) {
	im := NewImport("src", nil)
	out, err := im.AddOutput("output", intType)
	require.NoError(t, err)
	im.behavior = &constImport{out: out, val: 42}

	produced, err := im.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced)
	assert.True(t, im.ExecFinished())
	assert.Equal(t, int64(42), out.Get())

	produced, err = im.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced, "a finished bric reports produced=true on every later step")
}

// doubler is a Transformer that doubles its input once.
type doubler struct {
	in  *bric.InputTerminal
	out *bric.OutputTerminal
}

func (d *doubler) ProcessInput() error {
	return d.out.Set(d.in.Get().(int64) * 2)
}

func TestTransformProcessesOnce(t *testing.T) {
	tr := NewTransform("double", nil)
	in, err := tr.AddInput("input", intType)
	require.NoError(t, err)
	out, err := tr.AddOutput("output", intType)
	require.NoError(t, err)
	tr.behavior = &doubler{in: in, out: out}

	require.NoError(t, in.ApplyConfig(propval.Int64(21)))

	produced, err := tr.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced)
	assert.True(t, tr.ExecFinished())
	assert.Equal(t, int64(42), out.Get())
}

// sequence is a Mapper that emits a fixed run of integers.
type sequence struct {
	out     *bric.OutputTerminal
	vals    []int64
	cursor  int
}

func (s *sequence) ProcessInput() error { s.cursor = 0; return nil }

func (s *sequence) NextOutput() (bool, error) {
	if s.cursor >= len(s.vals) {
		return false, nil
	}
	if err := s.out.Set(s.vals[s.cursor]); err != nil {
		return false, err
	}
	s.cursor++
	return true, nil
}

func TestMapperEmitsSequenceThenFinishes(t *testing.T) {
	m := NewMapper("seq", nil)
	out, err := m.AddOutput("output", intType)
	require.NoError(t, err)
	m.behavior = &sequence{out: out, vals: []int64{1, 2, 3, 4}}

	var seen []int64
	for !m.ExecFinished() {
		produced, err := m.NextExecStep()
		require.NoError(t, err)
		if produced && !m.ExecFinished() {
			seen = append(seen, out.Get().(int64))
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, seen)
}

// sum is a Reducer that accumulates every tuple it is fed.
type sum struct {
	in    *bric.InputTerminal
	out   *bric.OutputTerminal
	total int64
}

func (s *sum) NewReduction() error { s.total = 0; return nil }

func (s *sum) ProcessInput() error {
	s.total += s.in.Get().(int64)
	return nil
}

func (s *sum) FinalizeReduction() error { return s.out.Set(s.total) }

func TestReducerFoldsUntilSourceFinishedThenFinalizes(t *testing.T) {
	src := NewMapper("seq", nil)
	srcOut, err := src.AddOutput("output", intType)
	require.NoError(t, err)
	src.behavior = &sequence{out: srcOut, vals: []int64{1, 2, 3, 4}}

	r := NewReducer("sum", nil)
	in, err := r.AddInput("input", intType)
	require.NoError(t, err)
	out, err := r.AddOutput("output", intType)
	require.NoError(t, err)
	r.behavior = &sum{in: in, out: out}

	group := bric.NewBric("group", bric.Capabilities{})
	require.NoError(t, group.AddSubBric(src.Bric))
	require.NoError(t, group.AddSubBric(r.Bric))
	require.NoError(t, in.ConnectTo(srcOut))

	require.Equal(t, []*bric.Bric{src.Bric}, r.Sources())

	for !src.ExecFinished() {
		_, err := src.NextExecStep()
		require.NoError(t, err)
		if !src.ExecFinished() {
			_, err := r.NextExecStep()
			require.NoError(t, err)
		}
	}
	produced, err := r.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced)
	assert.True(t, r.ExecFinished())
	assert.Equal(t, int64(10), out.Get())
}

// TestAsyncReducerEmitsAtMostOnce feeds the async reducer from a
// single-value Mapper source: a source whose finish is signaled by a
// separate empty NextOutput() call, distinct from the tuple that
// carries its last value, so the reducer always gets a chance to
// consume every tuple before its source reports finished.
func TestAsyncReducerEmitsAtMostOnce(t *testing.T) {
	src := NewMapper("one", nil)
	srcOut, err := src.AddOutput("output", intType)
	require.NoError(t, err)
	src.behavior = &sequence{out: srcOut, vals: []int64{7}}

	ar := NewAsyncReducer("echo", nil)
	in, err := ar.AddInput("input", intType)
	require.NoError(t, err)
	out, err := ar.AddOutput("output", intType)
	require.NoError(t, err)
	ar.behavior = &sum{in: in, out: out}
	group := bric.NewBric("group", bric.Capabilities{})
	require.NoError(t, group.AddSubBric(src.Bric))
	require.NoError(t, group.AddSubBric(ar.Bric))
	require.NoError(t, in.ConnectTo(srcOut))

	assert.False(t, ar.Ready())

	for !src.ExecFinished() {
		_, err := src.NextExecStep()
		require.NoError(t, err)
		if !src.ExecFinished() {
			_, err := ar.NextExecStep()
			require.NoError(t, err)
		}
	}
	produced, err := ar.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced)
	assert.True(t, ar.Ready())
	assert.Equal(t, int64(7), out.Get())

	produced, err = ar.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced, "already-finished async reducer keeps reporting done")
}

func TestCompositeRunsNestedGraphToCompletion(t *testing.T) {
	root := bric.NewBric("group", bric.Capabilities{CanHaveDynBrics: true})

	src := NewMapper("seq", nil)
	srcOut, err := src.AddOutput("output", intType)
	require.NoError(t, err)
	src.behavior = &sequence{out: srcOut, vals: []int64{1, 2, 3}}
	require.NoError(t, root.AddSubBric(src.Bric))

	r := NewReducer("sum", nil)
	in, err := r.AddInput("input", intType)
	require.NoError(t, err)
	out, err := r.AddOutput("output", intType)
	require.NoError(t, err)
	r.behavior = &sum{in: in, out: out}
	require.NoError(t, root.AddSubBric(r.Bric))
	require.NoError(t, in.ConnectTo(srcOut))

	comp := &Composite{Bric: root}
	root.SetBehavior(comp)
	require.NoError(t, comp.Init())

	produced, err := comp.NextExecStep()
	require.NoError(t, err)
	assert.True(t, produced)
	assert.True(t, comp.ExecFinished())
	assert.Equal(t, int64(6), out.Get())
}
