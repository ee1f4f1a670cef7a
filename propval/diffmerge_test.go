package propval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffThenPatchReproducesA(t *testing.T) {
	a := NewProps()
	a.SetName("x", Int64(1))
	a.SetName("y", Int64(2))
	nested := NewProps()
	nested.SetName("inner", Str("changed"))
	a.SetName("z", PropsVal(nested))

	b := NewProps()
	b.SetName("x", Int64(1))
	b.SetName("y", Int64(99))
	b.SetName("w", Int64(7))
	bNested := NewProps()
	bNested.SetName("inner", Str("original"))
	b.SetName("z", PropsVal(bNested))

	d := Diff(a, b)
	Patch(b, d)

	want := PropsVal(a)
	got := PropsVal(b)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patched b does not match a (-want +got):\n%s", diff)
	}
}

func TestDiffMarksRemovedKeysAsNone(t *testing.T) {
	a := NewProps()
	a.SetName("keep", Int64(1))

	b := NewProps()
	b.SetName("keep", Int64(1))
	b.SetName("gone", Int64(2))

	d := Diff(a, b)
	v, ok := d.GetName("gone")
	require.True(t, ok)
	assert.True(t, v.IsNone())
}

func TestMergeConflictErrors(t *testing.T) {
	a := NewProps()
	a.SetName("x", Int64(1))

	b := NewProps()
	b.SetName("x", Int64(2))

	err := Merge(a, b)
	assert.Error(t, err)
}

func TestMergeAgreeingValuesSucceeds(t *testing.T) {
	a := NewProps()
	a.SetName("x", Int64(1))
	a.SetName("y", Int64(5))

	b := NewProps()
	b.SetName("x", Int64(1))
	b.SetName("z", Int64(3))

	err := Merge(a, b)
	require.NoError(t, err)

	v, ok := a.GetName("z")
	require.True(t, ok)
	i, _ := v.AsInt64()
	assert.EqualValues(t, 3, i)
}
