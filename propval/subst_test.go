package propval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstVarsWholeStringReturnsOriginalValue(t *testing.T) {
	vars := NewProps()
	vars.SetName("THRESHOLD", Real(3.5))

	out, err := Str("$THRESHOLD").SubstVars(vars, false, false)
	require.NoError(t, err)
	assert.Equal(t, KindReal, out.Kind())
	r, _ := out.AsReal()
	assert.Equal(t, 3.5, r)
}

func TestSubstVarsInlineUsesPrintedForm(t *testing.T) {
	vars := NewProps()
	vars.SetName("N", Int64(42))

	out, err := Str("value=${N}!").SubstVars(vars, false, false)
	require.NoError(t, err)
	s, _ := out.AsString()
	assert.Equal(t, "value=42!", s)
}

func TestSubstVarsBackslashEscapesDollar(t *testing.T) {
	vars := NewProps()
	out, err := Str(`\$NOTAVAR`).SubstVars(vars, false, true)
	require.NoError(t, err)
	s, _ := out.AsString()
	assert.Equal(t, `\$NOTAVAR`, s)
}

func TestSubstVarsUnknownVariableErrors(t *testing.T) {
	vars := NewProps()
	_, err := Str("$MISSING").SubstVars(vars, false, false)
	assert.Error(t, err)
}

func TestSubstVarsIgnoreMissingLeavesReferenceInPlace(t *testing.T) {
	vars := NewProps()
	out, err := Str("pre-$MISSING-post").SubstVars(vars, false, true)
	require.NoError(t, err)
	s, _ := out.AsString()
	assert.Equal(t, "pre-$MISSING-post", s)
}

func TestSubstVarsMissingClosingBraceErrors(t *testing.T) {
	vars := NewProps()
	_, err := Str("${UNCLOSED").SubstVars(vars, false, true)
	assert.Error(t, err)
}

func TestSubstVarsRecursesIntoArraysAndProps(t *testing.T) {
	vars := NewProps()
	vars.SetName("X", Int64(9))

	inner := NewProps()
	inner.SetName("a", Str("$X"))
	v := ArrayVal([]PropVal{PropsVal(inner), Str("$X")})

	out, err := v.SubstVars(vars, false, false)
	require.NoError(t, err)

	arr, _ := out.AsArray()
	p, _ := arr[0].AsProps()
	a, _ := p.GetName("a")
	i, _ := a.AsInt64()
	assert.EqualValues(t, 9, i)

	i2, _ := arr[1].AsInt64()
	assert.EqualValues(t, 9, i2)
}
