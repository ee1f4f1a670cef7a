package slot

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbrx/propval"
)

func TestReferenceObservesReplacedPayload(t *testing.T) {
	out := NewPrimaryValue(reflect.TypeOf(float64(0)))
	require.NoError(t, out.Set(1.0))

	in := NewReference(reflect.TypeOf(float64(0)))
	require.NoError(t, in.ReferTo(out))

	assert.Equal(t, 1.0, in.Get())

	require.NoError(t, out.Set(2.0))
	assert.Equal(t, 2.0, in.Get(), "reference must observe the output's replaced payload")
}

func TestReferenceBindRejectsTypeMismatch(t *testing.T) {
	out := NewPrimaryValue(reflect.TypeOf(int64(0)))
	in := NewReference(reflect.TypeOf(float64(0)))

	err := in.ReferTo(out)
	assert.Error(t, err)
	assert.False(t, in.Valid())
}

func TestConstReferenceReadOnly(t *testing.T) {
	out := NewPrimaryValue(reflect.TypeOf(""))
	require.NoError(t, out.Set("hello"))

	cr := NewConstReference(reflect.TypeOf(""))
	require.NoError(t, cr.ReferTo(out))
	assert.Equal(t, "hello", cr.Get())
}

func TestPrimaryValuePropValRoundTrip(t *testing.T) {
	out := NewPrimaryValue(reflect.TypeOf(int64(0)))
	require.NoError(t, out.FromPropVal(propval.Int64(42)))

	p, err := out.ToPropVal()
	require.NoError(t, err)
	assert.True(t, p.Equal(propval.Int64(42)))
}

func TestUnboundReferenceErrors(t *testing.T) {
	in := NewReference(reflect.TypeOf(int64(0)))
	assert.False(t, in.Valid())
	_, err := in.ToPropVal()
	assert.Error(t, err)
	assert.Error(t, in.Set(int64(1)))
}
