package propval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTripScalarsAndBytes(t *testing.T) {
	p := NewProps()
	p.SetName("count", Int64(3))
	p.SetName("ratio", Real(0.5))
	p.SetName("enabled", Bool(true))
	p.SetName("label", Str("hello"))
	p.SetName("payload", BytesVal([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	p.Set(IntKey(7), Str("seventh"))
	orig := PropsVal(p)

	data, err := orig.ToJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(data)
	require.NoError(t, err)

	assert.True(t, orig.Equal(decoded))

	dp, ok := decoded.AsProps()
	require.True(t, ok)
	keys := dp.Keys()
	require.True(t, keys[0].IsInt(), "integer object keys must be recovered as integer PropKeys")
}

func TestJSONRejectsTrailingData(t *testing.T) {
	_, err := FromJSON([]byte(`123 456`))
	assert.Error(t, err)
}

func TestJSONBytesPrefixRoundTrip(t *testing.T) {
	v := BytesVal([]byte("hi there"))
	data, err := v.ToJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(data)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))

	b, ok := decoded.AsBytes()
	require.True(t, ok)
	assert.Equal(t, []byte("hi there"), b)
}

func TestJSONNullIsNone(t *testing.T) {
	v, err := FromJSON([]byte(`null`))
	require.NoError(t, err)
	assert.True(t, v.IsNone())
}
