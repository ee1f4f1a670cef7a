package propval

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"dbrx/dbrxerr"
)

// bytesPrefix is the wire convention for byte-slice values: a string
// of the form "data:,<base64>".
const bytesPrefix = "data:,"

// ToJSON serializes v, with object keys emitted in PropKey identity
// order (not alphabetically) and real values printed with 16 significant
// digits.
func (v PropVal) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v PropVal) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNone:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt64:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindReal:
		buf.WriteString(strconv.FormatFloat(v.r, 'g', 16, 64))
	case KindName:
		return writeJSONString(buf, v.strVal())
	case KindString:
		return writeJSONString(buf, v.s)
	case KindBytes:
		return writeJSONString(buf, bytesPrefix+base64.StdEncoding.EncodeToString(v.y))
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.a {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindProps:
		buf.WriteByte('{')
		first := true
		var rangeErr error
		v.o.Range(func(k PropKey, val PropVal) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeJSONString(buf, k.String()); err != nil {
				rangeErr = err
				return false
			}
			buf.WriteByte(':')
			if err := val.writeJSON(buf); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// FromJSON parses data as a single JSON value into a PropVal. Object keys
// that parse as decimal integers in the inclusive 64-bit range are
// recovered as integer PropKeys; any other key text becomes an interned
// name key. Strings of the form "data:,<base64>" are recovered as bytes
// values. Parsing rejects input that is not exactly one JSON value.
func FromJSON(data []byte) (PropVal, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return PropVal{}, dbrxerr.Configurationf("invalid JSON: %v", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return PropVal{}, dbrxerr.Configurationf("input is not a single JSON value")
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (PropVal, error) {
	tok, err := dec.Token()
	if err != nil {
		return PropVal{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			props := NewProps()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return PropVal{}, err
				}
				keyStr, ok := keyTok.(string)
				if !ok {
					return PropVal{}, dbrxerr.Configurationf("non-string object key")
				}
				val, err := decodeValue(dec)
				if err != nil {
					return PropVal{}, err
				}
				props.Set(ParseKeyComponent(keyStr), val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return PropVal{}, err
			}
			return PropsVal(props), nil
		case '[':
			var arr []PropVal
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return PropVal{}, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return PropVal{}, err
			}
			return ArrayVal(arr), nil
		}
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int64(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return PropVal{}, err
		}
		return Real(f), nil
	case string:
		return stringToPropVal(t), nil
	case nil:
		return None(), nil
	}

	return PropVal{}, dbrxerr.Configurationf("unexpected JSON token %v", tok)
}

func stringToPropVal(s string) PropVal {
	if strings.HasPrefix(s, bytesPrefix) {
		if b, err := base64.StdEncoding.DecodeString(s[len(bytesPrefix):]); err == nil {
			return BytesVal(b)
		}
	}
	return Str(s)
}
