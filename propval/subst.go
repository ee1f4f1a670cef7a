package propval

import (
	"os"
	"strconv"
	"strings"

	"dbrx/dbrxerr"
)

// fromString recovers a PropVal from a raw, untyped string the way an
// environment variable's text is interpreted during substitution:
// integer, then real, then the bool/null literals, and finally a plain
// string, mirroring _examples/original_source/src/Props.cxx's
// PropVal::fromString.
func fromString(in string) PropVal {
	if i, err := strconv.ParseInt(in, 10, 64); err == nil {
		return Int64(i)
	}
	if r, err := strconv.ParseFloat(in, 64); err == nil {
		return Real(r)
	}
	switch in {
	case "null":
		return None()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	default:
		return Str(in)
	}
}

// FromLiteral recovers a PropVal from raw, untyped text the way a
// command-line "-V NAME=VAL" substitution variable is interpreted:
// integer, then real, then the bool/null literals, and finally a plain
// string.
func FromLiteral(in string) PropVal {
	return fromString(in)
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// containsVar reports whether input holds an unescaped "$" that isn't
// the final character, i.e. whether substVarsOnce has any work to do.
func containsVar(input string) bool {
	nEscapes := 0
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '\\' {
			nEscapes++
			continue
		}
		if c == '$' && nEscapes%2 == 0 && i+1 < len(input) {
			return true
		}
		nEscapes = 0
	}
	return false
}

// substVarsOnce expands every "$NAME" / "${NAME}" reference in input.
// Ported directly from PropVal::substVarsImplSubstVars: backslash
// escapes the following character, a bare "$NAME" reads a run of
// alphanumeric/underscore characters, and "${NAME}" reads up to the
// matching "}". When the whole input is exactly one reference, the
// referenced PropVal itself is returned instead of its printed form.
func substVarsOnce(input string, vars *Props, envVars *Props, ignoreMissing bool) (PropVal, error) {
	const npos = -1
	var result strings.Builder

	nEscapes := 0
	varBegin := npos
	varEnd := npos
	varBraces := false
	pos := 0

	for pos < len(input) {
		c := input[pos]
		if varBegin == npos {
			if c == '\\' {
				nEscapes++
				result.WriteByte(c)
				pos++
				continue
			}
			if c == '$' && nEscapes%2 == 0 && pos+1 < len(input) {
				varBegin = pos + 1
			} else {
				result.WriteByte(c)
			}
			nEscapes = 0
			pos++
			continue
		}

		switch {
		case c == '{':
			switch {
			case varBraces:
				return PropVal{}, dbrxerr.Configurationf("encountered extra \"{\" during variable substitution in string %q", input)
			case pos == varBegin:
				varBegin = pos + 1
				varBraces = true
			default:
				varEnd = pos
			}
		case !isAlnum(c) && c != '_':
			if varBraces {
				if c == '}' {
					varEnd = pos
					pos++
				} else if c == '\\' {
					return PropVal{}, dbrxerr.Configurationf("encountered illegal \"\\\" character inside \"${...}\" during variable substitution in string %q", input)
				}
			} else {
				varEnd = pos
			}
		case c >= '0' && c <= '9' && pos == varBegin:
			return PropVal{}, dbrxerr.Configurationf("illegal variable name, starting with a digit, during variable substitution in string %q", input)
		}

		if varEnd == npos && pos+1 == len(input) {
			if varBraces {
				return PropVal{}, dbrxerr.Configurationf("missing \"}\" for \"${\" during variable substitution in string %q", input)
			}
			pos++
			varEnd = pos
		}

		if varEnd == npos {
			pos++
			continue
		}

		if varEnd > varBegin {
			varName := input[varBegin:varEnd]

			var foundValue *PropVal
			if val, ok := vars.GetName(varName); ok {
				foundValue = &val
			} else if envVars != nil {
				if val, ok := envVars.GetName(varName); ok {
					foundValue = &val
				} else if raw, ok := os.LookupEnv(varName); ok {
					val := fromString(raw)
					envVars.SetName(varName, val)
					foundValue = &val
				}
			}

			var varExprBegin, varExprEnd int
			if varBraces {
				varExprBegin, varExprEnd = varBegin-2, varEnd+1
			} else {
				varExprBegin, varExprEnd = varBegin-1, varEnd
			}

			switch {
			case foundValue != nil && varExprBegin == 0 && varExprEnd == len(input):
				return *foundValue, nil
			case foundValue != nil:
				result.WriteString(foundValue.Sprint())
			case ignoreMissing:
				result.WriteString(input[varExprBegin:varExprEnd])
			default:
				return PropVal{}, dbrxerr.Configurationf("unknown variable %q during variable substitution in string %q", varName, input)
			}
		} else {
			if varBraces {
				return PropVal{}, dbrxerr.Configurationf("encountered illegal \"${}\" during variable substitution in string %q", input)
			}
			result.WriteByte(input[pos-1])
			result.WriteByte(input[pos])
			pos++
		}

		varBegin, varEnd, varBraces = npos, npos, false
	}

	return Str(result.String()), nil
}

func (v PropVal) substVarsImpl(vars *Props, envVars *Props, ignoreMissing bool) (PropVal, error) {
	switch v.kind {
	case KindString:
		if !containsVar(v.s) {
			return v, nil
		}
		return substVarsOnce(v.s, vars, envVars, ignoreMissing)
	case KindArray:
		out := make([]PropVal, len(v.a))
		for i, e := range v.a {
			sub, err := e.substVarsImpl(vars, envVars, ignoreMissing)
			if err != nil {
				return PropVal{}, err
			}
			out[i] = sub
		}
		return PropVal{kind: KindArray, a: out}, nil
	case KindProps:
		out := NewProps()
		var rangeErr error
		v.o.Range(func(k PropKey, val PropVal) bool {
			sub, err := val.substVarsImpl(vars, envVars, ignoreMissing)
			if err != nil {
				rangeErr = err
				return false
			}
			out.Set(k, sub)
			return true
		})
		if rangeErr != nil {
			return PropVal{}, rangeErr
		}
		return PropsVal(out), nil
	default:
		return v, nil
	}
}

// SubstVars returns a copy of v with every "$NAME"/"${NAME}" reference
// inside its strings (recursively, through arrays and props) replaced by
// the matching entry of vars, falling back to the process environment
// when useEnvVars is set. If ignoreMissing is false, an unresolved
// reference is reported as an error instead of left untouched.
func (v PropVal) SubstVars(vars *Props, useEnvVars, ignoreMissing bool) (PropVal, error) {
	var envVars *Props
	if useEnvVars {
		envVars = NewProps()
	}
	return v.substVarsImpl(vars, envVars, ignoreMissing)
}
