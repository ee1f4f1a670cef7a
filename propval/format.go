package propval

// Sprint renders v in "printed form", matching
// _examples/original_source/src/Props.cxx's PropVal::print: a name or
// string value is written as its raw text (no quoting), everything else
// is written as JSON. This is the form variable substitution splices
// into a string when a "$NAME" reference is not the entire value.
func (v PropVal) Sprint() string {
	switch v.kind {
	case KindName, KindString:
		return v.strVal()
	default:
		b, err := v.ToJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}
}
