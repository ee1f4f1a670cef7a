package propval

import "dbrx/dbrxerr"

// Diff returns the minimal props patch that, applied to b with Patch,
// reproduces a: keys only in a are copied as-is, keys only in b are
// marked with a none value, and keys present in both carry a's value
// only where it differs (nested props are diffed recursively). Ported
// from _examples/original_source/src/Props.cxx's PropVal::diff.
func Diff(a, b *Props) *Props {
	result := NewProps()
	ae, be := a.entries, b.entries
	i, j := 0, 0

	for i < len(ae) && j < len(be) {
		ka, va := ae[i].key, ae[i].val
		kb, vb := be[j].key, be[j].val

		switch {
		case ka.Equal(kb):
			if va.IsProps() && vb.IsProps() {
				if d := Diff(va.o, vb.o); d.Len() > 0 {
					result.Set(ka, PropsVal(d))
				}
			} else if !va.Equal(vb) {
				result.Set(ka, va)
			}
			i++
			j++
		case ka.Less(kb):
			result.Set(ka, va)
			i++
		default:
			result.Set(kb, None())
			j++
		}
	}
	for ; i < len(ae); i++ {
		result.Set(ae[i].key, ae[i].val)
	}
	for ; j < len(be); j++ {
		result.Set(be[j].key, None())
	}
	return result
}

// patchMerge overlays b's entries onto a in place. When two props hold
// a value for the same non-props key, merge=false overwrites a's value
// with b's; merge=true requires the two values to agree, reporting a
// conflict error otherwise.
func patchMerge(a, b *Props, merge bool) error {
	for _, be := range b.entries {
		key, vb := be.key, be.val

		va, ok := a.Get(key)
		if ok && va.IsProps() && vb.IsProps() {
			if err := patchMerge(va.o, vb.o, merge); err != nil {
				return err
			}
			continue
		}
		if ok && merge && !va.Equal(vb) {
			return dbrxerr.Configurationf("can't merge props with conflicting contents at key %q", key.String())
		}
		a.Set(key, vb)
	}
	return nil
}

// Patch overlays b's entries onto a in place, recursing into nested
// props and otherwise letting b's values win.
func Patch(a, b *Props) {
	_ = patchMerge(a, b, false)
}

// Merge overlays b's entries onto a in place like Patch, but returns an
// error instead of silently overwriting when the same non-props key
// holds differing values on both sides.
func Merge(a, b *Props) error {
	return patchMerge(a, b, true)
}
