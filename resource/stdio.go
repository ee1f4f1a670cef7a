// Package resource holds process-wide shared-resource guards that sit
// outside any single bric's ownership: the name interner
// (dbrx/nameintern) and the standard-stream owner token here.
package resource

import (
	"github.com/tevino/abool"

	"dbrx/dbrxerr"
)

// StdioStream names which standard stream a managed stream wraps.
type StdioStream int

const (
	Stdin StdioStream = iota
	Stdout
)

// stdioOwner is a single CAS-guarded flag per standard stream,
// grounded on the same single-writer/multi-reader flag shape as
// bg/ap.configd/expiration.go's mutex-guarded state, rendered with
// github.com/tevino/abool instead of a mutex since the only operation
// is a bare acquire/release, not a guarded read-modify-write of a
// larger structure.
var stdioOwner = [2]*abool.AtomicBool{abool.New(), abool.New()}

// AcquireStdio claims exclusive ownership of stream for the calling
// managed stream. It fails if another managed stream already holds it.
func AcquireStdio(stream StdioStream) error {
	if !stdioOwner[stream].SetToIf(false, true) {
		return dbrxerr.Resourcef("standard stream %v is already owned by another managed stream", stream)
	}
	return nil
}

// ReleaseStdio releases ownership of stream, acquired by a prior
// successful AcquireStdio call.
func ReleaseStdio(stream StdioStream) {
	stdioOwner[stream].UnSet()
}

func (s StdioStream) String() string {
	if s == Stdin {
		return "stdin"
	}
	return "stdout"
}
