// File: core/atomics/ordering.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomics

// Ordering names the memory-ordering constraint a caller requires from an
// atomic operation. A Release store synchronizes-with an Acquire load of
// the same cell that observes the stored value.
type Ordering int

const (
	Relaxed Ordering = iota
	Acquire
	Release
	AcqRel
	SeqCst
)

// String returns the ordering name for diagnostics.
func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "Relaxed"
	case Acquire:
		return "Acquire"
	case Release:
		return "Release"
	case AcqRel:
		return "AcqRel"
	case SeqCst:
		return "SeqCst"
	default:
		return "Ordering(?)"
	}
}

// check panics on an out-of-range ordering. Misuse of the ordering
// parameter is a programming error, not runtime control flow.
func (o Ordering) check() {
	if o < Relaxed || o > SeqCst {
		panic("atomics: invalid memory ordering " + o.String())
	}
}
