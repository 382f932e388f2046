// Package errs implements the core's error taxonomy.
//
// Every failure surfaced by gpvcore is one of a small set of kinds (spec §7).
// Recovery beyond the documented restart loops (basis-generation retries,
// XGCD prime-swap) happens at the caller, never silently inside the core.
package errs

import (
	"errors"
	"fmt"
)

// Kind enumerates the error taxonomy a caller can switch on.
type Kind int

const (
	// Unknown is the zero value; Error values constructed by this package
	// never carry it.
	Unknown Kind = iota
	// InvalidParameter: a requested (N, q, σ) combination is unsupported.
	InvalidParameter
	// InvalidInput: wrong-length polynomial, nil key, or NTRU check failure.
	InvalidInput
	// SamplerFailure: the discrete Gaussian sampler could not be constructed.
	SamplerFailure
	// NumericInstability: MGS near-zero diagonal, XGCD failed to stabilise,
	// or the basis reduction loop did not terminate in budget.
	NumericInstability
	// EntropyExhaustion: the CSPRNG collaborator signalled failure.
	EntropyExhaustion
	// AllocationFailure: a scratch allocation could not be satisfied.
	AllocationFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case InvalidInput:
		return "invalid input"
	case SamplerFailure:
		return "sampler failure"
	case NumericInstability:
		return "numeric instability"
	case EntropyExhaustion:
		return "entropy exhaustion"
	case AllocationFailure:
		return "allocation failure"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every gpvcore package.
// Op names the failing operation (e.g. "gpv.GenerateBasis"), Err is the
// wrapped cause (may be nil for a bare kind).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error with no wrapped cause.
func New(kind Kind, op string) error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an *Error wrapping err under op and kind. Returns nil if
// err is nil, so it is safe to use as `return errs.Wrap(kind, op, err)` in
// an `if err != nil` tail.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err (or any error in its Unwrap chain) carries kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
