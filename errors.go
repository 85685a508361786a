package patchepi

import "fmt"

// Message templates for validation-style errors, in the teacher's
// sentinel-string idiom. Used with github.com/pkg/errors.Errorf/Wrapf so
// the resulting error still carries a stack trace.
const (
	InvalidFloatParameterError = "invalid %s %f, %s"
	InvalidIntParameterError   = "invalid %s %d, %s"
	UnrecognizedKeywordError   = "%s is not a recognized value for %s"
	UnequalIntParameterError   = "expected %s %d, instead got %d"
)

// InsufficientPadding is returned by Launch when the requested halo width
// cannot guarantee correctness for the scenario's infection radius.
type InsufficientPadding struct {
	Padding int
}

func (e *InsufficientPadding) Error() string {
	return fmt.Sprintf("padding %d is insufficient for the scenario's infection radius", e.Padding)
}

// OutOfRange is returned by PaddedPatch when given a patch id that does
// not correspond to any patch in the partition. It indicates a programmer
// contract violation, not a recoverable runtime condition.
type OutOfRange struct {
	PatchID    int
	PatchCount int
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("patch id %d is out of range [0, %d)", e.PatchID, e.PatchCount)
}

// WorkerFailed reports that a patch worker terminated abnormally during a
// run, identifying which patch and the underlying cause. spec.md documents
// the naive version of this design as a propagated panic; this module
// always returns WorkerFailed through the result channel instead.
type WorkerFailed struct {
	PatchID int
	Cause   error
}

func (e *WorkerFailed) Error() string {
	return fmt.Sprintf("patch %d worker failed: %s", e.PatchID, e.Cause)
}

func (e *WorkerFailed) Unwrap() error { return e.Cause }

// ErrStarshipNotImplemented is returned by Launch when the caller requests
// the alternate (out of scope) implementation selected by starship=true.
var ErrStarshipNotImplemented = fmt.Errorf("starship implementation is not available in this build")