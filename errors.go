package veloxcore

import "errors"

// Sentinel errors for the taxonomy in spec §7. Call sites wrap these with
// fmt.Errorf("%w: ...", ErrX) the way the teacher's join.go reports
// "column '%s' not found" — a short, specific message around a stable
// sentinel callers can match with errors.Is.
var (
	// ErrDTypeMismatch: two operands (e.g. binary arithmetic inputs) have different dtypes.
	ErrDTypeMismatch = errors.New("veloxcore: dtype mismatch")
	// ErrLengthMismatch: length mismatch between operands (e.g. key/value columns).
	ErrLengthMismatch = errors.New("veloxcore: length mismatch")
	// ErrAllocation: allocation failure.
	ErrAllocation = errors.New("veloxcore: allocation failed")
	// ErrUnsupportedDType: polymorphic entry point invoked with a dtype not in its switch.
	ErrUnsupportedDType = errors.New("veloxcore: unsupported dtype")
	// ErrOutOfRange: out-of-range index in a non-gather context (gather itself nulls instead of erroring).
	ErrOutOfRange = errors.New("veloxcore: index out of range")
	// ErrMissingBuffer: a required buffer was not supplied.
	ErrMissingBuffer = errors.New("veloxcore: required buffer missing")
)
