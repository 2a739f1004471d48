package raster

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the engine. Match them with errors.Is.
var (
	ErrDimensionMismatch = errors.New("grid dimensions differ")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrNotBinaryImage    = errors.New("image is not binary")
	ErrNotRectangular    = errors.New("pixel buffer is not rectangular")
)

// OpError records the operation that failed and why.
type OpError struct {
	Op     string // operation name, e.g. "add" or "order_filter"
	Err    error  // one of the sentinel errors
	Detail string // optional human-readable context
}

func (e *OpError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Detail)
}

func (e *OpError) Unwrap() error { return e.Err }

// InvalidParameter builds an OpError wrapping ErrInvalidParameter.
func InvalidParameter(op, format string, args ...any) error {
	return &OpError{Op: op, Err: ErrInvalidParameter, Detail: fmt.Sprintf(format, args...)}
}

// OpName extracts the operation name from err, or "" if err is not an
// *OpError.
func OpName(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Op
	}
	return ""
}
