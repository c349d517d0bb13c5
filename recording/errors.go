package recording

import "fmt"

// DecodeError reports a malformed or truncated columnar buffer. A failed
// decode is fatal to that load only; nothing is mutated on the caller side.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode columnar buffer: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode columnar buffer: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErrorf(err error, format string, args ...any) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...), Err: err}
}
