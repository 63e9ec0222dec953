package expense

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrMalformedRecord is returned when a stored record cannot be decoded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidArgument is returned when an operation parameter is missing or invalid.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RecordError reports a stored record that failed to decode.
//
// It matches both ErrMalformedRecord and the underlying cause with errors.Is.
type RecordError struct {
	File string // backing file, may be empty for a bare stream
	Line int    // 1-based line or row number
	Text string // raw record
	Err  error  // cause
}

func (e *RecordError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("malformed record on line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("malformed record %s:%d %q: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *RecordError) Unwrap() []error { return []error{ErrMalformedRecord, e.Err} }

// IsIOFailure reports whether err was caused by a file system operation.
func IsIOFailure(err error) bool {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	return errors.As(err, &pathErr) || errors.As(err, &linkErr)
}
