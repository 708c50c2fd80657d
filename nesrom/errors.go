package nesrom

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic means the data doesn't start with "NES\x1A".
	ErrBadMagic = errors.New("not an iNES file")
	// ErrSiblingFormat means the data is an FDS or UNIF container.
	ErrSiblingFormat = errors.New("not an iNES file, found sibling container")
	// ErrTruncated means the data ends before a declared segment does.
	ErrTruncated = errors.New("truncated data")
	// ErrUnsupportedField means a field can't be stored in the chosen
	// header version.
	ErrUnsupportedField = errors.New("field not supported by format version")
	// ErrInconsistentMiscROM means the misc ROM count and data disagree.
	ErrInconsistentMiscROM = errors.New("misc ROM count and data disagree")
	// ErrSizeTooLarge means a size can't be represented or is beyond
	// MAX_SEGMENT_SIZE.
	ErrSizeTooLarge = errors.New("size too large")
	// ErrBadTrainer means the trainer isn't exactly 0 or 512 bytes.
	ErrBadTrainer = errors.New("trainer must be 0 or 512 bytes")
)

// FormatError is returned by the decode and encode functions. Err is one
// of the sentinel errors above.
type FormatError struct {
	Op     string // "decode" or "encode"
	Field  string
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	s := fmt.Sprintf("%s %s: %v", e.Op, e.Field, e.Err)
	if e.Detail != "" {
		s += " (" + e.Detail + ")"
	}
	return s
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func decodeErr(field string, err error, detail string, args ...any) error {
	return &FormatError{Op: "decode", Field: field, Detail: fmt.Sprintf(detail, args...), Err: err}
}

func encodeErr(field string, err error, detail string, args ...any) error {
	return &FormatError{Op: "encode", Field: field, Detail: fmt.Sprintf(detail, args...), Err: err}
}
