package nbt

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF     = errors.New("nbt: unexpected end of input")
	ErrInvalidUTF8       = errors.New("nbt: invalid utf-8 string")
	ErrInvalidTag        = errors.New("nbt: invalid tag")
	ErrRootNotCompound   = errors.New("nbt: root is not a compound")
	ErrHeterogeneousList = errors.New("nbt: heterogeneous list")
	ErrInvalidLength     = errors.New("nbt: invalid length")
	ErrMaxDepth          = errors.New("nbt: maximum nesting depth exceeded")
	ErrTrailingData      = errors.New("nbt: trailing data after root compound")
	ErrStringTooLong     = errors.New("nbt: string longer than 65535 bytes")
	ErrOutOfRange        = errors.New("nbt: integer out of range")
)

// OffsetError reports a failure at a byte position of the input.
// Span is the number of bytes the failed read needed or covered.
type OffsetError struct {
	Err    error
	Offset int
	Span   int
}

func (e *OffsetError) Error() string {
	if e.Span > 0 {
		return fmt.Sprintf("%v at offset %d (%d bytes)", e.Err, e.Offset, e.Span)
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *OffsetError) Unwrap() error { return e.Err }

// TagError reports an invalid tag byte or a root that is not a compound.
// Offset is -1 when the error comes from the encoder.
type TagError struct {
	Err    error
	Tag    Tag
	Offset int
}

func (e *TagError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%v: %d at offset %d", e.Err, uint8(e.Tag), e.Offset)
	}
	return fmt.Sprintf("%v: %d", e.Err, uint8(e.Tag))
}

func (e *TagError) Unwrap() error { return e.Err }

// ListError reports the first list element whose tag differs from the first
// element's tag.
type ListError struct {
	Expected Tag
	Got      Tag
	Index    int
}

func (e *ListError) Error() string {
	return fmt.Sprintf("%v: element %d is %v, want %v", ErrHeterogeneousList, e.Index, e.Got, e.Expected)
}

func (e *ListError) Unwrap() error { return ErrHeterogeneousList }

// RangeError reports an integer value too wide for its tag.
type RangeError struct {
	Tag   Tag
	Value int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %d does not fit %v", ErrOutOfRange, e.Value, e.Tag)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func eofAt(off, need int) error {
	return &OffsetError{Err: ErrUnexpectedEOF, Offset: off, Span: need}
}
