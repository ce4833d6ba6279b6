package nbt

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader is a forward-only cursor over an immutable buffer. Every read checks
// bounds first and leaves the cursor untouched when it fails.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

func (r *Reader) reset(data []byte) {
	r.data = data
	r.off = 0
}

// take returns the next n bytes and advances past them.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.off {
		return nil, eofAt(r.off, n)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	if r.off >= len(r.data) {
		return 0, eofAt(r.off, 1)
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadI16 reads a big-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadI32 reads a big-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadI64 reads a big-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadF32 reads an IEEE-754 binary32 bit pattern.
func (r *Reader) ReadF32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadF64 reads an IEEE-754 binary64 bit pattern.
func (r *Reader) ReadF64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadString reads n raw bytes and validates them as UTF-8.
func (r *Reader) ReadString(n int) (string, error) {
	start := r.off
	if n < 0 || n > len(r.data)-start {
		return "", eofAt(start, n)
	}
	b := r.data[start : start+n]
	if !utf8.Valid(b) {
		return "", &OffsetError{Err: ErrInvalidUTF8, Offset: start, Span: n}
	}
	r.off += n
	return string(b), nil
}

// ReadPrefixedString reads a uint16 byte length followed by that many bytes
// of UTF-8. On failure the cursor is restored to the length prefix.
func (r *Reader) ReadPrefixedString() (string, error) {
	start := r.off
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	s, err := r.ReadString(int(n))
	if err != nil {
		r.off = start
		return "", err
	}
	return s, nil
}

// ReadByteArray reads n signed bytes into a freshly allocated slice.
func (r *Reader) ReadByteArray(n int) ([]int8, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i, c := range b {
		out[i] = int8(c)
	}
	return out, nil
}

// ReadIntArray reads n big-endian int32 values.
func (r *Reader) ReadIntArray(n int) ([]int32, error) {
	if n < 0 || n > (len(r.data)-r.off)/4 {
		return nil, eofAt(r.off, n*4)
	}
	b, _ := r.take(n * 4)
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

// ReadLongArray reads n big-endian int64 values.
func (r *Reader) ReadLongArray(n int) ([]int64, error) {
	if n < 0 || n > (len(r.data)-r.off)/8 {
		return nil, eofAt(r.off, n*8)
	}
	b, _ := r.take(n * 8)
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.BigEndian.Uint64(b[i*8:]))
	}
	return out, nil
}
