package nbt

import (
	"encoding/binary"
	"math"

	"github.com/delaneyj/toolbelt/bytebufferpool"
)

// Writer is an append-only sink for the primitive encodings read by Reader.
// Writes never fail; Release returns the backing buffer to the pool.
type Writer struct {
	buf *bytebufferpool.ByteBuffer
}

// NewWriter returns a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: bytebufferpool.Get()}
}

// Bytes returns a copy of everything written so far.
func (w *Writer) Bytes() []byte {
	return append([]byte{}, w.buf.Bytes()...)
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf.Bytes()) }

// Release returns the buffer to the pool. The Writer must not be used after.
func (w *Writer) Release() {
	if w.buf != nil {
		bytebufferpool.Put(w.buf)
		w.buf = nil
	}
}

// WriteU8 appends one unsigned byte.
func (w *Writer) WriteU8(v uint8) { w.buf.WriteByte(v) }

// WriteI8 appends one signed byte.
func (w *Writer) WriteI8(v int8) { w.buf.WriteByte(byte(v)) }

// WriteU16 appends a big-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	w.buf.Write(tmp[:])
}

// WriteI16 appends a big-endian int16.
func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) }

// WriteI32 appends a big-endian int32.
func (w *Writer) WriteI32(v int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	w.buf.Write(tmp[:])
}

// WriteI64 appends a big-endian int64.
func (w *Writer) WriteI64(v int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	w.buf.Write(tmp[:])
}

// WriteF32 appends the IEEE-754 binary32 bit pattern of v.
func (w *Writer) WriteF32(v float32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], math.Float32bits(v))
	w.buf.Write(tmp[:])
}

// WriteF64 appends the IEEE-754 binary64 bit pattern of v.
func (w *Writer) WriteF64(v float64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
	w.buf.Write(tmp[:])
}

// WriteString appends a uint16 byte length and the raw bytes of s.
// Callers must ensure len(s) <= math.MaxUint16.
func (w *Writer) WriteString(s string) {
	w.WriteU16(uint16(len(s)))
	w.buf.WriteString(s)
}

// WriteByteArray appends an int32 count and the bytes of v.
func (w *Writer) WriteByteArray(v []int8) {
	w.WriteI32(int32(len(v)))
	for _, b := range v {
		w.buf.WriteByte(byte(b))
	}
}

// WriteIntArray appends an int32 count and each element of v.
func (w *Writer) WriteIntArray(v []int32) {
	w.WriteI32(int32(len(v)))
	var tmp [4]byte
	for _, n := range v {
		binary.BigEndian.PutUint32(tmp[:], uint32(n))
		w.buf.Write(tmp[:])
	}
}

// WriteLongArray appends an int32 count and each element of v.
func (w *Writer) WriteLongArray(v []int64) {
	w.WriteI32(int32(len(v)))
	var tmp [8]byte
	for _, n := range v {
		binary.BigEndian.PutUint64(tmp[:], uint64(n))
		w.buf.Write(tmp[:])
	}
}
