package nbt

import (
	"errors"
	"math"
	"testing"
)

func TestReaderPrimitives(t *testing.T) {
	r := NewReader([]byte{0xff, 0x80, 0x00, 0x3f, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	if v, _ := r.ReadI8(); v != -1 {
		t.Fatalf("ReadI8 = %d", v)
	}
	if v, _ := r.ReadI16(); v != math.MinInt16 {
		t.Fatalf("ReadI16 = %d", v)
	}
	if v, _ := r.ReadF32(); v != 1 {
		t.Fatalf("ReadF32 = %v", v)
	}
	if v, _ := r.ReadI64(); v != 1 {
		t.Fatalf("ReadI64 = %d", v)
	}
	if r.Remaining() != 0 || r.Offset() != 15 {
		t.Fatalf("cursor at %d with %d remaining", r.Offset(), r.Remaining())
	}
	_, err := r.ReadU8()
	var oe *OffsetError
	if !errors.As(err, &oe) || !errors.Is(err, ErrUnexpectedEOF) || oe.Offset != 15 {
		t.Fatalf("read past end: %v", err)
	}
}

func TestReaderFailedReadKeepsCursor(t *testing.T) {
	r := NewReader([]byte{0x00, 0x05, 'a', 'b'})
	if _, err := r.ReadPrefixedString(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if r.Offset() != 0 {
		t.Fatalf("cursor moved to %d", r.Offset())
	}
	if _, err := r.ReadI64(); !errors.Is(err, ErrUnexpectedEOF) || r.Offset() != 0 {
		t.Fatalf("ReadI64: %v at %d", err, r.Offset())
	}

	r = NewReader([]byte{0x00, 0x01, 0xc0})
	if _, err := r.ReadPrefixedString(); !errors.Is(err, ErrInvalidUTF8) || r.Offset() != 0 {
		t.Fatalf("ReadPrefixedString: %v at %d", err, r.Offset())
	}
	if _, err := r.ReadLongArray(1); !errors.Is(err, ErrUnexpectedEOF) || r.Offset() != 0 {
		t.Fatalf("ReadLongArray: %v at %d", err, r.Offset())
	}
}

func TestWriterPrimitives(t *testing.T) {
	w := NewWriter()
	defer w.Release()
	w.WriteI8(-1)
	w.WriteI16(math.MinInt16)
	w.WriteF32(1)
	w.WriteI64(1)
	w.WriteString("hi")
	w.WriteIntArray([]int32{-2})
	want := []byte{
		0xff, 0x80, 0x00, 0x3f, 0x80, 0x00, 0x00,
		0, 0, 0, 0, 0, 0, 0, 1,
		0x00, 0x02, 'h', 'i',
		0, 0, 0, 1, 0xff, 0xff, 0xff, 0xfe,
	}
	if got := w.Bytes(); string(got) != string(want) {
		t.Fatalf("got %x\nwant %x", got, want)
	}
	if w.Len() != len(want) {
		t.Fatalf("Len = %d", w.Len())
	}
}
