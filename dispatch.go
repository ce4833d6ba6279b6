package nbt

import (
	"math"
	"unicode/utf8"
)

// payloadCodec decodes and encodes the untagged, unnamed payload of one kind.
// minSize is the smallest encoded payload, used to reject element counts the
// remaining input cannot hold.
type payloadCodec struct {
	minSize int
	decode  func(d *decoder) (Value, error)
	encode  func(e *encoder, v Value) error
}

// payloadCodecs is indexed by Tag and shared by the list-element and
// compound-entry paths. It is filled in init because list and compound
// payloads refer back to it.
var payloadCodecs [numTags]payloadCodec

func init() {
	payloadCodecs = [numTags]payloadCodec{
		TagByte:      {1, decodeByte, encodeByte},
		TagShort:     {2, decodeShort, encodeShort},
		TagInt:       {4, decodeInt, encodeInt},
		TagLong:      {8, decodeLong, encodeLong},
		TagFloat:     {4, decodeFloat, encodeFloat},
		TagDouble:    {8, decodeDouble, encodeDouble},
		TagByteArray: {4, decodeByteArray, encodeByteArray},
		TagString:    {2, decodeString, encodeString},
		TagList:      {5, decodeList, encodeList},
		TagCompound:  {1, decodeCompound, encodeCompound},
		TagIntArray:  {4, decodeIntArray, encodeIntArray},
		TagLongArray: {4, decodeLongArray, encodeLongArray},
	}
}

func decodeByte(d *decoder) (Value, error) {
	v, err := d.r.ReadI8()
	return Byte(v), err
}

func decodeShort(d *decoder) (Value, error) {
	v, err := d.r.ReadI16()
	return Short(v), err
}

func decodeInt(d *decoder) (Value, error) {
	v, err := d.r.ReadI32()
	return Int(v), err
}

func decodeLong(d *decoder) (Value, error) {
	v, err := d.r.ReadI64()
	return Long(v), err
}

func decodeFloat(d *decoder) (Value, error) {
	v, err := d.r.ReadF32()
	return Float(v), err
}

func decodeDouble(d *decoder) (Value, error) {
	v, err := d.r.ReadF64()
	return Double(v), err
}

func decodeString(d *decoder) (Value, error) {
	s, err := d.r.ReadPrefixedString()
	if err != nil {
		return Value{}, err
	}
	return String(s), nil
}

func decodeByteArray(d *decoder) (Value, error) {
	n, err := d.readCount()
	if err != nil {
		return Value{}, err
	}
	v, err := d.r.ReadByteArray(n)
	if err != nil {
		return Value{}, err
	}
	return ByteArray(v), nil
}

func decodeIntArray(d *decoder) (Value, error) {
	n, err := d.readCount()
	if err != nil {
		return Value{}, err
	}
	v, err := d.r.ReadIntArray(n)
	if err != nil {
		return Value{}, err
	}
	return IntArray(v), nil
}

func decodeLongArray(d *decoder) (Value, error) {
	n, err := d.readCount()
	if err != nil {
		return Value{}, err
	}
	v, err := d.r.ReadLongArray(n)
	if err != nil {
		return Value{}, err
	}
	return LongArray(v), nil
}

func encodeByte(e *encoder, v Value) error {
	if err := checkRange(v, math.MinInt8, math.MaxInt8); err != nil {
		return err
	}
	e.w.WriteI8(int8(v.Int))
	return nil
}

func encodeShort(e *encoder, v Value) error {
	if err := checkRange(v, math.MinInt16, math.MaxInt16); err != nil {
		return err
	}
	e.w.WriteI16(int16(v.Int))
	return nil
}

func encodeInt(e *encoder, v Value) error {
	if err := checkRange(v, math.MinInt32, math.MaxInt32); err != nil {
		return err
	}
	e.w.WriteI32(int32(v.Int))
	return nil
}

func encodeLong(e *encoder, v Value) error {
	e.w.WriteI64(v.Int)
	return nil
}

func encodeFloat(e *encoder, v Value) error {
	e.w.WriteF32(v.F32)
	return nil
}

func encodeDouble(e *encoder, v Value) error {
	e.w.WriteF64(v.F64)
	return nil
}

func encodeString(e *encoder, v Value) error {
	if err := checkString(v.Str); err != nil {
		return err
	}
	e.w.WriteString(v.Str)
	return nil
}

func encodeByteArray(e *encoder, v Value) error {
	if err := checkCount(len(v.Bytes)); err != nil {
		return err
	}
	e.w.WriteByteArray(v.Bytes)
	return nil
}

func encodeIntArray(e *encoder, v Value) error {
	if err := checkCount(len(v.Ints)); err != nil {
		return err
	}
	e.w.WriteIntArray(v.Ints)
	return nil
}

func encodeLongArray(e *encoder, v Value) error {
	if err := checkCount(len(v.Longs)); err != nil {
		return err
	}
	e.w.WriteLongArray(v.Longs)
	return nil
}

// checkString rejects strings the uint16 length prefix cannot describe and
// strings that would not decode again.
func checkString(s string) error {
	if len(s) > math.MaxUint16 {
		return ErrStringTooLong
	}
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	return nil
}

// checkRange rejects a hand-built integer value that its tag's width cannot hold.
func checkRange(v Value, lo, hi int64) error {
	if v.Int < lo || v.Int > hi {
		return &RangeError{Tag: v.Tag, Value: v.Int}
	}
	return nil
}

func checkCount(n int) error {
	if n > math.MaxInt32 {
		return ErrInvalidLength
	}
	return nil
}
