package nbt

import (
	"math"
	"slices"
)

// Equal reports whether a and b are structurally identical. Floats compare by
// bit pattern, so NaN payloads must match and 0 differs from -0. Nil and empty
// slices are equal. Compound entries compare in order.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagByte, TagShort, TagInt, TagLong:
		return a.Int == b.Int
	case TagFloat:
		return math.Float32bits(a.F32) == math.Float32bits(b.F32)
	case TagDouble:
		return math.Float64bits(a.F64) == math.Float64bits(b.F64)
	case TagString:
		return a.Str == b.Str
	case TagByteArray:
		return slices.Equal(a.Bytes, b.Bytes)
	case TagIntArray:
		return slices.Equal(a.Ints, b.Ints)
	case TagLongArray:
		return slices.Equal(a.Longs, b.Longs)
	case TagList:
		return slices.EqualFunc(a.List, b.List, Equal)
	case TagCompound:
		return slices.EqualFunc(a.Entries, b.Entries, func(x, y Entry) bool {
			return x.Name == y.Name && Equal(x.Value, y.Value)
		})
	default:
		return true
	}
}

// Equal reports whether both documents have the same root name and root.
func (doc Document) Equal(other Document) bool {
	return doc.Name == other.Name && Equal(doc.Root, other.Root)
}
