package nbt

import (
	"math"
	"strconv"
	"strings"
)

// Get returns the first entry named name in a compound.
func (v Value) Get(name string) (Value, bool) {
	if v.Tag != TagCompound {
		return Value{}, false
	}
	for _, e := range v.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Lookup walks a slash-separated path: compound segments match entry names,
// list and array segments are decimal indexes. Array elements come back as
// scalar values of the array's element kind.
func (v Value) Lookup(path string) (Value, bool) {
	cur := v
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		var ok bool
		if cur.Tag == TagCompound {
			cur, ok = cur.Get(seg)
		} else {
			cur, ok = cur.index(seg)
		}
		if !ok {
			return Value{}, false
		}
	}
	return cur, true
}

func (v Value) index(seg string) (Value, bool) {
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || i >= v.Len() {
		return Value{}, false
	}
	switch v.Tag {
	case TagList:
		return v.List[i], true
	case TagByteArray:
		return Byte(v.Bytes[i]), true
	case TagIntArray:
		return Int(v.Ints[i]), true
	case TagLongArray:
		return Long(v.Longs[i]), true
	default:
		return Value{}, false
	}
}

// AsInt64 returns integer and float values as int64.
func (v Value) AsInt64() (int64, bool) {
	switch v.Tag {
	case TagByte, TagShort, TagInt, TagLong:
		return v.Int, true
	case TagFloat, TagDouble:
		f, _ := v.AsFloat64()
		if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt64 || f > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// AsFloat64 returns numeric values as float64.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Tag {
	case TagFloat:
		return float64(v.F32), true
	case TagDouble:
		return v.F64, true
	case TagByte, TagShort, TagInt, TagLong:
		return float64(v.Int), true
	default:
		return 0, false
	}
}

// AsString returns strings directly and formats numeric scalars.
func (v Value) AsString() (string, bool) {
	switch v.Tag {
	case TagString:
		return v.Str, true
	case TagByte, TagShort, TagInt, TagLong:
		return strconv.FormatInt(v.Int, 10), true
	case TagFloat:
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32), true
	case TagDouble:
		return strconv.FormatFloat(v.F64, 'g', -1, 64), true
	default:
		return "", false
	}
}

// ToAny converts v to plain Go values: int8/int16/int32/int64, float32,
// float64, string, typed slices, []any for lists and map[string]any for
// compounds. Compound order is lost and the last duplicate name wins.
func ToAny(v Value) any {
	switch v.Tag {
	case TagByte:
		return int8(v.Int)
	case TagShort:
		return int16(v.Int)
	case TagInt:
		return int32(v.Int)
	case TagLong:
		return v.Int
	case TagFloat:
		return v.F32
	case TagDouble:
		return v.F64
	case TagString:
		return v.Str
	case TagByteArray:
		return v.Bytes
	case TagIntArray:
		return v.Ints
	case TagLongArray:
		return v.Longs
	case TagList:
		out := make([]any, len(v.List))
		for i, item := range v.List {
			out[i] = ToAny(item)
		}
		return out
	case TagCompound:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Name] = ToAny(e.Value)
		}
		return out
	default:
		return nil
	}
}
