package nbt

// Value is a decoded NBT value. Tag selects which payload field is populated:
//
//	TagByte, TagShort, TagInt, TagLong  Int
//	TagFloat                            F32
//	TagDouble                           F64
//	TagString                           Str
//	TagByteArray                        Bytes
//	TagIntArray                         Ints
//	TagLongArray                        Longs
//	TagList                             List
//	TagCompound                         Entries
//
// Build values with the constructors below so the tag always agrees with the
// payload. The zero Value has TagEnd and cannot be encoded.
type Value struct {
	Tag     Tag
	Int     int64
	F32     float32
	F64     float64
	Str     string
	Bytes   []int8
	Ints    []int32
	Longs   []int64
	List    []Value
	Entries []Entry
}

// Entry is a named value inside a compound.
type Entry struct {
	Name  string
	Value Value
}

// Document is a root compound together with its optional root name.
// Dialects without a root name leave Name empty and ignore it on encode.
type Document struct {
	Name string
	Root Value
}

// Byte returns a TagByte value.
func Byte(v int8) Value { return Value{Tag: TagByte, Int: int64(v)} }

// Short returns a TagShort value.
func Short(v int16) Value { return Value{Tag: TagShort, Int: int64(v)} }

// Int returns a TagInt value.
func Int(v int32) Value { return Value{Tag: TagInt, Int: int64(v)} }

// Long returns a TagLong value.
func Long(v int64) Value { return Value{Tag: TagLong, Int: v} }

// Float returns a TagFloat value.
func Float(v float32) Value { return Value{Tag: TagFloat, F32: v} }

// Double returns a TagDouble value.
func Double(v float64) Value { return Value{Tag: TagDouble, F64: v} }

// String returns a TagString value.
func String(v string) Value { return Value{Tag: TagString, Str: v} }

// ByteArray returns a TagByteArray value that owns v.
func ByteArray(v []int8) Value { return Value{Tag: TagByteArray, Bytes: v} }

// IntArray returns a TagIntArray value that owns v.
func IntArray(v []int32) Value { return Value{Tag: TagIntArray, Ints: v} }

// LongArray returns a TagLongArray value that owns v.
func LongArray(v []int64) Value { return Value{Tag: TagLongArray, Longs: v} }

// List returns a TagList value. Homogeneity is checked when encoding.
func List(values ...Value) Value { return Value{Tag: TagList, List: values} }

// Compound returns a TagCompound value with entries in the given order.
func Compound(entries ...Entry) Value { return Value{Tag: TagCompound, Entries: entries} }

// E is shorthand for building a compound entry.
func E(name string, v Value) Entry { return Entry{Name: name, Value: v} }

// NewDocument returns a document whose root is a compound of entries.
func NewDocument(name string, entries ...Entry) Document {
	return Document{Name: name, Root: Compound(entries...)}
}

// ElemTag returns the tag shared by the elements of a list: the first
// element's tag, or TagEnd when the list is empty or v is not a list.
func (v Value) ElemTag() Tag {
	if v.Tag != TagList || len(v.List) == 0 {
		return TagEnd
	}
	return v.List[0].Tag
}

// Len returns the number of elements, entries, or string bytes in v.
// Scalars have length 0.
func (v Value) Len() int {
	switch v.Tag {
	case TagString:
		return len(v.Str)
	case TagByteArray:
		return len(v.Bytes)
	case TagIntArray:
		return len(v.Ints)
	case TagLongArray:
		return len(v.Longs)
	case TagList:
		return len(v.List)
	case TagCompound:
		return len(v.Entries)
	default:
		return 0
	}
}
