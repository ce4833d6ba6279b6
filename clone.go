package nbt

import "slices"

// Clone returns a deep copy of v that shares no slices with it.
func Clone(v Value) Value {
	switch v.Tag {
	case TagByteArray:
		return ByteArray(slices.Clone(v.Bytes))
	case TagIntArray:
		return IntArray(slices.Clone(v.Ints))
	case TagLongArray:
		return LongArray(slices.Clone(v.Longs))
	case TagList:
		if v.List == nil {
			return List()
		}
		out := make([]Value, len(v.List))
		for i, item := range v.List {
			out[i] = Clone(item)
		}
		return List(out...)
	case TagCompound:
		if v.Entries == nil {
			return Compound()
		}
		out := make([]Entry, len(v.Entries))
		for i, e := range v.Entries {
			out[i] = Entry{Name: e.Name, Value: Clone(e.Value)}
		}
		return Compound(out...)
	default:
		return v
	}
}

// Clone returns a deep copy of doc.
func (doc Document) Clone() Document {
	return Document{Name: doc.Name, Root: Clone(doc.Root)}
}
