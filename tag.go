package nbt

import (
	"fmt"
	"strings"
)

// Tag identifies the kind of a value on the wire.
type Tag uint8

const (
	TagEnd Tag = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// numTags is one past the largest valid tag.
const numTags = int(TagLongArray) + 1

var tagNames = [numTags]string{
	TagEnd:       "End",
	TagByte:      "Byte",
	TagShort:     "Short",
	TagInt:       "Int",
	TagLong:      "Long",
	TagFloat:     "Float",
	TagDouble:    "Double",
	TagByteArray: "Byte_Array",
	TagString:    "String",
	TagList:      "List",
	TagCompound:  "Compound",
	TagIntArray:  "Int_Array",
	TagLongArray: "Long_Array",
}

// Valid reports whether t names a value kind (1..12).
func (t Tag) Valid() bool {
	return t >= TagByte && t <= TagLongArray
}

// String returns the canonical TAG_Xxx name.
func (t Tag) String() string {
	if int(t) < numTags {
		return "TAG_" + tagNames[t]
	}
	return fmt.Sprintf("TAG_Unknown(%d)", uint8(t))
}

// short returns the lower-case name used by the JSON and CBOR bridges.
func (t Tag) short() string {
	if int(t) < numTags {
		return strings.ToLower(strings.ReplaceAll(tagNames[t], "_", ""))
	}
	return ""
}

// ParseTag parses either a TAG_Xxx name or a short lower-case name such as
// "int" or "bytearray".
func ParseTag(name string) (Tag, error) {
	for i := 0; i < numTags; i++ {
		t := Tag(i)
		if name == t.String() || name == t.short() {
			return t, nil
		}
	}
	return TagEnd, fmt.Errorf("nbt: unknown tag name %q", name)
}
