package nbt

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// cborNode is the typed CBOR form of one value. Floats travel as bit patterns
// so NaN payloads survive; byte arrays travel as CBOR byte strings.
type cborNode struct {
	Name    string     `cbor:"n,omitempty"`
	Tag     uint8      `cbor:"t"`
	Int     int64      `cbor:"i,omitempty"`
	Bits    uint64     `cbor:"f,omitempty"`
	Str     string     `cbor:"s,omitempty"`
	Bytes   []byte     `cbor:"b,omitempty"`
	Ints    []int32    `cbor:"ia,omitempty"`
	Longs   []int64    `cbor:"la,omitempty"`
	Items   []cborNode `cbor:"l,omitempty"`
	Entries []cborNode `cbor:"c,omitempty"`
}

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("nbt: cbor encoder initialization failed: " + err.Error())
	}
}

// ToCBOR encodes doc as deterministic CBOR that FromCBOR reverses exactly.
func ToCBOR(doc Document) ([]byte, error) {
	if doc.Root.Tag != TagCompound {
		return nil, &TagError{Err: ErrRootNotCompound, Tag: doc.Root.Tag, Offset: -1}
	}
	node, err := toCBORNode(doc.Name, doc.Root)
	if err != nil {
		return nil, err
	}
	return cborEnc.Marshal(node)
}

// FromCBOR decodes the output of ToCBOR. maxDepth bounds nesting; <= 0 uses
// DefaultMaxDepth.
func FromCBOR(data []byte, maxDepth int) (Document, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	// Each value is a map plus the array holding its children.
	levels := 2*maxDepth + 2
	if levels > 65535 {
		levels = 65535
	}
	dec, err := cbor.DecOptions{MaxNestedLevels: levels}.DecMode()
	if err != nil {
		return Document{}, err
	}
	var node cborNode
	if err := dec.Unmarshal(data, &node); err != nil {
		return Document{}, err
	}
	root, err := fromCBORNode(node)
	if err != nil {
		return Document{}, err
	}
	if root.Tag != TagCompound {
		return Document{}, &TagError{Err: ErrRootNotCompound, Tag: root.Tag, Offset: -1}
	}
	return Document{Name: node.Name, Root: root}, nil
}

func toCBORNode(name string, v Value) (cborNode, error) {
	n := cborNode{Name: name, Tag: uint8(v.Tag)}
	switch v.Tag {
	case TagByte, TagShort, TagInt, TagLong:
		n.Int = v.Int
	case TagFloat:
		n.Bits = uint64(math.Float32bits(v.F32))
	case TagDouble:
		n.Bits = math.Float64bits(v.F64)
	case TagString:
		n.Str = v.Str
	case TagByteArray:
		n.Bytes = make([]byte, len(v.Bytes))
		for i, b := range v.Bytes {
			n.Bytes[i] = byte(b)
		}
	case TagIntArray:
		n.Ints = v.Ints
	case TagLongArray:
		n.Longs = v.Longs
	case TagList:
		n.Items = make([]cborNode, len(v.List))
		for i, item := range v.List {
			c, err := toCBORNode("", item)
			if err != nil {
				return cborNode{}, err
			}
			n.Items[i] = c
		}
	case TagCompound:
		n.Entries = make([]cborNode, len(v.Entries))
		for i, e := range v.Entries {
			c, err := toCBORNode(e.Name, e.Value)
			if err != nil {
				return cborNode{}, err
			}
			n.Entries[i] = c
		}
	default:
		return cborNode{}, &TagError{Err: ErrInvalidTag, Tag: v.Tag, Offset: -1}
	}
	return n, nil
}

func fromCBORNode(n cborNode) (Value, error) {
	t := Tag(n.Tag)
	switch t {
	case TagByte:
		if err := checkRange(Value{Tag: t, Int: n.Int}, math.MinInt8, math.MaxInt8); err != nil {
			return Value{}, err
		}
	case TagShort:
		if err := checkRange(Value{Tag: t, Int: n.Int}, math.MinInt16, math.MaxInt16); err != nil {
			return Value{}, err
		}
	case TagInt:
		if err := checkRange(Value{Tag: t, Int: n.Int}, math.MinInt32, math.MaxInt32); err != nil {
			return Value{}, err
		}
	}
	switch t {
	case TagByte:
		return Byte(int8(n.Int)), nil
	case TagShort:
		return Short(int16(n.Int)), nil
	case TagInt:
		return Int(int32(n.Int)), nil
	case TagLong:
		return Long(n.Int), nil
	case TagFloat:
		if n.Bits > math.MaxUint32 {
			return Value{}, fmt.Errorf("nbt: cbor float bits out of range: %#x", n.Bits)
		}
		return Float(math.Float32frombits(uint32(n.Bits))), nil
	case TagDouble:
		return Double(math.Float64frombits(n.Bits)), nil
	case TagString:
		return String(n.Str), nil
	case TagByteArray:
		out := make([]int8, len(n.Bytes))
		for i, b := range n.Bytes {
			out[i] = int8(b)
		}
		return ByteArray(out), nil
	case TagIntArray:
		return IntArray(n.Ints), nil
	case TagLongArray:
		return LongArray(n.Longs), nil
	case TagList:
		values := make([]Value, len(n.Items))
		for i, item := range n.Items {
			v, err := fromCBORNode(item)
			if err != nil {
				return Value{}, err
			}
			values[i] = v
		}
		return List(values...), nil
	case TagCompound:
		entries := make([]Entry, len(n.Entries))
		for i, item := range n.Entries {
			v, err := fromCBORNode(item)
			if err != nil {
				return Value{}, err
			}
			entries[i] = Entry{Name: item.Name, Value: v}
		}
		return Compound(entries...), nil
	default:
		return Value{}, &TagError{Err: ErrInvalidTag, Tag: t, Offset: -1}
	}
}
