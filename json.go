package nbt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/minio/simdjson-go"
)

// ToJSON renders doc in the typed JSON form understood by FromJSON.
//
//	{"name":"hello world","type":"compound","value":[
//	  {"name":"name","type":"string","value":"Bananrama"}]}
//
// Entry order and duplicate names are kept. Non-finite floats are written as
// the strings "NaN", "+Inf" and "-Inf"; NaN payloads are not preserved.
func ToJSON(doc Document) (string, error) {
	var sb strings.Builder
	if err := WriteJSON(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteJSON appends the typed JSON form of doc to sb.
func WriteJSON(sb *strings.Builder, doc Document) error {
	if doc.Root.Tag != TagCompound {
		return &TagError{Err: ErrRootNotCompound, Tag: doc.Root.Tag, Offset: -1}
	}
	return writeJSONNode(sb, doc.Name, true, doc.Root)
}

func writeJSONNode(sb *strings.Builder, name string, named bool, v Value) error {
	if !v.Tag.Valid() {
		return &TagError{Err: ErrInvalidTag, Tag: v.Tag, Offset: -1}
	}
	sb.WriteByte('{')
	if named {
		sb.WriteString(`"name":`)
		writeJSONString(sb, name)
		sb.WriteByte(',')
	}
	sb.WriteString(`"type":"`)
	sb.WriteString(v.Tag.short())
	sb.WriteString(`","value":`)
	if err := writeJSONPayload(sb, v); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func writeJSONPayload(sb *strings.Builder, v Value) error {
	switch v.Tag {
	case TagByte, TagShort, TagInt, TagLong:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case TagFloat:
		writeJSONFloat(sb, float64(v.F32), 32)
	case TagDouble:
		writeJSONFloat(sb, v.F64, 64)
	case TagString:
		writeJSONString(sb, v.Str)
	case TagByteArray:
		sb.WriteByte('[')
		for i, b := range v.Bytes {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(b)))
		}
		sb.WriteByte(']')
	case TagIntArray:
		sb.WriteByte('[')
		for i, n := range v.Ints {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(int64(n), 10))
		}
		sb.WriteByte(']')
	case TagLongArray:
		sb.WriteByte('[')
		for i, n := range v.Longs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(n, 10))
		}
		sb.WriteByte(']')
	case TagList:
		sb.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONNode(sb, "", false, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case TagCompound:
		sb.WriteByte('[')
		for i, e := range v.Entries {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONNode(sb, e.Name, true, e.Value); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	}
	return nil
}

func writeJSONFloat(sb *strings.Builder, f float64, bits int) {
	if !isFinite(f) {
		sb.WriteByte('"')
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		sb.WriteByte('"')
		return
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	sb.WriteString(s)
	if !strings.ContainsAny(s, ".eE") {
		sb.WriteString(".0")
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigit(c >> 4))
				sb.WriteByte(hexDigit(c & 0xF))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}

// FromJSON parses the typed JSON form produced by ToJSON using simdjson-go.
func FromJSON(data []byte) (Document, error) {
	if !simdjson.SupportedCPU() {
		return Document{}, fmt.Errorf("nbt: simdjson is not supported on this cpu")
	}
	parsed, err := simdjson.Parse(data, nil)
	if err != nil {
		return Document{}, err
	}
	it := parsed.Iter()
	if it.Advance() != simdjson.TypeRoot {
		return Document{}, fmt.Errorf("nbt: json root not found")
	}
	typ, root, err := it.Root(nil)
	if err != nil {
		return Document{}, err
	}
	if typ != simdjson.TypeObject {
		return Document{}, fmt.Errorf("nbt: json root must be an object, got %v", typ)
	}
	jd := jsonDecoder{maxDepth: DefaultMaxDepth}
	name, v, err := jd.node(root, true)
	if err != nil {
		return Document{}, err
	}
	if v.Tag != TagCompound {
		return Document{}, &TagError{Err: ErrRootNotCompound, Tag: v.Tag, Offset: -1}
	}
	return Document{Name: name, Root: v}, nil
}

type jsonDecoder struct {
	maxDepth int
	depth    int
}

// node decodes one typed object {"name":..,"type":..,"value":..}.
func (jd *jsonDecoder) node(it *simdjson.Iter, named bool) (string, Value, error) {
	obj, err := it.Object(nil)
	if err != nil {
		return "", Value{}, err
	}
	var (
		name              string
		typeName          string
		value             simdjson.Iter
		hasType, hasValue bool
		fieldErr          error
	)
	err = obj.ForEach(func(key []byte, elem simdjson.Iter) {
		if fieldErr != nil {
			return
		}
		switch string(key) {
		case "name":
			name, fieldErr = elem.String()
		case "type":
			typeName, fieldErr = elem.String()
			hasType = true
		case "value":
			value = elem
			hasValue = true
		}
	}, nil)
	if err != nil {
		return "", Value{}, err
	}
	if fieldErr != nil {
		return "", Value{}, fieldErr
	}
	if !hasType || !hasValue {
		return "", Value{}, fmt.Errorf("nbt: json node needs type and value")
	}
	if !named {
		name = ""
	}
	t, err := ParseTag(typeName)
	if err != nil {
		return "", Value{}, err
	}
	if !t.Valid() {
		return "", Value{}, &TagError{Err: ErrInvalidTag, Tag: t, Offset: -1}
	}
	v, err := jd.payload(t, &value)
	if err != nil {
		return "", Value{}, fmt.Errorf("nbt: json %s %q: %w", t.short(), name, err)
	}
	return name, v, nil
}

func (jd *jsonDecoder) payload(t Tag, it *simdjson.Iter) (Value, error) {
	switch t {
	case TagByte:
		n, err := jsonInt(it, math.MinInt8, math.MaxInt8)
		return Byte(int8(n)), err
	case TagShort:
		n, err := jsonInt(it, math.MinInt16, math.MaxInt16)
		return Short(int16(n)), err
	case TagInt:
		n, err := jsonInt(it, math.MinInt32, math.MaxInt32)
		return Int(int32(n)), err
	case TagLong:
		n, err := jsonInt(it, math.MinInt64, math.MaxInt64)
		return Long(n), err
	case TagFloat:
		f, err := jsonFloat(it)
		return Float(float32(f)), err
	case TagDouble:
		f, err := jsonFloat(it)
		return Double(f), err
	case TagString:
		s, err := it.String()
		return String(s), err
	case TagByteArray:
		var out []int8
		err := jsonEach(it, func(elem *simdjson.Iter) error {
			n, err := jsonInt(elem, math.MinInt8, math.MaxInt8)
			out = append(out, int8(n))
			return err
		})
		return ByteArray(out), err
	case TagIntArray:
		var out []int32
		err := jsonEach(it, func(elem *simdjson.Iter) error {
			n, err := jsonInt(elem, math.MinInt32, math.MaxInt32)
			out = append(out, int32(n))
			return err
		})
		return IntArray(out), err
	case TagLongArray:
		var out []int64
		err := jsonEach(it, func(elem *simdjson.Iter) error {
			n, err := jsonInt(elem, math.MinInt64, math.MaxInt64)
			out = append(out, n)
			return err
		})
		return LongArray(out), err
	case TagList, TagCompound:
		jd.depth++
		defer func() { jd.depth-- }()
		if jd.maxDepth > 0 && jd.depth > jd.maxDepth {
			return Value{}, ErrMaxDepth
		}
		var values []Value
		var entries []Entry
		err := jsonEach(it, func(elem *simdjson.Iter) error {
			name, v, err := jd.node(elem, t == TagCompound)
			if err != nil {
				return err
			}
			if t == TagCompound {
				entries = append(entries, Entry{Name: name, Value: v})
			} else {
				values = append(values, v)
			}
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		if t == TagCompound {
			return Compound(entries...), nil
		}
		return List(values...), nil
	default:
		return Value{}, &TagError{Err: ErrInvalidTag, Tag: t, Offset: -1}
	}
}

func jsonEach(it *simdjson.Iter, fn func(elem *simdjson.Iter) error) error {
	if it.Type() != simdjson.TypeArray {
		return fmt.Errorf("expected array, got %v", it.Type())
	}
	arr, err := it.Array(nil)
	if err != nil {
		return err
	}
	iter := arr.Iter()
	for {
		t := iter.Advance()
		if t == simdjson.TypeNone {
			return nil
		}
		elem := iter
		if err := fn(&elem); err != nil {
			return err
		}
	}
}

func jsonInt(it *simdjson.Iter, lo, hi int64) (int64, error) {
	var n int64
	switch it.Type() {
	case simdjson.TypeInt:
		v, err := it.Int()
		if err != nil {
			return 0, err
		}
		n = v
	case simdjson.TypeUint:
		v, err := it.Uint()
		if err != nil {
			return 0, err
		}
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d out of range", v)
		}
		n = int64(v)
	default:
		return 0, fmt.Errorf("expected integer, got %v", it.Type())
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("integer %d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func jsonFloat(it *simdjson.Iter) (float64, error) {
	switch it.Type() {
	case simdjson.TypeFloat, simdjson.TypeInt, simdjson.TypeUint:
		return it.Float()
	case simdjson.TypeString:
		s, err := it.String()
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("expected number, got %v", it.Type())
	}
}
