package nbt

import (
	"math"
	"testing"
)

func TestTagNames(t *testing.T) {
	if got := TagByteArray.String(); got != "TAG_Byte_Array" {
		t.Fatalf("String() = %q", got)
	}
	if got := Tag(42).String(); got != "TAG_Unknown(42)" {
		t.Fatalf("String() = %q", got)
	}
	for i := 1; i < numTags; i++ {
		tag := Tag(i)
		for _, name := range []string{tag.String(), tag.short()} {
			got, err := ParseTag(name)
			if err != nil || got != tag {
				t.Fatalf("ParseTag(%q) = %v, %v", name, got, err)
			}
		}
	}
	if _, err := ParseTag("TAG_Short_Array"); err == nil {
		t.Fatal("expected error for unknown name")
	}
	if TagEnd.Valid() || Tag(13).Valid() || !TagLongArray.Valid() {
		t.Fatal("Valid() range is wrong")
	}
}

func TestEqualFloatBits(t *testing.T) {
	nan1 := math.Float64frombits(0x7ff8000000000001)
	nan2 := math.Float64frombits(0x7ff8000000000002)
	if !Equal(Double(nan1), Double(nan1)) {
		t.Fatal("identical NaN bits should be equal")
	}
	if Equal(Double(nan1), Double(nan2)) {
		t.Fatal("different NaN payloads should differ")
	}
	if Equal(Float(0), Float(float32(math.Copysign(0, -1)))) {
		t.Fatal("+0 and -0 should differ")
	}
	if Equal(Int(1), Long(1)) {
		t.Fatal("different kinds should differ")
	}
	if !Equal(ByteArray(nil), ByteArray([]int8{})) {
		t.Fatal("nil and empty arrays should be equal")
	}
	a := Compound(E("a", Int(1)), E("b", Int(2)))
	b := Compound(E("b", Int(2)), E("a", Int(1)))
	if Equal(a, b) {
		t.Fatal("entry order should matter")
	}
}

func TestNaNRoundTripsBitExact(t *testing.T) {
	bits := uint32(0x7fc00abc)
	doc := NewDocument("", E("f", Float(math.Float32frombits(bits))))
	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	f, _ := got.Root.Get("f")
	if math.Float32bits(f.F32) != bits {
		t.Fatalf("bits %#x, want %#x", math.Float32bits(f.F32), bits)
	}
}

func TestCloneIndependent(t *testing.T) {
	orig := sampleDocument()
	cp := orig.Clone()
	if !cp.Equal(orig) {
		t.Fatal("clone differs from original")
	}
	bytesEntry, _ := cp.Root.Get("bytes")
	bytesEntry.Bytes[0] = 99
	cp.Root.Entries[0].Value = Byte(1)
	list, _ := cp.Root.Get("compounds")
	list.List[0].Entries[0].Name = "renamed"

	if v, _ := orig.Root.Get("bytes"); v.Bytes[0] != -1 {
		t.Fatal("byte array shared with clone")
	}
	if orig.Root.Entries[0].Value.Int != -128 {
		t.Fatal("entries shared with clone")
	}
	if v, _ := orig.Root.Lookup("compounds/0/id"); v.Str != "minecraft:stone" {
		t.Fatal("nested compound shared with clone")
	}
}

func TestLookup(t *testing.T) {
	root := sampleDocument().Root
	cases := []struct {
		path string
		want Value
	}{
		{"byte", Byte(-128)},
		{"compounds/0/Count", Byte(64)},
		{"/lists/0/0/", Short(1)},
		{"ints/2", Int(0x7fffffff)},
		{"bytes/0", Byte(-1)},
		{"longs/0", Long(math.MinInt64)},
	}
	for _, tc := range cases {
		got, ok := root.Lookup(tc.path)
		if !ok || !Equal(got, tc.want) {
			t.Fatalf("Lookup(%q) = %#v, %v", tc.path, got, ok)
		}
	}
	for _, path := range []string{"missing", "ints/3", "ints/-1", "byte/0", "compounds/x"} {
		if _, ok := root.Lookup(path); ok {
			t.Fatalf("Lookup(%q) should fail", path)
		}
	}
}

func TestAccessors(t *testing.T) {
	if n, ok := Short(-5).AsInt64(); !ok || n != -5 {
		t.Fatalf("AsInt64 = %d, %v", n, ok)
	}
	if n, ok := Double(3.9).AsInt64(); !ok || n != 3 {
		t.Fatalf("AsInt64(3.9) = %d, %v", n, ok)
	}
	if _, ok := Double(math.Inf(1)).AsInt64(); ok {
		t.Fatal("AsInt64(+Inf) should fail")
	}
	if f, ok := Int(7).AsFloat64(); !ok || f != 7 {
		t.Fatalf("AsFloat64 = %v, %v", f, ok)
	}
	if s, ok := Float(0.25).AsString(); !ok || s != "0.25" {
		t.Fatalf("AsString = %q, %v", s, ok)
	}
	if _, ok := List().AsString(); ok {
		t.Fatal("AsString(list) should fail")
	}
	if n := Compound(E("a", Int(1))).Len(); n != 1 {
		t.Fatalf("Len = %d", n)
	}
	if List(Int(1)).ElemTag() != TagInt {
		t.Fatal("ElemTag")
	}
}

func TestToAnyAndUnmarshal(t *testing.T) {
	m := ToAny(sampleDocument().Root).(map[string]any)
	if m["short"] != int16(32767) || m["dup"] != int32(2) {
		t.Fatalf("ToAny: %#v", m)
	}
	if _, ok := m["ints"].([]int32); !ok {
		t.Fatalf("ints: %T", m["ints"])
	}

	data, err := Encode(sampleDocument())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var level struct {
		Byte      int8    `json:"byte"`
		Long      int64   `json:"long"`
		Float     float32 `json:"float"`
		String    string  `json:"string"`
		Bytes     []int8  `json:"bytes"`
		Compounds []struct {
			ID    string `json:"id"`
			Count int    `json:"Count"`
		} `json:"compounds"`
	}
	if err := Unmarshal(data, &level); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if level.Byte != -128 || level.Long != math.MaxInt64 || level.Float != 0.5 || level.String != "héllo ✓" {
		t.Fatalf("scalars: %+v", level)
	}
	if len(level.Bytes) != 3 || level.Bytes[0] != -1 {
		t.Fatalf("bytes: %v", level.Bytes)
	}
	if len(level.Compounds) != 2 || level.Compounds[0].ID != "minecraft:stone" || level.Compounds[0].Count != 64 {
		t.Fatalf("compounds: %+v", level.Compounds)
	}
	if err := UnmarshalValue(Double(math.NaN()), new(any)); err != nil {
		t.Fatalf("NaN: %v", err)
	}
}
