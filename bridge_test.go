package nbt

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/minio/simdjson-go"
)

func TestToJSONHelloWorld(t *testing.T) {
	got, err := ToJSON(helloWorld())
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	want := `{"name":"hello world","type":"compound","value":[{"name":"name","type":"string","value":"Bananrama"}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestToJSONFloatsAndLists(t *testing.T) {
	doc := NewDocument("", E("l", List(Double(2), Double(math.Inf(-1)))), E("s", String("a\"\n")))
	got, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	want := `{"name":"","type":"compound","value":[{"name":"l","type":"list","value":[{"type":"double","value":2.0},{"type":"double","value":"-Inf"}]},{"name":"s","type":"string","value":"a\"\n"}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	if !simdjson.SupportedCPU() {
		t.Skip("simdjson not supported on this cpu")
	}
	doc := sampleDocument()
	doc.Root.Entries = append(doc.Root.Entries, E("nan", Float(float32(math.NaN()))), E("inf", Double(math.Inf(1))))
	text, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	got, err := FromJSON([]byte(text))
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	nan, _ := got.Root.Get("nan")
	if nan.Tag != TagFloat || !math.IsNaN(float64(nan.F32)) {
		t.Fatalf("nan entry %#v", nan)
	}
	got.Root.Entries = got.Root.Entries[:len(got.Root.Entries)-2]
	doc.Root.Entries = doc.Root.Entries[:len(doc.Root.Entries)-2]
	if !got.Equal(doc) {
		t.Fatalf("round trip mismatch\n%s", text)
	}
}

func TestFromJSONErrors(t *testing.T) {
	if !simdjson.SupportedCPU() {
		t.Skip("simdjson not supported on this cpu")
	}
	cases := map[string]string{
		"root list":    `{"name":"","type":"list","value":[]}`,
		"byte range":   `{"name":"","type":"compound","value":[{"name":"b","type":"byte","value":300}]}`,
		"unknown type": `{"name":"","type":"compound","value":[{"name":"b","type":"uint","value":1}]}`,
		"missing":      `{"name":"","type":"compound"}`,
		"not object":   `[1,2]`,
	}
	for name, input := range cases {
		if _, err := FromJSON([]byte(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	_, err := FromJSON([]byte(`{"name":"","type":"list","value":[]}`))
	if !errors.Is(err, ErrRootNotCompound) {
		t.Fatalf("expected ErrRootNotCompound, got %v", err)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	doc := sampleDocument()
	doc.Root.Entries = append(doc.Root.Entries, E("nan", Double(math.Float64frombits(0x7ff8000000000123))))
	data, err := ToCBOR(doc)
	if err != nil {
		t.Fatalf("to cbor: %v", err)
	}
	got, err := FromCBOR(data, 0)
	if err != nil {
		t.Fatalf("from cbor: %v", err)
	}
	if !got.Equal(doc) {
		t.Fatal("round trip mismatch")
	}
	again, err := ToCBOR(got)
	if err != nil || string(again) != string(data) {
		t.Fatalf("cbor output is not deterministic: %v", err)
	}
}

func TestFromCBORIntegerOutOfRange(t *testing.T) {
	root := cborNode{Tag: uint8(TagCompound), Entries: []cborNode{{Name: "b", Tag: uint8(TagByte), Int: 300}}}
	data, err := cborEnc.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := FromCBOR(data, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestCBORDepthLimit(t *testing.T) {
	data, err := ToCBOR(Document{Root: nested(40)})
	if err != nil {
		t.Fatalf("to cbor: %v", err)
	}
	if _, err := FromCBOR(data, 8); err == nil {
		t.Fatal("expected nesting error")
	}
	if _, err := FromCBOR(data, 64); err != nil {
		t.Fatalf("within limit: %v", err)
	}
}

func TestDump(t *testing.T) {
	var sb strings.Builder
	if err := Dump(&sb, helloWorld()); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "TAG_Compound('hello world'): 1 entry\n{\n  TAG_String('name'): \"Bananrama\"\n}\n"
	if sb.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", sb.String(), want)
	}

	sb.Reset()
	doc := NewDocument("", E("l", List(Int(1), Int(2))), E("b", ByteArray([]int8{1, -1})), E("e", List()))
	if err := Dump(&sb, doc); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want = strings.Join([]string{
		"TAG_Compound(''): 3 entries",
		"{",
		"  TAG_List('l'): 2 entries of TAG_Int",
		"  {",
		"    TAG_Int(None): 1",
		"    TAG_Int(None): 2",
		"  }",
		"  TAG_Byte_Array('b'): 2 bytes [1, -1]",
		"  TAG_List('e'): 0 entries",
		"  {",
		"  }",
		"}",
		"",
	}, "\n")
	if sb.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestDumpStyled(t *testing.T) {
	var sb strings.Builder
	style := Style{Tag: func(s string) string { return "<" + s + ">" }}
	if err := DumpStyled(&sb, helloWorld(), style); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(sb.String(), "<TAG_Compound>('hello world')") {
		t.Fatalf("got %q", sb.String())
	}
}
