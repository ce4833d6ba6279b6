package nbt

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
)

var (
	benchDoc     Document
	benchNBT     []byte
	benchCBOR    []byte
	benchAny     any
	benchAnyCBOR []byte
	sinkBytes    []byte
	sinkDocument Document
	sinkAny      any
)

func init() {
	benchDoc = benchChunk()
	var err error
	benchNBT, err = Encode(benchDoc)
	if err != nil {
		panic(err)
	}
	benchCBOR, err = ToCBOR(benchDoc)
	if err != nil {
		panic(err)
	}
	benchAny = ToAny(benchDoc.Root)
	benchAnyCBOR, err = cbor.Marshal(benchAny)
	if err != nil {
		panic(err)
	}
}

// benchChunk builds a document shaped like an Anvil chunk.
func benchChunk() Document {
	sections := make([]Value, 24)
	for i := range sections {
		states := make([]int64, 256)
		for j := range states {
			states[j] = int64(i*j) * 0x5DEECE66D
		}
		palette := make([]Value, 8)
		for j := range palette {
			palette[j] = Compound(
				E("Name", String("minecraft:block_"+string(rune('a'+j)))),
				E("Properties", Compound(E("axis", String("y")))),
			)
		}
		sections[i] = Compound(
			E("Y", Byte(int8(i-4))),
			E("block_states", Compound(E("palette", List(palette...)), E("data", LongArray(states)))),
			E("SkyLight", ByteArray(make([]int8, 2048))),
		)
	}
	return NewDocument("",
		E("DataVersion", Int(3953)),
		E("xPos", Int(-12)),
		E("zPos", Int(40)),
		E("Status", String("minecraft:full")),
		E("LastUpdate", Long(1234567890)),
		E("InhabitedTime", Long(42)),
		E("sections", List(sections...)),
		E("Heightmaps", Compound(E("MOTION_BLOCKING", LongArray(make([]int64, 37))))),
	)
}

func BenchmarkEncodeNBT(b *testing.B) {
	b.SetBytes(int64(len(benchNBT)))
	b.ReportAllocs()
	for b.Loop() {
		out, err := Encode(benchDoc)
		if err != nil {
			b.Fatal(err)
		}
		sinkBytes = out
	}
}

func BenchmarkAppendEncodeNBT(b *testing.B) {
	b.SetBytes(int64(len(benchNBT)))
	b.ReportAllocs()
	buf := make([]byte, 0, len(benchNBT))
	for b.Loop() {
		out, err := Classic.AppendEncode(buf[:0], benchDoc)
		if err != nil {
			b.Fatal(err)
		}
		sinkBytes = out
	}
}

func BenchmarkDecodeNBT(b *testing.B) {
	b.SetBytes(int64(len(benchNBT)))
	b.ReportAllocs()
	for b.Loop() {
		doc, err := Decode(benchNBT)
		if err != nil {
			b.Fatal(err)
		}
		sinkDocument = doc
	}
}

func BenchmarkEncodeTypedCBOR(b *testing.B) {
	b.SetBytes(int64(len(benchCBOR)))
	b.ReportAllocs()
	for b.Loop() {
		out, err := ToCBOR(benchDoc)
		if err != nil {
			b.Fatal(err)
		}
		sinkBytes = out
	}
}

func BenchmarkDecodeTypedCBOR(b *testing.B) {
	b.SetBytes(int64(len(benchCBOR)))
	b.ReportAllocs()
	for b.Loop() {
		doc, err := FromCBOR(benchCBOR, 0)
		if err != nil {
			b.Fatal(err)
		}
		sinkDocument = doc
	}
}

func BenchmarkEncodeCBORAny(b *testing.B) {
	b.SetBytes(int64(len(benchAnyCBOR)))
	b.ReportAllocs()
	for b.Loop() {
		out, err := cbor.Marshal(benchAny)
		if err != nil {
			b.Fatal(err)
		}
		sinkBytes = out
	}
}

func BenchmarkDecodeCBORAny(b *testing.B) {
	b.SetBytes(int64(len(benchAnyCBOR)))
	b.ReportAllocs()
	for b.Loop() {
		var out any
		if err := cbor.Unmarshal(benchAnyCBOR, &out); err != nil {
			b.Fatal(err)
		}
		sinkAny = out
	}
}
