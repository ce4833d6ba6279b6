package nbt

import (
	"bytes"
	"testing"
)

func fuzzSeeds(t testing.TB) [][]byte {
	classic, err := Encode(sampleDocument())
	if err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	return [][]byte{
		{},
		{0x0a},
		{0x0a, 0x00, 0x00, 0x00},
		mustHex(t, helloWorldClassic),
		mustHex(t, helloWorldNetwork),
		mustHex(t, "0a 0000 09 0001 6c 0a 00000002 00 00 00"),
		mustHex(t, "0a 0000 0b 0001 61 7fffffff"),
		classic,
	}
}

func checkRoundTrip(t *testing.T, codec *Codec, data []byte) {
	doc, err := codec.Decode(data)
	if err != nil {
		return
	}
	enc, err := codec.Encode(doc)
	if err != nil {
		t.Fatalf("encode decoded document: %v", err)
	}
	again, err := codec.Decode(enc)
	if err != nil {
		t.Fatalf("decode re-encoded document: %v", err)
	}
	if !Equal(again.Root, doc.Root) || again.Name != doc.Name {
		t.Fatalf("roundtrip mismatch for %x", data)
	}
	enc2, err := codec.Encode(again)
	if err != nil {
		t.Fatalf("encode again: %v", err)
	}
	if !bytes.Equal(enc, enc2) {
		t.Fatalf("encoding not stable:\n%x\n%x", enc, enc2)
	}
}

func FuzzDecodeRoundTrip(f *testing.F) {
	for _, seed := range fuzzSeeds(f) {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		checkRoundTrip(t, Classic, data)
	})
}

func FuzzDecodeNetworkRoundTrip(f *testing.F) {
	for _, seed := range fuzzSeeds(f) {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		checkRoundTrip(t, Network, data)
	})
}

func FuzzCBORBridge(f *testing.F) {
	for _, seed := range fuzzSeeds(f) {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := Decode(data)
		if err != nil {
			return
		}
		enc, err := ToCBOR(doc)
		if err != nil {
			t.Fatalf("to cbor: %v", err)
		}
		got, err := FromCBOR(enc, 0)
		if err != nil {
			t.Fatalf("from cbor: %v", err)
		}
		if !got.Equal(doc) {
			t.Fatalf("cbor roundtrip mismatch for %x", data)
		}
	})
}
