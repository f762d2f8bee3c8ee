// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"bytes"
	"math"
	"testing"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
)

func TestHeaderAndNullEncoding(t *testing.T) {
	got, err := Encode(value.NullValue(), DefaultEncOptions())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{header0, header1, header2, 0x01, vNull}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(null) = % X, want % X", got, want)
	}
}

func TestSharedKeyReferenceAcrossObjects(t *testing.T) {
	doc := value.ArrayValue([]value.Value{
		value.ObjectValue([]value.Member{{Key: "n", Value: value.IntValue(1)}}),
		value.ObjectValue([]value.Member{{Key: "n", Value: value.IntValue(2)}}),
	})
	got, err := Encode(doc, DefaultEncOptions())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{
		header0, header1, header2, 0x01,
		vStartArray,
		vStartObject, 0x80, 'n', 0xD1, kEndObject,
		vStartObject, 0x40, 0xD2, kEndObject,
		vEndArray,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(shared-key doc) = % X, want % X", got, want)
	}

	decoded, err := Decode(got, DefaultDecOptions())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !value.Equal(decoded, doc) {
		t.Fatalf("Decode(Encode(doc)) = %+v, want %+v", decoded, doc)
	}
}

func TestRoundTripScalarsAndContainers(t *testing.T) {
	cases := []value.Value{
		value.NullValue(),
		value.BoolValue(true),
		value.BoolValue(false),
		value.IntValue(0),
		value.IntValue(-16),
		value.IntValue(15),
		value.IntValue(-17),
		value.IntValue(16),
		value.IntValue(1 << 40),
		value.IntValue(-(1 << 40)),
		value.Float32Value(3.5),
		value.Float64Value(-123456.789),
		value.StringValue(""),
		value.StringValue("n"),
		value.StringValue("a reasonably short ascii string"),
		value.StringValue("héllo wörld 🎉 with more than sixty four bytes of utf-8 text in it"),
		value.StringValue(asciiOfLen(32)),
		value.StringValue(asciiOfLen(33)),
		value.StringValue(asciiOfLen(64)),
		value.StringValue(asciiOfLen(65)),
		value.BytesValue([]byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0x7F, 0x80}),
		value.ArrayValue(nil),
		value.ObjectValue(nil),
		value.ArrayValue([]value.Value{value.IntValue(1), value.StringValue("two"), value.BoolValue(true)}),
		value.ObjectValue([]value.Member{
			{Key: "a", Value: value.IntValue(1)},
			{Key: "b", Value: value.ArrayValue([]value.Value{value.IntValue(2), value.IntValue(3)})},
		}),
	}

	for _, opts := range []EncOptions{
		DefaultEncOptions(),
		{SharedPropertyNames: true, SharedStringValues: true},
		{SharedPropertyNames: false, SharedStringValues: false},
		{SharedPropertyNames: true, SharedStringValues: true, RawBinaryEnabled: true},
	} {
		for _, v := range cases {
			encoded, err := Encode(v, opts)
			if err != nil {
				t.Fatalf("Encode(%+v, %+v): %v", v, opts, err)
			}
			decoded, err := Decode(encoded, DefaultDecOptions())
			if err != nil {
				t.Fatalf("Decode(Encode(%+v, %+v)): %v", v, opts, err)
			}
			if !value.Equal(decoded, v) {
				t.Fatalf("round trip mismatch for %+v under %+v: got %+v", v, opts, decoded)
			}
		}
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	big1 := value.UIntValue(math.MaxUint64)
	encoded, err := Encode(big1, DefaultEncOptions())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded, DefaultDecOptions())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Kind != value.BigInt {
		t.Fatalf("decoded Kind = %v, want BigInt", decoded.Kind)
	}
	if decoded.Z.Uint64() != math.MaxUint64 {
		t.Fatalf("decoded value = %v, want %d", decoded.Z, uint64(math.MaxUint64))
	}
}

func TestSharedStringValueDictionaryRoundTrip(t *testing.T) {
	repeated := value.ArrayValue([]value.Value{
		value.StringValue("repeated-value"),
		value.StringValue("repeated-value"),
		value.StringValue("repeated-value"),
	})
	shared := EncOptions{SharedPropertyNames: true, SharedStringValues: true}
	unshared := EncOptions{SharedPropertyNames: true, SharedStringValues: false}

	sharedBytes, err := Encode(repeated, shared)
	if err != nil {
		t.Fatalf("Encode(shared): %v", err)
	}
	unsharedBytes, err := Encode(repeated, unshared)
	if err != nil {
		t.Fatalf("Encode(unshared): %v", err)
	}
	if len(sharedBytes) >= len(unsharedBytes) {
		t.Fatalf("sharing did not shrink the document: shared=%d unshared=%d", len(sharedBytes), len(unsharedBytes))
	}

	decoded, err := Decode(sharedBytes, DefaultDecOptions())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !value.Equal(decoded, repeated) {
		t.Fatalf("Decode(Encode(repeated)) = %+v, want %+v", decoded, repeated)
	}
}

func TestDictionaryTableEvictionRoundTrip(t *testing.T) {
	var members []value.Member
	for i := 0; i < dictionaryStressCount; i++ {
		members = append(members, value.Member{Key: keyName(i), Value: value.IntValue(int64(i))})
	}
	doc := value.ObjectValue(members)
	opts := EncOptions{SharedPropertyNames: true}
	encoded, err := Encode(doc, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded, DefaultDecOptions())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !value.Equal(decoded, doc) {
		t.Fatalf("round trip mismatch after dictionary eviction")
	}
}

const dictionaryStressCount = 1100

func asciiOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(i%26)
	}
	return string(b)
}

func keyName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string([]byte{letters[i%26], letters[(i/26)%26], letters[(i/676)%26]})
}

func TestVIntBoundaryValues(t *testing.T) {
	for _, n := range []uint64{0, 1, 63, 64, 65, 127, 128, 8191, 8192, 1 << 20, math.MaxUint32, math.MaxUint64} {
		w := buffer.NewWriter(16)
		writeVInt(w, n)
		r := buffer.NewReader(w.Flush())
		got, err := readVInt(r)
		if err != nil {
			t.Fatalf("readVInt(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("VInt round trip for %d produced %d", n, got)
		}
	}
}

func TestSignedVIntBoundaryValues(t *testing.T) {
	for _, n := range []int64{0, -1, 1, -16, 15, -17, 16, math.MinInt32, math.MaxInt32, math.MinInt64, math.MaxInt64} {
		w := buffer.NewWriter(16)
		writeSignedVInt(w, n)
		r := buffer.NewReader(w.Flush())
		got, err := readSignedVInt(r)
		if err != nil {
			t.Fatalf("readSignedVInt(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("signed VInt round trip for %d produced %d", n, got)
		}
	}
}

func TestFloat7BitRoundTrip(t *testing.T) {
	for _, bits := range []uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, math.Float32bits(3.14159)} {
		raw := []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
		encoded := encode7Bit(raw)
		decoded := decode7Bit(encoded, 4)
		if !bytes.Equal(decoded, raw) {
			t.Fatalf("7-bit round trip for %08X produced % X, want % X", bits, decoded, raw)
		}
	}
}

func TestInvalidHeaderRejected(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x00, 0x00, 0x00, vNull}, DefaultDecOptions())
	if err == nil {
		t.Fatal("Decode accepted a document with a bad magic prefix")
	}
}

func TestEmptyStringAndEmptyContainers(t *testing.T) {
	cases := []value.Value{
		value.StringValue(""),
		value.ArrayValue(nil),
		value.ObjectValue(nil),
	}
	for _, v := range cases {
		encoded, err := Encode(v, DefaultEncOptions())
		if err != nil {
			t.Fatalf("Encode(%+v): %v", v, err)
		}
		decoded, err := Decode(encoded, DefaultDecOptions())
		if err != nil {
			t.Fatalf("Decode(%+v): %v", v, err)
		}
		if !value.Equal(decoded, v) {
			t.Fatalf("Decode(Encode(%+v)) = %+v", v, decoded)
		}
	}
}
