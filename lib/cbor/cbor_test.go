// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wireline-go/wireline/lib/pathnav"
	"github.com/wireline-go/wireline/lib/value"
)

// TestTag37UUIDExtensionRoundTrip exercises tag 37 (RFC 9562 binary
// UUID), which has no dedicated decoder branch in tags.go: an unknown
// tag wraps its payload in an Extension, and that's sufficient for a
// 16-byte UUID to round trip exactly.
func TestTag37UUIDExtensionRoundTrip(t *testing.T) {
	id := uuid.New()
	idBytes, err := id.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	in := value.ExtensionValue(37, value.BytesValue(idBytes))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != 37 || got.Payload == nil {
		t.Fatalf("got %+v, want Extension{Tag: 37, ...}", got)
	}
	gotUUID, err := uuid.FromBytes(got.Payload.Bin)
	if err != nil {
		t.Fatal(err)
	}
	if gotUUID != id {
		t.Fatalf("round-tripped UUID %v != original %v", gotUUID, id)
	}
}

// TestIndefiniteLengthArray is spec §8 seed scenario 2: 0x9F 0x01
// 0x02 0x03 0xFF decodes to [1, 2, 3].
func TestIndefiniteLengthArray(t *testing.T) {
	data := []byte{0x9F, 0x01, 0x02, 0x03, 0xFF}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	want := value.ArrayValue([]value.Value{value.UIntValue(1), value.UIntValue(2), value.UIntValue(3)})
	if !value.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestIndefiniteLengthZeroChunks(t *testing.T) {
	cases := map[string][]byte{
		"array": {0x9F, 0xFF},
		"map":   {0xBF, 0xFF},
	}
	for name, data := range cases {
		got, err := Decode(data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.Len() != 0 {
			t.Errorf("%s: got len %d, want 0", name, got.Len())
		}
	}
}

// TestTypedArrayTagRoundTrip is spec §8 seed scenario 3, adapted to
// this module's big-endian-default encoder: the byte layout differs
// from the little-endian-host example in spec.md, but the round trip
// property (decode(encode(v)) == v) holds regardless of endianness
// tag chosen.
func TestTypedArrayTagRoundTrip(t *testing.T) {
	v := value.Value{
		Kind: value.TypedArray,
		Elem: value.ElemInt16,
		TA:   value.TypedArrayData{I16: []int16{256, -1}},
	}
	data, err := Encode(v, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestStableEncoderCanonicalization(t *testing.T) {
	a := value.ObjectValue([]value.Member{{Key: "b", Value: value.IntValue(1)}, {Key: "a", Value: value.IntValue(2)}})
	b := value.ObjectValue([]value.Member{{Key: "a", Value: value.IntValue(2)}, {Key: "b", Value: value.IntValue(1)}})

	encA, err := Encode(a, Stable)
	if err != nil {
		t.Fatal(err)
	}
	encB, err := Encode(b, Stable)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encA, encB) {
		t.Fatalf("Stable encoding not canonical: % x != % x", encA, encB)
	}
}

func TestStableEncodingIsIdempotent(t *testing.T) {
	v := value.ObjectValue([]value.Member{{Key: "z", Value: value.IntValue(1)}, {Key: "a", Value: value.StringValue("x")}})
	first, err := Encode(v, Stable)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Encode(v, Stable)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("Stable encoding is not idempotent")
	}
}

func TestDAGRejectsNaNAndInfinity(t *testing.T) {
	nan := value.Float64Value(0)
	nan.F64 = nan.F64 / nan.F64
	if _, err := Encode(nan, DAG); err == nil {
		t.Fatal("DAG profile must reject NaN")
	}
	inf := value.Float64Value(math.Inf(1))
	if _, err := Encode(inf, DAG); err == nil {
		t.Fatal("DAG profile must reject Infinity")
	}
}

// TestPathNavigatorAtomicValue is spec §8 seed scenario 7: given
// {"a":{"b":[10,20,30]}}, readAt(data, ["a","b",1]) returns the bytes
// encoding 20 (one byte: 0x14).
func TestPathNavigatorAtomicValue(t *testing.T) {
	doc := value.ObjectValue([]value.Member{
		{Key: "a", Value: value.ObjectValue([]value.Member{
			{Key: "b", Value: value.ArrayValue([]value.Value{value.IntValue(10), value.IntValue(20), value.IntValue(30)})},
		})},
	})
	data, err := Encode(doc, Full)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := ReadAsRaw(data, pathnav.Path{pathnav.Key("a"), pathnav.Key("b"), pathnav.Index(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw.RawBytes, []byte{0x14}) {
		t.Fatalf("got % x, want 14", raw.RawBytes)
	}
}

func TestValidateDetectsTrailingBytes(t *testing.T) {
	data := []byte{0x01, 0x02} // two complete values, not one
	if err := Validate(data, 0, len(data)); err == nil {
		t.Fatal("expected InvalidSize for trailing bytes")
	}
}

func TestValidateAcceptsExactSpan(t *testing.T) {
	data, _ := Encode(value.IntValue(42), Fast)
	if err := Validate(data, 0, len(data)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	z := new(big.Int)
	z.SetString("18446744073709551616", 10) // 2^64, overflows uint64
	v := value.BigIntValue(z)
	data, err := Encode(v, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestNegativeBignumRoundTrip(t *testing.T) {
	z := new(big.Int)
	z.SetString("-18446744073709551617", 10) // -(2^64+1), overflows int64
	v := value.BigIntValue(z)
	data, err := Encode(v, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestRoundTripScalarsAndContainers(t *testing.T) {
	cases := []value.Value{
		value.NullValue(),
		value.BoolValue(true),
		value.IntValue(-1),
		value.IntValue(-100),
		value.UIntValue(1000),
		value.Float32Value(1.5),
		value.Float64Value(3.14159265358979),
		value.StringValue("hello"),
		value.BytesValue([]byte{1, 2, 3}),
		value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2)}),
		value.ObjectValue([]value.Member{{Key: "x", Value: value.IntValue(1)}}),
		value.ArrayValue(nil),
		value.ObjectValue(nil),
	}
	for i, c := range cases {
		for _, profile := range []Profile{Fast, Full, Stable, DAG} {
			data, err := Encode(c, profile)
			if err != nil {
				continue // some profiles intentionally reject some kinds
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("case %d profile %d decode: %v", i, profile, err)
			}
			if !value.Equal(got, c) {
				t.Errorf("case %d profile %d round trip mismatch: got %+v, want %+v", i, profile, got, c)
			}
		}
	}
}

// TestDateDaysRoundTrip exercises tag 100 (RFC 8943 days since epoch).
func TestDateDaysRoundTrip(t *testing.T) {
	want := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	in := EncodeDateDays(want)
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != tagDateDays {
		t.Fatalf("got %+v, want Extension{Tag: %d, ...}", got, tagDateDays)
	}
}

// TestDateRFC3339RoundTrip exercises tag 1004 ("YYYY-MM-DD" string),
// which must stay distinct from tag 0 (RFC 3339 datetime string) on
// re-encode: both carry a text string payload, so only the tag on the
// decoded Extension distinguishes them.
func TestDateRFC3339RoundTrip(t *testing.T) {
	want := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	in := EncodeDateRFC3339(want)
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != tagDateDaysAlt {
		t.Fatalf("got %+v, want Extension{Tag: %d, ...}", got, tagDateDaysAlt)
	}
	if got.Payload == nil || got.Payload.Kind != value.String || got.Payload.Str != "2026-08-03" {
		t.Fatalf("got payload %+v, want String(\"2026-08-03\")", got.Payload)
	}
	// Re-encoding the decoded value must reproduce the original tag-1004
	// wire bytes exactly, not conflate it with tag 0.
	reencoded, err := Encode(got, Full)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(reencoded, data) {
		t.Fatalf("re-encoded bytes %x != original %x (tag not preserved)", reencoded, data)
	}
}

// TestDateTimeStringTag0RoundTrip exercises tag 0 directly, confirming
// it decodes to Extension{Tag: 0} and stays distinguishable from the
// tag-1004 case above.
func TestDateTimeStringTag0RoundTrip(t *testing.T) {
	in := value.ExtensionValue(tagDateTimeString, value.StringValue("2026-08-03T00:00:00Z"))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != tagDateTimeString {
		t.Fatalf("got %+v, want Extension{Tag: 0, ...}", got)
	}
}

// TestEpochDateTimeRoundTrip exercises tag 1 (Unix timestamp).
func TestEpochDateTimeRoundTrip(t *testing.T) {
	in := value.ExtensionValue(tagEpochDateTime, value.IntValue(1785600000))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != tagEpochDateTime {
		t.Fatalf("got %+v, want Extension{Tag: 1, ...}", got)
	}
	if got.Payload == nil || !value.Equal(*got.Payload, value.IntValue(1785600000)) {
		t.Fatalf("got payload %+v, want Int(1785600000)", got.Payload)
	}
}

// TestExtensionNilPayloadEncodesAsNull exercises the nil-Payload guard
// in WriteAny's Extension branch: a tag with no payload must encode as
// a null rather than panic.
func TestExtensionNilPayloadEncodesAsNull(t *testing.T) {
	in := value.Value{Kind: value.Extension, Tag: 9999}
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != 9999 {
		t.Fatalf("got %+v, want Extension{Tag: 9999, ...}", got)
	}
	if got.Payload == nil || got.Payload.Kind != value.Null {
		t.Fatalf("got payload %+v, want Null", got.Payload)
	}
}

// TestEmbeddedCBORTagDecodesNestedItem exercises tag 24: the payload
// byte string holds a complete nested CBOR item, which must come back
// decoded rather than as an opaque Bytes blob.
func TestEmbeddedCBORTagDecodesNestedItem(t *testing.T) {
	nested, err := Encode(value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2)}), Full)
	if err != nil {
		t.Fatal(err)
	}
	in := value.ExtensionValue(tagEmbeddedCBOR, value.BytesValue(nested))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != tagEmbeddedCBOR || got.Payload == nil {
		t.Fatalf("got %+v, want Extension{Tag: 24, ...}", got)
	}
	want := value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2)})
	if !value.Equal(*got.Payload, want) {
		t.Fatalf("got nested payload %+v, want %+v", got.Payload, want)
	}
}

// TestMultiDimArrayTagRoundTrip exercises tag 40 (RFC 8746 row-major
// multi-dimensional array): the [dimensions, contents] shape.
func TestMultiDimArrayTagRoundTrip(t *testing.T) {
	in := value.ExtensionValue(tagMultiDimRowMajor, value.ArrayValue([]value.Value{
		value.ArrayValue([]value.Value{value.UIntValue(2), value.UIntValue(2)}),
		value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2), value.IntValue(3), value.IntValue(4)}),
	}))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Extension || got.Tag != tagMultiDimRowMajor {
		t.Fatalf("got %+v, want Extension{Tag: 40, ...}", got)
	}
}

// TestMultiDimArrayTagRejectsMalformedShape confirms a tag-40 payload
// that isn't [dimensions, contents] is rejected rather than silently
// accepted.
func TestMultiDimArrayTagRejectsMalformedShape(t *testing.T) {
	in := value.ExtensionValue(tagMultiDimRowMajor, value.IntValue(5))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatal("expected an error decoding a malformed tag-40 payload")
	}
}

// TestCIDTagRejectsNonBytesPayload confirms tag 42 requires a Bytes
// payload, distinguishing it from the generic Extension fallback.
func TestCIDTagRejectsNonBytesPayload(t *testing.T) {
	in := value.ExtensionValue(tagCID, value.IntValue(5))
	data, err := Encode(in, Full)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatal("expected an error decoding a non-bytes tag-42 payload")
	}
}
