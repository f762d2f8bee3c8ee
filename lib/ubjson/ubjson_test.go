// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package ubjson

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/wireline-go/wireline/lib/value"
)

func TestRoundTripScalarsAndContainers(t *testing.T) {
	cases := []value.Value{
		value.NullValue(),
		value.BoolValue(true),
		value.BoolValue(false),
		value.IntValue(0),
		value.IntValue(-128),
		value.IntValue(127),
		value.IntValue(200),
		value.IntValue(-32768),
		value.IntValue(40000),
		value.IntValue(1 << 40),
		value.IntValue(math.MinInt64),
		value.Float32Value(2.5),
		value.Float64Value(-9.5e100),
		value.StringValue(""),
		value.StringValue("hello"),
		value.StringValue("héllo wörld 🎉"),
		value.BytesValue(nil),
		value.BytesValue([]byte{0x00, 0x01, 0xFF, 0x7F, 0x80}),
		value.ArrayValue(nil),
		value.ObjectValue(nil),
		value.ArrayValue([]value.Value{value.IntValue(1), value.StringValue("two"), value.BoolValue(false)}),
		value.ObjectValue([]value.Member{
			{Key: "a", Value: value.IntValue(1)},
			{Key: "b", Value: value.BytesValue([]byte{1, 2, 3})},
		}),
	}

	for _, v := range cases {
		encoded, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", v, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)): %v", v, err)
		}
		if !value.Equal(decoded, v) {
			t.Fatalf("round trip mismatch for %+v: got %+v", v, decoded)
		}
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	z := new(big.Int)
	z.SetString("123456789012345678901234567890", 10)
	v := value.BigIntValue(z)
	encoded, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Kind != value.BigInt || decoded.Z.Cmp(z) != 0 {
		t.Fatalf("decoded = %+v, want BigInt %v", decoded, z)
	}
}

func TestByteArrayUsesOptimizedContainer(t *testing.T) {
	v := value.BytesValue([]byte{1, 2, 3, 4, 5})
	encoded, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{tArrayStart, '$', tUint8, '#', tInt8, 5, 1, 2, 3, 4, 5}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("Encode(bytes) = % X, want % X", encoded, want)
	}
}

func TestNullEncoding(t *testing.T) {
	encoded, err := Encode(value.NullValue())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, []byte{tNull}) {
		t.Fatalf("Encode(null) = % X, want Z", encoded)
	}
}
