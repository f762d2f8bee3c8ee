// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
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
		value.IntValue(-9223372036854775808),
		value.Float64Value(2.5),
		value.StringValue("hello"),
		value.BytesValue([]byte{1, 2, 3}),
		value.ArrayValue(nil),
		value.ObjectValue(nil),
		value.ArrayValue([]value.Value{value.IntValue(1), value.StringValue("two")}),
		value.ObjectValue([]value.Member{
			{Key: "a", Value: value.IntValue(1)},
			{Key: "b", Value: value.StringValue("x")},
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

func TestUIntOverflowUsesBigInt(t *testing.T) {
	v := value.UIntValue(math.MaxUint64)
	encoded, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Kind != value.BigInt {
		t.Fatalf("decoded = %+v, want BigInt", decoded)
	}
	want := new(big.Int).SetUint64(math.MaxUint64)
	if decoded.Z.Cmp(want) != 0 {
		t.Fatalf("decoded = %v, want %v", decoded.Z, want)
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	z := new(big.Int)
	z.SetString("123456789012345678901234567890", 10)
	v := value.BigIntValue(z)
	encoded, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Kind != value.BigInt || decoded.Z.Cmp(z) != 0 {
		t.Fatalf("decoded = %+v, want BigInt %v", decoded, z)
	}
}

func TestMapWithNonStringKeyErrors(t *testing.T) {
	v := value.MapValue([]value.Pair{{Key: value.IntValue(1), Value: value.IntValue(2)}})
	if _, err := Encode(v); err == nil {
		t.Fatal("expected an error for a non-string-keyed Map")
	}
}
