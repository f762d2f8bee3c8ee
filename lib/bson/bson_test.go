// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"testing"

	"github.com/wireline-go/wireline/lib/value"
)

func TestRoundTripDocument(t *testing.T) {
	in := value.ObjectValue([]value.Member{
		{Key: "name", Value: value.StringValue("widget")},
		{Key: "count", Value: value.IntValue(42)},
		{Key: "ok", Value: value.BoolValue(true)},
		{Key: "missing", Value: value.NullValue()},
		{Key: "ratio", Value: value.Float64Value(0.5)},
		{Key: "blob", Value: value.BytesValue([]byte{1, 2, 3})},
		{Key: "tags", Value: value.ArrayValue([]value.Value{
			value.StringValue("a"), value.StringValue("b"),
		})},
		{Key: "nested", Value: value.ObjectValue([]value.Member{
			{Key: "inner", Value: value.IntValue(7)},
		})},
	})

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !value.Equal(got, in) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestEncodeMapWithNonStringKeyErrors(t *testing.T) {
	v := value.MapValue([]value.Pair{
		{Key: value.IntValue(1), Value: value.StringValue("x")},
	})
	if _, err := Encode(v); err == nil {
		t.Fatal("expected an error for a non-string-keyed Map")
	}
}

func TestEncodeTopLevelScalarErrors(t *testing.T) {
	if _, err := Encode(value.IntValue(5)); err == nil {
		t.Fatal("expected an error encoding a non-document top-level value")
	}
}

func TestUIntOverflowErrors(t *testing.T) {
	v := value.ObjectValue([]value.Member{
		{Key: "big", Value: value.UIntValue(1 << 63)},
	})
	if _, err := Encode(v); err == nil {
		t.Fatal("expected an error for a UInt beyond BSON's signed 64-bit range")
	}
}

func TestBigIntErrors(t *testing.T) {
	v := value.ObjectValue([]value.Member{
		{Key: "big", Value: value.Value{Kind: value.BigInt}},
	})
	if _, err := Encode(v); err == nil {
		t.Fatal("expected an error for BigInt, which BSON has no type for")
	}
}
