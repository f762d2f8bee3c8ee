// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package resp

import (
	"testing"

	"github.com/wireline-go/wireline/lib/value"
)

func TestRoundTripScalarsAndArray(t *testing.T) {
	cases := []value.Value{
		value.NullValue(),
		value.IntValue(0),
		value.IntValue(-42),
		value.StringValue("hello"),
		value.ArrayValue(nil),
		value.ArrayValue([]value.Value{
			value.IntValue(1),
			value.StringValue("two"),
			value.ArrayValue([]value.Value{value.IntValue(3)}),
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

// TestObjectFlattensToKeyValueArray is the HGETALL-style convention
// documented in this package: an Object has no RESP2 wire type of its
// own, so it flattens to an alternating key/value Array.
func TestObjectFlattensToKeyValueArray(t *testing.T) {
	v := value.ObjectValue([]value.Member{
		{Key: "field1", Value: value.StringValue("value1")},
		{Key: "field2", Value: value.StringValue("value2")},
	})
	encoded, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	want := value.ArrayValue([]value.Value{
		value.StringValue("field1"), value.StringValue("value1"),
		value.StringValue("field2"), value.StringValue("value2"),
	})
	if !value.Equal(decoded, want) {
		t.Fatalf("got %+v, want flattened array %+v", decoded, want)
	}
}

func TestBoolEncodesAsRESP2Integer(t *testing.T) {
	encoded, err := Encode(value.BoolValue(true))
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(decoded, value.IntValue(1)) {
		t.Fatalf("got %+v, want Int(1) (RESP2 has no boolean type)", decoded)
	}
}
