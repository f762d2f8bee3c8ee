// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"testing"

	"github.com/wireline-go/wireline/lib/value"
)

func TestRoundTripScalarsAndContainers(t *testing.T) {
	// Decoded strings always come back as Bytes (Bencode has one
	// string type), so inputs here use Bytes rather than String to
	// make the round trip an exact Value match.
	cases := []value.Value{
		value.IntValue(0),
		value.IntValue(-12345),
		value.BytesValue([]byte("hello world")),
		value.BytesValue(nil),
		value.ArrayValue([]value.Value{value.IntValue(1), value.BytesValue([]byte("two"))}),
		value.ObjectValue([]value.Member{
			{Key: "a", Value: value.IntValue(1)},
			{Key: "b", Value: value.BytesValue([]byte("two"))},
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

func TestDictionaryKeysSortedOnWire(t *testing.T) {
	v := value.ObjectValue([]value.Member{
		{Key: "z", Value: value.IntValue(1)},
		{Key: "a", Value: value.IntValue(2)},
	})
	encoded, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	// Bencode dictionaries are "d" <key><value>... "e"; "a" must
	// appear before "z" regardless of the input Object's member order.
	if bytes.Index(encoded, []byte("1:a")) > bytes.Index(encoded, []byte("1:z")) {
		t.Fatalf("expected sorted dictionary keys, got % s", encoded)
	}
}

func TestEncodeRejectsFloatBoolNull(t *testing.T) {
	for _, v := range []value.Value{
		value.Float64Value(1.5),
		value.BoolValue(true),
		value.NullValue(),
	} {
		if _, err := Encode(v); err == nil {
			t.Fatalf("expected Encode(%+v) to reject a Kind Bencode can't represent", v)
		}
	}
}
