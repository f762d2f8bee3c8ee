// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"bytes"
	"testing"

	"github.com/wireline-go/wireline/lib/pathnav"
	"github.com/wireline-go/wireline/lib/value"
)

// TestFixintAndStringEncoding is spec §8 seed scenario 1: {"a": 1}
// encodes to exactly 0x81 0xA1 0x61 0x01.
func TestFixintAndStringEncoding(t *testing.T) {
	v := value.ObjectValue([]value.Member{{Key: "a", Value: value.IntValue(1)}})
	got, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x81, 0xA1, 0x61, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}

	decoded, err := Decode(got)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(decoded, v) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, v)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.NullValue(),
		value.BoolValue(true),
		value.BoolValue(false),
		value.IntValue(-1),
		value.IntValue(-33),
		value.IntValue(127),
		value.UIntValue(255),
		value.UIntValue(65536),
		value.UIntValue(1 << 40),
		value.Float32Value(1.5),
		value.Float64Value(3.0000001192092896), // not float32-exact
		value.StringValue(""),
		value.StringValue("hello"),
		value.BytesValue([]byte{}),
		value.BytesValue([]byte{1, 2, 3}),
		value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2), value.IntValue(3)}),
		value.ObjectValue([]value.Member{{Key: "x", Value: value.IntValue(1)}, {Key: "y", Value: value.StringValue("z")}}),
		value.ExtensionValue(5, value.BytesValue([]byte{0xAA, 0xBB})),
	}
	for i, c := range cases {
		enc, err := Encode(c)
		if err != nil {
			t.Fatalf("case %d encode: %v", i, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("case %d decode: %v", i, err)
		}
		if !value.Equal(dec, c) {
			t.Errorf("case %d round trip mismatch: got %+v, want %+v", i, dec, c)
		}
	}
}

func TestMaxLengthIntegers(t *testing.T) {
	cases := []value.Value{
		value.IntValue(-1 << 31),
		value.IntValue((1 << 31) - 1),
		value.IntValue(-1 << 63),
		value.IntValue((1 << 63) - 1),
		value.UIntValue(^uint64(0)),
	}
	for _, c := range cases {
		enc, err := Encode(c)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !value.Equal(dec, c) {
			t.Errorf("round trip mismatch for %+v: got %+v", c, dec)
		}
	}
}

func TestPathNavigatorFindsNestedValue(t *testing.T) {
	doc := value.ObjectValue([]value.Member{
		{Key: "a", Value: value.ObjectValue([]value.Member{
			{Key: "b", Value: value.ArrayValue([]value.Value{value.IntValue(10), value.IntValue(20), value.IntValue(30)})},
		})},
	})
	data, err := Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadAt(data, pathnav.Path{pathnav.Key("a"), pathnav.Key("b"), pathnav.Index(1)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != value.Int || got.I != 20 {
		t.Fatalf("got %+v, want Int(20)", got)
	}
}

func TestPathNavigatorKeyNotFound(t *testing.T) {
	doc := value.ObjectValue([]value.Member{{Key: "a", Value: value.IntValue(1)}})
	data, _ := Encode(doc)
	if _, err := ReadAt(data, pathnav.Path{pathnav.Key("missing")}); err == nil {
		t.Fatal("expected KeyNotFound error")
	}
}

func TestPathNavigatorIndexOutOfBounds(t *testing.T) {
	doc := value.ArrayValue([]value.Value{value.IntValue(1)})
	data, _ := Encode(doc)
	if _, err := ReadAt(data, pathnav.Path{pathnav.Index(5)}); err == nil {
		t.Fatal("expected IndexOutOfBounds error")
	}
}

func TestEmptyContainersRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.ArrayValue(nil),
		value.ObjectValue(nil),
		value.StringValue(""),
		value.BytesValue(nil),
	}
	for _, c := range cases {
		enc, err := Encode(c)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !value.Equal(dec, c) {
			t.Errorf("empty container round trip mismatch for kind %v", c.Kind)
		}
	}
}
