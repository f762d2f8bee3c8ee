// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"bytes"
	"testing"

	"github.com/wireline-go/wireline/lib/value"
)

// TestPartialRecovery is spec §8 seed scenario 6: `{"a":1,"b":` is a
// parse error in strict mode and recovers to `{"a":1}` in partial mode.
func TestPartialRecovery(t *testing.T) {
	input := []byte(`{"a":1,"b":`)

	if _, err := Decode(input, DecOptions{}); err == nil {
		t.Fatal("strict mode should fail on a truncated member")
	}

	got, err := Decode(input, DecOptions{Partial: true})
	if err != nil {
		t.Fatalf("partial mode: %v", err)
	}
	want := value.ObjectValue([]value.Member{{Key: "a", Value: value.IntValue(1)}})
	if !value.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPartialArrayRecovery(t *testing.T) {
	got, err := Decode([]byte(`[1, 2, 3`), DecOptions{Partial: true})
	if err != nil {
		t.Fatal(err)
	}
	want := value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2), value.IntValue(3)})
	if !value.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTrailingAndRepeatedCommasTolerated(t *testing.T) {
	got, err := Decode([]byte(`[1,,2,]`), DecOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := value.ArrayValue([]value.Value{value.IntValue(1), value.IntValue(2)})
	if !value.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestProtoKeyRejected(t *testing.T) {
	if _, err := Decode([]byte(`{"__proto__":1}`), DecOptions{}); err == nil {
		t.Fatal("expected __proto__ to be rejected")
	}
	if _, err := Decode([]byte(`{"__proto__":1}`), DecOptions{AllowProtoKey: true}); err != nil {
		t.Fatalf("AllowProtoKey should permit the key: %v", err)
	}
}

func TestSignedExponentNotation(t *testing.T) {
	cases := []string{"1.5e+10", "1E-3", "2e5"}
	for _, c := range cases {
		v, err := Decode([]byte(c), DecOptions{})
		if err != nil {
			t.Errorf("%s: %v", c, err)
			continue
		}
		if v.Kind != value.Float64 {
			t.Errorf("%s: got kind %v, want float64", c, v.Kind)
		}
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	v := value.BytesValue([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	data, err := Encode(v, EncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data, DecOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestStableEncoderSortsByCodePoint(t *testing.T) {
	a := value.ObjectValue([]value.Member{{Key: "b", Value: value.IntValue(1)}, {Key: "a", Value: value.IntValue(2)}})
	b := value.ObjectValue([]value.Member{{Key: "a", Value: value.IntValue(2)}, {Key: "b", Value: value.IntValue(1)}})
	encA, err := Encode(a, EncOptions{Stable: true})
	if err != nil {
		t.Fatal(err)
	}
	encB, err := Encode(b, EncOptions{Stable: true})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encA, encB) {
		t.Fatalf("Stable encoding not canonical: %s != %s", encA, encB)
	}
}

func TestRoundTripScalarsAndContainers(t *testing.T) {
	cases := []value.Value{
		value.NullValue(),
		value.BoolValue(true),
		value.BoolValue(false),
		value.IntValue(-42),
		value.UIntValue(42),
		value.Float64Value(3.25),
		value.StringValue("hello \"world\"\n"),
		value.StringValue("héllo 🎉"),
		value.ArrayValue(nil),
		value.ObjectValue(nil),
		value.ArrayValue([]value.Value{value.IntValue(1), value.StringValue("x")}),
	}
	for i, c := range cases {
		data, err := Encode(c, EncOptions{})
		if err != nil {
			t.Fatalf("case %d encode: %v", i, err)
		}
		got, err := Decode(data, DecOptions{})
		if err != nil {
			t.Fatalf("case %d decode: %v", i, err)
		}
		if !value.Equal(got, c) {
			t.Errorf("case %d: got %+v, want %+v", i, got, c)
		}
	}
}

func TestStripCommentsPreFilter(t *testing.T) {
	input := []byte("{\n  // a comment\n  \"a\": 1\n}")
	got, err := Decode(input, DecOptions{StripComments: true})
	if err != nil {
		t.Fatal(err)
	}
	want := value.ObjectValue([]value.Member{{Key: "a", Value: value.IntValue(1)}})
	if !value.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
