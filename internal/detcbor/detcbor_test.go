// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package detcbor

import "testing"

func TestDiagnoseMap(t *testing.T) {
	// {"a": 1} in CBOR.
	data := []byte{0xA1, 0x61, 0x61, 0x01}
	got, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if got == "" {
		t.Fatal("Diagnose returned empty notation")
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	data := []byte{0xA1, 0x61, 0x61, 0x01}
	if err := Validate(data); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsTruncatedInput(t *testing.T) {
	data := []byte{0xA1, 0x61, 0x61} // map header promises a value that never arrives
	if err := Validate(data); err == nil {
		t.Fatal("expected an error for truncated input")
	}
}

func TestDecodeProducesGoNativeMap(t *testing.T) {
	data := []byte{0xA1, 0x61, 0x61, 0x01}
	v, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", v)
	}
	if m["a"] != uint64(1) {
		t.Errorf("got %v, want 1", m["a"])
	}
}
