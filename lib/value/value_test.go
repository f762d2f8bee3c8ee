// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "testing"

func TestObjectGetLastWriteWins(t *testing.T) {
	obj := ObjectValue([]Member{
		{Key: "a", Value: IntValue(1)},
		{Key: "a", Value: IntValue(2)},
	})
	got := obj.Get("a")
	if got == nil || got.I != 2 {
		t.Fatalf("Get(\"a\") = %v, want last-write-wins 2", got)
	}
}

func TestEqualObjectOrderIndependent(t *testing.T) {
	a := ObjectValue([]Member{{Key: "a", Value: IntValue(1)}, {Key: "b", Value: IntValue(2)}})
	b := ObjectValue([]Member{{Key: "b", Value: IntValue(2)}, {Key: "a", Value: IntValue(1)}})
	if !Equal(a, b) {
		t.Fatal("Equal should be order-independent for Object")
	}
}

func TestEqualIntUIntInterop(t *testing.T) {
	if !Equal(IntValue(5), UIntValue(5)) {
		t.Fatal("nonnegative Int and same-valued UInt should be Equal")
	}
	if Equal(IntValue(-1), UIntValue(0xFFFFFFFFFFFFFFFF)) {
		t.Fatal("negative Int must never equal a UInt")
	}
}

func TestEqualFloatNaN(t *testing.T) {
	nan := Float64Value(0)
	nan.F64 = nan.F64 / nan.F64 // NaN without importing math
	if !Equal(nan, nan) {
		t.Fatal("NaN must be Equal to itself under this relation")
	}
}
